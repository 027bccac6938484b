package service

import (
	"context"
	"fmt"
	"time"

	"github.com/profilehub/profilehub/internal/media"
	"github.com/profilehub/profilehub/internal/profile"
	"github.com/profilehub/profilehub/internal/profile/repository"
)

// ErrNotFound is re-exported so handlers depend on the service layer only.
var ErrNotFound = repository.ErrNotFound

// AddContentInput carries the multipart form fields of an add-content
// request. FileData and FileName are set together when a file was uploaded;
// the file then takes precedence over ContentType/TextContent.
type AddContentInput struct {
	Title       string
	ContentType string
	TextContent string
	FileName    string
	FileData    []byte
	HasFile     bool
}

// Service implements the profile operations on top of the persistence
// gateway. It is stateless; every call is a single validate-then-write (or
// read) against the store.
type Service struct {
	repo repository.Repository
}

func NewService(r repository.Repository) *Service {
	return &Service{repo: r}
}

func (s *Service) Create(ctx context.Context, req profile.CreateProfileRequest) (*profile.UserProfile, error) {
	p := profile.NewUserProfile(req)
	if err := s.repo.Insert(ctx, p); err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return p, nil
}

func (s *Service) List(ctx context.Context, skip, limit int64) ([]*profile.UserProfile, error) {
	return s.repo.FindPage(ctx, skip, limit)
}

func (s *Service) Get(ctx context.Context, id string) (*profile.UserProfile, error) {
	return s.repo.FindByID(ctx, id)
}

// AddContent loads the profile, appends a new content item and writes the
// whole document back. The read-modify-write is not atomic: two concurrent
// appends to the same profile can lose one of them (last replace wins). That
// is a known limitation of the full-document persistence model.
func (s *Service) AddContent(ctx context.Context, profileID string, in AddContentInput) (*profile.ContentItem, error) {
	p, err := s.repo.FindByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	var item profile.ContentItem
	if in.HasFile {
		mediaType := media.ClassifyMediaType(in.FileName)
		encoded := media.EncodeContent(in.FileData)
		item = profile.NewFileItem(mediaType, in.Title, encoded, in.FileName, int64(len(in.FileData)))
	} else {
		item = profile.NewTextItem(in.ContentType, in.Title, in.TextContent)
	}

	p.ContentItems = append(p.ContentItems, item)
	p.UpdatedAt = time.Now().UTC()
	if err := s.repo.Replace(ctx, profileID, p); err != nil {
		return nil, fmt.Errorf("replace profile: %w", err)
	}
	return &item, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteByID(ctx, id)
}
