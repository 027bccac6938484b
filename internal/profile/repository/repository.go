package repository

import (
	"context"
	"errors"

	"github.com/profilehub/profilehub/internal/profile"
)

// ErrNotFound is returned when no profile has the requested id.
var ErrNotFound = errors.New("profile not found")

// Repository is the persistence gateway for user profiles. Mutations follow a
// read-modify-write cycle: the caller loads the whole document, changes it in
// memory and writes it back with Replace. There is no partial update and no
// optimistic concurrency, so two concurrent writers of the same profile can
// lose one update (last full-document write wins).
type Repository interface {
	Insert(ctx context.Context, p *profile.UserProfile) error
	FindByID(ctx context.Context, id string) (*profile.UserProfile, error)
	// FindPage returns at most limit profiles after skipping skip, newest
	// first by created_at.
	FindPage(ctx context.Context, skip, limit int64) ([]*profile.UserProfile, error)
	Replace(ctx context.Context, id string, p *profile.UserProfile) error
	DeleteByID(ctx context.Context, id string) error
}
