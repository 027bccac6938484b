package profile

import (
	"time"

	"github.com/google/uuid"
)

// ContentItem is one unit of media or text attached to a profile. Items are
// embedded in their owning UserProfile document; they have no standalone
// collection. Content holds raw text for text items, or base64-encoded bytes
// for uploaded files (FileName and FileSize are set only in that case).
type ContentItem struct {
	ID        string    `json:"id" bson:"id"`
	Type      string    `json:"type" bson:"type"` // text | image | audio | video
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content" bson:"content"`
	FileName  *string   `json:"file_name,omitempty" bson:"file_name,omitempty"`
	FileSize  *int64    `json:"file_size,omitempty" bson:"file_size,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// UserProfile is the aggregate root: a profile plus its ordered, append-only
// sequence of content items. The id field (a UUID string) is the external
// lookup key; the Mongo _id is never exposed.
type UserProfile struct {
	ID           string        `json:"id" bson:"id"`
	Name         string        `json:"name" bson:"name"`
	Email        string        `json:"email" bson:"email"`
	Bio          *string       `json:"bio,omitempty" bson:"bio,omitempty"`
	Avatar       *string       `json:"avatar,omitempty" bson:"avatar,omitempty"` // base64-encoded image
	ContentItems []ContentItem `json:"content_items" bson:"content_items"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" bson:"updated_at"`
}

// CreateProfileRequest is the JSON body accepted when creating a profile.
type CreateProfileRequest struct {
	Name   string  `json:"name" binding:"required"`
	Email  string  `json:"email" binding:"required"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

// NewUserProfile builds a profile with a fresh id and both timestamps set to
// the same instant.
func NewUserProfile(req CreateProfileRequest) *UserProfile {
	now := time.Now().UTC()
	return &UserProfile{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Bio:          req.Bio,
		Avatar:       req.Avatar,
		ContentItems: []ContentItem{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NewTextItem builds a content item from form-supplied text.
func NewTextItem(contentType, title, text string) ContentItem {
	return ContentItem{
		ID:        uuid.NewString(),
		Type:      contentType,
		Title:     title,
		Content:   text,
		CreatedAt: time.Now().UTC(),
	}
}

// NewFileItem builds a content item from an uploaded file. The caller supplies
// the detected media type and the already-encoded content; size is the raw
// byte length before encoding.
func NewFileItem(mediaType, title, encoded, fileName string, size int64) ContentItem {
	return ContentItem{
		ID:        uuid.NewString(),
		Type:      mediaType,
		Title:     title,
		Content:   encoded,
		FileName:  &fileName,
		FileSize:  &size,
		CreatedAt: time.Now().UTC(),
	}
}
