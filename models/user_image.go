package models

import (
	"time"

	"github.com/google/uuid"
)

// UserImage is an image a user uploaded for use in their designs.
// ImageURL is always set at creation.
type UserImage struct {
	ID        uuid.UUID `json:"id,omitempty"`
	UserID    uuid.UUID `json:"user_id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
