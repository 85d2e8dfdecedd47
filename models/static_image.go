package models

import (
	"time"

	"github.com/google/uuid"
)

// StaticImage is one entry of a global, read-only image catalog. Two
// catalogs exist, backed by separate tables: general design images
// ("design_images") and backgrounds ("background_images").
type StaticImage struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
