package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Template represents a pre-built design users can start from. Templates
// are read-only through this API; they are instantiated into Designs by
// copying the component sequence and preview image.
type Template struct {
	ID         uuid.UUID       `json:"id"`
	Components json.RawMessage `json:"components"`
	ImageURL   string          `json:"image_url"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
