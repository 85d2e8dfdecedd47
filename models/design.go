package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Design represents a user's design document: an ordered sequence of
// component descriptors plus the rendered preview image. Components are
// opaque to the API; they are stored and returned verbatim.
type Design struct {
	ID         uuid.UUID       `json:"id,omitempty"`
	UserID     uuid.UUID       `json:"user_id"`
	Components json.RawMessage `json:"components"` // JSON array, may be empty
	ImageURL   string          `json:"image_url"`  // empty until first render
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
