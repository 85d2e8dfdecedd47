package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents the structure of a user account in the database.
// Password holds the bcrypt hash and is only populated when the login
// flow explicitly selects it; it must be cleared before a record is
// written to a response.
type User struct {
	ID        uuid.UUID `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"` // stored lower-cased, compared case-insensitively
	Password  string    `json:"password,omitempty"`
	Image     string    `json:"image,omitempty"` // profile image URL
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserColumns is the projection used everywhere except the login
// credential check: every column but the password hash.
const UserColumns = "id,name,email,image,created_at,updated_at"
