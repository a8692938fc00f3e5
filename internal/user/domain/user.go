package domain

import (
	"errors"
	"time"
)

// LoginRecord is the most recent successful login for a user. It is
// overwritten on every login; no history is kept. Timestamp is a display
// string in a fixed zone, not an instant, to match existing clients.
type LoginRecord struct {
	IP         string
	Device     string
	Location   string
	Lat        float64
	Long       float64
	Suspicious bool
	Timestamp  string
}

// User is the core account entity.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	IsAdmin      bool
	LastLogin    *LoginRecord
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the user for persistence. Returns an error describing
// the first validation failure.
func (u *User) Validate() error {
	if u.Email == "" {
		return errors.New("email is required")
	}
	if u.Username == "" {
		return errors.New("username is required")
	}
	if u.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
