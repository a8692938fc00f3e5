package domain

import "time"

// Comment is a user-authored message on the shared feed. Author fields are
// denormalized from the users table on read.
type Comment struct {
	ID             string
	Content        string
	AuthorID       string
	AuthorUsername string
	AuthorEmail    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
