package domain

import (
	"errors"
	"time"
)

// Review is a user's rating and comment on a product.
type Review struct {
	ID             string
	ProductID      string
	UserID         string
	AuthorUsername string
	Rating         int
	Comment        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the rating range (1–5).
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	if r.ProductID == "" {
		return errors.New("product is required")
	}
	return nil
}
