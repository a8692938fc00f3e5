package domain

import "time"

// Product is a catalog item. ReviewsCount is denormalized on read.
type Product struct {
	ID           string
	Name         string
	Price        float64
	Description  string
	Image        string
	ReviewsCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
