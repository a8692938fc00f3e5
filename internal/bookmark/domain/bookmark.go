package domain

import (
	"time"

	productdomain "user-dashboard/backend/internal/product/domain"
)

// Bookmark marks a product as saved by a user. A user can bookmark a
// product at most once.
type Bookmark struct {
	ID        string
	UserID    string
	ProductID string
	Product   *productdomain.Product
	CreatedAt time.Time
}

// UserBookmarks groups one user's bookmarks for the grouped listing.
type UserBookmarks struct {
	UserID    string
	Username  string
	Bookmarks []*Bookmark
}
