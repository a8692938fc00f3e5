package repository

import (
	"context"

	"user-dashboard/backend/internal/bookmark/domain"
)

// Repository defines persistence for bookmarks.
type Repository interface {
	// Add records the bookmark. Adding an existing (user, product) pair is a no-op.
	Add(ctx context.Context, b *domain.Bookmark) error
	// Get returns the user's bookmark for productID, or nil if absent.
	Get(ctx context.Context, userID, productID string) (*domain.Bookmark, error)
	// Remove deletes the user's bookmark for productID. The bool reports
	// whether a bookmark was actually removed.
	Remove(ctx context.Context, userID, productID string) (bool, error)
	// ListByUser returns the user's bookmarks, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	// ListGroupedByUser returns every user's bookmarks, grouped per user.
	ListGroupedByUser(ctx context.Context) ([]*domain.UserBookmarks, error)
}
