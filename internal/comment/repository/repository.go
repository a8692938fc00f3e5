package repository

import (
	"context"

	"user-dashboard/backend/internal/comment/domain"
)

// Repository defines persistence for comments.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Comment, error)
	// List returns all comments, newest first, with author fields joined.
	List(ctx context.Context) ([]*domain.Comment, error)
	// ListByAuthor returns the comments authored by userID, newest first.
	ListByAuthor(ctx context.Context, userID string) ([]*domain.Comment, error)
	Create(ctx context.Context, c *domain.Comment) error
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}
