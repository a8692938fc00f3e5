package repository

import (
	"context"

	"user-dashboard/backend/internal/todo/domain"
)

// Repository defines persistence for todos.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	// List returns all todos, newest first.
	List(ctx context.Context) ([]*domain.Todo, error)
	// ListByCreator returns the todos created by userID, newest first.
	ListByCreator(ctx context.Context, userID string) ([]*domain.Todo, error)
	Create(ctx context.Context, t *domain.Todo) error
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
	// DeleteByCreator removes all todos owned by userID (used when the user is deleted).
	DeleteByCreator(ctx context.Context, userID string) error
}
