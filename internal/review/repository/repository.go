package repository

import (
	"context"

	"user-dashboard/backend/internal/review/domain"
)

// Repository defines persistence for reviews.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	// ListByProduct returns the reviews for productID, newest first.
	ListByProduct(ctx context.Context, productID string) ([]*domain.Review, error)
	Create(ctx context.Context, rv *domain.Review) error
	Update(ctx context.Context, rv *domain.Review) error
	Delete(ctx context.Context, id string) error
}
