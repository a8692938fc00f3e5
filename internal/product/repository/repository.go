package repository

import (
	"context"

	"user-dashboard/backend/internal/product/domain"
)

// Repository defines persistence for products.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// List returns all products, newest first.
	List(ctx context.Context) ([]*domain.Product, error)
	// SearchByName returns products whose name contains the query, case-insensitive.
	SearchByName(ctx context.Context, query string) ([]*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
}
