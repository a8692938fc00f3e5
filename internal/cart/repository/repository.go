package repository

import (
	"context"

	"user-dashboard/backend/internal/cart/domain"
)

// Repository defines persistence for carts.
type Repository interface {
	// GetOrCreateByUser returns the user's cart, creating an empty one if absent.
	GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem increases the quantity of productID in the cart, creating the line if absent.
	AddItem(ctx context.Context, cartID, productID string, quantity int) error
	// RemoveItem decreases the quantity of productID; the line is removed when it drops to zero or below.
	RemoveItem(ctx context.Context, cartID, productID string, quantity int) error
}
