package repository

import (
	"context"

	"user-dashboard/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	// List returns all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id string) error
	// UpdateLastLogin overwrites the user's login record. Only the login
	// operation calls this; the previous record is discarded.
	UpdateLastLogin(ctx context.Context, userID string, rec *domain.LoginRecord) error
}
