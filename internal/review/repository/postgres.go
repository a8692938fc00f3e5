package repository

import (
	"context"
	"database/sql"
	"errors"

	"user-dashboard/backend/internal/review/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a review repository using the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const reviewSelect = `
	SELECT r.id, r.product, r.user_id, u.username, r.rating, r.comment, r.created_at, r.updated_at
	FROM reviews r JOIN users u ON u.id = r.user_id`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	row := r.db.QueryRowContext(ctx, reviewSelect+` WHERE r.id = $1`, id)
	rv, err := scanReview(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rv, nil
}

func (r *PostgresRepository) ListByProduct(ctx context.Context, productID string) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, reviewSelect+` WHERE r.product = $1 ORDER BY r.created_at DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(ctx context.Context, rv *domain.Review) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reviews (id, product, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rv.ID, rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt, rv.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, rv *domain.Review) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET rating = $2, comment = $3, updated_at = $4 WHERE id = $1`,
		rv.ID, rv.Rating, rv.Comment, rv.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(s scanner) (*domain.Review, error) {
	var rv domain.Review
	err := s.Scan(&rv.ID, &rv.ProductID, &rv.UserID, &rv.AuthorUsername, &rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rv, nil
}
