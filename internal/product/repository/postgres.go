package repository

import (
	"context"
	"database/sql"
	"errors"

	"user-dashboard/backend/internal/product/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a product repository using the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const productSelect = `
	SELECT p.id, p.name, p.price, p.description, p.image,
		(SELECT COUNT(*) FROM reviews r WHERE r.product = p.id) AS reviews_count,
		p.created_at, p.updated_at
	FROM products p`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	row := r.db.QueryRowContext(ctx, productSelect+` WHERE p.id = $1`, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.queryProducts(ctx, productSelect+` ORDER BY p.created_at DESC`)
}

func (r *PostgresRepository) SearchByName(ctx context.Context, query string) ([]*domain.Product, error) {
	return r.queryProducts(ctx,
		productSelect+` WHERE p.name ILIKE '%' || $1 || '%' ORDER BY p.created_at DESC`, query)
}

func (r *PostgresRepository) Create(ctx context.Context, p *domain.Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, description, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.Name, p.Price, p.Description, p.Image, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) queryProducts(ctx context.Context, query string, args ...any) ([]*domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (*domain.Product, error) {
	var p domain.Product
	err := s.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.Image, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
