package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"user-dashboard/backend/internal/comment/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a comment repository using the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const commentSelect = `
	SELECT c.id, c.content, c.author, u.username, u.email, c.created_at, c.updated_at
	FROM comments c JOIN users u ON u.id = c.author`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, commentSelect+` WHERE c.id = $1`, id)
	c, err := scanComment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Comment, error) {
	return r.queryComments(ctx, commentSelect+` ORDER BY c.created_at DESC`)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, userID string) ([]*domain.Comment, error) {
	return r.queryComments(ctx, commentSelect+` WHERE c.author = $1 ORDER BY c.created_at DESC`, userID)
}

func (r *PostgresRepository) Create(ctx context.Context, c *domain.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, content, author, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Content, c.AuthorID, c.CreatedAt, c.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) UpdateContent(ctx context.Context, id, content string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE comments SET content = $2, updated_at = $3 WHERE id = $1`,
		id, content, time.Now().UTC(),
	)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) queryComments(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(s scanner) (*domain.Comment, error) {
	var c domain.Comment
	err := s.Scan(&c.ID, &c.Content, &c.AuthorID, &c.AuthorUsername, &c.AuthorEmail, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
