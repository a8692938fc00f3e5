package repository

import (
	"context"
	"database/sql"
	"errors"

	"user-dashboard/backend/internal/todo/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a todo repository using the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const todoColumns = `id, name, title, age, bio, company, experience, description, address, created_by, created_at, updated_at`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*domain.Todo, error) {
	return r.queryTodos(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY created_at DESC`)
}

func (r *PostgresRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Todo, error) {
	return r.queryTodos(ctx, `SELECT `+todoColumns+` FROM todos WHERE created_by = $1 ORDER BY created_at DESC`, userID)
}

func (r *PostgresRepository) Create(ctx context.Context, t *domain.Todo) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (id, name, title, age, bio, company, experience, description, address, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.Name, t.Title, t.Age, t.Bio, t.Company, t.Experience, t.Description, t.Address,
		t.CreatedBy, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Update(ctx context.Context, t *domain.Todo) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE todos SET name = $2, title = $3, age = $4, bio = $5, company = $6,
			experience = $7, description = $8, address = $9, updated_at = $10
		WHERE id = $1`,
		t.ID, t.Name, t.Title, t.Age, t.Bio, t.Company, t.Experience, t.Description, t.Address, t.UpdatedAt,
	)
	return err
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	return err
}

func (r *PostgresRepository) DeleteByCreator(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE created_by = $1`, userID)
	return err
}

func (r *PostgresRepository) queryTodos(ctx context.Context, query string, args ...any) ([]*domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*domain.Todo, error) {
	var (
		t           domain.Todo
		title       sql.NullString
		age         sql.NullInt64
		bio         sql.NullString
		company     sql.NullString
		experience  sql.NullInt64
		description sql.NullString
	)
	err := s.Scan(&t.ID, &t.Name, &title, &age, &bio, &company, &experience, &description,
		&t.Address, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Title = title.String
	t.Age = int(age.Int64)
	t.Bio = bio.String
	t.Company = company.String
	t.Experience = int(experience.Int64)
	t.Description = description.String
	return &t, nil
}
