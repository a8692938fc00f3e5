package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"user-dashboard/backend/internal/user/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, username, email, password_hash, is_admin,
	last_login_ip, last_login_device, last_login_location, last_login_lat,
	last_login_long, last_login_suspicious, last_login_at_display,
	created_at, updated_at`

// GetByID returns the user for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email, or nil if not found.
// Callers are expected to normalize the email first.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user. The user must have ID set; it is not assigned here.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, is_admin, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt,
	)
	return err
}

// List returns all users, newest first.
func (r *PostgresRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Delete removes the user row. Deleting a missing user is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

// UpdateLastLogin overwrites the user's login record columns.
func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, userID string, rec *domain.LoginRecord) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			last_login_ip = $2,
			last_login_device = $3,
			last_login_location = $4,
			last_login_lat = $5,
			last_login_long = $6,
			last_login_suspicious = $7,
			last_login_at_display = $8,
			updated_at = $9
		WHERE id = $1`,
		userID, rec.IP, rec.Device, rec.Location, rec.Lat, rec.Long, rec.Suspicious, rec.Timestamp,
		time.Now().UTC(),
	)
	return err
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*domain.User, error) {
	var (
		u          domain.User
		ip         sql.NullString
		device     sql.NullString
		location   sql.NullString
		lat        sql.NullFloat64
		long       sql.NullFloat64
		suspicious sql.NullBool
		display    sql.NullString
	)
	err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin,
		&ip, &device, &location, &lat, &long, &suspicious, &display,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	// A login record exists once any login has been stored; the display
	// timestamp is always written, so use it as the presence marker.
	if display.Valid {
		u.LastLogin = &domain.LoginRecord{
			IP:         ip.String,
			Device:     device.String,
			Location:   location.String,
			Lat:        lat.Float64,
			Long:       long.Float64,
			Suspicious: suspicious.Bool,
			Timestamp:  display.String,
		}
	}
	return &u, nil
}
