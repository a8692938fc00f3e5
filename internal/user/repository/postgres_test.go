package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"user-dashboard/backend/internal/user/domain"
)

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "username", "email", "password_hash", "is_admin",
		"last_login_ip", "last_login_device", "last_login_location", "last_login_lat",
		"last_login_long", "last_login_suspicious", "last_login_at_display",
		"created_at", "updated_at",
	})
}

func TestPostgresRepository_GetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("user@example.com").
		WillReturnRows(userRows().AddRow(
			"u1", "user", "user@example.com", "hash", false,
			"203.0.113.9", "Windows 10 - Chrome 120", "Delhi, Delhi, IN", 28.61, 77.20, false,
			"August 30, 2026 at 09:15:04 PM", now, now,
		))

	u, err := repo.GetByEmail(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u == nil || u.ID != "u1" {
		t.Fatalf("GetByEmail returned %+v", u)
	}
	if u.LastLogin == nil {
		t.Fatal("LastLogin should be populated")
	}
	if u.LastLogin.Location != "Delhi, Delhi, IN" || u.LastLogin.Device != "Windows 10 - Chrome 120" {
		t.Errorf("LastLogin = %+v", u.LastLogin)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresRepository_GetByEmailNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("missing@example.com").
		WillReturnRows(userRows())

	u, err := repo.GetByEmail(context.Background(), "missing@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if u != nil {
		t.Errorf("GetByEmail for missing user = %+v, want nil", u)
	}
}

func TestPostgresRepository_GetByIDNoLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("u2").
		WillReturnRows(userRows().AddRow(
			"u2", "fresh", "fresh@example.com", "hash", false,
			nil, nil, nil, nil, nil, nil, nil, now, now,
		))

	u, err := repo.GetByID(context.Background(), "u2")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if u.LastLogin != nil {
		t.Errorf("LastLogin for never-logged-in user = %+v, want nil", u.LastLogin)
	}
}

func TestPostgresRepository_UpdateLastLogin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rec := &domain.LoginRecord{
		IP: "203.0.113.9", Device: "Mac 14 - Safari 17", Location: "Mumbai, Maharashtra, IN",
		Lat: 19.07, Long: 72.87, Suspicious: true, Timestamp: "September 1, 2026 at 10:04:00 AM",
	}
	mock.ExpectExec("UPDATE users SET").
		WithArgs("u1", rec.IP, rec.Device, rec.Location, rec.Lat, rec.Long, rec.Suspicious, rec.Timestamp, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(context.Background(), "u1", rec); err != nil {
		t.Fatalf("UpdateLastLogin: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	now := time.Now().UTC()
	u := &domain.User{
		ID: "u1", Username: "user", Email: "user@example.com", PasswordHash: "hash",
		CreatedAt: now, UpdatedAt: now,
	}
	mock.ExpectExec("INSERT INTO users").
		WithArgs(u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin, u.CreatedAt, u.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("Create: %v", err)
	}
}
