package db

import (
	"os"
	"testing"
)

func TestOpen_InvalidDSN(t *testing.T) {
	for _, dsn := range []string{"", "invalid-dsn", "postgres://"} {
		pool, err := Open(dsn)
		if err == nil {
			pool.Close()
			t.Errorf("Open(%q) should return error", dsn)
			continue
		}
		if pool != nil {
			t.Errorf("Open(%q) should return nil pool on error", dsn)
		}
	}
}

func TestOpen_Success(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	pool, err := Open(dsn)
	if err != nil {
		t.Skipf("database connection failed: %v", err)
	}
	defer pool.Close()

	var result int
	if err := pool.QueryRow("SELECT 1").Scan(&result); err != nil {
		t.Fatalf("query: %v", err)
	}
	if result != 1 {
		t.Fatalf("result = %d, want 1", result)
	}
}
