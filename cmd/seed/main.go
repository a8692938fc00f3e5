// seed populates a dev database with a known admin, a regular user, and a
// small catalog so the dashboard has data on first run. Safe to re-run; it
// skips itself when the dev admin already exists.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/config"
	"user-dashboard/backend/internal/db"
	productdomain "user-dashboard/backend/internal/product/domain"
	productrepo "user-dashboard/backend/internal/product/repository"
	"user-dashboard/backend/internal/security"
	tododomain "user-dashboard/backend/internal/todo/domain"
	todorepo "user-dashboard/backend/internal/todo/repository"
	userdomain "user-dashboard/backend/internal/user/domain"
	userrepo "user-dashboard/backend/internal/user/repository"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin1234"
	devEmail      = "dev@example.com"
	devPassword   = "dev12345"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users := userrepo.NewPostgresRepository(pool)
	existing, err := users.GetByEmail(ctx, adminEmail)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	if existing != nil {
		fmt.Printf("Seed already applied (%s exists). Skipping.\n", adminEmail)
		return
	}

	hasher := security.NewHasher(cfg.BcryptCost)
	now := time.Now().UTC()

	admin, err := seedUser(ctx, users, hasher, now, "admin", adminEmail, adminPassword, true)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	dev, err := seedUser(ctx, users, hasher, now, "dev", devEmail, devPassword, false)
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	products := productrepo.NewPostgresRepository(pool)
	for _, p := range []*productdomain.Product{
		{Name: "Mechanical Keyboard", Price: 129.99, Description: "Hot-swappable 75% board with PBT keycaps.", Image: "https://picsum.photos/seed/keyboard/400/300"},
		{Name: "Standing Desk", Price: 449.00, Description: "Dual-motor sit-stand desk, 120x70cm top.", Image: "https://picsum.photos/seed/desk/400/300"},
		{Name: "Noise Cancelling Headphones", Price: 299.50, Description: "Over-ear ANC headphones, 30h battery.", Image: "https://picsum.photos/seed/headphones/400/300"},
		{Name: "Ceramic Mug", Price: 14.25, Description: "350ml stoneware mug, dishwasher safe.", Image: "https://picsum.photos/seed/mug/400/300"},
	} {
		p.ID = uuid.NewString()
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := products.Create(ctx, p); err != nil {
			log.Fatalf("seed product %s: %v", p.Name, err)
		}
	}

	todos := todorepo.NewPostgresRepository(pool)
	for _, t := range []*tododomain.Todo{
		{Name: "Ada Lovelace", Title: "Engineer", Age: 28, Company: "Analytical Ltd", Experience: 6, Address: "12 Byron Row, London", CreatedBy: dev.ID},
		{Name: "Grace Hopper", Title: "Rear Admiral", Age: 44, Company: "Navy Research", Experience: 20, Address: "1 Harbor Way, Arlington", CreatedBy: admin.ID},
	} {
		t.ID = uuid.NewString()
		t.CreatedAt = now
		t.UpdatedAt = now
		if err := todos.Create(ctx, t); err != nil {
			log.Fatalf("seed todo %s: %v", t.Name, err)
		}
	}

	fmt.Println("Seed complete. Dev logins:")
	fmt.Printf("  admin: %s / %s\n", adminEmail, adminPassword)
	fmt.Printf("  user:  %s / %s\n", devEmail, devPassword)
}

func seedUser(
	ctx context.Context,
	users *userrepo.PostgresRepository,
	hasher *security.Hasher,
	now time.Time,
	username, email, password string,
	isAdmin bool,
) (*userdomain.User, error) {
	hash, err := hasher.Hash([]byte(password))
	if err != nil {
		return nil, err
	}
	u := &userdomain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
