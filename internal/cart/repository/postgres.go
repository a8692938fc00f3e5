package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/cart/domain"
	productdomain "user-dashboard/backend/internal/product/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a cart repository using the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreateByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := r.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		now := time.Now().UTC()
		cart = &domain.Cart{
			ID:        uuid.New().String(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO carts (id, user_id, created_at, updated_at) VALUES ($1, $2, $3, $4)
			 ON CONFLICT (user_id) DO NOTHING`,
			cart.ID, cart.UserID, cart.CreatedAt, cart.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		// A concurrent create may have won; read back the persisted row.
		cart, err = r.getByUser(ctx, userID)
		if err != nil {
			return nil, err
		}
	}
	items, err := r.listItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

func (r *PostgresRepository) AddItem(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart, product, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart, product) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity`,
		cartID, productID, quantity,
	)
	if err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *PostgresRepository) RemoveItem(ctx context.Context, cartID, productID string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE cart_items SET quantity = quantity - $3 WHERE cart = $1 AND product = $2`,
		cartID, productID, quantity,
	)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart = $1 AND product = $2 AND quantity <= 0`,
		cartID, productID,
	)
	if err != nil {
		return err
	}
	return r.touch(ctx, cartID)
}

func (r *PostgresRepository) getByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`, userID,
	).Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRepository) listItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.product, ci.quantity,
		       p.id, p.name, p.price, p.description, p.image,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.product = p.id) AS reviews_count,
		       p.created_at, p.updated_at
		FROM cart_items ci JOIN products p ON p.id = ci.product
		WHERE ci.cart = $1
		ORDER BY p.name`,
		cartID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var p productdomain.Product
		err := rows.Scan(
			&item.ProductID, &item.Quantity,
			&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
			&p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Product = &p
		out = append(out, item)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) touch(ctx context.Context, cartID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE carts SET updated_at = $2 WHERE id = $1`,
		cartID, time.Now().UTC(),
	)
	return err
}
