package repository

import (
	"context"
	"database/sql"

	"user-dashboard/backend/internal/bookmark/domain"
	productdomain "user-dashboard/backend/internal/product/domain"
)

// PostgresRepository implements Repository backed by Postgres.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a bookmark repository using the given db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Add(ctx context.Context, b *domain.Bookmark) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, user_id, product, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, product) DO NOTHING`,
		b.ID, b.UserID, b.ProductID, b.CreatedAt,
	)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, userID, productID string) (*domain.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, bookmarkSelect+` WHERE b.user_id = $1 AND b.product = $2`, userID, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out, err := collectBookmarks(rows)
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return out[0], nil
}

func (r *PostgresRepository) Remove(ctx context.Context, userID, productID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM bookmarks WHERE user_id = $1 AND product = $2`,
		userID, productID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

const bookmarkSelect = `
	SELECT b.id, b.user_id, b.product, b.created_at,
	       p.id, p.name, p.price, p.description, p.image,
	       (SELECT COUNT(*) FROM reviews rv WHERE rv.product = p.id) AS reviews_count,
	       p.created_at, p.updated_at
	FROM bookmarks b JOIN products p ON p.id = b.product`

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	rows, err := r.db.QueryContext(ctx, bookmarkSelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectBookmarks(rows)
}

func (r *PostgresRepository) ListGroupedByUser(ctx context.Context) ([]*domain.UserBookmarks, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT b.id, b.user_id, b.product, b.created_at,
		       p.id, p.name, p.price, p.description, p.image,
		       (SELECT COUNT(*) FROM reviews rv WHERE rv.product = p.id) AS reviews_count,
		       p.created_at, p.updated_at,
		       u.username
		FROM bookmarks b
		JOIN products p ON p.id = b.product
		JOIN users u ON u.id = b.user_id
		ORDER BY u.username, b.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.UserBookmarks
	byUser := map[string]*domain.UserBookmarks{}
	for rows.Next() {
		var username string
		b, err := scanBookmark(rows, &username)
		if err != nil {
			return nil, err
		}
		group, ok := byUser[b.UserID]
		if !ok {
			group = &domain.UserBookmarks{UserID: b.UserID, Username: username}
			byUser[b.UserID] = group
			out = append(out, group)
		}
		group.Bookmarks = append(group.Bookmarks, b)
	}
	return out, rows.Err()
}

func collectBookmarks(rows *sql.Rows) ([]*domain.Bookmark, error) {
	var out []*domain.Bookmark
	for rows.Next() {
		b, err := scanBookmark(rows, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// scanBookmark reads one joined row; username is scanned only when non-nil.
func scanBookmark(rows *sql.Rows, username *string) (*domain.Bookmark, error) {
	var b domain.Bookmark
	var p productdomain.Product
	dest := []any{
		&b.ID, &b.UserID, &b.ProductID, &b.CreatedAt,
		&p.ID, &p.Name, &p.Price, &p.Description, &p.Image,
		&p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
	}
	if username != nil {
		dest = append(dest, username)
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	b.Product = &p
	return &b, nil
}
