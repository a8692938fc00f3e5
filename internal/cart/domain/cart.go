package domain

import (
	"time"

	productdomain "user-dashboard/backend/internal/product/domain"
)

// CartItem is one product line in a cart. Product is joined on read.
type CartItem struct {
	ProductID string
	Quantity  int
	Product   *productdomain.Product
}

// Cart is a user's shopping cart; one per user, created lazily.
type Cart struct {
	ID        string
	UserID    string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Item returns the line for productID, or nil if the cart has none.
func (c *Cart) Item(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
