package server

import (
	"context"
	"encoding/json"
	"fmt"

	"user-dashboard/backend/internal/apperrors"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
)

// opCart returns the caller's cart, creating an empty one on first use.
func (s *Server) opCart(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	cart, err := s.deps.Carts.GetOrCreateByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return toCartView(cart), nil
}

func (s *Server) opCartItemByProductID(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	cart, err := s.deps.Carts.GetOrCreateByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	item := cart.Item(in.ProductID)
	if item == nil {
		return nil, nil
	}
	var p *productView
	if item.Product != nil {
		pv := toProductView(item.Product)
		p = &pv
	}
	return &cartItemView{Product: p, Quantity: item.Quantity}, nil
}

func (s *Server) opAddToCart(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	return s.mutateCart(ctx, rc, input, s.deps.Carts.AddItem)
}

func (s *Server) opRemoveFromCart(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	return s.mutateCart(ctx, rc, input, s.deps.Carts.RemoveItem)
}

// mutateCart runs one quantity mutation against the caller's cart and returns
// the cart as it stands afterwards.
func (s *Server) mutateCart(
	ctx context.Context,
	rc identitydomain.RequestContext,
	input json.RawMessage,
	mutate func(ctx context.Context, cartID, productID string, quantity int) error,
) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	var in struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.ProductID == "" {
		return nil, fmt.Errorf("productId is required: %w", apperrors.ErrInvalidArgument)
	}
	cart, err := s.deps.Carts.GetOrCreateByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if err := mutate(ctx, cart.ID, in.ProductID, in.Quantity); err != nil {
		return nil, err
	}
	cart, err = s.deps.Carts.GetOrCreateByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return toCartView(cart), nil
}
