package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/apperrors"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
	productdomain "user-dashboard/backend/internal/product/domain"
)

func (s *Server) opProducts(ctx context.Context, _ identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	products, err := s.deps.Products.List(ctx)
	if err != nil {
		return nil, err
	}
	return toProductViews(products), nil
}

func (s *Server) opProduct(ctx context.Context, _ identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	p, err := s.deps.Products.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	v := toProductView(p)
	return &v, nil
}

// opSearchProducts matches by name substring and decorates the result set
// with recommendation copy. Copy generation can never fail the search.
func (s *Server) opSearchProducts(ctx context.Context, _ identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		Query string `json:"query"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, fmt.Errorf("query is required: %w", apperrors.ErrInvalidArgument)
	}
	products, err := s.deps.Products.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	return searchProductsView{
		Products: toProductViews(products),
		Message:  s.deps.Recommend.SearchMessage(ctx, query, products),
	}, nil
}

func (s *Server) opAddProduct(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	if _, err := authz.RequireAdmin(rc); err != nil {
		return nil, err
	}
	var in struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Description string  `json:"description"`
		Image       string  `json:"image"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", apperrors.ErrInvalidArgument)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrInvalidArgument)
	}
	now := time.Now().UTC()
	p := &productdomain.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Price:       in.Price,
		Description: in.Description,
		Image:       in.Image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.deps.Products.Create(ctx, p); err != nil {
		return nil, err
	}
	return toProductView(p), nil
}
