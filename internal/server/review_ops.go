package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/apperrors"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
	reviewdomain "user-dashboard/backend/internal/review/domain"
)

func (s *Server) opReviewsByProduct(ctx context.Context, _ identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ProductID string `json:"productId"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	reviews, err := s.deps.Reviews.ListByProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	out := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, toReviewView(r))
	}
	return out, nil
}

func (s *Server) opAddReview(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	var in struct {
		ProductID string `json:"productId"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	review := &reviewdomain.Review{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		UserID:    caller.ID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := review.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidArgument)
	}
	if err := s.deps.Reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	created, err := s.deps.Reviews.GetByID(ctx, review.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = review
	}
	return toReviewView(created), nil
}

func (s *Server) opUpdateReview(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID      string  `json:"id"`
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	review, err := s.authorizeReviewWrite(ctx, rc, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Rating != nil {
		review.Rating = *in.Rating
	}
	if in.Comment != nil {
		review.Comment = *in.Comment
	}
	if err := review.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrInvalidArgument)
	}
	review.UpdatedAt = time.Now().UTC()
	if err := s.deps.Reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return toReviewView(review), nil
}

func (s *Server) opDeleteReview(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if _, err := s.authorizeReviewWrite(ctx, rc, in.ID); err != nil {
		return nil, err
	}
	if err := s.deps.Reviews.Delete(ctx, in.ID); err != nil {
		return nil, err
	}
	return true, nil
}

// authorizeReviewWrite loads the review and enforces author-or-admin.
func (s *Server) authorizeReviewWrite(ctx context.Context, rc identitydomain.RequestContext, id string) (*reviewdomain.Review, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	review, err := s.deps.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, fmt.Errorf("review %q: %w", id, apperrors.ErrNotFound)
	}
	if review.UserID != caller.ID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return review, nil
}
