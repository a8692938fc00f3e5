package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/apperrors"
	commentdomain "user-dashboard/backend/internal/comment/domain"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
)

// opCommentFeed is the public feed; no gate.
func (s *Server) opCommentFeed(ctx context.Context, _ identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	comments, err := s.deps.Comments.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCommentViews(comments), nil
}

func (s *Server) opMyComments(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	comments, err := s.deps.Comments.ListByAuthor(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return toCommentViews(comments), nil
}

func (s *Server) opAllComments(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	if _, err := authz.RequireAdmin(rc); err != nil {
		return nil, err
	}
	comments, err := s.deps.Comments.List(ctx)
	if err != nil {
		return nil, err
	}
	return toCommentViews(comments), nil
}

func (s *Server) opAddComment(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	var in struct {
		Content string `json:"content"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, fmt.Errorf("content is required: %w", apperrors.ErrInvalidArgument)
	}
	now := time.Now().UTC()
	comment := &commentdomain.Comment{
		ID:        uuid.New().String(),
		Content:   in.Content,
		AuthorID:  caller.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.Comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	// Reload to pick up the joined author fields.
	created, err := s.deps.Comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = comment
	}
	return toCommentView(created), nil
}

func (s *Server) opUpdateComment(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID      string `json:"id"`
		Content string `json:"content"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if _, err := s.authorizeCommentWrite(ctx, rc, in.ID); err != nil {
		return nil, err
	}
	if in.Content == "" {
		return nil, fmt.Errorf("content is required: %w", apperrors.ErrInvalidArgument)
	}
	if err := s.deps.Comments.UpdateContent(ctx, in.ID, in.Content); err != nil {
		return nil, err
	}
	updated, err := s.deps.Comments.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("comment %q: %w", in.ID, apperrors.ErrNotFound)
	}
	return toCommentView(updated), nil
}

func (s *Server) opDeleteComment(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if _, err := s.authorizeCommentWrite(ctx, rc, in.ID); err != nil {
		return nil, err
	}
	if err := s.deps.Comments.Delete(ctx, in.ID); err != nil {
		return nil, err
	}
	return true, nil
}

// authorizeCommentWrite loads the comment and enforces author-or-admin.
func (s *Server) authorizeCommentWrite(ctx context.Context, rc identitydomain.RequestContext, id string) (*commentdomain.Comment, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	comment, err := s.deps.Comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, fmt.Errorf("comment %q: %w", id, apperrors.ErrNotFound)
	}
	if comment.AuthorID != caller.ID && !caller.IsAdmin {
		return nil, apperrors.ErrForbidden
	}
	return comment, nil
}
