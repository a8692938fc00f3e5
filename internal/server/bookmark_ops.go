package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"user-dashboard/backend/internal/apperrors"
	bookmarkdomain "user-dashboard/backend/internal/bookmark/domain"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
)

func (s *Server) opBookmarks(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	caller, err := authz.RequireAuthenticated(rc)
	if err != nil {
		return nil, err
	}
	bookmarks, err := s.deps.Bookmarks.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	return toBookmarkViews(bookmarks), nil
}

func (s *Server) opBookmarksGroupedByUser(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	if _, err := authz.RequireAdmin(rc); err != nil {
		return nil, err
	}
	groups, err := s.deps.Bookmarks.ListGroupedByUser(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]userBookmarksView, 0, len(groups))
	for _, g := range groups {
		out = append(out, userBookmarksView{
			UserID:    g.UserID,
			Username:  g.Username,
			Bookmarks: toBookmarkViews(g.Bookmarks),
		})
	}
	return out, nil
}

// opAddBookmark is idempotent: bookmarking an already-bookmarked product
// returns the existing bookmark.
func (s *Server) opAddBookmark(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
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
	if in.ProductID == "" {
		return nil, fmt.Errorf("productId is required: %w", apperrors.ErrInvalidArgument)
	}
	existing, err := s.deps.Bookmarks.Get(ctx, caller.ID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return toBookmarkView(existing), nil
	}
	b := &bookmarkdomain.Bookmark{
		ID:        uuid.New().String(),
		UserID:    caller.ID,
		ProductID: in.ProductID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.deps.Bookmarks.Add(ctx, b); err != nil {
		return nil, err
	}
	created, err := s.deps.Bookmarks.Get(ctx, caller.ID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		created = b
	}
	return toBookmarkView(created), nil
}

func (s *Server) opRemoveBookmark(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
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
	removed, err := s.deps.Bookmarks.Remove(ctx, caller.ID, in.ProductID)
	if err != nil {
		return nil, err
	}
	return removed, nil
}
