package server

import (
	"context"
	"encoding/json"
	"fmt"

	"user-dashboard/backend/internal/apperrors"
	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
)

// opUsers lists accounts for the admin dashboard. The caller's own capability
// tier is excluded: an admin sees the non-admin accounts it manages, not
// other admins.
func (s *Server) opUsers(ctx context.Context, rc identitydomain.RequestContext, _ json.RawMessage) (any, error) {
	caller, err := authz.RequireAdmin(rc)
	if err != nil {
		return nil, err
	}
	users, err := s.deps.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		if u.IsAdmin == caller.IsAdmin {
			continue
		}
		out = append(out, toUserView(u))
	}
	return out, nil
}

// opDeleteUser removes the account and everything it owns that has no
// standalone value (its todos).
func (s *Server) opDeleteUser(ctx context.Context, rc identitydomain.RequestContext, input json.RawMessage) (any, error) {
	if _, err := authz.RequireAdmin(rc); err != nil {
		return nil, err
	}
	var in struct {
		ID string `json:"id"`
	}
	if err := decodeInput(input, &in); err != nil {
		return nil, err
	}
	if in.ID == "" {
		return nil, fmt.Errorf("id is required: %w", apperrors.ErrInvalidArgument)
	}
	if err := s.deps.Todos.DeleteByCreator(ctx, in.ID); err != nil {
		return nil, err
	}
	if err := s.deps.Users.Delete(ctx, in.ID); err != nil {
		return nil, err
	}
	return true, nil
}
