// Package authz is the authorization gate consulted by every protected
// operation. Both guards are pure and synchronous over an already-built
// request context; they never touch storage, so they are unit-testable
// without any repository.
package authz

import (
	"user-dashboard/backend/internal/apperrors"
	"user-dashboard/backend/internal/identity/domain"
)

// RequireAuthenticated ensures the request carries a resolved identity.
// Returns the identity, or apperrors.ErrUnauthorized for anonymous callers.
func RequireAuthenticated(rc domain.RequestContext) (domain.Identity, error) {
	caller, ok := rc.Caller()
	if !ok || caller.ID == "" {
		return domain.Identity{}, apperrors.ErrUnauthorized
	}
	return caller, nil
}

// RequireAdmin ensures the request carries an admin identity. Returns
// apperrors.ErrUnauthorized for anonymous callers and apperrors.ErrForbidden
// for authenticated non-admins.
func RequireAdmin(rc domain.RequestContext) (domain.Identity, error) {
	caller, err := RequireAuthenticated(rc)
	if err != nil {
		return domain.Identity{}, err
	}
	if !caller.IsAdmin {
		return domain.Identity{}, apperrors.ErrForbidden
	}
	return caller, nil
}
