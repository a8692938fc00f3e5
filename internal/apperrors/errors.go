// Package apperrors defines the error taxonomy shared by services and the HTTP layer.
// Services return these sentinels (or wrap them); the transport maps them to status codes.
package apperrors

import (
	"errors"
	"net/http"
)

var (
	// ErrUnauthorized means the request carried no usable identity (missing, malformed, or expired token).
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden means the caller is authenticated but lacks the required capability.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is returned for login failures. It is deliberately the same
	// for "no such account" and "wrong password" so callers cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrConflict means a unique field (email, username) is already taken.
	ErrConflict = errors.New("conflict")
	// ErrInvalidArgument means the request input failed validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUpstreamUnavailable marks a collaborator failure (geolocation, AI copy).
	// It is recovered locally and must not reach API callers.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Code returns the wire error code for err, or "internal" for unknown errors.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid_argument"
	default:
		return "internal"
	}
}

// HTTPStatus maps err to an HTTP status code. Unknown errors map to 500.
// ErrUpstreamUnavailable intentionally has no mapping; it must be recovered
// before reaching the transport, so it falls through to 500 if leaked.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
