package server

import (
	"context"

	identitydomain "user-dashboard/backend/internal/identity/domain"
)

type contextKey struct{ name string }

var requestContextKey = contextKey{"request_context"}

// withRequestContext returns ctx carrying the per-request identity bundle.
func withRequestContext(ctx context.Context, rc identitydomain.RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContextFrom returns the request context set by the middleware, or an
// anonymous one when the middleware did not run (e.g. in tests).
func RequestContextFrom(ctx context.Context) identitydomain.RequestContext {
	rc, ok := ctx.Value(requestContextKey).(identitydomain.RequestContext)
	if !ok {
		return identitydomain.NewRequestContext(nil, "", "")
	}
	return rc
}
