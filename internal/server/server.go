// Package server exposes the application over HTTP: a single operation
// endpoint, a websocket presence endpoint, and a health probe. Identity is
// resolved once per request by the middleware; handlers gate themselves
// through the authorization checks.
package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	bookmarkrepo "user-dashboard/backend/internal/bookmark/repository"
	cartrepo "user-dashboard/backend/internal/cart/repository"
	commentrepo "user-dashboard/backend/internal/comment/repository"
	identityservice "user-dashboard/backend/internal/identity/service"
	"user-dashboard/backend/internal/presence"
	productrepo "user-dashboard/backend/internal/product/repository"
	"user-dashboard/backend/internal/recommend"
	reviewrepo "user-dashboard/backend/internal/review/repository"
	"user-dashboard/backend/internal/security"
	todorepo "user-dashboard/backend/internal/todo/repository"
	userrepo "user-dashboard/backend/internal/user/repository"
)

// Pinger is the part of *sql.DB the health probe needs.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps holds the service and repository dependencies for the HTTP server.
type Deps struct {
	Auth      *identityservice.AuthService
	Users     userrepo.Repository
	Todos     todorepo.Repository
	Comments  commentrepo.Repository
	Products  productrepo.Repository
	Reviews   reviewrepo.Repository
	Carts     cartrepo.Repository
	Bookmarks bookmarkrepo.Repository
	Recommend *recommend.Service
	Presence  *presence.Tracker
	Tokens    *security.TokenProvider
	DB        Pinger

	AllowedOrigins []string
	Logger         *slog.Logger
}

// Server dispatches operation requests to the services behind Deps.
type Server struct {
	deps   Deps
	logger *slog.Logger
	ops    map[string]opHandler
}

// New returns a Server with the full operation table registered.
func New(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{deps: deps, logger: logger.With("component", "server")}
	s.registerOps()
	return s
}

// Router returns the HTTP handler: CORS, request-context middleware, and the
// three endpoints, wrapped with otelhttp for tracing.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(RequestContextMiddleware(s.deps.Tokens))
	r.Post("/api", s.handleOps)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", s.handleHealth)
	return otelhttp.NewHandler(r, "user-dashboard")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		if err := s.deps.DB.PingContext(r.Context()); err != nil {
			s.logger.Error("health probe failed", "error", err)
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
