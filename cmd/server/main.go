package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	bookmarkrepo "user-dashboard/backend/internal/bookmark/repository"
	cartrepo "user-dashboard/backend/internal/cart/repository"
	commentrepo "user-dashboard/backend/internal/comment/repository"
	"user-dashboard/backend/internal/config"
	"user-dashboard/backend/internal/db"
	"user-dashboard/backend/internal/geoip"
	identityservice "user-dashboard/backend/internal/identity/service"
	"user-dashboard/backend/internal/presence"
	productrepo "user-dashboard/backend/internal/product/repository"
	"user-dashboard/backend/internal/recommend"
	reviewrepo "user-dashboard/backend/internal/review/repository"
	"user-dashboard/backend/internal/security"
	"user-dashboard/backend/internal/server"
	otelsetup "user-dashboard/backend/internal/telemetry/otel"
	todorepo "user-dashboard/backend/internal/todo/repository"
	userrepo "user-dashboard/backend/internal/user/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	providers, err := otelsetup.NewProviders(context.Background(), cfg.OTLPEndpoint, "user-dashboard", cfg.OTLPInsecure)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	providers.SetGlobal()

	pool, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	tokens := security.NewTokenProvider(cfg.JWTSecret, cfg.TokenTTL())
	hasher := security.NewHasher(cfg.BcryptCost)
	geo := geoip.NewClient(cfg.IPInfoBaseURL, cfg.IPInfoToken, cfg.GeoTimeout())

	auth := identityservice.NewAuthService(
		userrepo.NewPostgresRepository(pool),
		geo,
		hasher,
		tokens,
		cfg.GeoTimeout(),
		logger,
	)

	var generator recommend.Generator
	if cfg.GeminiAPIKey != "" {
		generator = recommend.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL)
	}

	srv := server.New(server.Deps{
		Auth:      auth,
		Users:     userrepo.NewPostgresRepository(pool),
		Todos:     todorepo.NewPostgresRepository(pool),
		Comments:  commentrepo.NewPostgresRepository(pool),
		Products:  productrepo.NewPostgresRepository(pool),
		Reviews:   reviewrepo.NewPostgresRepository(pool),
		Carts:     cartrepo.NewPostgresRepository(pool),
		Bookmarks: bookmarkrepo.NewPostgresRepository(pool),
		Recommend: recommend.NewService(generator, logger),
		Presence:  presence.NewTracker(logger),
		Tokens:    tokens,
		DB:        pool,

		AllowedOrigins: cfg.AllowedOriginsList(),
		Logger:         logger,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown", "error", err)
	}
	logger.Info("http server stopped")
}
