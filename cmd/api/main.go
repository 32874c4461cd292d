package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/PratikDhanave/sponsorship-service/internal/auth"
	"github.com/PratikDhanave/sponsorship-service/internal/config"
	"github.com/PratikDhanave/sponsorship-service/internal/content"
	"github.com/PratikDhanave/sponsorship-service/internal/dupscan"
	"github.com/PratikDhanave/sponsorship-service/internal/httpserver"
	"github.com/PratikDhanave/sponsorship-service/internal/logging"
	"github.com/PratikDhanave/sponsorship-service/internal/metrics"
	"github.com/PratikDhanave/sponsorship-service/internal/store"
)

// main boots the service: config → logger → DB → schema → HTTP server.
func main() {
	// Load runtime config from environment (DB_URL, API_KEYS, JWT_SECRET, CONTENT_*).
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the identity store (Postgres) using a connection pool.
	db, err := store.NewPostgresStore(cfg.DBURL)
	if err != nil {
		return err
	}
	defer db.Close()

	// Ensure required tables/indexes exist so a fresh database is enough.
	if err := db.EnsureSchema(); err != nil {
		return err
	}

	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, 0)
	if err != nil {
		return err
	}

	cms, err := content.NewClient(cfg.Content, nil)
	if err != nil {
		return err
	}
	scanner, err := dupscan.NewRunner(cms, cfg.Content.PageSize, logger.Named("dupscan"))
	if err != nil {
		return err
	}

	router := httpserver.NewRouter(httpserver.Deps{
		Config:  cfg,
		Store:   db,
		Tokens:  tokens,
		Scanner: scanner,
		Metrics: metrics.New(),
		Log:     logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
