// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Saint Sophia catalogue HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations when enabled.
//  5. Wire metrics, token verification and HTTP handlers.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/sophia/internal/api"
	"github.com/taibuivan/sophia/internal/image"
	"github.com/taibuivan/sophia/internal/inscription"
	"github.com/taibuivan/sophia/internal/panel"
	"github.com/taibuivan/sophia/internal/platform/config"
	"github.com/taibuivan/sophia/internal/platform/constants"
	"github.com/taibuivan/sophia/internal/platform/metrics"
	"github.com/taibuivan/sophia/internal/platform/migration"
	pgstore "github.com/taibuivan/sophia/internal/platform/postgres"
	redisstore "github.com/taibuivan/sophia/internal/platform/redis"
	"github.com/taibuivan/sophia/internal/platform/sec"
	"github.com/taibuivan/sophia/internal/reference"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String(constants.FieldVersion, constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String(constants.FieldApp, constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("iiif_url", cfg.IIIFURL),
	)

	// Misconfigured backends fail fast instead of hanging the rollout.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	poolOptions := pgstore.ServerOptions()
	poolOptions.MaxConns = cfg.DatabaseMaxConns
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, poolOptions, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	if cfg.RunMigrations {
		must(log, migration.NewRunner(cfg.DatabaseURL, cfg.MigrationPath, log).Up(), "run migrations")
	}

	// ── 6. Metrics ────────────────────────────────────────────────────────
	recorder, err := metrics.New()
	must(log, err, "initialize metrics")
	must(log, recorder.Register(pgstore.NewPoolCollector(pool, metrics.Namespace)), "register pool collector")

	// ── 7. Token Verification ─────────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")
	if !tokens.Enabled() {
		log.Warn("token_verification_disabled", slog.String("reason", "JWT_PUBLIC_KEY_PATH is empty"))
	}

	// ── 8. Health handlers ────────────────────────────────────────────────
	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: "postgres", Probe: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) }},
		{Name: "redis", Probe: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) }},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	inscriptionService := inscription.NewService(inscription.NewPostgresRepository(pool), log, recorder, inscription.Limits{
		SuggestionsPerField: cfg.AutocompleteLimit,
		MaxSuggestions:      cfg.AutocompleteMaxResults,
	})

	urls := image.NewURLBuilder(cfg.IIIFURL)
	infoClient := image.NewInfoClient(&http.Client{Timeout: cfg.IIIFTimeout}, urls)
	imageService := image.NewService(
		image.NewPostgresRepository(pool),
		urls,
		infoClient,
		image.NewRedisDimensionCache(rdb),
		recorder,
		log,
	)

	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Inscription: inscription.NewHandler(inscriptionService),
		Panel:       panel.NewHandler(panel.NewService(panel.NewPostgresRepository(pool))),
		Image:       image.NewHandler(imageService),
		Reference:   reference.NewHandler(reference.NewService(reference.NewPostgresRepository(pool))),
	}

	// The server context stops background middleware workers on shutdown.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, recorder, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_failed", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring; after startup every error is returned.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
