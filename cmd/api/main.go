// Copyright (c) 2026 Agora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Agora HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Build the filter codec, the normalized cache and its snapshot persister.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/agora/internal/api"
	"github.com/taibuivan/agora/internal/cache/normalized"
	"github.com/taibuivan/agora/internal/cache/persist"
	"github.com/taibuivan/agora/internal/event/search"
	"github.com/taibuivan/agora/internal/platform/apperr"
	"github.com/taibuivan/agora/internal/platform/config"
	"github.com/taibuivan/agora/internal/platform/constants"
	"github.com/taibuivan/agora/internal/platform/migration"
	pgstore "github.com/taibuivan/agora/internal/platform/postgres"
	redisstore "github.com/taibuivan/agora/internal/platform/redis"
	"github.com/taibuivan/agora/internal/platform/sec"
	"github.com/taibuivan/agora/internal/savedsearch"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	logLevel := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})).With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		logLevel.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("filter_timezone", cfg.FilterTimezone),
	)

	// Every startup dependency must answer within 30s.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
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
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Codec, cache and token verification ────────────────────────────
	location, err := cfg.FilterLocation()
	must(log, err, "load filter timezone")
	codec := search.NewCodec(search.WithLocation(location))

	store := normalized.NewStore(normalized.DefaultPolicies())
	persister := persist.NewRedisPersister(rdb, cfg.CacheSnapshotKey, cfg.CacheSnapshotTTL, log)
	if err := persister.Load(startupCtx, store); err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			log.Warn("cache_snapshot_restore_skipped", slog.Any("error", err))
		}
	}

	tokens, err := sec.NewTokenService(cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CheckCache: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	savedSearchRepository := savedsearch.NewPostgresRepository(pool)
	savedSearchService := savedsearch.NewService(savedSearchRepository, codec, log)

	handlers := api.Handlers{
		Liveness:    liveness,
		Readiness:   readiness,
		Filters:     search.NewHandler(codec),
		SavedSearch: savedsearch.NewHandler(savedSearchService),
		Cache:       persist.NewHandler(store, persister),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Keep the cache warm for the next process.
	saveCtx, saveCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer saveCancel()
	if err := persister.Save(saveCtx, store); err != nil {
		log.Error("cache_snapshot_save_failed", slog.Any("error", err))
	}

	log.Info("server_stopped_cleanly")
}

// must exits with a "startup_failure" log line when err is non-nil.
// Only startup wiring calls it.
func must(log *slog.Logger, err error, step string) {
	if err == nil {
		return
	}
	log.Error("startup_failure", slog.String("step", step), slog.Any("error", err))
	os.Exit(1)
}
