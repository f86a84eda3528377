// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Sixcent HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Connect the mail queue (RabbitMQ, or in-process fallback).
//  7. Wire domain services and HTTP handlers.
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

	"github.com/taibuivan/sixcent/internal/api"
	"github.com/taibuivan/sixcent/internal/platform/config"
	"github.com/taibuivan/sixcent/internal/platform/constants"
	"github.com/taibuivan/sixcent/internal/platform/mailer"
	"github.com/taibuivan/sixcent/internal/platform/migration"
	pgstore "github.com/taibuivan/sixcent/internal/platform/postgres"
	redisstore "github.com/taibuivan/sixcent/internal/platform/redis"
	"github.com/taibuivan/sixcent/internal/users/account"
	"github.com/taibuivan/sixcent/internal/users/auth"
	"github.com/taibuivan/sixcent/internal/users/identity"
	"github.com/taibuivan/sixcent/internal/users/streak"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Sixcent] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context outlives startup: the rate limiter's cleanup loop and
	// the in-process mail worker hang off it.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup context with a 30s deadline so misconfiguration is caught
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Mail Queue ─────────────────────────────────────────────────────
	var enqueuer mailer.Enqueuer
	if cfg.RabbitURL != "" {
		amqpEnqueuer, err := mailer.NewAMQPEnqueuer(cfg.RabbitURL, log)
		must(log, err, "connect to rabbitmq")
		defer func() {
			log.Info("closing rabbitmq connection")
			if cerr := amqpEnqueuer.Close(); cerr != nil {
				log.Error("rabbitmq close error", slog.Any("error", cerr))
			}
		}()
		enqueuer = amqpEnqueuer
	} else {
		log.Warn("RABBITMQ_URL not set, mail jobs are logged in-process only")
		enqueuer = mailer.NewChannelEnqueuer(rootCtx, nil, log)
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	bearerTokenRepository := auth.NewBearerTokenRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(pool)
	confirmationTokenRepository := auth.NewConfirmationTokenRepository(pool)

	streakRepository := streak.NewStreakRepository(pool)
	dayMarker := streak.NewRedisDayMarker(rdb)
	loginTracker := streak.NewTracker(streakRepository, dayMarker, log)

	authService := auth.NewService(auth.ServiceDeps{
		Users:              userRepository,
		BearerTokens:       bearerTokenRepository,
		ResetTokens:        resetTokenRepository,
		ConfirmationTokens: confirmationTokenRepository,
		Streaks:            loginTracker,
		Facebook:           identity.NewFacebookVerifier(cfg.FacebookProfileURL),
		Line:               identity.NewLineVerifier(cfg.LineProfileURL),
		Mailer:             enqueuer,
		ServerURL:          cfg.ServerURL,
		DeepLinkScheme:     cfg.DeepLinkScheme,
		MailFrom:           cfg.MailFromAddress,
		Logger:             log,
	})
	authHandler := auth.NewHandler(authService)

	ratingRepository := account.NewRatingRepository(pool)
	accountService := account.NewService(userRepository, ratingRepository, log)
	accountHandler := account.NewHandler(accountService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
	}

	server := api.NewServer(rootCtx, cfg, log, authService, handlers)

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
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
