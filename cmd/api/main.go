// Package main is the entry point for the TripCrew API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/tripcrew/internal/auth"
	"github.com/pkordes/tripcrew/internal/config"
	"github.com/pkordes/tripcrew/internal/handler"
	"github.com/pkordes/tripcrew/internal/logging"
	"github.com/pkordes/tripcrew/internal/metrics"
	"github.com/pkordes/tripcrew/internal/middleware"
	"github.com/pkordes/tripcrew/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Default logger: the configured one needs the config.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := logging.New(os.Stdout, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)

	ctx := context.Background()
	m := metrics.New()

	// --- Storage ----------------------------------------------------------
	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.StorageDriver, "error", err)
		os.Exit(1)
	}
	defer store.close()

	// --- Service ----------------------------------------------------------
	opts := []service.Option{
		service.WithLogger(logger),
		service.WithMetrics(m),
		service.WithMaxAttempts(cfg.WriteAttempts),
	}
	if cfg.RedisURL != "" {
		codes, closeCache, err := openCodeIndex(ctx, cfg)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer closeCache()
		opts = append(opts, service.WithCodeIndex(codes))
		slog.Info("join-code cache enabled", "prefix", cfg.RedisPrefix, "ttl", cfg.CodeCacheTTL)
	}
	trips := service.NewTripService(store.trips, store.members, opts...)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer,
	// then metrics, CORS and the body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewMetrics(m))
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", m.Handler())

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	handler.NewServer(trips, logger).Register(r, middleware.RequireAuth(tokens))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "storage", cfg.StorageDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
