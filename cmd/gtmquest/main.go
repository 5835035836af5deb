package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/gtmquest/agencymatch/internal/config"
	"github.com/gtmquest/agencymatch/internal/db/postgres"
	dbRedis "github.com/gtmquest/agencymatch/internal/db/redis"
	logpkg "github.com/gtmquest/agencymatch/internal/logger"
	"github.com/gtmquest/agencymatch/internal/metrics"
	agencyrepo "github.com/gtmquest/agencymatch/internal/repository/agency"
	"github.com/gtmquest/agencymatch/internal/repository/matchcache"
	"github.com/gtmquest/agencymatch/internal/scheduler"
	chiTransport "github.com/gtmquest/agencymatch/internal/transport/chi"
	openaiBrief "github.com/gtmquest/agencymatch/internal/transport/openai"
	briefuc "github.com/gtmquest/agencymatch/internal/usecase/brief"
	directoryuc "github.com/gtmquest/agencymatch/internal/usecase/directory"
	healthuc "github.com/gtmquest/agencymatch/internal/usecase/health"
	matchuc "github.com/gtmquest/agencymatch/internal/usecase/match"
	"github.com/gtmquest/agencymatch/internal/version"
)

const warmFacetsJob = "warm_facets"

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting agencymatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Bool("cache", cfg.Cache.Enabled()),
		zap.String("brief_provider", cfg.Brief.Provider),
	)

	ctx := context.Background()
	readiness := time.Duration(cfg.Database.ReadinessTimeout) * time.Second

	pool, err := postgres.New(ctx, postgres.Config{DSN: cfg.Database.DSN, MaxConns: cfg.Database.MaxConns})
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	metrics.RegisterMatchMetrics()
	metrics.RegisterHTTPMetrics()

	agencies := agencyrepo.New(pool.Pgx()).
		WithQueryTimeout(time.Duration(cfg.Database.QueryTimeoutSec) * time.Second)

	matchSvc := matchuc.New(agencies, logger)
	dirSvc := directoryuc.New(agencies, logger)

	// Pass a nil interface (not a typed nil pointer) when the cache is off.
	var cachePinger healthuc.Pinger
	if cfg.Cache.Enabled() {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create cache store", zap.Error(err))
		}
		defer store.Close()

		// Cache readiness is not fatal; health reports degraded until it answers.
		if err := store.WaitForReady(ctx, readiness); err != nil {
			logger.Warn("Cache not ready, serving uncached until it recovers", zap.Error(err))
		}

		cache := matchcache.New(store, time.Duration(cfg.Cache.TTLSec)*time.Second, logger)
		matchSvc.WithCache(cache)
		dirSvc.WithFacetCache(cache)
		cachePinger = store
		logger.Info("Result cache enabled", zap.Strings("addrs", cfg.Cache.Addrs))
	}

	briefSvc := briefuc.New(matchSvc, logger)
	if cfg.Brief.Provider == "openai" {
		briefSvc.WithExtractor(openaiBrief.NewExtractor(&openaiBrief.Config{
			APIKey:  cfg.Brief.APIKey,
			BaseURL: cfg.Brief.BaseURL,
			Model:   cfg.Brief.Model,
			Logger:  logger,
		}))
		logger.Info("Brief extractor created", zap.String("model", cfg.Brief.Model))
	}

	healthSvc := healthuc.New(pool, cachePinger)

	sched := scheduler.New(time.Minute, logger)
	if cachePinger != nil {
		if err := sched.Add(warmFacetsJob, cfg.Facets.RefreshCron, dirSvc.WarmFacets); err != nil {
			logger.Fatal("Failed to schedule facet refresh", zap.Error(err))
		}
		if err := sched.RunNow(warmFacetsJob, dirSvc.WarmFacets); err != nil {
			logger.Warn("Initial facet warm failed", zap.Error(err))
		}
	}
	sched.Start()
	defer sched.Stop()

	server := chiTransport.NewServer(matchSvc, dirSvc, briefSvc, healthSvc, logger).
		WithLimits(cfg.Matching.DefaultLimit, cfg.Matching.MaxLimit)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler {
						panic(rvr)
					}
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("route", chi.RouteContext(r.Context()).RoutePattern()),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
