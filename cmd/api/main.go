// Package main is the entry point for the Lunara API server.
//
// It loads configuration, connects the Postgres pool and the optional Valkey
// snapshot cache, wires the weather provider client and the CloudWatch
// metrics publisher, builds the HTTP server with the core chassis
// (middleware, routing, health checks), and starts listening for requests.
//
// Graceful shutdown is handled via OS signal interception (SIGINT, SIGTERM).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"lunara/internal/api/handlers"
	"lunara/internal/config"
	"lunara/internal/core"
	"lunara/internal/db"
	"lunara/internal/metrics"
	"lunara/internal/weather"
)

// startupTimeout bounds dependency initialization (database ping, cache
// ping, AWS config resolution).
const startupTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on
// error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("lunara API starting",
		"environment", cfg.Environment,
		"service", cfg.Service,
		"port", cfg.Server.Port,
	)

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// Database.
	pool, err := db.NewPool(startupCtx, db.PoolConfig{
		URL:             cfg.Database.URL.Unmask(),
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}

	symptomRepo := db.NewSymptomRepository(pool)
	profileRepo := db.NewProfileRepository(pool)

	// Weather provider and optional snapshot cache.
	providerClient := weather.NewClient(
		&http.Client{Timeout: cfg.Weather.Timeout},
		weather.ClientConfig{
			BaseURL:           cfg.Weather.BaseURL,
			APIKey:            cfg.Weather.APIKey.Unmask(),
			UserAgent:         cfg.Weather.UserAgent,
			RequestsPerSecond: cfg.Weather.RequestsPerSecond,
			Burst:             cfg.Weather.Burst,
		},
		weather.DefaultRetryPolicy(),
	)

	cacheClient, snapshotCache := newSnapshotCache(startupCtx, cfg, logger)
	weatherService := weather.NewService(providerClient, snapshotCache, logger)

	// CloudWatch metrics.
	var publisher *metrics.Publisher
	if cfg.Observability.EnableMetrics {
		awsCfg, err := awsconfig.LoadDefaultConfig(startupCtx,
			awsconfig.WithRegion(cfg.Observability.AWSRegion),
		)
		if err != nil {
			return fmt.Errorf("loading AWS configuration: %w", err)
		}
		publisher = metrics.NewPublisher(
			cloudwatch.NewFromConfig(awsCfg),
			cfg.Observability.MetricNamespace,
			logger,
		)
	}

	// Build the server.
	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		pool.Close()
		return fmt.Errorf("creating server: %w", err)
	}

	srv.RegisterCloser(func() error {
		pool.Close()
		return nil
	})
	if cacheClient != nil {
		srv.RegisterCloser(func() error {
			cacheClient.Close()
			return nil
		})
	}

	srv.HealthProbes = append(srv.HealthProbes, databaseProbe{pool: pool})
	if cacheClient != nil {
		srv.HealthProbes = append(srv.HealthProbes, cacheProbe{client: cacheClient})
	}

	var engineRecorder handlers.EngineRecorder
	if publisher != nil {
		srv.Metrics = publisher
		engineRecorder = publisher
	}

	// Wire the domain handlers.
	insightHandler := handlers.NewInsightHandler(symptomRepo, profileRepo, engineRecorder, logger)
	symptomHandler := handlers.NewSymptomHandler(symptomRepo, srv.Validator, logger)
	environmentHandler := handlers.NewEnvironmentHandler(
		symptomRepo,
		weatherService,
		engineRecorder,
		cfg.Weather.HistoryDays,
		logger,
	)

	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars,
		insightHandler.RegisterRoutes,
		symptomHandler.RegisterRoutes,
		environmentHandler.RegisterRoutes,
	)

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// newSnapshotCache connects the Valkey snapshot cache when configured. Cache
// failures never block startup: the service degrades to direct provider
// fetches.
func newSnapshotCache(ctx context.Context, cfg *config.Config, logger *slog.Logger) (valkey.Client, *weather.SnapshotCache) {
	if cfg.Cache.Addr == "" {
		logger.Info("snapshot cache disabled")
		return nil, nil
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.Cache.Addr},
		Password:    cfg.Cache.Password.Unmask(),
	})
	if err != nil {
		logger.Warn("failed to create valkey client, continuing without cache", "error", err)
		return nil, nil
	}

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Warn("valkey ping failed, continuing without cache", "error", err)
		client.Close()
		return nil, nil
	}

	logger.Info("snapshot cache enabled", "addr", cfg.Cache.Addr)
	return client, weather.NewSnapshotCache(client, cfg.Cache.KeyPrefix, cfg.Cache.HistoryTTL, cfg.Cache.ForecastTTL)
}

// runHTTPServer starts the server in standard HTTP mode with graceful
// shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server resource shutdown error", "error", err)
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// newLogger creates a structured slog.Logger configured for the given log
// level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

// databaseProbe reports Postgres connectivity for the health endpoint.
type databaseProbe struct {
	pool *pgxpool.Pool
}

func (p databaseProbe) Name() string { return "database" }

func (p databaseProbe) Check(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// cacheProbe reports Valkey connectivity for the health endpoint.
type cacheProbe struct {
	client valkey.Client
}

func (p cacheProbe) Name() string { return "cache" }

func (p cacheProbe) Check(ctx context.Context) error {
	return p.client.Do(ctx, p.client.B().Ping().Build()).Error()
}
