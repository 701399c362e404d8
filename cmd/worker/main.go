// The worker binary consumes listing domain events and keeps intelligence
// profiles up to date.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"

	"github.com/stayscope/listing-intelligence/internal/application/insight"
	"github.com/stayscope/listing-intelligence/internal/config"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/postgres"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/redis"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/messaging/kafka"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/stayscope/listing-intelligence/internal/intelligence/orchestrator"
	"github.com/stayscope/listing-intelligence/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "path to config file (env-only when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "worker: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	logger = logger.Named("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var metrics *prometheus.Metrics
	if cfg.Metrics.Enabled {
		metrics = prometheus.New(cfg.Metrics.Namespace)
	}

	listings := repositories.NewListingRepository(db)
	store := redis.NewProfileCache(
		repositories.NewProfileRepository(db),
		redisClient,
		cfg.Redis.KeyPrefix,
		cfg.Intelligence.ProfileCacheTTL,
		logger,
	)

	orch := orchestrator.New(listings, cfg.Intelligence.ComparableSampleLimit, logger)

	var appMetrics insight.Metrics
	if metrics != nil {
		appMetrics = metrics
	}
	service := insight.NewService(orch, store, listings, logger, appMetrics)
	controller := insight.NewRecalcController(service, cfg.Worker.Concurrency, logger, appMetrics)

	consumer := kafka.NewConsumer(cfg.Kafka, controller, logger)
	consumer.Start(ctx)
	logger.Info("consuming events", logging.Any("brokers", cfg.Kafka.Brokers))

	healthSrv := startHealthServer(cfg, db, redisClient, metrics, logger)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	if err := consumer.Close(); err != nil {
		logger.Warn("consumer close failed", logging.Err(err))
	}

	// Give in-flight recomputations a bounded chance to finish.
	done := make(chan struct{})
	go func() {
		controller.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cfg.Worker.DrainGrace):
		logger.Warn("drain grace expired with recomputations in flight")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return healthSrv.Shutdown(shutdownCtx)
}

func startHealthServer(cfg *config.Config, db *sql.DB, redisClient *goredis.Client, metrics *prometheus.Metrics, logger logging.Logger) *http.Server {
	r := chi.NewRouter()
	health := handlers.NewHealthHandler(map[string]handlers.Checker{
		"postgres": func(ctx context.Context) error { return db.PingContext(ctx) },
		"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
	})
	r.Get("/healthz", health.Liveness)
	r.Get("/readyz", health.Readiness)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Worker.HealthPort),
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", logging.Err(err))
		}
	}()
	return srv
}
