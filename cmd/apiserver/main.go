// The apiserver binary serves the listing-intelligence HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stayscope/listing-intelligence/internal/application/insight"
	"github.com/stayscope/listing-intelligence/internal/config"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/postgres"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/database/redis"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/logging"
	"github.com/stayscope/listing-intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/stayscope/listing-intelligence/internal/intelligence/orchestrator"
	httpiface "github.com/stayscope/listing-intelligence/internal/interfaces/http"
	"github.com/stayscope/listing-intelligence/internal/interfaces/http/handlers"
)

func main() {
	configPath := flag.String("config", "", "path to config file (env-only when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
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
	logger = logger.Named("apiserver")

	if configPath != "" {
		config.Watch(configPath, func(next *config.Config) {
			if logging.SetLevel(logger, next.Logging.Level) {
				logger.Info("log level updated",
					logging.String("level", next.Logging.Level))
			}
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.MigrationPath != "" {
		if err := postgres.Migrate(db, cfg.Database.MigrationPath, logger); err != nil {
			return err
		}
	}

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
	aggregator := insight.NewAggregator(store)

	deps := httpiface.RouterDeps{
		Profiles: handlers.NewProfileHandler(service, aggregator),
		Health: handlers.NewHealthHandler(map[string]handlers.Checker{
			"postgres": func(ctx context.Context) error { return db.PingContext(ctx) },
			"redis":    func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
		}),
		Logger: logger,
	}
	if metrics != nil {
		deps.Observer = metrics
		deps.MetricsHandler = metrics.Handler()
	}

	server := httpiface.NewServer(cfg.Server, httpiface.NewRouter(deps), logger)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}
	return server.Shutdown(context.Background())
}
