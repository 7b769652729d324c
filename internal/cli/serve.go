package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/eventhive/events-service/internal/app"
	"github.com/eventhive/events-service/internal/domain/event"
	"github.com/eventhive/events-service/internal/httpserver"
	"github.com/eventhive/events-service/internal/infrastructure/messaging"
	"github.com/eventhive/events-service/internal/infrastructure/persistence"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the events HTTP API",
	Long: `Run the events HTTP API.

The server uses PostgreSQL as the primary store when database.enabled is
set, with automatic fallback to an on-disk JSON store when the primary is
unreachable. Domain events are published to RabbitMQ when broker.enabled
is set.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	repo, cleanupRepo, err := buildRepository(ctx)
	if err != nil {
		return err
	}
	defer cleanupRepo()

	publisher, cleanupPublisher, err := buildPublisher()
	if err != nil {
		return err
	}
	defer cleanupPublisher()

	service := app.NewService(repo, publisher, logger)

	server := httpserver.NewServer(httpserver.ServerDeps{
		Config: cfg.Server,
		Events: service,
		Logger: logger,
	})

	fmt.Println(styles.Title.Render("events-service"))
	fmt.Println(styles.Subtle.Render("listening on " + cfg.Server.Address))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(gctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", "error", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}

// buildRepository wires the configured event repository. The returned
// cleanup releases any held connections and is safe to call once.
func buildRepository(ctx context.Context) (event.Repository, func(), error) {
	if !cfg.Database.Enabled {
		logger.Info("database disabled, using in-memory repository")
		return persistence.NewInMemoryEventRepository(), func() {}, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.New(connectCtx, cfg.Database.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	primary := persistence.NewPostgresEventRepository(pool)
	if err := primary.EnsureSchema(connectCtx); err != nil {
		// Schema setup failing is not fatal: the hybrid layer keeps the
		// service alive on the fallback store until the database recovers.
		logger.Warn("failed to ensure database schema", "error", err)
	}

	fallback, err := persistence.NewFallbackStore(cfg.Fallback.Path)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}

	hybrid := persistence.NewHybridEventRepository(primary, fallback, persistence.HybridConfig{
		RetryAttempts:             cfg.Resilience.RetryAttempts,
		RetryInitialWait:          cfg.Resilience.RetryInitialWait,
		RetryMaxWait:              cfg.Resilience.RetryMaxWait,
		CircuitBreakerThreshold:   cfg.Resilience.CircuitBreakerThreshold,
		CircuitBreakerTimeout:     cfg.Resilience.CircuitBreakerTimeout,
		CircuitBreakerMaxRequests: cfg.Resilience.CircuitBreakerMaxRequests,
	}, logger)

	logger.Info("database enabled", "fallback", cfg.Fallback.Path)
	return hybrid, pool.Close, nil
}

// buildPublisher wires the configured domain-event publisher.
func buildPublisher() (event.Publisher, func(), error) {
	if !cfg.Broker.Enabled {
		logger.Info("broker disabled, domain events stay in memory")
		return persistence.NewInMemoryEventPublisher(), func() {}, nil
	}

	publisher, err := messaging.NewRabbitPublisher(cfg.Broker.URL, cfg.Broker.Exchange, logger)
	if err != nil {
		return nil, nil, err
	}

	logger.Info("broker enabled", "exchange", cfg.Broker.Exchange)
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close broker connection", "error", err)
		}
	}, nil
}
