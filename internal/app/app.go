package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/templui/scheduletable/internal/config"
	"github.com/templui/scheduletable/internal/db"
	"github.com/templui/scheduletable/internal/feed"
	"github.com/templui/scheduletable/internal/metrics"
	"github.com/templui/scheduletable/internal/repository"
	"github.com/templui/scheduletable/internal/service"
	"github.com/templui/scheduletable/internal/storage"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB
	Registry        *prometheus.Registry
	Metrics         *metrics.Metrics
	Broker          *feed.Broker
	Webhooks        *feed.WebhookReceiver
	ScheduleService *service.ScheduleService
	SnapshotService *service.SnapshotService

	// Runners are the long-lived change feed sources (Postgres LISTEN, Redis
	// relay). The caller starts them next to the HTTP server.
	Runners []feed.Runner

	relay *feed.RedisRelay
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return NewWithDB(cfg, database)
}

// NewWithDB wires the app around an already migrated database.
func NewWithDB(cfg *config.Config, database *sqlx.DB) (*App, error) {
	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	// Change feed
	broker := feed.NewBroker()
	broker.OnPublish = func(e feed.Event) {
		m.FeedEvent(e.Source, string(e.Op))
	}

	var publisher feed.Publisher = broker
	var runners []feed.Runner
	var relay *feed.RedisRelay

	if cfg.RedisURL != "" {
		relay, err = feed.NewRedisRelay(cfg.RedisURL, broker)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis relay: %w", err)
		}
		publisher = relay
		runners = append(runners, relay)
	}

	if cfg.DBDriver == db.DriverPostgres {
		runners = append(runners, feed.NewPostgresListener(cfg.DBConnection, broker))
	}

	var webhooks *feed.WebhookReceiver
	if cfg.WebhookSecret != "" {
		webhooks, err = feed.NewWebhookReceiver(cfg.WebhookSecret, publisher)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize webhooks: %w", err)
		}
	}

	// Storage
	snapshotStorage, err := storage.New(cfg)
	if errors.Is(err, storage.ErrNotConfigured) {
		slog.Info("snapshot storage disabled, S3_BUCKET not set")
		snapshotStorage = nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Repositories
	scheduleEntryRepository := repository.NewScheduleEntryRepository(database)

	// Services
	scheduleService := service.NewScheduleService(scheduleEntryRepository, publisher, m)
	snapshotService := service.NewSnapshotService(snapshotStorage)

	return &App{
		Cfg:             cfg,
		DB:              database,
		Registry:        registry,
		Metrics:         m,
		Broker:          broker,
		Webhooks:        webhooks,
		ScheduleService: scheduleService,
		SnapshotService: snapshotService,
		Runners:         runners,
		relay:           relay,
	}, nil
}

// Close ends every live session and releases the database and the Redis
// connection.
func (a *App) Close() error {
	a.Broker.Close()

	var errs []error
	if a.relay != nil {
		errs = append(errs, a.relay.Close())
	}
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	return errors.Join(errs...)
}
