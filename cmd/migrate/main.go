package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/flexprice/billingcore/internal/clickhouse"
	"github.com/flexprice/billingcore/internal/config"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/migration"
	"github.com/flexprice/billingcore/internal/sentry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command line flags
	skipClickHouse := flag.Bool("skip-clickhouse", false, "Only apply the postgres migrations")
	flag.Parse()

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := sqlx.Open("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	logger.Info("Running postgres migrations...")
	if err := migration.RunMigrations(db.DB); err != nil {
		logger.Fatalw("Failed to apply postgres migrations", "error", err)
	}

	if !*skipClickHouse {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := clickhouse.NewClickHouseStore(cfg, sentry.NewSentryService(cfg, logger))
		if err != nil {
			logger.Fatalw("Failed to connect to clickhouse", "error", err)
		}
		defer store.Close()

		logger.Infow("Ensuring clickhouse events table", "table", cfg.Billing.EventsTable)
		if err := migration.EnsureFixedChargeEventsTable(ctx, store.GetConn(), cfg.Billing.EventsTable); err != nil {
			logger.Fatalw("Failed to create clickhouse events table", "error", err)
		}
	}

	fmt.Println("Migration process completed")
}
