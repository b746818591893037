package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/flexprice/billingcore/internal/config"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

// IClient is what repositories and services depend on
type IClient interface {
	// WithTx runs fn in a read-write transaction, reusing the one in ctx when present
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error

	// WithReadOnlyTx runs fn in a repeatable read transaction so every read sees one snapshot
	WithReadOnlyTx(ctx context.Context, fn func(ctx context.Context) error) error

	// Querier returns the transaction in ctx if any, or the pool
	Querier(ctx context.Context) Querier
}

// Module provides the pool and the sentry instrumented client
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewSentryClient,
		),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(lc fx.Lifecycle, db *DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	logger *logger.Logger
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// NewDB opens the configured postgres pool
func NewDB(config *config.Configuration, logger *logger.Logger) (*DB, error) {
	db, err := sqlx.Connect("postgres", config.Postgres.GetDSN())
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to connect to postgres").
			WithReportableDetails(map[string]any{
				"host":     config.Postgres.Host,
				"database": config.Postgres.DBName,
			}).
			Mark(ierr.ErrDatabase)
	}

	if config.Postgres.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.Postgres.MaxOpenConns)
	}
	if config.Postgres.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.Postgres.MaxIdleConns)
	}
	if config.Postgres.ConnMaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(config.Postgres.ConnMaxLifetimeMinutes) * time.Minute)
	}

	return &DB{DB: db, logger: logger}, nil
}

// NewDBFromSqlx wraps an already opened connection, used by tests against other drivers
func NewDBFromSqlx(db *sqlx.DB, logger *logger.Logger) *DB {
	return &DB{DB: db, logger: logger}
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// Querier returns either the transaction from context or the base DB
func (db *DB) Querier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}
