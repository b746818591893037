package clickhouse

import (
	"context"

	clickhouse_go "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/flexprice/billingcore/internal/config"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/sentry"
	"go.uber.org/fx"
)

// Conn is the part of the driver connection repositories rely on
type Conn interface {
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) driver.Row
	Exec(ctx context.Context, query string, args ...any) error
	Ping(ctx context.Context) error
}

type ClickHouseStore struct {
	conn   Conn
	closer func() error
	sentry *sentry.Service
}

// Module provides the store and pings it on start
func Module() fx.Option {
	return fx.Options(
		fx.Provide(NewClickHouseStore),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(lc fx.Lifecycle, store *ClickHouseStore, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := store.GetConn().Ping(ctx); err != nil {
				return ierr.WithError(err).
					WithHint("ClickHouse is not reachable").
					Mark(ierr.ErrDatabase)
			}
			log.Debugw("clickhouse connection ready")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return store.Close()
		},
	})
}

func NewClickHouseStore(config *config.Configuration, sentryService *sentry.Service) (*ClickHouseStore, error) {
	options := config.ClickHouse.GetClientOptions()
	conn, err := clickhouse_go.Open(options)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to init clickhouse client").
			WithReportableDetails(map[string]any{
				"address":  config.ClickHouse.Address,
				"database": config.ClickHouse.Database,
			}).
			Mark(ierr.ErrDatabase)
	}

	return &ClickHouseStore{
		conn:   conn,
		closer: conn.Close,
		sentry: sentryService,
	}, nil
}

// NewStoreFromConn wraps an existing connection, closing it is left to the caller
func NewStoreFromConn(conn Conn, sentryService *sentry.Service) *ClickHouseStore {
	return &ClickHouseStore{
		conn:   conn,
		sentry: sentryService,
	}
}

// GetConn returns a connection that traces every operation
func (s *ClickHouseStore) GetConn() Conn {
	return &tracedConn{
		conn:   s.conn,
		sentry: s.sentry,
	}
}

func (s *ClickHouseStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// tracedConn adds a sentry span around each call of the wrapped connection
type tracedConn struct {
	conn   Conn
	sentry *sentry.Service
}

func (tc *tracedConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	span, ctx := tc.sentry.StartClickHouseSpan(ctx, "clickhouse.query", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	if span != nil {
		defer span.Finish()
	}

	return tc.conn.Query(ctx, query, args...)
}

func (tc *tracedConn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	span, ctx := tc.sentry.StartClickHouseSpan(ctx, "clickhouse.query_row", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	if span != nil {
		defer span.Finish()
	}

	return tc.conn.QueryRow(ctx, query, args...)
}

func (tc *tracedConn) Exec(ctx context.Context, query string, args ...any) error {
	span, ctx := tc.sentry.StartClickHouseSpan(ctx, "clickhouse.exec", map[string]interface{}{
		"query":      truncateQuery(query),
		"args_count": len(args),
	})
	if span != nil {
		defer span.Finish()
	}

	return tc.conn.Exec(ctx, query, args...)
}

func (tc *tracedConn) Ping(ctx context.Context) error {
	span, ctx := tc.sentry.StartClickHouseSpan(ctx, "clickhouse.ping", nil)
	if span != nil {
		defer span.Finish()
	}

	return tc.conn.Ping(ctx)
}

// Truncate query to avoid sending too much data to Sentry
func truncateQuery(query string) string {
	const maxQueryLength = 1000
	if len(query) > maxQueryLength {
		return query[:maxQueryLength] + "..."
	}
	return query
}
