package migration

import (
	"context"
	"fmt"
	"regexp"

	"github.com/flexprice/billingcore/internal/clickhouse"
	ierr "github.com/flexprice/billingcore/internal/errors"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// FixedChargeEventsDDL returns the statement creating the fixed charge events table
func FixedChargeEventsDDL(table string) (string, error) {
	if !tableNamePattern.MatchString(table) {
		return "", ierr.NewErrorf("invalid events table name %q", table).
			WithHint("Table names may only contain letters, digits and underscores").
			Mark(ierr.ErrValidation)
	}

	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id String,
			tenant_id String,
			subscription_id String,
			code String,
			timestamp DateTime64(3, 'UTC'),
			units Decimal(38, 15),
			properties String DEFAULT '{}',
			ingested_at DateTime64(3, 'UTC') DEFAULT now64(3)
		)
		ENGINE = ReplacingMergeTree(ingested_at)
		ORDER BY (tenant_id, subscription_id, code, timestamp, id)
	`, table), nil
}

// EnsureFixedChargeEventsTable creates the events table when it does not exist
func EnsureFixedChargeEventsTable(ctx context.Context, conn clickhouse.Conn, table string) error {
	ddl, err := FixedChargeEventsDDL(table)
	if err != nil {
		return err
	}

	if err := conn.Exec(ctx, ddl); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to create clickhouse table %s", table).
			Mark(ierr.ErrDatabase)
	}
	return nil
}
