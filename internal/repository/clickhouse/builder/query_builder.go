package builder

import (
	"context"
	"fmt"
	"strings"

	"github.com/flexprice/billingcore/internal/types"
)

const fixedChargeEventColumns = "id, tenant_id, subscription_id, code, timestamp, units, properties"

// QueryBuilder renders fixed charge event reads with positional arguments
type QueryBuilder struct {
	table      string
	conditions []string
	args       []interface{}
	orderBy    string
}

func NewQueryBuilder(table string) *QueryBuilder {
	return &QueryBuilder{table: table}
}

// WithBaseFilters scopes the read to the tenant in ctx plus the subscription and charge code
func (qb *QueryBuilder) WithBaseFilters(ctx context.Context, filter *types.FixedChargeEventFilter) *QueryBuilder {
	qb.conditions = append(qb.conditions,
		"tenant_id = ?",
		"subscription_id = ?",
		"code = ?",
	)
	qb.args = append(qb.args, types.GetTenantID(ctx), filter.SubscriptionID, filter.Code)
	return qb
}

// WithTimeRange keeps events from the start up to, not including, the end
func (qb *QueryBuilder) WithTimeRange(filter *types.FixedChargeEventFilter) *QueryBuilder {
	if filter.StartTime.IsZero() || filter.EndTime.IsZero() {
		return qb
	}

	qb.conditions = append(qb.conditions, "timestamp >= ? AND timestamp < ?")
	qb.args = append(qb.args, filter.StartTime.UTC(), filter.EndTime.UTC())
	return qb
}

// WithChronologicalOrder orders by timestamp, ties broken by id
func (qb *QueryBuilder) WithChronologicalOrder() *QueryBuilder {
	qb.orderBy = "timestamp ASC, id ASC"
	return qb
}

func (qb *QueryBuilder) Build() (string, []interface{}) {
	// FINAL collapses rows the ReplacingMergeTree has not merged yet
	query := fmt.Sprintf("SELECT %s FROM %s FINAL", fixedChargeEventColumns, qb.table)

	if len(qb.conditions) > 0 {
		query += " WHERE " + strings.Join(qb.conditions, " AND ")
	}
	if qb.orderBy != "" {
		query += " ORDER BY " + qb.orderBy
	}

	return query, qb.args
}
