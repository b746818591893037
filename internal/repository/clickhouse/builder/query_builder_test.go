package builder

import (
	"context"
	"testing"
	"time"

	"github.com/flexprice/billingcore/internal/types"
	"github.com/stretchr/testify/assert"
)

// define a context with a tenant ID to be used in all tests
var ctx = context.WithValue(context.Background(), types.CtxTenantID, types.DefaultTenantID)

func TestQueryBuilder_Build(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   *types.FixedChargeEventFilter
		ordered  bool
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name: "window and order",
			filter: &types.FixedChargeEventFilter{
				SubscriptionID: "subs_1",
				Code:           "seats",
				StartTime:      start,
				EndTime:        end,
			},
			ordered: true,
			wantSQL: "SELECT id, tenant_id, subscription_id, code, timestamp, units, properties FROM fixed_charge_events FINAL" +
				" WHERE tenant_id = ? AND subscription_id = ? AND code = ? AND timestamp >= ? AND timestamp < ?" +
				" ORDER BY timestamp ASC, id ASC",
			wantArgs: []interface{}{types.DefaultTenantID, "subs_1", "seats", start, end},
		},
		{
			name: "open window",
			filter: &types.FixedChargeEventFilter{
				SubscriptionID: "subs_1",
				Code:           "seats",
			},
			wantSQL: "SELECT id, tenant_id, subscription_id, code, timestamp, units, properties FROM fixed_charge_events FINAL" +
				" WHERE tenant_id = ? AND subscription_id = ? AND code = ?",
			wantArgs: []interface{}{types.DefaultTenantID, "subs_1", "seats"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qb := NewQueryBuilder("fixed_charge_events").
				WithBaseFilters(ctx, tt.filter).
				WithTimeRange(tt.filter)
			if tt.ordered {
				qb.WithChronologicalOrder()
			}

			sql, args := qb.Build()
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestQueryBuilder_TimeRangeIsUTC(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)
	filter := &types.FixedChargeEventFilter{
		SubscriptionID: "subs_1",
		Code:           "seats",
		StartTime:      time.Date(2024, 1, 1, 5, 30, 0, 0, kolkata),
		EndTime:        time.Date(2024, 1, 2, 5, 30, 0, 0, kolkata),
	}

	_, args := NewQueryBuilder("events").WithTimeRange(filter).Build()
	assert.Len(t, args, 2)
	assert.Equal(t, time.UTC, args[0].(time.Time).Location())
	assert.True(t, args[0].(time.Time).Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
}
