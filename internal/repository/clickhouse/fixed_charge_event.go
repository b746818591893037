package clickhouse

import (
	"context"
	"encoding/json"

	"github.com/flexprice/billingcore/internal/clickhouse"
	"github.com/flexprice/billingcore/internal/config"
	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/repository/clickhouse/builder"
	"github.com/flexprice/billingcore/internal/types"
)

type FixedChargeEventRepository struct {
	store  *clickhouse.ClickHouseStore
	logger *logger.Logger
	table  string
}

func NewFixedChargeEventRepository(store *clickhouse.ClickHouseStore, logger *logger.Logger, cfg *config.Configuration) fixedcharge.EventRepository {
	return &FixedChargeEventRepository{
		store:  store,
		logger: logger,
		table:  cfg.Billing.EventsTable,
	}
}

func (r *FixedChargeEventRepository) ListEvents(ctx context.Context, filter *types.FixedChargeEventFilter) ([]*fixedcharge.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	span := StartRepositorySpan(ctx, "fixed_charge_event", "list", map[string]interface{}{
		"subscription_id": filter.SubscriptionID,
		"code":            filter.Code,
	})
	defer FinishSpan(span)

	query, args := builder.NewQueryBuilder(r.table).
		WithBaseFilters(ctx, filter).
		WithTimeRange(filter).
		WithChronologicalOrder().
		Build()

	r.logger.Debugw("executing list fixed charge events query",
		"query", query,
		"subscription_id", filter.SubscriptionID,
		"code", filter.Code,
	)

	rows, err := r.store.GetConn().Query(ctx, query, args...)
	if err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to query fixed charge events").
			WithReportableDetails(map[string]interface{}{
				"subscription_id": filter.SubscriptionID,
				"code":            filter.Code,
			}).
			Mark(ierr.ErrDatabase)
	}
	defer rows.Close()

	var eventsList []*fixedcharge.Event
	for rows.Next() {
		var event fixedcharge.Event
		var propertiesJSON string

		err := rows.Scan(
			&event.ID,
			&event.TenantID,
			&event.SubscriptionID,
			&event.Code,
			&event.Timestamp,
			&event.Units,
			&propertiesJSON,
		)
		if err != nil {
			SetSpanError(span, err)
			return nil, ierr.WithError(err).
				WithHint("Failed to scan fixed charge event").
				WithReportableDetails(map[string]interface{}{
					"event_id": event.ID,
				}).
				Mark(ierr.ErrDatabase)
		}

		if propertiesJSON != "" {
			if err := json.Unmarshal([]byte(propertiesJSON), &event.Properties); err != nil {
				SetSpanError(span, err)
				return nil, ierr.WithError(err).
					WithHint("Failed to unmarshal event properties").
					WithReportableDetails(map[string]interface{}{
						"event_id":   event.ID,
						"properties": propertiesJSON,
					}).
					Mark(ierr.ErrValidation)
			}
		}

		eventsList = append(eventsList, &event)
	}

	if err := rows.Err(); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to read fixed charge events").
			Mark(ierr.ErrDatabase)
	}

	if span != nil {
		span.SetData("result_count", len(eventsList))
	}

	SetSpanSuccess(span)
	return eventsList, nil
}
