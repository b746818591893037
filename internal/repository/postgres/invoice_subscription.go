package postgres

import (
	"context"
	"strings"

	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/jmoiron/sqlx"
)

const invoiceSubscriptionColumns = `
	id, tenant_id, invoice_id, subscription_id, from_datetime, to_datetime, timestamp,
	status, created_at, updated_at
`

type invoiceSubscriptionRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewInvoiceSubscriptionRepository(client postgres.IClient, log *logger.Logger) subscription.InvoiceSubscriptionRepository {
	return &invoiceSubscriptionRepository{client: client, log: log}
}

func (r *invoiceSubscriptionRepository) Get(ctx context.Context, id string) (*subscription.InvoiceSubscription, error) {
	r.log.Debugw("getting invoice subscription", "invoice_subscription_id", id)

	span := StartRepositorySpan(ctx, "invoice_subscription", "get", map[string]interface{}{
		"invoice_subscription_id": id,
	})
	defer FinishSpan(span)

	query := `SELECT ` + invoiceSubscriptionColumns + `
		FROM invoice_subscriptions
		WHERE id = ? AND tenant_id = ? AND status = ?
	`

	q := r.client.Querier(ctx)
	var is subscription.InvoiceSubscription
	err := q.GetContext(ctx, &is, q.Rebind(query), id, types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)

		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Invoice subscription with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"invoice_subscription_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get invoice subscription").
			WithReportableDetails(map[string]any{
				"invoice_subscription_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return &is, nil
}

func (r *invoiceSubscriptionRepository) List(ctx context.Context, filter *types.InvoiceSubscriptionFilter) ([]*subscription.InvoiceSubscription, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	span := StartRepositorySpan(ctx, "invoice_subscription", "list", map[string]interface{}{
		"subscription_id": filter.SubscriptionID,
	})
	defer FinishSpan(span)

	query, args, err := buildInvoiceSubscriptionListQuery(types.GetTenantID(ctx), filter)
	if err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to build invoice subscription query").
			Mark(ierr.ErrDatabase)
	}

	r.log.Debugw("listing invoice subscriptions",
		"subscription_id", filter.SubscriptionID,
		"query", query,
	)

	q := r.client.Querier(ctx)
	var records []*subscription.InvoiceSubscription
	if err := q.SelectContext(ctx, &records, q.Rebind(query), args...); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list invoice subscriptions").
			WithReportableDetails(map[string]any{
				"subscription_id": filter.SubscriptionID,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return records, nil
}

// buildInvoiceSubscriptionListQuery renders the list query with ? placeholders,
// expanding the id slices through sqlx.In
func buildInvoiceSubscriptionListQuery(tenantID string, filter *types.InvoiceSubscriptionFilter) (string, []interface{}, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + invoiceSubscriptionColumns + `
		FROM invoice_subscriptions
		WHERE tenant_id = ? AND subscription_id = ? AND status = ?`)
	args := []interface{}{tenantID, filter.SubscriptionID, string(types.StatusPublished)}

	if len(filter.InvoiceIDs) > 0 {
		sb.WriteString(" AND invoice_id IN (?)")
		args = append(args, filter.InvoiceIDs)
	}
	if len(filter.ExcludeIDs) > 0 {
		sb.WriteString(" AND id NOT IN (?)")
		args = append(args, filter.ExcludeIDs)
	}
	if filter.FromDatetimeGTE != nil {
		sb.WriteString(" AND from_datetime >= ?")
		args = append(args, filter.FromDatetimeGTE.UTC())
	}
	if filter.FromDatetimeLTE != nil {
		sb.WriteString(" AND from_datetime <= ?")
		args = append(args, filter.FromDatetimeLTE.UTC())
	}
	if filter.EffectiveEndGTE != nil {
		sb.WriteString(" AND COALESCE(to_datetime, timestamp) >= ?")
		args = append(args, filter.EffectiveEndGTE.UTC())
	}
	if filter.EffectiveEndGT != nil {
		sb.WriteString(" AND COALESCE(to_datetime, timestamp) > ?")
		args = append(args, filter.EffectiveEndGT.UTC())
	}
	if filter.EffectiveEndLTE != nil {
		sb.WriteString(" AND COALESCE(to_datetime, timestamp) <= ?")
		args = append(args, filter.EffectiveEndLTE.UTC())
	}

	if filter.GetOrder() == types.OrderDesc {
		sb.WriteString(" ORDER BY COALESCE(to_datetime, timestamp) DESC, id DESC")
	} else {
		sb.WriteString(" ORDER BY COALESCE(to_datetime, timestamp) ASC, id ASC")
	}

	if filter.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	return sqlx.In(sb.String(), args...)
}
