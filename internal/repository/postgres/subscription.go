package postgres

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/types"
)

type subscriptionRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewSubscriptionRepository(client postgres.IClient, log *logger.Logger) subscription.Repository {
	return &subscriptionRepository{client: client, log: log}
}

// Get returns the subscription row, plan and customer are left for the caller to load
func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	r.log.Debugw("getting subscription", "subscription_id", id)

	span := StartRepositorySpan(ctx, "subscription", "get", map[string]interface{}{
		"subscription_id": id,
	})
	defer FinishSpan(span)

	query := `
		SELECT id, tenant_id, customer_id, plan_id, subscription_status, billing_time,
			started_at, terminated_at, status, created_at, updated_at
		FROM subscriptions
		WHERE id = ? AND tenant_id = ? AND status = ?
	`

	q := r.client.Querier(ctx)
	var sub subscription.Subscription
	err := q.GetContext(ctx, &sub, q.Rebind(query), id, types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)

		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Subscription with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"subscription_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get subscription").
			WithReportableDetails(map[string]any{
				"subscription_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return &sub, nil
}
