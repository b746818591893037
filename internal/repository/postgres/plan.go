package postgres

import (
	"context"

	domainPlan "github.com/flexprice/billingcore/internal/domain/plan"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/types"
)

type planRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewPlanRepository(client postgres.IClient, log *logger.Logger) domainPlan.Repository {
	return &planRepository{client: client, log: log}
}

func (r *planRepository) Get(ctx context.Context, id string) (*domainPlan.Plan, error) {
	r.log.Debugw("getting plan", "plan_id", id)

	span := StartRepositorySpan(ctx, "plan", "get", map[string]interface{}{
		"plan_id": id,
	})
	defer FinishSpan(span)

	query := `
		SELECT id, tenant_id, name, "interval", interval_count, pay_in_advance, currency,
			status, created_at, updated_at
		FROM plans
		WHERE id = ? AND tenant_id = ? AND status = ?
	`

	q := r.client.Querier(ctx)
	var p domainPlan.Plan
	err := q.GetContext(ctx, &p, q.Rebind(query), id, types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)

		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Plan with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"plan_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get plan").
			WithReportableDetails(map[string]any{
				"plan_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return &p, nil
}
