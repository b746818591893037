package postgres

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/types"
)

const fixedChargeColumns = `
	id, tenant_id, plan_id, code, prorated, status, created_at, updated_at
`

type fixedChargeRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewFixedChargeRepository(client postgres.IClient, log *logger.Logger) fixedcharge.Repository {
	return &fixedChargeRepository{client: client, log: log}
}

func (r *fixedChargeRepository) Get(ctx context.Context, id string) (*fixedcharge.FixedCharge, error) {
	r.log.Debugw("getting fixed charge", "fixed_charge_id", id)

	span := StartRepositorySpan(ctx, "fixed_charge", "get", map[string]interface{}{
		"fixed_charge_id": id,
	})
	defer FinishSpan(span)

	query := `SELECT ` + fixedChargeColumns + `
		FROM fixed_charges
		WHERE id = ? AND tenant_id = ? AND status = ?
	`

	q := r.client.Querier(ctx)
	var fc fixedcharge.FixedCharge
	err := q.GetContext(ctx, &fc, q.Rebind(query), id, types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)

		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Fixed charge with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"fixed_charge_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get fixed charge").
			WithReportableDetails(map[string]any{
				"fixed_charge_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return &fc, nil
}

func (r *fixedChargeRepository) ListByPlanID(ctx context.Context, planID string) ([]*fixedcharge.FixedCharge, error) {
	span := StartRepositorySpan(ctx, "fixed_charge", "list_by_plan_id", map[string]interface{}{
		"plan_id": planID,
	})
	defer FinishSpan(span)

	query := `SELECT ` + fixedChargeColumns + `
		FROM fixed_charges
		WHERE plan_id = ? AND tenant_id = ? AND status = ?
		ORDER BY code ASC
	`

	q := r.client.Querier(ctx)
	var charges []*fixedcharge.FixedCharge
	if err := q.SelectContext(ctx, &charges, q.Rebind(query), planID, types.GetTenantID(ctx), string(types.StatusPublished)); err != nil {
		SetSpanError(span, err)
		return nil, ierr.WithError(err).
			WithHint("Failed to list fixed charges").
			WithReportableDetails(map[string]any{
				"plan_id": planID,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return charges, nil
}
