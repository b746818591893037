package postgres

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/commitment"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/types"
)

const commitmentColumns = `
	id, tenant_id, plan_id, commitment_type, amount_cents, currency, invoice_display_name,
	status, created_at, updated_at
`

type commitmentRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCommitmentRepository(client postgres.IClient, log *logger.Logger) commitment.Repository {
	return &commitmentRepository{client: client, log: log}
}

func (r *commitmentRepository) Get(ctx context.Context, id string) (*commitment.Commitment, error) {
	span := StartRepositorySpan(ctx, "commitment", "get", map[string]interface{}{
		"commitment_id": id,
	})
	defer FinishSpan(span)

	query := `SELECT ` + commitmentColumns + `
		FROM commitments
		WHERE id = ? AND tenant_id = ? AND status = ?
	`

	c, err := r.getOne(ctx, query, id, types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)
		return nil, r.wrapError(err, "commitment_id", id)
	}

	SetSpanSuccess(span)
	return c, nil
}

func (r *commitmentRepository) GetByPlanID(ctx context.Context, planID string) (*commitment.Commitment, error) {
	r.log.Debugw("getting plan commitment", "plan_id", planID)

	span := StartRepositorySpan(ctx, "commitment", "get_by_plan_id", map[string]interface{}{
		"plan_id": planID,
	})
	defer FinishSpan(span)

	query := `SELECT ` + commitmentColumns + `
		FROM commitments
		WHERE plan_id = ? AND commitment_type = ? AND tenant_id = ? AND status = ?
	`

	c, err := r.getOne(ctx, query, planID, string(commitment.TypeMinimum), types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)
		return nil, r.wrapError(err, "plan_id", planID)
	}

	SetSpanSuccess(span)
	return c, nil
}

func (r *commitmentRepository) getOne(ctx context.Context, query string, args ...interface{}) (*commitment.Commitment, error) {
	q := r.client.Querier(ctx)
	var c commitment.Commitment
	if err := q.GetContext(ctx, &c, q.Rebind(query), args...); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commitmentRepository) wrapError(err error, key, value string) error {
	if isNoRows(err) {
		return ierr.WithError(err).
			WithHintf("Commitment with %s %s was not found", key, value).
			WithReportableDetails(map[string]any{
				key: value,
			}).
			Mark(ierr.ErrNotFound)
	}
	return ierr.WithError(err).
		WithHint("Failed to get commitment").
		WithReportableDetails(map[string]any{
			key: value,
		}).
		Mark(ierr.ErrDatabase)
}
