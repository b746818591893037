package postgres

import (
	"context"

	domainCustomer "github.com/flexprice/billingcore/internal/domain/customer"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/logger"
	"github.com/flexprice/billingcore/internal/postgres"
	"github.com/flexprice/billingcore/internal/types"
)

type customerRepository struct {
	client postgres.IClient
	log    *logger.Logger
}

func NewCustomerRepository(client postgres.IClient, log *logger.Logger) domainCustomer.Repository {
	return &customerRepository{client: client, log: log}
}

// Get loads the customer together with its organization's timezone
func (r *customerRepository) Get(ctx context.Context, id string) (*domainCustomer.Customer, error) {
	r.log.Debugw("getting customer", "customer_id", id)

	span := StartRepositorySpan(ctx, "customer", "get", map[string]interface{}{
		"customer_id": id,
	})
	defer FinishSpan(span)

	query := `
		SELECT c.id, c.tenant_id, c.external_id, c.name,
			COALESCE(c.timezone, '') AS timezone,
			COALESCE(o.timezone, '') AS organization_timezone,
			c.status, c.created_at, c.updated_at
		FROM customers c
		LEFT JOIN organizations o ON o.id = c.tenant_id
		WHERE c.id = ? AND c.tenant_id = ? AND c.status = ?
	`

	q := r.client.Querier(ctx)
	var c domainCustomer.Customer
	err := q.GetContext(ctx, &c, q.Rebind(query), id, types.GetTenantID(ctx), string(types.StatusPublished))
	if err != nil {
		SetSpanError(span, err)

		if isNoRows(err) {
			return nil, ierr.WithError(err).
				WithHintf("Customer with ID %s was not found", id).
				WithReportableDetails(map[string]any{
					"customer_id": id,
				}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get customer").
			WithReportableDetails(map[string]any{
				"customer_id": id,
			}).
			Mark(ierr.ErrDatabase)
	}

	SetSpanSuccess(span)
	return &c, nil
}
