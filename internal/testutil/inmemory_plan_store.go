package testutil

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/plan"
	ierr "github.com/flexprice/billingcore/internal/errors"
)

// InMemoryPlanStore implements plan.Repository
type InMemoryPlanStore struct {
	*InMemoryStore[*plan.Plan]
}

// NewInMemoryPlanStore creates a new in-memory plan store
func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		InMemoryStore: NewInMemoryStore[*plan.Plan](),
	}
}

func (s *InMemoryPlanStore) Create(ctx context.Context, p *plan.Plan) error {
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryPlanStore) Get(ctx context.Context, id string) (*plan.Plan, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, p.TenantID) {
		return nil, ierr.NewErrorf("plan %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}
