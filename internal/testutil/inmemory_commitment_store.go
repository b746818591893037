package testutil

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/commitment"
	ierr "github.com/flexprice/billingcore/internal/errors"
)

// InMemoryCommitmentStore implements commitment.Repository
type InMemoryCommitmentStore struct {
	*InMemoryStore[*commitment.Commitment]
}

func NewInMemoryCommitmentStore() *InMemoryCommitmentStore {
	return &InMemoryCommitmentStore{
		InMemoryStore: NewInMemoryStore[*commitment.Commitment](),
	}
}

func (s *InMemoryCommitmentStore) Create(ctx context.Context, c *commitment.Commitment) error {
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCommitmentStore) Get(ctx context.Context, id string) (*commitment.Commitment, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, c.TenantID) {
		return nil, ierr.NewErrorf("commitment %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCommitmentStore) GetByPlanID(ctx context.Context, planID string) (*commitment.Commitment, error) {
	items, err := s.InMemoryStore.List(ctx, planID, func(ctx context.Context, c *commitment.Commitment, _ interface{}) bool {
		return c.PlanID == planID && c.Type == commitment.TypeMinimum && CheckTenantFilter(ctx, c.TenantID)
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ierr.NewErrorf("plan %s has no commitment", planID).
			Mark(ierr.ErrNotFound)
	}
	return items[0], nil
}
