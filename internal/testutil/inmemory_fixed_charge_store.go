package testutil

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	ierr "github.com/flexprice/billingcore/internal/errors"
)

// InMemoryFixedChargeStore implements fixedcharge.Repository
type InMemoryFixedChargeStore struct {
	*InMemoryStore[*fixedcharge.FixedCharge]
}

func NewInMemoryFixedChargeStore() *InMemoryFixedChargeStore {
	return &InMemoryFixedChargeStore{
		InMemoryStore: NewInMemoryStore[*fixedcharge.FixedCharge](),
	}
}

func (s *InMemoryFixedChargeStore) Create(ctx context.Context, fc *fixedcharge.FixedCharge) error {
	return s.InMemoryStore.Create(ctx, fc.ID, fc)
}

func (s *InMemoryFixedChargeStore) Get(ctx context.Context, id string) (*fixedcharge.FixedCharge, error) {
	fc, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, fc.TenantID) {
		return nil, ierr.NewErrorf("fixed charge %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return fc, nil
}

func (s *InMemoryFixedChargeStore) ListByPlanID(ctx context.Context, planID string) ([]*fixedcharge.FixedCharge, error) {
	return s.InMemoryStore.List(ctx, planID, func(ctx context.Context, fc *fixedcharge.FixedCharge, _ interface{}) bool {
		return fc.PlanID == planID && CheckTenantFilter(ctx, fc.TenantID)
	}, func(i, j *fixedcharge.FixedCharge) bool {
		return i.Code < j.Code
	})
}
