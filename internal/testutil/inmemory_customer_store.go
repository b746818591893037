package testutil

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/customer"
	ierr "github.com/flexprice/billingcore/internal/errors"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, c.TenantID) {
		return nil, ierr.NewErrorf("customer %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}
