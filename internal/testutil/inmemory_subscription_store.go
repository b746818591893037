package testutil

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	return s.InMemoryStore.Create(ctx, sub.ID, sub)
}

// Get returns a copy without plan and customer, like the postgres repository
func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	sub, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, sub.TenantID) {
		return nil, ierr.NewErrorf("subscription %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	out := *sub
	out.Plan = nil
	out.Customer = nil
	return &out, nil
}
