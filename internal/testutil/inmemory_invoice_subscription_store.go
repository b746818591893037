package testutil

import (
	"context"
	"sync/atomic"

	"github.com/flexprice/billingcore/internal/domain/subscription"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/samber/lo"
)

// InMemoryInvoiceSubscriptionStore implements subscription.InvoiceSubscriptionRepository
type InMemoryInvoiceSubscriptionStore struct {
	*InMemoryStore[*subscription.InvoiceSubscription]
	listCalls int64
}

func NewInMemoryInvoiceSubscriptionStore() *InMemoryInvoiceSubscriptionStore {
	return &InMemoryInvoiceSubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.InvoiceSubscription](),
	}
}

func invoiceSubscriptionFilterFn(ctx context.Context, is *subscription.InvoiceSubscription, filter interface{}) bool {
	if is == nil || !CheckTenantFilter(ctx, is.TenantID) {
		return false
	}

	f, ok := filter.(*types.InvoiceSubscriptionFilter)
	if !ok {
		return true
	}

	if is.SubscriptionID != f.SubscriptionID {
		return false
	}
	if len(f.InvoiceIDs) > 0 && !lo.Contains(f.InvoiceIDs, is.InvoiceID) {
		return false
	}
	if lo.Contains(f.ExcludeIDs, is.ID) {
		return false
	}
	if f.FromDatetimeGTE != nil && is.FromDatetime.Before(*f.FromDatetimeGTE) {
		return false
	}
	if f.FromDatetimeLTE != nil && is.FromDatetime.After(*f.FromDatetimeLTE) {
		return false
	}

	end := is.EffectiveEnd()
	if f.EffectiveEndGTE != nil && end.Before(*f.EffectiveEndGTE) {
		return false
	}
	if f.EffectiveEndGT != nil && !end.After(*f.EffectiveEndGT) {
		return false
	}
	if f.EffectiveEndLTE != nil && end.After(*f.EffectiveEndLTE) {
		return false
	}

	return true
}

func invoiceSubscriptionSortFn(i, j *subscription.InvoiceSubscription) bool {
	ei, ej := i.EffectiveEnd(), j.EffectiveEnd()
	if ei.Equal(ej) {
		return i.ID < j.ID
	}
	return ei.Before(ej)
}

func (s *InMemoryInvoiceSubscriptionStore) Create(ctx context.Context, is *subscription.InvoiceSubscription) error {
	return s.InMemoryStore.Create(ctx, is.ID, is)
}

func (s *InMemoryInvoiceSubscriptionStore) Get(ctx context.Context, id string) (*subscription.InvoiceSubscription, error) {
	is, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || !CheckTenantFilter(ctx, is.TenantID) {
		return nil, ierr.NewErrorf("invoice subscription %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return is, nil
}

func (s *InMemoryInvoiceSubscriptionStore) List(ctx context.Context, filter *types.InvoiceSubscriptionFilter) ([]*subscription.InvoiceSubscription, error) {
	atomic.AddInt64(&s.listCalls, 1)

	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.InMemoryStore.List(ctx, filter, invoiceSubscriptionFilterFn, invoiceSubscriptionSortFn)
	if err != nil {
		return nil, err
	}

	if filter.GetOrder() == types.OrderDesc {
		records = lo.Reverse(records)
	}
	if filter.Limit > 0 && len(records) > filter.Limit {
		records = records[:filter.Limit]
	}
	return records, nil
}

// ListCalls returns how many range queries were issued
func (s *InMemoryInvoiceSubscriptionStore) ListCalls() int {
	return int(atomic.LoadInt64(&s.listCalls))
}

// Clear removes all records and resets the call counter
func (s *InMemoryInvoiceSubscriptionStore) Clear() {
	s.InMemoryStore.Clear()
	atomic.StoreInt64(&s.listCalls, 0)
}
