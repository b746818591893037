package testutil

import (
	"context"

	"github.com/flexprice/billingcore/internal/domain/fixedcharge"
	"github.com/flexprice/billingcore/internal/types"
)

// InMemoryFixedChargeEventStore implements fixedcharge.EventRepository
type InMemoryFixedChargeEventStore struct {
	*InMemoryStore[*fixedcharge.Event]
}

func NewInMemoryFixedChargeEventStore() *InMemoryFixedChargeEventStore {
	return &InMemoryFixedChargeEventStore{
		InMemoryStore: NewInMemoryStore[*fixedcharge.Event](),
	}
}

func fixedChargeEventFilterFn(ctx context.Context, e *fixedcharge.Event, filter interface{}) bool {
	if e == nil || !CheckTenantFilter(ctx, e.TenantID) {
		return false
	}

	f, ok := filter.(*types.FixedChargeEventFilter)
	if !ok {
		return true
	}

	return e.SubscriptionID == f.SubscriptionID &&
		e.Code == f.Code &&
		!e.Timestamp.Before(f.StartTime) &&
		e.Timestamp.Before(f.EndTime)
}

func fixedChargeEventSortFn(i, j *fixedcharge.Event) bool {
	if i.Timestamp.Equal(j.Timestamp) {
		return i.ID < j.ID
	}
	return i.Timestamp.Before(j.Timestamp)
}

// InsertEvent stores an event, filling its id and tenant when missing
func (s *InMemoryFixedChargeEventStore) InsertEvent(ctx context.Context, e *fixedcharge.Event) error {
	if e.ID == "" {
		e.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_FIXED_CHARGE_EVENT)
	}
	if e.TenantID == "" {
		e.TenantID = types.GetTenantID(ctx)
	}
	return s.InMemoryStore.Create(ctx, e.ID, e)
}

func (s *InMemoryFixedChargeEventStore) ListEvents(ctx context.Context, filter *types.FixedChargeEventFilter) ([]*fixedcharge.Event, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.InMemoryStore.List(ctx, filter, fixedChargeEventFilterFn, fixedChargeEventSortFn)
}
