package fixedcharge

import (
	"context"

	"github.com/flexprice/billingcore/internal/types"
)

type Repository interface {
	Get(ctx context.Context, id string) (*FixedCharge, error)
	ListByPlanID(ctx context.Context, planID string) ([]*FixedCharge, error)
}

// EventRepository reads fixed charge events scoped to the tenant in ctx
type EventRepository interface {
	// ListEvents returns the events in the filter window ordered by timestamp ascending
	ListEvents(ctx context.Context, filter *types.FixedChargeEventFilter) ([]*Event, error)
}
