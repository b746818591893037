package subscription

import (
	"context"

	"github.com/flexprice/billingcore/internal/types"
)

type Repository interface {
	Get(ctx context.Context, id string) (*Subscription, error)
}

// InvoiceSubscriptionRepository provides range reads over a subscription's invoice chain
type InvoiceSubscriptionRepository interface {
	Get(ctx context.Context, id string) (*InvoiceSubscription, error)

	// List returns the records matching filter ordered by effective end
	List(ctx context.Context, filter *types.InvoiceSubscriptionFilter) ([]*InvoiceSubscription, error)
}
