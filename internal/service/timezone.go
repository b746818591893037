package service

import (
	"context"
	"time"

	"github.com/flexprice/billingcore/internal/cache"
	"github.com/flexprice/billingcore/internal/domain/proration"
	"github.com/flexprice/billingcore/internal/domain/subscription"
)

const locationCacheTTL = 24 * time.Hour

// subscriptionLocation resolves the zone days are counted in for sub.
// Customers without a zone fall back to the configured default.
func (p ServiceParams) subscriptionLocation(ctx context.Context, sub *subscription.Subscription) (*time.Location, error) {
	return p.loadLocation(ctx, sub.Timezone(p.Config.Billing.DefaultTimezone))
}

func (p ServiceParams) loadLocation(ctx context.Context, timezone string) (*time.Location, error) {
	key := cache.GenerateKey(cache.PrefixLocation, timezone)
	if p.Cache != nil {
		if cached, found := p.Cache.Get(ctx, key); found {
			if loc, ok := cached.(*time.Location); ok {
				return loc, nil
			}
		}
	}

	loc, err := proration.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}

	if p.Cache != nil {
		p.Cache.Set(ctx, key, loc, locationCacheTTL)
	}
	return loc, nil
}
