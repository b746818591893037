package subscription

import (
	"testing"
	"time"

	"github.com/flexprice/billingcore/internal/domain/customer"
	"github.com/flexprice/billingcore/internal/domain/plan"
	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveEnd(t *testing.T) {
	issued := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)

	withTo := &InvoiceSubscription{Timestamp: issued, ToDatetime: lo.ToPtr(to)}
	assert.Equal(t, to, withTo.EffectiveEnd())

	withoutTo := &InvoiceSubscription{Timestamp: issued}
	assert.Equal(t, issued, withoutTo.EffectiveEnd())
}

func TestCadence(t *testing.T) {
	started := time.Date(2023, time.May, 17, 9, 0, 0, 0, time.UTC)
	sub := &Subscription{
		PlanID:      "plan_1",
		BillingTime: types.BillingTimeAnniversary,
		StartedAt:   started,
	}

	_, err := sub.Cadence()
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))

	sub.Plan = &plan.Plan{ID: "plan_1", Interval: types.BILLING_PERIOD_QUARTERLY, IntervalCount: 1}
	cadence, err := sub.Cadence()
	require.NoError(t, err)
	assert.Equal(t, types.PeriodCadence{
		Period:      types.BILLING_PERIOD_QUARTERLY,
		Count:       1,
		BillingTime: types.BillingTimeAnniversary,
		Anchor:      started,
	}, cadence)
}

func TestTimezone(t *testing.T) {
	sub := &Subscription{}
	assert.Equal(t, "Asia/Tokyo", sub.Timezone("Asia/Tokyo"))

	sub.Customer = &customer.Customer{OrganizationTimezone: "Europe/Berlin"}
	assert.Equal(t, "Europe/Berlin", sub.Timezone("Asia/Tokyo"))
}

func TestIsTerminated(t *testing.T) {
	assert.True(t, (&Subscription{Status: types.SubscriptionStatusTerminated}).IsTerminated())
	assert.False(t, (&Subscription{Status: types.SubscriptionStatusActive}).IsTerminated())
}
