package types

import (
	"testing"
	"time"

	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceSubscriptionFilterValidate(t *testing.T) {
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		filter  *InvoiceSubscriptionFilter
		wantErr bool
	}{
		{name: "subscription only", filter: &InvoiceSubscriptionFilter{SubscriptionID: "subs_1"}},
		{name: "missing subscription", filter: &InvoiceSubscriptionFilter{}, wantErr: true},
		{name: "nil filter", wantErr: true},
		{
			name:   "start bounded on both sides",
			filter: &InvoiceSubscriptionFilter{SubscriptionID: "subs_1", FromDatetimeGTE: &jan, FromDatetimeLTE: lo.ToPtr(jan)},
		},
		{
			name:    "start upper bound before lower bound",
			filter:  &InvoiceSubscriptionFilter{SubscriptionID: "subs_1", FromDatetimeGTE: &feb, FromDatetimeLTE: &jan},
			wantErr: true,
		},
		{
			name:    "end upper bound before strict lower bound",
			filter:  &InvoiceSubscriptionFilter{SubscriptionID: "subs_1", EffectiveEndGT: &feb, EffectiveEndLTE: &jan},
			wantErr: true,
		},
		{
			name:    "unknown order",
			filter:  &InvoiceSubscriptionFilter{SubscriptionID: "subs_1", Order: "sideways"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.wantErr {
				assert.True(t, ierr.IsValidation(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
