package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplicableTimezone(t *testing.T) {
	tests := []struct {
		name     string
		customer *Customer
		want     string
	}{
		{
			name:     "customer timezone wins",
			customer: &Customer{Timezone: "Europe/Paris", OrganizationTimezone: "America/New_York"},
			want:     "Europe/Paris",
		},
		{
			name:     "falls back to organization",
			customer: &Customer{OrganizationTimezone: "America/New_York"},
			want:     "America/New_York",
		},
		{
			name:     "defaults to utc",
			customer: &Customer{},
			want:     "UTC",
		},
		{
			name: "nil customer",
			want: "UTC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.customer.ApplicableTimezone())
		})
	}
}
