package customer

import "github.com/flexprice/billingcore/internal/types"

// DefaultTimezone applies when neither the customer nor its organization has a timezone
const DefaultTimezone = "UTC"

// Customer represents a customer in the system
type Customer struct {
	// ID is the unique identifier for the customer
	ID string `db:"id" json:"id"`

	// ExternalID is the identifier of the customer in the tenant's system
	ExternalID string `db:"external_id" json:"external_id"`

	Name string `db:"name" json:"name"`

	// Timezone is the IANA zone the customer is billed in, empty when unset
	Timezone string `db:"timezone" json:"timezone"`

	// OrganizationTimezone is the tenant wide fallback zone, read from the organization
	OrganizationTimezone string `db:"organization_timezone" json:"organization_timezone"`

	types.BaseModel
}

// ApplicableTimezone returns the zone billing day boundaries are computed in
func (c *Customer) ApplicableTimezone() string {
	if c == nil {
		return DefaultTimezone
	}
	if c.Timezone != "" {
		return c.Timezone
	}
	if c.OrganizationTimezone != "" {
		return c.OrganizationTimezone
	}
	return DefaultTimezone
}
