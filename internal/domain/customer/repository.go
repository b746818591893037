package customer

import "context"

// Repository defines the interface for customer data access
type Repository interface {
	Get(ctx context.Context, id string) (*Customer, error)
}
