package plan

import "context"

// Repository defines the interface for plan persistence
type Repository interface {
	Get(ctx context.Context, id string) (*Plan, error)
}
