package commitment

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (*Commitment, error)

	// GetByPlanID returns the minimum commitment of a plan, ErrNotFound when the plan has none
	GetByPlanID(ctx context.Context, planID string) (*Commitment, error)
}
