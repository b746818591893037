package fixedcharge

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
)

// ErrNoUsageEvents is returned when a fixed charge has no event in its window
var ErrNoUsageEvents = ierr.NewError("no usage events for fixed charge").
	Mark(ierr.ErrDataIntegrity)

// ErrInvalidBoundaries is returned when a window would end before it starts
var ErrInvalidBoundaries = ierr.NewError("fixed charge window ends before it starts").
	Mark(ierr.ErrDataIntegrity)
