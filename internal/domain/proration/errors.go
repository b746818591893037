package proration

import (
	ierr "github.com/flexprice/billingcore/internal/errors"
)

var (
	// ErrPeriodNotResolvable is returned when the invoice chain has no record for the billing period
	ErrPeriodNotResolvable = ierr.NewError("billing period cannot be resolved").
				Mark(ierr.ErrDataIntegrity)

	// ErrDegeneratePeriod is returned for periods spanning zero or fewer calendar days
	ErrDegeneratePeriod = ierr.NewError("billing period has no days").
				Mark(ierr.ErrValidation)

	// ErrElapsedOutOfRange is returned when the elapsed days fall outside the period
	ErrElapsedOutOfRange = ierr.NewError("elapsed days outside billing period").
				Mark(ierr.ErrDataIntegrity)
)
