package proration

import (
	"testing"

	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCoefficient(t *testing.T) {
	c, err := NewCoefficient(15, 31)
	require.NoError(t, err)
	assert.Equal(t, Coefficient{ElapsedDays: 15, TotalDays: 31}, c)
	assert.True(t, c.Decimal().GreaterThan(decimal.Zero))
	assert.True(t, c.Decimal().LessThan(decimal.NewFromInt(1)))
	assert.False(t, c.IsFull())

	full, err := NewCoefficient(30, 30)
	require.NoError(t, err)
	assert.True(t, full.IsFull())
	assert.True(t, full.Decimal().Equal(decimal.NewFromInt(1)))

	empty, err := NewCoefficient(0, 30)
	require.NoError(t, err)
	assert.True(t, empty.Decimal().IsZero())
}

func TestNewCoefficientDegeneratePeriod(t *testing.T) {
	for _, total := range []int{0, -3} {
		_, err := NewCoefficient(0, total)
		require.Error(t, err)
		assert.True(t, ierr.Is(err, ErrDegeneratePeriod))
		assert.True(t, ierr.IsValidation(err))
		assert.False(t, ierr.IsDataIntegrity(err))
	}
}

func TestNewCoefficientElapsedOutOfRange(t *testing.T) {
	for _, elapsed := range []int{-1, 32} {
		_, err := NewCoefficient(elapsed, 31)
		require.Error(t, err)
		assert.True(t, ierr.Is(err, ErrElapsedOutOfRange))
		assert.True(t, ierr.IsDataIntegrity(err))
	}
}

func TestApplyMinorUnits(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int
		total   int
		amount  int64
		want    int64
	}{
		{name: "half month of january", elapsed: 15, total: 31, amount: 12000, want: 5806},
		{name: "full period keeps amount", elapsed: 31, total: 31, amount: 12000, want: 12000},
		{name: "half rounds up", elapsed: 1, total: 8, amount: 100, want: 13},
		{name: "below half rounds down", elapsed: 1, total: 3, amount: 100, want: 33},
		{name: "nothing elapsed", elapsed: 0, total: 30, amount: 9999, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCoefficient(tt.elapsed, tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.ApplyMinorUnits(tt.amount))
		})
	}
}

func TestZeroCoefficientIsNotUsable(t *testing.T) {
	var c Coefficient
	assert.False(t, c.IsFull())
	assert.Panics(t, func() { c.Decimal() })
	assert.Panics(t, func() { c.ApplyMinorUnits(500) })
}
