package migration

import (
	"io/fs"
	"strings"
	"testing"

	ierr "github.com/flexprice/billingcore/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	sub, err := Source()
	require.NoError(t, err)

	entries, err := fs.ReadDir(sub, ".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	assert.Equal(t, ups, downs)

	initial, err := fs.ReadFile(sub, "000001_init_billing.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(initial), "invoice_subscriptions")
	assert.Contains(t, string(initial), "COALESCE(to_datetime, timestamp)")
}

func TestRunMigrationsRequiresHandle(t *testing.T) {
	err := RunMigrations(nil)
	require.Error(t, err)
	assert.True(t, ierr.IsInvalidOperation(err))
}

func TestFixedChargeEventsDDL(t *testing.T) {
	ddl, err := FixedChargeEventsDDL("fixed_charge_events")
	require.NoError(t, err)
	assert.Contains(t, ddl, "CREATE TABLE IF NOT EXISTS fixed_charge_events")
	assert.Contains(t, ddl, "ORDER BY (tenant_id, subscription_id, code, timestamp, id)")

	_, err = FixedChargeEventsDDL("events; DROP TABLE x")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}
