package config

import (
	"testing"

	"github.com/flexprice/billingcore/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, types.ModeLocal, cfg.Deployment.Mode)
	assert.Equal(t, "UTC", cfg.Billing.DefaultTimezone)
}

func TestValidateRejectsUnknownTimezone(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Billing.DefaultTimezone = "Mars/Olympus_Mons"
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresEventsTable(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Billing.EventsTable = ""
	assert.Error(t, cfg.Validate())
}

func TestNewConfigEnvOverride(t *testing.T) {
	t.Setenv("BILLINGCORE_BILLING_DEFAULT_TIMEZONE", "Asia/Kolkata")
	t.Setenv("BILLINGCORE_POSTGRES_PORT", "6543")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", cfg.Billing.DefaultTimezone)
	assert.Equal(t, 6543, cfg.Postgres.Port)
}

func TestPostgresDSN(t *testing.T) {
	pg := PostgresConfig{
		Host:    "db",
		Port:    5432,
		User:    "u",
		DBName:  "d",
		SSLMode: "disable",
	}
	assert.Equal(t, "user=u password= dbname=d host=db port=5432 sslmode=disable", pg.GetDSN())
	assert.Equal(t, "postgres://u:@db:5432/d?sslmode=disable", pg.GetURL())
}
