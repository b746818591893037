package config

import (
	"crypto/tls"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/flexprice/billingcore/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	ClickHouse ClickHouseConfig `validate:"required"`
	Sentry     SentryConfig
	Cache      CacheConfig
	Billing    BillingConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string `validate:"required"`
	Port                   int    `validate:"required"`
	User                   string `validate:"required"`
	Password               string
	DBName                 string `mapstructure:"dbname" validate:"required"`
	SSLMode                string `mapstructure:"sslmode"`
	MaxOpenConns           int    `mapstructure:"max_open_conns"`
	MaxIdleConns           int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `mapstructure:"conn_max_lifetime_minutes"`
}

type ClickHouseConfig struct {
	Address  string
	TLS      bool
	Username string
	Password string
	Database string
}

type SentryConfig struct {
	Enabled     bool
	DSN         string
	Environment string
	SampleRate  float64 `mapstructure:"sample_rate"`
}

type CacheConfig struct {
	Enabled bool
}

type BillingConfig struct {
	// DefaultTimezone applies when neither the customer nor the organization has one
	DefaultTimezone string `mapstructure:"default_timezone" validate:"required"`
	// EventsTable is the clickhouse table holding fixed charge events
	EventsTable string `mapstructure:"events_table" validate:"required"`
}

func NewConfig() (*Configuration, error) {
	// .env is optional, values already in the environment win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billingcore")

	v.SetEnvPrefix("BILLINGCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults registers every key so AutomaticEnv can override keys missing from the file
func setDefaults(v *viper.Viper) {
	def := GetDefaultConfig()

	v.SetDefault("deployment.mode", def.Deployment.Mode)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetDefault("postgres.host", def.Postgres.Host)
	v.SetDefault("postgres.port", def.Postgres.Port)
	v.SetDefault("postgres.user", def.Postgres.User)
	v.SetDefault("postgres.password", def.Postgres.Password)
	v.SetDefault("postgres.dbname", def.Postgres.DBName)
	v.SetDefault("postgres.sslmode", def.Postgres.SSLMode)
	v.SetDefault("postgres.max_open_conns", def.Postgres.MaxOpenConns)
	v.SetDefault("postgres.max_idle_conns", def.Postgres.MaxIdleConns)
	v.SetDefault("postgres.conn_max_lifetime_minutes", def.Postgres.ConnMaxLifetimeMinutes)

	v.SetDefault("clickhouse.address", def.ClickHouse.Address)
	v.SetDefault("clickhouse.tls", def.ClickHouse.TLS)
	v.SetDefault("clickhouse.username", def.ClickHouse.Username)
	v.SetDefault("clickhouse.password", def.ClickHouse.Password)
	v.SetDefault("clickhouse.database", def.ClickHouse.Database)

	v.SetDefault("sentry.enabled", def.Sentry.Enabled)
	v.SetDefault("sentry.dsn", def.Sentry.DSN)
	v.SetDefault("sentry.environment", def.Sentry.Environment)
	v.SetDefault("sentry.sample_rate", def.Sentry.SampleRate)

	v.SetDefault("cache.enabled", def.Cache.Enabled)

	v.SetDefault("billing.default_timezone", def.Billing.DefaultTimezone)
	v.SetDefault("billing.events_table", def.Billing.EventsTable)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Billing.DefaultTimezone); err != nil {
		return fmt.Errorf("invalid billing.default_timezone %q: %w", c.Billing.DefaultTimezone, err)
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Postgres: PostgresConfig{
			Host:                   "localhost",
			Port:                   5432,
			User:                   "billingcore",
			Password:               "billingcore123",
			DBName:                 "billingcore",
			SSLMode:                "disable",
			MaxOpenConns:           10,
			MaxIdleConns:           5,
			ConnMaxLifetimeMinutes: 60,
		},
		ClickHouse: ClickHouseConfig{
			Address:  "localhost:9000",
			Username: "default",
			Password: "default",
			Database: "billingcore",
		},
		Sentry: SentryConfig{
			Environment: "local",
			SampleRate:  1.0,
		},
		Cache: CacheConfig{Enabled: true},
		Billing: BillingConfig{
			DefaultTimezone: "UTC",
			EventsTable:     "fixed_charge_events",
		},
	}
}

func (c ClickHouseConfig) GetClientOptions() *clickhouse.Options {
	options := &clickhouse.Options{
		Addr: []string{c.Address},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.Username,
			Password: c.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
	}
	if c.TLS {
		options.TLS = &tls.Config{}
	}
	return options
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}

// GetURL returns the postgres connection url, used by the migration runner
func (c PostgresConfig) GetURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		c.SSLMode,
	)
}
