package types

type RunMode string

const (
	// ModeLocal runs against local postgres and clickhouse instances with debug defaults
	ModeLocal RunMode = "local"
	// ModeProduction runs with the configured stores and sentry enabled
	ModeProduction RunMode = "production"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
