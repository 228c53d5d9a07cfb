// Package config defines the global configuration structure for the Lunara
// service. Configuration is loaded once at process initialization and is
// immutable thereafter, following 12-Factor principles: code and
// configuration stay strictly separated.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File -> envconfig defaults (Lowest)
//
// Any missing required value or invalid format fails startup immediately.
package config

import (
	"time"

	"lunara/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used throughout configuration to prevent accidental logging of sensitive
// values.
type SecretString = types.SecretString

// Config is the top-level configuration struct. It is populated once during
// process initialization and never modified. Sub-components receive only
// the specific subsets they require.
type Config struct {
	// System metadata
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"lunara-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain configurations
	Server        ServerConfig
	Database      DatabaseConfig
	Weather       WeatherConfig
	Cache         CacheConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string        `envconfig:"PORT" default:"8080"`
	ReadTimeout        time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout       time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout    time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
	CorsAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// DatabaseConfig holds database connection and pool tuning parameters.
type DatabaseConfig struct {
	URL SecretString `envconfig:"DATABASE_URL" validate:"required,url"`

	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `envconfig:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"30m"`
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"5m"`
}

// WeatherConfig holds the external weather/air-quality provider settings.
type WeatherConfig struct {
	BaseURL           string        `envconfig:"WEATHER_BASE_URL" validate:"required,url"`
	APIKey            SecretString  `envconfig:"WEATHER_API_KEY" validate:"required"`
	UserAgent         string        `envconfig:"WEATHER_USER_AGENT" default:"Lunara/1.0"`
	Timeout           time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
	RequestsPerSecond float64       `envconfig:"WEATHER_RPS" default:"5"`
	Burst             int           `envconfig:"WEATHER_BURST" default:"10"`
	HistoryDays       int           `envconfig:"WEATHER_HISTORY_DAYS" default:"30"`
}

// CacheConfig holds Valkey snapshot cache settings. An empty address
// disables caching; every cache path degrades to a provider fetch.
type CacheConfig struct {
	Addr        string        `envconfig:"CACHE_ADDR"`
	Password    SecretString  `envconfig:"CACHE_PASSWORD"`
	KeyPrefix   string        `envconfig:"CACHE_KEY_PREFIX" default:"weather"`
	HistoryTTL  time.Duration `envconfig:"CACHE_HISTORY_TTL" default:"12h"`
	ForecastTTL time.Duration `envconfig:"CACHE_FORECAST_TTL" default:"1h"`
}

// ObservabilityConfig holds telemetry and monitoring settings.
type ObservabilityConfig struct {
	MetricNamespace string `envconfig:"METRIC_NAMESPACE" default:"Lunara"`
	AWSRegion       string `envconfig:"AWS_REGION" default:"us-east-1"`
	EnableMetrics   bool   `envconfig:"ENABLE_METRICS" default:"true"`
}

// ConfigErrorType categorizes configuration loading failures to aid
// debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
