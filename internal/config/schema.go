// Package config provides configuration management for the events service.
package config

import (
	"time"
)

// ConfigFileNames are the base names searched for config files.
var ConfigFileNames = []string{"events-service", ".events-service"}

// ConfigFileExtensions are the supported config file extensions.
var ConfigFileExtensions = []string{"yaml", "yml", "json", "toml"}

// Config is the root configuration for the events service.
type Config struct {
	// Server configures the HTTP API.
	Server ServerConfig `mapstructure:"server" json:"server"`
	// Database configures the primary PostgreSQL store.
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	// Broker configures the RabbitMQ domain-event publisher.
	Broker BrokerConfig `mapstructure:"broker" json:"broker"`
	// Fallback configures the on-disk fallback store.
	Fallback FallbackConfig `mapstructure:"fallback" json:"fallback"`
	// Resilience configures retry and circuit-breaker behavior around
	// the primary store.
	Resilience ResilienceConfig `mapstructure:"resilience" json:"resilience"`
	// Output configures logging output.
	Output OutputConfig `mapstructure:"output" json:"output"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// Address is the listen address (host:port).
	Address string `mapstructure:"address" json:"address"`
	// CORSOrigins lists allowed CORS origins. Empty means same-origin only.
	CORSOrigins []string `mapstructure:"cors_origins" json:"cors_origins,omitempty"`
	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `mapstructure:"read_timeout" json:"read_timeout"`
	// WriteTimeout is the maximum duration for writing a response.
	WriteTimeout time.Duration `mapstructure:"write_timeout" json:"write_timeout"`
	// IdleTimeout is the maximum time to wait for the next request.
	IdleTimeout time.Duration `mapstructure:"idle_timeout" json:"idle_timeout"`
}

// DatabaseConfig configures the primary PostgreSQL store.
type DatabaseConfig struct {
	// Enabled toggles the PostgreSQL store. When false the service runs
	// on the in-memory repository.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// DSN is the PostgreSQL connection string (can use env var expansion).
	DSN string `mapstructure:"dsn" json:"dsn,omitempty"`
	// ConnectTimeout bounds the initial connection attempt.
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" json:"connect_timeout"`
}

// BrokerConfig configures the RabbitMQ domain-event publisher.
type BrokerConfig struct {
	// Enabled toggles broker publishing. When false events are kept
	// in memory only.
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// URL is the AMQP connection string (can use env var expansion).
	URL string `mapstructure:"url" json:"url,omitempty"`
	// Exchange is the topic exchange for domain events.
	Exchange string `mapstructure:"exchange" json:"exchange"`
}

// FallbackConfig configures the on-disk fallback store.
type FallbackConfig struct {
	// Path is the fallback JSON file location.
	Path string `mapstructure:"path" json:"path"`
}

// ResilienceConfig configures retry and circuit-breaker behavior.
type ResilienceConfig struct {
	// RetryAttempts is the number of attempts against the primary store.
	RetryAttempts int `mapstructure:"retry_attempts" json:"retry_attempts"`
	// RetryInitialWait is the delay before the first retry.
	RetryInitialWait time.Duration `mapstructure:"retry_initial_wait" json:"retry_initial_wait"`
	// RetryMaxWait caps the exponential backoff delay.
	RetryMaxWait time.Duration `mapstructure:"retry_max_wait" json:"retry_max_wait"`
	// CircuitBreakerThreshold is the consecutive failures before opening.
	CircuitBreakerThreshold int `mapstructure:"circuit_breaker_threshold" json:"circuit_breaker_threshold"`
	// CircuitBreakerTimeout is how long the breaker stays open.
	CircuitBreakerTimeout time.Duration `mapstructure:"circuit_breaker_timeout" json:"circuit_breaker_timeout"`
	// CircuitBreakerMaxRequests is the half-open request allowance.
	CircuitBreakerMaxRequests int `mapstructure:"circuit_breaker_max_requests" json:"circuit_breaker_max_requests"`
}

// OutputConfig configures logging output.
type OutputConfig struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level" json:"log_level"`
	// JSON switches log output to JSON format.
	JSON bool `mapstructure:"json" json:"json"`
	// Color enables colored log output.
	Color bool `mapstructure:"color" json:"color"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Address:      ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Enabled:        false,
			ConnectTimeout: 5 * time.Second,
		},
		Broker: BrokerConfig{
			Enabled:  false,
			Exchange: "events.domain-events",
		},
		Fallback: FallbackConfig{
			Path: "data/events-fallback.json",
		},
		Resilience: ResilienceConfig{
			RetryAttempts:             3,
			RetryInitialWait:          100 * time.Millisecond,
			RetryMaxWait:              2 * time.Second,
			CircuitBreakerThreshold:   5,
			CircuitBreakerTimeout:     30 * time.Second,
			CircuitBreakerMaxRequests: 3,
		},
		Output: OutputConfig{
			LogLevel: "info",
			Color:    true,
		},
	}
}
