package config

import (
	"fmt"
	"net"
	"slices"
	"strings"
)

// ValidationError contains all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if len(e.Errors) > 0 {
		parts = append(parts, fmt.Sprintf("Errors:\n  - %s", strings.Join(e.Errors, "\n  - ")))
	}

	if len(e.Warnings) > 0 {
		parts = append(parts, fmt.Sprintf("Warnings:\n  - %s", strings.Join(e.Warnings, "\n  - ")))
	}

	return fmt.Sprintf("configuration validation failed:\n%s", strings.Join(parts, "\n"))
}

// HasErrors returns true if there are validation errors.
func (e *ValidationError) HasErrors() bool {
	return len(e.Errors) > 0
}

// HasWarnings returns true if there are validation warnings.
func (e *ValidationError) HasWarnings() bool {
	return len(e.Warnings) > 0
}

// Addf adds a formatted error to the validation error.
func (e *ValidationError) Addf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

// Warnf adds a formatted warning to the validation error.
func (e *ValidationError) Warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for errors and warnings. It returns
// nil when the configuration has no errors; warnings alone do not fail
// validation and are reported through the returned ValidationError.
func Validate(cfg *Config) *ValidationError {
	ve := &ValidationError{}

	validateServer(cfg, ve)
	validateDatabase(cfg, ve)
	validateBroker(cfg, ve)
	validateFallback(cfg, ve)
	validateResilience(cfg, ve)
	validateOutput(cfg, ve)

	if ve.HasErrors() || ve.HasWarnings() {
		return ve
	}
	return nil
}

func validateServer(cfg *Config, ve *ValidationError) {
	if cfg.Server.Address == "" {
		ve.Addf("server.address is required")
		return
	}
	if _, _, err := net.SplitHostPort(cfg.Server.Address); err != nil {
		ve.Addf("server.address %q is not a valid host:port", cfg.Server.Address)
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 || cfg.Server.IdleTimeout < 0 {
		ve.Addf("server timeouts must not be negative")
	}
}

func validateDatabase(cfg *Config, ve *ValidationError) {
	if !cfg.Database.Enabled {
		return
	}
	if cfg.Database.DSN == "" {
		ve.Addf("database.dsn is required when database.enabled is true")
	}
	if cfg.Database.ConnectTimeout <= 0 {
		ve.Addf("database.connect_timeout must be positive")
	}
}

func validateBroker(cfg *Config, ve *ValidationError) {
	if !cfg.Broker.Enabled {
		return
	}
	if cfg.Broker.URL == "" {
		ve.Addf("broker.url is required when broker.enabled is true")
	} else if !strings.HasPrefix(cfg.Broker.URL, "amqp://") && !strings.HasPrefix(cfg.Broker.URL, "amqps://") {
		ve.Warnf("broker.url %q does not look like an AMQP URL", cfg.Broker.URL)
	}
	if cfg.Broker.Exchange == "" {
		ve.Addf("broker.exchange is required when broker.enabled is true")
	}
}

func validateFallback(cfg *Config, ve *ValidationError) {
	if cfg.Fallback.Path == "" {
		ve.Addf("fallback.path is required")
	}
}

func validateResilience(cfg *Config, ve *ValidationError) {
	r := cfg.Resilience
	if r.RetryAttempts < 1 {
		ve.Addf("resilience.retry_attempts must be at least 1")
	}
	if r.RetryInitialWait <= 0 || r.RetryMaxWait <= 0 {
		ve.Addf("resilience retry waits must be positive")
	}
	if r.RetryMaxWait < r.RetryInitialWait {
		ve.Addf("resilience.retry_max_wait must not be below retry_initial_wait")
	}
	if r.CircuitBreakerThreshold < 1 {
		ve.Addf("resilience.circuit_breaker_threshold must be at least 1")
	}
	if r.CircuitBreakerMaxRequests < 1 {
		ve.Addf("resilience.circuit_breaker_max_requests must be at least 1")
	}
	if r.CircuitBreakerTimeout <= 0 {
		ve.Addf("resilience.circuit_breaker_timeout must be positive")
	}
}

func validateOutput(cfg *Config, ve *ValidationError) {
	if !slices.Contains(validLogLevels, cfg.Output.LogLevel) {
		ve.Addf("output.log_level %q is invalid (expected one of %s)",
			cfg.Output.LogLevel, strings.Join(validLogLevels, ", "))
	}
}
