package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	eserrors "github.com/eventhive/events-service/internal/errors"
)

// Pre-compiled regex patterns for environment variable expansion.
var (
	// envVarPattern matches ${VAR} or ${VAR:-default} syntax
	envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)
	// simpleEnvVarPattern matches $VAR syntax
	simpleEnvVarPattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// Loader handles configuration loading and merging.
type Loader struct {
	v           *viper.Viper
	configPath  string
	searchPaths []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix("EVENTS_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return &Loader{
		v:           v,
		searchPaths: []string{"."},
	}
}

// WithConfigPath sets an explicit config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithSearchPaths adds directories to search for config files.
func (l *Loader) WithSearchPaths(paths ...string) *Loader {
	l.searchPaths = append(l.searchPaths, paths...)
	return l
}

// Load loads the configuration.
func (l *Loader) Load() (*Config, error) {
	const op = "config.Load"

	l.setDefaults()

	if err := l.loadConfigFile(); err != nil {
		return nil, eserrors.ConfigWrap(err, op, "failed to load config file")
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, eserrors.ConfigWrap(err, op, "failed to unmarshal config")
	}

	// Expand environment variables in connection strings
	cfg.Database.DSN = expandEnvVar(cfg.Database.DSN)
	cfg.Broker.URL = expandEnvVar(cfg.Broker.URL)

	return cfg, nil
}

// setDefaults sets default values using Viper.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	// Server defaults
	l.v.SetDefault("server.address", defaults.Server.Address)
	l.v.SetDefault("server.cors_origins", defaults.Server.CORSOrigins)
	l.v.SetDefault("server.read_timeout", defaults.Server.ReadTimeout)
	l.v.SetDefault("server.write_timeout", defaults.Server.WriteTimeout)
	l.v.SetDefault("server.idle_timeout", defaults.Server.IdleTimeout)

	// Database defaults
	l.v.SetDefault("database.enabled", defaults.Database.Enabled)
	l.v.SetDefault("database.connect_timeout", defaults.Database.ConnectTimeout)

	// Broker defaults
	l.v.SetDefault("broker.enabled", defaults.Broker.Enabled)
	l.v.SetDefault("broker.exchange", defaults.Broker.Exchange)

	// Fallback defaults
	l.v.SetDefault("fallback.path", defaults.Fallback.Path)

	// Resilience defaults
	l.v.SetDefault("resilience.retry_attempts", defaults.Resilience.RetryAttempts)
	l.v.SetDefault("resilience.retry_initial_wait", defaults.Resilience.RetryInitialWait)
	l.v.SetDefault("resilience.retry_max_wait", defaults.Resilience.RetryMaxWait)
	l.v.SetDefault("resilience.circuit_breaker_threshold", defaults.Resilience.CircuitBreakerThreshold)
	l.v.SetDefault("resilience.circuit_breaker_timeout", defaults.Resilience.CircuitBreakerTimeout)
	l.v.SetDefault("resilience.circuit_breaker_max_requests", defaults.Resilience.CircuitBreakerMaxRequests)

	// Output defaults
	l.v.SetDefault("output.log_level", defaults.Output.LogLevel)
	l.v.SetDefault("output.json", defaults.Output.JSON)
	l.v.SetDefault("output.color", defaults.Output.Color)
}

// loadConfigFile loads the configuration file.
func (l *Loader) loadConfigFile() error {
	// If explicit path provided, use it
	if l.configPath != "" {
		l.v.SetConfigFile(l.configPath)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", l.configPath, err)
		}
		return nil
	}

	// Search for config file in paths
	for _, searchPath := range l.searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					l.v.SetConfigFile(configFile)
					if err := l.v.ReadInConfig(); err != nil {
						return fmt.Errorf("reading config file %s: %w", configFile, err)
					}
					return nil
				}
			}
		}
	}

	// No config file found - this is OK, we use defaults
	return nil
}

// expandEnvVar expands environment variables in a string.
// Supports both ${VAR} and $VAR syntax.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	// Use pre-compiled pattern for ${VAR} or ${VAR:-default}
	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envVarPattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		varName := submatch[1]
		defaultValue := ""
		if len(submatch) > 2 {
			defaultValue = submatch[2]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}
		return defaultValue
	})

	// Also expand simple $VAR syntax using pre-compiled pattern
	result = simpleEnvVarPattern.ReplaceAllStringFunc(result, func(match string) string {
		varName := match[1:]
		if value := os.Getenv(varName); value != "" {
			return value
		}
		return match
	})

	return result
}

// GetConfigPath returns the path to the loaded config file, if any.
func (l *Loader) GetConfigPath() string {
	return l.v.ConfigFileUsed()
}

// LoadFromFile loads configuration from a specific file.
func LoadFromFile(path string) (*Config, error) {
	return NewLoader().WithConfigPath(path).Load()
}

// FindConfigFile searches for a config file and returns its path.
func FindConfigFile(searchPaths ...string) (string, error) {
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}

	for _, searchPath := range searchPaths {
		for _, name := range ConfigFileNames {
			for _, ext := range ConfigFileExtensions {
				configFile := filepath.Join(searchPath, name+"."+ext)
				if _, err := os.Stat(configFile); err == nil {
					return configFile, nil
				}
			}
		}
	}

	return "", eserrors.NotFound("config.FindConfigFile", "no config file found")
}
