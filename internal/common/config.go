// Package common provides shared utilities for Centavo
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Centavo
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Ledger      LedgerConfig  `toml:"ledger"`
	Events      EventsConfig  `toml:"events"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables limiting
	RateBurst int     `toml:"rate_burst"`
}

// StorageConfig holds the embedded ledger database location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LedgerConfig holds engine business-rule configuration.
type LedgerConfig struct {
	// MinInstallmentCents is the per-installment floor applied when a
	// purchase is split across more than one statement.
	MinInstallmentCents int64 `toml:"min_installment_cents"`
	// MaxRecurrences caps the number of instances a recurring intent expands to.
	MaxRecurrences int `toml:"max_recurrences"`
	// MaxInstallments caps the number of statements a purchase splits across.
	MaxInstallments int `toml:"max_installments"`
}

// EventsConfig holds the optional Kafka event publisher configuration.
// Publishing is disabled when Brokers is empty.
type EventsConfig struct {
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout string   `toml:"write_timeout"`
}

// GetWriteTimeout parses and returns the publish timeout duration
func (c *EventsConfig) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.WriteTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			RateLimit: 50,
			RateBurst: 100,
		},
		Storage: StorageConfig{
			Path: "data/ledger",
		},
		Ledger: LedgerConfig{
			MinInstallmentCents: 100,
			MaxRecurrences:      60,
			MaxInstallments:     24,
		},
		Events: EventsConfig{
			Topic:        "centavo.ledger",
			WriteTimeout: "10s",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CENTAVO_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("CENTAVO_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("CENTAVO_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("CENTAVO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("CENTAVO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if brokers := os.Getenv("CENTAVO_KAFKA_BROKERS"); brokers != "" {
		config.Events.Brokers = strings.Split(brokers, ",")
	}

	if topic := os.Getenv("CENTAVO_KAFKA_TOPIC"); topic != "" {
		config.Events.Topic = topic
	}

	if v := os.Getenv("CENTAVO_MIN_INSTALLMENT_CENTS"); v != "" {
		if c, err := strconv.ParseInt(v, 10, 64); err == nil && c >= 0 {
			config.Ledger.MinInstallmentCents = c
		}
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
