// Package config loads client defaults from YAML files and environment
// variables, with env taking precedence over files and files over the
// built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables read by Load, e.g.
// FETCH_HTTP_TIMEOUT maps to http.timeout.
const EnvPrefix = "FETCH_"

// Config holds the loadable client defaults.
type Config struct {
	HTTP HTTPConfig `koanf:"http"`
	Log  LogConfig  `koanf:"log"`
}

// HTTPConfig carries the request defaults consumed by fetch.Builder.
type HTTPConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"gte=0"`
	Retry   RetryConfig   `koanf:"retry"`
}

// RetryConfig configures the default retry policy. Count is the number of
// retries after the initial attempt; Delay is the fixed wait between them.
type RetryConfig struct {
	Count int           `koanf:"count" validate:"gte=0"`
	Delay time.Duration `koanf:"delay" validate:"gte=0"`
}

// LogConfig configures the client logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Load reads configuration with priority: environment variables, then the
// YAML file at path (skipped when path is empty or the file is absent),
// then defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(envprovider.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct constraints.
func Validate(cfg *Config) error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"http.timeout":     "30s",
		"http.retry.count": 0,
		"http.retry.delay": "2s",

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
