// Package config loads turbo-kit settings from defaults, an optional YAML file
// and TURBOKIT_ environment variables, in increasing order of priority.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/FrenchMajesty/turbo-kit/utils/retry"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFile is read when Load is given no path and the file exists.
	DefaultFile = "turbo-kit.yaml"
	// EnvPrefix marks environment variables that override configuration.
	// Nested keys are separated by a double underscore, e.g.
	// TURBOKIT_RETRY__MAXATTEMPTS=5.
	EnvPrefix = "TURBOKIT_"
)

const (
	StrategyLinear = "linear"
	StrategyBinary = "binary"
)

// Config is the root configuration.
type Config struct {
	Log      LogConfig      `koanf:"log" json:"log" yaml:"log"`
	Retry    retry.Config   `koanf:"retry" json:"retry" yaml:"retry"`
	Dispatch DispatchConfig `koanf:"dispatch" json:"dispatch" yaml:"dispatch"`
}

// LogConfig selects the log level and sinks.
type LogConfig struct {
	Level  string `koanf:"level" json:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Pretty bool   `koanf:"pretty" json:"pretty" yaml:"pretty"`
	// File, when set, receives JSON log lines in addition to stdout.
	File string `koanf:"file" json:"file" yaml:"file"`
}

// DispatchConfig drives the dispatch simulator.
type DispatchConfig struct {
	Requests    int              `koanf:"requests" json:"requests" yaml:"requests" validate:"gte=0"`
	Concurrency int              `koanf:"concurrency" json:"concurrency" yaml:"concurrency" validate:"gte=0"`
	FailureRate float64          `koanf:"failurerate" json:"failurerate" yaml:"failurerate" validate:"gte=0,lte=1"`
	Strategy    string           `koanf:"strategy" json:"strategy" yaml:"strategy" validate:"oneof=linear binary"`
	Upstreams   []UpstreamConfig `koanf:"upstreams" json:"upstreams" yaml:"upstreams" validate:"required,min=1,unique=Name,dive"`
}

// UpstreamConfig is one weighted destination.
type UpstreamConfig struct {
	Name   string  `koanf:"name" json:"name" yaml:"name" validate:"required"`
	Weight float64 `koanf:"weight" json:"weight" yaml:"weight" validate:"gte=0"`
	// Down makes every call to the upstream fail with a non-retryable error.
	Down bool `koanf:"down" json:"down" yaml:"down"`
}

var validate = validator.New()

// Load reads configuration with the following priority:
// 1. Environment variables (highest priority)
// 2. The YAML file at path, or DefaultFile if path is empty and it exists
// 3. Default values (lowest priority)
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return finish(k)
}

// LoadBytes is Load with the YAML document supplied in memory instead of a file.
func LoadBytes(data []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// transformEnv maps TURBOKIT_RETRY__MAXATTEMPTS to retry.maxattempts.
func transformEnv(key, value string) (string, any) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	return strings.ReplaceAll(key, "__", "."), value
}

func loadDefaults(k *koanf.Koanf) error {
	retryDefaults := retry.DefaultConfig()

	defaults := map[string]any{
		"log.level":  "info",
		"log.pretty": false,
		"log.file":   "",

		"retry.maxattempts":       retryDefaults.MaxAttempts,
		"retry.initialdelay":      retryDefaults.InitialDelay.String(),
		"retry.backoffmultiplier": retryDefaults.BackoffMultiplier,
		"retry.maxdelay":          retryDefaults.MaxDelay.String(),

		"dispatch.requests":    100,
		"dispatch.concurrency": 8,
		"dispatch.failurerate": 0.2,
		"dispatch.strategy":    StrategyLinear,
		"dispatch.upstreams": []map[string]any{
			{"name": "primary", "weight": 70},
			{"name": "secondary", "weight": 25},
			{"name": "canary", "weight": 5},
		},
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}

// Validate checks every section, including the nested retry schedule.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
