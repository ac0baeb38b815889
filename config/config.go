// Package config loads the binder's configuration surface: whether type
// coercion is enabled and which handler namespace supplies the type handlers.
//
// Load builds one Config from three layers (highest precedence last):
//
//  1. an optional .env file next to the YAML file (or in the working
//     directory when no file is given);
//  2. the YAML file itself;
//  3. environment variables prefixed GOINPUT_, where "__" maps to "."
//     (GOINPUT_NAMESPACE → namespace, GOINPUT_ENABLED → enabled).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// EnvPrefix marks environment overrides.
const EnvPrefix = "GOINPUT_"

// Config is the binder configuration.
type Config struct {
	// Enabled toggles coercion; nil means enabled.
	Enabled *bool `koanf:"enabled"`
	// Namespace selects a published handler registry.
	Namespace string `koanf:"namespace" validate:"required"`
}

// IsEnabled reports whether coercion is on.
func (c Config) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

var v = validator.New()

// Validate returns the first validation error, or nil on success.
func Validate(c *Config) error {
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// Load reads .env, the optional YAML file at path, and GOINPUT_ overrides,
// then validates the result. A missing namespace is an error.
func Load(path string) (*Config, error) {
	dir := "."
	if path != "" {
		dir = filepath.Dir(path)
	}
	// .env is optional
	if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
		zap.S().Debugw("config dotenv loaded", "dir", dir)
	}

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", path, "err", err)
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		zap.S().Debugw("config yaml loaded", "file", path)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, EnvPrefix), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config: env overlay: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}
	zap.S().Infow("config loaded", "namespace", cfg.Namespace, "enabled", cfg.IsEnabled())
	return &cfg, nil
}
