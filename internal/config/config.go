// SPDX-License-Identifier: Apache-2.0

// Package config loads cropreport settings from defaults, an optional YAML
// file and CROPREPORT_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

const envPrefix = "CROPREPORT_"

// Config holds all cropreport settings.
type Config struct {
	Log LogConfig `yaml:"log"`
	// LexiconPath overrides the embedded lexicon when set.
	LexiconPath string `yaml:"lexicon_path"`
	// Output is the CLI output format: json or yaml.
	Output string `yaml:"output"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Output: "json",
	}
}

// Load builds a Config. A .env file in the working directory is read first
// if present; path may be empty.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %q: %w", path, err)
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(envPrefix + "LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(envPrefix + "LEXICON"); v != "" {
		c.LexiconPath = v
	}
	if v := os.Getenv(envPrefix + "OUTPUT"); v != "" {
		c.Output = v
	}
}

// Validate rejects unknown output and log formats.
func (c *Config) Validate() error {
	c.Output = strings.ToLower(c.Output)
	switch c.Output {
	case "json", "yaml":
	default:
		return fmt.Errorf("unsupported output format %q (want json or yaml)", c.Output)
	}

	c.Log.Format = strings.ToLower(c.Log.Format)
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported log format %q (want json or console)", c.Log.Format)
	}
	return nil
}
