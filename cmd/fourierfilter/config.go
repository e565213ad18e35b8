package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"fourier-paint/internal/spectrum"
)

// Config describes a batch filter run loaded from YAML.
type Config struct {
	// Filters is the chain applied in order.
	Filters []FilterStep `yaml:"filters"`

	Output struct {
		// Verbose controls per-step logging.
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// FilterStep is one filter application.
type FilterStep struct {
	// Kind is one of "radial", "threshold", "gaussian".
	Kind string `yaml:"kind"`

	// Param is the filter's fraction parameter.
	Param float64 `yaml:"param"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Output.Verbose = true
	return cfg
}

// LoadConfig loads configuration from a YAML file. A missing file returns
// the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every step before any work happens.
func (c *Config) Validate() error {
	for i, step := range c.Filters {
		if _, err := spectrum.ParseFilterKind(step.Kind); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}
