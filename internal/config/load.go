package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the file name looked up when no --config flag is
// given.
const DefaultConfigFile = "pvelamp.yaml"

// LoadFile reads, defaults, and validates a configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path comes from the user's own --config flag
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the default config file path if it exists in the
// current directory.
func FindConfigFile() (string, error) {
	if _, err := os.Stat(DefaultConfigFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%s not found in current directory", DefaultConfigFile)
		}
		return "", err
	}
	return DefaultConfigFile, nil
}

// Save writes the configuration as YAML to path. Existing files are
// overwritten.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
