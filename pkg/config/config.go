// Package config provides configuration loading and management for nrrdvol.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"nrrdvol/pkg/nrrd"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Loader parameters control header parser strictness
	Loader struct {
		// StrictType rejects headers declaring a voxel type other than int16
		// instead of loading with a warning
		StrictType bool `yaml:"strictType"`

		// StrictEndian rejects big-endian payloads instead of byte-swapping them
		StrictEndian bool `yaml:"strictEndian"`
	} `yaml:"loader"`

	// Preview parameters control windowed slice export
	Preview struct {
		// Axes lists the volume axes to export slice sequences along
		Axes []string `yaml:"axes"`

		// OutputDir is the directory slice images are written to
		OutputDir string `yaml:"outputDir"`

		// Quality is the JPEG quality for exported slices (1-100)
		Quality int `yaml:"quality"`
	} `yaml:"preview"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Lenient loader by default: type mismatches warn, big endian is normalized
	cfg.Loader.StrictType = false
	cfg.Loader.StrictEndian = false

	// Set default preview parameters
	cfg.Preview.Axes = []string{"z"}
	cfg.Preview.OutputDir = "preview_slices"
	cfg.Preview.Quality = 90

	// Set default output parameters
	cfg.Output.Verbose = true

	return cfg
}

// Policy converts the loader section into the parser strictness policy.
func (c *Config) Policy() nrrd.Policy {
	return nrrd.Policy{
		StrictType:   c.Loader.StrictType,
		StrictEndian: c.Loader.StrictEndian,
	}
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}
