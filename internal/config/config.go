package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config models mealbridge.yml. The file is optional; a missing file means
// defaults, so the tool works on first launch with zero setup.
type Config struct {
	Organization string `yaml:"organization"`
	Expiry       struct {
		WarningDays int `yaml:"warning_days"`
	} `yaml:"expiry"`
	Dashboard struct {
		Recent int `yaml:"recent"`
	} `yaml:"dashboard"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var cfg Config
	cfg.Organization = "MealBridge"
	cfg.Expiry.WarningDays = 2
	cfg.Dashboard.Recent = 3
	return &cfg
}

// Path returns the config file path for a workspace.
func Path(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, "mealbridge.yml")
}

// Load reads config from the workspace, falling back to defaults when the
// file does not exist.
func Load(workspace string) (*Config, error) {
	data, err := os.ReadFile(Path(workspace))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return FromYAML(data)
}

// FromYAML parses and validates config from raw YAML bytes. Unset fields take
// their defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures the config values are usable.
func (c *Config) Validate() error {
	if c.Organization == "" {
		return fmt.Errorf("config.organization must not be empty")
	}
	if c.Expiry.WarningDays < 0 {
		return fmt.Errorf("config.expiry.warning_days must be >= 0")
	}
	if c.Dashboard.Recent <= 0 {
		return fmt.Errorf("config.dashboard.recent must be > 0")
	}
	return nil
}

// GenerateDefault returns default config YAML for `mb config init`.
func GenerateDefault(organization string) string {
	if organization == "" {
		organization = "MealBridge"
	}
	return fmt.Sprintf(defaultTemplate, organization)
}

const defaultTemplate = `organization: %s

expiry:
  warning_days: 2

dashboard:
  recent: 3
`
