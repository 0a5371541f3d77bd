package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Load loads the configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check XDG config directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "readeckctl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/readeckctl/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Readeck defaults
	v.SetDefault("readeck.url", "http://localhost:8000")
	v.SetDefault("readeck.timeout", 30)

	// Export defaults
	v.SetDefault("export.directory", ".")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Readeck.URL == "" {
		return fmt.Errorf("readeck.url is required")
	}

	if cfg.Readeck.Token == "" || cfg.Readeck.Token == "your-api-token-here" {
		return fmt.Errorf("readeck.token must be set to a valid API token")
	}

	if cfg.Readeck.Timeout < 0 {
		return fmt.Errorf("readeck.timeout must not be negative")
	}

	for name, expression := range cfg.Filter.Presets {
		if expression == "" {
			return fmt.Errorf("filter.presets.%s must not be empty", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// FilterExpression resolves a preset name or raw expression against the
// configured presets. An empty input falls back to filter.default.
func (c *Config) FilterExpression(nameOrExpr string) string {
	if nameOrExpr == "" {
		nameOrExpr = c.Filter.Default
	}
	if expression, ok := c.Filter.Presets[nameOrExpr]; ok {
		return expression
	}
	return nameOrExpr
}
