package config

// Config represents the complete configuration structure.
type Config struct {
	Readeck ReadeckConfig `mapstructure:"readeck"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ReadeckConfig holds the Readeck instance connection details.
type ReadeckConfig struct {
	URL     string `mapstructure:"url"`
	Token   string `mapstructure:"token"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// FilterConfig contains the default filter expression and named presets.
type FilterConfig struct {
	Default string            `mapstructure:"default"`
	Presets map[string]string `mapstructure:"presets"`
}

// ExportConfig contains article export settings.
type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
