// Package config loads tscr settings from tscr.toml files and TSCR_* environment variables.
package config

// Config represents the tscr configuration
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate"`
	Output   OutputConfig   `mapstructure:"output" toml:"output"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch"`
	Log      LogConfig      `mapstructure:"log" toml:"log"`
}

// GenerateConfig configures Crystal generation
type GenerateConfig struct {
	IndentWidth int    `mapstructure:"indent_width" toml:"indent_width"` // spaces per nesting level (default: 2)
	Fragment    bool   `mapstructure:"fragment" toml:"fragment"`         // omit the generated-file header
	Extension   string `mapstructure:"extension" toml:"extension"`       // output file extension without dot (default: cr)
}

// OutputConfig configures where generated files are written
type OutputConfig struct {
	Dir string `mapstructure:"dir" toml:"dir"` // empty = next to the source file
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms"` // 0 = regenerate on every event
}

// LogConfig configures CLI logging
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json"`
	Theme string `mapstructure:"theme" toml:"theme"` // Color theme: everforest, gruvbox
}

// File names and environment prefix
const (
	ProjectConfigName = "tscr.toml"
	EnvPrefix         = "TSCR"
)
