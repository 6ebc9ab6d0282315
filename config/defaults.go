package config

import (
	"github.com/spf13/viper"
)

// Default values
const (
	DefaultIndentWidth = 2
	DefaultExtension   = "cr"
	DefaultDebounceMS  = 300
	DefaultTheme       = "everforest"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.indent_width", DefaultIndentWidth)
	v.SetDefault("generate.fragment", false)
	v.SetDefault("generate.extension", DefaultExtension)

	v.SetDefault("output.dir", "")

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", DefaultTheme)
}

// Defaults returns a Config populated with default values
func Defaults() *Config {
	return &Config{
		Generate: GenerateConfig{
			IndentWidth: DefaultIndentWidth,
			Extension:   DefaultExtension,
		},
		Watch: WatchConfig{DebounceMS: DefaultDebounceMS},
		Log:   LogConfig{Theme: DefaultTheme},
	}
}
