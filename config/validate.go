package config

import "github.com/teranos/tscr/errors"

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Generate.IndentWidth < 1 {
		return errors.Newf("generate.indent_width must be >= 1, got %d", c.Generate.IndentWidth)
	}
	if c.Generate.Extension == "" {
		return errors.New("generate.extension cannot be empty")
	}

	// 0 = no debounce, negative = invalid
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	switch c.Log.Theme {
	case "", "everforest", "gruvbox":
	default:
		return errors.WithHint(
			errors.Newf("log.theme %q is not a known theme", c.Log.Theme),
			"use everforest or gruvbox",
		)
	}

	return nil
}
