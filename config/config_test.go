package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/tscr/errors"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance without user or project config
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, 2, cfg.Generate.IndentWidth)
	assert.Equal(t, "cr", cfg.Generate.Extension)
	assert.False(t, cfg.Generate.Fragment)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tscr.toml")
	content := `
[generate]
indent_width = 4
fragment = true
extension = ".crystal"

[watch]
debounce_ms = 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Generate.IndentWidth)
	assert.True(t, cfg.Generate.Fragment)
	assert.Equal(t, "crystal", cfg.Generate.Extension)
	assert.Equal(t, 0, cfg.Watch.DebounceMS)
	// Untouched sections keep their defaults
	assert.Equal(t, DefaultTheme, cfg.Log.Theme)
}

func TestLoadFromFile_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tscr.toml")
	require.NoError(t, os.WriteFile(path, []byte("[generate]\nindent_width = 4\n"), 0644))

	t.Setenv("TSCR_GENERATE_INDENT_WIDTH", "8")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Generate.IndentWidth)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.toml")
}

func TestLoad_ProjectConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	require.NoError(t, os.MkdirAll(nested, 0750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ProjectConfigName),
		[]byte("[output]\ndir = \"gen\"\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
		Reset()
	})
	t.Setenv("HOME", t.TempDir())

	Reset()
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gen", cfg.Output.Dir)

	found, err := filepath.EvalSymlinks(ProjectConfigPath())
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(filepath.Join(root, ProjectConfigName))
	require.NoError(t, err)
	assert.Equal(t, want, found)

	// Cached until Reset
	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, again)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero debounce is valid", func(c *Config) { c.Watch.DebounceMS = 0 }, ""},
		{"empty theme is valid", func(c *Config) { c.Log.Theme = "" }, ""},
		{"zero indent", func(c *Config) { c.Generate.IndentWidth = 0 }, "indent_width"},
		{"negative indent", func(c *Config) { c.Generate.IndentWidth = -2 }, "indent_width"},
		{"empty extension", func(c *Config) { c.Generate.Extension = "" }, "extension"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -1 }, "debounce_ms"},
		{"unknown theme", func(c *Config) { c.Log.Theme = "solarized" }, "theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ThemeHint(t *testing.T) {
	cfg := Defaults()
	cfg.Log.Theme = "solarized"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "everforest")
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", ProjectConfigName)

	require.NoError(t, WriteDefault(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, *Defaults(), decoded)

	// The written file loads back to the defaults
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	err = WriteDefault(path, false)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "--force")

	assert.NoError(t, WriteDefault(path, true))
}
