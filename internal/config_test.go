package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(dir, "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, NewDefaultConfig(), cfg)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("NEUME_TEST_CACHE", filepath.Join(dir, "cache"))
		path := filepath.Join(dir, "custom.yaml")
		content := `name: antiphonale
extensions: [".neume", ".chant"]
output:
  format: json
  color: false
cache:
  enabled: true
  dir: ${NEUME_TEST_CACHE}
  max_age: 2h
watch:
  debounce: 250ms
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "antiphonale", cfg.Name)
		assert.Equal(t, []string{".neume", ".chant"}, cfg.Extensions)
		assert.Equal(t, FormatJSON, cfg.Output.Format)
		assert.False(t, cfg.Output.Color)
		assert.True(t, cfg.Cache.Enabled)
		assert.Equal(t, filepath.Join(dir, "cache"), cfg.Cache.Dir)
		assert.Equal(t, 2*time.Hour, cfg.Cache.MaxAge)
		assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	})

	t.Run("partial file keeps other defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  format: json\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, cfg.Output.Format)
		assert.True(t, cfg.Output.Color)
		assert.Equal(t, []string{".neume"}, cfg.Extensions)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output: [\n"), 0o644))

		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("validation", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("output:\n  format: pdf\n"), 0o644))

		_, err := LoadConfig(path)
		assert.ErrorContains(t, err, "config validation failed")
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"no extensions", func(c *Config) { c.Extensions = nil }, true},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"neume"} }, true},
		{"unknown format", func(c *Config) { c.Output.Format = "html" }, true},
		{"empty format", func(c *Config) { c.Output.Format = "" }, true},
		{"cache without dir", func(c *Config) { c.Cache.Enabled = true; c.Cache.Dir = "" }, true},
		{"disabled cache without dir", func(c *Config) { c.Cache.Dir = "" }, false},
		{"cache kept until files change", func(c *Config) { c.Cache.Enabled = true; c.Cache.MaxAge = 0 }, false},
		{"negative cache max age", func(c *Config) { c.Cache.Enabled = true; c.Cache.MaxAge = -time.Minute }, true},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, true},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)

	require.NoError(t, WriteConfig(path, NewDefaultConfig()))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, NewDefaultConfig(), cfg)
}
