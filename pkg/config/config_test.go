package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SeaCloudHub/eventhandler/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("it should apply defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "stderr", cfg.Events.Output)
		assert.False(t, cfg.Events.Verbose)
		assert.False(t, cfg.Events.TolerateExceptions)
	})

	t.Run("it should read the environment", func(t *testing.T) {
		t.Setenv("EVENTS_VERBOSE", "true")
		t.Setenv("EVENTS_TOLERATE_EXCEPTIONS", "true")
		t.Setenv("EVENTS_INITIAL", "one,two,three")
		t.Setenv("EVENTS_OUTPUT", "stdout")

		cfg, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		require.NoError(t, err)
		assert.True(t, cfg.Events.Verbose)
		assert.True(t, cfg.Events.TolerateExceptions)
		assert.Equal(t, []string{"one", "two", "three"}, cfg.Events.Initial)
		assert.Equal(t, "stdout", cfg.Events.Output)
	})

	t.Run("it should read a dotenv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\n"), 0o600))
		t.Cleanup(func() { os.Unsetenv("LOG_LEVEL") })

		cfg, err := config.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("it should reject malformed values", func(t *testing.T) {
		t.Setenv("EVENTS_VERBOSE", "maybe")

		_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		assert.Error(t, err)
	})
}
