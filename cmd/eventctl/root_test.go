package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/SeaCloudHub/eventhandler/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const scenarioFile = `
events: [one]
bindings:
  - event: one
    listener: record
  - event: one
    listener: fail
    name: will_fail_callback
fires:
  - event: one
    args: [1]
`

func execute(t *testing.T, cfg *config.Config, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(cfg, zap.NewNop().Sugar())
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func writeScenario(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioFile), 0o600))

	return path
}

func TestRunCommand(t *testing.T) {
	t.Run("it should warn on the sink when tolerating", func(t *testing.T) {
		stdout, stderr, err := execute(t, &config.Config{}, "run", "-v", "-t", writeScenario(t))

		require.NoError(t, err)
		assert.Contains(t, stdout, "one\tfalse")
		assert.Contains(t, stderr, "WARNING")
		assert.Contains(t, stderr, "will_fail_callback")
	})

	t.Run("it should fail fast without toleration", func(t *testing.T) {
		_, _, err := execute(t, &config.Config{}, "run", writeScenario(t))

		assert.ErrorContains(t, err, "will_fail_callback")
	})

	t.Run("it should write diagnostics to a file sink", func(t *testing.T) {
		var cfg config.Config
		cfg.Events.Output = filepath.Join(t.TempDir(), "events.log")
		cfg.Events.Verbose = true
		cfg.Events.TolerateExceptions = true

		_, _, err := execute(t, &cfg, "run", writeScenario(t))
		require.NoError(t, err)

		data, err := os.ReadFile(cfg.Events.Output)
		require.NoError(t, err)
		assert.Contains(t, string(data), "WARNING")
	})

	t.Run("it should require a scenario path", func(t *testing.T) {
		_, _, err := execute(t, &config.Config{}, "run")

		assert.Error(t, err)
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, &config.Config{}, "version")

	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}
