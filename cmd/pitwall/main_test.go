package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reportLine = regexp.MustCompile(`^[A-Z]{3}: \d+\.\d{2}% win probability$`)

func writeTestConfig(t *testing.T, policy string) string {
	t.Helper()
	dataDir, err := filepath.Abs(filepath.Join("..", "..", "data"))
	require.NoError(t, err)

	content := fmt.Sprintf(`
app:
  name: pitwall
  environment: development
  log_level: error
simulation:
  trials: 500
  workers: 2
  compound_policy: %s
seasons:
  - id: dutch-2021
    laps_path: %s
    weather_path: %s
  - id: dutch-2022
    laps_path: %s
    weather_path: %s
data_source:
  type: csv
  cache_enabled: false
`, policy,
		filepath.Join(dataDir, "dutch_2021_laps.csv"), filepath.Join(dataDir, "dutch_2021_weather.csv"),
		filepath.Join(dataDir, "dutch_2022_laps.csv"), filepath.Join(dataDir, "dutch_2022_weather.csv"))

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCommand(t *testing.T, build func(stdout, stderr *bytes.Buffer) (func(args []string) error), args ...string) (string, error) {
	t.Helper()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	err := build(stdout, stderr)(args)
	return stdout.String(), err
}

func simulate(stdout, stderr *bytes.Buffer) func(args []string) error {
	return func(args []string) error {
		cmd := newSimulateCmd(stdout, stderr)
		cmd.SetArgs(args)
		return cmd.Execute()
	}
}

func TestSimulateCommandPrintsReport(t *testing.T) {
	configFile = writeTestConfig(t, "strict")

	out, err := runCommand(t, simulate, "--seed", "7", "--trials", "300")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.Regexp(t, reportLine, line)
	}
}

func TestSimulateCommandIsReproducible(t *testing.T) {
	configFile = writeTestConfig(t, "strict")

	first, err := runCommand(t, simulate, "--seed", "11", "--workers", "3")
	require.NoError(t, err)
	second, err := runCommand(t, simulate, "--seed", "11", "--workers", "3")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulateCommandRejectsZeroTrials(t *testing.T) {
	configFile = writeTestConfig(t, "strict")

	_, err := runCommand(t, simulate, "--trials", "0")
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	configFile = writeTestConfig(t, "fallback")

	out, err := runCommand(t, func(stdout, stderr *bytes.Buffer) func(args []string) error {
		return func(args []string) error {
			cmd := newValidateCmd(stdout, stderr)
			cmd.SetArgs(args)
			return cmd.Execute()
		}
	})
	require.NoError(t, err)
	assert.Contains(t, out, "dutch-2021: 11 laps, 3 drivers, DRY (csv)")
	assert.Contains(t, out, "dutch-2022: 12 laps, 3 drivers, RAIN (csv)")
	assert.Contains(t, out, "Configuration OK")
}
