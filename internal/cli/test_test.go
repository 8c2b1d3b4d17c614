package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingScenario = `
name: seat-and-serve
setup:
  - op: add_table
    table: 1
    capacity: 4
flow:
  - op: create_reservation
    ref: r1
    customer: John Smith
    party_size: 2
    arrival: 1hour
  - op: confirm
    ref: r1
    table: 1
assertions:
  - type: reservation_status
    ref: r1
    status: seated
`

const failingScenario = `
name: wrong-status
setup:
  - op: add_table
    table: 1
    capacity: 4
flow:
  - op: create_reservation
    ref: r1
    customer: John Smith
    party_size: 2
    arrival: 1hour
assertions:
  - type: reservation_status
    ref: r1
    status: seated
`

func writeScenarios(t *testing.T, scenarios map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range scenarios {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestTestCommand_AllPass(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"seat.yaml": passingScenario})

	out, err := execute(t, "test", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  seat-and-serve")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_FailureSetsExitCode(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"seat.yaml": passingScenario,
		"miss.yaml": failingScenario,
	})

	out, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "FAIL  wrong-status")
	assert.Contains(t, out, "1 passed, 1 failed, 2 total")
}

func TestTestCommand_Filter(t *testing.T) {
	dir := writeScenarios(t, map[string]string{
		"seat.yaml": passingScenario,
		"miss.yaml": failingScenario,
	})

	out, err := execute(t, "test", dir, "--filter", "seat-*")
	require.NoError(t, err)
	assert.NotContains(t, out, "wrong-status")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommand_JSONOutput(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"seat.yaml": passingScenario})

	out, err := execute(t, "test", dir, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"status": "ok"`)
	assert.Contains(t, out, `"name": "seat-and-serve"`)
	assert.Contains(t, out, `"passed": 1`)
}

func TestTestCommand_MalformedScenario(t *testing.T) {
	dir := writeScenarios(t, map[string]string{"bad.yaml": "name: broken\nflow:\n  - op: teleport"})

	_, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, err := execute(t, "test", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
