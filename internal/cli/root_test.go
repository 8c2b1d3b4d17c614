package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_RejectsInvalidFormat(t *testing.T) {
	_, err := execute(t, "--format", "xml", "tickets", "x.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "xml"`)
}

func TestRootCommand_AcceptsValidFormats(t *testing.T) {
	for _, format := range ValidFormats {
		t.Run(format, func(t *testing.T) {
			// The format gate passes; the command then fails on the
			// missing path with a command error, not a flag error.
			_, err := execute(t, "--format", format, "test", "does-not-exist")
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad input")))
	assert.Equal(t, ExitFailure, GetExitCode(assert.AnError))
}

func TestOutputFormatter_JSON(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out}

	require.NoError(t, f.Success(map[string]int{"tables": 3}))
	assert.Contains(t, out.String(), `"status": "ok"`)
	assert.Contains(t, out.String(), `"tables": 3`)

	out.Reset()
	require.NoError(t, f.Errorf("table %d not found", 9))
	assert.Contains(t, out.String(), `"status": "error"`)
	assert.Contains(t, out.String(), "table 9 not found")
}

func TestOutputFormatter_Text(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out}

	require.NoError(t, f.Errorf("boom"))
	assert.Equal(t, "error: boom\n", out.String())
}
