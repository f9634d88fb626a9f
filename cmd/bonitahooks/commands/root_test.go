package commands

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/logging"
)

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	origVerbosity := verbosity
	defer func() { verbosity = origVerbosity }()
	t.Setenv("BONITAHOOKS_DEBUG", "")

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity = tt.verbosity
			if err := setupLogging(rootCmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := slog.Default()
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace {
				shouldBeDisabled := tt.wantLevel - 4
				if logger.Enabled(t.Context(), shouldBeDisabled) {
					t.Errorf("expected level %v to be disabled", shouldBeDisabled)
				}
			}
		})
	}
}

func TestSetupLogging_QuietAndVerbose(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "", "-q", "-v", "rules", "list")
	require.Error(t, err)
	assert.Equal(t, errors.ExitUser, errors.ExitCode(err))
}

func TestSetupLogging_LogFile(t *testing.T) {
	dir := isolate(t)
	logPath := filepath.Join(dir, "run.log")

	_, _, err := execute(t, "", "--log-file", logPath, "-vv", "rules", "list")
	require.NoError(t, err)
	assert.FileExists(t, logPath)
}

func TestRoot_ConfigErrorBlocksCommands(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".bonitahooks", "config.yaml"), "version: 2\n")

	_, _, err := execute(t, "", "rules", "list")
	require.Error(t, err)

	var exitErr *errors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, "Run: bonitahooks doctor", exitErr.Suggestion)
	assert.Contains(t, err.Error(), "unsupported config version: 2")
}

func TestRoot_ExplicitConfigFlag(t *testing.T) {
	dir := isolate(t)
	cfgPath := writeFile(t, filepath.Join(dir, "custom.yaml"), "disabled_checks:\n  - no-wildcard-import\n")

	out, _, err := execute(t, "", "--config", cfgPath, "rules", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "no-wildcard-import")
	assert.Contains(t, out, "no-system-out")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)

	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bonitahooks version dev")
	assert.Contains(t, out, "commit: none")
}
