package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/bonitahooks/internal/settings"
)

// resetFlags restores every package-level flag variable to its default.
func resetFlags() {
	verbosity = 0
	quiet = false
	logFormat = "text"
	logFile = ""
	configPath = ""
	checkSets = nil
	checkStrict = false
	checkJSON = false
	checkChanged = false
	rulesListJSON = false
	settingsProjectType = ""
	settingsOutput = ""
	settingsMerge = false
	settingsBinary = settings.DefaultBinary
	settingsNoBackup = false
	settingsRestoreTo = ""
	configProject = false
	genDocDir = ""
	genDocFormat = "markdown"
	lintJSON = false
	doctorJSON = false
	doctorVerbose = false
	doctorBinary = settings.DefaultBinary
}

// isolate runs the test from an empty project directory with an empty user
// config directory and returns the project directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("BONITAHOOKS_CONFIG_DIR", t.TempDir())
	t.Setenv("BONITAHOOKS_DEBUG", "")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

// execute runs the root command with args and returns what it wrote.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out, errOut bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
