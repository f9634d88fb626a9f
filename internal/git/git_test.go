package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

func TestParseStatus(t *testing.T) {
	out := []byte(" M src/main/java/A.java\x00" +
		"?? src/test/java/NewTest.java\x00" +
		"R  src/New.java\x00src/Old.java\x00" +
		" D src/Gone.java\x00" +
		"D  src/Staged.java\x00" +
		"A  pom.xml\x00")

	got := parseStatus(out)
	assert.Equal(t, []string{
		"src/main/java/A.java",
		"src/test/java/NewTest.java",
		"src/New.java",
		"pom.xml",
	}, got)
}

func TestParseStatus_Empty(t *testing.T) {
	assert.Empty(t, parseStatus(nil))
}

// initRepo creates a repository with one committed file.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	gitCmd := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
			"GIT_CONFIG_GLOBAL=/dev/null")
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	gitCmd("init", "-q")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Committed.java"), []byte("class A {}\n"), 0o644))
	gitCmd("add", ".")
	gitCmd("commit", "-q", "-m", "init")
	return dir
}

func TestChanged(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Committed.java"), []byte("class B {}\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "New.java"), []byte("class N {}\n"), 0o644))

	files, err := Changed(context.Background(), filepath.Join(dir, "src"))
	require.NoError(t, err)

	root, err := Root(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "Committed.java"),
		filepath.Join(root, "src", "New.java"),
	}, files)
}

func TestChanged_NotRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	t.Setenv("GIT_CEILING_DIRECTORIES", os.TempDir())

	_, err := Changed(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRepository))
}
