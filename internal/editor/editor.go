// Package editor launches the user's text editor on a file.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Command returns the editor invocation for path. $VISUAL wins over $EDITOR,
// then nano, then vi. Editor values may carry arguments, e.g. "code --wait".
func Command(ctx context.Context, path string) *exec.Cmd {
	argv := strings.Fields(detect())
	argv = append(argv, path)
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}

// Open runs the editor on path attached to the given streams and waits for
// it to exit.
func Open(ctx context.Context, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := Command(ctx, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running editor %s", cmd.Args[0])
	}
	return nil
}

func detect() string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	if _, err := lookPath("nano"); err == nil {
		return "nano"
	}
	return "vi"
}
