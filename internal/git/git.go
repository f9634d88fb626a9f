// Package git lists working tree changes by shelling out to git.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// ErrNotRepository indicates dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Root returns the top-level directory of the work tree containing dir.
func Root(ctx context.Context, dir string) (string, error) {
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// Changed returns the absolute paths of files that are modified, staged or
// untracked in the work tree containing dir. Deleted files are left out.
func Changed(ctx context.Context, dir string) ([]string, error) {
	root, err := Root(ctx, dir)
	if err != nil {
		return nil, err
	}
	out, err := run(ctx, root, "status", "--porcelain=v1", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}

	files := parseStatus(out)
	for i, f := range files {
		files[i] = filepath.Join(root, filepath.FromSlash(f))
	}
	slices.Sort(files)
	return files, nil
}

// parseStatus reads NUL-separated porcelain v1 records. Renames and copies
// carry the source path as an extra record, which is skipped.
func parseStatus(out []byte) []string {
	var files []string
	records := bytes.Split(out, []byte{0})
	for i := 0; i < len(records); i++ {
		rec := string(records[i])
		if len(rec) < 4 {
			continue
		}
		x, y, path := rec[0], rec[1], rec[3:]
		if x == 'R' || x == 'C' {
			i++
		}
		if x == 'D' || y == 'D' {
			continue
		}
		files = append(files, path)
	}
	return files
}

func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if strings.Contains(msg, "not a git repository") {
			return nil, errors.Wrap(ErrNotRepository, dir)
		}
		if msg != "" {
			return nil, errors.Wrapf(err, "git %s: %s", args[0], msg)
		}
		return nil, errors.Wrapf(err, "git %s", args[0])
	}
	return out, nil
}
