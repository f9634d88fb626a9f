package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

// Dir returns the default snapshot directory.
func Dir() string {
	return filepath.Join(paths.ConfigDir(), "backups")
}

// Manager creates, lists, prunes and restores snapshots.
type Manager struct {
	rootDir   string
	retention int
	version   string
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the snapshot directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets how many snapshots are kept. Non-positive values
// are ignored.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.retention = n
		}
	}
}

// WithVersion records the tool version in new manifests.
func WithVersion(v string) Option {
	return func(m *Manager) {
		m.version = v
	}
}

// NewManager returns a Manager rooted at Dir unless overridden.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:   Dir(),
		retention: DefaultRetentionCount,
		version:   "dev",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Backup copies src into a new snapshot and prunes old ones.
func (m *Manager) Backup(src string) (*Manifest, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", src)
	}

	created := m.now().UTC()
	id, dir, err := m.reserve(created)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(abs)
	sum, mode, err := copyFile(abs, filepath.Join(dir, name))
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrapf(err, "backing up %s", src)
	}

	manifest := &Manifest{
		Version:   ManifestVersion,
		CreatedAt: created,
		Source:    abs,
		File:      name,
		SHA256:    sum,
		Mode:      mode,
		Tool:      m.version,
		ID:        id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, manifestName), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}

	if err := m.Prune(m.retention); err != nil {
		return manifest, err
	}
	return manifest, nil
}

// reserve creates a fresh snapshot directory, suffixing the timestamp when
// two snapshots land in the same second.
func (m *Manager) reserve(t time.Time) (string, string, error) {
	if err := paths.EnsureDir(m.rootDir, 0o700); err != nil {
		return "", "", err
	}
	base := t.Format(idLayout)
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = base + "-" + strconv.Itoa(i)
		}
		dir := filepath.Join(m.rootDir, id)
		err := os.Mkdir(dir, 0o700)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// List returns all snapshots, newest first.
func (m *Manager) List() ([]Manifest, error) {
	entries, err := os.ReadDir(m.rootDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading backup directory")
	}

	var out []Manifest
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		mf, err := m.Get(e.Name())
		if err != nil {
			// Directories without a readable manifest are not snapshots.
			continue
		}
		out = append(out, *mf)
	}
	slices.SortFunc(out, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out, nil
}

// Get loads the manifest of one snapshot.
func (m *Manager) Get(id string) (*Manifest, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, errors.Wrapf(errors.ErrNotFound, "backup %q", id)
	}
	data, err := os.ReadFile(filepath.Join(m.rootDir, id, manifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrapf(errors.ErrNotFound, "backup %q", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", id)
	}
	var mf Manifest
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest of %s", id)
	}
	mf.ID = id
	return &mf, nil
}

// Prune removes all but the newest keep snapshots.
func (m *Manager) Prune(keep int) error {
	list, err := m.List()
	if err != nil {
		return err
	}
	if keep < 0 {
		keep = 0
	}
	for _, mf := range list[min(keep, len(list)):] {
		if err := os.RemoveAll(filepath.Join(m.rootDir, mf.ID)); err != nil {
			return errors.Wrapf(err, "removing backup %s", mf.ID)
		}
	}
	return nil
}

// Restore writes a snapshot back to target, or to its original location
// when target is empty. An empty id selects the newest snapshot.
func (m *Manager) Restore(id, target string) (*Manifest, error) {
	var mf *Manifest
	if id == "" {
		list, err := m.List()
		if err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, ErrNoBackupsFound
		}
		mf = &list[0]
	} else {
		var err error
		if mf, err = m.Get(id); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(filepath.Join(m.rootDir, mf.ID, mf.File))
	if err != nil {
		return nil, errors.Wrapf(err, "reading backup %s", mf.ID)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != mf.SHA256 {
		return nil, errors.Wrapf(ErrBackupCorrupted, "backup %s", mf.ID)
	}

	if target == "" {
		target = mf.Source
	}
	if err := paths.EnsureDir(filepath.Dir(target), 0); err != nil {
		return nil, err
	}
	if err := fileutil.AtomicWriteFile(target, data, mf.Mode.Perm()); err != nil {
		return nil, errors.Wrapf(err, "restoring %s", target)
	}
	return mf, nil
}

// copyFile copies src to dst and returns the content hash and source mode.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, err
	}
	if info.IsDir() {
		return "", 0, errors.Newf("%s is a directory", src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, err
	}
	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, err
	}
	if err := out.Close(); err != nil {
		return "", 0, err
	}
	return hex.EncodeToString(h.Sum(nil)), info.Mode(), nil
}
