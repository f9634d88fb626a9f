package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(append([]Option{WithBackupDir(t.TempDir())}, opts...)...)
	clock := time.Date(2026, 1, 23, 10, 7, 12, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return m
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o640))
	return path
}

func TestBackup(t *testing.T) {
	m := newTestManager(t, WithVersion("v1.0.0"))
	src := writeSettings(t, `{"hooks":{}}`)

	mf, err := m.Backup(src)
	require.NoError(t, err)

	assert.Equal(t, "20260123T100713", mf.ID)
	assert.Equal(t, src, mf.Source)
	assert.Equal(t, "settings.json", mf.File)
	assert.Equal(t, "v1.0.0", mf.Tool)
	assert.Equal(t, os.FileMode(0o640), mf.Mode.Perm())
	assert.Len(t, mf.SHA256, 64)

	copied, err := os.ReadFile(filepath.Join(m.rootDir, mf.ID, "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, `{"hooks":{}}`, string(copied))

	loaded, err := m.Get(mf.ID)
	require.NoError(t, err)
	assert.Equal(t, mf.SHA256, loaded.SHA256)
	assert.Equal(t, mf.ID, loaded.ID)
}

func TestBackup_SameSecond(t *testing.T) {
	m := newTestManager(t)
	fixed := time.Date(2026, 1, 23, 10, 7, 12, 0, time.UTC)
	m.now = func() time.Time { return fixed }
	src := writeSettings(t, "{}")

	first, err := m.Backup(src)
	require.NoError(t, err)
	second, err := m.Backup(src)
	require.NoError(t, err)

	assert.Equal(t, "20260123T100712", first.ID)
	assert.Equal(t, "20260123T100712-1", second.ID)

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
}

func TestBackup_MissingSource(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Backup(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	list, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBackup_PrunesToRetention(t *testing.T) {
	m := newTestManager(t, WithRetentionCount(2))
	src := writeSettings(t, "{}")

	var ids []string
	for range 4 {
		mf, err := m.Backup(src)
		require.NoError(t, err)
		ids = append(ids, mf.ID)
	}

	list, err := m.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[3], list[0].ID)
	assert.Equal(t, ids[2], list[1].ID)
}

func TestList_Empty(t *testing.T) {
	m := NewManager(WithBackupDir(filepath.Join(t.TempDir(), "none")))

	list, err := m.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_SkipsForeignDirectories(t *testing.T) {
	m := newTestManager(t)
	require.NoError(t, os.MkdirAll(filepath.Join(m.rootDir, "scratch"), 0o755))
	_, err := m.Backup(writeSettings(t, "{}"))
	require.NoError(t, err)

	list, err := m.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestGet_RejectsPathIDs(t *testing.T) {
	m := newTestManager(t)

	for _, id := range []string{"", "..", "../x", `a\b`} {
		_, err := m.Get(id)
		assert.True(t, errors.Is(err, errors.ErrNotFound), "id %q", id)
	}
}

func TestRestore(t *testing.T) {
	m := newTestManager(t)
	src := writeSettings(t, `{"model":"opus"}`)
	_, err := m.Backup(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(src, []byte(`{"broken":`), 0o640))

	mf, err := m.Restore("", "")
	require.NoError(t, err)
	assert.Equal(t, src, mf.Source)

	data, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, `{"model":"opus"}`, string(data))
}

func TestRestore_ToTarget(t *testing.T) {
	m := newTestManager(t)
	first, err := m.Backup(writeSettings(t, "first"))
	require.NoError(t, err)
	_, err = m.Backup(writeSettings(t, "second"))
	require.NoError(t, err)

	target := filepath.Join(t.TempDir(), "nested", "settings.json")
	_, err = m.Restore(first.ID, target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestRestore_NoBackups(t *testing.T) {
	m := newTestManager(t)

	_, err := m.Restore("", "")
	assert.True(t, errors.Is(err, ErrNoBackupsFound))
}

func TestRestore_Corrupted(t *testing.T) {
	m := newTestManager(t)
	mf, err := m.Backup(writeSettings(t, "{}"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(m.rootDir, mf.ID, mf.File), []byte("tampered"), 0o600))

	_, err = m.Restore(mf.ID, filepath.Join(t.TempDir(), "out.json"))
	assert.True(t, errors.Is(err, ErrBackupCorrupted))
}
