package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of snapshots kept when no retention
// is configured.
const DefaultRetentionCount = 5

const (
	manifestName = "manifest.json"
	idLayout     = "20060102T150405"
)

var (
	// ErrNoBackupsFound indicates the backup directory holds no snapshots.
	ErrNoBackupsFound = errors.New("no backups found")

	// ErrBackupCorrupted indicates a snapshot no longer matches its checksum.
	ErrBackupCorrupted = errors.New("backup corrupted")
)

// Manifest describes one snapshot. It is stored as manifest.json next to
// the copied file.
type Manifest struct {
	Version   int         `json:"version"`
	CreatedAt time.Time   `json:"created_at"`
	Source    string      `json:"source"`
	File      string      `json:"file"`
	SHA256    string      `json:"sha256"`
	Mode      fs.FileMode `json:"mode"`
	Tool      string      `json:"tool_version"`

	// ID is the snapshot directory name. It is filled in on load.
	ID string `json:"-"`
}
