// Package backup keeps snapshots of assistant settings files taken before
// bonitahooks rewrites them.
//
// Each snapshot lives in its own timestamped directory:
//
//	~/.config/bonitahooks/backups/
//	└── 20260123T100712/
//	    ├── manifest.json
//	    └── settings.json
//
// The manifest records the original path, permissions and a SHA256 checksum.
// [Manager.Restore] verifies the checksum before writing the file back and
// returns [ErrBackupCorrupted] on mismatch. Older snapshots beyond the
// retention count are pruned after every backup.
package backup
