package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// AppName names the configuration directories.
const AppName = "bonitahooks"

// ProjectDirName is the per-project configuration directory.
const ProjectDirName = ".bonitahooks"

// ClaudeDirName is the assistant's per-project settings directory.
const ClaudeDirName = ".claude"

// SettingsFileName is the settings file inside ClaudeDirName.
const SettingsFileName = "settings.json"

// DefaultDirPerm is the permission for newly created directories.
const DefaultDirPerm = 0o755

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// ConfigDir returns the user-level configuration directory, honouring
// BONITAHOOKS_CONFIG_DIR when set.
func ConfigDir() string {
	if dir := os.Getenv("BONITAHOOKS_CONFIG_DIR"); dir != "" {
		return dir
	}
	return filepath.Join(ConfigHome(), AppName)
}

// ProjectDir returns the project-level configuration directory under root.
func ProjectDir(root string) string {
	return filepath.Join(root, ProjectDirName)
}

// SettingsPath returns the assistant settings file for the project at root.
func SettingsPath(root string) string {
	return filepath.Join(root, ClaudeDirName, SettingsFileName)
}

// EnsureDir creates path and its parents. A zero perm means DefaultDirPerm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(os.MkdirAll(path, perm), "creating %s", path)
}
