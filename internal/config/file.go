package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

// FileName is the configuration file name in both search directories.
const FileName = "config.yaml"

// Keys lists the settable configuration keys.
var Keys = []string{
	"version",
	"glyph",
	"disabled_checks",
	"rules_file",
	"max_file_size",
	"default_project_type",
}

// UserFile returns the user-level config file path.
func UserFile() string {
	return filepath.Join(paths.ConfigDir(), FileName)
}

// ProjectFile returns the project-level config file path under root.
func ProjectFile(root string) string {
	return filepath.Join(paths.ProjectDir(root), FileName)
}

// Set updates key in the config file at path, creating the file when it
// does not exist. The resulting file must validate; keys the tool does not
// know are kept as written.
func Set(path, key, value string) error {
	if !slices.Contains(Keys, key) {
		return errors.Wrapf(errors.ErrInvalidConfig, "unknown key %q (valid: %s)", key, strings.Join(Keys, ", "))
	}

	doc, err := readDoc(path)
	if err != nil {
		return err
	}

	switch key {
	case "version", "max_file_size":
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrInvalidConfig, "%s must be an integer: %q", key, value)
		}
		doc[key] = n
	case "disabled_checks":
		doc[key] = splitList(value)
	default:
		doc[key] = value
	}
	if _, ok := doc["version"]; !ok {
		doc["version"] = CurrentVersion
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(errors.ErrInvalidConfig, err.Error())
	}
	if errs := Validate(cfg); len(errs) > 0 {
		return errs[0]
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return err
	}
	return errors.Wrap(fileutil.AtomicWriteYAML(path, doc), "writing config file")
}

func readDoc(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}
	doc := map[string]any{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

func splitList(s string) []string {
	out := []string{}
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
