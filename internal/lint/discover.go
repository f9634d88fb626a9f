package lint

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// Kind identifies the type of Markdown asset.
type Kind string

// Asset kinds.
const (
	KindSkill   Kind = "skill"
	KindCommand Kind = "command"
	KindAgent   Kind = "agent"
)

// Directory and file names searched under the lint root.
const (
	SkillsDir     = "skills"
	CommandsDir   = "commands"
	AgentsDir     = "agents"
	SkillFileName = "SKILL.md"
)

// Target is a file to lint.
type Target struct {
	Path string
	Kind Kind
}

// Discover lists the lintable files under root, sorted by path. Missing
// asset directories are skipped.
func Discover(root string) ([]Target, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("%s is not a directory", root)
	}

	var targets []Target

	skills, err := filepath.Glob(filepath.Join(root, SkillsDir, "*", SkillFileName))
	if err != nil {
		return nil, errors.Wrap(err, "listing skills")
	}
	for _, p := range skills {
		targets = append(targets, Target{Path: p, Kind: KindSkill})
	}

	agents, err := filepath.Glob(filepath.Join(root, AgentsDir, "*.md"))
	if err != nil {
		return nil, errors.Wrap(err, "listing agents")
	}
	for _, p := range agents {
		targets = append(targets, Target{Path: p, Kind: KindAgent})
	}

	commandsRoot := filepath.Join(root, CommandsDir)
	err = filepath.WalkDir(commandsRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == commandsRoot && errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(p), ".md") {
			targets = append(targets, Target{Path: p, Kind: KindCommand})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing commands")
	}

	slices.SortFunc(targets, func(a, b Target) int {
		return strings.Compare(a.Path, b.Path)
	})
	return targets, nil
}
