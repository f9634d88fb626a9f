package rule

import (
	"bytes"
	"io"
	"os"
	"regexp"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// Kinds of custom checks.
const (
	KindContains   = "contains"
	KindAbsent     = "absent"
	KindMatches    = "matches"
	KindNotMatches = "not_matches"
)

// ErrInvalidRules indicates a rules file that decoded but is not usable.
var ErrInvalidRules = errors.New("invalid rules file")

// rulesFile is the TOML layout of a custom rules file:
//
//	[[set]]
//	name = "groovy-script"
//	path = '/src/main/groovy/.*\.groovy$'
//	use  = ["no-system-out"]
//
//	  [[set.check]]
//	  id      = "no-println"
//	  kind    = "contains"
//	  pattern = "println"
//	  message = "Use the Bonita logger instead of println"
type rulesFile struct {
	Sets []setSpec `toml:"set"`
}

type setSpec struct {
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Path        string      `toml:"path"`
	Use         []string    `toml:"use"`
	Checks      []checkSpec `toml:"check"`
}

type checkSpec struct {
	ID       string `toml:"id"`
	Kind     string `toml:"kind"`
	Pattern  string `toml:"pattern"`
	Message  string `toml:"message"`
	Guidance string `toml:"guidance"`
}

// LoadFile reads custom rule sets from the TOML file at path.
// Checks listed under "use" are resolved against catalog.
func LoadFile(path string, catalog *Registry) ([]*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading rules file")
	}
	sets, err := Load(bytes.NewReader(data), catalog)
	return sets, errors.Wrapf(err, "loading %s", path)
}

// Load decodes custom rule sets from r. Unknown keys are rejected so typos
// do not silently disable a check. TOML syntax errors are returned as
// *toml.DecodeError in the chain.
func Load(r io.Reader, catalog *Registry) ([]*Set, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var file rulesFile
	if err := dec.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "decoding rules")
	}

	seen := make(map[string]bool, len(file.Sets))
	sets := make([]*Set, 0, len(file.Sets))
	for i, spec := range file.Sets {
		set, err := spec.compile(catalog)
		if err != nil {
			return nil, errors.Wrapf(err, "set #%d", i+1)
		}
		if seen[set.Name] {
			return nil, errors.Wrapf(ErrInvalidRules, "duplicate set %q", set.Name)
		}
		seen[set.Name] = true
		sets = append(sets, set)
	}
	return sets, nil
}

func (s setSpec) compile(catalog *Registry) (*Set, error) {
	if s.Name == "" {
		return nil, errors.Wrap(ErrInvalidRules, "set name is required")
	}
	if s.Path == "" {
		return nil, errors.Wrapf(ErrInvalidRules, "set %q: path is required", s.Name)
	}
	pathRe, err := regexp.Compile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidRules, "set %q: path: %v", s.Name, err)
	}

	set := &Set{Name: s.Name, Description: s.Description, PathPattern: pathRe}
	ids := make(map[string]bool)
	add := func(c Check) error {
		if ids[c.ID] {
			return errors.Wrapf(ErrInvalidRules, "set %q: duplicate check %q", s.Name, c.ID)
		}
		ids[c.ID] = true
		set.Checks = append(set.Checks, c)
		return nil
	}

	for _, id := range s.Use {
		if catalog == nil {
			return nil, errors.Wrapf(errors.ErrUnknownCheck, "set %q: %q", s.Name, id)
		}
		c, err := catalog.Check(id)
		if err != nil {
			return nil, errors.Wrapf(err, "set %q", s.Name)
		}
		if err := add(c); err != nil {
			return nil, err
		}
	}

	for _, cs := range s.Checks {
		c, err := cs.compile()
		if err != nil {
			return nil, errors.Wrapf(err, "set %q", s.Name)
		}
		if err := add(c); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func (c checkSpec) compile() (Check, error) {
	if c.ID == "" {
		return Check{}, errors.Wrap(ErrInvalidRules, "check id is required")
	}
	if c.Message == "" {
		return Check{}, errors.Wrapf(ErrInvalidRules, "check %q: message is required", c.ID)
	}
	if c.Pattern == "" {
		return Check{}, errors.Wrapf(ErrInvalidRules, "check %q: pattern is required", c.ID)
	}

	var fires func(Source) bool
	switch c.Kind {
	case KindContains, KindAbsent:
		re := regexp.MustCompile(regexp.QuoteMeta(c.Pattern))
		if c.Kind == KindContains {
			fires = contains(re)
		} else {
			fires = absent(re)
		}
	case KindMatches, KindNotMatches:
		re, err := regexp.Compile(c.Pattern)
		if err != nil {
			return Check{}, errors.Wrapf(ErrInvalidRules, "check %q: pattern: %v", c.ID, err)
		}
		if c.Kind == KindMatches {
			fires = contains(re)
		} else {
			fires = absent(re)
		}
	default:
		return Check{}, errors.Wrapf(ErrInvalidRules, "check %q: unknown kind %q", c.ID, c.Kind)
	}

	return Check{
		ID:       c.ID,
		Message:  c.Message,
		Guidance: c.Guidance,
		Fires:    fires,
	}, nil
}
