package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/thoreinstein/bonitahooks/internal/errors"
	"github.com/thoreinstein/bonitahooks/internal/paths"
	"github.com/thoreinstein/bonitahooks/pkg/fileutil"
)

// Hook wiring constants.
const (
	EventPostToolUse = "PostToolUse"
	EditMatcher      = "Edit|Write|MultiEdit"
	CommandType      = "command"

	// DefaultTimeout is the host-enforced limit in seconds for one hook run.
	DefaultTimeout = 2

	// DefaultBinary is the command name written when none is given.
	DefaultBinary = "bonitahooks"
)

// Command is a single hook command entry. Keys other tools add to an entry
// round-trip untouched.
type Command struct {
	Type    string `json:"type"`
	Command string `json:"command"`
	Timeout int    `json:"timeout,omitempty"`

	unknownFields map[string]json.RawMessage
}

// MarshalJSON writes the known keys in declaration order, then unknown keys.
func (c Command) MarshalJSON() ([]byte, error) {
	known := []member{{"type", c.Type}, {"command", c.Command}}
	if c.Timeout != 0 {
		known = append(known, member{"timeout", c.Timeout})
	}
	return marshalObject(known, c.unknownFields)
}

// UnmarshalJSON captures keys Command does not declare.
func (c *Command) UnmarshalJSON(data []byte) error {
	type plain Command
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	unknown, err := extraFields(data, "type", "command", "timeout")
	if err != nil {
		return err
	}
	*c = Command(p)
	c.unknownFields = unknown
	return nil
}

// Matcher groups commands run for tools whose name matches Matcher. Keys
// other tools add round-trip untouched.
type Matcher struct {
	Matcher string    `json:"matcher,omitempty"`
	Hooks   []Command `json:"hooks"`

	unknownFields map[string]json.RawMessage
}

// MarshalJSON writes the known keys in declaration order, then unknown keys.
func (m Matcher) MarshalJSON() ([]byte, error) {
	var known []member
	if m.Matcher != "" {
		known = append(known, member{"matcher", m.Matcher})
	}
	known = append(known, member{"hooks", m.Hooks})
	return marshalObject(known, m.unknownFields)
}

// UnmarshalJSON captures keys Matcher does not declare.
func (m *Matcher) UnmarshalJSON(data []byte) error {
	type plain Matcher
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	unknown, err := extraFields(data, "matcher", "hooks")
	if err != nil {
		return err
	}
	*m = Matcher(p)
	m.unknownFields = unknown
	return nil
}

// Settings is a settings.json document. Top-level keys other than "hooks"
// round-trip untouched.
type Settings struct {
	// Hooks maps event names to their matchers.
	Hooks map[string][]Matcher

	unknownFields map[string]json.RawMessage
}

// MarshalJSON implements json.Marshaler to include unknown fields in output.
func (s *Settings) MarshalJSON() ([]byte, error) {
	result := make(map[string]any, len(s.unknownFields)+1)
	for k, v := range s.unknownFields {
		result[k] = v
	}
	if len(s.Hooks) > 0 {
		result["hooks"] = s.Hooks
	}
	return encodeJSON(result)
}

// UnmarshalJSON implements json.Unmarshaler to capture unknown fields.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if hooksData, ok := raw["hooks"]; ok {
		if err := json.Unmarshal(hooksData, &s.Hooks); err != nil {
			return errors.Wrap(err, "parsing hooks")
		}
		delete(raw, "hooks")
	}

	if len(raw) > 0 {
		s.unknownFields = raw
	}
	return nil
}

// Generate builds the hook wiring for pt. An empty binary means DefaultBinary.
func Generate(pt ProjectType, binary string) *Settings {
	if binary == "" {
		binary = DefaultBinary
	}

	m := Matcher{Matcher: EditMatcher, Hooks: make([]Command, 0, len(pt.Sets))}
	for _, set := range pt.Sets {
		m.Hooks = append(m.Hooks, Command{
			Type:    CommandType,
			Command: binary + " hook " + set,
			Timeout: DefaultTimeout,
		})
	}

	return &Settings{Hooks: map[string][]Matcher{EventPostToolUse: {m}}}
}

// Merge returns existing with every command owned by binary removed from the
// PostToolUse event and the generated matchers appended. Matchers left with no
// commands are dropped. existing is not modified.
func Merge(existing, generated *Settings, binary string) *Settings {
	if binary == "" {
		binary = DefaultBinary
	}

	out := &Settings{Hooks: make(map[string][]Matcher)}
	if existing != nil {
		out.unknownFields = existing.unknownFields
		for event, matchers := range existing.Hooks {
			if event != EventPostToolUse {
				out.Hooks[event] = matchers
				continue
			}
			for _, m := range matchers {
				kept := make([]Command, 0, len(m.Hooks))
				for _, c := range m.Hooks {
					if _, ok := OwnedSets(c.Command, binary); !ok {
						kept = append(kept, c)
					}
				}
				if len(kept) > 0 {
					m.Hooks = kept
					out.Hooks[event] = append(out.Hooks[event], m)
				}
			}
		}
	}

	if generated != nil {
		out.Hooks[EventPostToolUse] = append(out.Hooks[EventPostToolUse], generated.Hooks[EventPostToolUse]...)
	}
	return out
}

// OwnedSets reports whether command runs binary's hook subcommand and returns
// the set names it passes. Binaries are compared by base name so an absolute
// path and a bare name match.
func OwnedSets(command, binary string) ([]string, bool) {
	fields := strings.Fields(command)
	if len(fields) < 2 || fields[1] != "hook" {
		return nil, false
	}
	if filepath.Base(fields[0]) != filepath.Base(binary) {
		return nil, false
	}
	return fields[2:], true
}

// Reference is a hook command in a settings file that invokes binary.
type Reference struct {
	Event   string   `json:"event"`
	Command string   `json:"command"`
	Sets    []string `json:"sets"`
}

// References lists every command in s that invokes binary's hook subcommand,
// ordered by event name then position.
func (s *Settings) References(binary string) []Reference {
	if binary == "" {
		binary = DefaultBinary
	}

	events := make([]string, 0, len(s.Hooks))
	for event := range s.Hooks {
		events = append(events, event)
	}
	slices.Sort(events)

	var refs []Reference
	for _, event := range events {
		for _, m := range s.Hooks[event] {
			for _, c := range m.Hooks {
				if sets, ok := OwnedSets(c.Command, binary); ok {
					refs = append(refs, Reference{Event: event, Command: c.Command, Sets: sets})
				}
			}
		}
	}
	return refs
}

// Load reads a settings file. A missing file yields empty settings.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var s Settings
	if len(strings.TrimSpace(string(data))) == 0 {
		return &s, nil
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return &s, nil
}

// Save writes s to path atomically, creating parent directories.
func Save(path string, s *Settings) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return err
	}
	return errors.Wrapf(fileutil.AtomicWriteJSON(path, s), "writing %s", path)
}

// Marshal renders s as indented JSON with a trailing newline.
func Marshal(s *Settings) ([]byte, error) {
	data, err := fileutil.MarshalJSON(s)
	return data, errors.Wrap(err, "encoding settings")
}
