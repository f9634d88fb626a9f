// Package rule defines the convention checks that hooks run against an
// edited source file, and the named rule sets that group them behind a path
// filter.
//
// A Check is a pure predicate over a Source. A Set pairs a path filter with
// an ordered list of checks; evaluating a set runs every check, so one
// violation never hides another.
package rule

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Source is a file's content as seen by checks.
type Source struct {
	// Path is the path exactly as received.
	Path string
	// Name is the base name of Path.
	Name string
	// Content is the file content.
	Content string
}

// NewSource builds a Source for path with the given content.
func NewSource(path string, content []byte) Source {
	return Source{
		Path:    path,
		Name:    filepath.Base(path),
		Content: string(content),
	}
}

// Check is a single convention. Fires reports whether src violates it.
type Check struct {
	// ID is a stable kebab-case identifier, used to disable the check.
	ID string
	// Message is the one-line warning shown when the check fires.
	Message string
	// Guidance is longer Markdown explaining the convention.
	Guidance string
	// Fires reports a violation.
	Fires func(Source) bool
	// Detail optionally names what triggered the check, such as offending
	// method names. It is only called when Fires returned true.
	Detail func(Source) string
}

// Finding is a fired check.
type Finding struct {
	CheckID string `json:"check"`
	Message string `json:"message"`
}

// evaluate runs c against src.
func (c Check) evaluate(src Source) (Finding, bool) {
	if c.Fires == nil || !c.Fires(src) {
		return Finding{}, false
	}
	msg := c.Message
	if c.Detail != nil {
		if d := c.Detail(src); d != "" {
			msg += " (" + d + ")"
		}
	}
	return Finding{CheckID: c.ID, Message: msg}, true
}

// Set is a named group of checks applied to paths matching PathPattern.
type Set struct {
	Name        string
	Description string
	PathPattern *regexp.Regexp
	Checks      []Check
}

// Matches reports whether path is in scope for the set. Paths are compared
// with forward slashes so patterns are portable.
func (s *Set) Matches(path string) bool {
	if path == "" || s.PathPattern == nil {
		return false
	}
	return s.PathPattern.MatchString(filepath.ToSlash(path))
}

// Evaluate runs every check against src in declaration order and returns a
// finding per check that fired.
func (s *Set) Evaluate(src Source) []Finding {
	var findings []Finding
	for _, c := range s.Checks {
		if f, ok := c.evaluate(src); ok {
			findings = append(findings, f)
		}
	}
	return findings
}

// Check returns the check with the given ID.
func (s *Set) Check(id string) (Check, bool) {
	for _, c := range s.Checks {
		if c.ID == id {
			return c, true
		}
	}
	return Check{}, false
}

// without returns a copy of s lacking the checks in disabled.
func (s *Set) without(disabled map[string]bool) *Set {
	cp := *s
	cp.Checks = make([]Check, 0, len(s.Checks))
	for _, c := range s.Checks {
		if !disabled[c.ID] {
			cp.Checks = append(cp.Checks, c)
		}
	}
	return &cp
}

// contains returns a predicate that fires when re matches.
func contains(re *regexp.Regexp) func(Source) bool {
	return func(src Source) bool { return re.MatchString(src.Content) }
}

// absent returns a predicate that fires when re does not match.
func absent(re *regexp.Regexp) func(Source) bool {
	return func(src Source) bool { return !re.MatchString(src.Content) }
}

// joinUnique joins values in first-seen order without duplicates.
func joinUnique(values []string) string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return strings.Join(out, ", ")
}
