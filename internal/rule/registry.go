package rule

import (
	"sort"

	"github.com/thoreinstein/bonitahooks/internal/errors"
)

// Registry holds rule sets by name, preserving registration order.
type Registry struct {
	sets []*Set
}

// NewRegistry creates a registry containing sets.
func NewRegistry(sets ...*Set) *Registry {
	r := &Registry{}
	for _, s := range sets {
		r.Register(s)
	}
	return r
}

// Register adds s, replacing any set with the same name in place.
func (r *Registry) Register(s *Set) {
	for i, existing := range r.sets {
		if existing.Name == s.Name {
			r.sets[i] = s
			return
		}
	}
	r.sets = append(r.sets, s)
}

// Lookup returns the named set or an error wrapping errors.ErrUnknownRuleSet.
func (r *Registry) Lookup(name string) (*Set, error) {
	for _, s := range r.sets {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrUnknownRuleSet, "%q", name)
}

// Names returns set names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sets))
	for i, s := range r.sets {
		names[i] = s.Name
	}
	return names
}

// Sets returns the registered sets in registration order.
func (r *Registry) Sets() []*Set {
	return append([]*Set(nil), r.sets...)
}

// Matching returns every set whose path filter matches path.
func (r *Registry) Matching(path string) []*Set {
	var out []*Set
	for _, s := range r.sets {
		if s.Matches(path) {
			out = append(out, s)
		}
	}
	return out
}

// Select resolves names to sets. With no names it returns all sets.
func (r *Registry) Select(names ...string) ([]*Set, error) {
	if len(names) == 0 {
		return r.Sets(), nil
	}
	out := make([]*Set, 0, len(names))
	for _, n := range names {
		s, err := r.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Check finds a check by ID across all sets.
func (r *Registry) Check(id string) (Check, error) {
	for _, s := range r.sets {
		if c, ok := s.Check(id); ok {
			return c, nil
		}
	}
	return Check{}, errors.Wrapf(errors.ErrUnknownCheck, "%q", id)
}

// CheckRef is a check together with the sets that use it.
type CheckRef struct {
	Check Check
	Sets  []string
}

// Checks returns every distinct check ID, sorted, with the sets using it.
func (r *Registry) Checks() []CheckRef {
	index := make(map[string]int)
	var refs []CheckRef
	for _, s := range r.sets {
		for _, c := range s.Checks {
			i, ok := index[c.ID]
			if !ok {
				index[c.ID] = len(refs)
				refs = append(refs, CheckRef{Check: c})
				i = len(refs) - 1
			}
			refs[i].Sets = append(refs[i].Sets, s.Name)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Check.ID < refs[j].Check.ID })
	return refs
}

// Without returns a copy of the registry with the given check IDs removed
// from every set. Unknown IDs are ignored.
func (r *Registry) Without(ids ...string) *Registry {
	if len(ids) == 0 {
		return r
	}
	disabled := make(map[string]bool, len(ids))
	for _, id := range ids {
		disabled[id] = true
	}
	out := &Registry{sets: make([]*Set, len(r.sets))}
	for i, s := range r.sets {
		out.sets[i] = s.without(disabled)
	}
	return out
}

// Assemble builds the effective registry: the built-in sets, then the sets
// from rulesPath (when non-empty) registered over them, minus disabled checks.
func Assemble(rulesPath string, disabled []string) (*Registry, error) {
	reg := Builtin()
	if rulesPath != "" {
		sets, err := LoadFile(rulesPath, reg)
		if err != nil {
			return nil, err
		}
		for _, s := range sets {
			reg.Register(s)
		}
	}
	return reg.Without(disabled...), nil
}
