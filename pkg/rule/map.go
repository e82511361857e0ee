package rule

import (
	"sort"
)

// Map is an ordered, extensible collection of Rules for one VCS.
//
// Iteration order is an externally tested guarantee: weight descending, ties
// broken by registration order. The rules live in a slice so the order never
// depends on incidental hashing.
//
// A Map is safe for concurrent reads once fully registered. Extension should
// go through WithAdditions rather than registering into a shared default map;
// mutating a map other parsers also consult is a correctness hazard.
type Map struct {
	rules []Rule
}

// NewMap builds a Map from the given rules, compiling any that were declared
// as plain literals. Registration order is preserved for tie-breaking.
func NewMap(rules ...Rule) (*Map, error) {
	m := &Map{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		if err := m.Register(r); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustMap is like NewMap but panics on error. Intended for package-level
// default rule maps.
func MustMap(rules ...Rule) *Map {
	m, err := NewMap(rules...)
	if err != nil {
		panic(err)
	}
	return m
}

// Register inserts a rule, or replaces the rule with the same label in place.
// Replacement keeps the original registration slot, so unrelated rules never
// reorder. Rules that fail to compile are rejected here, never at first use.
func (m *Map) Register(r Rule) error {
	if !r.compiledOK() {
		compiled, err := New(r)
		if err != nil {
			return err
		}
		r = compiled
	}
	for i, existing := range m.rules {
		if existing.Label == r.Label {
			m.rules[i] = r
			return nil
		}
	}
	m.rules = append(m.rules, r)
	return nil
}

// Unregister removes the rule with the given label, if present.
func (m *Map) Unregister(label string) {
	for i, r := range m.rules {
		if r.Label == label {
			m.rules = append(m.rules[:i], m.rules[i+1:]...)
			return
		}
	}
}

// Get returns the rule registered under label.
func (m *Map) Get(label string) (Rule, bool) {
	for _, r := range m.rules {
		if r.Label == label {
			return r, true
		}
	}
	return Rule{}, false
}

// Len returns the number of registered rules.
func (m *Map) Len() int {
	return len(m.rules)
}

// Ordered returns the rules sorted by (weight descending, registration order
// ascending). The result is a fresh slice; callers may not affect the Map
// through it.
func (m *Map) Ordered() []Rule {
	ordered := make([]Rule, len(m.rules))
	copy(ordered, m.rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Weight > ordered[j].Weight
	})
	return ordered
}

// WithAdditions returns a new Map containing this map's rules plus extra,
// without mutating the receiver. This is the extension primitive: augmenting
// a base rule set has no observable effect on other maps derived from the
// same parent.
func (m *Map) WithAdditions(extra ...Rule) (*Map, error) {
	child := &Map{rules: make([]Rule, len(m.rules), len(m.rules)+len(extra))}
	copy(child.rules, m.rules)
	for _, r := range extra {
		if err := child.Register(r); err != nil {
			return nil, err
		}
	}
	return child, nil
}

// First walks the rules in precedence order and returns the first rule whose
// pattern matches candidate, together with its captured groups. When explicit
// is true, rules not marked Explicit are skipped. The second return is false
// when the map is exhausted without a match.
func (m *Map) First(candidate string, explicit bool) (Rule, map[string]string, bool) {
	for _, r := range m.Ordered() {
		if explicit && !r.Explicit {
			continue
		}
		if groups, ok := r.Match(candidate); ok {
			return r, groups, true
		}
	}
	return Rule{}, nil, false
}
