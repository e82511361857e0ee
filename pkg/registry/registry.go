// Package registry dispatches a repository locator string across every
// registered VCS parser to determine which VCS kinds accept it.
package registry

import (
	"sync"

	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/vcsurl"
)

// VCS is the parser surface the registry drives. The built-in parsers in
// pkg/vcsurl satisfy it; callers may register their own variants.
type VCS interface {
	// IsValid reports whether url matches the parser's rules. With
	// explicit set, only rules marked explicit are consulted.
	IsValid(url string, explicit bool) bool

	// ParseURL builds the parser's structured result for url.
	ParseURL(url string) (vcsurl.Locator, error)
}

// ParserMatch is a hit that suggests or identifies a VCS for a URL.
type ParserMatch struct {
	// VCS is the kind that accepted the URL, e.g. "git".
	VCS string

	// Match is the parsed locator produced by that kind's parser.
	Match vcsurl.Locator
}

// Registry is an ordered index of VCS parsers. Kinds are consulted in
// registration order, deterministically; the order never depends on map
// iteration.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	parsers map[string]VCS
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{parsers: make(map[string]VCS)}
}

// Default returns a registry holding the built-in parsers, consulted in
// git, hg, svn order.
func Default() *Registry {
	r := New()
	// Registration of the built-ins cannot collide.
	_ = r.Register(vcsurl.KindGit, vcsurl.NewGitParser())
	_ = r.Register(vcsurl.KindHg, vcsurl.NewHgParser())
	_ = r.Register(vcsurl.KindSvn, vcsurl.NewSvnParser())
	return r
}

// Register adds a parser under kind. Registering an existing kind is an
// error; use WithVariant to substitute one.
func (r *Registry) Register(kind string, v VCS) error {
	if kind == "" {
		return errors.New(errors.ErrInvalidInput, "vcs kind cannot be empty")
	}
	if v == nil {
		return errors.Newf(errors.ErrInvalidInput, "parser for %q cannot be nil", kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[kind]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "vcs kind %q is already registered", kind)
	}
	r.parsers[kind] = v
	r.order = append(r.order, kind)
	return nil
}

// WithVariant returns a copy of the registry with the parser for kind
// replaced (or appended, for a new kind). The receiver is unchanged, so a
// caller can substitute one customized variant while other kinds keep their
// defaults.
func (r *Registry) WithVariant(kind string, v VCS) *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	child := &Registry{
		order:   make([]string, len(r.order)),
		parsers: make(map[string]VCS, len(r.parsers)+1),
	}
	copy(child.order, r.order)
	for k, p := range r.parsers {
		child.parsers[k] = p
	}
	if _, exists := child.parsers[kind]; !exists {
		child.order = append(child.order, kind)
	}
	child.parsers[kind] = v
	return child
}

// Get retrieves the parser registered under kind.
func (r *Registry) Get(kind string) (VCS, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, exists := r.parsers[kind]
	if !exists {
		return nil, errors.Newf(errors.ErrNotFound, "vcs kind %q not found in registry", kind)
	}
	return v, nil
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, len(r.order))
	copy(kinds, r.order)
	return kinds
}

// Match returns every VCS kind whose parser accepts url, in registration
// order. A string matching more than one kind (e.g. a bare https:// URL) is
// expected, not an error; pass explicit to keep only VCS-specific syntaxes
// such as SCP shorthand or git+ssh:// prefixes.
func (r *Registry) Match(url string, explicit bool) []ParserMatch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []ParserMatch
	for _, kind := range r.order {
		parser := r.parsers[kind]
		if !parser.IsValid(url, explicit) {
			continue
		}
		loc, err := parser.ParseURL(url)
		if err != nil {
			// Valid under the explicit filter but unparseable by
			// the full walk; nothing useful to report.
			continue
		}
		matches = append(matches, ParserMatch{VCS: kind, Match: loc})
	}
	return matches
}
