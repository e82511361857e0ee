// Package rule implements the pattern-rule engine behind VCS URL detection.
//
// A Rule pairs a regular expression (with named capture groups) with the
// metadata needed to rank it against other rules: a weight, a set of default
// field values, and an explicitness flag. Rules are collected into an ordered
// Map which is walked highest-weight-first until one rule matches.
package rule

import (
	"regexp"
	"regexp/syntax"

	"github.com/vcs-go/vcsurl/pkg/errors"
)

// Rule represents one eligible URL pattern for a single VCS.
//
// Rules are value objects: construct them with New or MustNew (or hand a
// literal to Map.Register, which compiles it) and never mutate them after
// registration.
type Rule struct {
	// Label is the computer-readable name, unique within a Map.
	Label string

	// Description is the human-readable description.
	Description string

	// Pattern is the regular expression source. Named capture groups
	// become parsed URL fields.
	Pattern string

	// Defaults supplies field values for fields the pattern did not
	// capture. A captured value, even an empty one, always wins.
	Defaults map[string]string

	// Weight ranks the rule: higher weights are tried first.
	Weight int

	// Explicit marks the rule as unambiguously identifying its VCS,
	// e.g. a git+ssh:// prefix, as opposed to a generic https:// form.
	Explicit bool

	re *regexp.Regexp
}

// New compiles the rule's pattern and validates its defaults. Rules with
// patterns that do not compile fail here, never at first use.
func New(r Rule) (Rule, error) {
	if r.Label == "" {
		return Rule{}, errors.New(errors.ErrInvalidRule, "rule label cannot be empty")
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return Rule{}, errors.Wrapf(err, errors.ErrInvalidRule,
			"rule %q has an invalid pattern", r.Label)
	}
	if err := checkDefaults(r); err != nil {
		return Rule{}, err
	}
	r.re = re
	return r, nil
}

// MustNew is like New but panics on error. Intended for package-level rule
// declarations where a bad pattern is a programming mistake.
func MustNew(r Rule) Rule {
	compiled, err := New(r)
	if err != nil {
		panic(err)
	}
	return compiled
}

// Match applies the compiled pattern to candidate, anchored at the start of
// the string. On success it returns the named capture groups that
// participated in the match; groups that did not participate are omitted so
// that an empty captured value remains distinguishable from an absent one.
//
// Match is pure and total: it has no side effects and never returns an error.
func (r Rule) Match(candidate string) (map[string]string, bool) {
	if r.re == nil {
		panic(errors.Newf(errors.ErrInvalidRule,
			"rule %q used before compilation; construct rules with rule.New", r.Label))
	}
	loc := r.re.FindStringSubmatchIndex(candidate)
	if loc == nil || loc[0] != 0 {
		return nil, false
	}
	groups := make(map[string]string)
	for i, name := range r.re.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		if loc[2*i] >= 0 {
			groups[name] = candidate[loc[2*i]:loc[2*i+1]]
		}
	}
	return groups, true
}

// compiledOK reports whether the rule has been through New.
func (r Rule) compiledOK() bool {
	return r.re != nil
}

// checkDefaults rejects rules whose defaults contradict a field the pattern
// always captures as a fixed literal. Such a default could never take effect
// and signals a misconfigured rule.
func checkDefaults(r Rule) error {
	if len(r.Defaults) == 0 {
		return nil
	}
	parsed, err := syntax.Parse(r.Pattern, syntax.Perl)
	if err != nil {
		// Compilation reports the pattern error with more context.
		return nil
	}
	literals := make(map[string]string)
	collectLiteralCaptures(parsed, literals)
	for field, value := range r.Defaults {
		if lit, ok := literals[field]; ok && lit != value {
			return errors.Newf(errors.ErrAmbiguousDefaults,
				"rule %q: default %s=%q conflicts with pattern literal %q",
				r.Label, field, value, lit)
		}
	}
	return nil
}

// collectLiteralCaptures records named capture groups whose subexpression is
// a plain literal.
func collectLiteralCaptures(re *syntax.Regexp, out map[string]string) {
	if re.Op == syntax.OpCapture && re.Name != "" && len(re.Sub) == 1 {
		if sub := re.Sub[0]; sub.Op == syntax.OpLiteral {
			out[re.Name] = string(sub.Rune)
		}
	}
	for _, sub := range re.Sub {
		collectLiteralCaptures(sub, out)
	}
}
