// Package vcsurl detects, parses, and reconstructs repository locator strings
// for git, Mercurial, and Subversion.
//
// Each VCS has a parser owning an ordered rule.Map and a structured result
// type (GitURL, HgURL, SvnURL). Parsing walks the rules highest-weight-first;
// the first matching rule populates the result from its capture groups, with
// the rule's defaults filling any field the pattern did not capture. The
// result is a plain mutable value: change its fields and call ToURL to get a
// string the VCS binary accepts, rebuilt from the current field state.
package vcsurl

import (
	"strings"

	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/rule"
)

// Kind names for the built-in parsers.
const (
	KindGit = "git"
	KindHg  = "hg"
	KindSvn = "svn"
)

// Locator is the untyped view of a parsed URL, used where the VCS kind is
// not known statically (e.g. the registry).
type Locator interface {
	// Kind names the VCS this locator belongs to.
	Kind() string
	// ToURL reconstructs a VCS-consumable string from current field state.
	ToURL() string
}

// URL is the parsed form shared by all VCS kinds. The empty string marks an
// unset field. All fields except Raw and Rule are free to mutate; ToURL on
// the owning variant always recomputes from current values, never from Raw.
type URL struct {
	// Raw preserves the original input verbatim.
	Raw string `json:"url" yaml:"url"`

	Scheme   string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
	User     string `json:"user,omitempty" yaml:"user,omitempty"`
	Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	Port     string `json:"port,omitempty" yaml:"port,omitempty"`

	// Separator is the hostname/path delimiter as it appeared in the
	// input, e.g. ":" in SCP-style URLs. "/" is assumed when unset.
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty"`

	Path string `json:"path" yaml:"path"`

	// Suffix is a trailing decoration such as ".git".
	Suffix string `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// Rev is a branch, tag, or commit specifier from pip/npm-style URLs.
	Rev string `json:"rev,omitempty" yaml:"rev,omitempty"`

	// Region is the AWS CodeCommit region (git only).
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Rule records the label of the rule that matched. Exactly one rule
	// is recorded per successful parse.
	Rule string `json:"rule" yaml:"rule"`
}

// apply copies named capture groups (plus merged defaults) into fields.
func (u *URL) apply(groups map[string]string) {
	for k, v := range groups {
		switch k {
		case "scheme":
			u.Scheme = v
		case "user":
			u.User = v
		case "hostname":
			u.Hostname = v
		case "port":
			u.Port = v
		case "separator":
			u.Separator = v
		case "path":
			u.Path = v
		case "suffix":
			u.Suffix = v
		case "rev":
			u.Rev = v
		case "region":
			u.Region = v
		}
	}
}

// parseWith walks the map in precedence order and builds the shared parsed
// form from the first matching rule.
func parseWith(m *rule.Map, kind, raw string) (URL, error) {
	r, groups, ok := m.First(raw, false)
	if !ok {
		return URL{}, errors.Newf(errors.ErrNoMatch,
			"no %s rule matched %q", kind, raw).WithDetail("url", raw)
	}
	// Captured wins: a default applies only to fields absent from the
	// capture map, never to an empty captured value.
	for k, v := range r.Defaults {
		if _, captured := groups[k]; !captured {
			groups[k] = v
		}
	}
	u := URL{Raw: raw, Rule: r.Label}
	u.apply(groups)
	return u, nil
}

// pathWithSuffix appends suffix unless path already ends with it.
func pathWithSuffix(path, suffix string) string {
	if suffix == "" || strings.HasSuffix(path, suffix) {
		return path
	}
	return path + suffix
}

// Shared regular expression fragments.
const (
	// Optional user, e.g. "git@".
	reUser = `((?P<user>[^/:@]+)@)?`

	// SCP-style host:path. The server-side path must start with an
	// alphanumeric character so a Windows path like "C:/foo/bar" is not
	// mistaken for a host.
	reSCP = `(?P<hostname>([^/:]+))(?P<separator>:)(?P<path>(\w[^:.]+))`

	// Pip-style revision for a branch, tag, or commit.
	rePipRev = `(@(?P<rev>.*))`
)
