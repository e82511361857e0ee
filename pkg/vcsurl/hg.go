package vcsurl

import (
	"strings"

	"github.com/vcs-go/vcsurl/pkg/rule"
)

// hg-specific fragments.
const (
	reHgPath = `(?P<hostname>([^/:]+))(:(?P<port>\d{1,5}))?(?P<separator>[:,/])?(?P<path>/?(\w[^:.@]*))?`

	reHgScheme = `(?P<scheme>(http|https|ssh))`

	reHgPipScheme = `(?P<scheme>(hg\+ssh|hg\+https|hg\+http|hg\+file))`

	// Mercurial hosting frequently mirrors git's trailing decoration.
	reHgSuffix = `(?P<suffix>\.git)`
)

// HgCoreRules returns the patterns understood by hg(1) itself.
func HgCoreRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "core-hg",
			Description: "Vanilla hg pattern",
			Pattern:     `^` + reHgScheme + `://` + reUser + reHgPath + reHgSuffix + `?` + rePipRev + `?`,
		}),
		rule.MustNew(rule.Rule{
			Label:       "core-hg-scp",
			Description: "Vanilla scp(1) / ssh(1) type URL",
			Pattern:     `^(?P<scheme>ssh)?` + reUser + reSCP + reHgSuffix + `?`,
		}),
	}
}

// HgPipRules returns pip-style hg URL patterns, e.g.
//
//	hg+https://hg.myproject.org/MyProject
//	hg+ssh://hg.myproject.org/MyProject@v1.0
//	hg+file:///home/user/projects/MyProject
//
// These carry an unambiguous hg+ prefix, so they are explicit.
func HgPipRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "pip-url",
			Description: "pip-style hg URL",
			Pattern:     `^` + reHgPipScheme + `://` + reUser + reHgPath + reHgSuffix + `?` + rePipRev + `?`,
			Explicit:    true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "pip-file-url",
			Description: "pip-style hg+file:// URL",
			Pattern:     `^(?P<scheme>hg\+file)://(?P<path>.*)`,
			Explicit:    true,
		}),
	}
}

// HgURL is a parsed Mercurial repository locator.
type HgURL struct {
	URL
}

// Kind implements Locator.
func (u *HgURL) Kind() string { return KindHg }

// ToURL returns an hg(1)-compatible URL rebuilt from the current field
// values. Mercurial has no scheme-less shorthand of its own, so an unset
// Scheme falls back to ssh://. The separator seen in the input (":" for
// SCP-style sources) is preserved.
func (u *HgURL) ToURL() string {
	scheme := u.Scheme
	if scheme == "" {
		scheme = "ssh"
	}
	sep := u.Separator
	if sep == "" {
		sep = "/"
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	if u.User != "" {
		b.WriteString(u.User)
		b.WriteString("@")
	}
	b.WriteString(u.Hostname)
	if u.Port != "" {
		b.WriteString(":")
		b.WriteString(u.Port)
	}
	b.WriteString(sep)
	b.WriteString(pathWithSuffix(u.Path, u.Suffix))
	if u.Rev != "" {
		b.WriteString("@")
		b.WriteString(u.Rev)
	}
	return b.String()
}

// HgParser parses and validates Mercurial URLs against its rule map.
type HgParser struct {
	rules *rule.Map
}

// NewHgParser returns the batteries-included hg parser: core hg(1) patterns
// plus pip-style patterns.
func NewHgParser() *HgParser {
	all := HgCoreRules()
	all = append(all, HgPipRules()...)
	return &HgParser{rules: rule.MustMap(all...)}
}

// NewHgParserWith returns an hg parser over a caller-supplied rule map.
func NewHgParserWith(m *rule.Map) *HgParser {
	return &HgParser{rules: m}
}

// Rules exposes the parser's rule map. Registering into the map of a shared
// parser affects every future parse through it; prefer WithRules.
func (p *HgParser) Rules() *rule.Map { return p.rules }

// WithRules returns a new parser whose rule map is this parser's map plus
// extra. The receiver is unchanged.
func (p *HgParser) WithRules(extra ...rule.Rule) (*HgParser, error) {
	m, err := p.rules.WithAdditions(extra...)
	if err != nil {
		return nil, err
	}
	return &HgParser{rules: m}, nil
}

// IsValid reports whether url matches any rule. With explicit set, only
// rules marked Explicit are consulted. IsValid never returns an error.
func (p *HgParser) IsValid(url string, explicit bool) bool {
	_, _, ok := p.rules.First(url, explicit)
	return ok
}

// Parse builds an HgURL from the first matching rule. It fails with an
// ErrNoMatch error when the rule map is exhausted.
func (p *HgParser) Parse(url string) (*HgURL, error) {
	u, err := parseWith(p.rules, KindHg, url)
	if err != nil {
		return nil, err
	}
	return &HgURL{URL: u}, nil
}

// ParseURL implements the registry's untyped parser interface.
func (p *HgParser) ParseURL(url string) (Locator, error) {
	u, err := p.Parse(url)
	if err != nil {
		return nil, err
	}
	return u, nil
}

var defaultHgParser = NewHgParser()

// ParseHg parses url with the default hg parser.
func ParseHg(url string) (*HgURL, error) {
	return defaultHgParser.Parse(url)
}

// IsValidHg reports whether url is recognized by the default hg parser.
func IsValidHg(url string, explicit bool) bool {
	return defaultHgParser.IsValid(url, explicit)
}
