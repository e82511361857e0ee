package vcsurl

import (
	"strings"

	"github.com/vcs-go/vcsurl/pkg/rule"
)

// svn-specific fragments.
const (
	reSvnPath = `(?P<hostname>([^/:@]+))(:(?P<port>\d{1,5}))?(?P<separator>[:,/])?(?P<path>(\w[^:.@]*))?`

	// Repository access URLs accepted by svn(1); see Table 1.1 in the
	// SVN Book, "Repository access URLs".
	reSvnScheme = `(?P<scheme>(file|http|https|svn|svn\+ssh))`

	reSvnPipScheme = `(?P<scheme>(svn\+ssh|svn\+https|svn\+http))`
)

// SvnCoreRules returns the patterns understood by svn(1) itself.
func SvnCoreRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "core-svn",
			Description: "Vanilla svn pattern",
			Pattern:     `^` + reSvnScheme + `://` + reUser + reSvnPath + rePipRev + `?`,
		}),
		rule.MustNew(rule.Rule{
			Label:       "core-svn-scp",
			Description: "Vanilla scp(1) / ssh(1) type URL",
			Pattern:     `^(?P<scheme>ssh)?` + reUser + reSCP + rePipRev + `?`,
		}),
	}
}

// SvnPipRules returns pip-style svn URL patterns, e.g.
//
//	svn+https://svn.example.com/MyProject
//	svn+ssh://user@svn.example.com/MyProject
//	svn+http://svn.example.com/svn/MyProject/trunk@2019
//
// These carry an unambiguous svn+ prefix, so they are explicit.
func SvnPipRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "pip-url",
			Description: "pip-style svn URL",
			Pattern:     `^` + reSvnPipScheme + `://` + reUser + reSvnPath + rePipRev + `?`,
			Explicit:    true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "pip-file-url",
			Description: "pip-style svn+file:// URL",
			Pattern:     `^(?P<scheme>svn\+file)://(?P<path>.*)`,
			Explicit:    true,
		}),
	}
}

// SvnURL is a parsed Subversion repository locator.
type SvnURL struct {
	URL
}

// Kind implements Locator.
func (u *SvnURL) Kind() string { return KindSvn }

// ToURL returns an svn(1)-compatible URL rebuilt from the current field
// values. With a scheme it emits scheme://[user@]hostname[:port]<sep>path;
// without one it keeps the SCP shorthand the input arrived in. A set Rev is
// appended as an @rev peg.
func (u *SvnURL) ToURL() string {
	var b strings.Builder
	if u.Scheme != "" {
		sep := u.Separator
		if sep == "" {
			sep = "/"
		}
		b.WriteString(u.Scheme)
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
	} else {
		if u.User != "" {
			b.WriteString(u.User)
			b.WriteString("@")
		}
		b.WriteString(u.Hostname)
		b.WriteString(":")
		b.WriteString(pathWithSuffix(u.Path, u.Suffix))
	}
	if u.Rev != "" {
		b.WriteString("@")
		b.WriteString(u.Rev)
	}
	return b.String()
}

// SvnParser parses and validates Subversion URLs against its rule map.
type SvnParser struct {
	rules *rule.Map
}

// NewSvnParser returns the batteries-included svn parser: core svn(1)
// patterns plus pip-style patterns.
func NewSvnParser() *SvnParser {
	all := SvnCoreRules()
	all = append(all, SvnPipRules()...)
	return &SvnParser{rules: rule.MustMap(all...)}
}

// NewSvnParserWith returns an svn parser over a caller-supplied rule map.
func NewSvnParserWith(m *rule.Map) *SvnParser {
	return &SvnParser{rules: m}
}

// Rules exposes the parser's rule map. Registering into the map of a shared
// parser affects every future parse through it; prefer WithRules.
func (p *SvnParser) Rules() *rule.Map { return p.rules }

// WithRules returns a new parser whose rule map is this parser's map plus
// extra. The receiver is unchanged.
func (p *SvnParser) WithRules(extra ...rule.Rule) (*SvnParser, error) {
	m, err := p.rules.WithAdditions(extra...)
	if err != nil {
		return nil, err
	}
	return &SvnParser{rules: m}, nil
}

// IsValid reports whether url matches any rule. With explicit set, only
// rules marked Explicit are consulted. IsValid never returns an error.
func (p *SvnParser) IsValid(url string, explicit bool) bool {
	_, _, ok := p.rules.First(url, explicit)
	return ok
}

// Parse builds an SvnURL from the first matching rule. It fails with an
// ErrNoMatch error when the rule map is exhausted.
func (p *SvnParser) Parse(url string) (*SvnURL, error) {
	u, err := parseWith(p.rules, KindSvn, url)
	if err != nil {
		return nil, err
	}
	return &SvnURL{URL: u}, nil
}

// ParseURL implements the registry's untyped parser interface.
func (p *SvnParser) ParseURL(url string) (Locator, error) {
	u, err := p.Parse(url)
	if err != nil {
		return nil, err
	}
	return u, nil
}

var defaultSvnParser = NewSvnParser()

// ParseSvn parses url with the default svn parser.
func ParseSvn(url string) (*SvnURL, error) {
	return defaultSvnParser.Parse(url)
}

// IsValidSvn reports whether url is recognized by the default svn parser.
func IsValidSvn(url string, explicit bool) bool {
	return defaultSvnParser.IsValid(url, explicit)
}
