package vcsurl

import (
	"strings"

	"github.com/vcs-go/vcsurl/pkg/rule"
)

// git-specific fragments.
const (
	// Host, optional port, optional delimiter, optional path. The path is
	// cut at "." and "@" so the ".git" suffix and pip-style revisions are
	// captured separately.
	reGitPath = `(?P<hostname>([^/:@]+))(:(?P<port>\d{1,5}))?(?P<separator>[:,/])?(?P<path>(\w[^:.@]*))?`

	reGitScheme = `(?P<scheme>(http|https))`

	// Some https repos end with .git, e.g. https://github.com/org/repo.git
	reGitSuffix = `(?P<suffix>\.git)`

	reGitPipScheme    = `(?P<scheme>(git\+ssh|git\+https|git\+http|git\+file))`
	reGitPipSCPScheme = `(?P<scheme>(git\+ssh|git\+file))`
)

// GitCoreRules returns the patterns understood by git(1) itself: scheme URLs
// and SCP-style shorthand.
//
// See also: https://git-scm.com/docs/git-clone#URLS
func GitCoreRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "core-git-https",
			Description: "Vanilla git pattern, URL ending with optional .git suffix",
			Pattern:     `^` + reGitScheme + `://` + reUser + reGitPath + reGitSuffix + `?`,
		}),
		rule.MustNew(rule.Rule{
			Label:       "core-git-scp",
			Description: "Vanilla scp(1) / ssh(1) type URL",
			Pattern:     `^(?P<scheme>ssh)?` + reUser + reSCP + reGitSuffix + `?`,
		}),
	}
}

// GitPipRules returns pip-style git URL patterns, e.g.
//
//	git+https://git.example.com/MyProject.git@v1.0
//	git+ssh://git@github.com:org/repo.git
//	git+file:///home/user/projects/MyProject
//
// These carry an unambiguous git+ prefix, so they are explicit.
func GitPipRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "pip-url",
			Description: "pip-style git URL",
			Pattern:     `^` + reGitPipScheme + `://` + reUser + reGitPath + reGitSuffix + `?` + rePipRev + `?`,
			Explicit:    true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "pip-scp-url",
			Description: "pip-style git ssh/scp URL",
			Pattern: `^` + reGitPipSCPScheme + reUser +
				`(?P<hostname>([^/:]+))(?P<separator>:)(?P<path>(\w[^:.]+))?` + reGitSuffix + `?` + rePipRev + `?`,
			Explicit: true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "pip-file-url",
			Description: "pip-style git+file:// URL",
			Pattern:     `^(?P<scheme>git\+file)://(?P<path>[^@]*)` + rePipRev + `?`,
			Explicit:    true,
		}),
	}
}

// GitAWSCodeCommitRules returns AWS CodeCommit git URL patterns:
//
//	https://git-codecommit.us-east-1.amazonaws.com/v1/repos/test
//	codecommit://MyDemoRepo
//	codecommit::ap-northeast-1://MyDemoRepo
//
// See https://docs.aws.amazon.com/codecommit/
func GitAWSCodeCommitRules() []rule.Rule {
	return []rule.Rule{
		rule.MustNew(rule.Rule{
			Label:       "aws-code-commit-https",
			Description: "AWS CodeCommit HTTPS-style",
			Pattern: `^https://git-codecommit\.((?P<region>[^/]+)\.)(?P<hostname>([^/:]+))` +
				`(?P<separator>:)?(?P<path>(\w[^:.]+))?` + rePipRev + `?`,
			Explicit: true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "aws-code-commit-ssh",
			Description: "AWS CodeCommit SSH-style",
			Pattern: `^ssh://git-codecommit\.((?P<region>[^/]+)\.)(?P<hostname>([^/:]+))` +
				`(?P<separator>:)?(?P<path>(\w[^:.]+))?` + rePipRev + `?`,
			Explicit: true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "aws-code-commit-https-grc",
			Description: "AWS CodeCommit git-remote-codecommit repository",
			Pattern:     `^codecommit://` + reGitPath + rePipRev + `?`,
			Explicit:    true,
		}),
		rule.MustNew(rule.Rule{
			Label:       "aws-code-commit-https-grc-with-region",
			Description: "AWS CodeCommit git-remote-codecommit repository with region",
			Pattern:     `^codecommit::(?P<region>[^/]+)://` + reGitPath + rePipRev + `?`,
			Explicit:    true,
		}),
	}
}

// GitURL is a parsed git repository locator.
type GitURL struct {
	URL
}

// Kind implements Locator.
func (u *GitURL) Kind() string { return KindGit }

// ToURL returns a git(1)-compatible URL rebuilt from the current field
// values. With a scheme it emits scheme://[user@]hostname[:port]/path[suffix];
// without one it emits the SCP shorthand [user@]hostname:path[suffix]. A set
// Rev is appended pip-style as @rev. URLs matched by a git-remote-codecommit
// rule reconstruct the codecommit:// form instead.
func (u *GitURL) ToURL() string {
	if strings.HasPrefix(u.Rule, "aws-code-commit-https-grc") {
		return u.grcURL()
	}

	var b strings.Builder
	if u.Scheme != "" {
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
		b.WriteString("/")
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

// grcURL reconstructs the git-remote-codecommit forms.
func (u *GitURL) grcURL() string {
	var out string
	switch {
	case u.Region != "":
		out = "codecommit::" + u.Region + "://" + u.Path
	case u.User != "":
		out = "codecommit://" + u.User + "@" + u.Path
	default:
		out = "codecommit://" + u.Path
	}
	if u.Rev != "" {
		out += "@" + u.Rev
	}
	return out
}

// GitParser parses and validates git URLs against its rule map.
type GitParser struct {
	rules *rule.Map
}

// NewGitParser returns the batteries-included git parser: core git(1)
// patterns plus pip-style and AWS CodeCommit patterns.
func NewGitParser() *GitParser {
	all := GitCoreRules()
	all = append(all, GitPipRules()...)
	all = append(all, GitAWSCodeCommitRules()...)
	return &GitParser{rules: rule.MustMap(all...)}
}

// NewGitParserWith returns a git parser over a caller-supplied rule map.
func NewGitParserWith(m *rule.Map) *GitParser {
	return &GitParser{rules: m}
}

// Rules exposes the parser's rule map. Registering into the map of a shared
// parser affects every future parse through it; prefer WithRules.
func (p *GitParser) Rules() *rule.Map { return p.rules }

// WithRules returns a new parser whose rule map is this parser's map plus
// extra. The receiver is unchanged.
func (p *GitParser) WithRules(extra ...rule.Rule) (*GitParser, error) {
	m, err := p.rules.WithAdditions(extra...)
	if err != nil {
		return nil, err
	}
	return &GitParser{rules: m}, nil
}

// IsValid reports whether url matches any rule. With explicit set, only
// rules marked Explicit are consulted, suppressing generic matches that
// could belong to any VCS. IsValid never returns an error.
func (p *GitParser) IsValid(url string, explicit bool) bool {
	_, _, ok := p.rules.First(url, explicit)
	return ok
}

// Parse builds a GitURL from the first matching rule. It fails with an
// ErrNoMatch error when the rule map is exhausted.
func (p *GitParser) Parse(url string) (*GitURL, error) {
	u, err := parseWith(p.rules, KindGit, url)
	if err != nil {
		return nil, err
	}
	return &GitURL{URL: u}, nil
}

// ParseURL implements the registry's untyped parser interface.
func (p *GitParser) ParseURL(url string) (Locator, error) {
	u, err := p.Parse(url)
	if err != nil {
		return nil, err
	}
	return u, nil
}

var defaultGitParser = NewGitParser()

// ParseGit parses url with the default git parser.
func ParseGit(url string) (*GitURL, error) {
	return defaultGitParser.Parse(url)
}

// IsValidGit reports whether url is recognized by the default git parser.
func IsValidGit(url string, explicit bool) bool {
	return defaultGitParser.IsValid(url, explicit)
}
