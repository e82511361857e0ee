package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vcs-go/vcsurl/pkg/cmdline"
	"github.com/vcs-go/vcsurl/pkg/config"
	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/vcsurl"
)

var detectExplicit bool

var detectCmd = &cobra.Command{
	Use:   "detect <url>",
	Short: "List the VCS kinds that accept a URL",
	Long: `Tries every registered VCS parser against the URL and lists each kind
that accepts it. A bare https:// URL is structurally valid for all three VCS;
pass --explicit to keep only VCS-specific syntaxes such as SCP shorthand or
git+ssh:// prefixes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := buildRegistry()
		if err != nil {
			return err
		}
		matches := reg.Match(args[0], detectExplicit)
		if len(matches) == 0 {
			return errors.Newf(errors.ErrNoMatch, "no VCS recognized %q", args[0])
		}
		return renderMatches(matches)
	},
}

var (
	parseVCS    string
	parseFormat string
)

var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Break a URL into its structured fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseOne(args[0], parseVCS)
		if err != nil {
			return err
		}
		return renderLocator(loc, parseFormat)
	},
}

var convertFields = struct {
	vcs      string
	scheme   string
	user     string
	hostname string
	port     string
	path     string
	rev      string
	suffix   string
}{}

var convertCmd = &cobra.Command{
	Use:   "convert <url>",
	Short: "Rewrite a URL after editing its fields",
	Long: `Parses the URL, overrides any fields given as flags, and prints the
string rebuilt from the edited fields. For example, moving a repo to another
host:

  vcsurl convert git@github.com:vcs-python/libvcs.git --hostname gitlab.com`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseOne(args[0], convertFields.vcs)
		if err != nil {
			return err
		}
		u := urlOf(loc)
		if u == nil {
			return errors.Newf(errors.ErrInternal, "unsupported locator type %T", loc)
		}
		flags := cmd.Flags()
		if flags.Changed("scheme") {
			u.Scheme = convertFields.scheme
		}
		if flags.Changed("user") {
			u.User = convertFields.user
		}
		if flags.Changed("hostname") {
			u.Hostname = convertFields.hostname
		}
		if flags.Changed("port") {
			u.Port = convertFields.port
		}
		if flags.Changed("path") {
			u.Path = convertFields.path
		}
		if flags.Changed("rev") {
			u.Rev = convertFields.rev
		}
		if flags.Changed("suffix") {
			u.Suffix = convertFields.suffix
		}
		fmt.Println(loc.ToURL())
		return nil
	},
}

var (
	cloneVCS  string
	cloneDest string
)

var cloneCommandCmd = &cobra.Command{
	Use:   "clone-command <url>",
	Short: "Print the command that would obtain a working copy",
	Long: `Prints the git/hg/svn invocation that clones or checks out the URL.
The command is printed, never executed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := parseOne(args[0], cloneVCS)
		if err != nil {
			return err
		}
		argv := cmdline.CloneCommand(loc, cloneDest)
		if argv == nil {
			return errors.Newf(errors.ErrInternal, "unsupported locator type %T", loc)
		}
		fmt.Println(strings.Join(argv, " "))
		return nil
	},
}

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Print a starter vcsurl.toml with a sample custom rule",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.ExampleTOML()
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

// parseOne resolves which VCS should parse the URL. An explicit kind wins;
// otherwise the first registry match is used.
func parseOne(url, kind string) (vcsurl.Locator, error) {
	reg, err := buildRegistry()
	if err != nil {
		return nil, err
	}
	if kind != "" {
		parser, err := reg.Get(kind)
		if err != nil {
			return nil, err
		}
		return parser.ParseURL(url)
	}
	matches := reg.Match(url, false)
	if len(matches) == 0 {
		return nil, errors.Newf(errors.ErrNoMatch, "no VCS recognized %q", url)
	}
	return matches[0].Match, nil
}

// urlOf returns the mutable shared fields of a built-in locator.
func urlOf(loc vcsurl.Locator) *vcsurl.URL {
	switch u := loc.(type) {
	case *vcsurl.GitURL:
		return &u.URL
	case *vcsurl.HgURL:
		return &u.URL
	case *vcsurl.SvnURL:
		return &u.URL
	default:
		return nil
	}
}

func init() {
	detectCmd.Flags().BoolVar(&detectExplicit, "explicit", false, "Only match rules that unambiguously identify their VCS")

	parseCmd.Flags().StringVar(&parseVCS, "vcs", "", "VCS kind to parse as (git, hg, svn); default: first match")
	parseCmd.Flags().StringVar(&parseFormat, "format", "text", "Output format (text, json, yaml)")

	convertCmd.Flags().StringVar(&convertFields.vcs, "vcs", "", "VCS kind to parse as (git, hg, svn); default: first match")
	convertCmd.Flags().StringVar(&convertFields.scheme, "scheme", "", "Override the scheme")
	convertCmd.Flags().StringVar(&convertFields.user, "user", "", "Override the user")
	convertCmd.Flags().StringVar(&convertFields.hostname, "hostname", "", "Override the hostname")
	convertCmd.Flags().StringVar(&convertFields.port, "port", "", "Override the port")
	convertCmd.Flags().StringVar(&convertFields.path, "path", "", "Override the path")
	convertCmd.Flags().StringVar(&convertFields.rev, "rev", "", "Override the revision specifier")
	convertCmd.Flags().StringVar(&convertFields.suffix, "suffix", "", "Override the suffix")

	cloneCommandCmd.Flags().StringVar(&cloneVCS, "vcs", "", "VCS kind to parse as (git, hg, svn); default: first match")
	cloneCommandCmd.Flags().StringVar(&cloneDest, "dest", "", "Destination directory for the printed command")
}
