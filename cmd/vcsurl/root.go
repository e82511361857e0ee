package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/vcs-go/vcsurl/internal/version"
	"github.com/vcs-go/vcsurl/pkg/config"
	"github.com/vcs-go/vcsurl/pkg/logging"
	"github.com/vcs-go/vcsurl/pkg/registry"
)

var (
	verbosity  int
	configPath string
	noColor    bool

	rootCmd = &cobra.Command{
		Use:   "vcsurl",
		Short: "Detect, parse, and rewrite VCS repository URLs",
		Long: `vcsurl recognizes repository locators for git, Mercurial, and Subversion
in their many string forms: scheme URLs, SCP-style shorthand (user@host:path),
and pip/npm-style decorated URLs carrying revision specifiers. It can tell you
which VCS a URL belongs to, break it into fields, and rebuild it after edits.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			if noColor || !isatty.IsTerminal(os.Stdout.Fd()) {
				pterm.DisableColor()
			}
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./vcsurl.toml, then $XDG_CONFIG_HOME/vcsurl/vcsurl.toml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(cloneCommandCmd)
	rootCmd.AddCommand(genconfigCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(manCmd)
}

// buildRegistry loads configuration and returns the registry carrying any
// user-configured rules.
func buildRegistry() (*registry.Registry, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return cfg.Registry()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vcsurl version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `To load completions:

Bash:
  $ source <(vcsurl completion bash)

Zsh:
  $ vcsurl completion zsh > "${fpath[1]}/_vcsurl"

Fish:
  $ vcsurl completion fish | source

PowerShell:
  PS> vcsurl completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

var manCmd = &cobra.Command{
	Use:    "man [directory]",
	Short:  "Generate man pages",
	Hidden: true,
	Args:   cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}
		header := &doc.GenManHeader{Title: "VCSURL", Section: "1"}
		return doc.GenManTree(rootCmd, header, dir)
	},
}
