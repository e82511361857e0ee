package main

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/vcs-go/vcsurl/pkg/errors"
)

//go:embed urlformats.md
var urlFormatsDoc string

var docsPlain bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Show the URL formats vcsurl understands",
	RunE: func(cmd *cobra.Command, args []string) error {
		if docsPlain {
			fmt.Print(urlFormatsDoc)
			return nil
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to create renderer")
		}
		out, err := renderer.Render(urlFormatsDoc)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to render docs")
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	docsCmd.Flags().BoolVar(&docsPlain, "plain", false, "Print raw markdown without rendering")
}
