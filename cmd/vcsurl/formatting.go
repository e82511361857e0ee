package main

import (
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/registry"
	"github.com/vcs-go/vcsurl/pkg/vcsurl"
)

// renderMatches prints registry hits as a table.
func renderMatches(matches []registry.ParserMatch) error {
	rows := pterm.TableData{
		{"VCS", "RULE", "HOSTNAME", "PATH", "CANONICAL"},
	}
	for _, m := range matches {
		u := urlOf(m.Match)
		if u == nil {
			rows = append(rows, []string{m.VCS, "", "", "", m.Match.ToURL()})
			continue
		}
		rows = append(rows, []string{m.VCS, u.Rule, u.Hostname, u.Path, m.Match.ToURL()})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}

// renderLocator prints a parsed URL in the requested format.
func renderLocator(loc vcsurl.Locator, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(loc, "", "  ")
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode JSON")
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(loc)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		fmt.Print(string(out))
	case "text":
		u := urlOf(loc)
		if u == nil {
			return errors.Newf(errors.ErrInternal, "unsupported locator type %T", loc)
		}
		renderFields(loc.Kind(), u)
	default:
		return errors.Newf(errors.ErrInvalidInput, "unknown format %q", format)
	}
	return nil
}

// renderFields prints the non-empty fields of a parsed URL, one per line.
func renderFields(kind string, u *vcsurl.URL) {
	fields := []struct {
		name  string
		value string
	}{
		{"vcs", kind},
		{"url", u.Raw},
		{"rule", u.Rule},
		{"scheme", u.Scheme},
		{"user", u.User},
		{"hostname", u.Hostname},
		{"port", u.Port},
		{"path", u.Path},
		{"suffix", u.Suffix},
		{"rev", u.Rev},
		{"region", u.Region},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Printf("%-9s %s\n", f.name+":", f.value)
	}
}
