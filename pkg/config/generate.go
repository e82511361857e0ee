package config

import (
	"github.com/pelletier/go-toml/v2"

	"github.com/vcs-go/vcsurl/pkg/errors"
)

// ExampleConfig returns a starter configuration demonstrating a custom rule.
func ExampleConfig() Config {
	return Config{
		Rules: map[string][]RuleSpec{
			"git": {
				{
					Label:       "gh-prefix",
					Description: "Matches prefixes like github:org/repo",
					Pattern:     `^github:(?P<path>.*)$`,
					Defaults: map[string]string{
						"hostname": "github.com",
						"scheme":   "https",
					},
					Weight:   100,
					Explicit: true,
				},
			},
		},
	}
}

// ExampleTOML renders the starter configuration as TOML, suitable for
// writing to a fresh vcsurl.toml.
func ExampleTOML() (string, error) {
	out, err := toml.Marshal(ExampleConfig())
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render example config")
	}
	return string(out), nil
}
