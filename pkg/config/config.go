// Package config loads user-supplied URL rules and layers them on top of the
// built-in parsers. Configuration is read with koanf: embedded defaults, then
// a TOML or YAML config file, then VCSURL_* environment variables.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/logging"
	"github.com/vcs-go/vcsurl/pkg/registry"
	"github.com/vcs-go/vcsurl/pkg/rule"
	"github.com/vcs-go/vcsurl/pkg/vcsurl"
)

//go:embed defaults.toml
var defaultConfig []byte

// envPrefix namespaces environment overrides, e.g. VCSURL_LOG_LEVEL.
const envPrefix = "VCSURL_"

// RuleSpec is the declarative form of a rule.Rule as it appears in a config
// file.
type RuleSpec struct {
	Label       string            `koanf:"label" toml:"label"`
	Description string            `koanf:"description" toml:"description,omitempty"`
	Pattern     string            `koanf:"pattern" toml:"pattern"`
	Defaults    map[string]string `koanf:"defaults" toml:"defaults,omitempty"`
	Weight      int               `koanf:"weight" toml:"weight,omitempty"`
	Explicit    bool              `koanf:"explicit" toml:"explicit,omitempty"`
}

// Config is the root configuration document.
type Config struct {
	// Rules maps a VCS kind ("git", "hg", "svn") to extra rules layered
	// onto that kind's built-in rule map.
	Rules map[string][]RuleSpec `koanf:"rules" toml:"rules,omitempty"`
}

// Load reads configuration from the given path. An empty path falls back to
// the default search order: ./vcsurl.toml, ./.vcsurl.toml, then
// $XDG_CONFIG_HOME/vcsurl/vcsurl.toml.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), ktoml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load embedded defaults")
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		parser := parserFor(path)
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to load config from %s", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded config file")
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal config")
	}
	return &cfg, nil
}

// findConfigFile returns the first config file found in the search order, or
// empty when none exists.
func findConfigFile() string {
	candidates := []string{
		"vcsurl.toml",
		".vcsurl.toml",
		filepath.Join(xdg.ConfigHome, "vcsurl", "vcsurl.toml"),
		filepath.Join(xdg.ConfigHome, "vcsurl", "vcsurl.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// parserFor selects the koanf parser from the file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}

// CompileRules converts declarative specs into compiled rules. A spec whose
// pattern does not compile fails here, before any parse is attempted.
func CompileRules(specs []RuleSpec) ([]rule.Rule, error) {
	rules := make([]rule.Rule, 0, len(specs))
	for _, spec := range specs {
		r, err := rule.New(rule.Rule{
			Label:       spec.Label,
			Description: spec.Description,
			Pattern:     spec.Pattern,
			Defaults:    spec.Defaults,
			Weight:      spec.Weight,
			Explicit:    spec.Explicit,
		})
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// Registry builds a registry whose variants carry the configured extra rules
// on top of the defaults. Extension goes through the copy-and-augment
// surface, so the built-in parsers are never mutated.
func (c *Config) Registry() (*registry.Registry, error) {
	reg := registry.Default()
	for kind, specs := range c.Rules {
		if len(specs) == 0 {
			continue
		}
		extra, err := CompileRules(specs)
		if err != nil {
			return nil, err
		}
		switch kind {
		case vcsurl.KindGit:
			p, err := vcsurl.NewGitParser().WithRules(extra...)
			if err != nil {
				return nil, err
			}
			reg = reg.WithVariant(kind, p)
		case vcsurl.KindHg:
			p, err := vcsurl.NewHgParser().WithRules(extra...)
			if err != nil {
				return nil, err
			}
			reg = reg.WithVariant(kind, p)
		case vcsurl.KindSvn:
			p, err := vcsurl.NewSvnParser().WithRules(extra...)
			if err != nil {
				return nil, err
			}
			reg = reg.WithVariant(kind, p)
		default:
			return nil, errors.Newf(errors.ErrConfigValid,
				"unknown vcs kind %q in rules config", kind)
		}
	}
	return reg, nil
}
