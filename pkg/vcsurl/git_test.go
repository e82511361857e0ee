// Test Type: Unit Test
// Description: Tests for git URL parsing, reconstruction, and rule extension

package vcsurl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcs-go/vcsurl/pkg/errors"
	"github.com/vcs-go/vcsurl/pkg/rule"
	"github.com/vcs-go/vcsurl/pkg/vcsurl"
)

func TestParseGit(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want vcsurl.URL
	}{
		{
			name: "https with .git suffix",
			url:  "https://github.com/vcs-python/libvcs.git",
			want: vcsurl.URL{
				Raw:       "https://github.com/vcs-python/libvcs.git",
				Scheme:    "https",
				Hostname:  "github.com",
				Separator: "/",
				Path:      "vcs-python/libvcs",
				Suffix:    ".git",
				Rule:      "core-git-https",
			},
		},
		{
			name: "scp shorthand",
			url:  "git@github.com:vcs-python/libvcs.git",
			want: vcsurl.URL{
				Raw:       "git@github.com:vcs-python/libvcs.git",
				User:      "git",
				Hostname:  "github.com",
				Separator: ":",
				Path:      "vcs-python/libvcs",
				Suffix:    ".git",
				Rule:      "core-git-scp",
			},
		},
		{
			name: "pip-style with revision",
			url:  "git+https://github.com/vcs-python/libvcs.git@v0.10.0",
			want: vcsurl.URL{
				Raw:       "git+https://github.com/vcs-python/libvcs.git@v0.10.0",
				Scheme:    "git+https",
				Hostname:  "github.com",
				Separator: "/",
				Path:      "vcs-python/libvcs",
				Suffix:    ".git",
				Rev:       "v0.10.0",
				Rule:      "pip-url",
			},
		},
		{
			name: "pip-style local path",
			url:  "git+file:///home/user/repos/libvcs",
			want: vcsurl.URL{
				Raw:    "git+file:///home/user/repos/libvcs",
				Scheme: "git+file",
				Path:   "/home/user/repos/libvcs",
				Rule:   "pip-file-url",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := vcsurl.ParseGit(tt.url)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.URL)
		})
	}

	t.Run("unrecognized string fails with no-match", func(t *testing.T) {
		_, err := vcsurl.ParseGit("||not a url||")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoMatch))
		details := errors.GetErrorDetails(err)
		assert.Equal(t, "||not a url||", details["url"])
	})
}

func TestGitURL_ToURL(t *testing.T) {
	t.Run("scp shorthand round-trips", func(t *testing.T) {
		u, err := vcsurl.ParseGit("git@github.com:vcs-python/libvcs.git")
		require.NoError(t, err)
		assert.Equal(t, "git@github.com:vcs-python/libvcs.git", u.ToURL())
	})

	t.Run("https round-trips", func(t *testing.T) {
		u, err := vcsurl.ParseGit("https://github.com/vcs-python/libvcs.git")
		require.NoError(t, err)
		assert.Equal(t, "https://github.com/vcs-python/libvcs.git", u.ToURL())
	})

	t.Run("hostname edit moves the repo", func(t *testing.T) {
		u, err := vcsurl.ParseGit("git@github.com:vcs-python/libvcs.git")
		require.NoError(t, err)

		u.Hostname = "gitlab.com"
		assert.Equal(t, "git@gitlab.com:vcs-python/libvcs.git", u.ToURL())
	})

	t.Run("revision is appended pip-style", func(t *testing.T) {
		u, err := vcsurl.ParseGit("git+ssh://git@github.com:tony/AlgoXY.git@master")
		require.NoError(t, err)
		assert.Equal(t, "master", u.Rev)
		assert.Equal(t, "git+ssh://git@github.com/tony/AlgoXY.git@master", u.ToURL())
	})

	t.Run("scp form keeps a numeric path segment after the colon", func(t *testing.T) {
		u, err := vcsurl.ParseGit("git@example.com:2222/repo")
		require.NoError(t, err)

		// The colon is the scp separator, not a port marker: the digits
		// belong to the path and must round-trip in place.
		assert.Equal(t, "", u.Port)
		assert.Equal(t, "2222/repo", u.Path)
		assert.Equal(t, "git@example.com:2222/repo", u.ToURL())
	})

	t.Run("suffix is not doubled when the path already carries it", func(t *testing.T) {
		u, err := vcsurl.ParseGit("git@github.com:vcs-python/libvcs.git")
		require.NoError(t, err)

		u.Path = "vcs-python/libvcs.git"
		assert.Equal(t, ".git", u.Suffix)
		assert.Equal(t, "git@github.com:vcs-python/libvcs.git", u.ToURL())
	})

	t.Run("user and port survive reconstruction", func(t *testing.T) {
		u := &vcsurl.GitURL{URL: vcsurl.URL{
			Scheme:   "https",
			User:     "deploy",
			Hostname: "git.example.com",
			Port:     "8443",
			Path:     "infra/tools",
			Suffix:   ".git",
		}}
		assert.Equal(t, "https://deploy@git.example.com:8443/infra/tools.git", u.ToURL())
	})
}

func TestGitURL_CodeCommit(t *testing.T) {
	t.Run("grc form", func(t *testing.T) {
		u, err := vcsurl.ParseGit("codecommit://test")
		require.NoError(t, err)
		assert.Equal(t, "aws-code-commit-https-grc", u.Rule)
		assert.Equal(t, "test", u.Hostname)
	})

	t.Run("grc form with region rebuilds from edited path", func(t *testing.T) {
		u, err := vcsurl.ParseGit("codecommit::us-east-1://test@v0.10.0")
		require.NoError(t, err)
		assert.Equal(t, "aws-code-commit-https-grc-with-region", u.Rule)
		assert.Equal(t, "us-east-1", u.Region)
		assert.Equal(t, "v0.10.0", u.Rev)

		u.Path = "libvcs/vcspull"
		assert.Equal(t, "codecommit::us-east-1://libvcs/vcspull@v0.10.0", u.ToURL())
	})
}

func TestGitParser_WithRules(t *testing.T) {
	ghRule := rule.MustNew(rule.Rule{
		Label:       "gh-prefix",
		Description: "Matches prefixes like github:org/repo",
		Pattern:     `^github:(?P<path>.*)$`,
		Defaults: map[string]string{
			"hostname": "github.com",
			"scheme":   "https",
		},
		Weight:   100,
		Explicit: true,
	})

	custom, err := vcsurl.NewGitParser().WithRules(ghRule)
	require.NoError(t, err)

	t.Run("custom rule outranks the built-ins", func(t *testing.T) {
		u, err := custom.Parse("github:vcs-python/libvcs")
		require.NoError(t, err)
		assert.Equal(t, "gh-prefix", u.Rule)
		assert.Equal(t, "github.com", u.Hostname)
		assert.Equal(t, "https://github.com/vcs-python/libvcs", u.ToURL())
	})

	t.Run("base parser is unchanged", func(t *testing.T) {
		u, err := vcsurl.ParseGit("github:vcs-python/libvcs")
		require.NoError(t, err)
		assert.Equal(t, "core-git-scp", u.Rule)
		assert.Equal(t, "github", u.Hostname)
	})
}

func TestGitParser_IsValid(t *testing.T) {
	tests := []struct {
		url      string
		explicit bool
		want     bool
	}{
		{"https://github.com/vcs-python/libvcs.git", false, true},
		{"https://github.com/vcs-python/libvcs.git", true, false},
		{"git+ssh://git@github.com:org/repo.git", true, true},
		{"codecommit::ap-northeast-1://MyDemoRepo", true, true},
		{"||not a url||", false, false},
	}

	for _, tt := range tests {
		got := vcsurl.IsValidGit(tt.url, tt.explicit)
		assert.Equal(t, tt.want, got, "IsValidGit(%q, explicit=%v)", tt.url, tt.explicit)
	}
}
