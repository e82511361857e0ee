// Package cmdline builds argv lists for the VCS binaries from parsed URLs.
// It is the command-builder boundary only: nothing here starts a process.
package cmdline

import (
	"github.com/vcs-go/vcsurl/pkg/vcsurl"
)

// GitClone returns the git argv that clones u into dest. A set Rev becomes
// --branch; the inline @rev decoration is stripped from the URL itself, since
// git clone does not accept it.
func GitClone(u *vcsurl.GitURL, dest string) []string {
	target := *u
	target.Rev = ""

	args := []string{"git", "clone"}
	if u.Rev != "" {
		args = append(args, "--branch", u.Rev)
	}
	args = append(args, target.ToURL())
	if dest != "" {
		args = append(args, dest)
	}
	return args
}

// HgClone returns the hg argv that clones u into dest. A set Rev becomes
// --updaterev.
func HgClone(u *vcsurl.HgURL, dest string) []string {
	target := *u
	target.Rev = ""

	args := []string{"hg", "clone"}
	if u.Rev != "" {
		args = append(args, "--updaterev", u.Rev)
	}
	args = append(args, target.ToURL())
	if dest != "" {
		args = append(args, dest)
	}
	return args
}

// SvnCheckout returns the svn argv that checks out u into dest. A set Rev
// becomes --revision.
func SvnCheckout(u *vcsurl.SvnURL, dest string) []string {
	target := *u
	target.Rev = ""

	args := []string{"svn", "checkout"}
	if u.Rev != "" {
		args = append(args, "--revision", u.Rev)
	}
	args = append(args, target.ToURL())
	if dest != "" {
		args = append(args, dest)
	}
	return args
}

// CloneCommand dispatches on the locator's kind and returns the argv that
// obtains a working copy. Unknown kinds return nil.
func CloneCommand(loc vcsurl.Locator, dest string) []string {
	switch u := loc.(type) {
	case *vcsurl.GitURL:
		return GitClone(u, dest)
	case *vcsurl.HgURL:
		return HgClone(u, dest)
	case *vcsurl.SvnURL:
		return SvnCheckout(u, dest)
	default:
		return nil
	}
}
