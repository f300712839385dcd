// Package git resolves repository coordinates from a local git checkout.
package git

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	gogit "github.com/go-git/go-git/v5"
)

// DefaultRemote is the remote consulted when none is given
const DefaultRemote = "origin"

// ErrNoRemoteURL is returned when the remote exists but has no URL configured
var ErrNoRemoteURL = errors.New("git remote has no URL")

// RemoteResolver reads owner/repo from a remote of the checkout containing Path
type RemoteResolver struct {
	Path   string
	Remote string
}

// NewRemoteResolver creates a resolver for the checkout containing path
func NewRemoteResolver(path string) *RemoteResolver {
	return &RemoteResolver{Path: path, Remote: DefaultRemote}
}

// Resolve returns the "owner/repo" slug of the configured remote
func (r *RemoteResolver) Resolve() (string, error) {
	repo, err := gogit.PlainOpenWithOptions(r.Path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("failed to open git repository at %s: %w", r.Path, err)
	}

	remoteName := r.Remote
	if remoteName == "" {
		remoteName = DefaultRemote
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		return "", fmt.Errorf("failed to read remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", ErrNoRemoteURL
	}

	return SlugFromURL(urls[0])
}

// SlugFromURL extracts "owner/repo" from an https, ssh or scp-like remote URL
func SlugFromURL(raw string) (string, error) {
	var p string

	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("invalid remote URL %q: %w", raw, err)
		}
		p = u.Path
	case strings.Contains(raw, ":"):
		// scp-like syntax: git@github.com:owner/repo.git
		p = raw[strings.Index(raw, ":")+1:]
	default:
		return "", fmt.Errorf("unsupported remote URL %q", raw)
	}

	p = strings.TrimSuffix(strings.Trim(p, "/"), ".git")
	parts := strings.Split(p, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("remote URL %q does not name an owner/repo", raw)
	}

	return parts[0] + "/" + parts[1], nil
}
