// Package forge normalizes git remote URLs across code forges (GitHub, GitLab,
// Codeberg) into an owner/repo identity, and builds the GitHub URLs used in
// changelog link references.
//
// Supported remote formats:
//   - https://github.com/owner/repo(.git)
//   - ssh://git@gitlab.com:2222/group/subgroup/repo.git
//   - git@codeberg.org:owner/repo.git
package forge

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Provider is a code forge type.
type Provider string

const (
	ProviderGitHub   Provider = "github"
	ProviderGitLab   Provider = "gitlab"
	ProviderCodeberg Provider = "codeberg"
	ProviderUnknown  Provider = "unknown"
)

// Well-known forge hosts.
const (
	GitHubHost   = "github.com"
	GitLabHost   = "gitlab.com"
	CodebergHost = "codeberg.org"
)

// ErrEmptyURL is returned by Parse for an empty remote URL.
var ErrEmptyURL = errors.New("remote URL is empty")

// scpLikePattern matches "user@host:path" remotes. The host may not contain
// "/" so local paths are not mistaken for it.
var scpLikePattern = regexp.MustCompile(`^(?:[\w.+-]+@)?([\w.-]+):(.+)$`)

// Identity is the forge and owner/repo a remote points at.
type Identity struct {
	Provider Provider
	// Host is the lowercased hostname without port.
	Host string
	// Owner may contain "/" for nested GitLab groups.
	Owner string
	Repo  string
}

// Parse extracts the identity from a git remote URL.
func Parse(remote string) (*Identity, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return nil, ErrEmptyURL
	}

	var host, path string
	if strings.Contains(remote, "://") {
		u, err := url.Parse(remote)
		if err != nil {
			return nil, fmt.Errorf("parsing remote URL %q: %w", remote, err)
		}
		host, path = u.Hostname(), u.Path
	} else if m := scpLikePattern.FindStringSubmatch(remote); m != nil {
		host, path = m[1], m[2]
	}
	if host == "" {
		return nil, fmt.Errorf("remote URL %q has no host", remote)
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" {
		return nil, fmt.Errorf("remote URL %q has no owner/repo path", remote)
	}

	repo := strings.TrimSuffix(parts[len(parts)-1], ".git")
	if repo == "" {
		return nil, fmt.Errorf("remote URL %q has an empty repository name", remote)
	}

	host = strings.ToLower(host)
	return &Identity{
		Provider: DetectProvider(host),
		Host:     host,
		Owner:    strings.Join(parts[:len(parts)-1], "/"),
		Repo:     repo,
	}, nil
}

// DetectProvider determines the forge from a hostname.
//
// Well-known hosts match exactly. Self-hosted instances are recognized by a
// "github." or "gitlab." label, and Codeberg by its domain suffix, which
// avoids false positives like "notgithub.com".
func DetectProvider(host string) Provider {
	host = strings.ToLower(host)
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	switch host {
	case GitHubHost, "www." + GitHubHost:
		return ProviderGitHub
	case GitLabHost, "www." + GitLabHost:
		return ProviderGitLab
	case CodebergHost, "www." + CodebergHost:
		return ProviderCodeberg
	}

	switch {
	case strings.HasPrefix(host, "github.") || strings.Contains(host, ".github."):
		return ProviderGitHub
	case strings.HasPrefix(host, "gitlab.") || strings.Contains(host, ".gitlab."):
		return ProviderGitLab
	case strings.HasSuffix(host, "."+CodebergHost):
		return ProviderCodeberg
	}
	return ProviderUnknown
}

// IsGitHub reports whether the identity is hosted on GitHub.
func (id *Identity) IsGitHub() bool {
	return id != nil && id.Provider == ProviderGitHub
}

// String returns "owner/repo".
func (id *Identity) String() string {
	return id.Owner + "/" + id.Repo
}

// HTTPSURL returns the canonical web URL of the repository on its own forge.
func (id *Identity) HTTPSURL() string {
	return "https://" + id.Host + "/" + id.String()
}

// GitHubURL returns the repository URL on github.com.
func (id *Identity) GitHubURL() string {
	return "https://" + GitHubHost + "/" + id.String()
}

// GitHubCompareURL returns the GitHub compare view between two revisions.
func (id *Identity) GitHubCompareURL(from, to string) string {
	return id.GitHubURL() + "/compare/" + from + "..." + to
}

// GitHubTagURL returns the GitHub release page of a tag.
func (id *Identity) GitHubTagURL(tag string) string {
	return id.GitHubURL() + "/releases/tag/" + tag
}
