// Package git reads the repository facts a changelog cut needs: the remotes
// and the forge identity they point at, the worktree root, and local tags.
// It uses go-git, so no git binary is required.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/kettle-rb/kettle-changelog/internal/forge"
)

// DefaultRemote is the remote consulted first when no preference is given.
const DefaultRemote = "origin"

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens the repository containing dir, walking up to find .git.
// An empty dir means the current working directory.
func openRepo(dir string) (*git.Repository, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", dir)

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// Root returns the worktree root of the repository containing dir.
func Root(dir string) (string, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	root := worktree.Filesystem.Root()
	logDebug("[git] Root: %s", root)
	return root, nil
}

// RemoteInfo describes a configured remote.
type RemoteInfo struct {
	Name string
	// URL is the first configured fetch URL.
	URL string
	// Identity is nil when the URL could not be parsed.
	Identity *forge.Identity
}

// Remotes lists the remotes of the repository containing dir, sorted by name.
func Remotes(dir string) ([]RemoteInfo, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return nil, err
	}

	remotes, err := repo.Remotes()
	if err != nil {
		return nil, fmt.Errorf("listing remotes: %w", err)
	}

	infos := make([]RemoteInfo, 0, len(remotes))
	for _, r := range remotes {
		cfg := r.Config()
		info := RemoteInfo{Name: cfg.Name}
		if len(cfg.URLs) > 0 {
			info.URL = cfg.URLs[0]
			if id, err := forge.Parse(info.URL); err == nil {
				info.Identity = id
			} else {
				logDebug("[git] remote %s: %v", cfg.Name, err)
			}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// RepoIdentity returns the GitHub identity used for changelog links.
//
// The preferred remote wins when it points at GitHub, then origin, then the
// first GitHub remote by name. It returns nil without error when no remote
// points at GitHub.
func RepoIdentity(dir, preferred string) (*forge.Identity, error) {
	remotes, err := Remotes(dir)
	if err != nil {
		return nil, err
	}
	return pickIdentity(remotes, preferred), nil
}

func pickIdentity(remotes []RemoteInfo, preferred string) *forge.Identity {
	byName := make(map[string]*forge.Identity, len(remotes))
	for _, r := range remotes {
		byName[r.Name] = r.Identity
	}

	for _, name := range []string{preferred, DefaultRemote} {
		if name == "" {
			continue
		}
		if id := byName[name]; id.IsGitHub() {
			logDebug("[git] RepoIdentity: %s via %s", id, name)
			return id
		}
	}

	for _, r := range remotes {
		if r.Identity.IsGitHub() {
			logDebug("[git] RepoIdentity: %s via %s", r.Identity, r.Name)
			return r.Identity
		}
	}

	logDebug("[git] RepoIdentity: no GitHub remote")
	return nil
}

// TagExists reports whether the repository containing dir has the tag.
func TagExists(dir, tag string) (bool, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return false, err
	}

	if _, err := repo.Tag(tag); err != nil {
		if errors.Is(err, git.ErrTagNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("looking up tag %s: %w", tag, err)
	}
	return true, nil
}
