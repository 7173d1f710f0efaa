package git

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"ramos/internal/domain"
	"ramos/internal/logging"
	"ramos/internal/ports"
)

const remoteLookupTimeout = 5 * time.Second

// RemoteResolver resolves the repository identity from the origin remote of
// the git checkout at dir, falling back across common URL forms.
type RemoteResolver struct {
	dir string
}

// Verify interface compliance at compile time
var _ ports.RepoResolver = (*RemoteResolver)(nil)

// NewRemoteResolver creates a resolver rooted at dir ("" means the current
// working directory).
func NewRemoteResolver(dir string) *RemoteResolver {
	return &RemoteResolver{dir: dir}
}

// Resolve implements ports.RepoResolver.
func (r *RemoteResolver) Resolve() (domain.RepoRef, error) {
	ctx, cancel := context.WithTimeout(context.Background(), remoteLookupTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "remote", "get-url", "origin")
	if r.dir != "" {
		cmd.Dir = r.dir
	}

	output, err := cmd.Output()
	if err != nil {
		return domain.RepoRef{}, fmt.Errorf("failed to resolve origin remote: %w", err)
	}

	remoteURL := strings.TrimSpace(string(output))
	ref, err := ParseRemoteURL(remoteURL)
	if err != nil {
		return domain.RepoRef{}, err
	}

	logging.Logger.Debug("Resolved repository from git remote",
		"remote", remoteURL,
		"repo", ref.String(),
	)
	return ref, nil
}

// ParseRemoteURL extracts owner/name from the common git remote URL forms:
//
//	https://github.com/owner/repo.git
//	git@github.com:owner/repo.git
//	ssh://git@github.com/owner/repo.git
func ParseRemoteURL(remoteURL string) (domain.RepoRef, error) {
	cleanURL := strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")
	if cleanURL == "" {
		return domain.RepoRef{}, fmt.Errorf("empty remote URL")
	}

	var path string
	switch {
	case strings.HasPrefix(cleanURL, "https://"), strings.HasPrefix(cleanURL, "http://"):
		parts := strings.SplitN(cleanURL, "://", 2)
		if idx := strings.Index(parts[1], "/"); idx >= 0 {
			path = parts[1][idx+1:]
		}
	case strings.HasPrefix(cleanURL, "ssh://"):
		trimmed := strings.TrimPrefix(cleanURL, "ssh://")
		if idx := strings.Index(trimmed, "@"); idx >= 0 {
			trimmed = trimmed[idx+1:]
		}
		if idx := strings.Index(trimmed, "/"); idx >= 0 {
			path = trimmed[idx+1:]
		}
	case strings.Contains(cleanURL, "@") && strings.Contains(cleanURL, ":"):
		// scp-like: git@host:owner/repo
		parts := strings.SplitN(cleanURL, ":", 2)
		path = parts[1]
	default:
		path = cleanURL
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] == "" || segments[len(segments)-1] == "" {
		return domain.RepoRef{}, fmt.Errorf("cannot parse owner/repo from remote URL %q", remoteURL)
	}

	return domain.RepoRef{
		Owner: segments[len(segments)-2],
		Name:  segments[len(segments)-1],
	}, nil
}

// ParseRepoArg parses an explicit repository argument: either "owner/repo" or
// a full URL in any of the remote forms.
func ParseRepoArg(arg string) (domain.RepoRef, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return domain.RepoRef{}, fmt.Errorf("empty repository argument")
	}

	if strings.Contains(arg, "://") || strings.Contains(arg, "@") {
		return ParseRemoteURL(arg)
	}

	parts := strings.Split(strings.Trim(arg, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return domain.RepoRef{}, fmt.Errorf("expected owner/repo, got %q", arg)
	}
	return domain.RepoRef{Owner: parts[0], Name: parts[1]}, nil
}
