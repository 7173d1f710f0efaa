package domain

import "fmt"

// RepoRef identifies a repository by owner and name.
type RepoRef struct {
	Owner string
	Name  string
}

// String returns the canonical "owner/name" form.
func (r RepoRef) String() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// IsZero reports whether the reference is empty.
func (r RepoRef) IsZero() bool {
	return r.Owner == "" && r.Name == ""
}

// SessionInfo is the last-resolved repository/default-branch triple. It lives
// for the current view only: overwritten on every successful full fetch, never
// persisted.
type SessionInfo struct {
	Owner         string
	Repo          string
	DefaultBranch string
}
