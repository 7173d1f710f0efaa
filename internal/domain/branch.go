package domain

// PullRequest states as reported by GitHub.
const (
	PRStateOpen   = "open"
	PRStateClosed = "closed"
)

// Reviewable states for an open pull request.
const (
	ReviewStateReady = "ready"
	ReviewStateDraft = "draft"
)

// Author identifies the user who last touched a branch.
type Author struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarURL,omitempty"`
	Path      string `json:"path,omitempty"`
}

// PullRequest is the pull request associated with a branch, if any.
type PullRequest struct {
	Number          int    `json:"number"`
	State           string `json:"state"`
	ReviewableState string `json:"reviewableState,omitempty"`
	Merged          bool   `json:"merged"`
	Permalink       string `json:"permalink,omitempty"`
}

// AheadBehind is the commit divergence of a branch relative to the default
// branch: index 0 is the ahead count, index 1 the behind count.
type AheadBehind [2]int

// Ahead returns the number of commits the branch is ahead of the default branch.
func (ab AheadBehind) Ahead() int { return ab[0] }

// Behind returns the number of commits the branch is behind the default branch.
func (ab AheadBehind) Behind() int { return ab[1] }

// Branch is one active (recently updated, non-default) branch of a repository.
// AheadBehind and PullRequest are only populated after the deferred metadata
// enrichment; a branch missing from the enrichment response keeps zero values,
// which renderers must tolerate.
type Branch struct {
	Name         string       `json:"name"`
	Author       Author       `json:"author"`
	AuthoredDate string       `json:"authoredDate,omitempty"` // ISO-8601, empty when unknown
	AheadBehind  AheadBehind  `json:"aheadBehind"`
	PullRequest  *PullRequest `json:"pullRequest,omitempty"`
}

// BranchMetadata is the deferred per-branch data returned by the batched
// enrichment call, keyed by branch name.
type BranchMetadata struct {
	AheadBehind AheadBehind  `json:"aheadBehind"`
	PullRequest *PullRequest `json:"pullRequest,omitempty"`
}
