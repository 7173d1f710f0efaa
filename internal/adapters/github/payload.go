package github

// Wire types for the JSON payloads github.com embeds in and serves from its
// branches pages. Every field is optional: the shapes are not a published
// API, so nothing here is trusted beyond presence checks.

type activeBranchesPayload struct {
	Payload    *listingPayload `json:"payload"`
	AppPayload *appPayload     `json:"appPayload"`
}

type listingPayload struct {
	CurrentPage int          `json:"currentPage"`
	HasMore     bool         `json:"hasMore"`
	Branches    []wireBranch `json:"branches"`
}

type appPayload struct {
	Repo *wireRepo `json:"repo"`
}

type wireRepo struct {
	ID            int     `json:"id"`
	DefaultBranch *string `json:"defaultBranch"`
	Name          string  `json:"name"`
	OwnerLogin    string  `json:"ownerLogin"`
}

type wireAuthor struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatarURL"`
	Path      string `json:"path"`
}

type wireBranch struct {
	Name         string           `json:"name"`
	IsDefault    bool             `json:"isDefault"`
	Author       *wireAuthor      `json:"author"`
	AuthoredDate string           `json:"authoredDate"`
	AheadBehind  []int            `json:"aheadBehind"`
	PullRequest  *wirePullRequest `json:"pullRequest"`
}

type wirePullRequest struct {
	Number          int    `json:"number"`
	Title           string `json:"title"`
	State           string `json:"state"`
	ReviewableState string `json:"reviewableState"`
	Merged          bool   `json:"merged"`
	Permalink       string `json:"permalink"`
}

type deferredMetadataResponse struct {
	DeferredMetadata map[string]wireMetadata `json:"deferredMetadata"`
}

type wireMetadata struct {
	OID         string           `json:"oid"`
	AheadBehind []int            `json:"aheadBehind"`
	PullRequest *wirePullRequest `json:"pullRequest"`
}
