package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ramos/internal/config"
	"ramos/internal/domain"
	"ramos/internal/logging"
	"ramos/internal/ports"
)

// DefaultBaseURL is the host the client talks to unless overridden.
const DefaultBaseURL = "https://github.com"

const (

	// One explicit timeout for both the listing and the enrichment request;
	// leaving either unbounded would let a stuck fetch hang a refresh forever.
	requestTimeout = 15 * time.Second

	// payloadSelector locates the script element carrying the embedded JSON
	// payload on the active-branches page.
	payloadSelector = "#repo-content-pjax-container > react-app > script"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client fetches branch data from github.com. It talks to the site's own
// branch pages, not the REST API, so results match exactly what the branches
// UI shows.
type Client struct {
	httpClient *http.Client
	baseURL    string
	config     *config.Store
}

// Verify interface compliance at compile time
var _ ports.BranchSource = (*Client)(nil)

// NewClient creates a Client against github.com.
func NewClient(cfg *config.Store) *Client {
	return NewClientForHost(DefaultBaseURL, cfg)
}

// NewClientForHost creates a Client against a specific host; used by tests.
func NewClientForHost(baseURL string, cfg *config.Store) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		config:     cfg,
	}
}

// FetchActiveBranches implements ports.BranchSource. It retrieves the
// active-branches page and extracts the embedded listing payload.
func (c *Client) FetchActiveBranches(ctx context.Context, ref domain.RepoRef) ([]domain.Branch, *string, error) {
	url := fmt.Sprintf("%s/%s/branches/active", c.baseURL, ref)
	logging.Logger.Debug("Fetching active branches page", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("User-Agent", userAgent)
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch active branches page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("active branches page returned HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse active branches page: %w", err)
	}

	node := doc.Find(payloadSelector).First()
	if node.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no embedded payload element in active branches page", domain.ErrPayloadShape)
	}

	var payload activeBranchesPayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(node.Text())), &payload); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPayloadShape, err)
	}

	var defaultBranch *string
	if payload.AppPayload != nil && payload.AppPayload.Repo != nil {
		defaultBranch = payload.AppPayload.Repo.DefaultBranch
	}

	if payload.Payload == nil || len(payload.Payload.Branches) == 0 {
		logging.Logger.Debug("No active branches in listing", "repo", ref.String())
		return nil, defaultBranch, nil
	}

	branches := make([]domain.Branch, 0, len(payload.Payload.Branches))
	for _, wire := range payload.Payload.Branches {
		branches = append(branches, toDomainBranch(wire))
	}

	logging.Logger.Debug("Extracted active branches",
		"repo", ref.String(),
		"count", len(branches),
	)
	return branches, defaultBranch, nil
}

// FetchDeferredMetadata implements ports.BranchSource. One batched POST
// covers all names; GitHub keys the response by branch name.
func (c *Client) FetchDeferredMetadata(ctx context.Context, ref domain.RepoRef, names []string) (map[string]domain.BranchMetadata, error) {
	url := fmt.Sprintf("%s/%s/branches/deferred_metadata?include_authors=true", c.baseURL, ref)
	logging.Logger.Debug("Fetching deferred metadata", "url", url, "branches", len(names))

	body, err := json.Marshal(map[string][]string{"branches": names})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	req.Header.Set("Github-Verified-Fetch", "true")
	req.Header.Set("Referer", fmt.Sprintf("%s/%s/branches/active", c.baseURL, ref))
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branch deferred metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("deferred metadata returned HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var decoded deferredMetadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPayloadShape, err)
	}
	if decoded.DeferredMetadata == nil {
		return nil, fmt.Errorf("%w: missing deferredMetadata envelope", domain.ErrPayloadShape)
	}

	result := make(map[string]domain.BranchMetadata, len(decoded.DeferredMetadata))
	for name, wire := range decoded.DeferredMetadata {
		result[name] = domain.BranchMetadata{
			AheadBehind: toAheadBehind(wire.AheadBehind),
			PullRequest: toDomainPR(wire.PullRequest),
		}
	}
	return result, nil
}

// authorize forwards the configured token as a bearer token, when set.
func (c *Client) authorize(req *http.Request) {
	if token := c.config.String(config.GitHubToken); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func toDomainBranch(wire wireBranch) domain.Branch {
	branch := domain.Branch{
		Name:         wire.Name,
		AuthoredDate: wire.AuthoredDate,
		AheadBehind:  toAheadBehind(wire.AheadBehind),
		PullRequest:  toDomainPR(wire.PullRequest),
	}
	if wire.Author != nil {
		branch.Author = domain.Author{
			Login:     wire.Author.Login,
			AvatarURL: wire.Author.AvatarURL,
			Path:      wire.Author.Path,
		}
	}
	return branch
}

func toAheadBehind(counts []int) domain.AheadBehind {
	var ab domain.AheadBehind
	if len(counts) > 0 {
		ab[0] = counts[0]
	}
	if len(counts) > 1 {
		ab[1] = counts[1]
	}
	return ab
}

func toDomainPR(wire *wirePullRequest) *domain.PullRequest {
	if wire == nil {
		return nil
	}
	return &domain.PullRequest{
		Number:          wire.Number,
		State:           wire.State,
		ReviewableState: wire.ReviewableState,
		Merged:          wire.Merged,
		Permalink:       wire.Permalink,
	}
}
