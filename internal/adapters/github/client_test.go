package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ramos/internal/config"
	"ramos/internal/domain"
	"ramos/internal/ports"
)

type memStore struct {
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (m *memStore) Get(key string) (string, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memStore) Set(key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Keys(prefix string) ([]string, error) { return nil, nil }

func (m *memStore) DeleteMany(keys []string) error { return nil }

func (m *memStore) Close() error { return nil }

var _ ports.KeyValueStore = (*memStore)(nil)

func newTestConfig(t *testing.T) *config.Store {
	t.Helper()
	cfg, err := config.NewStore(newMemStore())
	require.NoError(t, err)
	return cfg
}

// branchesPage wraps a payload JSON document in the page structure the
// client extracts it from
func branchesPage(payload string) string {
	return fmt.Sprintf(`<!DOCTYPE html><html><body>
<div id="repo-content-pjax-container">
<react-app><script type="application/json">%s</script></react-app>
</div>
</body></html>`, payload)
}

const listingJSON = `{
	"payload": {
		"currentPage": 1,
		"hasMore": false,
		"branches": [
			{
				"name": "feature-x",
				"isDefault": false,
				"author": {"login": "alice", "avatarURL": "/a.png", "path": "/alice"},
				"authoredDate": "2026-08-20T10:00:00Z"
			},
			{
				"name": "main",
				"isDefault": true,
				"author": {"login": "bob", "avatarURL": "/b.png", "path": "/bob"},
				"authoredDate": "2026-08-19T09:00:00Z"
			}
		]
	},
	"appPayload": {
		"repo": {"id": 1, "defaultBranch": "main", "name": "repo", "ownerLogin": "owner"}
	}
}`

func TestFetchActiveBranches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/owner/repo/branches/active", r.URL.Path)
		fmt.Fprint(w, branchesPage(listingJSON))
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	branches, defaultBranch, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "owner", Name: "repo"})
	require.NoError(t, err)

	require.NotNil(t, defaultBranch)
	assert.Equal(t, "main", *defaultBranch)
	require.Len(t, branches, 2)
	assert.Equal(t, "feature-x", branches[0].Name)
	assert.Equal(t, "alice", branches[0].Author.Login)
	assert.Equal(t, "2026-08-20T10:00:00Z", branches[0].AuthoredDate)
	assert.Nil(t, branches[0].PullRequest)
}

func TestFetchActiveBranchesEmptyListing(t *testing.T) {
	payload := `{"payload": {"branches": []}, "appPayload": {"repo": {"defaultBranch": "main"}}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, branchesPage(payload))
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	branches, defaultBranch, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "o", Name: "r"})
	require.NoError(t, err)

	assert.Nil(t, branches)
	require.NotNil(t, defaultBranch)
	assert.Equal(t, "main", *defaultBranch)
}

func TestFetchActiveBranchesMissingDefaultBranch(t *testing.T) {
	payload := `{"payload": {"branches": [{"name": "b"}]}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, branchesPage(payload))
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	branches, defaultBranch, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "o", Name: "r"})
	require.NoError(t, err)

	assert.Nil(t, defaultBranch)
	require.Len(t, branches, 1)
}

func TestFetchActiveBranchesPayloadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "no payload element",
			body: "<html><body><p>nothing here</p></body></html>",
		},
		{
			name: "payload is not json",
			body: branchesPage("this is not json"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			client := NewClientForHost(srv.URL, newTestConfig(t))
			_, _, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "o", Name: "r"})
			assert.ErrorIs(t, err, domain.ErrPayloadShape)
		})
	}
}

func TestFetchActiveBranchesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	_, _, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "o", Name: "r"})
	assert.ErrorContains(t, err, "404")
}

func TestFetchDeferredMetadata(t *testing.T) {
	var gotBody map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/owner/repo/branches/deferred_metadata", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("include_authors"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "XMLHttpRequest", r.Header.Get("X-Requested-With"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		fmt.Fprint(w, `{
			"deferredMetadata": {
				"feature-x": {
					"oid": "abc123",
					"aheadBehind": [3, 1],
					"pullRequest": {
						"number": 42,
						"state": "open",
						"reviewableState": "ready",
						"merged": false,
						"permalink": "https://github.com/owner/repo/pull/42"
					}
				},
				"feature-y": {"aheadBehind": [0, 5]}
			}
		}`)
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	metadata, err := client.FetchDeferredMetadata(context.Background(),
		domain.RepoRef{Owner: "owner", Name: "repo"},
		[]string{"feature-x", "feature-y"})
	require.NoError(t, err)

	assert.Equal(t, map[string][]string{"branches": {"feature-x", "feature-y"}}, gotBody)

	require.Len(t, metadata, 2)
	assert.Equal(t, 3, metadata["feature-x"].AheadBehind.Ahead())
	assert.Equal(t, 1, metadata["feature-x"].AheadBehind.Behind())
	require.NotNil(t, metadata["feature-x"].PullRequest)
	assert.Equal(t, 42, metadata["feature-x"].PullRequest.Number)
	assert.Nil(t, metadata["feature-y"].PullRequest)
	assert.Equal(t, 5, metadata["feature-y"].AheadBehind.Behind())
}

func TestFetchDeferredMetadataMissingEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	_, err := client.FetchDeferredMetadata(context.Background(), domain.RepoRef{Owner: "o", Name: "r"}, []string{"b"})
	assert.ErrorIs(t, err, domain.ErrPayloadShape)
}

func TestRequestsForwardConfiguredToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, branchesPage(`{"payload": {"branches": []}, "appPayload": {"repo": {"defaultBranch": "main"}}}`))
	}))
	defer srv.Close()

	cfg := newTestConfig(t)
	require.NoError(t, cfg.Update(config.GitHubToken, "secret-token"))

	client := NewClientForHost(srv.URL, cfg)
	_, _, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "o", Name: "r"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestRequestsOmitAuthorizationWithoutToken(t *testing.T) {
	authSeen := "unset"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authSeen = r.Header.Get("Authorization")
		fmt.Fprint(w, branchesPage(`{"payload": {"branches": []}, "appPayload": {"repo": {"defaultBranch": "main"}}}`))
	}))
	defer srv.Close()

	client := NewClientForHost(srv.URL, newTestConfig(t))
	_, _, err := client.FetchActiveBranches(context.Background(), domain.RepoRef{Owner: "o", Name: "r"})
	require.NoError(t, err)

	assert.Empty(t, authSeen)
}
