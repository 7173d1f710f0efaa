package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ramos/internal/domain"
)

func TestRenderPullRequest(t *testing.T) {
	tests := []struct {
		name string
		pr   *domain.PullRequest
		want string
	}{
		{
			name: "no pull request",
			pr:   nil,
			want: "",
		},
		{
			name: "open and ready",
			pr:   &domain.PullRequest{Number: 12, State: domain.PRStateOpen, ReviewableState: domain.ReviewStateReady},
			want: "#12 open",
		},
		{
			name: "draft",
			pr:   &domain.PullRequest{Number: 13, State: domain.PRStateOpen, ReviewableState: domain.ReviewStateDraft},
			want: "#13 draft",
		},
		{
			name: "merged wins over state",
			pr:   &domain.PullRequest{Number: 14, State: domain.PRStateClosed, Merged: true},
			want: "#14 merged",
		},
		{
			name: "closed without merge",
			pr:   &domain.PullRequest{Number: 15, State: domain.PRStateClosed},
			want: "#15 closed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Styles may add ANSI sequences depending on the test terminal,
			// so compare content only
			assert.Contains(t, renderPullRequest(tt.pr), tt.want)
		})
	}
}

func TestRenderDivergence(t *testing.T) {
	assert.Empty(t, renderDivergence(domain.AheadBehind{}))
	assert.Contains(t, renderDivergence(domain.AheadBehind{3, 1}), "↑3")
	assert.Contains(t, renderDivergence(domain.AheadBehind{3, 1}), "↓1")
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "just now", relativeTime(time.Now().Format(time.RFC3339)))
	assert.Equal(t, "2h ago", relativeTime(time.Now().Add(-2*time.Hour).Format(time.RFC3339)))
	assert.Equal(t, "3d ago", relativeTime(time.Now().Add(-72*time.Hour).Format(time.RFC3339)))

	// Unparseable values pass through for display as-is
	assert.Equal(t, "yesterday-ish", relativeTime("yesterday-ish"))
}
