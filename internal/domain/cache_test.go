package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	ref := RepoRef{Owner: "charmbracelet", Name: "bubbletea"}

	assert.Equal(t, "initial-branch-data:charmbracelet/bubbletea", CacheKey(StageInitial, ref))
	assert.Equal(t, "full-branch-data:charmbracelet/bubbletea", CacheKey(StageFull, ref))
}

func TestCacheEntryFresh(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	maxAge := 5 * time.Minute

	tests := []struct {
		name      string
		writtenAt time.Time
		fresh     bool
	}{
		{
			name:      "just written",
			writtenAt: now,
			fresh:     true,
		},
		{
			name:      "one second before expiry",
			writtenAt: now.Add(-maxAge + time.Second),
			fresh:     true,
		},
		{
			name:      "exactly at expiry",
			writtenAt: now.Add(-maxAge),
			fresh:     false,
		},
		{
			name:      "long expired",
			writtenAt: now.Add(-time.Hour),
			fresh:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CacheEntry{Timestamp: tt.writtenAt.UnixMilli()}
			assert.Equal(t, tt.fresh, entry.Fresh(now, maxAge))
		})
	}
}

func TestCacheEntryAge(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	entry := CacheEntry{Timestamp: now.Add(-90 * time.Second).UnixMilli()}

	assert.Equal(t, 90*time.Second, entry.Age(now))
}
