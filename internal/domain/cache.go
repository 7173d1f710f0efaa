package domain

import "time"

// Cache key stages. Keys take the form "<stage>:<owner>/<repo>" so the two
// pipeline stages expire independently.
const (
	StageInitial = "initial-branch-data"
	StageFull    = "full-branch-data"
)

// CacheKey builds the cache key for a pipeline stage and repository.
func CacheKey(stage string, ref RepoRef) string {
	return stage + ":" + ref.String()
}

// CachedData is the result of a pipeline stage. Branches is nil iff the
// repository has no active branches; it is never an empty non-nil slice.
type CachedData struct {
	Branches      []Branch `json:"branchesData"`
	DefaultBranch *string  `json:"defaultBranch"`
}

// CacheEntry wraps cached data with its write time in epoch milliseconds.
type CacheEntry struct {
	Data      CachedData `json:"data"`
	Timestamp int64      `json:"timestamp"`
}

// Age returns how long ago the entry was written.
func (e CacheEntry) Age(now time.Time) time.Duration {
	return now.Sub(time.UnixMilli(e.Timestamp))
}

// Fresh reports whether the entry is younger than maxAge. The cache itself
// never filters by age; callers run this check after Get.
func (e CacheEntry) Fresh(now time.Time, maxAge time.Duration) bool {
	return e.Age(now) < maxAge
}

// CacheStats summarizes the state of the persistent cache namespace.
type CacheStats struct {
	Total              int `json:"total"`
	Valid              int `json:"valid"`
	Expired            int `json:"expired"`
	EstimatedSizeBytes int `json:"estimatedSizeBytes"`
}
