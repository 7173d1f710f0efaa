package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ramos/internal/cache"
	"ramos/internal/config"
	"ramos/internal/domain"
	"ramos/internal/logging"
	"ramos/internal/ports"
)

// BranchService runs the two-stage branch data pipeline: an initial listing
// fetch and a deferred-metadata enrichment, each independently cached under
// its own key namespace. Any stage failure aborts the whole pipeline; there
// are no partial results.
type BranchService struct {
	cache  *cache.PersistentCache
	config *config.Store
	source ports.BranchSource
	group  singleflight.Group
	now    func() time.Time

	mu         sync.RWMutex
	session    domain.SessionInfo
	hasSession bool
}

// NewBranchService creates a BranchService.
func NewBranchService(c *cache.PersistentCache, cfg *config.Store, source ports.BranchSource) *BranchService {
	return &BranchService{
		cache:  c,
		config: cfg,
		source: source,
		now:    time.Now,
	}
}

// InitialBranchData returns the active-branches listing for ref, serving a
// fresh cached entry when one exists. The listing is already ordered most
// recent first by the host.
func (s *BranchService) InitialBranchData(ctx context.Context, ref domain.RepoRef) (domain.CachedData, error) {
	key := domain.CacheKey(domain.StageInitial, ref)

	if data, ok := s.freshFromCache(key); ok {
		return data, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the cache while this one
		// waited on the flight group
		if data, ok := s.freshFromCache(key); ok {
			return data, nil
		}

		branches, defaultBranch, err := s.source.FetchActiveBranches(ctx, ref)
		if err != nil {
			return domain.CachedData{}, err
		}

		data := domain.CachedData{Branches: branches, DefaultBranch: defaultBranch}
		if len(branches) == 0 {
			data.Branches = nil
			// A fetch that resolved no usable data at all is not cached, so
			// the next access retries
			if defaultBranch != nil {
				s.store(key, data)
			}
			return data, nil
		}

		s.store(key, data)
		return data, nil
	})
	if err != nil {
		return domain.CachedData{}, err
	}
	return result.(domain.CachedData), nil
}

// FullBranchData returns the enriched branch data for ref: the initial
// listing truncated to the configured cap, merged with ahead/behind and
// pull-request metadata from one batched enrichment call.
func (s *BranchService) FullBranchData(ctx context.Context, ref domain.RepoRef) (domain.CachedData, error) {
	key := domain.CacheKey(domain.StageFull, ref)

	if data, ok := s.freshFromCache(key); ok {
		s.rememberSession(ref, data)
		return data, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		if data, ok := s.freshFromCache(key); ok {
			return data, nil
		}

		initial, err := s.InitialBranchData(ctx, ref)
		if err != nil {
			return domain.CachedData{}, err
		}

		if initial.Branches == nil {
			data := domain.CachedData{Branches: nil, DefaultBranch: initial.DefaultBranch}
			if data.DefaultBranch != nil {
				s.store(key, data)
			}
			return data, nil
		}

		// Truncate before enrichment so only displayed branches incur the
		// metadata cost. Copy: the initial slice may be shared.
		limit := s.config.Int(config.MaxBranches)
		if limit > len(initial.Branches) {
			limit = len(initial.Branches)
		}
		branches := make([]domain.Branch, limit)
		copy(branches, initial.Branches[:limit])

		names := make([]string, len(branches))
		for i, branch := range branches {
			names[i] = branch.Name
		}

		metadata, err := s.source.FetchDeferredMetadata(ctx, ref, names)
		if err != nil {
			return domain.CachedData{}, err
		}

		// Branches missing from the response keep their zero values;
		// rendering tolerates unset enrichment fields
		for i := range branches {
			if meta, ok := metadata[branches[i].Name]; ok {
				branches[i].AheadBehind = meta.AheadBehind
				branches[i].PullRequest = meta.PullRequest
			}
		}

		logging.Logger.Info("Branch enrichment complete",
			"repo", ref.String(),
			"branches", len(branches),
		)

		data := domain.CachedData{Branches: branches, DefaultBranch: initial.DefaultBranch}
		s.store(key, data)
		return data, nil
	})
	if err != nil {
		return domain.CachedData{}, err
	}

	data := result.(domain.CachedData)
	s.rememberSession(ref, data)
	return data, nil
}

// Session returns the last-resolved repository/default-branch triple, if a
// full fetch has succeeded during this process lifetime.
func (s *BranchService) Session() (domain.SessionInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session, s.hasSession
}

// freshFromCache returns cached data only when the entry is younger than the
// configured cache duration. Stale and missing entries both report false;
// the cache itself never filters by age.
func (s *BranchService) freshFromCache(key string) (domain.CachedData, bool) {
	has, err := s.cache.Has(key)
	if err != nil || !has {
		return domain.CachedData{}, false
	}

	entry, ok, err := s.cache.Get(key)
	if err != nil || !ok {
		return domain.CachedData{}, false
	}

	if !entry.Fresh(s.now(), s.config.Duration(config.CacheDuration)) {
		return domain.CachedData{}, false
	}

	logging.Logger.Debug("Cache hit", "key", key, "age", entry.Age(s.now()).String())
	return entry.Data, true
}

// store writes data to the cache; failures are logged, not propagated, since
// a cache write must never fail a successful fetch.
func (s *BranchService) store(key string, data domain.CachedData) {
	entry := domain.CacheEntry{Data: data, Timestamp: s.now().UnixMilli()}
	if err := s.cache.Set(key, entry); err != nil {
		logging.Logger.Error("Failed to write cache entry", "key", key, "error", err)
	}
}

func (s *BranchService) rememberSession(ref domain.RepoRef, data domain.CachedData) {
	if data.Branches == nil || data.DefaultBranch == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = domain.SessionInfo{
		Owner:         ref.Owner,
		Repo:          ref.Name,
		DefaultBranch: *data.DefaultBranch,
	}
	s.hasSession = true
}
