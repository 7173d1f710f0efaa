package services

import (
	"context"

	"ramos/internal/domain"
	"ramos/internal/logging"
	"ramos/internal/ports"
)

// PageView is a static ports.PageClassifier for contexts where the view kind
// is known up front, such as a CLI invocation targeting a repository root.
type PageView struct {
	Tree     bool
	Root     bool
	NotFound bool
}

func (v PageView) IsRepoTree() bool { return v.Tree }
func (v PageView) IsRepoRoot() bool { return v.Root }
func (v PageView) Is404() bool      { return v.NotFound }

// LoadResult is the outcome of one orchestrated load.
type LoadResult struct {
	Ref  domain.RepoRef
	Data domain.CachedData
	// Skipped reports that the view predicates rejected the load before any
	// fetch happened. Ref and Data are zero in that case.
	Skipped bool
}

// Orchestrator gates and drives one load cycle: classify the current view,
// resolve the repository, then run the full pipeline.
type Orchestrator struct {
	branches *BranchService
}

// NewOrchestrator creates an Orchestrator over the given branch service.
func NewOrchestrator(branches *BranchService) *Orchestrator {
	return &Orchestrator{branches: branches}
}

// Session exposes the branch service's last-resolved session info, read by
// the default-branch shortcut.
func (o *Orchestrator) Session() (domain.SessionInfo, bool) {
	return o.branches.Session()
}

// Load runs one cycle. It proceeds only when the view is a repository tree
// at the repository root and not a 404; any other view yields a skipped
// result with no error.
func (o *Orchestrator) Load(ctx context.Context, view ports.PageClassifier, resolver ports.RepoResolver) (LoadResult, error) {
	if !view.IsRepoTree() || !view.IsRepoRoot() || view.Is404() {
		logging.Logger.Debug("View rejected, skipping load",
			"tree", view.IsRepoTree(),
			"root", view.IsRepoRoot(),
			"notFound", view.Is404(),
		)
		return LoadResult{Skipped: true}, nil
	}

	ref, err := resolver.Resolve()
	if err != nil {
		return LoadResult{}, err
	}

	data, err := o.branches.FullBranchData(ctx, ref)
	if err != nil {
		return LoadResult{}, err
	}

	return LoadResult{Ref: ref, Data: data}, nil
}
