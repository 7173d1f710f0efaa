package ports

import (
	"context"

	"ramos/internal/domain"
)

// BranchSource is the network collaborator for the two fetch stages.
type BranchSource interface {
	// FetchActiveBranches retrieves the branches-overview document for ref and
	// extracts the embedded listing: the active branches (nil when there are
	// none) and the repository's default branch (nil when not reported).
	FetchActiveBranches(ctx context.Context, ref domain.RepoRef) ([]domain.Branch, *string, error)

	// FetchDeferredMetadata retrieves ahead/behind and pull-request data for
	// exactly the given branch names in one batched call, keyed by name.
	// Names absent from the result were not reported by the host.
	FetchDeferredMetadata(ctx context.Context, ref domain.RepoRef, names []string) (map[string]domain.BranchMetadata, error)
}
