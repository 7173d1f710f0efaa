package ports

import "ramos/internal/domain"

// PageClassifier answers the three page-classification predicates the
// orchestrator checks before doing any work. The orchestrator treats them as
// opaque; only the combination (tree AND root AND NOT 404) proceeds.
type PageClassifier interface {
	IsRepoTree() bool
	IsRepoRoot() bool
	Is404() bool
}

// RepoResolver resolves the repository identity from the current navigation
// context (an explicit argument, a URL, or the working directory's git remote).
type RepoResolver interface {
	Resolve() (domain.RepoRef, error)
}

// BrowserOpener opens a URL in the user's browser.
type BrowserOpener interface {
	Open(url string) error
}
