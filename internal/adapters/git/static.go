package git

import "ramos/internal/domain"

// StaticResolver resolves to a repository fixed at construction time, for
// invocations that name the repository explicitly instead of deriving it
// from a checkout.
type StaticResolver struct {
	Ref domain.RepoRef
}

func (r StaticResolver) Resolve() (domain.RepoRef, error) {
	return r.Ref, nil
}
