package cmd

import (
	"os"

	adapterbrowser "ramos/internal/adapters/browser"
	adaptergit "ramos/internal/adapters/git"
	adaptergithub "ramos/internal/adapters/github"
	adapterstorage "ramos/internal/adapters/storage"
	"ramos/internal/cache"
	"ramos/internal/config"
	"ramos/internal/domain"
	"ramos/internal/ports"
	"ramos/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	BaseURL      string
	Branches     *services.BranchService
	Cache        *cache.PersistentCache
	Config       *config.Store
	Maintenance  *services.MaintenanceService
	Opener       ports.BrowserOpener
	Orchestrator *services.Orchestrator

	// Internal - for cleanup only
	store *adapterstorage.SQLiteStore
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer() (*Container, error) {
	store, err := adapterstorage.NewSQLiteStore(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewStore(store)
	if err != nil {
		store.Close()
		return nil, err
	}

	branchCache := cache.New(store, cfg)
	branches := services.NewBranchService(branchCache, cfg, adaptergithub.NewClient(cfg))

	return &Container{
		BaseURL:      adaptergithub.DefaultBaseURL,
		Branches:     branches,
		Cache:        branchCache,
		Config:       cfg,
		Maintenance:  services.NewMaintenanceService(branchCache),
		Opener:       adapterbrowser.NewOpener(),
		Orchestrator: services.NewOrchestrator(branches),
		store:        store,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}

// resolverFor picks the repository resolver: an explicit owner/repo argument
// wins, otherwise the origin remote of the current working directory.
func resolverFor(repoArg string) (ports.RepoResolver, error) {
	if repoArg != "" {
		ref, err := adaptergit.ParseRepoArg(repoArg)
		if err != nil {
			return nil, err
		}
		return adaptergit.StaticResolver{Ref: ref}, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return adaptergit.NewRemoteResolver(cwd), nil
}

// refFor resolves the target repository up front, for one-shot commands
func refFor(repoArg string) (domain.RepoRef, error) {
	resolver, err := resolverFor(repoArg)
	if err != nil {
		return domain.RepoRef{}, err
	}
	return resolver.Resolve()
}
