package services

import (
	"context"
	"time"

	"ramos/internal/cache"
	"ramos/internal/logging"
)

// cleanupInterval is how often the background sweep prunes expired cache
// entries while a long-lived process (TUI, SSH server) is running.
const cleanupInterval = 10 * time.Minute

// MaintenanceService keeps the persistent cache tidy over the process
// lifetime. All of its work is best-effort: failures are logged and never
// surfaced to the caller.
type MaintenanceService struct {
	cache *cache.PersistentCache
}

// NewMaintenanceService creates a MaintenanceService.
func NewMaintenanceService(c *cache.PersistentCache) *MaintenanceService {
	return &MaintenanceService{cache: c}
}

// RunStartup performs one maintenance pass, intended for process start.
func (m *MaintenanceService) RunStartup() {
	if err := m.cache.PerformMaintenance(); err != nil {
		logging.Logger.Error("Startup cache maintenance failed", "error", err)
	}
}

// Start launches the periodic cleanup sweep. It returns immediately; the
// sweep stops when ctx is cancelled.
func (m *MaintenanceService) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := m.cache.Cleanup(0)
				if err != nil {
					logging.Logger.Warn("Periodic cache cleanup failed", "error", err)
					continue
				}
				if removed > 0 {
					logging.Logger.Info("Periodic cache cleanup", "removed", removed)
				}
			}
		}
	}()
}
