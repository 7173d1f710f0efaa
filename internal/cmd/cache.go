package cmd

import (
	"encoding/json"
	"fmt"
	"time"
)

// CacheCmd groups cache inspection and maintenance commands
type CacheCmd struct {
	Stats       CacheStatsCmd       `cmd:"stats" help:"Show cache entry counts and size" default:"1"`
	Cleanup     CacheCleanupCmd     `cmd:"cleanup" help:"Remove expired cache entries"`
	Clear       CacheClearCmd       `cmd:"clear" help:"Remove all cache entries"`
	Maintenance CacheMaintenanceCmd `cmd:"maintenance" help:"Run the startup maintenance pass"`
}

// CacheStatsCmd displays cache statistics
type CacheStatsCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the stats command
func (s *CacheStatsCmd) Run(cli *CLI) error {
	stats, err := cli.Container.Cache.Stats(0)
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	if s.Format == "json" {
		out, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Total entries:   %d\n", stats.Total)
	fmt.Printf("Valid entries:   %d\n", stats.Valid)
	fmt.Printf("Expired entries: %d\n", stats.Expired)
	fmt.Printf("Estimated size:  %d bytes\n", stats.EstimatedSizeBytes)
	return nil
}

// CacheCleanupCmd removes expired entries
type CacheCleanupCmd struct {
	MaxAge int `help:"Age threshold in minutes (0 = configured cache duration)" default:"0"`
}

// Run executes the cleanup command
func (c *CacheCleanupCmd) Run(cli *CLI) error {
	removed, err := cli.Container.Cache.Cleanup(time.Duration(c.MaxAge) * time.Minute)
	if err != nil {
		return fmt.Errorf("failed to clean cache: %w", err)
	}
	fmt.Printf("Removed %d expired cache entries\n", removed)
	return nil
}

// CacheClearCmd removes every cache entry
type CacheClearCmd struct{}

// Run executes the clear command
func (c *CacheClearCmd) Run(cli *CLI) error {
	removed, err := cli.Container.Cache.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Printf("Removed %d cache entries\n", removed)
	return nil
}

// CacheMaintenanceCmd runs the same best-effort pass the TUI runs at startup
type CacheMaintenanceCmd struct{}

// Run executes the maintenance command
func (m *CacheMaintenanceCmd) Run(cli *CLI) error {
	cli.Container.Maintenance.RunStartup()
	fmt.Println("Maintenance pass complete")
	return nil
}
