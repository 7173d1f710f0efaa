package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"ramos/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Run    RunCmd    `cmd:"" help:"Browse active branches in the TUI (default)" default:"1"`
	List   ListCmd   `cmd:"list" help:"Print active branches and exit"`
	Cache  CacheCmd  `cmd:"cache" help:"Inspect and maintain the branch cache"`
	Config ConfigCmd `cmd:"config" help:"Show and change settings"`
	Serve  ServeCmd  `cmd:"serve" help:"Serve the branch browser over SSH"`

	// Internal fields (not flags)
	Container  *Container `kong:"-"`
	AppVersion string     `kong:"-"`
}

// AfterApply initializes logging after CLI parsing and wires dependencies
func (c *CLI) AfterApply() error {
	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Propagate debug settings so child processes append to the same file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("RAMOS_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("RAMOS_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != 1000 {
		os.Setenv("RAMOS_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	// Container creation needs logging initialized first, GORM's logger
	// writes through logging.Logger
	container, err := NewContainer()
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
