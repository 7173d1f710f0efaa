package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"ramos/internal/logging"
	"ramos/internal/ports"
)

// Opener launches URLs with the platform's default browser.
type Opener struct{}

// Verify interface compliance at compile time
var _ ports.BrowserOpener = (*Opener)(nil)

// NewOpener creates a browser opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open implements ports.BrowserOpener.
func (o *Opener) Open(url string) error {
	logging.Logger.Debug("Opening URL in browser", "url", url)

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
