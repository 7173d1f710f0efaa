package theme

import "github.com/charmbracelet/lipgloss"

// Color is an alias for lipgloss.Color for convenience
type Color = lipgloss.Color

// Brand colors
const (
	ColorPrimary   Color = "99" // Purple - app name, titles
	ColorSecondary Color = "86" // Cyan - subtitles
)

// Pull request state colors
const (
	ColorPRClosed Color = "1"   // Red - closed without merge
	ColorPRDraft  Color = "8"   // Gray - draft
	ColorPRMerged Color = "141" // Purple - merged
	ColorPROpen   Color = "2"   // Green - open and ready
)

// UI semantic colors
const (
	ColorError     Color = "196" // Bright red
	ColorHighlight Color = "255" // White - emphasis
	ColorMuted     Color = "241" // Gray - secondary text
	ColorNormal    Color = "250" // Default text
	ColorSubtle    Color = "245" // Light gray - labels
	ColorVersion   Color = "240" // Dark gray
)

// Accent colors
const (
	ColorDefault Color = "226" // Yellow - default branch marker
	ColorSpinner Color = "205" // Pink
)

// Divergence colors
const (
	ColorAhead  Color = "2" // Green
	ColorBehind Color = "1" // Red
)
