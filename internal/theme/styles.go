package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	AuthorStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	DateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Pull request state styles
var (
	PRClosedStyle = lipgloss.NewStyle().
			Foreground(ColorPRClosed)

	PRDraftStyle = lipgloss.NewStyle().
			Foreground(ColorPRDraft)

	PRMergedStyle = lipgloss.NewStyle().
			Foreground(ColorPRMerged)

	PROpenStyle = lipgloss.NewStyle().
			Foreground(ColorPROpen)
)

// Divergence styles
var (
	AheadStyle = lipgloss.NewStyle().
			Foreground(ColorAhead)

	BehindStyle = lipgloss.NewStyle().
			Foreground(ColorBehind)
)

// Help styles
var (
	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	HelpShortcutStyle = lipgloss.NewStyle().
				Foreground(ColorHighlight).
				Bold(true)
)

// Default branch marker style
var DefaultBranchStyle = lipgloss.NewStyle().
	Foreground(ColorDefault)

// Muted style for empty states and secondary lines
var MutedStyle = lipgloss.NewStyle().
	Foreground(ColorMuted)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(ColorSpinner)

// Error style
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorError).
	Bold(true)

// Dialog header styles
var (
	AppNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	VersionStyle = lipgloss.NewStyle().
			Foreground(ColorVersion)
)
