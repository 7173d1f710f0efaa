package ui

import (
	"fmt"
	"strings"
	"time"

	"ramos/internal/domain"
	"ramos/internal/theme"
)

func (m *Model) renderBranchTable() string {
	var b strings.Builder
	defaultBranch := ""
	if m.result.Data.DefaultBranch != nil {
		defaultBranch = *m.result.Data.DefaultBranch
	}

	for i, branch := range m.result.Data.Branches {
		marker := "  "
		if i == m.cursor {
			marker = theme.HelpShortcutStyle.Render("> ")
		}
		b.WriteString(" " + marker + renderBranchRow(branch, branch.Name == defaultBranch) + "\n")
	}
	return b.String()
}

func renderBranchRow(branch domain.Branch, isDefault bool) string {
	parts := []string{theme.BranchStyle.Render(branch.Name)}

	if isDefault {
		parts = append(parts, theme.DefaultBranchStyle.Render("(default)"))
	}

	if branch.Author.Login != "" {
		parts = append(parts, theme.AuthorStyle.Render(branch.Author.Login))
	}

	if branch.AuthoredDate != "" {
		parts = append(parts, theme.DateStyle.Render(relativeTime(branch.AuthoredDate)))
	}

	if divergence := renderDivergence(branch.AheadBehind); divergence != "" {
		parts = append(parts, divergence)
	}

	if pr := renderPullRequest(branch.PullRequest); pr != "" {
		parts = append(parts, pr)
	}

	return strings.Join(parts, " ")
}

func renderDivergence(ab domain.AheadBehind) string {
	if ab.Ahead() == 0 && ab.Behind() == 0 {
		return ""
	}
	return theme.AheadStyle.Render(fmt.Sprintf("↑%d", ab.Ahead())) +
		theme.BehindStyle.Render(fmt.Sprintf("↓%d", ab.Behind()))
}

func renderPullRequest(pr *domain.PullRequest) string {
	if pr == nil {
		return ""
	}
	label := fmt.Sprintf("#%d", pr.Number)
	switch {
	case pr.Merged:
		return theme.PRMergedStyle.Render(label + " merged")
	case pr.State == domain.PRStateClosed:
		return theme.PRClosedStyle.Render(label + " closed")
	case pr.ReviewableState == domain.ReviewStateDraft:
		return theme.PRDraftStyle.Render(label + " draft")
	default:
		return theme.PROpenStyle.Render(label + " open")
	}
}

// relativeTime renders an RFC 3339 timestamp as a coarse "2d ago" string.
// Unparseable values pass through unchanged.
func relativeTime(value string) string {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
