package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"ramos/internal/cache"
	"ramos/internal/logging"
	"ramos/internal/ports"
	"ramos/internal/services"
	"ramos/internal/theme"
)

// statusClearDelay is how long transient status messages stay visible
const statusClearDelay = 3 * time.Second

type Model struct {
	baseURL      string                // Host root for building branch URLs
	cache        *cache.PersistentCache
	cursor       int                   // Selected row in the branch table
	err          error                 // Last load error, cleared on refresh
	keys         KeyMap                // Keyboard shortcuts
	loading      bool
	opener       ports.BrowserOpener   // Opens branch URLs in the browser
	orchestrator *services.Orchestrator
	resolver     ports.RepoResolver    // Resolves the target repository
	result       services.LoadResult   // Last successful load
	spinner      spinner.Model
	status       string                // Transient status line
	version      string
	view         ports.PageClassifier  // Gate checked before every load
	width        int
}

func NewModel(
	orchestrator *services.Orchestrator,
	c *cache.PersistentCache,
	resolver ports.RepoResolver,
	view ports.PageClassifier,
	opener ports.BrowserOpener,
	baseURL string,
	version string,
) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.SpinnerStyle

	return &Model{
		baseURL:      baseURL,
		cache:        c,
		keys:         NewKeyMap(),
		loading:      true,
		opener:       opener,
		orchestrator: orchestrator,
		resolver:     resolver,
		spinner:      sp,
		version:      version,
		view:         view,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadBranches())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case branchesLoadedMsg:
		m.loading = false
		m.err = nil
		m.result = msg.result
		if m.cursor >= len(m.result.Data.Branches) {
			m.cursor = 0
		}
		return m, nil

	case loadFailedMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case cacheCleanedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("cache cleanup failed: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("removed %d expired cache entries", msg.removed)
		}
		return m, clearStatusAfterDelay()

	case statusClearedMsg:
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.result.Data.Branches)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		m.err = nil
		return m, tea.Batch(m.spinner.Tick, m.loadBranches())

	case key.Matches(msg, m.keys.CleanCache):
		return m, m.cleanCache()

	case key.Matches(msg, m.keys.OpenBranch):
		branches := m.result.Data.Branches
		if m.cursor < len(branches) {
			m.openTree(branches[m.cursor].Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.OpenDefault):
		// Works off the remembered session rather than the visible result, so
		// the shortcut survives an in-flight refresh
		if session, ok := m.orchestrator.Session(); ok {
			m.openURL(fmt.Sprintf("%s/%s/%s/tree/%s", m.baseURL, session.Owner, session.Repo, session.DefaultBranch))
		}
		return m, nil
	}

	return m, nil
}

// loadBranches runs one orchestrated load cycle off the update loop
func (m *Model) loadBranches() tea.Cmd {
	return func() tea.Msg {
		result, err := m.orchestrator.Load(context.Background(), m.view, m.resolver)
		if err != nil {
			logging.Logger.Error("Branch load failed", "error", err)
			return loadFailedMsg{err: err}
		}
		return branchesLoadedMsg{result: result}
	}
}

func (m *Model) cleanCache() tea.Cmd {
	return func() tea.Msg {
		removed, err := m.cache.Cleanup(0)
		return cacheCleanedMsg{removed: removed, err: err}
	}
}

func (m *Model) openTree(branch string) {
	m.openURL(fmt.Sprintf("%s/%s/tree/%s", m.baseURL, m.result.Ref.String(), branch))
}

func (m *Model) openURL(url string) {
	if err := m.opener.Open(url); err != nil {
		logging.Logger.Warn("Failed to open browser", "url", url, "error", err)
	}
}

func clearStatusAfterDelay() tea.Cmd {
	return tea.Tick(statusClearDelay, func(time.Time) tea.Msg {
		return statusClearedMsg{}
	})
}

func (m *Model) View() string {
	title := theme.TitleStyle.Render("ramos") +
		theme.VersionStyle.Render(" "+m.version)
	if !m.result.Ref.IsZero() {
		title += theme.HeaderStyle.Render("  " + m.result.Ref.String())
	}

	body := title + "\n"

	switch {
	case m.loading:
		body += "\n " + m.spinner.View() + theme.MutedStyle.Render(" loading active branches...") + "\n"
	case m.err != nil:
		body += "\n " + theme.ErrorStyle.Render("Error: "+m.err.Error()) + "\n" +
			" " + theme.MutedStyle.Render("enable debug logging (RAMOS_DEBUG=true) for details") + "\n"
	case m.result.Skipped:
		body += "\n " + theme.MutedStyle.Render("not a repository root, nothing to show") + "\n"
	case m.result.Data.Branches == nil:
		body += "\n " + theme.MutedStyle.Render("no active branches") + "\n"
	default:
		body += "\n" + m.renderBranchTable() + "\n"
	}

	if m.status != "" {
		body += "\n " + theme.MutedStyle.Render(m.status) + "\n"
	}

	body += m.renderHelp()
	return body
}

func (m *Model) renderHelp() string {
	help := ""
	for i, binding := range m.keys.ShortHelp() {
		if i > 0 {
			help += theme.MutedStyle.Render(" • ")
		}
		help += theme.HelpShortcutStyle.Render(binding.Help().Key) +
			theme.MutedStyle.Render(" "+binding.Help().Desc)
	}
	return theme.HelpStyle.Render(help)
}
