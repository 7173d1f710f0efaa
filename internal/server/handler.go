package server

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"

	"ramos/internal/adapters/browser"
	"ramos/internal/adapters/git"
	"ramos/internal/adapters/github"
	"ramos/internal/adapters/storage"
	"ramos/internal/cache"
	"ramos/internal/config"
	"ramos/internal/logging"
	"ramos/internal/services"
	"ramos/internal/ui"
)

// sessionModel wraps ui.Model to close the per-session store on quit
type sessionModel struct {
	*ui.Model
	sessionID string
	startTime time.Time
	store     *storage.SQLiteStore
}

func (s *sessionModel) Init() tea.Cmd {
	return s.Model.Init()
}

func (s *sessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.QuitMsg); ok {
		duration := time.Since(s.startTime)

		if err := s.store.Close(); err != nil {
			logging.Logger.Error("Failed to close store for SSH session",
				"error", err,
				"session_id", s.sessionID,
				"duration", duration.String())
		}

		logging.Logger.Info("SSH session ended",
			"session_id", s.sessionID,
			"duration", duration.String())
	}

	updatedModel, cmd := s.Model.Update(msg)
	if m, ok := updatedModel.(*ui.Model); ok {
		s.Model = m
	}
	return s, cmd
}

func (s *sessionModel) View() string {
	return s.Model.View()
}

// teaHandler creates a Bubbletea model for each SSH session. The target
// repository comes from the SSH command line: ssh host -- owner/repo
func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	sessionID := fmt.Sprintf("%s@%s", sess.User(), sess.RemoteAddr().String())

	logging.Logger.Info("New SSH session",
		"session_id", sessionID,
		"user", sess.User(),
		"remote_addr", sess.RemoteAddr().String(),
		"term", pty.Term,
		"window", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

	args := sess.Command()
	if len(args) == 0 {
		return errorModel{fmt.Errorf("no repository given, use: ssh %s@host -- owner/repo", sess.User())}, nil
	}

	ref, err := git.ParseRepoArg(args[0])
	if err != nil {
		return errorModel{err}, nil
	}

	store, err := storage.NewSQLiteStore(s.dbPath)
	if err != nil {
		logging.Logger.Error("Failed to open database for SSH session",
			"error", err,
			"session_id", sessionID)
		return errorModel{err}, nil
	}

	cfg, err := config.NewStore(store)
	if err != nil {
		logging.Logger.Error("Failed to load configuration for SSH session",
			"error", err,
			"session_id", sessionID)
		store.Close()
		return errorModel{err}, nil
	}

	branchCache := cache.New(store, cfg)
	branches := services.NewBranchService(branchCache, cfg, github.NewClientForHost(s.baseURL, cfg))
	orchestrator := services.NewOrchestrator(branches)

	model := ui.NewModel(
		orchestrator,
		branchCache,
		git.StaticResolver{Ref: ref},
		services.PageView{Tree: true, Root: true},
		browser.NewOpener(),
		s.baseURL,
		s.version,
	)

	wrappedModel := &sessionModel{
		Model:     model,
		sessionID: sessionID,
		startTime: time.Now(),
		store:     store,
	}

	return wrappedModel, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// errorModel is a simple model that displays an error
type errorModel struct {
	err error
}

func (e errorModel) Init() tea.Cmd {
	return nil
}

func (e errorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return e, tea.Quit
}

func (e errorModel) View() string {
	return fmt.Sprintf("Error: %v\n", e.err)
}
