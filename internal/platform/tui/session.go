package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/astro-arcade/internal/core"
	"github.com/vovakirdan/astro-arcade/internal/registry"
	"github.com/vovakirdan/astro-arcade/internal/storage"
)

// SessionModel runs a whole arcade visit in one program: menu, games and
// scoreboard, returning to the menu until the player quits. It backs both
// SSH sessions and the local menu command.
type SessionModel struct {
	store      *storage.Store
	config     core.RuntimeConfig
	username   string
	pinSeed    bool // every game reuses config.Seed
	menu       MenuModel
	scoreboard *ScoreboardModel
	gameModel  *Model
	painter    *Painter
	quitting   bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		menu:     NewMenuModel(store, cfg.ScreenW),
		painter:  localPainter,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch {
	case m.gameModel != nil:
		return m.updateGame(msg)
	case m.scoreboard != nil:
		return m.updateScoreboard(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu forwards to the menu and acts on the player's choice.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	choice, gameID := m.menu.Choice()
	switch choice {
	case choiceQuit:
		m.quitting = true
		return m, tea.Quit

	case choiceScores:
		sb := NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &sb
		return m, sb.Init()

	case choicePlay:
		game, err := registry.Create(gameID)
		if err != nil {
			m.menu = NewMenuModel(m.store, m.config.ScreenW)
			return m, nil
		}
		if !m.pinSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		gm := NewModel(game, m.store, m.config, WithPainter(m.painter))
		m.gameModel = &gm
		return m, m.gameModel.Init()
	}
	return m, cmd
}

// updateScoreboard handles updates while the scoreboard is open.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.scoreboard = nil
		m.menu = NewMenuModel(m.store, m.config.ScreenW)
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	// Check if user quit game (back to menu)
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		// Rebuild the menu so it shows fresh high scores
		m.menu = NewMenuModel(m.store, m.config.ScreenW)
		return m, m.menu.Init()
	}

	// Check if user quit entirely
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.gameModel != nil:
		return m.gameModel.View()
	case m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// Username returns the SSH user that owns the session.
func (m SessionModel) Username() string {
	return m.username
}

// RunSession runs a local session on the process's terminal. With pinSeed
// every game starts from cfg.Seed, otherwise each gets a fresh one.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, username string, pinSeed bool) error {
	m := NewSessionModel(store, cfg, username)
	m.pinSeed = pinSeed
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
