package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionModel manages the full player session flow: table <-> scoreboard.
// It is the top-level model for local play and for SSH sessions.
type SessionModel struct {
	opts       Options
	game       GameModel
	scoreboard *ScoreboardModel
	width      int
	height     int
	quitting   bool
}

// NewSessionModel creates a new session model and deals the first hand.
func NewSessionModel(opts Options) SessionModel {
	return SessionModel{
		opts:   opts,
		game:   NewGameModel(opts),
		width:  opts.Width,
		height: opts.Height,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	// The game clock keeps running behind the scoreboard.
	if _, ok := msg.(TickMsg); ok {
		return m.updateGame(msg)
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m.updateGame(msg)
}

// updateGame handles updates when the table is shown.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.WantsScoreboard() && m.scoreboard == nil {
		sb := NewScoreboardModel(m.opts.Store, m.game.Game().Seed(), m.width, m.height)
		m.scoreboard = &sb
		return m, tea.Batch(cmd, sb.Init())
	}

	return m, cmd
}

// updateScoreboard handles updates when the scoreboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	if m.scoreboard.IsQuitting() {
		// Quitting from the scoreboard still records the deal in progress.
		newGame, _ := m.game.handleIntent(IntentQuit)
		if gameModel, ok := newGame.(GameModel); ok {
			m.game = gameModel
		}
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		m.game.openScoreboard = false
		return m, nil
	}

	// Keep the table's size current for when we return.
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		newGame, _ := m.game.Update(msg)
		if gameModel, ok := newGame.(GameModel); ok {
			m.game = gameModel
		}
	}

	return m, cmd
}

// Game returns the table model.
func (m SessionModel) Game() GameModel {
	return m.game
}

// ShowingScoreboard reports whether the scoreboard is on screen.
func (m SessionModel) ShowingScoreboard() bool {
	return m.scoreboard != nil
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.game.View()
}
