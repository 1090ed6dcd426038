package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/klondike"
	"github.com/vovakirdan/tui-solitaire/internal/storage"
)

// Cursor slots: stock, waste, four foundations, then the seven tableau piles.
const (
	slotStock      = 0
	slotWaste      = 1
	slotFoundation = 2
	slotTableau    = slotFoundation + klondike.FoundationCount
	slotCount      = slotTableau + klondike.TableauCount
)

// Options configures a game model.
type Options struct {
	Config config.KlondikeConfig
	Store  *storage.Store // Optional; nil disables result saving
	Logger *log.Logger    // Optional; nil discards

	// Seed of the first deal. Nil draws one from NewSeed.
	Seed *int64

	// NewSeed supplies seeds for fresh deals. Defaults to the wall clock.
	NewSeed func() int64

	// Initial terminal size, until the first resize message arrives.
	Width  int
	Height int
}

// ScoringFromConfig converts the YAML scoring section to engine rules.
func ScoringFromConfig(c config.ScoringConfig) klondike.Scoring {
	return klondike.Scoring{
		Foundation:       c.Foundation,
		Reveal:           c.Reveal,
		RecyclePenalty:   c.RecyclePenalty,
		FoundationReturn: c.FoundationReturn,
	}
}

// GameModel is the Bubble Tea model for one Klondike table.
type GameModel struct {
	game    *klondike.Game
	cfg     config.KlondikeConfig
	store   *storage.Store
	logger  *log.Logger
	newSeed func() int64

	keys KeyMap
	help help.Model

	cursor int            // Selected slot
	depth  int            // Cards below the top on a tableau slot
	held   *klondike.Card // Picked-up card, nil when hands are empty
	status string

	prompt    textinput.Model // Deal number entry
	prompting bool

	saved          bool // Whether the current deal's result has been stored
	quitting       bool
	openScoreboard bool
	width          int
	height         int
}

// NewGameModel creates a model and deals the first hand.
func NewGameModel(opts Options) GameModel {
	if opts.NewSeed == nil {
		opts.NewSeed = func() int64 { return time.Now().UnixNano() }
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	var seed int64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = opts.NewSeed()
	}

	g := klondike.New(klondike.WithScoring(ScoringFromConfig(opts.Config.Scoring)))
	g.Start(seed)
	opts.Logger.Debug("deal", "seed", seed)

	h := help.New()
	h.Width = opts.Width

	p := textinput.New()
	p.Prompt = "Deal #"
	p.Placeholder = "number"
	p.CharLimit = 20

	return GameModel{
		game:    g,
		cfg:     opts.Config,
		store:   opts.Store,
		logger:  opts.Logger,
		newSeed: opts.NewSeed,
		keys:    DefaultKeyMap(),
		help:    h,
		prompt:  p,
		cursor:  slotTableau,
		width:   opts.Width,
		height:  opts.Height,
	}
}

// Init starts the game clock.
func (m GameModel) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.prompting {
			return m.updatePrompt(msg)
		}
		return m.handleIntent(m.keys.MapKey(msg))

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.game.Tick()
		return m, tickCmd()
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updatePrompt feeds keys to the deal number entry.
func (m GameModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m.handleIntent(IntentQuit)
	case tea.KeyEsc:
		m.closePrompt()
		m.status = ""
		return m, nil
	case tea.KeyEnter:
		text := m.prompt.Value()
		m.closePrompt()
		m.gotoDeal(text)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *GameModel) closePrompt() {
	m.prompting = false
	m.prompt.Reset()
	m.prompt.Blur()
}

// gotoDeal deals the number the player typed. Anything that is not a
// number replays the current deal.
func (m *GameModel) gotoDeal(text string) {
	m.recordResult()
	if m.game.StartText(text) {
		m.resetTable(fmt.Sprintf("Deal #%d", m.game.Seed()))
		return
	}
	m.resetTable(fmt.Sprintf("%q is not a deal number, deal #%d restarted", text, m.game.Seed()))
}

// handleIntent applies one player intent.
func (m GameModel) handleIntent(in Intent) (tea.Model, tea.Cmd) {
	m.openScoreboard = false

	switch in {
	case IntentQuit:
		m.recordResult()
		m.quitting = true
		return m, tea.Quit

	case IntentLeft:
		m.moveCursor(-1)
	case IntentRight:
		m.moveCursor(1)
	case IntentUp:
		m.changeDepth(1)
	case IntentDown:
		m.changeDepth(-1)

	case IntentSelect:
		m.selectSlot()
	case IntentCancel:
		m.held = nil
		m.status = ""
	case IntentDraw:
		m.held = nil
		m.draw()

	case IntentAutoMove:
		m.autoMove()
	case IntentAutoStack:
		m.held = nil
		m.autoStack()

	case IntentRestart:
		m.recordResult()
		m.game.Restart()
		m.resetTable(fmt.Sprintf("Deal #%d restarted", m.game.Seed()))
	case IntentNewDeal:
		m.recordResult()
		m.game.Start(m.newSeed())
		m.resetTable(fmt.Sprintf("New deal #%d", m.game.Seed()))
	case IntentGoto:
		m.held = nil
		m.status = ""
		m.prompting = true
		return m, m.prompt.Focus()

	case IntentScores:
		m.openScoreboard = true
	case IntentHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// moveCursor steps the cursor across the slots, wrapping around.
func (m *GameModel) moveCursor(step int) {
	m.cursor = (m.cursor + step + slotCount) % slotCount
	m.depth = 0
}

// changeDepth walks up or down the face-up run of a tableau slot.
func (m *GameModel) changeDepth(step int) {
	p := m.pileAt(m.cursor)
	if p.Kind() != klondike.KindTableau {
		return
	}
	d := m.depth + step
	if d < 0 {
		return
	}
	c := p.CardAt(p.Len() - 1 - d)
	if c == nil || !c.FaceUp() {
		return
	}
	m.depth = d
}

// selectSlot picks up the card under the cursor, or drops the held card on
// the slot's pile.
func (m *GameModel) selectSlot() {
	p := m.pileAt(m.cursor)

	if m.held == nil {
		if p.Kind() == klondike.KindStock {
			m.draw()
			return
		}
		c := m.cardUnderCursor()
		if c == nil || !c.FaceUp() || !c.Enabled() {
			m.status = "Nothing to pick up"
			return
		}
		m.held = c
		m.status = fmt.Sprintf("Holding %s", c)
		return
	}

	c := m.held
	m.held = nil
	if c.Pile() == p {
		m.status = ""
		return
	}
	m.applyMove(c, m.game.Move(c, p), p)
}

// autoMove sends the held card, or the card under the cursor, to a foundation.
func (m *GameModel) autoMove() {
	c := m.held
	if c == nil {
		c = m.cardUnderCursor()
	}
	m.held = nil
	if c == nil {
		m.status = "Nothing to move"
		return
	}
	res := m.game.AutoMove(c)
	m.applyMove(c, res, c.Pile())
}

func (m *GameModel) applyMove(c *klondike.Card, res klondike.MoveResult, dst *klondike.Pile) {
	if !res.Accepted {
		m.status = fmt.Sprintf("%s cannot go there", c)
		return
	}

	m.logger.Debug("move", "card", c.String(), "to", dst.String(), "points", res.Points)
	m.status = fmt.Sprintf("%s to %s", c, dst)
	if res.Points != 0 {
		m.status += fmt.Sprintf(" (%+d)", res.Points)
	}
	m.clampDepth()
	m.afterMove()
}

func (m *GameModel) draw() {
	res := m.game.DrawFromStock()
	switch {
	case res.Drawn != nil:
		m.status = fmt.Sprintf("Drew %s", res.Drawn)
	case res.Recycled > 0:
		m.status = fmt.Sprintf("Recycled %d cards (-%d)", res.Recycled, res.Penalty)
		m.logger.Debug("recycle", "cards", res.Recycled, "penalty", res.Penalty)
	default:
		m.status = "Stock and waste are empty"
	}
}

func (m *GameModel) autoStack() {
	n := m.game.AutoStack()
	if n == 0 {
		m.status = "Nothing to stack"
		return
	}
	m.status = fmt.Sprintf("Stacked %d cards", n)
	m.clampDepth()
	m.afterMove()
}

// afterMove finishes the deal automatically when configured and records wins.
func (m *GameModel) afterMove() {
	if m.cfg.Display.AutoStackOnWin && !m.game.Won() && allFaceUp(m.game) {
		m.game.AutoStack()
	}
	if m.game.Won() {
		m.status = fmt.Sprintf("You won! Score %d in %s", m.game.Score(), formatClock(m.game.ElapsedSeconds()))
		m.recordResult()
	}
}

// recordResult stores the current deal once. Untouched deals are skipped.
func (m *GameModel) recordResult() {
	if m.saved || !m.game.Started() || m.game.Moves() == 0 {
		return
	}
	m.saved = true

	if m.store == nil {
		return
	}
	id, err := m.store.SaveResult(storage.Result{
		Seed:        m.game.Seed(),
		Score:       m.game.Score(),
		Won:         m.game.Won(),
		ElapsedSecs: m.game.ElapsedSeconds(),
		Moves:       m.game.Moves(),
	})
	if err != nil {
		m.logger.Error("could not save result", "error", err)
		return
	}
	m.logger.Info("result saved", "id", id, "seed", m.game.Seed(), "score", m.game.Score(), "won", m.game.Won())
}

// resetTable clears per-deal UI state after a redeal.
func (m *GameModel) resetTable(status string) {
	m.held = nil
	m.depth = 0
	m.saved = false
	m.status = status
	m.logger.Debug("deal", "seed", m.game.Seed())
}

// clampDepth keeps the depth within the face-up run of the cursor pile.
func (m *GameModel) clampDepth() {
	p := m.pileAt(m.cursor)
	for m.depth > 0 {
		c := p.CardAt(p.Len() - 1 - m.depth)
		if c != nil && c.FaceUp() {
			return
		}
		m.depth--
	}
}

// pileAt maps a cursor slot to its pile.
func (m GameModel) pileAt(slot int) *klondike.Pile {
	switch {
	case slot == slotStock:
		return m.game.Stock()
	case slot == slotWaste:
		return m.game.Waste()
	case slot < slotTableau:
		return m.game.Foundation(slot - slotFoundation)
	default:
		return m.game.Tableau(slot - slotTableau)
	}
}

// cardUnderCursor returns the selected card of the cursor pile, or nil.
func (m GameModel) cardUnderCursor() *klondike.Card {
	p := m.pileAt(m.cursor)
	if p.Kind() == klondike.KindTableau {
		return p.CardAt(p.Len() - 1 - m.depth)
	}
	return p.Last()
}

// allFaceUp reports whether every remaining card is on the tableau face up.
func allFaceUp(g *klondike.Game) bool {
	if g.Stock().Len() > 0 || g.Waste().Len() > 0 {
		return false
	}
	for i := range klondike.TableauCount {
		for _, c := range g.Tableau(i).Cards() {
			if !c.FaceUp() {
				return false
			}
		}
	}
	return true
}

// Game returns the underlying engine.
func (m GameModel) Game() *klondike.Game {
	return m.game
}

// IsQuitting returns true if user requested to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user asked to see the scoreboard.
func (m GameModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// View renders the table.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width > 0 && m.width < minTableWidth {
		return fmt.Sprintf("Terminal too narrow: need %d columns, have %d.", minTableWidth, m.width)
	}
	return renderTable(m) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Run starts a local Bubble Tea program for one player.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
