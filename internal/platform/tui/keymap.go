package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Intent is a player request derived from a key press. The game model turns
// intents into card/pile operations; keys never reach the rules engine.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
	IntentUp
	IntentDown
	IntentSelect
	IntentCancel
	IntentDraw
	IntentAutoMove
	IntentAutoStack
	IntentRestart
	IntentNewDeal
	IntentGoto
	IntentScores
	IntentHelp
	IntentQuit
)

// KeyMap defines the key bindings for the table.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Cancel    key.Binding
	Draw      key.Binding
	AutoMove  key.Binding
	AutoStack key.Binding
	Restart   key.Binding
	NewDeal   key.Binding
	Goto      key.Binding
	Scores    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Draw, k.AutoMove, k.AutoStack, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Select, k.Cancel, k.Draw},
		{k.AutoMove, k.AutoStack},
		{k.Restart, k.NewDeal, k.Goto, k.Scores},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev pile"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next pile"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "deeper in run"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "shallower in run"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "pick up/drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "put back"),
		),
		Draw: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "draw"),
		),
		AutoMove: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "to foundation"),
		),
		AutoStack: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "auto stack"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart deal"),
		),
		NewDeal: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new deal"),
		),
		Goto: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "deal by number"),
		),
		Scores: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "scores"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MapKey translates a key message to an intent.
func (k KeyMap) MapKey(msg tea.KeyMsg) Intent {
	switch {
	case key.Matches(msg, k.Quit):
		return IntentQuit
	case key.Matches(msg, k.Left):
		return IntentLeft
	case key.Matches(msg, k.Right):
		return IntentRight
	case key.Matches(msg, k.Up):
		return IntentUp
	case key.Matches(msg, k.Down):
		return IntentDown
	case key.Matches(msg, k.Select):
		return IntentSelect
	case key.Matches(msg, k.Cancel):
		return IntentCancel
	case key.Matches(msg, k.Draw):
		return IntentDraw
	case key.Matches(msg, k.AutoMove):
		return IntentAutoMove
	case key.Matches(msg, k.AutoStack):
		return IntentAutoStack
	case key.Matches(msg, k.Restart):
		return IntentRestart
	case key.Matches(msg, k.NewDeal):
		return IntentNewDeal
	case key.Matches(msg, k.Goto):
		return IntentGoto
	case key.Matches(msg, k.Scores):
		return IntentScores
	case key.Matches(msg, k.Help):
		return IntentHelp
	}
	return IntentNone
}
