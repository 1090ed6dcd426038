package klondike

// GameStateType represents the current session state.
type GameStateType string

const (
	StateIdle    GameStateType = "idle"
	StatePlaying GameStateType = "playing"
	StateWon     GameStateType = "won"
)

// Snapshot captures the complete table for determinism tests, replays and
// the presentation layer. Face-down cards appear as "##".
type Snapshot struct {
	Seed           int64         `yaml:"seed"`
	Score          int           `yaml:"score"`
	ElapsedSeconds int           `yaml:"elapsed_seconds"`
	Moves          int           `yaml:"moves"`
	State          GameStateType `yaml:"state"`

	Stock       []string                  `yaml:"stock,flow"`
	Waste       []string                  `yaml:"waste,flow"`
	Foundations [FoundationCount][]string `yaml:"foundations,flow"`
	Tableau     [TableauCount][]string    `yaml:"tableau"`
}

// State returns the current session state.
func (g *Game) State() GameStateType {
	switch {
	case !g.started:
		return StateIdle
	case g.won:
		return StateWon
	default:
		return StatePlaying
	}
}

// Snapshot returns the current table.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Seed:           g.Seed(),
		Score:          g.score,
		ElapsedSeconds: g.elapsed,
		Moves:          g.moves,
		State:          g.State(),
		Stock:          labels(g.stock),
		Waste:          labels(g.waste),
	}
	for i, f := range g.foundations {
		s.Foundations[i] = labels(f)
	}
	for i, t := range g.tableau {
		s.Tableau[i] = labels(t)
	}
	return s
}

func labels(p *Pile) []string {
	out := make([]string, len(p.cards))
	for i, c := range p.cards {
		if c.faceUp {
			out[i] = c.String()
		} else {
			out[i] = "##"
		}
	}
	return out
}
