package klondike

import (
	"errors"
	"fmt"
)

// Table layout.
const (
	TableauCount    = 7
	FoundationCount = 4
)

// Scoring holds the point values applied after moves and draws.
type Scoring struct {
	Foundation       int // Any card placed on a foundation
	Reveal           int // Move that exposes a hidden card or empties its pile
	RecyclePenalty   int // Turning the waste back over into the stock
	FoundationReturn int // Taking a card back off a foundation, off by default
}

// DefaultScoring returns the standard point values.
func DefaultScoring() Scoring {
	return Scoring{
		Foundation:       10,
		Reveal:           5,
		RecyclePenalty:   100,
		FoundationReturn: 0,
	}
}

// Option configures a Game.
type Option func(*Game)

// WithScoring overrides the point values.
func WithScoring(s Scoring) Option {
	return func(g *Game) {
		g.scoring = s
	}
}

// MoveResult is the outcome of a move intent.
type MoveResult struct {
	Accepted bool
	Points   int   // Score change actually applied
	Revealed *Card // Hidden tableau card turned face up by the move
	Won      bool  // The move completed the game
}

// DrawResult is the outcome of a tap on the stock.
type DrawResult struct {
	Drawn    *Card // Card moved to the waste, nil when recycling or idle
	Recycled int   // Cards turned back into the stock
	Penalty  int   // Points actually deducted for the recycle
}

// Game is one Klondike session. It is not safe for concurrent use; hosts
// that share a game across goroutines must serialize calls.
type Game struct {
	deck        *Deck
	stock       *Pile
	waste       *Pile
	tableau     [TableauCount]*Pile
	foundations [FoundationCount]*Pile

	scoring Scoring
	score   int
	elapsed int
	moves   int
	won     bool
	started bool
}

// New creates a game with its 52 cards and 13 empty piles. Call Start to deal.
func New(opts ...Option) *Game {
	g := &Game{
		deck:    NewDeck(),
		stock:   NewPile(KindStock, 0),
		waste:   NewPile(KindWaste, 0),
		scoring: DefaultScoring(),
	}
	for i := range g.tableau {
		g.tableau[i] = NewPile(KindTableau, i)
	}
	for i := range g.foundations {
		g.foundations[i] = NewPile(KindFoundation, i)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start shuffles with seed and deals a fresh table.
func (g *Game) Start(seed int64) {
	g.deck.Shuffle(seed)
	g.deal()
}

// StartText deals the seed written in seed. Text that is not a number
// redeals the stored seed instead. It reports whether seed was used.
func (g *Game) StartText(seed string) bool {
	used := g.deck.ShuffleString(seed)
	g.deal()
	return used
}

// Restart deals the current seed again from scratch.
func (g *Game) Restart() {
	g.deck.Reshuffle()
	g.deal()
}

// deal clears every pile, lays out the tableau and puts the rest in the stock.
func (g *Game) deal() {
	for _, p := range g.Piles() {
		p.RemoveAll()
	}

	g.score = 0
	g.elapsed = 0
	g.moves = 0
	g.won = false
	g.started = true

	cards := g.deck.Cards()
	for _, c := range cards {
		c.FlipDown()
		c.Disable()
	}

	// Tableau i receives i+1 cards, only the last one face up.
	n := 0
	for i, p := range g.tableau {
		p.Push(cards[n : n+i+1]...)
		n += i + 1
		p.Last().Enable()
	}

	g.stock.Push(cards[n:]...)
}

// Move applies the intent "put c on dst". A tableau card carries every card
// above it. Illegal intents leave the game untouched and report
// Accepted == false so the caller can snap the card back.
func (g *Game) Move(c *Card, dst *Pile) MoveResult {
	if !g.canLift(c) || dst == nil || dst == c.pile {
		return MoveResult{}
	}
	src := c.pile
	if src.kind == KindFoundation && dst.kind == KindFoundation {
		return MoveResult{}
	}

	if src.kind == KindTableau {
		src.BeginRun(c)
	}
	if !dst.Accepts(c) {
		src.EndRun()
		return MoveResult{}
	}

	below := src.CardAt(src.IndexOf(c) - 1)
	var revealed *Card
	if src.kind == KindTableau && below != nil && !below.faceUp {
		revealed = below
	}
	emptied := src.kind != KindFoundation && below == nil && c.rank != King

	dst.Push(src.Pop(c)...)
	g.moves++

	res := MoveResult{
		Accepted: true,
		Revealed: revealed,
	}
	res.Points = g.match(src, dst, revealed != nil || emptied)
	res.Won = g.checkVictory()
	return res
}

// AttemptMove is Move reduced to its accept/reject decision.
func (g *Game) AttemptMove(c *Card, dst *Pile) bool {
	return g.Move(c, dst).Accepted
}

// AutoMove sends c to the first foundation that takes it.
func (g *Game) AutoMove(c *Card) MoveResult {
	for _, f := range g.foundations {
		if res := g.Move(c, f); res.Accepted {
			return res
		}
	}
	return MoveResult{}
}

// AutoStack keeps moving waste and tableau tops to the foundations until
// nothing more fits. It returns the number of cards moved.
func (g *Game) AutoStack() int {
	moved := 0
	for !g.won {
		progressed := false
		candidates := []*Card{g.waste.Last()}
		for _, p := range g.tableau {
			candidates = append(candidates, p.Last())
		}
		for _, c := range candidates {
			if c != nil && g.AutoMove(c).Accepted {
				moved++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return moved
}

// DrawFromStock turns the stock top onto the waste. With an empty stock it
// turns the whole waste back over, face down, at a score penalty. With both
// empty it does nothing.
func (g *Game) DrawFromStock() DrawResult {
	if g.won || !g.started {
		return DrawResult{}
	}

	if c := g.stock.PopTop(); c != nil {
		g.waste.Push(c)
		g.moves++
		return DrawResult{Drawn: c}
	}

	if g.waste.Len() == 0 {
		return DrawResult{}
	}

	n := 0
	for c := g.waste.PopTop(); c != nil; c = g.waste.PopTop() {
		g.stock.Push(c)
		n++
	}
	g.moves++
	return DrawResult{
		Recycled: n,
		Penalty:  -g.addScore(-g.scoring.RecyclePenalty),
	}
}

// Tick advances the elapsed-time counter by one second. The host drives it
// from its own timer; it stops counting once the game is won.
func (g *Game) Tick() {
	if g.won || !g.started {
		return
	}
	g.elapsed++
}

// canLift reports whether c may be picked up at all.
func (g *Game) canLift(c *Card) bool {
	if g.won || c == nil || c.pile == nil {
		return false
	}
	if !c.faceUp || !c.enabled {
		return false
	}
	switch c.pile.kind {
	case KindStock:
		return false
	case KindTableau:
		return true
	default:
		return c == c.pile.Last()
	}
}

// match scores an accepted move. Only one rule fires per move.
func (g *Game) match(src, dst *Pile, revealed bool) int {
	switch {
	case dst.kind == KindFoundation:
		return g.addScore(g.scoring.Foundation)
	case src.kind == KindFoundation:
		return g.addScore(-g.scoring.FoundationReturn)
	case revealed:
		return g.addScore(g.scoring.Reveal)
	}
	return 0
}

// addScore applies delta with a floor of zero and returns the change made.
func (g *Game) addScore(delta int) int {
	before := g.score
	g.score += delta
	if g.score < 0 {
		g.score = 0
	}
	return g.score - before
}

func (g *Game) checkVictory() bool {
	for _, f := range g.foundations {
		last := f.Last()
		if last == nil || last.rank != King {
			return false
		}
	}
	g.won = true
	return true
}

func (g *Game) Score() int          { return g.score }
func (g *Game) ElapsedSeconds() int { return g.elapsed }
func (g *Game) Moves() int          { return g.moves }
func (g *Game) Won() bool           { return g.won }
func (g *Game) Started() bool       { return g.started }
func (g *Game) Seed() int64         { return g.deck.Seed() }
func (g *Game) Scoring() Scoring    { return g.scoring }
func (g *Game) Deck() *Deck         { return g.deck }
func (g *Game) Stock() *Pile        { return g.stock }
func (g *Game) Waste() *Pile        { return g.waste }

// Tableau returns tableau pile i (0-6).
func (g *Game) Tableau(i int) *Pile { return g.tableau[i] }

// Foundation returns foundation pile i (0-3).
func (g *Game) Foundation(i int) *Pile { return g.foundations[i] }

// Piles returns all 13 piles: stock, waste, foundations, then tableau.
func (g *Game) Piles() []*Pile {
	piles := make([]*Pile, 0, 2+FoundationCount+TableauCount)
	piles = append(piles, g.stock, g.waste)
	piles = append(piles, g.foundations[:]...)
	piles = append(piles, g.tableau[:]...)
	return piles
}

// Valid checks that every card sits in exactly one pile and that each
// card's pile reference agrees with the pile holding it.
func (g *Game) Valid() error {
	seen := make(map[*Card]*Pile, DeckSize)
	var errs []error
	for _, p := range g.Piles() {
		for _, c := range p.cards {
			if prev, dup := seen[c]; dup {
				errs = append(errs, fmt.Errorf("card %s in both %s and %s", c, prev, p))
				continue
			}
			seen[c] = p
			if c.pile != p {
				errs = append(errs, fmt.Errorf("card %s in %s points at %v", c, p, c.pile))
			}
		}
	}
	if g.started && len(seen) != DeckSize {
		errs = append(errs, fmt.Errorf("%d cards on the table, want %d", len(seen), DeckSize))
	}
	return errors.Join(errs...)
}
