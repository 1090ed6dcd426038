// Package klondike implements the Klondike solitaire rule engine: cards,
// piles and their legality rules, the seeded deck shuffle, and the scoring
// and victory state machine.
//
// The package has no knowledge of rendering or input devices. Callers hand it
// move intents (a card and a destination pile) and receive decisions back.
package klondike

// Suit is one of the four French suits.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in canonical deck order.
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the suit name.
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Symbol returns the unicode glyph for the suit.
func (s Suit) Symbol() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Color returns the suit color.
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// Color is the derived color of a suit.
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Rank is a card value in the fixed order A,2..10,J,Q,K.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// RankCount is the number of ranks per suit.
const RankCount = 13

// String returns the short rank label.
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r >= Two && r <= Ten {
		return [...]string{"2", "3", "4", "5", "6", "7", "8", "9", "10"}[r-Two]
	}
	return "?"
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Next returns the rank directly above r. King has no successor.
func (r Rank) Next() (Rank, bool) {
	if !r.Valid() || r == King {
		return 0, false
	}
	return r + 1, true
}

// Prev returns the rank directly below r. Ace has no predecessor.
func (r Rank) Prev() (Rank, bool) {
	if !r.Valid() || r == Ace {
		return 0, false
	}
	return r - 1, true
}

// Card is one of the 52 playing cards. Suit and rank never change after
// creation; orientation, drag state and pile membership do.
type Card struct {
	suit Suit
	rank Rank

	faceUp  bool
	enabled bool  // Whether the presentation layer may pick the card up
	pile    *Pile // Owning pile, nil while in transit
}

// NewCard creates a face-down card that belongs to no pile.
func NewCard(suit Suit, rank Rank) *Card {
	return &Card{suit: suit, rank: rank}
}

func (c *Card) Suit() Suit   { return c.suit }
func (c *Card) Rank() Rank   { return c.rank }
func (c *Card) Color() Color { return c.suit.Color() }
func (c *Card) FaceUp() bool { return c.faceUp }

// Enabled reports whether the card may currently be dragged.
func (c *Card) Enabled() bool { return c.enabled }

// Pile returns the pile currently holding the card.
func (c *Card) Pile() *Pile { return c.pile }

func (c *Card) FlipUp()   { c.faceUp = true }
func (c *Card) FlipDown() { c.faceUp = false }

// Enable marks the card draggable. Like the drag hook it mirrors, enabling a
// card also turns it face up.
func (c *Card) Enable() {
	c.enabled = true
	c.faceUp = true
}

func (c *Card) Disable() { c.enabled = false }

// PrecedesInRank reports whether c is exactly one rank below other.
func (c *Card) PrecedesInRank(other *Card) bool {
	prev, ok := other.rank.Prev()
	return ok && c.rank == prev
}

// FollowsInRank reports whether c is exactly one rank above other.
func (c *Card) FollowsInRank(other *Card) bool {
	next, ok := other.rank.Next()
	return ok && c.rank == next
}

// RunNext returns the card stacked directly above c when c is part of the
// run currently lifted from its tableau, or nil.
func (c *Card) RunNext() *Card {
	if c.pile == nil {
		return nil
	}
	return c.pile.runNext(c)
}

// String returns a short label such as "10♥".
func (c *Card) String() string {
	return c.rank.String() + c.suit.Symbol()
}
