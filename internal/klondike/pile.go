package klondike

import (
	"fmt"
	"strings"
)

// Kind identifies one of the four pile variants.
type Kind int

const (
	KindStock Kind = iota
	KindWaste
	KindTableau
	KindFoundation
)

// String returns the lower-case variant name.
func (k Kind) String() string {
	switch k {
	case KindStock:
		return "stock"
	case KindWaste:
		return "waste"
	case KindTableau:
		return "tableau"
	case KindFoundation:
		return "foundation"
	default:
		return "unknown"
	}
}

// Pile is an ordered stack of cards, bottom first. The variant decides which
// cards it accepts and what happens to cards as they arrive and leave; the
// sequence mechanics are shared.
type Pile struct {
	kind  Kind
	index int // Position among piles of the same kind
	cards []*Card

	// runFrom is the index of the head of the run lifted for a move, or -1.
	// Only tableau piles ever set it.
	runFrom int
}

// pileHooks holds the per-variant side effects of push and pop.
type pileHooks struct {
	beforePush func(p *Pile, c *Card)
	afterPush  func(p *Pile, c *Card)
	afterPop   func(p *Pile)
}

var hooks = [...]pileHooks{
	KindStock: {
		afterPush: func(_ *Pile, c *Card) {
			c.FlipDown()
			c.Disable()
		},
	},
	KindWaste: {
		beforePush: func(p *Pile, _ *Card) {
			if last := p.Last(); last != nil {
				last.Disable()
			}
		},
		afterPush: func(_ *Pile, c *Card) {
			c.Enable()
		},
		afterPop: enableTop,
	},
	KindTableau: {
		afterPop: enableTop,
	},
	KindFoundation: {},
}

// enableTop makes the newly exposed top card playable.
func enableTop(p *Pile) {
	if last := p.Last(); last != nil {
		last.Enable()
	}
}

// NewPile creates an empty pile of the given kind.
func NewPile(kind Kind, index int) *Pile {
	return &Pile{kind: kind, index: index, runFrom: -1}
}

// Kind returns the pile variant.
func (p *Pile) Kind() Kind { return p.kind }

// Index returns the position of the pile among piles of its kind.
func (p *Pile) Index() int { return p.index }

// Len returns the number of cards in the pile.
func (p *Pile) Len() int { return len(p.cards) }

// Last returns the top card, or nil for an empty pile.
func (p *Pile) Last() *Card {
	if len(p.cards) == 0 {
		return nil
	}
	return p.cards[len(p.cards)-1]
}

// IndexOf returns the position of c in the pile, or -1.
func (p *Pile) IndexOf(c *Card) int {
	for i, pc := range p.cards {
		if pc == c {
			return i
		}
	}
	return -1
}

// CardAt returns the card at position i, or nil when out of range.
func (p *Pile) CardAt(i int) *Card {
	if i < 0 || i >= len(p.cards) {
		return nil
	}
	return p.cards[i]
}

// Cards returns a copy of the pile contents, bottom first.
func (p *Pile) Cards() []*Card {
	out := make([]*Card, len(p.cards))
	copy(out, p.cards)
	return out
}

// Accepts is the legality predicate for dropping c onto the pile.
// It never mutates state.
func (p *Pile) Accepts(c *Card) bool {
	if c == nil || c.pile == p {
		return false
	}

	switch p.kind {
	case KindTableau:
		last := p.Last()
		if last == nil {
			return c.rank == King
		}
		return c.Color() != last.Color() && c.PrecedesInRank(last)

	case KindFoundation:
		// Runs never go to a foundation, only single cards.
		if c.RunNext() != nil {
			return false
		}
		last := p.Last()
		if last == nil {
			return c.rank == Ace
		}
		return c.suit == last.suit && c.FollowsInRank(last)

	default:
		// Stock and waste are never drop targets.
		return false
	}
}

// Push appends cards in order, bottom of the run first. Every card must
// already have been removed from its previous pile.
func (p *Pile) Push(cards ...*Card) {
	for _, c := range cards {
		if c.pile != nil {
			panic(fmt.Sprintf("klondike: push of %s still held by %s", c, c.pile))
		}
	}

	h := hooks[p.kind]
	for _, c := range cards {
		if h.beforePush != nil {
			h.beforePush(p, c)
		}
		p.cards = append(p.cards, c)
		c.pile = p
		if h.afterPush != nil {
			h.afterPush(p, c)
		}
	}
}

// Pop removes c and every card above it, returning them bottom first.
// It returns nil when c is not in the pile.
func (p *Pile) Pop(c *Card) []*Card {
	i := p.IndexOf(c)
	if i < 0 {
		return nil
	}

	removed := make([]*Card, len(p.cards)-i)
	copy(removed, p.cards[i:])
	for j := i; j < len(p.cards); j++ {
		p.cards[j] = nil
	}
	p.cards = p.cards[:i]

	for _, rc := range removed {
		rc.pile = nil
	}
	p.runFrom = -1

	if h := hooks[p.kind]; h.afterPop != nil {
		h.afterPop(p)
	}
	return removed
}

// PopTop removes and returns the top card, or nil for an empty pile.
func (p *Pile) PopTop() *Card {
	last := p.Last()
	if last == nil {
		return nil
	}
	p.Pop(last)
	return last
}

// RemoveAll empties the pile without running any variant hooks.
func (p *Pile) RemoveAll() {
	for i, c := range p.cards {
		c.pile = nil
		p.cards[i] = nil
	}
	p.cards = p.cards[:0]
	p.runFrom = -1
}

// BeginRun lifts the run headed by c: c and every card above it move
// together until EndRun or the next change to the pile. Only face-up tableau
// cards can head a run.
func (p *Pile) BeginRun(c *Card) bool {
	if p.kind != KindTableau || !c.faceUp {
		return false
	}
	i := p.IndexOf(c)
	if i < 0 {
		return false
	}
	p.runFrom = i
	return true
}

// EndRun drops the lifted run, if any.
func (p *Pile) EndRun() {
	p.runFrom = -1
}

// Run returns the lifted run bottom first, or nil.
func (p *Pile) Run() []*Card {
	if p.runFrom < 0 {
		return nil
	}
	return p.Cards()[p.runFrom:]
}

func (p *Pile) runNext(c *Card) *Card {
	if p.runFrom < 0 {
		return nil
	}
	i := p.IndexOf(c)
	if i < p.runFrom || i >= len(p.cards)-1 {
		return nil
	}
	return p.cards[i+1]
}

// String names the pile, e.g. "tableau 3".
func (p *Pile) String() string {
	switch p.kind {
	case KindStock, KindWaste:
		return p.kind.String()
	default:
		return fmt.Sprintf("%s %d", p.kind, p.index+1)
	}
}

// Describe renders the contents, hiding face-down cards, e.g. "## ## 7♠ 6♥".
func (p *Pile) Describe() string {
	if len(p.cards) == 0 {
		return "--"
	}
	return strings.Join(labels(p), " ")
}
