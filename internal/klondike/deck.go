package klondike

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// DeckSize is the number of cards in a full deck.
const DeckSize = len(Suits) * RankCount

// pcgStream is the fixed second PCG word. Only the seed varies between deals.
const pcgStream = 0x6b6c6f6e64696b65

// Deck owns the canonical 52 cards and a shuffled ordering of them. Shuffling
// only reorders; card identities are created once.
type Deck struct {
	canonical []*Card
	shuffled  []*Card
	seed      int64
}

// NewDeck creates the canonical deck, suits in Suits order, ranks ascending.
func NewDeck() *Deck {
	d := &Deck{canonical: make([]*Card, 0, DeckSize)}
	for _, s := range Suits {
		for r := Ace; r <= King; r++ {
			d.canonical = append(d.canonical, NewCard(s, r))
		}
	}
	d.shuffled = append([]*Card(nil), d.canonical...)
	return d
}

// Shuffle reorders the deck with a Fisher-Yates pass driven by a PCG
// generator seeded from seed alone. The generator is rebuilt on every call,
// so equal seeds always produce equal orders.
func (d *Deck) Shuffle(seed int64) {
	d.seed = seed
	rng := rand.New(rand.NewPCG(uint64(seed), pcgStream))

	d.shuffled = append(d.shuffled[:0], d.canonical...)
	for i := len(d.shuffled) - 1; i > 0; i-- {
		r := rng.IntN(i + 1)
		d.shuffled[i], d.shuffled[r] = d.shuffled[r], d.shuffled[i]
	}
}

// Reshuffle shuffles again with the stored seed.
func (d *Deck) Reshuffle() {
	d.Shuffle(d.seed)
}

// ShuffleString parses seed and shuffles with it. An unparsable seed falls
// back to the stored one. It reports whether the given seed was used.
func (d *Deck) ShuffleString(seed string) bool {
	if n, ok := ParseSeed(seed); ok {
		d.Shuffle(n)
		return true
	}
	d.Reshuffle()
	return false
}

// Seed returns the seed used by the last shuffle.
func (d *Deck) Seed() int64 { return d.seed }

// Cards returns the shuffled order. The slice is a copy.
func (d *Deck) Cards() []*Card {
	return append([]*Card(nil), d.shuffled...)
}

// Canonical returns the unshuffled cards. The slice is a copy.
func (d *Deck) Canonical() []*Card {
	return append([]*Card(nil), d.canonical...)
}

// ParseSeed parses a decimal seed.
func ParseSeed(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// DailySeed returns the deal seed for the UTC day of t:
// the first 8 bytes of HMAC-SHA256(salt, YYYY-MM-DD).
func DailySeed(t time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]) >> 1)
}
