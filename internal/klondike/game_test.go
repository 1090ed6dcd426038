package klondike

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

// card looks up a card of g by identity.
func card(g *Game, s Suit, r Rank) *Card {
	return g.deck.canonical[int(s)*RankCount+int(r)-1]
}

// clearTable starts g and then empties every pile so a test can lay out
// its own position.
func clearTable(g *Game) {
	g.Start(1)
	for _, p := range g.Piles() {
		p.RemoveAll()
	}
}

// lay pushes cards onto p bottom first. The last up cards are face up and
// draggable, the rest face down.
func lay(p *Pile, up int, cards ...*Card) {
	for _, c := range cards {
		c.FlipDown()
		c.Disable()
	}
	p.Push(cards...)
	for _, c := range cards[len(cards)-up:] {
		c.Enable()
	}
}

// parkRest puts every card not on the table into the stock.
func parkRest(g *Game) {
	for _, c := range g.deck.canonical {
		if c.pile == nil {
			g.stock.Push(c)
		}
	}
}

func names(cards []*Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

func suitRun(g *Game, s Suit, top Rank) []*Card {
	var cards []*Card
	for r := Ace; r <= top; r++ {
		cards = append(cards, card(g, s, r))
	}
	return cards
}

func TestStartDeal(t *testing.T) {
	for _, seed := range []int64{0, 1, 2024, -3} {
		g := New()
		g.Start(seed)

		for i := 0; i < TableauCount; i++ {
			p := g.Tableau(i)
			if p.Len() != i+1 {
				t.Errorf("seed %d: tableau %d has %d cards, expected %d", seed, i, p.Len(), i+1)
			}
			for j, c := range p.Cards() {
				top := j == p.Len()-1
				if c.FaceUp() != top || c.Enabled() != top {
					t.Errorf("seed %d: tableau %d card %d faceUp=%v enabled=%v", seed, i, j, c.FaceUp(), c.Enabled())
				}
			}
		}

		if g.Stock().Len() != DeckSize-28 {
			t.Errorf("seed %d: stock has %d cards, expected 24", seed, g.Stock().Len())
		}
		for _, c := range g.Stock().Cards() {
			if c.FaceUp() {
				t.Errorf("seed %d: stock card %s is face up", seed, c)
			}
		}
		if g.Waste().Len() != 0 {
			t.Errorf("seed %d: waste should start empty", seed)
		}
		for i := 0; i < FoundationCount; i++ {
			if g.Foundation(i).Len() != 0 {
				t.Errorf("seed %d: foundation %d should start empty", seed, i)
			}
		}
		if err := g.Valid(); err != nil {
			t.Errorf("seed %d: Valid() = %v", seed, err)
		}
		if g.Score() != 0 || g.ElapsedSeconds() != 0 || g.State() != StatePlaying {
			t.Errorf("seed %d: unexpected initial state %+v", seed, g.Snapshot())
		}
	}
}

func TestStartIsDeterministic(t *testing.T) {
	a, b := New(), New()
	a.Start(77)
	b.Start(77)

	sa, sb := a.Snapshot(), b.Snapshot()
	for i := range sa.Tableau {
		if !sameOrder(sa.Tableau[i], sb.Tableau[i]) {
			t.Errorf("tableau %d differs: %v vs %v", i, sa.Tableau[i], sb.Tableau[i])
		}
	}
	if !sameOrder(names(a.Stock().Cards()), names(b.Stock().Cards())) {
		t.Error("stock order differs for the same seed")
	}
}

func TestMoveRevealsHiddenCard(t *testing.T) {
	g := New()
	clearTable(g)
	hidden, five, six := card(g, Clubs, Two), card(g, Hearts, Five), card(g, Spades, Six)
	lay(g.Tableau(0), 1, hidden, five)
	lay(g.Tableau(1), 1, six)

	res := g.Move(five, g.Tableau(1))

	if !res.Accepted {
		t.Fatal("5♥ onto 6♠ should be accepted")
	}
	if res.Points != 5 || g.Score() != 5 {
		t.Errorf("points = %d, score = %d, expected 5 and 5", res.Points, g.Score())
	}
	if res.Revealed != hidden || !hidden.FaceUp() || !hidden.Enabled() {
		t.Error("the hidden 2♣ should be revealed and draggable")
	}
	if five.Pile() != g.Tableau(1) || g.Tableau(1).Last() != five {
		t.Error("5♥ should now top tableau 2")
	}
}

func TestMoveToFoundationScoresOnce(t *testing.T) {
	g := New()
	clearTable(g)
	hidden, ace := card(g, Diamonds, Three), card(g, Clubs, Ace)
	lay(g.Tableau(0), 1, hidden, ace)

	res := g.Move(ace, g.Foundation(0))

	if !res.Accepted {
		t.Fatal("A♣ onto an empty foundation should be accepted")
	}
	if res.Points != 10 || g.Score() != 10 {
		t.Errorf("points = %d, score = %d, expected only the foundation bonus", res.Points, g.Score())
	}
	if !hidden.FaceUp() {
		t.Error("the card under the ace should still turn face up")
	}
}

func TestMoveEmptyingPile(t *testing.T) {
	tests := []struct {
		name     string
		moving   func(g *Game) *Card
		target   func(g *Game) *Card // nil leaves the destination empty
		expected int
	}{
		{
			name:     "non-king leaves pile empty",
			moving:   func(g *Game) *Card { return card(g, Hearts, Five) },
			target:   func(g *Game) *Card { return card(g, Spades, Six) },
			expected: 5,
		},
		{
			name:     "king to empty pile",
			moving:   func(g *Game) *Card { return card(g, Spades, King) },
			target:   nil,
			expected: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			clearTable(g)
			c := tc.moving(g)
			lay(g.Tableau(0), 1, c)
			if tc.target != nil {
				lay(g.Tableau(1), 1, tc.target(g))
			}

			res := g.Move(c, g.Tableau(1))
			if !res.Accepted {
				t.Fatal("move should be accepted")
			}
			if res.Points != tc.expected {
				t.Errorf("points = %d, expected %d", res.Points, tc.expected)
			}
		})
	}
}

func TestMoveCarriesRun(t *testing.T) {
	g := New()
	clearTable(g)
	hidden := card(g, Diamonds, Four)
	k, q, j := card(g, Spades, King), card(g, Hearts, Queen), card(g, Clubs, Jack)
	lay(g.Tableau(0), 3, hidden, k, q, j)
	parkRest(g)

	res := g.Move(k, g.Tableau(1))

	if !res.Accepted {
		t.Fatal("K♠ run onto an empty tableau should be accepted")
	}
	dst := g.Tableau(1).Cards()
	if len(dst) != 3 || dst[0] != k || dst[1] != q || dst[2] != j {
		t.Errorf("destination = %v, expected [K♠ Q♥ J♣]", dst)
	}
	if g.Tableau(0).Len() != 1 || !hidden.FaceUp() {
		t.Error("source should hold only the revealed 4♦")
	}
	for _, c := range dst {
		if c.RunNext() != nil {
			t.Errorf("%s still chained after the move", c)
		}
	}
	if err := g.Valid(); err != nil {
		t.Errorf("Valid() = %v", err)
	}
}

func TestMoveRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(g *Game) (*Card, *Pile)
	}{
		{
			name: "face-down card",
			setup: func(g *Game) (*Card, *Pile) {
				down := card(g, Hearts, Queen)
				lay(g.Tableau(0), 1, down, card(g, Clubs, Two))
				lay(g.Tableau(1), 1, card(g, Spades, King))
				return down, g.Tableau(1)
			},
		},
		{
			name: "run onto foundation",
			setup: func(g *Game) (*Card, *Pile) {
				two := card(g, Hearts, Two)
				lay(g.Foundation(0), 1, card(g, Hearts, Ace))
				lay(g.Tableau(0), 2, two, card(g, Clubs, Ace))
				return two, g.Foundation(0)
			},
		},
		{
			name: "stock card",
			setup: func(g *Game) (*Card, *Pile) {
				k := card(g, Spades, King)
				g.Stock().Push(k)
				k.Enable()
				return k, g.Tableau(0)
			},
		},
		{
			name: "buried waste card",
			setup: func(g *Game) (*Card, *Pile) {
				k := card(g, Spades, King)
				g.Waste().Push(k, card(g, Hearts, Two))
				k.Enable()
				return k, g.Tableau(0)
			},
		},
		{
			name: "onto own pile",
			setup: func(g *Game) (*Card, *Pile) {
				k := card(g, Spades, King)
				lay(g.Tableau(0), 1, k)
				return k, g.Tableau(0)
			},
		},
		{
			name: "same color",
			setup: func(g *Game) (*Card, *Pile) {
				nine := card(g, Hearts, Nine)
				lay(g.Tableau(0), 1, nine)
				lay(g.Tableau(1), 1, card(g, Diamonds, Ten))
				return nine, g.Tableau(1)
			},
		},
		{
			name: "onto waste",
			setup: func(g *Game) (*Card, *Pile) {
				k := card(g, Spades, King)
				lay(g.Tableau(0), 1, k)
				return k, g.Waste()
			},
		},
		{
			name: "foundation to foundation",
			setup: func(g *Game) (*Card, *Pile) {
				ace := card(g, Hearts, Ace)
				lay(g.Foundation(0), 1, ace)
				return ace, g.Foundation(1)
			},
		},
		{
			name: "nil destination",
			setup: func(g *Game) (*Card, *Pile) {
				k := card(g, Spades, King)
				lay(g.Tableau(0), 1, k)
				return k, nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			clearTable(g)
			c, dst := tc.setup(g)
			g.score = 40
			before := g.Snapshot()

			res := g.Move(c, dst)

			if res.Accepted || g.AttemptMove(c, dst) {
				t.Fatal("move should be rejected")
			}
			after := g.Snapshot()
			if after.Score != before.Score || after.Moves != before.Moves {
				t.Error("rejected move changed score or move count")
			}
			for i := range before.Tableau {
				if !sameOrder(before.Tableau[i], after.Tableau[i]) {
					t.Errorf("rejected move changed tableau %d", i)
				}
			}
			if c.RunNext() != nil {
				t.Error("rejected move left a run lifted")
			}
		})
	}
}

func TestMoveOffFoundationIsFree(t *testing.T) {
	g := New()
	clearTable(g)
	two := card(g, Spades, Two)
	lay(g.Foundation(0), 2, card(g, Spades, Ace), two)
	lay(g.Tableau(0), 1, card(g, Hearts, Three))
	g.score = 40

	res := g.Move(two, g.Tableau(0))

	if !res.Accepted {
		t.Fatal("2♠ onto 3♥ should be accepted")
	}
	if res.Points != 0 || g.Score() != 40 {
		t.Errorf("points = %d, score = %d, expected 0 and 40", res.Points, g.Score())
	}
}

func TestFoundationReturnPenalty(t *testing.T) {
	scoring := DefaultScoring()
	scoring.FoundationReturn = 15
	g := New(WithScoring(scoring))
	clearTable(g)
	ace := card(g, Hearts, Ace)
	lay(g.Foundation(0), 1, ace)
	lay(g.Tableau(0), 1, card(g, Spades, Two))
	g.score = 10

	res := g.Move(ace, g.Tableau(0))

	if !res.Accepted {
		t.Fatal("A♥ onto 2♠ should be accepted")
	}
	if g.Score() != 0 || res.Points != -10 {
		t.Errorf("score = %d, points = %d, expected clamp to 0 with -10 applied", g.Score(), res.Points)
	}
}

func TestMoveLastWasteCardReveals(t *testing.T) {
	tests := []struct {
		name     string
		waste    []Rank
		expected int
	}{
		{"only waste card", []Rank{Queen}, 5},
		{"card still beneath", []Rank{Two, Queen}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			clearTable(g)
			var waste []*Card
			for _, r := range tc.waste {
				waste = append(waste, card(g, Hearts, r))
			}
			lay(g.Waste(), 1, waste...)
			for _, c := range waste {
				c.FlipUp()
			}
			lay(g.Tableau(0), 1, card(g, Spades, King))
			queen := card(g, Hearts, Queen)

			res := g.Move(queen, g.Tableau(0))

			if !res.Accepted {
				t.Fatal("Q♥ onto K♠ should be accepted")
			}
			if res.Points != tc.expected || g.Score() != tc.expected {
				t.Errorf("points = %d, score = %d, expected %d", res.Points, g.Score(), tc.expected)
			}
		})
	}
}

func TestDrawFromStock(t *testing.T) {
	g := New()
	g.Start(3)
	top := g.Stock().Last()

	res := g.DrawFromStock()

	if res.Drawn != top {
		t.Fatalf("drew %v, expected stock top %v", res.Drawn, top)
	}
	if g.Stock().Len() != 23 || g.Waste().Len() != 1 {
		t.Errorf("stock %d, waste %d, expected 23 and 1", g.Stock().Len(), g.Waste().Len())
	}
	if !top.FaceUp() || !top.Enabled() {
		t.Error("drawn card should be face up and draggable")
	}

	second := g.DrawFromStock().Drawn
	if top.Enabled() || !second.Enabled() {
		t.Error("only the waste top should be draggable")
	}
	if g.Moves() != 2 {
		t.Errorf("Moves() = %d, expected 2", g.Moves())
	}
}

func TestRecycleWaste(t *testing.T) {
	tests := []struct {
		name          string
		score         int
		expectScore   int
		expectPenalty int
	}{
		{"full penalty", 150, 50, 100},
		{"clamped at zero", 30, 0, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := New()
			clearTable(g)
			a, b, c := card(g, Hearts, Two), card(g, Clubs, Nine), card(g, Spades, Queen)
			g.Waste().Push(a, b, c)
			g.score = tc.score

			res := g.DrawFromStock()

			if res.Recycled != 3 || res.Penalty != tc.expectPenalty {
				t.Errorf("recycled %d, penalty %d, expected 3 and %d", res.Recycled, res.Penalty, tc.expectPenalty)
			}
			if g.Score() != tc.expectScore {
				t.Errorf("score = %d, expected %d", g.Score(), tc.expectScore)
			}
			stock := g.Stock().Cards()
			if len(stock) != 3 || stock[0] != c || stock[1] != b || stock[2] != a {
				t.Errorf("stock = %v, expected waste reversed [Q♠ 9♣ 2♥]", stock)
			}
			for _, sc := range stock {
				if sc.FaceUp() || sc.Enabled() {
					t.Errorf("%s should be face down after recycling", sc)
				}
			}
			if g.Waste().Len() != 0 {
				t.Error("waste should be empty after recycling")
			}

			if next := g.DrawFromStock().Drawn; next != a {
				t.Errorf("next draw = %v, expected the first card drawn originally", next)
			}
		})
	}
}

func TestDrawWithEverythingEmpty(t *testing.T) {
	g := New()
	clearTable(g)
	g.score = 25
	moves := g.Moves()

	res := g.DrawFromStock()

	if res != (DrawResult{}) {
		t.Errorf("DrawFromStock() = %+v, expected no-op", res)
	}
	if g.Score() != 25 || g.Moves() != moves {
		t.Error("drawing from empty stock and waste should change nothing")
	}
}

func TestVictory(t *testing.T) {
	g := New()
	clearTable(g)
	lay(g.Foundation(0), 13, suitRun(g, Clubs, King)...)
	lay(g.Foundation(1), 13, suitRun(g, Diamonds, King)...)
	lay(g.Foundation(2), 13, suitRun(g, Hearts, King)...)
	lay(g.Foundation(3), 12, suitRun(g, Spades, Queen)...)
	king := card(g, Spades, King)
	lay(g.Tableau(0), 1, king)
	g.score = 500
	g.Tick()
	elapsed := g.ElapsedSeconds()

	res := g.Move(king, g.Foundation(3))

	if !res.Accepted || !res.Won || !g.Won() {
		t.Fatalf("K♠ onto the spades foundation should win, got %+v", res)
	}
	if g.State() != StateWon {
		t.Errorf("State() = %s, expected %s", g.State(), StateWon)
	}
	if err := g.Valid(); err != nil {
		t.Errorf("Valid() = %v", err)
	}

	score := g.Score()
	g.Tick()
	g.Tick()
	g.DrawFromStock()
	if g.Move(card(g, Hearts, King), g.Tableau(0)).Accepted {
		t.Error("moves after victory should be rejected")
	}
	if g.Score() != score || g.ElapsedSeconds() != elapsed {
		t.Error("score and timer should freeze after victory")
	}
}

func TestAutoMoveAndStack(t *testing.T) {
	g := New()
	clearTable(g)
	g.Waste().Push(card(g, Hearts, Ace))
	lay(g.Tableau(0), 1, card(g, Hearts, Two))
	lay(g.Tableau(1), 1, card(g, Clubs, Ace))
	lay(g.Tableau(2), 2, card(g, Spades, Five), card(g, Diamonds, Four))

	if g.AutoMove(card(g, Spades, Five)).Accepted {
		t.Error("AutoMove() of a buried card should be rejected")
	}

	moved := g.AutoStack()

	if moved != 3 {
		t.Errorf("AutoStack() moved %d cards, expected 3", moved)
	}
	if g.Score() != 30 {
		t.Errorf("score = %d, expected 30", g.Score())
	}
	if g.Tableau(2).Len() != 2 {
		t.Error("cards with no foundation spot should stay put")
	}
}

func TestRestartRedealsSameSeed(t *testing.T) {
	g := New()
	g.Start(11)
	fresh := g.Snapshot()

	g.DrawFromStock()
	g.DrawFromStock()
	g.AutoStack()
	g.Tick()
	g.Restart()

	again := g.Snapshot()
	if again.Score != 0 || again.ElapsedSeconds != 0 || again.Moves != 0 {
		t.Errorf("Restart() did not reset counters: %+v", again)
	}
	if again.Seed != fresh.Seed {
		t.Errorf("seed = %d, expected %d", again.Seed, fresh.Seed)
	}
	for i := range fresh.Tableau {
		if !sameOrder(fresh.Tableau[i], again.Tableau[i]) {
			t.Errorf("tableau %d differs after restart", i)
		}
	}
	if err := g.Valid(); err != nil {
		t.Errorf("Valid() = %v", err)
	}
}

func TestStartText(t *testing.T) {
	g := New()
	if !g.StartText("31337") || g.Seed() != 31337 {
		t.Fatalf("StartText(31337) dealt seed %d", g.Seed())
	}
	want := g.Snapshot()
	g.DrawFromStock()

	if g.StartText("deal me in") {
		t.Error("text that is not a number should not be used as a seed")
	}
	if got := g.Snapshot(); got.Seed != 31337 || got.Moves != 0 || !reflect.DeepEqual(got, want) {
		t.Errorf("fallback should redeal seed 31337 from scratch, got seed %d moves %d", got.Seed, got.Moves)
	}

	if !g.StartText("0") || g.Seed() != 0 {
		t.Errorf("seed 0 is a valid deal, got seed %d", g.Seed())
	}
}

func TestTick(t *testing.T) {
	g := New()
	g.Tick()
	if g.ElapsedSeconds() != 0 {
		t.Error("Tick() before Start() should not count")
	}

	g.Start(1)
	for i := 0; i < 3; i++ {
		g.Tick()
	}
	if g.ElapsedSeconds() != 3 {
		t.Errorf("ElapsedSeconds() = %d, expected 3", g.ElapsedSeconds())
	}
}

func TestWithScoring(t *testing.T) {
	g := New(WithScoring(Scoring{Foundation: 25}))
	clearTable(g)
	ace := card(g, Spades, Ace)
	lay(g.Tableau(0), 1, ace)

	if res := g.Move(ace, g.Foundation(0)); res.Points != 25 {
		t.Errorf("points = %d, expected 25", res.Points)
	}
}

// TestRandomPlayKeepsInvariants throws random intents at many deals and
// checks the table after each one.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(0); seed < 25; seed++ {
		g := New()
		g.Start(seed)
		rng := rand.New(rand.NewPCG(uint64(seed), 1))
		piles := g.Piles()

		for step := 0; step < 400 && !g.Won(); step++ {
			if rng.IntN(4) == 0 {
				g.DrawFromStock()
			} else {
				src := piles[rng.IntN(len(piles))]
				if src.Len() == 0 {
					continue
				}
				c := src.CardAt(rng.IntN(src.Len()))
				g.Move(c, piles[rng.IntN(len(piles))])
			}

			if err := g.Valid(); err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}
			if g.Score() < 0 {
				t.Fatalf("seed %d step %d: negative score %d", seed, step, g.Score())
			}
			for _, p := range g.Piles() {
				if p.runFrom != -1 {
					t.Fatalf("seed %d step %d: %s left a run lifted", seed, step, p)
				}
			}
		}
	}
}
