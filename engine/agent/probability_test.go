package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/marjapussi/marjapussi/engine"
)

func TestInitialProbabilities(t *testing.T) {
	a := NewAgentState(0, testNames, engine.SuitSet(engine.Rot), engine.DefaultRules())

	for _, c := range engine.SuitSet(engine.Rot).Cards() {
		assert.Equal(t, 1.0, a.CardProbability(0, c))
		assert.Equal(t, 0.0, a.CardProbability(1, c))
	}
	for _, c := range engine.FullDeck.Diff(engine.SuitSet(engine.Rot)).Cards() {
		for seat := uint8(1); seat < engine.NumSeats; seat++ {
			assert.InDelta(t, 1.0/3, a.CardProbability(seat, c), 1e-9)
		}
	}

	// Both halves among 9 of 27 unknown cards: 9*8 / (27*26).
	want := 72.0 / 702.0
	assert.InDelta(t, want, a.PairProbability(1, engine.Schell), 1e-9)
	assert.Equal(t, 1.0, a.PairProbability(0, engine.Rot))
	assert.Equal(t, 0.0, a.PairProbability(2, engine.Rot))
	assert.Equal(t, 1.0, a.SetProbability(3, 0))
}

func TestAnyPairProbability(t *testing.T) {
	a := NewAgentState(0, testNames, engine.SuitSet(engine.Rot), engine.DefaultRules())
	p := a.PairProbability(1, engine.Schell)
	both := a.SetProbability(1, engine.PairSet(engine.Schell).Union(engine.PairSet(engine.Eichel)))

	got := a.AnyOfProbability(1, []engine.CardSet{engine.PairSet(engine.Schell), engine.PairSet(engine.Eichel)})
	assert.InDelta(t, 2*p-both, got, 1e-9)
	assert.Greater(t, a.AnyPairProbability(1), got)
	assert.LessOrEqual(t, a.AnyPairProbability(1), 1.0)
}

func TestProbabilitiesFollowBelief(t *testing.T) {
	tb := newSuitTable(t)
	tb.takeGame(t, 0, 120)
	tb.pass(t, "e-K e-6 e-7 e-8", "r-K r-9 r-8 r-7")
	tb.play(t, "r-A", "s-6")

	o := tb.obs[3]
	// Seat 1 showed no Rot, so the Rot cards left sit with seats 0 and 2.
	for _, c := range o.CardsLeft.OfSuit(engine.Rot).Cards() {
		assert.Equal(t, 0.0, o.CardProbability(1, c))
		assert.InDelta(t, 1.0, o.CardProbability(0, c)+o.CardProbability(2, c), 1e-9)
	}
	assert.Equal(t, 0.0, o.CardProbability(0, engine.MustParseCard("r-A")))
}

// TestCardProbabilitiesSumToOne: every unknown card sits with exactly one seat.
func TestCardProbabilitiesSumToOne(t *testing.T) {
	for seed := uint64(1); seed <= 8; seed++ {
		tb := newRandomTable(t, seed)
		rng := rand.New(rand.NewPCG(seed, 3))
		for step := 0; step < 30 && !tb.g.IsTerminal(); step++ {
			legal := tb.g.LegalActions()
			tb.act(t, legal[rng.IntN(len(legal))])
		}
		o := tb.obs[int(seed)%engine.NumSeats]
		for _, c := range o.unknown().Cards() {
			sum := 0.0
			for seat := uint8(0); seat < engine.NumSeats; seat++ {
				p := o.CardProbability(seat, c)
				require.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-9, "seed %d card %s", seed, c)
		}
	}
}

func TestAllocations(t *testing.T) {
	// Four interchangeable cards over two seats needing two each: C(4,2).
	groups := []cardGroup{{mask: 0b0011, n: 4}}
	assert.Equal(t, 6.0, allocations(groups, [engine.NumSeats]int{2, 2, 0, 0}))
	assert.Equal(t, 0.0, allocations(groups, [engine.NumSeats]int{2, 1, 0, 0}))
	assert.Equal(t, 0.0, allocations(groups, [engine.NumSeats]int{0, 0, 4, 0}))
	assert.Equal(t, 1.0, allocations(nil, [engine.NumSeats]int{}))
}
