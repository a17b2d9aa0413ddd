package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/marjapussi/marjapussi/engine"
)

var testNames = [engine.NumSeats]string{"Ada", "Bo", "Cy", "Di"}

// table is a referee plus one observer per seat.
type table struct {
	g   *engine.GameState
	obs [engine.NumSeats]*AgentState
}

// suitDeal gives every seat one complete suit: 0 Rot, 1 Schell, 2 Eichel, 3 Gruen.
func suitDeal() [engine.NumSeats]engine.CardSet {
	var hands [engine.NumSeats]engine.CardSet
	for i, s := range engine.Suits {
		hands[i] = engine.SuitSet(s)
	}
	return hands
}

func newTable(t *testing.T, g engine.GameState) *table {
	t.Helper()
	tb := &table{g: &g}
	for i := range tb.obs {
		tb.obs[i] = NewAgentState(uint8(i), testNames, g.Hand(uint8(i)), g.Rules)
	}
	return tb
}

func newSuitTable(t *testing.T) *table {
	t.Helper()
	g := engine.NewGame(testNames, 1, engine.DefaultRules())
	require.NoError(t, g.DealHands(suitDeal()))
	return newTable(t, g)
}

func newRandomTable(t *testing.T, seed uint64) *table {
	t.Helper()
	g := engine.NewGame(testNames, seed, engine.DefaultRules())
	g.Deal()
	return newTable(t, g)
}

func (tb *table) hands() [engine.NumSeats]engine.CardSet {
	var h [engine.NumSeats]engine.CardSet
	for i := range h {
		h[i] = tb.g.Hand(uint8(i))
	}
	return h
}

// act applies a to the referee and every observer, then checks each belief
// against the true hands.
func (tb *table) act(t *testing.T, a engine.Action) {
	t.Helper()
	require.NoError(t, tb.g.Act(a), "referee rejected %s", a)
	hands := tb.hands()
	for i, o := range tb.obs {
		require.NoError(t, o.Observe(a), "observer %d on %s", i, a)
		require.NoError(t, o.CheckHands(hands), "observer %d after %s", i, a)
	}
}

func (tb *table) play(t *testing.T, cards ...string) {
	t.Helper()
	for _, c := range cards {
		tb.act(t, engine.NewPlay(tb.g.Turn, engine.MustParseCard(c)))
	}
}

// takeGame lets seat win provoking at value while everyone else folds.
func (tb *table) takeGame(t *testing.T, seat uint8, value int) {
	t.Helper()
	for tb.g.Phase == engine.PhaseProvoke {
		if tb.g.Turn == seat && tb.g.Value < value {
			tb.act(t, engine.NewProvoke(seat, value))
		} else {
			tb.act(t, engine.NewProvoke(tb.g.Turn, 0))
		}
	}
}

// pass runs PASS and PBCK with the given cards and keeps the value.
func (tb *table) pass(t *testing.T, forth, back string) {
	t.Helper()
	playing := uint8(tb.g.PlayingSeat)
	for _, c := range cards(t, forth) {
		tb.act(t, engine.NewPass(engine.Partner(playing), c))
	}
	for _, c := range cards(t, back) {
		tb.act(t, engine.NewPassBack(playing, c))
	}
	tb.act(t, engine.NewRaise(playing, 0))
}

func cards(t *testing.T, s string) []engine.Card {
	t.Helper()
	cs, err := engine.ParseCards(s)
	require.NoError(t, err)
	return cs
}

func cardSet(t *testing.T, s string) engine.CardSet {
	t.Helper()
	return engine.NewCardSet(cards(t, s)...)
}

// halvesTable: seat 0 plays at 120 with the suit deal. Seat 2 passed
// e-K e-6 e-7 e-8, seat 0 passed r-K r-9 r-8 r-7 back and won the first trick
// r-A s-6 r-7 g-6. Seat 0 holds r-O and e-K, seat 2 holds r-K and e-O.
func halvesTable(t *testing.T) *table {
	t.Helper()
	tb := newSuitTable(t)
	tb.takeGame(t, 0, 120)
	tb.pass(t, "e-K e-6 e-7 e-8", "r-K r-9 r-8 r-7")
	tb.play(t, "r-A", "s-6", "r-7", "g-6")
	require.Equal(t, engine.PhaseQuestion, tb.g.Phase)
	return tb
}

func TestNewAgentState(t *testing.T) {
	hand := engine.SuitSet(engine.Rot)
	a := NewAgentState(0, testNames, hand, engine.DefaultRules())

	assert.Equal(t, hand, a.Secure[0])
	assert.True(t, a.Possible[0].Empty())
	for i := 1; i < engine.NumSeats; i++ {
		assert.Equal(t, engine.FullDeck.Diff(hand), a.Possible[i])
		assert.True(t, a.Secure[i].Empty())
		assert.Equal(t, engine.HandSize, a.HandLeft[i])
	}
	assert.Equal(t, engine.FullDeck, a.CardsLeft)
	assert.Equal(t, int8(-1), a.PlayingSeat)
	assert.Equal(t, engine.NoSuit, a.Trump)
	assert.NoError(t, a.CheckInvariants())
}

func TestPassOnlyVisibleToPlayingParty(t *testing.T) {
	tb := newSuitTable(t)
	tb.takeGame(t, 0, 120)
	tb.pass(t, "e-K e-6 e-7 e-8", "r-K r-9 r-8 r-7")

	forth := cardSet(t, "e-K e-6 e-7 e-8")
	back := cardSet(t, "r-K r-9 r-8 r-7")
	for _, seat := range []uint8{0, 2} {
		o := tb.obs[seat]
		assert.Equal(t, int8(0), o.PlayingSeat)
		assert.True(t, o.Secure[0].Contains(forth), "observer %d misses passed cards", seat)
		assert.True(t, o.Secure[2].Contains(back), "observer %d misses passed back cards", seat)
	}
	for _, seat := range []uint8{1, 3} {
		o := tb.obs[seat]
		assert.Equal(t, int8(0), o.PlayingSeat)
		assert.True(t, o.Secure[0].Empty(), "observer %d learned seat 0's cards", seat)
		assert.True(t, o.Secure[2].Empty(), "observer %d learned seat 2's cards", seat)
		assert.Equal(t, o.Possible[0], o.Possible[2], "observer %d did not mix the passers", seat)
		assert.True(t, o.Possible[0].Contains(forth.Union(back)))
	}
	for _, o := range tb.obs {
		assert.Equal(t, [engine.NumSeats]int{9, 9, 9, 9}, o.HandLeft)
		assert.Equal(t, cards(t, "e-K e-6 e-7 e-8"), o.PassedForth)
	}
}

func TestSuitFollowingDeduction(t *testing.T) {
	tb := newSuitTable(t)
	tb.takeGame(t, 0, 120)
	tb.pass(t, "e-K e-6 e-7 e-8", "r-K r-9 r-8 r-7")

	// r-A led: every seat that does not follow has no Rot left.
	tb.play(t, "r-A", "s-6")
	o := tb.obs[3]
	assert.True(t, o.Possible[1].OfSuit(engine.Rot).Empty())

	tb.play(t, "r-7", "g-6")
	o = tb.obs[1]
	assert.True(t, o.Possible[3].OfSuit(engine.Rot).Empty())
	assert.Len(t, o.Tricks, 1)
	assert.Equal(t, 11, o.Points[0])
}

func TestFirstLeadDeduction(t *testing.T) {
	a := NewAgentState(0, testNames, engine.SuitSet(engine.Rot), engine.DefaultRules())
	// The first lead must be an ace, else a green card: s-6 shows neither.
	require.NoError(t, a.Observe(engine.NewPlay(1, engine.MustParseCard("s-6"))))
	assert.True(t, a.Possible[1].Intersect(engine.RankSet(engine.Ace)).Empty())
	assert.True(t, a.Possible[1].OfSuit(engine.Gruen).Empty())
	assert.True(t, a.Possible[2].Contains(engine.SuitSet(engine.Gruen)))
	assert.Equal(t, 8, a.HandLeft[1])
}

func TestMyDeclaresTrumpForEveryObserver(t *testing.T) {
	tb := newSuitTable(t)
	tb.takeGame(t, 0, 120)
	tb.pass(t, "e-A e-Z e-K e-O", "r-6 r-7 r-8 r-9")
	tb.play(t, "r-A", "s-6", "r-6", "g-6")
	tb.act(t, engine.NewQuestion(0, engine.PronounMy, engine.Rot))

	pair := engine.PairSet(engine.Rot)
	for i, o := range tb.obs {
		assert.True(t, o.Secure[0].Contains(pair), "observer %d", i)
		assert.Equal(t, engine.Rot, o.Trump)
		assert.Equal(t, []engine.Suit{engine.Rot}, o.AllTrump)
		assert.Equal(t, engine.Rot, o.Trick.Trump)
		assert.Equal(t, 11+100, o.Points[0])
		assert.NotNil(t, o.Concepts.Get(SuitConceptName(0, engine.Rot, "pair")))
	}
}

func TestWeSplitsPairAndResolvesOnPlay(t *testing.T) {
	tb := halvesTable(t)
	tb.act(t, engine.NewQuestion(0, engine.PronounOur, engine.Eichel))
	tb.act(t, engine.NewAnswer(2, engine.PronounOu, engine.Eichel))
	tb.act(t, engine.NewAnnouncement(0, engine.PronounWe, engine.Eichel))

	pair := engine.PairSet(engine.Eichel)
	for _, seat := range []uint8{1, 3} {
		o := tb.obs[seat]
		assert.True(t, o.Possible[1].Intersect(pair).Empty())
		assert.True(t, o.Possible[3].Intersect(pair).Empty())
		assert.Equal(t, engine.Eichel, o.Trump)
		assert.Equal(t, 11+60, o.Points[0])
		shared := o.Concepts.AllByProperties(map[string]string{PropShared: "true"})
		assert.Len(t, shared, 2)
	}

	// Playing one half gives the other away.
	tb.play(t, "e-K")
	ober := engine.MustParseCard("e-O")
	for i, o := range tb.obs {
		assert.True(t, o.Secure[2].Has(ober), "observer %d", i)
	}
}

func TestNoAndNotMyAnswers(t *testing.T) {
	tb := halvesTable(t)
	tb.act(t, engine.NewQuestion(0, engine.PronounOur, engine.Schell))
	tb.act(t, engine.NewAnswer(2, engine.PronounNo, engine.Schell))
	for _, o := range tb.obs {
		assert.True(t, o.Possible[2].Intersect(engine.PairSet(engine.Schell)).Empty())
	}

	// r-K is the only card of seat 2 that overtakes r-O.
	tb.play(t, "r-O", "s-7", "r-K", "g-7")
	require.Equal(t, uint8(2), tb.g.Turn)
	tb.act(t, engine.NewQuestion(2, engine.PronounYours, engine.NoSuit))
	tb.act(t, engine.NewAnswer(0, engine.PronounNotMy, engine.NoSuit))
	for _, o := range tb.obs {
		assert.Equal(t, 1.0, o.Concepts.Value(ConceptName(0, FactHasNoPair)))
		assert.Equal(t, uint8(1), o.Asking[2])
	}
}

func TestImpossiblePlayIsViolation(t *testing.T) {
	a := NewAgentState(0, testNames, engine.SuitSet(engine.Rot), engine.DefaultRules())
	err := a.Observe(engine.NewPlay(1, engine.MustParseCard("r-A")))
	var iv *InvariantViolationError
	require.ErrorAs(t, err, &iv)
	assert.Equal(t, uint8(1), iv.Seat)
}

func TestCloneIsIndependent(t *testing.T) {
	tb := newSuitTable(t)
	tb.act(t, engine.NewProvoke(0, 120))
	orig := tb.obs[1]
	cp := orig.Clone()
	require.NoError(t, cp.Observe(engine.NewProvoke(1, 130)))

	assert.Equal(t, 120, orig.Value)
	assert.Len(t, orig.ProvokingHistory, 1)
	assert.Nil(t, orig.Concepts.Get(ConceptName(1, FactHasSmallPair)))
	assert.Equal(t, 130, cp.Value)
}

// TestBeliefSoundInRandomGames checks every observer against the true hands
// after every action of many random hands, and that deduction always ends at
// a fixpoint.
func TestBeliefSoundInRandomGames(t *testing.T) {
	games := 150
	if testing.Short() {
		games = 20
	}
	for seed := uint64(1); seed <= uint64(games); seed++ {
		tb := newRandomTable(t, seed)
		rng := rand.New(rand.NewPCG(seed, 99))
		for !tb.g.IsTerminal() {
			legal := tb.g.LegalActions()
			require.NotEmpty(t, legal)
			tb.act(t, legal[rng.IntN(len(legal))])
			for i, o := range tb.obs {
				require.False(t, o.propagateOnce(), "observer %d not at fixpoint (seed %d)", i, seed)
			}
		}
		r, ok := tb.g.Result()
		require.True(t, ok)
		for _, o := range tb.obs {
			assert.True(t, o.CardsLeft.Empty())
			assert.Len(t, o.Tricks, engine.NumTricks)
			assert.Equal(t, r.AllTrump, o.AllTrump, "seed %d", seed)
			for s := range o.Points {
				assert.Equal(t, r.SeatPoints[s], o.Points[s], "seed %d seat %d", seed, s)
			}
		}
	}
}
