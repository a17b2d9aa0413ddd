package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/marjapussi/marjapussi/engine"
)

// Offsets of the blocks written by Encode.
const (
	offCardsLeft = engine.NumSeats * SeatDim
	offTrick     = offCardsLeft + CardDim
	offTrump     = offTrick + CardDim
	offPhase     = offTrump + TrumpDim
	offValue     = offPhase + PhaseDim
	offHands     = offValue + 1
	offParty     = offHands + engine.NumSeats
	offTricks    = offParty + PartyDim
	offPoints    = offTricks + 1
)

func sum(v []float32) float32 {
	var s float32
	for _, x := range v {
		s += x
	}
	return s
}

func TestEncodeLayout(t *testing.T) {
	assert.Equal(t, 387, InputDim)
	assert.Equal(t, InputDim, offPoints+2)
}

func TestEncodeInitialBelief(t *testing.T) {
	a := NewAgentState(1, testNames, engine.SuitSet(engine.Schell), engine.DefaultRules())
	var out [InputDim]float32
	a.Encode(&out)

	// Relative seat 0 is the observer itself.
	assert.Equal(t, float32(9), sum(out[0:CardDim]))
	assert.Equal(t, float32(0), sum(out[CardDim:SeatDim]))
	for r := 1; r < engine.NumSeats; r++ {
		base := r * SeatDim
		assert.Equal(t, float32(0), sum(out[base:base+CardDim]))
		assert.Equal(t, float32(27), sum(out[base+CardDim:base+SeatDim]))
	}
	s6 := engine.MustParseCard("s-6")
	assert.Equal(t, float32(1), out[cardSlot(s6)])
	assert.Equal(t, float32(0), out[SeatDim+CardDim+cardSlot(s6)])

	assert.Equal(t, float32(36), sum(out[offCardsLeft:offTrick]))
	assert.Equal(t, float32(0), sum(out[offTrick:offTrump]))
	assert.Equal(t, float32(1), out[offTrump+engine.NumSuits])
	assert.Equal(t, float32(1), out[offPhase+int(engine.PhaseProvoke)])
	assert.InDelta(t, 115.0/420.0, out[offValue], 1e-6)
	assert.Equal(t, float32(4), sum(out[offHands:offParty]))
	assert.Equal(t, float32(1), out[offParty+engine.NumSeats])
	assert.Equal(t, float32(0), out[offTricks])
}

func TestEncodeRelativeSeats(t *testing.T) {
	tb := newSuitTable(t)
	tb.takeGame(t, 0, 120)
	tb.pass(t, "e-A e-Z e-K e-O", "r-6 r-7 r-8 r-9")
	tb.play(t, "r-A", "s-6", "r-6", "g-6")
	tb.act(t, engine.NewQuestion(0, engine.PronounMy, engine.Rot))

	var out [InputDim]float32
	tb.obs[2].Encode(&out)

	// Seat 0 is relative seat 2 for observer 2 and holds the Rot pair.
	rk := engine.MustParseCard("r-K")
	assert.Equal(t, float32(1), out[2*SeatDim+cardSlot(rk)])
	assert.Equal(t, float32(1), out[offTrump+int(engine.Rot)])
	assert.Equal(t, float32(1), out[offParty+2])
	assert.InDelta(t, 1.0/9, out[offTricks], 1e-6)
	assert.Greater(t, out[offPoints], float32(0))
	assert.Equal(t, float32(0), out[offPoints+1])
}

func TestActionMask(t *testing.T) {
	g := engine.NewGame(testNames, 1, engine.DefaultRules())
	g.Deal()
	var mask [NumActions]bool
	ActionMask(g.LegalMask(), &mask)

	n := 0
	for _, ok := range mask {
		if ok {
			n++
		}
	}
	require.Equal(t, len(g.LegalActions()), n)
	assert.True(t, mask[engine.EncodeValue(0)])
	assert.True(t, mask[engine.EncodeValue(420)])
	assert.False(t, mask[engine.EncodeValue(115)])
}
