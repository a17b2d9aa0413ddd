package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/marjapussi/marjapussi/engine"
)

func TestNewConcept(t *testing.T) {
	c, err := NewConcept("x", nil, []string{"a", "b"}, nil, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1}, c.Weights)
	assert.Equal(t, 1.0, c.Value)
	assert.NotNil(t, c.Properties)

	_, err = NewConcept("y", nil, []string{"a"}, []float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestConceptEvaluate(t *testing.T) {
	s := NewConceptStore()
	s.Add(fact("a", nil, 0.25))
	s.Add(fact("b", nil, 0.5))
	sum, err := NewConcept("sum", nil, []string{"a", "b", "missing"}, []float64{1, 1, 1}, 0.9)
	require.NoError(t, err)
	s.Add(sum)

	assert.InDelta(t, 0.75, sum.Evaluate(s, false), 1e-12)
	assert.Equal(t, 0.9, sum.Evaluate(s, true))
	assert.InDelta(t, 0.75, s.Value("sum"), 1e-12)
	assert.Equal(t, 0.0, s.Value("missing"))

	heavy, _ := NewConcept("heavy", nil, []string{"a", "b"}, []float64{4, 4}, 0)
	assert.Equal(t, 1.0, heavy.Evaluate(s, false))
	neg, _ := NewConcept("neg", nil, []string{"a"}, []float64{-1}, 0)
	assert.Equal(t, 0.0, neg.Evaluate(s, false))
}

func TestConceptCycleTerminates(t *testing.T) {
	s := NewConceptStore()
	x, _ := NewConcept("x", nil, []string{"y"}, nil, 0)
	y, _ := NewConcept("y", nil, []string{"x", "z"}, nil, 0)
	s.Add(x)
	s.Add(y)
	s.Add(fact("z", nil, 0.4))
	assert.InDelta(t, 0.4, s.Value("x"), 1e-12)
}

func TestConceptStoreProperties(t *testing.T) {
	s := NewConceptStore()
	s.Add(fact(ConceptName(1, FactHasAce), seatProps(1, InfoAce), 1))
	s.Add(fact(ConceptName(3, FactHasAce), seatProps(3, InfoAce), 1))
	s.Add(fact(SuitConceptName(1, engine.Rot, "half"), suitProps(1, engine.Rot, InfoHalf), 1))

	aces := s.AllByProperties(map[string]string{PropInfoType: string(InfoAce)})
	require.Len(t, aces, 2)
	assert.Equal(t, "1_has_ace", aces[0].Name)
	assert.Equal(t, "3_has_ace", aces[1].Name)

	seat1 := s.AllByProperties(map[string]string{PropSeat: "1"})
	assert.Len(t, seat1, 2)
	assert.Len(t, s.AllByProperties(nil), 3)
	assert.Equal(t, "1_has_r_half", SuitConceptName(1, engine.Rot, "half"))

	// Replacing a concept drops its old property index entries.
	s.Add(fact(ConceptName(1, FactHasAce), seatProps(1, InfoHalves), 1))
	assert.Len(t, s.AllByProperties(map[string]string{PropInfoType: string(InfoAce)}), 1)

	assert.True(t, s.Remove("3_has_ace"))
	assert.False(t, s.Remove("3_has_ace"))
	assert.Empty(t, s.AllByProperties(map[string]string{PropInfoType: string(InfoAce)}))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []string{"1_has_ace", "1_has_r_half"}, s.Names())
}

func TestConceptStoreClone(t *testing.T) {
	s := NewConceptStore()
	s.Add(fact("a", map[string]string{PropSeat: "0"}, 0.5))
	cp := s.Clone()
	cp.Get("a").Properties[PropSeat] = "2"
	cp.Add(fact("b", nil, 1))

	assert.Equal(t, "0", s.Get("a").Properties[PropSeat])
	assert.Nil(t, s.Get("b"))
	assert.Equal(t, "[a=0.50]", s.String())
}

func TestProvokingConcepts(t *testing.T) {
	tb := newSuitTable(t)
	tb.act(t, engine.NewProvoke(0, 120))
	tb.act(t, engine.NewProvoke(1, 130))
	tb.act(t, engine.NewProvoke(2, 145))

	o := tb.obs[3]
	assert.Equal(t, 1.0, o.Concepts.Value(ConceptName(0, FactHasAce)))
	assert.Equal(t, 0.5, o.Concepts.Value(ConceptName(1, FactHasSmallPair)))
	assert.Equal(t, 0.5, o.Concepts.Value(ConceptName(1, FactThreeHalves)))
	assert.Equal(t, 0.5, o.Concepts.Value(ConceptName(1, FactHasPair)))
	assert.Equal(t, 1.0, o.Concepts.Value(ConceptName(2, FactHasBigPair)))
	assert.Equal(t, 1.0, o.Concepts.Value(ConceptName(2, FactHasPair)))
	assert.Equal(t, []int{5}, o.ProvokingSteps(0))
	assert.Equal(t, []int{10}, o.ProvokingSteps(1))

	// Own provoking carries nothing new for the observer.
	assert.Nil(t, tb.obs[0].Concepts.Get(ConceptName(0, FactHasAce)))

	// Later steps are not read as signals.
	tb.act(t, engine.NewProvoke(3, 0))
	tb.act(t, engine.NewProvoke(0, 150))
	assert.Equal(t, []int{5, 5}, tb.obs[3].ProvokingSteps(0))
	assert.Nil(t, tb.obs[3].Concepts.Get(ConceptName(0, FactHasHalves)))
}

func TestProvokeAfterPartnerAceMeansHalves(t *testing.T) {
	tb := newSuitTable(t)
	tb.act(t, engine.NewProvoke(0, 120))
	tb.act(t, engine.NewProvoke(1, 0))
	tb.act(t, engine.NewProvoke(2, 125))

	o := tb.obs[1]
	assert.Equal(t, 1.0, o.Concepts.Value(ConceptName(2, FactHasHalves)))
	assert.Nil(t, o.Concepts.Get(ConceptName(2, FactHasAce)))
	assert.Equal(t, []int{0}, o.ProvokingSteps(1))
}
