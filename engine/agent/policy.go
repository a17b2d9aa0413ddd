package agent

import (
	"math/rand/v2"
	"sort"

	engine "github.com/marjapussi/marjapussi/engine"
)

// Policy chooses actions for one seat from its belief. SelectAction must
// return a member of legal; anything else fails the hand.
type Policy interface {
	// GameStart is called once per hand before any action is requested.
	GameStart(s *AgentState)
	// SelectAction picks one of the legal actions of the seat at turn.
	SelectAction(s *AgentState, legal []engine.Action) engine.Action
	// ObserveAction is called for every action after the belief absorbed it.
	ObserveAction(s *AgentState, a engine.Action)
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RandomPolicy picks uniformly among the legal actions.
type RandomPolicy struct {
	rng *rand.Rand
}

// NewRandomPolicy returns a RandomPolicy with its own seeded generator.
func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{rng: newRand(seed)}
}

func (p *RandomPolicy) GameStart(*AgentState)                    {}
func (p *RandomPolicy) ObserveAction(*AgentState, engine.Action) {}

func (p *RandomPolicy) SelectAction(_ *AgentState, legal []engine.Action) engine.Action {
	return legal[p.rng.IntN(len(legal))]
}

// LittleSmartPolicy provokes at random and otherwise picks among the first
// half of the legal actions, which keeps it away from high raises and the
// last cards of the enumeration.
type LittleSmartPolicy struct {
	rng *rand.Rand
}

// NewLittleSmartPolicy returns a LittleSmartPolicy with its own seeded generator.
func NewLittleSmartPolicy(seed uint64) *LittleSmartPolicy {
	return &LittleSmartPolicy{rng: newRand(seed)}
}

func (p *LittleSmartPolicy) GameStart(*AgentState)                    {}
func (p *LittleSmartPolicy) ObserveAction(*AgentState, engine.Action) {}

func (p *LittleSmartPolicy) SelectAction(_ *AgentState, legal []engine.Action) engine.Action {
	if legal[0].Phase == engine.PhaseProvoke {
		return legal[p.rng.IntN(len(legal))]
	}
	half := (len(legal) + 1) / 2
	return legal[p.rng.IntN(half)]
}

// ConventionPolicy plays by the provoking conventions its belief reads:
// it signals aces and pairs with the conventional first step, only goes on
// with a secure pair, declares whenever it can and leads standing cards.
type ConventionPolicy struct {
	rng *rand.Rand
}

// NewConventionPolicy returns a ConventionPolicy with its own seeded generator.
func NewConventionPolicy(seed uint64) *ConventionPolicy {
	return &ConventionPolicy{rng: newRand(seed)}
}

func (p *ConventionPolicy) GameStart(*AgentState)                    {}
func (p *ConventionPolicy) ObserveAction(*AgentState, engine.Action) {}

func (p *ConventionPolicy) SelectAction(s *AgentState, legal []engine.Action) engine.Action {
	switch legal[0].Phase {
	case engine.PhaseProvoke:
		return p.provoke(s, legal)
	case engine.PhasePass:
		return pickCard(legal, func(c engine.Card) int { return passForthScore(s, c) })
	case engine.PhasePassBack:
		return pickCard(legal, func(c engine.Card) int { return -passForthScore(s, c) })
	case engine.PhaseRaise:
		return legal[0]
	}
	if a, ok := bestDeclaration(s, legal); ok {
		return a
	}
	for _, a := range legal {
		if a.Phase == engine.PhaseAnswer || a.Phase == engine.PhaseAnnounce {
			return a
		}
	}
	return p.play(s, legal)
}

// provoke signals with the first step and raises further by 5 only up to
// what a secure pair can carry.
func (p *ConventionPolicy) provoke(s *AgentState, legal []engine.Action) engine.Action {
	want := 0
	if len(s.ProvokingSteps(s.Seat)) == 0 {
		switch {
		case len(s.BigPairsOnHand()) > 0:
			want = s.Value + StepBigPair
		case len(s.SmallPairsOnHand()) > 0 || s.HandCards().Intersect(allHalves).Len() >= 3:
			want = s.Value + StepSmallPair
		case !s.HandCards().Intersect(engine.RankSet(engine.Ace)).Empty() && !partnerShowedAce(s):
			want = s.Value + StepAce
		}
	} else if s.HaveSecurePair() && s.Value+5 <= provokeLimit(s) {
		want = s.Value + 5
	}
	for _, a := range legal {
		if a.Value == want {
			return a
		}
	}
	return legal[0]
}

func partnerShowedAce(s *AgentState) bool {
	steps := s.ProvokingSteps(s.Partner())
	return len(steps) > 0 && steps[0] == StepAce
}

// provokeLimit estimates how high the party can go: the trick pool share of
// a good hand plus the best pair the party is sure of.
func provokeLimit(s *AgentState) int {
	best := 0
	team := s.HandCards().Union(s.Secure[s.Partner()])
	for _, suit := range engine.Suits {
		if team.Contains(engine.PairSet(suit)) && s.Rules.SuitValue(suit) > best {
			best = s.Rules.SuitValue(suit)
		}
	}
	if best == 0 {
		best = s.Rules.SuitValue(engine.Gruen)
	}
	return 100 + best
}

// passForthScore ranks cards worth giving to the playing seat: aces, halves
// and tens first.
func passForthScore(s *AgentState, c engine.Card) int {
	score := s.Rules.CardPoints(c)
	if c.Rank() == engine.Ace {
		score += 20
	}
	if c.IsHalf() {
		score += 15
	}
	return score
}

// pickCard returns the card action with the highest score, the first on ties.
func pickCard(legal []engine.Action, score func(engine.Card) int) engine.Action {
	best := legal[0]
	for _, a := range legal[1:] {
		if score(a.Card) > score(best.Card) {
			best = a
		}
	}
	return best
}

// bestDeclaration returns the "my" question or answer of the most valuable suit.
func bestDeclaration(s *AgentState, legal []engine.Action) (engine.Action, bool) {
	var mine []engine.Action
	for _, a := range legal {
		if (a.Phase == engine.PhaseQuestion || a.Phase == engine.PhaseAnswer) && a.Talk.Pronoun == engine.PronounMy {
			mine = append(mine, a)
		}
	}
	if len(mine) == 0 {
		return engine.Action{}, false
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return s.Rules.SuitValue(mine[i].Talk.Suit) > s.Rules.SuitValue(mine[j].Talk.Suit)
	})
	return mine[0], true
}

// play leads a standing card when it can and otherwise plays the cheapest
// allowed card. Questions about a standalone half come before leading.
func (p *ConventionPolicy) play(s *AgentState, legal []engine.Action) engine.Action {
	halves := s.StandaloneHalvesOnHand()
	var plays []engine.Action
	for _, a := range legal {
		switch a.Phase {
		case engine.PhaseTrick:
			plays = append(plays, a)
		case engine.PhaseQuestion:
			if a.Talk.Pronoun == engine.PronounOur && !halves.OfSuit(a.Talk.Suit).Empty() {
				return a
			}
		}
	}
	if len(plays) == 0 {
		return legal[p.rng.IntN(len(legal))]
	}
	standing := s.StandingCards(s.Seat)
	for _, a := range plays {
		if standing.Has(a.Card) {
			return a
		}
	}
	return pickCard(plays, func(c engine.Card) int { return -s.Rules.CardPoints(c)*16 - int(c.Rank()) })
}
