package agent

import (
	engine "github.com/marjapussi/marjapussi/engine"
)

// ProvokingSteps returns every step seat provoked so far, each measured from
// the highest value before it. A fold is recorded as 0.
func (a *AgentState) ProvokingSteps(seat uint8) []int {
	var steps []int
	high := a.Rules.StartValue
	for _, act := range a.ProvokingHistory {
		if act.Seat == seat {
			step := act.Value - high
			if step < 0 {
				step = 0
			}
			steps = append(steps, step)
		}
		if act.Value > high {
			high = act.Value
		}
	}
	return steps
}

// interpretProvoke reads the provoking conventions into concepts about the
// provoking seat:
//
//	+5 below SignalCeiling  an ace, or halves when the partner already showed an ace
//	+10                     a small pair or at least three halves
//	+15                     a big pair
//
// Only a seat's first step is read. The observer's own steps carry nothing new.
func (a *AgentState) interpretProvoke(act engine.Action) {
	seat := act.Seat
	if seat == a.Seat {
		return
	}
	steps := a.ProvokingSteps(seat)
	if len(steps) != 1 {
		return
	}
	partnerSteps := a.ProvokingSteps(engine.Partner(seat))
	partnerShowedAce := len(partnerSteps) > 0 && partnerSteps[0] == StepAce

	log := a.logger().WithField("seat", seat)
	switch steps[0] {
	case StepAce:
		if act.Value >= SignalCeiling {
			return
		}
		if partnerShowedAce {
			a.Concepts.Add(fact(ConceptName(seat, FactHasHalves), seatProps(seat, InfoHalves), 1))
			log.Debug("reads +5 as halves")
			return
		}
		aces := a.Possible[seat].Union(a.Secure[seat]).Intersect(engine.RankSet(engine.Ace))
		if aces.Empty() {
			a.Concepts.Add(fact(ConceptName(seat, FactFakingAce), seatProps(seat, InfoAce), 1))
			log.Debug("reads +5 as a faked ace")
			return
		}
		a.Concepts.Add(fact(ConceptName(seat, FactHasAce), seatProps(seat, InfoAce), 1))
		log.Debug("reads +5 as an ace")
	case StepSmallPair:
		a.Concepts.Add(fact(ConceptName(seat, FactHasSmallPair), seatProps(seat, InfoSmallPair), 0.5))
		a.Concepts.Add(fact(ConceptName(seat, FactThreeHalves), seatProps(seat, InfoHalves), 0.5))
		a.addHasPair(seat)
		log.Debug("reads +10 as a small pair or three halves")
	case StepBigPair:
		a.Concepts.Add(fact(ConceptName(seat, FactHasBigPair), seatProps(seat, InfoBigPair), 1))
		a.addHasPair(seat)
		log.Debug("reads +15 as a big pair")
	}
}

// addHasPair adds the derived "has a pair" concept of seat, which follows the
// small and big pair concepts.
func (a *AgentState) addHasPair(seat uint8) {
	c, _ := NewConcept(ConceptName(seat, FactHasPair), seatProps(seat, InfoPair),
		[]string{ConceptName(seat, FactHasSmallPair), ConceptName(seat, FactHasBigPair)},
		[]float64{1, 1}, 0)
	a.Concepts.Add(c)
}
