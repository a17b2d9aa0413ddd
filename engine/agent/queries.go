package agent

import (
	engine "github.com/marjapussi/marjapussi/engine"
)

// HandCards returns the observer's own hand.
func (a *AgentState) HandCards() engine.CardSet { return a.Secure[a.Seat] }

// Partner returns the observer's partner seat.
func (a *AgentState) Partner() uint8 { return engine.Partner(a.Seat) }

// PossibleCards returns the cards seat may hold.
func (a *AgentState) PossibleCards(seat uint8) engine.CardSet { return a.Possible[seat] }

// SecureCards returns the cards seat is known to hold.
func (a *AgentState) SecureCards(seat uint8) engine.CardSet { return a.Secure[seat] }

// Candidates returns every card seat may or does hold.
func (a *AgentState) Candidates(seat uint8) engine.CardSet {
	return a.Possible[seat].Union(a.Secure[seat])
}

func (a *AgentState) pairsIn(suits []engine.Suit) []engine.Suit {
	var out []engine.Suit
	for _, s := range suits {
		if a.HandCards().Contains(engine.PairSet(s)) {
			out = append(out, s)
		}
	}
	return out
}

// SmallPairsOnHand lists the Eichel/Gruen pairs in the observer's hand.
func (a *AgentState) SmallPairsOnHand() []engine.Suit { return a.pairsIn(smallSuits) }

// BigPairsOnHand lists the Rot/Schell pairs in the observer's hand.
func (a *AgentState) BigPairsOnHand() []engine.Suit { return a.pairsIn(bigSuits) }

// PairsOnHand lists all pairs in the observer's hand, small ones first.
func (a *AgentState) PairsOnHand() []engine.Suit {
	return append(a.SmallPairsOnHand(), a.BigPairsOnHand()...)
}

// StandaloneHalvesOnHand returns the Kings and Obers whose partner card is
// not in the observer's hand.
func (a *AgentState) StandaloneHalvesOnHand() engine.CardSet {
	halves := a.HandCards().Intersect(allHalves)
	for _, s := range a.PairsOnHand() {
		halves = halves.Diff(engine.PairSet(s))
	}
	return halves
}

// HaveSecurePair reports whether the observer's party can be sure to declare
// a trump: a pair in hand, a pair the partner signalled with certainty or
// revealed, a pair split between the two partners, or enough halves
// signalled on both sides to meet.
func (a *AgentState) HaveSecurePair() bool {
	if len(a.PairsOnHand()) > 0 {
		return true
	}
	p := a.Partner()
	if a.Concepts.Value(ConceptName(p, FactHasBigPair)) == 1 || a.Concepts.Value(ConceptName(p, FactHasSmallPair)) == 1 {
		return true
	}
	team := a.Secure[a.Seat].Union(a.Secure[p])
	for _, s := range engine.Suits {
		if !a.isTrump(s) && team.Contains(engine.PairSet(s)) {
			return true
		}
	}

	mine := a.HandCards().Intersect(allHalves).Len()
	partnerThree := a.Concepts.Get(ConceptName(p, FactThreeHalves)) != nil
	partnerTwo := a.Concepts.Get(ConceptName(p, FactTwoHalves)) != nil ||
		a.Concepts.Get(ConceptName(p, FactHasHalves)) != nil
	return (mine >= 3 && (partnerThree || partnerTwo)) || (mine == 2 && partnerThree)
}

// StandingCards returns the cards seat holds or may hold that win a trick
// led in their suit against every card still out. Secure and possible cards
// both count, so for another seat this is an upper bound. While trump cards
// are left only the trump suit counts.
func (a *AgentState) StandingCards(seat uint8) engine.CardSet {
	hand := a.Candidates(seat)
	if a.Trump.Valid() && !a.CardsLeft.OfSuit(a.Trump).Empty() {
		return a.standingInSuit(a.Trump, hand)
	}
	var out engine.CardSet
	for _, s := range engine.Suits {
		out = out.Union(a.standingInSuit(s, hand))
	}
	return out
}

// standingInSuit walks the cards of suit still out from the top and collects
// them while they belong to hand.
func (a *AgentState) standingInSuit(suit engine.Suit, hand engine.CardSet) engine.CardSet {
	var out engine.CardSet
	for r := engine.Ace; ; r-- {
		c := engine.NewCard(suit, r)
		if a.CardsLeft.Has(c) {
			if !hand.Has(c) {
				break
			}
			out.Add(c)
		}
		if r == engine.Six {
			break
		}
	}
	return out
}
