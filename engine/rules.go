package engine

import "fmt"

// MaxEncodableValue is the highest game value the action index space covers.
const MaxEncodableValue = 420

// Rules holds the configurable rule set. It is passed explicitly into the
// referee; nothing in the engine reads ambient rule constants.
type Rules struct {
	StartValue     int // game value before anyone provokes
	MaxValue       int // ceiling for PROV and PRMO raises
	RaiseStep      int // raises are multiples of this
	PassCount      int // cards passed in each direction
	LastTrickBonus int // awarded to the taker of the final trick

	SuitPoints [NumSuits]int // credited once per trump declaration, indexed by Suit
	RankPoints [NumRanks]int // card points, indexed by Rank
}

// DefaultRules returns the standard MarjaPussi rules.
func DefaultRules() Rules {
	return Rules{
		StartValue:     115,
		MaxValue:       420,
		RaiseStep:      5,
		PassCount:      4,
		LastTrickBonus: 20,
		SuitPoints:     [NumSuits]int{Gruen: 40, Eichel: 60, Schell: 80, Rot: 100},
		RankPoints:     [NumRanks]int{Unter: 2, Ober: 3, King: 4, Ten: 10, Ace: 11},
	}
}

// Validate checks the rule set for internal consistency.
func (r *Rules) Validate() error {
	switch {
	case r.RaiseStep <= 0:
		return fmt.Errorf("raise step must be positive, got %d", r.RaiseStep)
	case r.RaiseStep%5 != 0:
		return fmt.Errorf("raise step %d is not a multiple of 5", r.RaiseStep)
	case r.StartValue%r.RaiseStep != 0:
		return fmt.Errorf("start value %d is not a multiple of raise step %d", r.StartValue, r.RaiseStep)
	case r.MaxValue < r.StartValue:
		return fmt.Errorf("max value %d below start value %d", r.MaxValue, r.StartValue)
	case r.MaxValue > MaxEncodableValue:
		return fmt.Errorf("max value %d above %d", r.MaxValue, MaxEncodableValue)
	case r.StartValue <= 0:
		return fmt.Errorf("start value must be positive, got %d", r.StartValue)
	case r.PassCount <= 0 || r.PassCount > HandSize:
		return fmt.Errorf("pass count %d out of range", r.PassCount)
	}
	return nil
}

// CardPoints returns the trick points of c.
func (r *Rules) CardPoints(c Card) int {
	if !c.Valid() {
		return 0
	}
	return r.RankPoints[c.Rank()]
}

// SetPoints sums the trick points of every card in s.
func (r *Rules) SetPoints(s CardSet) int {
	total := 0
	for _, c := range s.Cards() {
		total += r.CardPoints(c)
	}
	return total
}

// SuitValue returns the declaration bonus for suit s.
func (r *Rules) SuitValue(s Suit) int {
	if !s.Valid() {
		return 0
	}
	return r.SuitPoints[s]
}

// TrickPointPool is the sum of all card points plus the last-trick bonus,
// i.e. the trick points distributed over one complete hand.
func (r *Rules) TrickPointPool() int {
	return r.SetPoints(FullDeck) + r.LastTrickBonus
}

// raises enumerates every legal raise above current, in ascending order.
func (r *Rules) raises(current int) []int {
	var out []int
	for v := current + r.RaiseStep; v <= r.MaxValue; v += r.RaiseStep {
		out = append(out, v)
	}
	return out
}
