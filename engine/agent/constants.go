package agent

import (
	"fmt"

	engine "github.com/marjapussi/marjapussi/engine"
)

// Property keys carried by belief concepts.
const (
	PropSeat     = "seat"
	PropSuit     = "suit"
	PropInfoType = "info_type"
	PropShared   = "shared"
)

// InfoType classifies what a concept says about a seat.
type InfoType string

const (
	InfoAce       InfoType = "ace"
	InfoHalves    InfoType = "halves"
	InfoHalf      InfoType = "half"
	InfoPair      InfoType = "pair"
	InfoSmallPair InfoType = "small_pair"
	InfoBigPair   InfoType = "big_pair"
	InfoNoPair    InfoType = "no_pair"
)

// Fact suffixes used in concept names ("<seat>_<fact>").
const (
	FactHasAce       = "has_ace"
	FactFakingAce    = "is_faking_ace"
	FactHasHalves    = "has_halves"
	FactTwoHalves    = "has_2_halves"
	FactThreeHalves  = "has_3+_halves"
	FactHasSmallPair = "has_small_pair"
	FactHasBigPair   = "has_big_pair"
	FactHasPair      = "has_pair"
	FactHasNoPair    = "has_no_pair"
)

// ConceptName returns the concept name of fact about seat.
func ConceptName(seat uint8, fact string) string {
	return fmt.Sprintf("%d_%s", seat, fact)
}

// SuitConceptName returns the concept name of a suit-bound fact such as
// "2_has_r_half".
func SuitConceptName(seat uint8, suit engine.Suit, what string) string {
	return fmt.Sprintf("%d_has_%s_%s", seat, suit, what)
}

func seatProps(seat uint8, info InfoType) map[string]string {
	return map[string]string{
		PropSeat:     fmt.Sprint(seat),
		PropInfoType: string(info),
	}
}

func suitProps(seat uint8, suit engine.Suit, info InfoType) map[string]string {
	p := seatProps(seat, info)
	p[PropSuit] = suit.String()
	return p
}

// SignalCeiling is the game value up to which a single +5 step is read as
// an ace signal.
const SignalCeiling = 140

// Conventional first provoking steps.
const (
	StepAce       = 5
	StepSmallPair = 10
	StepBigPair   = 15
)

// smallSuits and bigSuits list the suits by pair size in display order.
var (
	smallSuits = []engine.Suit{engine.Eichel, engine.Gruen}
	bigSuits   = []engine.Suit{engine.Rot, engine.Schell}
)

// allHalves holds every King and Ober.
var allHalves = engine.RankSet(engine.King).Union(engine.RankSet(engine.Ober))

// otherHalf returns the second card of c's pair.
func otherHalf(c engine.Card) engine.Card {
	if c.Rank() == engine.King {
		return engine.NewCard(c.Suit(), engine.Ober)
	}
	return engine.NewCard(c.Suit(), engine.King)
}
