package engine

import (
	"fmt"
	"strings"
)

// Suit is one of the four MarjaPussi suits. The numeric order is the
// display/sort order only and has no bearing on play legality.
type Suit uint8

const (
	Gruen  Suit = 0
	Eichel Suit = 1
	Schell Suit = 2
	Rot    Suit = 3

	// NoSuit marks an unset suit (no trump declared, empty trick, colorless talk).
	NoSuit Suit = 0x0F
)

// NumSuits is the number of real suits.
const NumSuits = 4

// Suits lists the suits in display order (Rot first).
var Suits = [NumSuits]Suit{Rot, Schell, Eichel, Gruen}

var suitSymbols = [NumSuits]string{"g", "e", "s", "r"}
var suitNames = [NumSuits]string{"Gruen", "Eichel", "Schell", "Rot"}

// String returns the one-letter suit symbol, or "-" for NoSuit.
func (s Suit) String() string {
	if s >= NumSuits {
		return "-"
	}
	return suitSymbols[s]
}

// Name returns the full suit name.
func (s Suit) Name() string {
	if s >= NumSuits {
		return "None"
	}
	return suitNames[s]
}

// Valid reports whether s is one of the four real suits.
func (s Suit) Valid() bool { return s < NumSuits }

// IsBig reports whether pairs of this suit count as big pairs (Rot, Schell).
func (s Suit) IsBig() bool { return s == Rot || s == Schell }

// ParseSuit parses a suit symbol ("r", "s", "e", "g").
func ParseSuit(sym string) (Suit, error) {
	for i, s := range suitSymbols {
		if s == sym {
			return Suit(i), nil
		}
	}
	return NoSuit, &InvalidCardError{Input: sym, Reason: "unknown suit symbol"}
}

// Rank is a card rank ordered by trick-taking strength, Six lowest, Ace highest.
type Rank uint8

const (
	Six   Rank = 0
	Seven Rank = 1
	Eight Rank = 2
	Nine  Rank = 3
	Unter Rank = 4
	Ober  Rank = 5
	King  Rank = 6
	Ten   Rank = 7
	Ace   Rank = 8
)

// NumRanks is the number of ranks per suit.
const NumRanks = 9

var rankSymbols = [NumRanks]string{"6", "7", "8", "9", "U", "O", "K", "Z", "A"}

// String returns the one-letter rank symbol.
func (r Rank) String() string {
	if r >= NumRanks {
		return "?"
	}
	return rankSymbols[r]
}

// ParseRank parses a rank symbol ("6".."9", "U", "O", "K", "Z", "A").
func ParseRank(sym string) (Rank, error) {
	for i, s := range rankSymbols {
		if s == sym {
			return Rank(i), nil
		}
	}
	return 0, &InvalidCardError{Input: sym, Reason: "unknown rank symbol"}
}

const (
	NumSeats  = 4
	DeckSize  = NumSuits * NumRanks // 36
	HandSize  = DeckSize / NumSeats // 9
	NumTricks = HandSize
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

// NewCard constructs a Card from suit and rank.
func NewCard(s Suit, r Rank) Card {
	return Card((uint8(s) << 4) | (uint8(r) & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() Suit { return Suit(uint8(c) >> 4) }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() Rank { return Rank(uint8(c) & 0x0F) }

// Valid reports whether c names one of the 36 deck cards.
func (c Card) Valid() bool {
	return c != EmptyCard && c.Suit() < NumSuits && c.Rank() < NumRanks
}

// IsHalf reports whether c is a King or an Ober, i.e. one half of a pair.
func (c Card) IsHalf() bool {
	r := c.Rank()
	return r == King || r == Ober
}

// Beats reports whether c ranks above o within the same suit.
func (c Card) Beats(o Card) bool {
	return c.Suit() == o.Suit() && c.Rank() > o.Rank()
}

// String renders the card as "<suit>-<rank>", e.g. "r-A".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return c.Suit().String() + "-" + c.Rank().String()
}

// ParseCard parses the "<suit>-<rank>" notation used by String.
func ParseCard(s string) (Card, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 2 {
		return EmptyCard, &InvalidCardError{Input: s, Reason: "expected <suit>-<rank>"}
	}
	suit, err := ParseSuit(parts[0])
	if err != nil {
		return EmptyCard, &InvalidCardError{Input: s, Reason: "unknown suit symbol"}
	}
	rank, err := ParseRank(parts[1])
	if err != nil {
		return EmptyCard, &InvalidCardError{Input: s, Reason: "unknown rank symbol"}
	}
	return NewCard(suit, rank), nil
}

// MustParseCard is ParseCard for literals known to be valid. It panics otherwise.
func MustParseCard(s string) Card {
	c, err := ParseCard(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseCards parses a whitespace separated card list.
func ParseCards(s string) ([]Card, error) {
	fields := strings.Fields(s)
	out := make([]Card, 0, len(fields))
	var seen CardSet
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		if seen.Has(c) {
			return nil, &InvalidCardError{Input: f, Reason: "duplicate card"}
		}
		seen.Add(c)
		out = append(out, c)
	}
	return out, nil
}

// NewDeck returns the 36 cards in display order.
func NewDeck() []Card {
	return FullDeck.Cards()
}

// CardsString joins cards with single spaces.
func CardsString(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// Phase
// ---------------------------------------------------------------------------

// Phase is the referee's protocol phase.
type Phase uint8

const (
	PhaseProvoke  Phase = iota // PROV
	PhasePass                  // PASS
	PhasePassBack              // PBCK
	PhaseRaise                 // PRMO
	PhaseQuestion              // QUES
	PhaseAnswer                // ANSW
	PhaseAnnounce              // ANSA
	PhaseTrick                 // TRCK
	PhaseDone                  // DONE
)

var phaseTags = [...]string{"PROV", "PASS", "PBCK", "PRMO", "QUES", "ANSW", "ANSA", "TRCK", "DONE"}

func (p Phase) String() string {
	if int(p) < len(phaseTags) {
		return phaseTags[p]
	}
	return fmt.Sprintf("Phase(%d)", p)
}

// ParsePhase parses a four-letter phase tag.
func ParsePhase(tag string) (Phase, error) {
	for i, t := range phaseTags {
		if t == tag {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", tag)
}

// carriesValue reports whether actions in p carry an integer payload.
func (p Phase) carriesValue() bool { return p == PhaseProvoke || p == PhaseRaise }

// carriesCard reports whether actions in p carry a card payload.
func (p Phase) carriesCard() bool { return p == PhasePass || p == PhasePassBack || p == PhaseTrick }

// carriesTalk reports whether actions in p carry a talk payload.
func (p Phase) carriesTalk() bool {
	return p == PhaseQuestion || p == PhaseAnswer || p == PhaseAnnounce
}

// ---------------------------------------------------------------------------
// Action index constants
// ---------------------------------------------------------------------------

// Every distinct action payload maps to a stable index so that legal sets can
// be exported as bitmasks for learning agents. The seat and phase are implied
// by the decision context.
const (
	ActionBaseValue uint16 = 0   // value/5 for 0..420, 85 entries
	ActionBaseCard  uint16 = 85  // card bit index, 36 entries
	ActionBaseTalk  uint16 = 121 // (pronoun-1)*5 + suit slot, 40 entries

	NumActions uint16 = 161
)

// EncodeValue returns the action index of a PROV/PRMO payload.
func EncodeValue(v int) uint16 { return ActionBaseValue + uint16(v/5) }

// EncodeCard returns the action index of a PASS/PBCK/TRCK payload.
func EncodeCard(c Card) uint16 { return ActionBaseCard + uint16(c.bit()) }

// EncodeTalk returns the action index of a QUES/ANSW/ANSA payload.
func EncodeTalk(t Talk) uint16 {
	slot := uint16(4)
	if t.Suit.Valid() {
		slot = uint16(t.Suit)
	}
	return ActionBaseTalk + uint16(t.Pronoun-1)*5 + slot
}
