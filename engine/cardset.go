package engine

import (
	"math/bits"
	"strings"
)

// CardSet is a bitset over the 36-card deck. Bit order equals display order:
// bit 0 is r-A, bit 8 is r-6, bit 9 is s-A, ..., bit 35 is g-6.
type CardSet uint64

// FullDeck contains every card exactly once.
const FullDeck CardSet = 1<<DeckSize - 1

// bit returns the bit index of c within a CardSet.
func (c Card) bit() uint {
	return uint(NumSuits-1-uint8(c.Suit()))*NumRanks + uint(NumRanks-1-uint8(c.Rank()))
}

// cardAt is the inverse of Card.bit.
func cardAt(i uint) Card {
	return NewCard(Suit(NumSuits-1-i/NumRanks), Rank(NumRanks-1-i%NumRanks))
}

// NewCardSet builds a set from the given cards. Invalid cards are ignored.
func NewCardSet(cards ...Card) CardSet {
	var s CardSet
	for _, c := range cards {
		s.Add(c)
	}
	return s
}

// SuitSet returns the nine cards of suit s.
func SuitSet(s Suit) CardSet {
	if !s.Valid() {
		return 0
	}
	return CardSet(1<<NumRanks-1) << (uint(NumSuits-1-uint8(s)) * NumRanks)
}

// RankSet returns the four cards of rank r.
func RankSet(r Rank) CardSet {
	var out CardSet
	for s := Suit(0); s < NumSuits; s++ {
		out.Add(NewCard(s, r))
	}
	return out
}

// PairSet returns King and Ober of suit s.
func PairSet(s Suit) CardSet {
	return NewCardSet(NewCard(s, King), NewCard(s, Ober))
}

// HigherSet returns the cards of c's suit ranked above c.
func HigherSet(c Card) CardSet {
	var out CardSet
	for r := c.Rank() + 1; r < NumRanks; r++ {
		out.Add(NewCard(c.Suit(), r))
	}
	return out
}

// Add inserts c.
func (s *CardSet) Add(c Card) {
	if c.Valid() {
		*s |= 1 << c.bit()
	}
}

// Remove deletes c.
func (s *CardSet) Remove(c Card) {
	if c.Valid() {
		*s &^= 1 << c.bit()
	}
}

// Has reports whether c is in the set.
func (s CardSet) Has(c Card) bool {
	return c.Valid() && s&(1<<c.bit()) != 0
}

func (s CardSet) Union(o CardSet) CardSet     { return s | o }
func (s CardSet) Intersect(o CardSet) CardSet { return s & o }
func (s CardSet) Diff(o CardSet) CardSet      { return s &^ o }

// Contains reports whether o is a subset of s.
func (s CardSet) Contains(o CardSet) bool { return o&^s == 0 }

// Len returns the number of cards in the set.
func (s CardSet) Len() int { return bits.OnesCount64(uint64(s)) }

// Empty reports whether the set has no cards.
func (s CardSet) Empty() bool { return s == 0 }

// First returns the first card in display order, or EmptyCard.
func (s CardSet) First() Card {
	if s == 0 {
		return EmptyCard
	}
	return cardAt(uint(bits.TrailingZeros64(uint64(s))))
}

// OfSuit returns the cards of s restricted to suit.
func (s CardSet) OfSuit(suit Suit) CardSet { return s & SuitSet(suit) }

// Cards returns the members in display order.
func (s CardSet) Cards() []Card {
	out := make([]Card, 0, s.Len())
	for v := uint64(s); v != 0; v &= v - 1 {
		out = append(out, cardAt(uint(bits.TrailingZeros64(v))))
	}
	return out
}

// String renders the set in display order, e.g. "r-A r-K s-9".
func (s CardSet) String() string {
	var b strings.Builder
	for i, c := range s.Cards() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.String())
	}
	return b.String()
}

// Strings returns each member's display string.
func (s CardSet) Strings() []string {
	cards := s.Cards()
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
