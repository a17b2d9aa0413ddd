package engine

// Trick accumulates up to four plays. It is a flat value type.
type Trick struct {
	Cards [NumSeats]Card
	Seats [NumSeats]uint8
	N     uint8 // cards played so far
	Trump Suit  // NoSuit when no trump is declared
	Base  Suit  // suit of the first card, NoSuit while empty
	high  uint8 // index into Cards of the current high card
}

// NewTrick returns an empty trick under the given trump (NoSuit for none).
func NewTrick(trump Suit) Trick {
	t := Trick{Trump: trump, Base: NoSuit}
	for i := range t.Cards {
		t.Cards[i] = EmptyCard
	}
	return t
}

// Play appends a card. It fails with InvalidPlayError on a complete trick.
func (t *Trick) Play(c Card, seat uint8) error {
	if t.N >= NumSeats {
		return &InvalidPlayError{Card: c, Seat: seat}
	}
	if t.N == 0 {
		t.Base = c.Suit()
		t.high = 0
	} else if t.WouldBeat(c) {
		t.high = t.N
	}
	t.Cards[t.N] = c
	t.Seats[t.N] = seat
	t.N++
	return nil
}

// WouldBeat reports whether c would become the high card if played now.
// Any card would lead an empty trick.
func (t *Trick) WouldBeat(c Card) bool {
	if t.N == 0 {
		return true
	}
	h := t.Cards[t.high]
	if c.Suit() == h.Suit() {
		return c.Rank() > h.Rank()
	}
	// A different suit only wins as the first trump.
	return t.Trump.Valid() && c.Suit() == t.Trump
}

// SetTrump changes the trump of a trick nobody has played into yet.
// Declarations happen between tricks, so a started trick keeps its trump.
func (t *Trick) SetTrump(s Suit) bool {
	if t.N != 0 {
		return false
	}
	t.Trump = s
	return true
}

// Status returns the number of cards played (0-4).
func (t *Trick) Status() int { return int(t.N) }

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool { return t.N == NumSeats }

// HighCard returns the currently winning card, EmptyCard while empty.
func (t *Trick) HighCard() Card {
	if t.N == 0 {
		return EmptyCard
	}
	return t.Cards[t.high]
}

// HighSeat returns the seat that played the high card. Only meaningful once
// Status() >= 1.
func (t *Trick) HighSeat() uint8 { return t.Seats[t.high] }

// Leader returns the seat that led. Only meaningful once Status() >= 1.
func (t *Trick) Leader() uint8 { return t.Seats[0] }

// Played returns the cards played so far, in play order.
func (t *Trick) Played() []Card {
	out := make([]Card, t.N)
	copy(out, t.Cards[:t.N])
	return out
}

// Set returns the played cards as a set.
func (t *Trick) Set() CardSet {
	return NewCardSet(t.Cards[:t.N]...)
}

// Points returns the card points in the trick (without any last-trick bonus).
func (t *Trick) Points(r *Rules) int {
	return r.SetPoints(t.Set())
}
