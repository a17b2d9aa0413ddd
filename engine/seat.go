package engine

// Partner returns the partner of seat i.
func Partner(i uint8) uint8 { return (i + 2) % NumSeats }

// Next returns the seat after i in turn order.
func Next(i uint8) uint8 { return (i + 1) % NumSeats }

// Seat is the authoritative per-seat record.
type Seat struct {
	Name           string
	Index          uint8
	Hand           CardSet
	StillProvoking bool
	Provoked       int   // highest value this seat said
	Asking         uint8 // 0: may still say my, 1: asked yours, 2: asked our
	Tricks         int
	TrumpCalls     []Suit
	Points         int
}

// Partner returns the partner's seat index.
func (s *Seat) Partner() uint8 { return Partner(s.Index) }

// Next returns the next seat index in turn order.
func (s *Seat) Next() uint8 { return Next(s.Index) }

// Give hands c to this seat.
func (s *Seat) Give(c Card) { s.Hand.Add(c) }

// Take removes c from this seat's hand.
func (s *Seat) Take(c Card) { s.Hand.Remove(c) }

// TakeTrick credits a won trick. last adds the last-trick bonus.
func (s *Seat) TakeTrick(t *Trick, r *Rules, last bool) {
	s.Tricks++
	s.Points += t.Points(r)
	if last {
		s.Points += r.LastTrickBonus
	}
}

// CallTrump credits a declared or confirmed suit. A seat is credited at most
// once per suit; the return value reports whether points were added.
func (s *Seat) CallTrump(suit Suit, r *Rules) bool {
	if s.HasCalled(suit) {
		return false
	}
	s.TrumpCalls = append(s.TrumpCalls, suit)
	s.Points += r.SuitValue(suit)
	return true
}

// HasCalled reports whether this seat already called suit.
func (s *Seat) HasCalled(suit Suit) bool {
	for _, c := range s.TrumpCalls {
		if c == suit {
			return true
		}
	}
	return false
}

// HasPair reports whether the hand holds King and Ober of suit.
func (s *Seat) HasPair(suit Suit) bool { return s.Hand.Contains(PairSet(suit)) }

// HasHalf reports whether the hand holds King or Ober of suit.
func (s *Seat) HasHalf(suit Suit) bool { return !s.Hand.Intersect(PairSet(suit)).Empty() }
