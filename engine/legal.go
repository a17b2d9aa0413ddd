package engine

// LegalActions returns every action the seat at turn may take, in a stable
// order. An empty slice means no action exists (DONE or not yet dealt).
func (g *GameState) LegalActions() []Action {
	if g.Flags&FlagDealt == 0 || g.IsTerminal() {
		return []Action{}
	}
	switch g.Phase {
	case PhaseProvoke:
		return g.legalValues(NewProvoke)
	case PhasePass:
		return g.legalPass(g.PassedForth, NewPass)
	case PhasePassBack:
		return g.legalPass(g.PassedBack, NewPassBack)
	case PhaseRaise:
		return g.legalValues(NewRaise)
	case PhaseQuestion:
		return append(g.legalQuestions(), g.legalPlays()...)
	case PhaseAnswer:
		return g.legalAnswers()
	case PhaseAnnounce:
		return g.legalAnnouncements()
	case PhaseTrick:
		return g.legalPlays()
	}
	return []Action{}
}

// setBit sets bit idx in the bitmask.
func setBit(mask *[3]uint64, idx uint16) {
	mask[idx/64] |= 1 << (idx % 64)
}

// LegalMask returns the legal payloads as an action-index bitmask.
// Bit i of result[i/64] is set if an action with Index() == i is legal.
func (g *GameState) LegalMask() [3]uint64 {
	var mask [3]uint64
	for _, a := range g.LegalActions() {
		setBit(&mask, a.Index())
	}
	return mask
}

// IsLegal reports whether a is a member of the current legal set.
func (g *GameState) IsLegal(a Action) bool {
	for _, l := range g.LegalActions() {
		if l == a {
			return true
		}
	}
	return false
}

// legalValues lists fold/keep (0) followed by every raise up to the ceiling.
func (g *GameState) legalValues(mk func(uint8, int) Action) []Action {
	raises := g.Rules.raises(g.Value)
	out := make([]Action, 0, len(raises)+1)
	out = append(out, mk(g.Turn, 0))
	for _, v := range raises {
		out = append(out, mk(g.Turn, v))
	}
	return out
}

// legalPass lists the passer's cards not yet selected in this direction.
func (g *GameState) legalPass(passed []Card, mk func(uint8, Card) Action) []Action {
	avail := g.Seats[g.Turn].Hand.Diff(NewCardSet(passed...))
	out := make([]Action, 0, avail.Len())
	for _, c := range avail.Cards() {
		out = append(out, mk(g.Turn, c))
	}
	return out
}

func (g *GameState) legalPlays() []Action {
	allowed := AllowedCards(g.Seats[g.Turn].Hand, &g.Trick, g.FirstTrick())
	out := make([]Action, 0, allowed.Len())
	for _, c := range allowed.Cards() {
		out = append(out, NewPlay(g.Turn, c))
	}
	return out
}

// legalQuestions follows the asking level of the seat at turn: "our" while
// level <= 2, "yours" while level <= 1, "my" only at level 0 and only for a
// held pair. Suits already declared trump are never asked about again.
func (g *GameState) legalQuestions() []Action {
	seat := &g.Seats[g.Turn]
	var out []Action
	if seat.Asking <= 2 {
		for _, s := range Suits {
			if !g.isTrump(s) {
				out = append(out, NewQuestion(g.Turn, PronounOur, s))
			}
		}
	}
	if seat.Asking <= 1 {
		out = append(out, NewQuestion(g.Turn, PronounYours, NoSuit))
	}
	if seat.Asking == 0 {
		for _, s := range Suits {
			if seat.HasPair(s) && !g.isTrump(s) {
				out = append(out, NewQuestion(g.Turn, PronounMy, s))
			}
		}
	}
	return out
}

func (g *GameState) legalAnswers() []Action {
	seat := &g.Seats[g.Turn]
	if g.Question.Pronoun == PronounYours {
		var out []Action
		for _, s := range Suits {
			if seat.HasPair(s) && !g.isTrump(s) {
				out = append(out, NewAnswer(g.Turn, PronounMy, s))
			}
		}
		if len(out) == 0 {
			out = append(out, NewAnswer(g.Turn, PronounNotMy, NoSuit))
		}
		return out
	}
	s := g.Question.Suit
	if seat.HasHalf(s) {
		return []Action{NewAnswer(g.Turn, PronounOu, s)}
	}
	return []Action{NewAnswer(g.Turn, PronounNo, s)}
}

func (g *GameState) legalAnnouncements() []Action {
	s := g.Question.Suit
	if g.Seats[g.Turn].HasHalf(s) {
		return []Action{NewAnnouncement(g.Turn, PronounWe, s)}
	}
	return []Action{NewAnnouncement(g.Turn, PronounNotWe, s)}
}

// AllowedCards applies the suit-following rule to hand for the next play into t.
//
// Leading the first trick: an Ace if held, else a green card if held, else
// anything. Following in the first trick: the Ace of the led suit if held.
// Otherwise follow the led suit, or play trump when void in it; among those
// cards, overtaking the current high card is mandatory when possible.
func AllowedCards(hand CardSet, t *Trick, firstTrick bool) CardSet {
	if t.Status() == 0 {
		if !firstTrick {
			return hand
		}
		if aces := hand.Intersect(RankSet(Ace)); !aces.Empty() {
			return aces
		}
		if greens := hand.OfSuit(Gruen); !greens.Empty() {
			return greens
		}
		return hand
	}
	if firstTrick {
		if ace := NewCard(t.Base, Ace); hand.Has(ace) {
			return NewCardSet(ace)
		}
	}
	allowed := hand.OfSuit(t.Base)
	if allowed.Empty() && t.Trump.Valid() {
		allowed = hand.OfSuit(t.Trump)
	}
	if allowed.Empty() {
		return hand
	}
	var over CardSet
	for _, c := range allowed.Cards() {
		if t.WouldBeat(c) {
			over.Add(c)
		}
	}
	if !over.Empty() {
		return over
	}
	return allowed
}
