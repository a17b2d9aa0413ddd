// Package agent implements the per-seat belief state of a MarjaPussi hand:
// which cards every seat may or must hold, what their talk and provoking
// revealed, and the policies that choose actions from that belief.
package agent

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	engine "github.com/marjapussi/marjapussi/engine"
)

// AgentState is one seat's private view of a hand. It is seeded from the
// seat's own dealt cards and updated by observing every public action in the
// order the referee applied them.
//
// For every seat, Possible holds the cards it may hold and Secure the cards
// it is known to hold. A card is secure for at most one seat and is never
// both possible and secure.
type AgentState struct {
	Seat  uint8
	Names [engine.NumSeats]string
	Rules engine.Rules

	Possible  [engine.NumSeats]engine.CardSet
	Secure    [engine.NumSeats]engine.CardSet
	CardsLeft engine.CardSet         // cards not yet played by anyone
	HandLeft  [engine.NumSeats]int   // cards each seat holds right now
	Points    [engine.NumSeats]int   // trick points and declarations as observed
	Asking    [engine.NumSeats]uint8 // question level per seat, mirrors the referee
	called    [engine.NumSeats]uint8 // suits credited per seat, bit per suit

	Phase       engine.Phase
	Value       int
	PlayingSeat int8 // -1 until passing starts
	Trump       engine.Suit
	AllTrump    []engine.Suit

	Trick  engine.Trick
	Tricks []engine.Trick

	ProvokingHistory []engine.Action
	PassedForth      []engine.Card
	PassedBack       []engine.Card
	Actions          []engine.Action

	Concepts *ConceptStore

	log logrus.FieldLogger
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// NewAgentState builds the belief of seat from its dealt hand. Every card
// outside the hand is possible for each of the other three seats.
func NewAgentState(seat uint8, names [engine.NumSeats]string, hand engine.CardSet, rules engine.Rules) *AgentState {
	a := &AgentState{
		Seat:        seat,
		Names:       names,
		Rules:       rules,
		CardsLeft:   engine.FullDeck,
		Phase:       engine.PhaseProvoke,
		Value:       rules.StartValue,
		PlayingSeat: -1,
		Trump:       engine.NoSuit,
		Trick:       engine.NewTrick(engine.NoSuit),
		Concepts:    NewConceptStore(),
		log:         discardLogger,
	}
	others := engine.FullDeck.Diff(hand)
	for i := range a.Possible {
		a.HandLeft[i] = engine.HandSize
		if uint8(i) == seat {
			a.Secure[i] = hand
		} else {
			a.Possible[i] = others
		}
	}
	return a
}

// SetLogger routes belief debug output to l.
func (a *AgentState) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger
	}
	a.log = l.WithField("observer", a.Seat)
}

func (a *AgentState) logger() logrus.FieldLogger {
	if a.log == nil {
		return discardLogger
	}
	return a.log
}

// Clone returns a deep copy that can be updated independently.
func (a *AgentState) Clone() *AgentState {
	cp := *a
	cp.AllTrump = append([]engine.Suit(nil), a.AllTrump...)
	cp.Tricks = append([]engine.Trick(nil), a.Tricks...)
	cp.ProvokingHistory = append([]engine.Action(nil), a.ProvokingHistory...)
	cp.PassedForth = append([]engine.Card(nil), a.PassedForth...)
	cp.PassedBack = append([]engine.Card(nil), a.PassedBack...)
	cp.Actions = append([]engine.Action(nil), a.Actions...)
	cp.Concepts = a.Concepts.Clone()
	return &cp
}

// ---------------------------------------------------------------------------
// Observation
// ---------------------------------------------------------------------------

// Observe updates the belief with an action the referee has applied. Actions
// must arrive in exactly the referee's order. A non-nil error means the
// belief is corrupt and the hand should be aborted.
func (a *AgentState) Observe(act engine.Action) error {
	if err := act.Validate(); err != nil {
		return err
	}
	a.Phase = act.Phase
	a.Actions = append(a.Actions, act)

	switch act.Phase {
	case engine.PhaseProvoke:
		a.Provoke(act)
	case engine.PhasePass:
		a.PassCard(act.Card, act.Seat, false)
	case engine.PhasePassBack:
		a.PassCard(act.Card, act.Seat, true)
	case engine.PhaseRaise:
		if act.Value > a.Value {
			a.Value = act.Value
		}
	case engine.PhaseQuestion:
		a.AskQuestion(act.Talk, act.Seat)
	case engine.PhaseAnswer:
		a.AnswerQuestion(act.Talk, act.Seat)
	case engine.PhaseAnnounce:
		a.Announce(act.Talk, act.Seat)
	case engine.PhaseTrick:
		if err := a.PlayCard(act.Card, act.Seat); err != nil {
			return err
		}
	}
	return a.CheckInvariants()
}

// Provoke records a provoking step and interprets it.
func (a *AgentState) Provoke(act engine.Action) {
	if act.Value > a.Value {
		a.Value = act.Value
	}
	a.ProvokingHistory = append(a.ProvokingHistory, act)
	a.interpretProvoke(act)
}

// PassCard records one passed card. The cards move once the last of them is
// passed. Only the playing party sees which cards move; the other two seats
// only learn that the passer's and receiver's unknown cards got mixed.
func (a *AgentState) PassCard(c engine.Card, from uint8, back bool) {
	if a.PlayingSeat < 0 {
		if back {
			a.PlayingSeat = int8(from)
		} else {
			a.PlayingSeat = int8(engine.Partner(from))
		}
	}
	passed := &a.PassedForth
	if back {
		passed = &a.PassedBack
	}
	*passed = append(*passed, c)
	if len(*passed) < a.Rules.PassCount {
		return
	}

	to := engine.Partner(from)
	a.HandLeft[from] -= len(*passed)
	a.HandLeft[to] += len(*passed)

	if a.inPlayingParty(a.Seat) {
		for _, pc := range *passed {
			a.Secure[from].Remove(pc)
			a.setSecure(pc, to)
		}
	} else {
		mixed := a.Possible[from].Union(a.Possible[to]).Union(a.Secure[from]).Union(a.Secure[to])
		a.Possible[from], a.Possible[to] = mixed, mixed
		a.Secure[from], a.Secure[to] = 0, 0
	}
	a.propagate()
}

// AskQuestion mirrors a QUES utterance of seat.
func (a *AgentState) AskQuestion(t engine.Talk, seat uint8) {
	switch t.Pronoun {
	case engine.PronounMy:
		a.securePair(seat, t.Suit)
		a.declare(seat, t.Suit)
	case engine.PronounYours:
		a.Asking[seat] = 1
	case engine.PronounOur:
		a.Asking[seat] = 2
	}
	a.propagate()
}

// AnswerQuestion mirrors an ANSW utterance of seat.
func (a *AgentState) AnswerQuestion(t engine.Talk, seat uint8) {
	pair := engine.PairSet(t.Suit)
	switch t.Pronoun {
	case engine.PronounMy:
		a.securePair(seat, t.Suit)
		a.declare(seat, t.Suit)
	case engine.PronounNotMy:
		a.Concepts.Add(fact(ConceptName(seat, FactHasNoPair), seatProps(seat, InfoNoPair), 1))
		// A known half means the other half of that suit is elsewhere.
		for _, s := range engine.Suits {
			if a.isTrump(s) {
				continue
			}
			known := a.Secure[seat].Intersect(engine.PairSet(s))
			if known.Len() == 1 {
				a.Possible[seat].Remove(otherHalf(known.First()))
			}
		}
	case engine.PronounNo:
		a.removePossible(seat, pair)
	case engine.PronounOu:
		cands := a.Possible[seat].Union(a.Secure[seat]).Intersect(pair).Intersect(a.CardsLeft)
		if cands.Len() == 1 {
			a.setSecure(cands.First(), seat)
		} else {
			a.Concepts.Add(fact(SuitConceptName(seat, t.Suit, "half"), suitProps(seat, t.Suit, InfoHalf), 1))
		}
	}
	a.propagate()
}

// Announce mirrors an ANSA utterance of seat, the original asker.
func (a *AgentState) Announce(t engine.Talk, seat uint8) {
	pair := engine.PairSet(t.Suit)
	partner := engine.Partner(seat)
	switch t.Pronoun {
	case engine.PronounWe:
		// Both partners hold a half, so each holds exactly one and the
		// opponents hold none.
		a.removePossible(engine.Next(seat), pair)
		a.removePossible(engine.Next(partner), pair)
		for _, x := range []uint8{seat, partner} {
			props := suitProps(x, t.Suit, InfoHalf)
			props[PropShared] = "true"
			a.Concepts.Add(fact(SuitConceptName(x, t.Suit, "half"), props, 1))
		}
		a.splitPair(seat, partner, t.Suit)
		a.splitPair(partner, seat, t.Suit)
		a.declare(seat, t.Suit)
	case engine.PronounNotWe:
		a.removePossible(seat, pair)
	}
	a.propagate()
}

// splitPair resolves a pair held one half each by x and y once x's half is
// pinned down.
func (a *AgentState) splitPair(x, y uint8, s engine.Suit) {
	pair := engine.PairSet(s).Intersect(a.CardsLeft)
	mine := a.Secure[x].Intersect(pair)
	if mine.Empty() {
		cands := a.Possible[x].Intersect(pair)
		if cands.Len() != 1 {
			return
		}
		a.setSecure(cands.First(), x)
		mine = cands
	}
	a.Possible[x] = a.Possible[x].Diff(pair.Diff(mine))
	if other := otherHalf(mine.First()); a.CardsLeft.Has(other) {
		a.setSecure(other, y)
	}
}

// PlayCard updates the belief with seat playing c into the running trick.
func (a *AgentState) PlayCard(c engine.Card, seat uint8) error {
	if !a.Possible[seat].Union(a.Secure[seat]).Has(c) {
		return &InvariantViolationError{Observer: a.Seat, Seat: seat, Card: c, Reason: "played a card believed impossible"}
	}
	before := a.Trick
	first := len(a.Tricks) == 0
	if err := a.Trick.Play(c, seat); err != nil {
		return err
	}

	a.CardsLeft.Remove(c)
	a.HandLeft[seat]--
	for i := range a.Possible {
		a.Possible[i].Remove(c)
		a.Secure[i].Remove(c)
	}

	a.followDeduction(&before, c, seat, first)
	a.reconcileHalves(c, seat)
	a.propagate()

	if a.Trick.Complete() {
		winner := a.Trick.HighSeat()
		a.Points[winner] += a.Trick.Points(&a.Rules)
		if len(a.Tricks)+1 == engine.NumTricks {
			a.Points[winner] += a.Rules.LastTrickBonus
		}
		a.Tricks = append(a.Tricks, a.Trick)
		a.Trick = engine.NewTrick(a.Trump)
	}
	return nil
}

// followDeduction prunes what seat can hold from the fact that c was an
// allowed play into t. It inverts engine.AllowedCards.
func (a *AgentState) followDeduction(t *engine.Trick, c engine.Card, seat uint8, first bool) {
	if t.Status() == 0 {
		if !first || c.Rank() == engine.Ace {
			return
		}
		a.removePossible(seat, engine.RankSet(engine.Ace))
		if c.Suit() != engine.Gruen {
			a.removePossible(seat, engine.SuitSet(engine.Gruen))
		}
		return
	}

	base := t.Base
	if first {
		ace := engine.NewCard(base, engine.Ace)
		if c == ace {
			return
		}
		a.removePossible(seat, engine.NewCardSet(ace))
	}
	if c.Suit() == base {
		if !t.WouldBeat(c) {
			a.removePossible(seat, beaters(t, base))
		}
		return
	}
	a.removePossible(seat, engine.SuitSet(base))
	if !t.Trump.Valid() {
		return
	}
	if c.Suit() != t.Trump {
		a.removePossible(seat, engine.SuitSet(t.Trump))
	} else if !t.WouldBeat(c) {
		a.removePossible(seat, beaters(t, t.Trump))
	}
}

// beaters returns the cards of suit that would take over t.
func beaters(t *engine.Trick, suit engine.Suit) engine.CardSet {
	var out engine.CardSet
	for _, c := range engine.SuitSet(suit).Cards() {
		if t.WouldBeat(c) {
			out.Add(c)
		}
	}
	return out
}

// reconcileHalves updates half and pair concepts after seat played c.
func (a *AgentState) reconcileHalves(c engine.Card, seat uint8) {
	if !c.IsHalf() {
		return
	}
	removedHalves := a.Concepts.Remove(ConceptName(seat, FactHasHalves))
	if a.Concepts.Remove(ConceptName(seat, FactTwoHalves)) || removedHalves {
		a.logger().Debugf("seat %d played %s, no more halves signalled", seat, c)
	} else if a.Concepts.Get(ConceptName(seat, FactThreeHalves)) != nil {
		// A half out of a signalled three confirms the halves reading of the
		// +10 over the small pair one, and two are left.
		a.Concepts.Remove(ConceptName(seat, FactThreeHalves))
		a.Concepts.Add(fact(ConceptName(seat, FactTwoHalves), seatProps(seat, InfoHalves), 1))
	}

	s := c.Suit()
	a.Concepts.Remove(SuitConceptName(seat, s, "pair"))
	half := SuitConceptName(seat, s, "half")
	if hc := a.Concepts.Get(half); hc != nil {
		if hc.Properties[PropShared] == "true" {
			if other := otherHalf(c); a.CardsLeft.Has(other) {
				a.setSecure(other, engine.Partner(seat))
			}
		}
		a.Concepts.Remove(half)
	}
}

// ---------------------------------------------------------------------------
// Set bookkeeping
// ---------------------------------------------------------------------------

// setSecure marks c as held by seat and no longer possible anywhere.
func (a *AgentState) setSecure(c engine.Card, seat uint8) {
	for i := range a.Possible {
		a.Possible[i].Remove(c)
	}
	if !a.Secure[seat].Has(c) {
		a.Secure[seat].Add(c)
		a.logger().WithField("seat", seat).Debugf("%s is secure", c)
	}
}

func (a *AgentState) removePossible(seat uint8, cards engine.CardSet) {
	a.Possible[seat] = a.Possible[seat].Diff(cards)
}

func (a *AgentState) securePair(seat uint8, s engine.Suit) {
	for _, c := range engine.PairSet(s).Cards() {
		a.setSecure(c, seat)
	}
	a.Concepts.Add(fact(SuitConceptName(seat, s, "pair"), suitProps(seat, s, InfoPair), 1))
}

// declare mirrors a trump declaration credited to seat.
func (a *AgentState) declare(seat uint8, s engine.Suit) {
	a.Trump = s
	a.Trick.SetTrump(s)
	if bit := uint8(1) << s; a.called[seat]&bit == 0 {
		a.called[seat] |= bit
		a.Points[seat] += a.Rules.SuitValue(s)
	}
	if !a.isTrump(s) {
		a.AllTrump = append(a.AllTrump, s)
	}
}

func (a *AgentState) isTrump(s engine.Suit) bool {
	for _, t := range a.AllTrump {
		if t == s {
			return true
		}
	}
	return false
}

func (a *AgentState) inPlayingParty(seat uint8) bool {
	return a.PlayingSeat >= 0 && (seat == uint8(a.PlayingSeat) || seat == engine.Partner(uint8(a.PlayingSeat)))
}

// need returns how many unknown cards seat still holds.
func (a *AgentState) need(seat int) int {
	return a.HandLeft[seat] - a.Secure[seat].Len()
}

// propagate runs closed-set deduction until nothing changes: a card possible
// for one seat only is secure there, a seat whose possible set matches its
// unknown count holds all of it, and a seat with no unknown cards left has
// nothing possible.
func (a *AgentState) propagate() {
	for a.propagateOnce() {
	}
}

// propagateOnce applies one round of closed-set deduction and reports
// whether it changed anything.
func (a *AgentState) propagateOnce() bool {
	changed := false
	for i := range a.Possible {
		if a.need(i) <= 0 && !a.Possible[i].Empty() {
			a.Possible[i] = 0
			changed = true
		}
	}
	for i := range a.Possible {
		var elsewhere engine.CardSet
		for j := range a.Possible {
			if j != i {
				elsewhere = elsewhere.Union(a.Possible[j])
			}
		}
		if only := a.Possible[i].Diff(elsewhere); !only.Empty() {
			for _, c := range only.Cards() {
				a.setSecure(c, uint8(i))
			}
			changed = true
		}
		if n := a.need(i); n > 0 && a.Possible[i].Len() == n {
			for _, c := range a.Possible[i].Cards() {
				a.setSecure(c, uint8(i))
			}
			changed = true
		}
	}
	return changed
}

// CheckInvariants verifies the possible/secure partition and the card counts.
func (a *AgentState) CheckInvariants() error {
	violation := func(seat int, c engine.Card, format string, args ...any) error {
		return &InvariantViolationError{Observer: a.Seat, Seat: uint8(seat), Card: c, Reason: fmt.Sprintf(format, args...)}
	}
	var secure, known engine.CardSet
	total := 0
	for i := range a.Possible {
		if dup := secure.Intersect(a.Secure[i]); !dup.Empty() {
			return violation(i, dup.First(), "secure for two seats")
		}
		secure = secure.Union(a.Secure[i])
		known = known.Union(a.Secure[i]).Union(a.Possible[i])
		total += a.HandLeft[i]

		if gone := a.Possible[i].Union(a.Secure[i]).Diff(a.CardsLeft); !gone.Empty() {
			return violation(i, gone.First(), "already played")
		}
		if n := a.Secure[i].Len(); n > a.HandLeft[i] {
			return violation(i, engine.EmptyCard, "%d secure cards for %d in hand", n, a.HandLeft[i])
		}
		if n := a.Possible[i].Len() + a.Secure[i].Len(); n < a.HandLeft[i] {
			return violation(i, engine.EmptyCard, "%d candidate cards for %d in hand", n, a.HandLeft[i])
		}
	}
	for i := range a.Possible {
		if both := a.Possible[i].Intersect(secure); !both.Empty() {
			return violation(i, both.First(), "both possible and secure")
		}
	}
	if lost := a.CardsLeft.Diff(known); !lost.Empty() {
		return violation(int(a.Seat), lost.First(), "held by nobody")
	}
	if total != a.CardsLeft.Len() {
		return violation(int(a.Seat), engine.EmptyCard, "hands hold %d cards, %d left", total, a.CardsLeft.Len())
	}
	return nil
}

// CheckHands verifies the belief against the true hands: every secure card
// is really held and every held card is possible or secure.
func (a *AgentState) CheckHands(hands [engine.NumSeats]engine.CardSet) error {
	for i, h := range hands {
		if wrong := a.Secure[i].Diff(h); !wrong.Empty() {
			return &InvariantViolationError{Observer: a.Seat, Seat: uint8(i), Card: wrong.First(), Reason: "secure but not held"}
		}
		if missed := h.Diff(a.Secure[i]).Diff(a.Possible[i]); !missed.Empty() {
			return &InvariantViolationError{Observer: a.Seat, Seat: uint8(i), Card: missed.First(), Reason: "held but ruled out"}
		}
		if h.Len() != a.HandLeft[i] {
			return &InvariantViolationError{Observer: a.Seat, Seat: uint8(i), Card: engine.EmptyCard,
				Reason: fmt.Sprintf("believed %d cards, holds %d", a.HandLeft[i], h.Len())}
		}
	}
	return nil
}
