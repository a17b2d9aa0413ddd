// Package engine implements the MarjaPussi rules: the card model, tricks and
// the phase-indexed referee that enumerates legal actions, applies them and
// scores the hand.
//
// The referee is single-threaded. Independent games share no state and may
// run in parallel.
package engine

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// GameState holds the complete, authoritative state of one MarjaPussi hand.
type GameState struct {
	Seats [NumSeats]Seat
	Rules Rules

	Phase  Phase
	Turn   uint8 // seat at turn
	Dealer uint8 // opens provoking, leads when no one plays
	Value  int   // current game value

	// PlayingSeat is the seat that took the game, -1 while provoking or when
	// no one plays.
	PlayingSeat int8

	Trump    Suit   // current trump, NoSuit until the first declaration
	AllTrump []Suit // every suit declared this hand, in order

	Trick  Trick   // running trick
	Tricks []Trick // completed tricks

	// Question is the pending QUES utterance while in ANSW/ANSA.
	Question Talk

	PassedForth []Card
	PassedBack  []Card

	History []Action
	Dealt   [NumSeats]CardSet // hands as dealt, before passing

	RNG   uint64
	Flags uint16

	log logrus.FieldLogger
}

// ---------------------------------------------------------------------------
// Flags bitfield
// ---------------------------------------------------------------------------

const (
	FlagDealt      uint16 = 1 << 0
	FlagNoOnePlays uint16 = 1 << 1
	FlagDone       uint16 = 1 << 2
)

// IsTerminal returns true when the hand is over.
func (g *GameState) IsTerminal() bool { return g.Flags&FlagDone != 0 }

// NoOnePlays reports whether provoking ended without anyone taking the game.
func (g *GameState) NoOnePlays() bool { return g.Flags&FlagNoOnePlays != 0 }

// ---------------------------------------------------------------------------
// xorshift64 RNG — inline, no interface
// ---------------------------------------------------------------------------

func (g *GameState) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *GameState) randN(n uint64) uint64 {
	return g.nextRand() % n
}

// ---------------------------------------------------------------------------
// NewGame and Deal
// ---------------------------------------------------------------------------

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// NewGame initializes a hand for four named seats with the given seed and
// rules. The cards are not dealt yet.
func NewGame(names [NumSeats]string, seed uint64, rules Rules) GameState {
	var g GameState
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.PlayingSeat = -1
	g.Trump = NoSuit
	g.Question = Talk{Suit: NoSuit}
	g.Trick = NewTrick(NoSuit)
	g.Value = rules.StartValue
	g.log = discardLogger
	for i := range g.Seats {
		g.Seats[i] = Seat{Name: names[i], Index: uint8(i), StillProvoking: true}
	}
	return g
}

// SetLogger routes the referee's action log to l.
func (g *GameState) SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = discardLogger
	}
	g.log = l
}

func (g *GameState) logger() logrus.FieldLogger {
	if g.log == nil {
		return discardLogger
	}
	return g.log
}

// Deal shuffles the deck and distributes nine cards to every seat.
func (g *GameState) Deal() {
	deck := NewDeck()
	// Fisher-Yates shuffle.
	for i := len(deck) - 1; i > 0; i-- {
		j := int(g.randN(uint64(i + 1)))
		deck[i], deck[j] = deck[j], deck[i]
	}

	var hands [NumSeats]CardSet
	for len(deck) > 0 {
		for p := 0; p < NumSeats; p++ {
			hands[p].Add(deck[len(deck)-1])
			deck = deck[:len(deck)-1]
		}
	}
	g.install(hands)
}

// DealHands installs fixed hands instead of shuffling. The hands must
// partition the deck into four sets of nine.
func (g *GameState) DealHands(hands [NumSeats]CardSet) error {
	var seen CardSet
	for i, h := range hands {
		if h&^FullDeck != 0 {
			return &InvalidCardError{Input: fmt.Sprintf("%#x", uint64(h&^FullDeck)), Reason: fmt.Sprintf("seat %d holds bits outside the deck", i)}
		}
		if h.Len() != HandSize {
			return &InvalidCardError{Input: h.String(), Reason: fmt.Sprintf("seat %d must hold %d cards", i, HandSize)}
		}
		if dup := seen.Intersect(h); !dup.Empty() {
			return &InvalidCardError{Input: dup.String(), Reason: "duplicate card"}
		}
		seen = seen.Union(h)
	}
	g.install(hands)
	return nil
}

func (g *GameState) install(hands [NumSeats]CardSet) {
	for i := range g.Seats {
		g.Seats[i].Hand = hands[i]
	}
	g.Dealt = hands
	g.Phase = PhaseProvoke
	g.Turn = g.Dealer
	g.Flags |= FlagDealt
	g.logger().WithField("dealer", g.Dealer).Info("cards dealt")
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// TrickNumber returns the 1-based number of the running trick.
func (g *GameState) TrickNumber() int {
	if g.IsTerminal() {
		return len(g.Tricks)
	}
	return len(g.Tricks) + 1
}

// FirstTrick reports whether the running trick is the first of the hand.
func (g *GameState) FirstTrick() bool { return len(g.Tricks) == 0 }

// Names returns the seat names in seat order.
func (g *GameState) Names() [NumSeats]string {
	var out [NumSeats]string
	for i := range g.Seats {
		out[i] = g.Seats[i].Name
	}
	return out
}

// Hand returns the current hand of seat i.
func (g *GameState) Hand(i uint8) CardSet { return g.Seats[i].Hand }

// PartyPoints returns the combined points of seat i and its partner.
func (g *GameState) PartyPoints(i uint8) int {
	return g.Seats[i].Points + g.Seats[Partner(i)].Points
}

// PartyTricks returns the combined tricks of seat i and its partner.
func (g *GameState) PartyTricks(i uint8) int {
	return g.Seats[i].Tricks + g.Seats[Partner(i)].Tricks
}

// PlayedCards returns every card played into a trick so far.
func (g *GameState) PlayedCards() CardSet {
	s := g.Trick.Set()
	for i := range g.Tricks {
		s = s.Union(g.Tricks[i].Set())
	}
	return s
}

// stillProvoking counts seats that may still raise.
func (g *GameState) stillProvoking() int {
	n := 0
	for i := range g.Seats {
		if g.Seats[i].StillProvoking {
			n++
		}
	}
	return n
}

// isTrump reports whether s was declared at any point of the hand.
func (g *GameState) isTrump(s Suit) bool {
	for _, t := range g.AllTrump {
		if t == s {
			return true
		}
	}
	return false
}
