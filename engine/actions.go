package engine

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Act applies a. The action must be a member of LegalActions() and come from
// the seat at turn; otherwise an *IllegalActionError is returned and the
// state is not modified.
func (g *GameState) Act(a Action) error {
	if err := g.checkLegal(a); err != nil {
		return err
	}

	g.History = append(g.History, a)
	g.logger().WithFields(logrus.Fields{
		"seat":  a.Seat,
		"phase": g.Phase.String(),
		"value": g.Value,
	}).Debugf("action %s", a)

	switch a.Phase {
	case PhaseProvoke:
		g.provoke(a.Value)
	case PhasePass:
		g.pass(a.Card)
	case PhasePassBack:
		g.passBack(a.Card)
	case PhaseRaise:
		g.raise(a.Value)
	case PhaseTrick:
		return g.play(a.Card)
	case PhaseQuestion:
		g.ask(a.Talk)
	case PhaseAnswer:
		g.answer(a.Talk)
	case PhaseAnnounce:
		g.announce(a.Talk)
	}
	return nil
}

func (g *GameState) checkLegal(a Action) error {
	illegal := func(reason string) error {
		return &IllegalActionError{Action: a, Phase: g.Phase, Turn: g.Turn, Reason: reason}
	}
	switch {
	case g.Flags&FlagDealt == 0:
		return illegal("cards have not been dealt")
	case g.IsTerminal():
		return illegal("hand is over")
	case a.Seat != g.Turn:
		return illegal(fmt.Sprintf("seat %d is not at turn", a.Seat))
	case !g.IsLegal(a):
		return illegal("not in the legal action set")
	}
	return nil
}

// provoke raises to value, or folds on any value not above the current one.
func (g *GameState) provoke(value int) {
	seat := &g.Seats[g.Turn]
	if value > g.Value {
		g.Value = value
		seat.Provoked = value
		g.logger().WithField("seat", seat.Index).Infof("%s says %d", seat.Name, value)
	} else {
		seat.StillProvoking = false
		g.logger().WithField("seat", seat.Index).Infof("%s is gone", seat.Name)
	}

	n := g.stillProvoking()
	if n > 1 || (n == 1 && g.Value == g.Rules.StartValue) {
		g.Turn = Next(g.Turn)
		for !g.Seats[g.Turn].StillProvoking {
			g.Turn = Next(g.Turn)
		}
		return
	}

	if g.Value == g.Rules.StartValue {
		g.Flags |= FlagNoOnePlays
		g.Turn = g.Dealer
		g.Phase = PhaseTrick
		g.logger().Info("no one takes the game")
		return
	}

	for i := range g.Seats {
		if g.Seats[i].StillProvoking {
			g.PlayingSeat = int8(i)
		}
	}
	g.Turn = Partner(uint8(g.PlayingSeat))
	g.Phase = PhasePass
	g.logger().WithField("seat", g.PlayingSeat).Infof("%s takes the game for %d",
		g.Seats[g.PlayingSeat].Name, g.Value)
}

// pass records one card from the partner; the fourth card moves all of them.
func (g *GameState) pass(c Card) {
	g.PassedForth = append(g.PassedForth, c)
	if len(g.PassedForth) < g.Rules.PassCount {
		return
	}
	playing := &g.Seats[g.PlayingSeat]
	partner := &g.Seats[playing.Partner()]
	for _, pc := range g.PassedForth {
		partner.Take(pc)
		playing.Give(pc)
	}
	g.Turn = playing.Index
	g.Phase = PhasePassBack
}

// passBack records one card back to the partner; the fourth card moves them.
func (g *GameState) passBack(c Card) {
	g.PassedBack = append(g.PassedBack, c)
	if len(g.PassedBack) < g.Rules.PassCount {
		return
	}
	playing := &g.Seats[g.PlayingSeat]
	partner := &g.Seats[playing.Partner()]
	for _, pc := range g.PassedBack {
		playing.Take(pc)
		partner.Give(pc)
	}
	g.Turn = playing.Index
	g.Phase = PhaseRaise
	g.logger().WithField("seat", playing.Index).Info("cards passed")
}

func (g *GameState) raise(value int) {
	if value > g.Value {
		g.Value = value
		g.logger().WithField("seat", g.Turn).Infof("raises to %d", value)
	} else {
		g.logger().WithField("seat", g.Turn).Infof("plays for %d", g.Value)
	}
	g.Phase = PhaseTrick
}

// play moves c from the hand into the trick and resolves a complete trick.
func (g *GameState) play(c Card) error {
	seat := &g.Seats[g.Turn]
	g.Phase = PhaseTrick
	if err := g.Trick.Play(c, seat.Index); err != nil {
		return err
	}
	seat.Take(c)
	g.Turn = Next(g.Turn)
	if !g.Trick.Complete() {
		return nil
	}

	winner := &g.Seats[g.Trick.HighSeat()]
	last := len(g.Tricks)+1 == NumTricks
	winner.TakeTrick(&g.Trick, &g.Rules, last)
	g.Tricks = append(g.Tricks, g.Trick)
	g.Turn = winner.Index
	g.logger().WithFields(logrus.Fields{
		"seat":  winner.Index,
		"trick": len(g.Tricks),
	}).Infof("trick %s goes to %s", CardsString(g.Trick.Played()), winner.Name)

	if last {
		g.finish()
		return nil
	}
	g.Trick = NewTrick(g.Trump)
	g.Phase = PhaseQuestion
	return nil
}

func (g *GameState) ask(t Talk) {
	seat := &g.Seats[g.Turn]
	switch t.Pronoun {
	case PronounMy:
		g.declare(seat, t.Suit)
		g.Phase = PhaseTrick
	case PronounYours:
		seat.Asking = 1
		g.Question = t
		g.Turn = seat.Partner()
		g.Phase = PhaseAnswer
	case PronounOur:
		seat.Asking = 2
		g.Question = t
		g.Turn = seat.Partner()
		g.Phase = PhaseAnswer
	}
}

func (g *GameState) answer(t Talk) {
	seat := &g.Seats[g.Turn]
	g.Turn = seat.Partner()
	switch t.Pronoun {
	case PronounMy:
		g.declare(seat, t.Suit)
	case PronounOu:
		g.Phase = PhaseAnnounce
		return
	}
	g.Question = Talk{Suit: NoSuit}
	g.Phase = PhaseTrick
}

func (g *GameState) announce(t Talk) {
	if t.Pronoun == PronounWe {
		g.declare(&g.Seats[g.Turn], t.Suit)
	}
	g.Question = Talk{Suit: NoSuit}
	g.Phase = PhaseTrick
}

// declare makes suit trump, credits the declaring seat and records the suit
// once in AllTrump.
func (g *GameState) declare(seat *Seat, suit Suit) {
	g.Trump = suit
	g.Trick.SetTrump(suit)
	seat.CallTrump(suit, &g.Rules)
	if !g.isTrump(suit) {
		g.AllTrump = append(g.AllTrump, suit)
	}
	g.logger().WithFields(logrus.Fields{
		"seat": seat.Index,
		"suit": suit.Name(),
	}).Infof("%s is now trump", suit.Name())
}
