package engine

import "github.com/sirupsen/logrus"

// finish moves the hand to DONE and logs the outcome.
func (g *GameState) finish() {
	g.Phase = PhaseDone
	g.Flags |= FlagDone
	g.Question = Talk{Suit: NoSuit}

	r := g.score()
	log := g.logger().WithField("value", r.Value)
	if r.NoOnePlays {
		log.Info("hand finished, no one played")
		return
	}
	log.WithFields(logrus.Fields{
		"seat":    r.PlayingSeat,
		"points":  r.PlayingPoints,
		"won":     r.Won,
		"schwarz": r.Schwarz,
	}).Infof("hand finished, playing party made %d/%d", r.PlayingPoints, r.Value)
}

// Result returns the outcome of the hand. ok is false until the hand is DONE.
func (g *GameState) Result() (r Result, ok bool) {
	if !g.IsTerminal() {
		return Result{}, false
	}
	return g.score(), true
}

// PlayUntilDone drives the hand to DONE with choose picking among the legal
// actions of the seat at turn. It is meant for tests and simulations that do
// not need belief tracking.
func (g *GameState) PlayUntilDone(choose func(g *GameState, legal []Action) Action) (Result, error) {
	for !g.IsTerminal() {
		legal := g.LegalActions()
		if err := g.Act(choose(g, legal)); err != nil {
			return Result{}, err
		}
	}
	r, _ := g.Result()
	return r, nil
}

// Random returns a uniformly chosen action using the game's own RNG. It is a
// convenience chooser for PlayUntilDone.
func Random(g *GameState, legal []Action) Action {
	return legal[g.randN(uint64(len(legal)))]
}
