package engine

// Snapshot is the read-only view handed to presentation and logging.
type Snapshot struct {
	Names        [NumSeats]string
	Hands        [NumSeats][]string
	Value        int
	Trump        Suit
	Turn         uint8
	TurnName     string
	Phase        Phase
	TrickNumber  int
	CurrentTrick []string
	Legal        []Action

	// Party points are only set once someone took the game.
	PlayingPoints *int
	OtherPoints   *int
	Won           *bool
	NoOnePlays    bool
}

// Snapshot captures the current state for display.
func (g *GameState) Snapshot() Snapshot {
	s := Snapshot{
		Names:        g.Names(),
		Value:        g.Value,
		Trump:        g.Trump,
		Turn:         g.Turn,
		TurnName:     g.Seats[g.Turn].Name,
		Phase:        g.Phase,
		TrickNumber:  g.TrickNumber(),
		CurrentTrick: make([]string, 0, NumSeats),
		Legal:        g.LegalActions(),
		NoOnePlays:   g.NoOnePlays(),
	}
	for i := range g.Seats {
		s.Hands[i] = g.Seats[i].Hand.Strings()
	}
	for _, c := range g.Trick.Played() {
		s.CurrentTrick = append(s.CurrentTrick, c.String())
	}
	if g.PlayingSeat >= 0 {
		p := uint8(g.PlayingSeat)
		pl, other := g.PartyPoints(p), g.PartyPoints(Next(p))
		won := pl >= g.Value
		s.PlayingPoints, s.OtherPoints, s.Won = &pl, &other, &won
	}
	return s
}
