package engine

// Result is the frozen outcome of a finished hand.
type Result struct {
	Names       [NumSeats]string
	PlayingSeat int8 // -1 when no one plays
	Value       int
	NoOnePlays  bool

	// Won is true when the playing pair made at least Value points.
	Won bool
	// Schwarz is true when the non-playing pair took no trick.
	Schwarz bool

	PlayingPoints int
	OtherPoints   int
	PlayingTricks int
	OtherTricks   int

	SeatPoints [NumSeats]int
	TrumpCalls [NumSeats][]Suit
	AllTrump   []Suit

	Dealt       [NumSeats]CardSet
	PassedForth []Card
	PassedBack  []Card
	Tricks      []Trick
	Actions     []Action
}

// score evaluates the hand as it stands. It is only final in DONE.
func (g *GameState) score() Result {
	r := Result{
		Names:       g.Names(),
		PlayingSeat: g.PlayingSeat,
		Value:       g.Value,
		NoOnePlays:  g.NoOnePlays(),
		AllTrump:    append([]Suit(nil), g.AllTrump...),
		Dealt:       g.Dealt,
		PassedForth: append([]Card(nil), g.PassedForth...),
		PassedBack:  append([]Card(nil), g.PassedBack...),
		Tricks:      append([]Trick(nil), g.Tricks...),
		Actions:     append([]Action(nil), g.History...),
	}
	for i := range g.Seats {
		r.SeatPoints[i] = g.Seats[i].Points
		r.TrumpCalls[i] = append([]Suit(nil), g.Seats[i].TrumpCalls...)
	}
	if g.PlayingSeat < 0 {
		return r
	}
	p := uint8(g.PlayingSeat)
	r.PlayingPoints = g.PartyPoints(p)
	r.OtherPoints = g.PartyPoints(Next(p))
	r.PlayingTricks = g.PartyTricks(p)
	r.OtherTricks = g.PartyTricks(Next(p))
	r.Won = r.PlayingPoints >= g.Value
	r.Schwarz = r.OtherTricks == 0
	return r
}

// TotalPoints sums every seat's points. After a complete hand this equals
// Rules.TrickPointPool() plus the declaration bonuses in TrumpCalls.
func (r *Result) TotalPoints() int {
	total := 0
	for _, p := range r.SeatPoints {
		total += p
	}
	return total
}

// DeclarationPoints sums the suit values credited for trump calls.
func (r *Result) DeclarationPoints(rules *Rules) int {
	total := 0
	for _, calls := range r.TrumpCalls {
		for _, s := range calls {
			total += rules.SuitValue(s)
		}
	}
	return total
}
