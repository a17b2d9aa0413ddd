package agent

import engine "github.com/marjapussi/marjapussi/engine"

// Feature layout of Encode. Seats are relative to the observer: 0 is the
// observer, 1 the next seat, 2 the partner, 3 the seat before.
const (
	CardDim    = engine.DeckSize // one slot per card, in action index order
	SeatDim    = 2 * CardDim     // secure then possible
	TrumpDim   = engine.NumSuits + 1
	PhaseDim   = int(engine.PhaseDone) + 1
	PartyDim   = engine.NumSeats + 1 // relative playing seat, last slot: nobody yet
	InputDim   = engine.NumSeats*SeatDim + CardDim + CardDim + TrumpDim + PhaseDim + 1 + engine.NumSeats + PartyDim + 1 + 2
	NumActions = int(engine.NumActions)
)

// cardSlot returns the feature slot of c within a card block.
func cardSlot(c engine.Card) int {
	return int(engine.EncodeCard(c) - engine.ActionBaseCard)
}

func writeCards(out []float32, s engine.CardSet) {
	for _, c := range s.Cards() {
		out[cardSlot(c)] = 1
	}
}

// relative maps an absolute seat to the observer-relative index.
func (a *AgentState) relative(seat uint8) int {
	return int((seat + engine.NumSeats - a.Seat) % engine.NumSeats)
}

// Encode writes the belief as a flat feature vector into out:
//
//	per relative seat   secure cards (36), possible cards (36)
//	cards left          36
//	running trick       36
//	trump               one-hot over the suits, last slot no trump
//	phase               one-hot over the last observed phase
//	value               game value / MaxValue
//	hand counts         cards held per relative seat / 9
//	playing seat        relative one-hot, last slot while undecided
//	trick number        completed tricks / 9
//	party points        own and other party / (TrickPointPool + declarations)
//
// out is zeroed before writing.
func (a *AgentState) Encode(out *[InputDim]float32) {
	*out = [InputDim]float32{}
	off := 0

	for r := 0; r < engine.NumSeats; r++ {
		seat := uint8((int(a.Seat) + r) % engine.NumSeats)
		writeCards(out[off:off+CardDim], a.Secure[seat])
		writeCards(out[off+CardDim:off+SeatDim], a.Possible[seat])
		off += SeatDim
	}

	writeCards(out[off:off+CardDim], a.CardsLeft)
	off += CardDim
	writeCards(out[off:off+CardDim], a.Trick.Set())
	off += CardDim

	if a.Trump.Valid() {
		out[off+int(a.Trump)] = 1
	} else {
		out[off+engine.NumSuits] = 1
	}
	off += TrumpDim

	if int(a.Phase) < PhaseDim {
		out[off+int(a.Phase)] = 1
	}
	off += PhaseDim

	out[off] = float32(a.Value) / float32(a.Rules.MaxValue)
	off++

	handSize := float32(engine.DeckSize / engine.NumSeats)
	for r := 0; r < engine.NumSeats; r++ {
		seat := uint8((int(a.Seat) + r) % engine.NumSeats)
		out[off+r] = float32(a.HandLeft[seat]) / handSize
	}
	off += engine.NumSeats

	if a.PlayingSeat >= 0 {
		out[off+a.relative(uint8(a.PlayingSeat))] = 1
	} else {
		out[off+engine.NumSeats] = 1
	}
	off += PartyDim

	out[off] = float32(len(a.Tricks)) / handSize
	off++

	pool := float32(a.Rules.TrickPointPool())
	for _, s := range engine.Suits {
		pool += float32(a.Rules.SuitValue(s))
	}
	own := a.Points[a.Seat] + a.Points[a.Partner()]
	other := a.Points[engine.Next(a.Seat)] + a.Points[engine.Next(a.Partner())]
	out[off] = float32(own) / pool
	out[off+1] = float32(other) / pool
}

// ActionMask writes the legal action mask into out.
// legal is the bitmask from GameState.LegalMask().
func ActionMask(legal [3]uint64, out *[NumActions]bool) {
	*out = [NumActions]bool{}
	for i := 0; i < NumActions; i++ {
		if legal[i/64]&(1<<(uint(i)%64)) != 0 {
			out[i] = true
		}
	}
}
