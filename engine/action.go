package engine

import "fmt"

// Pronoun is the speech act of a Talk utterance.
type Pronoun uint8

const (
	PronounNone  Pronoun = iota
	PronounMy            // "my": I hold the pair of the suit
	PronounYours         // "yours": do you hold any pair? (no suit)
	PronounOur           // "our": do you hold a half of the suit?
	PronounNotMy         // "nmy": I hold no pair (no suit)
	PronounNo            // "no": I hold no half of the suit
	PronounOu            // "ou": I hold a half of the suit
	PronounWe            // "we": I hold a half too, the pair is ours
	PronounNotWe         // "nwe": I hold no half of the suit
)

var pronounWords = [...]string{"", "my", "yours", "our", "nmy", "no", "ou", "we", "nwe"}

func (p Pronoun) String() string {
	if int(p) < len(pronounWords) {
		return pronounWords[p]
	}
	return fmt.Sprintf("Pronoun(%d)", p)
}

// ParsePronoun parses a pronoun word.
func ParsePronoun(w string) (Pronoun, error) {
	for i, s := range pronounWords {
		if i > 0 && s == w {
			return Pronoun(i), nil
		}
	}
	return PronounNone, fmt.Errorf("unknown pronoun %q", w)
}

// suitless reports whether utterances with this pronoun never name a suit.
func (p Pronoun) suitless() bool { return p == PronounYours || p == PronounNotMy }

// Talk is a pronoun plus an optional suit.
type Talk struct {
	Pronoun Pronoun
	Suit    Suit
}

// NewTalk builds a Talk, normalising the suit of suitless pronouns.
func NewTalk(p Pronoun, s Suit) Talk {
	if p.suitless() {
		s = NoSuit
	}
	return Talk{Pronoun: p, Suit: s}
}

func (t Talk) String() string {
	if !t.Suit.Valid() {
		return t.Pronoun.String()
	}
	return t.Pronoun.String() + " " + t.Suit.String()
}

// ---------------------------------------------------------------------------
// Action
// ---------------------------------------------------------------------------

// Action is a tagged union keyed by Phase: PROV/PRMO carry Value, PASS/PBCK/TRCK
// carry Card, QUES/ANSW/ANSA carry Talk. Unused fields hold their canonical
// zero (Value 0, Card EmptyCard, Talk{}), so == is structural equality.
type Action struct {
	Seat  uint8
	Phase Phase
	Value int
	Card  Card
	Talk  Talk
}

// NewProvoke returns a PROV action. Value 0 folds.
func NewProvoke(seat uint8, value int) Action {
	return Action{Seat: seat, Phase: PhaseProvoke, Value: value, Card: EmptyCard}
}

// NewRaise returns a PRMO action. Value 0 keeps the current value.
func NewRaise(seat uint8, value int) Action {
	return Action{Seat: seat, Phase: PhaseRaise, Value: value, Card: EmptyCard}
}

// NewPass returns a PASS action (partner to playing seat).
func NewPass(seat uint8, c Card) Action {
	return Action{Seat: seat, Phase: PhasePass, Card: c}
}

// NewPassBack returns a PBCK action (playing seat to partner).
func NewPassBack(seat uint8, c Card) Action {
	return Action{Seat: seat, Phase: PhasePassBack, Card: c}
}

// NewPlay returns a TRCK action.
func NewPlay(seat uint8, c Card) Action {
	return Action{Seat: seat, Phase: PhaseTrick, Card: c}
}

// NewQuestion returns a QUES action.
func NewQuestion(seat uint8, p Pronoun, s Suit) Action {
	return Action{Seat: seat, Phase: PhaseQuestion, Card: EmptyCard, Talk: NewTalk(p, s)}
}

// NewAnswer returns an ANSW action.
func NewAnswer(seat uint8, p Pronoun, s Suit) Action {
	return Action{Seat: seat, Phase: PhaseAnswer, Card: EmptyCard, Talk: NewTalk(p, s)}
}

// NewAnnouncement returns an ANSA action.
func NewAnnouncement(seat uint8, p Pronoun, s Suit) Action {
	return Action{Seat: seat, Phase: PhaseAnnounce, Card: EmptyCard, Talk: NewTalk(p, s)}
}

var talkPronouns = map[Phase][]Pronoun{
	PhaseQuestion: {PronounMy, PronounYours, PronounOur},
	PhaseAnswer:   {PronounMy, PronounNotMy, PronounNo, PronounOu},
	PhaseAnnounce: {PronounWe, PronounNotWe},
}

// Validate checks that the payload variant matches the phase and that the
// unused fields are canonical.
func (a Action) Validate() error {
	if a.Seat >= NumSeats {
		return fmt.Errorf("seat %d out of range", a.Seat)
	}
	switch {
	case a.Phase.carriesValue():
		if a.Value < 0 {
			return fmt.Errorf("%s: negative value %d", a.Phase, a.Value)
		}
		if a.Card != EmptyCard || a.Talk != (Talk{}) {
			return fmt.Errorf("%s: only a value payload is allowed", a.Phase)
		}
	case a.Phase.carriesCard():
		if !a.Card.Valid() {
			return fmt.Errorf("%s: invalid card %s", a.Phase, a.Card)
		}
		if a.Value != 0 || a.Talk != (Talk{}) {
			return fmt.Errorf("%s: only a card payload is allowed", a.Phase)
		}
	case a.Phase.carriesTalk():
		if a.Value != 0 || a.Card != EmptyCard {
			return fmt.Errorf("%s: only a talk payload is allowed", a.Phase)
		}
		ok := false
		for _, p := range talkPronouns[a.Phase] {
			ok = ok || p == a.Talk.Pronoun
		}
		if !ok {
			return fmt.Errorf("%s: pronoun %q not allowed", a.Phase, a.Talk.Pronoun)
		}
		if a.Talk.Pronoun.suitless() == a.Talk.Suit.Valid() {
			return fmt.Errorf("%s: pronoun %q with suit %s", a.Phase, a.Talk.Pronoun, a.Talk.Suit)
		}
	default:
		return fmt.Errorf("no actions exist in phase %s", a.Phase)
	}
	return nil
}

// Index returns the payload's action index (see EncodeValue, EncodeCard, EncodeTalk).
func (a Action) Index() uint16 {
	switch {
	case a.Phase.carriesValue():
		return EncodeValue(a.Value)
	case a.Phase.carriesCard():
		return EncodeCard(a.Card)
	default:
		return EncodeTalk(a.Talk)
	}
}

func (a Action) String() string {
	switch {
	case a.Phase.carriesValue():
		return fmt.Sprintf("%d %s %d", a.Seat, a.Phase, a.Value)
	case a.Phase.carriesCard():
		return fmt.Sprintf("%d %s %s", a.Seat, a.Phase, a.Card)
	default:
		return fmt.Sprintf("%d %s %s", a.Seat, a.Phase, a.Talk)
	}
}
