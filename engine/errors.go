package engine

import "fmt"

// IllegalActionError is returned by Act when the action is not a member of
// the current legal set or does not come from the seat at turn. The game
// state is left untouched.
type IllegalActionError struct {
	Action Action
	Phase  Phase
	Turn   uint8
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s in %s (seat %d at turn): %s", e.Action, e.Phase, e.Turn, e.Reason)
}

// InvalidPlayError is returned when a card is played into a complete trick.
type InvalidPlayError struct {
	Card Card
	Seat uint8
}

func (e *InvalidPlayError) Error() string {
	return fmt.Sprintf("seat %d cannot play %s: trick already has %d cards", e.Seat, e.Card, NumSeats)
}

// InvalidCardError reports malformed card input or an invalid deal.
type InvalidCardError struct {
	Input  string
	Reason string
}

func (e *InvalidCardError) Error() string {
	return fmt.Sprintf("invalid card %q: %s", e.Input, e.Reason)
}
