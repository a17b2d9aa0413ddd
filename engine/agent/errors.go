package agent

import (
	"fmt"

	engine "github.com/marjapussi/marjapussi/engine"
)

// InvariantViolationError reports a belief update that broke the
// possible/secure partition. The belief can no longer be trusted and the
// hand should be aborted.
type InvariantViolationError struct {
	Observer uint8
	Seat     uint8
	Card     engine.Card // EmptyCard when the violation is about counts
	Reason   string
}

func (e *InvariantViolationError) Error() string {
	if e.Card.Valid() {
		return fmt.Sprintf("belief of seat %d: seat %d, card %s: %s", e.Observer, e.Seat, e.Card, e.Reason)
	}
	return fmt.Sprintf("belief of seat %d: seat %d: %s", e.Observer, e.Seat, e.Reason)
}
