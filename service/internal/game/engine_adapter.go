// internal/game/engine_adapter.go
package game

import (
	engine "github.com/marjapussi/marjapussi/engine"
)

// engineSuitToString returns the display name of a suit, empty for NoSuit.
func engineSuitToString(s engine.Suit) string {
	if !s.Valid() {
		return ""
	}
	return s.Name()
}

// engineRankToString returns the one-letter rank symbol.
func engineRankToString(r engine.Rank) string {
	return r.String()
}

// toEventCard converts an engine card for an event payload.
func toEventCard(c engine.Card) *EventCard {
	if !c.Valid() {
		return nil
	}
	return &EventCard{
		Code: c.String(),
		Suit: engineSuitToString(c.Suit()),
		Rank: engineRankToString(c.Rank()),
	}
}

// toEventTalk converts an engine utterance for an event payload.
func toEventTalk(t engine.Talk) *EventTalk {
	return &EventTalk{Pronoun: t.Pronoun.String(), Suit: engineSuitToString(t.Suit)}
}

// eventTypeFor maps an applied action to its public event type.
func eventTypeFor(a engine.Action) GameEventType {
	switch a.Phase {
	case engine.PhaseProvoke:
		return EventPlayerProvoke
	case engine.PhasePass, engine.PhasePassBack:
		return EventPlayerPass
	case engine.PhaseRaise:
		return EventPlayerRaise
	case engine.PhaseQuestion, engine.PhaseAnswer, engine.PhaseAnnounce:
		return EventPlayerTalk
	default:
		return EventPlayerPlay
	}
}

// actionEvent builds the event announcing a. Passed cards are only revealed
// when reveal is set.
func (t *Table) actionEvent(a engine.Action, reveal bool) GameEvent {
	ev := GameEvent{
		Type:  eventTypeFor(a),
		Seat:  t.eventSeat(a.Seat),
		Phase: a.Phase.String(),
	}
	switch a.Phase {
	case engine.PhaseProvoke, engine.PhaseRaise:
		ev.Value = a.Value
	case engine.PhasePass, engine.PhasePassBack:
		if reveal {
			ev.Type = EventPrivatePass
			ev.Card = toEventCard(a.Card)
		}
	case engine.PhaseTrick:
		ev.Card = toEventCard(a.Card)
	default:
		ev.Talk = toEventTalk(a.Talk)
	}
	return ev
}

func (t *Table) eventSeat(seat uint8) *EventSeat {
	return &EventSeat{Index: seat, Name: t.Names[seat]}
}
