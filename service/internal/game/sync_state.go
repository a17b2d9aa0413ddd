// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"

	engine "github.com/marjapussi/marjapussi/engine"
)

// ObfCard represents a card revealed to the requesting seat.
type ObfCard struct {
	Code   string `json:"code"`
	Rank   string `json:"rank"`
	Suit   string `json:"suit"`
	Points int    `json:"points,omitempty"`
}

// ObfSeatState represents the state of a single seat, obfuscated for a specific observer.
type ObfSeatState struct {
	Index          uint8    `json:"index"`
	Name           string   `json:"name"`
	HandSize       int      `json:"handSize"`
	Tricks         int      `json:"tricks"`
	StillProvoking bool     `json:"stillProvoking"`
	Provoked       int      `json:"provoked,omitempty"`
	TrumpCalls     []string `json:"trumpCalls,omitempty"`
	IsCurrentTurn  bool     `json:"isCurrentTurn"`
	// Hand is populated only for the seat requesting the state ('self').
	Hand []ObfCard `json:"hand,omitempty"`
}

// ObfTableState represents the table, obfuscated for a specific observer.
type ObfTableState struct {
	GameID      uuid.UUID      `json:"gameId"`
	Phase       string         `json:"phase"`
	GameOver    bool           `json:"gameOver"`
	Value       int            `json:"value"`
	Dealer      uint8          `json:"dealer"`
	Turn        uint8          `json:"turn"`
	PlayingSeat int8           `json:"playingSeat"`
	Trump       string         `json:"trump,omitempty"`
	AllTrump    []string       `json:"allTrump,omitempty"`
	TrickNumber int            `json:"trickNumber"`
	Trick       []ObfCard      `json:"trick"`
	Question    *EventTalk     `json:"question,omitempty"`
	Seats       []ObfSeatState `json:"seats"`
	// Passed lists the cards exchanged between the playing pair. It is only
	// populated for the two seats of that pair.
	Passed []ObfCard `json:"passed,omitempty"`
}

// SyncState generates a snapshot of the table tailored to the perspective of seat.
func (t *Table) SyncState(seat uint8) ObfTableState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.syncState(seat)
}

func (t *Table) obfCard(c engine.Card) ObfCard {
	return ObfCard{
		Code:   c.String(),
		Rank:   engineRankToString(c.Rank()),
		Suit:   engineSuitToString(c.Suit()),
		Points: t.Engine.Rules.CardPoints(c),
	}
}

// syncState assumes the table lock is held by the caller.
func (t *Table) syncState(seat uint8) ObfTableState {
	g := &t.Engine
	obf := ObfTableState{
		GameID:      t.ID,
		Phase:       g.Phase.String(),
		GameOver:    g.IsTerminal(),
		Value:       g.Value,
		Dealer:      g.Dealer,
		Turn:        g.Turn,
		PlayingSeat: g.PlayingSeat,
		Trump:       engineSuitToString(g.Trump),
		TrickNumber: g.TrickNumber(),
		Trick:       []ObfCard{},
	}
	for _, s := range g.AllTrump {
		obf.AllTrump = append(obf.AllTrump, engineSuitToString(s))
	}
	for _, c := range g.Trick.Played() {
		obf.Trick = append(obf.Trick, t.obfCard(c))
	}
	if g.Phase == engine.PhaseAnswer || g.Phase == engine.PhaseAnnounce {
		obf.Question = toEventTalk(g.Question)
	}

	obf.Seats = make([]ObfSeatState, engine.NumSeats)
	for i := range g.Seats {
		s := &g.Seats[i]
		ps := ObfSeatState{
			Index:          s.Index,
			Name:           s.Name,
			HandSize:       s.Hand.Len(),
			Tricks:         s.Tricks,
			StillProvoking: s.StillProvoking,
			Provoked:       s.Provoked,
			IsCurrentTurn:  !obf.GameOver && g.Turn == s.Index,
		}
		for _, suit := range s.TrumpCalls {
			ps.TrumpCalls = append(ps.TrumpCalls, engineSuitToString(suit))
		}
		if s.Index == seat {
			for _, c := range s.Hand.Cards() {
				ps.Hand = append(ps.Hand, t.obfCard(c))
			}
		}
		obf.Seats[i] = ps
	}

	if g.PlayingSeat >= 0 {
		p := uint8(g.PlayingSeat)
		if seat == p || seat == engine.Partner(p) {
			for _, c := range g.PassedForth {
				obf.Passed = append(obf.Passed, t.obfCard(c))
			}
			for _, c := range g.PassedBack {
				obf.Passed = append(obf.Passed, t.obfCard(c))
			}
		}
	}
	return obf
}
