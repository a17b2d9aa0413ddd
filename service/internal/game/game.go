// internal/game/game.go
package game

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	engine "github.com/marjapussi/marjapussi/engine"
	"github.com/marjapussi/marjapussi/engine/agent"
)

// OnGameEndFunc defines the signature for a callback executed when a hand ends.
// It receives the table ID and the final result.
type OnGameEndFunc func(tableID uuid.UUID, result engine.Result)

// GameEventType represents the type of a table event.
type GameEventType string

// Constants defining the GameEvent types a table emits.
const (
	EventPlayerProvoke       GameEventType = "player_provoke"        // Public: a provoking step or fold.
	EventPlayerPass          GameEventType = "player_pass"           // Public: a card was passed (card hidden).
	EventPrivatePass         GameEventType = "private_pass"          // Private: the passed card, playing party only.
	EventPlayerRaise         GameEventType = "player_raise"          // Public: the playing seat raised or kept the value.
	EventPlayerTalk          GameEventType = "player_talk"           // Public: a question, answer or announcement.
	EventPlayerPlay          GameEventType = "player_play"           // Public: a card was played into the trick.
	EventTrickTaken          GameEventType = "trick_taken"           // Public: a trick was completed.
	EventTrumpDeclared       GameEventType = "trump_declared"        // Public: the trump changed.
	EventGamePlayerTurn      GameEventType = "game_player_turn"      // Public: notification of the seat at turn.
	EventPrivateSyncState    GameEventType = "private_sync_state"    // Private: full state sync for a seat.
	EventPrivateInitialCards GameEventType = "private_initial_cards" // Private: the dealt hand.
	EventGameEnd             GameEventType = "game_end"              // Public: the hand has ended, includes results.
)

// EventSeat identifies a seat within a GameEvent payload.
type EventSeat struct {
	Index uint8  `json:"index"`
	Name  string `json:"name"`
}

// EventCard identifies a card within a GameEvent payload.
type EventCard struct {
	Code string `json:"code"`
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// EventTalk carries an utterance within a GameEvent payload.
type EventTalk struct {
	Pronoun string `json:"pronoun"`
	Suit    string `json:"suit,omitempty"`
}

// GameEvent is the standard structure for broadcasting table changes and actions.
type GameEvent struct {
	Type  GameEventType `json:"type"`
	Seat  *EventSeat    `json:"seat,omitempty"`  // The seat acting or addressed.
	Phase string        `json:"phase,omitempty"` // Phase tag of the action.
	Value int           `json:"value,omitempty"` // PROV/PRMO value.
	Card  *EventCard    `json:"card,omitempty"`  // Played or passed card.
	Cards []EventCard   `json:"cards,omitempty"` // Hand or trick cards.
	Talk  *EventTalk    `json:"talk,omitempty"`  // QUES/ANSW/ANSA utterance.

	Payload map[string]interface{} `json:"payload,omitempty"` // Additional arbitrary data.

	State *ObfTableState `json:"state,omitempty"` // Full obfuscated state for sync events.
}

// TableConfig describes one hand to run.
type TableConfig struct {
	Names    [engine.NumSeats]string
	Rules    engine.Rules
	Seed     uint64
	Dealer   uint8
	Policies [engine.NumSeats]agent.Policy

	// Hands deals fixed hands instead of shuffling when set.
	Hands *[engine.NumSeats]engine.CardSet

	// Strict verifies every belief against the true hands after each action.
	Strict bool

	Logger logrus.FieldLogger
}

// Table runs one MarjaPussi hand between four agents: it asks the agent at
// turn for an action, applies it to the referee and lets every agent observe it.
type Table struct {
	ID     uuid.UUID
	Names  [engine.NumSeats]string
	Strict bool

	Engine engine.GameState              // The authoritative game state.
	Agents [engine.NumSeats]*agent.Agent // One belief plus policy per seat.

	actionIndex int        // Sequential index of applied actions.
	started     bool       // Initial cards were sent.
	mu          sync.Mutex // Protects the fields above.

	// Communication callbacks. They are called with the table lock held and
	// must not call back into the table.
	BroadcastFn       func(ev GameEvent)             // Sends an event to every seat.
	BroadcastToSeatFn func(seat uint8, ev GameEvent) // Sends an event to a single seat.
	OnGameEnd         OnGameEndFunc                  // Executed when the hand finishes.

	log *logrus.Entry
}

// NewTable deals a hand and seats one agent per policy.
func NewTable(cfg TableConfig) (*Table, error) {
	if err := cfg.Rules.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid rules")
	}
	for i, p := range cfg.Policies {
		if p == nil {
			return nil, errors.Errorf("seat %d has no policy", i)
		}
	}
	if cfg.Dealer >= engine.NumSeats {
		return nil, errors.Errorf("dealer %d out of range", cfg.Dealer)
	}
	if cfg.Logger == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		cfg.Logger = l
	}

	t := &Table{
		ID:     uuid.New(),
		Names:  cfg.Names,
		Strict: cfg.Strict,
	}
	t.log = cfg.Logger.WithField("game_id", t.ID)

	t.Engine = engine.NewGame(cfg.Names, cfg.Seed, cfg.Rules)
	t.Engine.Dealer = cfg.Dealer
	t.Engine.SetLogger(t.log)
	if cfg.Hands != nil {
		if err := t.Engine.DealHands(*cfg.Hands); err != nil {
			return nil, errors.Wrap(err, "dealing fixed hands")
		}
	} else {
		t.Engine.Deal()
	}

	for i := range t.Agents {
		seat := uint8(i)
		t.Agents[i] = agent.NewAgent(seat, cfg.Names, t.Engine.Hand(seat), cfg.Rules, cfg.Policies[i], t.log)
	}
	return t, nil
}

// Run plays the hand to the end. The context is checked between actions.
// Any error aborts the hand.
func (t *Table) Run(ctx context.Context) (engine.Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return engine.Result{}, errors.Wrapf(err, "table %s cancelled", t.ID)
		}
		done, err := t.Step()
		if err != nil {
			t.log.WithError(err).Error("hand aborted")
			return engine.Result{}, err
		}
		if done {
			break
		}
	}
	r, _ := t.Engine.Result()
	return r, nil
}

// Step lets the seat at turn act once. It reports whether the hand is over.
func (t *Table) Step() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		t.start()
	}
	if t.Engine.IsTerminal() {
		return true, nil
	}

	seat := t.Engine.Turn
	legal := t.Engine.LegalActions()
	act := t.Agents[seat].NextAction(legal)
	trumps := len(t.Engine.AllTrump)
	trump := t.Engine.Trump
	tricks := len(t.Engine.Tricks)

	if err := t.Engine.Act(act); err != nil {
		return false, errors.Wrapf(err, "table %s: seat %d", t.ID, seat)
	}
	t.actionIndex++
	for i, a := range t.Agents {
		if err := a.Observe(act); err != nil {
			return false, errors.Wrapf(err, "table %s: agent %d observing %s", t.ID, i, act)
		}
	}
	if t.Strict {
		if err := t.verify(); err != nil {
			return false, err
		}
	}

	t.broadcastAction(act)
	if len(t.Engine.Tricks) > tricks {
		t.broadcastTrick()
	}
	if t.Engine.Trump != trump || len(t.Engine.AllTrump) > trumps {
		t.broadcast(GameEvent{
			Type: EventTrumpDeclared,
			Seat: t.eventSeat(act.Seat),
			Talk: toEventTalk(engine.NewTalk(act.Talk.Pronoun, t.Engine.Trump)),
		})
	}

	if t.Engine.IsTerminal() {
		t.finish()
		return true, nil
	}
	t.broadcastTurn()
	return false, nil
}

// start sends every seat its dealt hand and announces the first turn.
func (t *Table) start() {
	t.started = true
	t.log.WithField("dealer", t.Engine.Dealer).Info("hand started")
	for i := range t.Agents {
		seat := uint8(i)
		ev := GameEvent{Type: EventPrivateInitialCards, Seat: t.eventSeat(seat)}
		for _, c := range t.Engine.Hand(seat).Cards() {
			ev.Cards = append(ev.Cards, *toEventCard(c))
		}
		t.sendToSeat(seat, ev)
	}
	t.broadcastTurn()
}

// verify checks every belief against the true hands.
func (t *Table) verify() error {
	var hands [engine.NumSeats]engine.CardSet
	for i := range hands {
		hands[i] = t.Engine.Hand(uint8(i))
	}
	for i, a := range t.Agents {
		if err := a.State.CheckHands(hands); err != nil {
			return errors.Wrapf(err, "table %s: belief of seat %d after action %d", t.ID, i, t.actionIndex)
		}
	}
	return nil
}

func (t *Table) finish() {
	r, _ := t.Engine.Result()
	log := t.log.WithFields(logrus.Fields{"value": r.Value, "actions": t.actionIndex})
	if r.NoOnePlays {
		log.Info("no one played")
	} else {
		log.WithFields(logrus.Fields{
			"seat":   r.PlayingSeat,
			"points": r.PlayingPoints,
			"won":    r.Won,
		}).Info("hand over")
	}

	payload := map[string]interface{}{
		"value":      r.Value,
		"noOnePlays": r.NoOnePlays,
		"seatPoints": r.SeatPoints,
	}
	if !r.NoOnePlays {
		payload["playingSeat"] = r.PlayingSeat
		payload["playingPoints"] = r.PlayingPoints
		payload["otherPoints"] = r.OtherPoints
		payload["won"] = r.Won
		payload["schwarz"] = r.Schwarz
	}
	t.broadcast(GameEvent{Type: EventGameEnd, Payload: payload})
	if t.OnGameEnd != nil {
		t.OnGameEnd(t.ID, r)
	}
}

func (t *Table) broadcast(ev GameEvent) {
	if t.BroadcastFn != nil {
		t.BroadcastFn(ev)
	}
}

func (t *Table) sendToSeat(seat uint8, ev GameEvent) {
	if t.BroadcastToSeatFn != nil {
		t.BroadcastToSeatFn(seat, ev)
	}
}

// broadcastAction announces a to everyone. Passed cards go only to the two
// seats of the playing party.
func (t *Table) broadcastAction(a engine.Action) {
	t.broadcast(t.actionEvent(a, false))
	if a.Phase != engine.PhasePass && a.Phase != engine.PhasePassBack {
		return
	}
	p := uint8(t.Engine.PlayingSeat)
	for _, seat := range []uint8{p, engine.Partner(p)} {
		t.sendToSeat(seat, t.actionEvent(a, true))
	}
}

func (t *Table) broadcastTrick() {
	last := t.Engine.Tricks[len(t.Engine.Tricks)-1]
	ev := GameEvent{
		Type:    EventTrickTaken,
		Seat:    t.eventSeat(last.HighSeat()),
		Payload: map[string]interface{}{"points": last.Points(&t.Engine.Rules), "trick": len(t.Engine.Tricks)},
	}
	for _, c := range last.Played() {
		ev.Cards = append(ev.Cards, *toEventCard(c))
	}
	t.broadcast(ev)
}

// broadcastTurn announces the seat at turn and syncs its private state.
func (t *Table) broadcastTurn() {
	seat := t.Engine.Turn
	t.broadcast(GameEvent{Type: EventGamePlayerTurn, Seat: t.eventSeat(seat), Phase: t.Engine.Phase.String()})
	state := t.syncState(seat)
	t.sendToSeat(seat, GameEvent{Type: EventPrivateSyncState, Seat: t.eventSeat(seat), State: &state})
}
