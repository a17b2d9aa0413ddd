package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"

	engine "github.com/marjapussi/marjapussi/engine"
	"github.com/marjapussi/marjapussi/engine/agent"
	"github.com/marjapussi/marjapussi/service/internal/config"
	"github.com/marjapussi/marjapussi/service/internal/game"
	"github.com/marjapussi/marjapussi/service/internal/tournament"
)

const humanSeat = 0

// HumanPolicy asks the user for every action of its seat.
type HumanPolicy struct {
	line *liner.State
	quit bool
}

func (h *HumanPolicy) GameStart(s *agent.AgentState) {
	C.Header.Printf("\nYou are %s. Your hand: %s\n", s.Names[s.Seat], colorizeCards(s.HandCards().Cards()))
}

func (h *HumanPolicy) ObserveAction(*agent.AgentState, engine.Action) {}

// SelectAction prompts until the user names one of the legal actions, by its
// number or by its payload ("120", "r-A", "my r"). On quit the first legal
// action is returned and runInteractive stops the table.
func (h *HumanPolicy) SelectAction(s *agent.AgentState, legal []engine.Action) engine.Action {
	if h.quit {
		return legal[0]
	}
	printSituation(s)
	for i, a := range legal {
		fmt.Printf("  %2d: %s\n", i+1, describe(a))
	}
	for {
		C.Prompt.Printf("(%s) ", legal[0].Phase)
		input, err := h.line.Prompt("")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				h.quit = true
				return legal[0]
			}
			log.Fatalf("Error reading line: %v", err)
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		h.line.AppendHistory(input)
		if input == "hints" || input == "h" {
			printHints(s)
			continue
		}
		if a, ok := matchAction(input, legal); ok {
			return a
		}
		C.Warn.Printf("'%s' is not a legal action here.\n", input)
	}
}

// payload strips seat and phase from an action's text.
func payload(a engine.Action) string {
	parts := strings.SplitN(a.String(), " ", 3)
	if len(parts) < 3 {
		return ""
	}
	return strings.TrimSpace(parts[2])
}

func describe(a engine.Action) string {
	switch a.Phase {
	case engine.PhaseProvoke:
		if a.Value == 0 {
			return "fold"
		}
	case engine.PhaseRaise:
		if a.Value == 0 {
			return "keep the value"
		}
	case engine.PhasePass, engine.PhasePassBack, engine.PhaseTrick:
		return colorizeCard(a.Card.String())
	}
	return payload(a)
}

func matchAction(input string, legal []engine.Action) (engine.Action, bool) {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(legal) {
		// Numbers double as provoking values; prefer the list index only
		// when no action carries that value.
		for _, a := range legal {
			if (a.Phase == engine.PhaseProvoke || a.Phase == engine.PhaseRaise) && a.Value == n {
				return a, true
			}
		}
		return legal[n-1], true
	}
	for _, a := range legal {
		if strings.EqualFold(payload(a), input) {
			return a, true
		}
	}
	return engine.Action{}, false
}

func printSituation(s *agent.AgentState) {
	fmt.Println()
	info := fmt.Sprintf("Value %d", s.Value)
	if s.Trump.Valid() {
		info += ", trump " + colorizeSuit(s.Trump)
	}
	if s.PlayingSeat >= 0 {
		info += ", played by " + s.Names[s.PlayingSeat]
	}
	C.Info.Println(info)
	if played := s.Trick.Played(); len(played) > 0 {
		fmt.Printf("Trick: %s\n", colorizeCards(played))
	}
	fmt.Printf("Hand:  %s\n", colorizeCards(s.HandCards().Cards()))
}

// printHints shows what the belief knows about the other seats.
func printHints(s *agent.AgentState) {
	for i := uint8(0); i < engine.NumSeats; i++ {
		if i == s.Seat {
			continue
		}
		fmt.Printf("%-6s holds %s", s.Names[i], colorizeCards(s.SecureCards(i).Cards()))
		fmt.Printf(" (%d cards, any pair %.0f%%)\n", s.HandLeft[i], 100*s.AnyPairProbability(i))
	}
	for _, c := range s.Concepts.AllByProperties(nil) {
		fmt.Printf("  %s %.2f\n", c.Name, c.Evaluate(s.Concepts, false))
	}
}

// runInteractive seats the human at seat 0 with policy A as partner and
// policy B as opponents.
func runInteractive(ctx context.Context, cfg config.Config) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	a, err := tournament.LookupPolicy(cfg.PolicyA)
	if err != nil {
		return err
	}
	b, err := tournament.LookupPolicy(cfg.PolicyB)
	if err != nil {
		return err
	}
	human := &HumanPolicy{line: line}
	names := [engine.NumSeats]string{"You", "Left", "Partner", "Right"}
	policies := [engine.NumSeats]agent.Policy{human, b(cfg.Seed + 1), a(cfg.Seed + 2), b(cfg.Seed + 3)}

	tc := game.TableConfig{
		Names:    names,
		Rules:    cfg.Rules(),
		Seed:     cfg.Seed,
		Dealer:   uint8(cfg.Seed % engine.NumSeats),
		Policies: policies,
		Strict:   cfg.Strict,
	}
	// The events already narrate the hand; referee logs only on debug.
	if log.IsLevelEnabled(logrus.DebugLevel) {
		tc.Logger = log
	}
	tbl, err := game.NewTable(tc)
	if err != nil {
		return err
	}
	tbl.BroadcastFn = printEvent
	tbl.BroadcastToSeatFn = func(seat uint8, ev game.GameEvent) {
		if seat == humanSeat {
			printEvent(ev)
		}
	}

	C.Header.Println("--- MarjaPussi ---")
	C.Info.Println("Enter an action by number or by name, 'hints' shows what you know. Ctrl+C quits.")
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		done, err := tbl.Step()
		if err != nil {
			return err
		}
		if human.quit {
			C.Info.Println("Goodbye!")
			return nil
		}
		if done {
			return nil
		}
	}
}
