package engine

import (
	"errors"
	"testing"
)

func TestResultNotReady(t *testing.T) {
	g := newFixedGame(t)
	if _, ok := g.Result(); ok {
		t.Error("Result ready before the hand was played")
	}
	takeGame(t, g, 0, 120)
	if _, ok := g.Result(); ok {
		t.Error("Result ready after provoking")
	}
}

// TestNoOnePlaysFinishes plays a hand where everyone folds at the start value.
func TestNoOnePlaysFinishes(t *testing.T) {
	g := newDealtGame(t, 5)
	for g.Phase == PhaseProvoke {
		applyOrFatal(t, g, NewProvoke(g.Turn, 0))
	}
	if !g.NoOnePlays() || g.Turn != g.Dealer {
		t.Fatalf("noone/turn = %v/%d", g.NoOnePlays(), g.Turn)
	}
	r, err := g.PlayUntilDone(Random)
	if err != nil {
		t.Fatalf("PlayUntilDone: %v", err)
	}
	if !r.NoOnePlays || r.PlayingSeat != -1 || r.Value != DefaultRules().StartValue {
		t.Errorf("result = %+v", r)
	}
	if len(r.Tricks) != NumTricks {
		t.Errorf("tricks = %d, want %d", len(r.Tricks), NumTricks)
	}
	if g.Phase != PhaseDone || len(g.LegalActions()) != 0 {
		t.Errorf("phase %s with %d legal actions", g.Phase, len(g.LegalActions()))
	}
}

// TestDealerOpens verifies the dealer opens provoking and leads when no one plays.
func TestDealerOpens(t *testing.T) {
	g := NewGame(testNames, 3, DefaultRules())
	g.Dealer = 2
	g.Deal()
	if g.Turn != 2 {
		t.Fatalf("turn = %d, want dealer 2", g.Turn)
	}
	for g.Phase == PhaseProvoke {
		applyOrFatal(t, &g, NewProvoke(g.Turn, 0))
	}
	if g.Phase != PhaseTrick || g.Turn != 2 {
		t.Errorf("phase/turn = %s/%d, want TRCK/2", g.Phase, g.Turn)
	}
}

func TestPlayUntilDonePropagatesErrors(t *testing.T) {
	g := newFixedGame(t)
	bad := func(g *GameState, legal []Action) Action { return NewPlay(g.Turn, MustParseCard("r-A")) }
	_, err := g.PlayUntilDone(bad)
	var iae *IllegalActionError
	if !errors.As(err, &iae) {
		t.Fatalf("error = %v, want *IllegalActionError", err)
	}
	if iae.Phase != PhaseProvoke {
		t.Errorf("Phase = %s, want PROV", iae.Phase)
	}
}

// TestReplayHistory verifies a recorded action history replays to the same result.
func TestReplayHistory(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g := newDealtGame(t, seed)
		want, err := g.PlayUntilDone(Random)
		if err != nil {
			t.Fatal(err)
		}
		h := NewGame(testNames, 1, DefaultRules())
		if err := h.DealHands(want.Dealt); err != nil {
			t.Fatal(err)
		}
		for _, a := range want.Actions {
			applyOrFatal(t, &h, a)
		}
		got, ok := h.Result()
		if !ok {
			t.Fatalf("seed %d: replay ended in %s", seed, h.Phase)
		}
		if got.SeatPoints != want.SeatPoints || got.Won != want.Won || got.Value != want.Value {
			t.Fatalf("seed %d: replay result differs: %+v vs %+v", seed, got, want)
		}
	}
}
