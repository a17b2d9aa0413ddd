package engine

import (
	"errors"
	"testing"
)

// playAll plays cards into t starting at seat leader.
func playAll(t *testing.T, tr *Trick, leader uint8, cards ...string) {
	t.Helper()
	seat := leader
	for _, s := range cards {
		if err := tr.Play(MustParseCard(s), seat); err != nil {
			t.Fatalf("Play(%s): %v", s, err)
		}
		seat = Next(seat)
	}
}

// TestTrickDescendingBaseSuit plays one suit in descending order without trump.
func TestTrickDescendingBaseSuit(t *testing.T) {
	tr := NewTrick(NoSuit)
	playAll(t, &tr, 2, "s-A", "s-Z", "s-K", "s-O")

	if tr.Status() != 4 || !tr.Complete() {
		t.Fatalf("Status = %d, want 4", tr.Status())
	}
	if tr.HighCard() != MustParseCard("s-A") {
		t.Errorf("HighCard = %s, want s-A", tr.HighCard())
	}
	if tr.HighSeat() != 2 {
		t.Errorf("HighSeat = %d, want 2", tr.HighSeat())
	}
	if tr.Base != Schell || tr.Leader() != 2 {
		t.Errorf("Base/Leader = %s/%d, want s/2", tr.Base, tr.Leader())
	}
	if got := tr.Points(&Rules{RankPoints: DefaultRules().RankPoints}); got != 11+10+4+3 {
		t.Errorf("Points = %d, want 28", got)
	}
}

func TestTrickHighCard(t *testing.T) {
	tests := []struct {
		name     string
		trump    Suit
		cards    []string
		wantHigh string
		wantSeat uint8
	}{
		{"off-suit never wins without trump", NoSuit, []string{"g-U", "r-A", "g-9", "s-A"}, "g-U", 0},
		{"higher base card overtakes the lead", NoSuit, []string{"g-9", "r-A", "g-U", "s-A"}, "g-U", 2},
		{"highest base card wins", NoSuit, []string{"e-7", "e-A", "e-Z", "g-A"}, "e-A", 1},
		{"single trump beats base", Rot, []string{"g-A", "r-6", "g-Z", "g-K"}, "r-6", 1},
		{"higher trump overtakes", Rot, []string{"g-A", "r-6", "r-U", "g-K"}, "r-U", 2},
		{"trump led", Eichel, []string{"e-9", "e-A", "s-A", "e-Z"}, "e-A", 1},
		{"lower trump does not overtake", Schell, []string{"r-7", "s-K", "s-9", "r-A"}, "s-K", 1},
	}
	for _, tt := range tests {
		tr := NewTrick(tt.trump)
		playAll(t, &tr, 0, tt.cards...)
		if tr.HighCard() != MustParseCard(tt.wantHigh) {
			t.Errorf("%s: HighCard = %s, want %s", tt.name, tr.HighCard(), tt.wantHigh)
		}
		if tr.HighSeat() != tt.wantSeat {
			t.Errorf("%s: HighSeat = %d, want %d", tt.name, tr.HighSeat(), tt.wantSeat)
		}
	}
}

func TestTrickFifthCard(t *testing.T) {
	tr := NewTrick(NoSuit)
	playAll(t, &tr, 0, "r-A", "r-Z", "r-K", "r-O")
	err := tr.Play(MustParseCard("r-U"), 0)
	var ipe *InvalidPlayError
	if !errors.As(err, &ipe) {
		t.Fatalf("error = %v, want *InvalidPlayError", err)
	}
	if tr.Status() != 4 {
		t.Errorf("Status = %d after rejected play, want 4", tr.Status())
	}
}

func TestTrickSetTrump(t *testing.T) {
	tr := NewTrick(NoSuit)
	if !tr.SetTrump(Gruen) {
		t.Fatal("SetTrump on empty trick failed")
	}
	playAll(t, &tr, 0, "r-A")
	if tr.SetTrump(Rot) {
		t.Error("SetTrump succeeded on a started trick")
	}
	if tr.Trump != Gruen {
		t.Errorf("Trump = %s, want g", tr.Trump)
	}
}

// TestTrickWellFormed checks random complete tricks: the high card is the
// top trump when any trump was played, else the top base-suit card.
func TestTrickWellFormed(t *testing.T) {
	g := NewGame(testNames, 7, DefaultRules())
	for i := 0; i < 2000; i++ {
		deck := NewDeck()
		for k := len(deck) - 1; k > 0; k-- {
			j := int(g.randN(uint64(k + 1)))
			deck[k], deck[j] = deck[j], deck[k]
		}
		trump := NoSuit
		if i%5 != 0 {
			trump = Suit(i % NumSuits)
		}
		tr := NewTrick(trump)
		for k := 0; k < NumSeats; k++ {
			if err := tr.Play(deck[k], uint8(k)); err != nil {
				t.Fatal(err)
			}
		}

		want := EmptyCard
		for _, c := range deck[:NumSeats] {
			if c.Suit() == trump && (want == EmptyCard || want.Suit() != trump || c.Rank() > want.Rank()) {
				want = c
			}
		}
		if want == EmptyCard {
			for _, c := range deck[:NumSeats] {
				if c.Suit() == tr.Base && (want == EmptyCard || c.Rank() > want.Rank()) {
					want = c
				}
			}
		}
		if tr.HighCard() != want {
			t.Fatalf("trick %s trump %s: HighCard = %s, want %s",
				CardsString(tr.Played()), trump, tr.HighCard(), want)
		}
	}
}
