package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	engine "github.com/marjapussi/marjapussi/engine"
	"github.com/marjapussi/marjapussi/service/internal/game"
	"github.com/marjapussi/marjapussi/service/internal/tournament"
)

var C = struct {
	Good, Bad, Info, Warn, Header, Prompt *color.Color
}{
	Good:   color.New(color.FgGreen),
	Bad:    color.New(color.FgRed),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
}

var suitColors = map[string]*color.Color{
	"r": color.New(color.FgRed),
	"s": color.New(color.FgYellow),
	"e": color.New(color.FgHiBlack),
	"g": color.New(color.FgGreen),
}

// colorizeCard colours a card code like "r-A" by its suit.
func colorizeCard(code string) string {
	if c, ok := suitColors[strings.SplitN(code, "-", 2)[0]]; ok {
		return c.Sprint(code)
	}
	return code
}

func colorizeCards(cards []engine.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = colorizeCard(c.String())
	}
	return strings.Join(parts, " ")
}

func colorizeSuit(s engine.Suit) string {
	if c, ok := suitColors[s.String()]; ok {
		return c.Sprint(s.Name())
	}
	return s.Name()
}

func printSummary(sum *tournament.Summary) {
	rounds := len(sum.Rounds)
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Policy", "Taken", "Take %", "Won", "Win %", "Schwarz", "Avg value", "Points"})
	for _, s := range []tournament.Stats{sum.A, sum.B} {
		avg := 0.0
		if s.Taken > 0 {
			avg = float64(s.Values) / float64(s.Taken)
		}
		t.AppendRow(table.Row{
			s.Name, s.Taken, fmt.Sprintf("%.1f", 100*s.TakeRate(rounds)),
			s.Won, fmt.Sprintf("%.1f", 100*s.WinRate()), s.Schwarz, fmt.Sprintf("%.0f", avg), s.Points,
		})
	}
	t.AppendFooter(table.Row{"No game", sum.NoOnePlays, fmt.Sprintf("%.1f", 100*float64(sum.NoOnePlays)/float64(rounds))})
	t.SetStyle(table.StyleLight)
	t.Render()
}

// printEvent renders a table event for the human seat.
func printEvent(ev game.GameEvent) {
	name := ""
	if ev.Seat != nil {
		name = ev.Seat.Name
	}
	switch ev.Type {
	case game.EventPlayerProvoke:
		if ev.Value == 0 {
			C.Info.Printf("%s is gone\n", name)
		} else {
			C.Info.Printf("%s says %d\n", name, ev.Value)
		}
	case game.EventPlayerPass:
		C.Info.Printf("%s passes a card\n", name)
	case game.EventPrivatePass:
		C.Info.Printf("%s passes %s\n", name, colorizeCard(ev.Card.Code))
	case game.EventPlayerRaise:
		if ev.Value == 0 {
			C.Info.Printf("%s keeps the game value\n", name)
		} else {
			C.Info.Printf("%s raises to %d\n", name, ev.Value)
		}
	case game.EventPlayerTalk:
		talk := ev.Talk.Pronoun
		if ev.Talk.Suit != "" {
			talk += " " + ev.Talk.Suit
		}
		C.Info.Printf("%s: %q\n", name, talk)
	case game.EventPlayerPlay:
		fmt.Printf("%s plays %s\n", name, colorizeCard(ev.Card.Code))
	case game.EventTrickTaken:
		codes := make([]string, len(ev.Cards))
		for i, c := range ev.Cards {
			codes[i] = colorizeCard(c.Code)
		}
		C.Header.Printf("%s takes trick %v (%s) for %v points\n", name, ev.Payload["trick"], strings.Join(codes, " "), ev.Payload["points"])
	case game.EventTrumpDeclared:
		C.Warn.Printf("%s declares %s trump\n", name, ev.Talk.Suit)
	case game.EventGameEnd:
		printResult(ev)
	}
}

func printResult(ev game.GameEvent) {
	C.Header.Println("\n--- HAND OVER ---")
	if ev.Payload["noOnePlays"] == true {
		C.Info.Println("No one took the game.")
		return
	}
	line := fmt.Sprintf("Playing party made %v of %v (others %v)", ev.Payload["playingPoints"], ev.Payload["value"], ev.Payload["otherPoints"])
	if ev.Payload["won"] == true {
		C.Good.Println(line + ", game won.")
	} else {
		C.Bad.Println(line + ", game lost.")
	}
	if ev.Payload["schwarz"] == true {
		C.Warn.Println("Schwarz!")
	}
}
