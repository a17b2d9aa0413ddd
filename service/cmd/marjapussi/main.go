// Command marjapussi runs MarjaPussi tournaments between policies or lets a
// human play one seat against three computer seats.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/marjapussi/marjapussi/service/internal/config"
	"github.com/marjapussi/marjapussi/service/internal/tournament"
)

var log = logrus.New()

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logLevel := flag.String("loglevel", cfg.LogLevel.String(), "Set logging level (debug, info, warn, error)")
	flag.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "Number of hands in tournament mode")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Hands played in parallel")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of the first hand")
	flag.StringVar(&cfg.PolicyA, "a", cfg.PolicyA, "Policy of seats 0 and 2")
	flag.StringVar(&cfg.PolicyB, "b", cfg.PolicyB, "Policy of seats 1 and 3")
	flag.BoolVar(&cfg.Strict, "strict", cfg.Strict, "Verify every belief against the true hands")
	flag.Usage = printUsage
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid settings: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := flag.Args()
	mode := "tournament"
	if len(args) > 0 {
		mode = args[0]
	}
	switch mode {
	case "tournament", "t":
		if err := runTournament(ctx, cfg); err != nil {
			log.Fatalf("Tournament failed: %v", err)
		}
	case "play", "p":
		if err := runInteractive(ctx, cfg); err != nil {
			log.Fatalf("Game failed: %v", err)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func runTournament(ctx context.Context, cfg config.Config) error {
	a, err := tournament.LookupPolicy(cfg.PolicyA)
	if err != nil {
		return err
	}
	b, err := tournament.LookupPolicy(cfg.PolicyB)
	if err != nil {
		return err
	}

	C.Header.Printf("--- %s vs %s, %d hands ---\n", cfg.PolicyA, cfg.PolicyB, cfg.Rounds)
	sum, err := tournament.Run(ctx, tournament.Config{
		Rounds:  cfg.Rounds,
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		Rules:   cfg.Rules(),
		Strict:  cfg.Strict,
	}, tournament.Contender{Name: cfg.PolicyA, Policy: a}, tournament.Contender{Name: cfg.PolicyB, Policy: b}, log)
	if err != nil {
		return err
	}
	printSummary(sum)
	return nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "\nUsage:\n  marjapussi [flags] tournament\n  marjapussi [flags] play\n\nFlags:")
	flag.PrintDefaults()
}
