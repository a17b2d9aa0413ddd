// Package tournament plays many independent hands between two policies in
// parallel and aggregates the outcome per policy.
package tournament

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	engine "github.com/marjapussi/marjapussi/engine"
	"github.com/marjapussi/marjapussi/engine/agent"
	"github.com/marjapussi/marjapussi/service/internal/game"
)

// PolicyFactory creates a fresh policy for one seat of one hand.
type PolicyFactory func(seed uint64) agent.Policy

var factories = map[string]PolicyFactory{
	"random":       func(seed uint64) agent.Policy { return agent.NewRandomPolicy(seed) },
	"little-smart": func(seed uint64) agent.Policy { return agent.NewLittleSmartPolicy(seed) },
	"convention":   func(seed uint64) agent.Policy { return agent.NewConventionPolicy(seed) },
}

// LookupPolicy returns the factory registered under name.
func LookupPolicy(name string) (PolicyFactory, error) {
	f, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, errors.Errorf("unknown policy %q", name)
	}
	return f, nil
}

// Contender is one side of a tournament. It plays seats 0 and 2 (A) or
// 1 and 3 (B).
type Contender struct {
	Name   string
	Policy PolicyFactory
}

// Config controls a tournament run.
type Config struct {
	Rounds  int
	Workers int
	Seed    uint64
	Rules   engine.Rules
	Strict  bool
}

// Round is the outcome of one hand.
type Round struct {
	ID     uuid.UUID
	Index  int
	Dealer uint8
	Result engine.Result
}

// Stats aggregates the hands of one contender.
type Stats struct {
	Name    string
	Taken   int // hands this side played
	Won     int // hands played and made
	Schwarz int // hands played where the other side took no trick
	Points  int // trick and declaration points over all hands
	Values  int // sum of the game values of the hands played
}

// WinRate is the share of taken games that were won.
func (s Stats) WinRate() float64 {
	if s.Taken == 0 {
		return 0
	}
	return float64(s.Won) / float64(s.Taken)
}

// TakeRate is the share of all rounds this side played.
func (s Stats) TakeRate(rounds int) float64 {
	if rounds == 0 {
		return 0
	}
	return float64(s.Taken) / float64(rounds)
}

// Summary is the aggregate of a tournament.
type Summary struct {
	Rounds     []Round
	A, B       Stats
	NoOnePlays int
}

func (s *Summary) String() string {
	return fmt.Sprintf("%d rounds: %s took %d won %d, %s took %d won %d, %d without a game",
		len(s.Rounds), s.A.Name, s.A.Taken, s.A.Won, s.B.Name, s.B.Taken, s.B.Won, s.NoOnePlays)
}

// seatsOf returns which contender sits at seat: 0 for A, 1 for B.
func seatsOf(seat uint8) int { return int(seat % 2) }

// Run plays cfg.Rounds hands with at most cfg.Workers running at once. The
// dealer rotates every round and round i is dealt from cfg.Seed+i, so a run
// is reproducible regardless of scheduling. The first failing hand cancels
// the rest.
func Run(ctx context.Context, cfg Config, a, b Contender, log logrus.FieldLogger) (*Summary, error) {
	if cfg.Rounds < 1 || cfg.Workers < 1 {
		return nil, errors.Errorf("rounds and workers must be positive, got %d and %d", cfg.Rounds, cfg.Workers)
	}
	if a.Policy == nil || b.Policy == nil {
		return nil, errors.New("both contenders need a policy")
	}
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	log = log.WithFields(logrus.Fields{"a": a.Name, "b": b.Name})
	log.Infof("starting %d rounds on %d workers", cfg.Rounds, cfg.Workers)

	rounds := make([]Round, cfg.Rounds)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := 0; i < cfg.Rounds; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := playRound(gctx, cfg, i, a, b, log)
			if err != nil {
				return err
			}
			rounds[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "tournament cancelled")
	}

	sum := summarize(rounds, a.Name, b.Name)
	log.Info(sum.String())
	return sum, nil
}

func playRound(ctx context.Context, cfg Config, i int, a, b Contender, log logrus.FieldLogger) (Round, error) {
	seed := cfg.Seed + uint64(i)
	dealer := uint8(i % engine.NumSeats)

	var names [engine.NumSeats]string
	var policies [engine.NumSeats]agent.Policy
	for s := uint8(0); s < engine.NumSeats; s++ {
		c := a
		if seatsOf(s) == 1 {
			c = b
		}
		names[s] = fmt.Sprintf("%s-%d", c.Name, s)
		policies[s] = c.Policy(seed*engine.NumSeats + uint64(s))
	}

	tbl, err := game.NewTable(game.TableConfig{
		Names:    names,
		Rules:    cfg.Rules,
		Seed:     seed,
		Dealer:   dealer,
		Policies: policies,
		Strict:   cfg.Strict,
		Logger:   log.WithField("round", i),
	})
	if err != nil {
		return Round{}, errors.Wrapf(err, "round %d", i)
	}
	res, err := tbl.Run(ctx)
	if err != nil {
		return Round{}, errors.Wrapf(err, "round %d", i)
	}
	return Round{ID: tbl.ID, Index: i, Dealer: dealer, Result: res}, nil
}

func summarize(rounds []Round, a, b string) *Summary {
	sum := &Summary{Rounds: rounds, A: Stats{Name: a}, B: Stats{Name: b}}
	side := func(seat uint8) *Stats {
		if seatsOf(seat) == 0 {
			return &sum.A
		}
		return &sum.B
	}
	for _, r := range rounds {
		res := r.Result
		for s, p := range res.SeatPoints {
			side(uint8(s)).Points += p
		}
		if res.NoOnePlays {
			sum.NoOnePlays++
			continue
		}
		st := side(uint8(res.PlayingSeat))
		st.Taken++
		st.Values += res.Value
		if res.Won {
			st.Won++
		}
		if res.Schwarz {
			st.Schwarz++
		}
	}
	return sum
}
