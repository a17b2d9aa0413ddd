package agent

import (
	"math/bits"

	engine "github.com/marjapussi/marjapussi/engine"
)

// Probabilities treat every allocation of the unknown cards that is
// consistent with the belief as equally likely. An allocation gives each
// unknown card to one seat it is possible for, so that every seat receives
// exactly the number of unknown cards it still holds. Cards possible for the
// same seats are interchangeable, so allocations are counted per group of
// such cards rather than per card.

var factorial = func() [engine.DeckSize + 1]float64 {
	var f [engine.DeckSize + 1]float64
	f[0] = 1
	for i := 1; i < len(f); i++ {
		f[i] = f[i-1] * float64(i)
	}
	return f
}()

// cardGroup is a number of unknown cards possible for exactly the seats in mask.
type cardGroup struct {
	mask uint8
	n    int
}

// unknownGroups groups the unknown cards outside exclude by the seats they
// are possible for.
func (a *AgentState) unknownGroups(exclude engine.CardSet) []cardGroup {
	var counts [1 << engine.NumSeats]int
	for _, c := range a.unknown().Diff(exclude).Cards() {
		var mask uint8
		for i := range a.Possible {
			if a.Possible[i].Has(c) {
				mask |= 1 << i
			}
		}
		counts[mask]++
	}
	var out []cardGroup
	for m, n := range counts {
		if n > 0 {
			out = append(out, cardGroup{mask: uint8(m), n: n})
		}
	}
	return out
}

// unknown returns the cards left that are not secure for any seat.
func (a *AgentState) unknown() engine.CardSet {
	u := a.CardsLeft
	for i := range a.Secure {
		u = u.Diff(a.Secure[i])
	}
	return u
}

func (a *AgentState) needs() [engine.NumSeats]int {
	var n [engine.NumSeats]int
	for i := range n {
		n[i] = a.need(i)
	}
	return n
}

// allocations counts the ways to deal groups out so that seat i receives
// exactly need[i] cards.
func allocations(groups []cardGroup, need [engine.NumSeats]int) float64 {
	for _, n := range need {
		if n < 0 || n > 15 {
			return 0
		}
	}
	memo := make(map[uint32]float64)
	var rec func(idx int, need [engine.NumSeats]int) float64
	rec = func(idx int, need [engine.NumSeats]int) float64 {
		if idx == len(groups) {
			if need == [engine.NumSeats]int{} {
				return 1
			}
			return 0
		}
		key := uint32(idx) << 16
		for i, n := range need {
			key |= uint32(n) << (4 * (3 - i))
		}
		if v, ok := memo[key]; ok {
			return v
		}

		g := groups[idx]
		var seats []int
		for i := 0; i < engine.NumSeats; i++ {
			if g.mask&(1<<i) != 0 {
				seats = append(seats, i)
			}
		}
		total := 0.0
		var split func(k, left int, rest [engine.NumSeats]int, ways float64)
		split = func(k, left int, rest [engine.NumSeats]int, ways float64) {
			if k == len(seats)-1 {
				s := seats[k]
				if left > rest[s] {
					return
				}
				rest[s] -= left
				total += ways / factorial[left] * rec(idx+1, rest)
				return
			}
			s := seats[k]
			for take := 0; take <= left && take <= rest[s]; take++ {
				r := rest
				r[s] -= take
				split(k+1, left-take, r, ways/factorial[take])
			}
		}
		if len(seats) > 0 {
			split(0, g.n, need, factorial[g.n])
		}
		memo[key] = total
		return total
	}
	return rec(0, need)
}

// SetProbability returns the probability that seat holds every card of set.
func (a *AgentState) SetProbability(seat uint8, set engine.CardSet) float64 {
	if set.Empty() {
		return 1
	}
	if !a.CardsLeft.Contains(set) {
		return 0
	}
	for i := range a.Secure {
		if uint8(i) != seat && !a.Secure[i].Intersect(set).Empty() {
			return 0
		}
	}
	open := set.Diff(a.Secure[seat])
	if open.Empty() {
		return 1
	}
	if !a.Possible[seat].Contains(open) {
		return 0
	}

	total := allocations(a.unknownGroups(0), a.needs())
	if total == 0 {
		return 0
	}
	need := a.needs()
	need[seat] -= open.Len()
	return allocations(a.unknownGroups(open), need) / total
}

// CardProbability returns the probability that seat holds c.
func (a *AgentState) CardProbability(seat uint8, c engine.Card) float64 {
	return a.SetProbability(seat, engine.NewCardSet(c))
}

// AnyOfProbability returns the probability that seat holds at least one of
// sets completely. It uses inclusion-exclusion, so sets should be few.
func (a *AgentState) AnyOfProbability(seat uint8, sets []engine.CardSet) float64 {
	p := 0.0
	for sub := uint(1); sub < 1<<len(sets); sub++ {
		var union engine.CardSet
		for i, s := range sets {
			if sub&(1<<i) != 0 {
				union = union.Union(s)
			}
		}
		if bits.OnesCount(sub)%2 == 1 {
			p += a.SetProbability(seat, union)
		} else {
			p -= a.SetProbability(seat, union)
		}
	}
	return clamp01(p)
}

// PairProbability returns the probability that seat holds both halves of suit.
func (a *AgentState) PairProbability(seat uint8, suit engine.Suit) float64 {
	return a.SetProbability(seat, engine.PairSet(suit))
}

// AnyPairProbability returns the probability that seat holds some pair of a
// suit that was not declared yet.
func (a *AgentState) AnyPairProbability(seat uint8) float64 {
	var sets []engine.CardSet
	for _, s := range engine.Suits {
		if !a.isTrump(s) {
			sets = append(sets, engine.PairSet(s))
		}
	}
	return a.AnyOfProbability(seat, sets)
}
