// Package bot implements the computer players: a hand strength
// estimator (Chen formula preflop, Monte Carlo equity postflop) and a
// difficulty-tiered strategy that maps equity to an action.
package bot

import (
	rand "math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"cardroom/internal/deck"
	"cardroom/internal/evaluator"
	"cardroom/internal/randutil"
)

// ChenScore approximates preflop strength of two hole cards on the
// 0-20 Chen scale. Higher is stronger.
func ChenScore(hole []deck.Card) float64 {
	if len(hole) != 2 {
		return 0
	}
	hi, lo := hole[0], hole[1]
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	r1, r2 := int(hi.Rank), int(lo.Rank)
	gap := r1 - r2

	var score float64
	switch r1 {
	case 14:
		score = 10
	case 13:
		score = 8
	case 12:
		score = 7
	case 11:
		score = 6
	default:
		score = float64(r1) / 2
	}

	if r1 == r2 {
		return max(score*2, 5)
	}

	if hi.Suit == lo.Suit {
		score += 2
	}

	switch gap {
	case 0, 1:
	case 2:
		score--
	case 3:
		score -= 2
	case 4:
		score -= 4
	default:
		score -= 5
	}

	// Straight potential for low connectors.
	if gap <= 1 && r1 <= 11 {
		score++
	}

	return max(score, 0)
}

// chenEquity normalizes the Chen score to [0, 1].
func chenEquity(hole []deck.Card) float64 {
	return min(ChenScore(hole)/20, 1)
}

// MonteCarloEquity estimates win probability against the given number
// of random opponent hands by dealing out random boards. Ties count
// half. Simulations are split across a worker pool; worker RNGs derive
// from rng, so a seeded caller gets reproducible estimates.
func MonteCarloEquity(hole, community []deck.Card, opponents, sims int, rng *rand.Rand) float64 {
	if len(hole) != 2 || sims <= 0 {
		return 0.5
	}
	opponents = max(opponents, 1)

	known := make(map[deck.Card]bool, len(hole)+len(community))
	for _, c := range hole {
		known[c] = true
	}
	for _, c := range community {
		known[c] = true
	}
	pool := make([]deck.Card, 0, 52)
	for _, suit := range deck.Suits {
		for rank := deck.Two; rank <= deck.Ace; rank++ {
			if c := deck.NewCard(rank, suit); !known[c] {
				pool = append(pool, c)
			}
		}
	}

	workers := min(runtime.GOMAXPROCS(0), sims)
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = rng.Int64()
	}
	results := make([]float64, workers)

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		count := sims / workers
		if w < sims%workers {
			count++
		}
		g.Go(func() error {
			results[w] = simulate(hole, community, pool, opponents, count, randutil.New(seeds[w]))
			return nil
		})
	}
	_ = g.Wait()

	wins := 0.0
	for _, r := range results {
		wins += r
	}
	return wins / float64(sims)
}

func simulate(hole, community, pool []deck.Card, opponents, sims int, rng *rand.Rand) float64 {
	cards := append([]deck.Card(nil), pool...)
	boardNeed := 5 - len(community)
	draw := boardNeed + 2*opponents
	ours := make([]deck.Card, 0, 7)
	theirs := make([]deck.Card, 0, 7)

	wins := 0.0
	for s := 0; s < sims; s++ {
		// Partial Fisher-Yates: only the cards we deal this run.
		for i := 0; i < draw; i++ {
			j := i + rng.IntN(len(cards)-i)
			cards[i], cards[j] = cards[j], cards[i]
		}

		board := cards[:boardNeed]
		ours = append(ours[:0], hole...)
		ours = append(ours, community...)
		ours = append(ours, board...)
		ourScore := evaluator.Score(ours)

		bestOpp := evaluator.WorstScore
		for o := 0; o < opponents; o++ {
			theirs = append(theirs[:0], cards[boardNeed+2*o], cards[boardNeed+2*o+1])
			theirs = append(theirs, community...)
			theirs = append(theirs, board...)
			if score := evaluator.Score(theirs); score < bestOpp {
				bestOpp = score
			}
		}

		if ourScore < bestOpp {
			wins++
		} else if ourScore == bestOpp {
			wins += 0.5
		}
	}
	return wins
}
