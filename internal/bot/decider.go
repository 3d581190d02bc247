package bot

import (
	"fmt"
	rand "math/rand/v2"

	"cardroom/internal/game"
)

// Difficulty selects how much work a bot puts into its decisions and
// how aggressively it plays.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// ParseDifficulty validates a difficulty token.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(s) {
	case Easy, Medium, Hard:
		return Difficulty(s), nil
	case "":
		return Medium, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Simulation budgets per difficulty.
const (
	easySims   = 100
	mediumSims = 300
	hardSims   = 1000
)

// Bot decides actions for one seat. Each bot owns its RNG; decisions
// for a seat are requested one at a time by the game driver.
type Bot struct {
	difficulty Difficulty
	rng        *rand.Rand
}

// New creates a bot decider.
func New(difficulty Difficulty, rng *rand.Rand) *Bot {
	return &Bot{difficulty: difficulty, rng: rng}
}

// Decide implements game.Decider. Amounts for raises are total street
// bet targets; the engine clamps whatever comes back.
func (b *Bot) Decide(gs *game.GameState, seat *game.Seat, va game.ValidActions) (game.Action, int) {
	equity := b.equity(gs, seat)
	switch b.difficulty {
	case Easy:
		return b.decideEasy(gs, va, equity)
	case Hard:
		return b.decideHard(gs, seat, va, equity)
	default:
		return b.decideMedium(gs, va, equity)
	}
}

// equity estimates win probability for the seat's hand right now.
// Preflop the cheap tiers use the Chen formula; everything else runs
// Monte Carlo with the tier's simulation budget.
func (b *Bot) equity(gs *game.GameState, seat *game.Seat) float64 {
	if len(seat.Hole) != 2 {
		return 0.5
	}
	opponents := gs.CountWhere((*game.Seat).InHand) - 1

	if len(gs.Community) == 0 {
		switch b.difficulty {
		case Hard:
			return MonteCarloEquity(seat.Hole, nil, opponents, hardSims, b.rng)
		case Easy:
			return chenEquity(seat.Hole) * 0.9
		default:
			return chenEquity(seat.Hole)
		}
	}

	sims := mediumSims
	switch b.difficulty {
	case Hard:
		sims = hardSims
	case Easy:
		sims = easySims
	}
	return MonteCarloEquity(seat.Hole, gs.Community, opponents, sims, b.rng)
}

// decideEasy plays fit-or-fold and rarely raises.
func (b *Bot) decideEasy(gs *game.GameState, va game.ValidActions, equity float64) (game.Action, int) {
	if va.CanCheck {
		if equity > 0.7 && va.CanRaise && b.rng.Float64() < 0.3 {
			return game.ActionRaise, potSizeBet(gs.Pot, 0.5, va)
		}
		return game.ActionCheck, 0
	}

	odds := potOdds(gs.Pot, va.CallAmount)
	if equity < 0.35 || (equity < odds && b.rng.Float64() < 0.8) {
		return game.ActionFold, 0
	}
	if equity > 0.7 && va.CanRaise && b.rng.Float64() < 0.2 {
		return game.ActionRaise, potSizeBet(gs.Pot, 0.5, va)
	}
	return game.ActionCall, va.CallAmount
}

// decideMedium calls by pot odds and raises its good hands.
func (b *Bot) decideMedium(gs *game.GameState, va game.ValidActions, equity float64) (game.Action, int) {
	odds := potOdds(gs.Pot, va.CallAmount)

	if va.CanCheck {
		if equity > 0.65 && va.CanRaise {
			return game.ActionRaise, potSizeBet(gs.Pot, 0.75, va)
		}
		if equity > 0.5 && va.CanRaise && b.rng.Float64() < 0.3 {
			return game.ActionRaise, potSizeBet(gs.Pot, 0.5, va)
		}
		return game.ActionCheck, 0
	}

	if equity < odds {
		return game.ActionFold, 0
	}
	if equity > 0.7 && va.CanRaise {
		return game.ActionRaise, potSizeBet(gs.Pot, 1.0, va)
	}
	if equity > 0.55 && va.CanRaise && b.rng.Float64() < 0.4 {
		return game.ActionRaise, potSizeBet(gs.Pot, 0.75, va)
	}
	return game.ActionCall, va.CallAmount
}

// decideHard adds position awareness and a ~15% bluffing frequency.
func (b *Bot) decideHard(gs *game.GameState, seat *game.Seat, va game.ValidActions, equity float64) (game.Action, int) {
	odds := potOdds(gs.Pot, va.CallAmount)
	inPosition := inPosition(gs, seat)
	bluffing := inPosition && b.rng.Float64() < 0.15

	if va.CanCheck {
		if equity > 0.6 && va.CanRaise {
			size := 0.6
			if inPosition {
				size = 0.75
			}
			return game.ActionRaise, potSizeBet(gs.Pot, size, va)
		}
		if bluffing && va.CanRaise {
			return game.ActionRaise, potSizeBet(gs.Pot, 0.6, va)
		}
		return game.ActionCheck, 0
	}

	if bluffing && va.CanRaise {
		return game.ActionRaise, potSizeBet(gs.Pot, 0.75, va)
	}
	if equity < odds && !bluffing {
		return game.ActionFold, 0
	}
	if equity > 0.75 && va.CanRaise {
		size := 0.75
		if inPosition {
			size = 1.0
		}
		return game.ActionRaise, potSizeBet(gs.Pot, size, va)
	}
	if equity > 0.55 && va.CanRaise && inPosition && b.rng.Float64() < 0.5 {
		return game.ActionRaise, potSizeBet(gs.Pot, 0.6, va)
	}
	return game.ActionCall, va.CallAmount
}

// potOdds is the break-even equity for a call.
func potOdds(pot, call int) float64 {
	if call == 0 {
		return 0
	}
	return float64(call) / float64(pot+call)
}

// potSizeBet sizes a raise as a fraction of the pot, bounded by the
// legal raise range.
func potSizeBet(pot int, fraction float64, va game.ValidActions) int {
	target := va.CallAmount + int(float64(max(pot, 1))*fraction)
	target = max(target, va.MinRaise)
	return min(target, va.MaxRaise)
}

// inPosition reports whether the seat acts late relative to the button.
func inPosition(gs *game.GameState, seat *game.Seat) bool {
	n := len(gs.Seats)
	if n == 0 {
		return false
	}
	relative := ((seat.Index - gs.DealerIndex) % n + n) % n
	return relative >= n/2
}
