package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom/internal/evaluator"
	"cardroom/internal/game"
	"cardroom/internal/randutil"
)

func TestChenScore(t *testing.T) {
	tests := []struct {
		hole  string
		score float64
	}{
		{"AsAh", 20},  // aces: 10 doubled
		{"2s2h", 5},   // deuces: floor of 5 for any pair
		{"AsKs", 12},  // 10 + 2 suited, one-gap no penalty
		{"AsKh", 10},  // offsuit big cards
		{"10s9s", 8},  // 5 + 2 suited + 1 connector
		{"7s2h", 0},   // 3.5 - 5 gap, floored at 0
		{"JsJd", 12},  // jacks: 6 doubled
		{"6s5s", 6},   // 3 + 2 suited + 1 connector
	}
	for _, tt := range tests {
		t.Run(tt.hole, func(t *testing.T) {
			hole := evaluator.MustParseCards(tt.hole)
			assert.InDelta(t, tt.score, ChenScore(hole), 0.001)
		})
	}
}

func TestChenScoreOrderIndependent(t *testing.T) {
	a := ChenScore(evaluator.MustParseCards("Ks10h"))
	b := ChenScore(evaluator.MustParseCards("10hKs"))
	assert.Equal(t, a, b)
}

func TestMonteCarloEquityAcesAreStrong(t *testing.T) {
	rng := randutil.New(1)
	hole := evaluator.MustParseCards("AsAh")
	equity := MonteCarloEquity(hole, nil, 1, 500, rng)
	assert.Greater(t, equity, 0.7, "pocket aces heads-up should dominate")
}

func TestMonteCarloEquityBoardRoyalTies(t *testing.T) {
	rng := randutil.New(1)
	hole := evaluator.MustParseCards("2h3d")
	board := evaluator.MustParseCards("AsKsQsJs10s")
	equity := MonteCarloEquity(hole, board, 2, 200, rng)
	assert.InDelta(t, 0.5, equity, 0.001, "everyone plays the board")
}

func TestMonteCarloEquityReproducible(t *testing.T) {
	hole := evaluator.MustParseCards("QhJh")
	board := evaluator.MustParseCards("10h9h2c")
	a := MonteCarloEquity(hole, board, 2, 300, randutil.New(7))
	b := MonteCarloEquity(hole, board, 2, 300, randutil.New(7))
	assert.Equal(t, a, b)
}

func testGameState(pot int, community string) *game.GameState {
	gs := &game.GameState{
		ID:         "bot-test",
		Variant:    game.NoLimit,
		SmallBlind: 10,
		BigBlind:   20,
		Pot:        pot,
		Phase:      game.PhasePreflop,
	}
	if community != "" {
		gs.Community = evaluator.MustParseCards(community)
		gs.Phase = game.PhaseFlop
	}
	for i, id := range []string{"b0", "p1", "p2"} {
		gs.Seats = append(gs.Seats, &game.Seat{ID: id, Name: id, Chips: 1000, Index: i})
	}
	return gs
}

func TestEasyBotFoldsTrashFacingBet(t *testing.T) {
	b := New(Easy, randutil.New(1))
	gs := testGameState(30, "")
	seat := gs.Seats[0]
	seat.Hole = evaluator.MustParseCards("7s2h")

	va := game.ValidActions{CallAmount: 100, MinRaise: 200, MaxRaise: 1000, CanRaise: true}
	action, _ := b.Decide(gs, seat, va)
	assert.Equal(t, game.ActionFold, action, "chen zero never meets the 0.35 floor")
}

func TestMediumBotRaisesAcesPreflop(t *testing.T) {
	b := New(Medium, randutil.New(1))
	gs := testGameState(30, "")
	seat := gs.Seats[0]
	seat.Hole = evaluator.MustParseCards("AsAh")

	va := game.ValidActions{CallAmount: 20, MinRaise: 40, MaxRaise: 1000, CanRaise: true}
	action, amount := b.Decide(gs, seat, va)
	require.Equal(t, game.ActionRaise, action, "full chen equity is a mandatory value raise")
	assert.GreaterOrEqual(t, amount, va.MinRaise)
	assert.LessOrEqual(t, amount, va.MaxRaise)
}

func TestMediumBotChecksWhenFree(t *testing.T) {
	b := New(Medium, randutil.New(1))
	gs := testGameState(60, "2c7d9h")
	seat := gs.Seats[0]
	seat.Hole = evaluator.MustParseCards("3s4d")

	va := game.ValidActions{CanCheck: true, MinRaise: 20, MaxRaise: 1000, CanRaise: true}
	action, _ := b.Decide(gs, seat, va)
	assert.Contains(t, []game.Action{game.ActionCheck, game.ActionRaise}, action,
		"facing no bet the bot never folds")
}

func TestPotSizeBetBounds(t *testing.T) {
	va := game.ValidActions{CallAmount: 50, MinRaise: 120, MaxRaise: 300}
	assert.Equal(t, 120, potSizeBet(40, 0.5, va), "small pots clamp up to min raise")
	assert.Equal(t, 300, potSizeBet(10000, 1.0, va), "big targets clamp to the shove")
	assert.Equal(t, 150, potSizeBet(100, 1.0, va))
}

func TestPotOdds(t *testing.T) {
	assert.Equal(t, 0.0, potOdds(100, 0))
	assert.InDelta(t, 0.25, potOdds(150, 50), 0.001)
}

func TestInPosition(t *testing.T) {
	gs := testGameState(0, "")
	gs.DealerIndex = 0
	assert.False(t, inPosition(gs, gs.Seats[0]), "the button itself counts as early by the relative-half rule")
	assert.True(t, inPosition(gs, gs.Seats[1]))
	assert.True(t, inPosition(gs, gs.Seats[2]))
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("hard")
	require.NoError(t, err)
	assert.Equal(t, Hard, d)

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, Medium, d, "empty defaults to medium")

	_, err = ParseDifficulty("impossible")
	assert.Error(t, err)
}
