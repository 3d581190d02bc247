package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testState seats len(chips) players p0..pN with p0 on the button.
func testState(variant Variant, phase Phase, chips ...int) (*GameState, *PotManager) {
	gs := &GameState{
		ID:           "test",
		Variant:      variant,
		SmallBlind:   10,
		BigBlind:     20,
		DealerIndex:  0,
		CurrentIndex: -1,
		Phase:        phase,
	}
	for i, c := range chips {
		gs.Seats = append(gs.Seats, &Seat{
			ID:    fmt.Sprintf("p%d", i),
			Name:  fmt.Sprintf("Player %d", i),
			Chips: c,
			Index: i,
		})
	}
	return gs, NewPotManager()
}

func postTestBlinds(gs *GameState, pot *PotManager) {
	sb, bb := BlindPositions(gs)
	PostBlind(gs, pot, sb, gs.SmallBlind)
	PostBlind(gs, pot, bb, gs.BigBlind)
}

func TestValidActionsPreflopNoLimit(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, FirstToActPreflop(gs, 2))

	va := br.ValidActions(gs.Seats[0])
	assert.False(t, va.CanCheck)
	assert.Equal(t, 20, va.CallAmount)
	assert.Equal(t, 40, va.MinRaise, "opening min-raise is a full big blind over the bet")
	assert.Equal(t, 1000, va.MaxRaise, "max raise is the shove")
	assert.True(t, va.CanRaise)
}

func TestRaiseUpdatesMinRaise(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, 0)

	res, err := br.Apply(gs.Seats[0], ActionRaise, 60)
	require.NoError(t, err)
	assert.Equal(t, Continue, res)
	assert.Equal(t, 60, br.CurrentBet())
	assert.Equal(t, 940, gs.Seats[0].Chips)

	va := br.ValidActions(gs.Seats[1])
	assert.Equal(t, 50, va.CallAmount)
	assert.Equal(t, 100, va.MinRaise, "min re-raise is the last raise size on top")
}

func TestRaiseBelowMinClampsUp(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionRaise, 25)
	require.NoError(t, err)
	assert.Equal(t, 40, gs.Seats[0].Bet, "raise below minimum is clamped up")
	assert.Equal(t, 40, br.CurrentBet())
}

func TestShortAllInDoesNotReopenBetting(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 70)
	postTestBlinds(gs, pot) // p1 posts 10, p2 posts 20
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionRaise, 60)
	require.NoError(t, err)
	_, err = br.Apply(gs.Seats[1], ActionCall, 0)
	require.NoError(t, err)

	// p2 shoves 70 total, short of the 100 min-raise.
	res, err := br.Apply(gs.Seats[2], ActionAllIn, 0)
	require.NoError(t, err)
	assert.Equal(t, Continue, res)
	assert.True(t, gs.Seats[2].AllIn)
	assert.Equal(t, 70, br.CurrentBet())

	// The raise increment must still be the original 40: the short
	// all-in did not reset it.
	va := br.ValidActions(gs.Seats[0])
	assert.Equal(t, 10, va.CallAmount)
	assert.Equal(t, 110, va.MinRaise)

	_, err = br.Apply(gs.Seats[0], ActionCall, 0)
	require.NoError(t, err)
	res, err = br.Apply(gs.Seats[1], ActionCall, 0)
	require.NoError(t, err)
	assert.Equal(t, RoundComplete, res, "callers settle the round, no betting reopened")
}

func TestAllInBelowCurrentBetIsACall(t *testing.T) {
	gs, pot := testState(NoLimit, PhaseFlop, 1000, 30)
	br := NewBettingRound(gs, pot, 1)

	_, err := br.Apply(gs.Seats[1], ActionCheck, 0)
	require.NoError(t, err)
	_, err = br.Apply(gs.Seats[0], ActionRaise, 50)
	require.NoError(t, err)

	res, err := br.Apply(gs.Seats[1], ActionAllIn, 0)
	require.NoError(t, err)
	assert.True(t, gs.Seats[1].AllIn)
	assert.Equal(t, 30, gs.Seats[1].Bet)
	assert.Equal(t, 50, br.CurrentBet(), "a short all-in call does not move the bet")
	assert.Equal(t, RoundComplete, res)
}

func TestBigBlindOption(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionCall, 0)
	require.NoError(t, err)
	res, err := br.Apply(gs.Seats[1], ActionCall, 0)
	require.NoError(t, err)
	assert.Equal(t, Continue, res, "big blind still has the option")

	va := br.ValidActions(gs.Seats[2])
	assert.True(t, va.CanCheck)

	res, err = br.Apply(gs.Seats[2], ActionCheck, 0)
	require.NoError(t, err)
	assert.Equal(t, RoundComplete, res)
}

func TestAllFolded(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionFold, 0)
	require.NoError(t, err)
	res, err := br.Apply(gs.Seats[1], ActionFold, 0)
	require.NoError(t, err)
	assert.Equal(t, AllFolded, res)
	assert.Equal(t, -1, gs.CurrentIndex)
}

func TestCheckFacingBetRejected(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, 0)

	chips := gs.Seats[0].Chips
	_, err := br.Apply(gs.Seats[0], ActionCheck, 0)
	require.Error(t, err)
	assert.Equal(t, chips, gs.Seats[0].Chips, "rejected action must not move chips")
	assert.Equal(t, 0, gs.Seats[0].Bet)
}

func TestFixedLimitSizing(t *testing.T) {
	gs, pot := testState(FixedLimit, PhaseFlop, 1000, 1000)
	br := NewBettingRound(gs, pot, 1)

	va := br.ValidActions(gs.Seats[1])
	assert.Equal(t, 20, va.MinRaise, "flop bet is one big blind")
	assert.Equal(t, va.MinRaise, va.MaxRaise)

	gs2, pot2 := testState(FixedLimit, PhaseTurn, 1000, 1000)
	br2 := NewBettingRound(gs2, pot2, 1)
	va2 := br2.ValidActions(gs2.Seats[1])
	assert.Equal(t, 40, va2.MinRaise, "turn bet doubles")
}

func TestFixedLimitRaiseCap(t *testing.T) {
	gs, pot := testState(FixedLimit, PhaseFlop, 10000, 10000)
	br := NewBettingRound(gs, pot, 0)

	// Bet, raise, re-raise, cap: four raises total.
	actors := []int{0, 1, 0, 1}
	for i, idx := range actors {
		va := br.ValidActions(gs.Seats[idx])
		require.True(t, va.CanRaise, "raise %d should be allowed", i+1)
		_, err := br.Apply(gs.Seats[idx], ActionRaise, 0)
		require.NoError(t, err)
	}

	va := br.ValidActions(gs.Seats[0])
	assert.False(t, va.CanRaise, "fifth raise is capped")
	assert.Equal(t, 80, br.CurrentBet())
}

func TestFixedLimitRaiseIgnoresAmount(t *testing.T) {
	gs, pot := testState(FixedLimit, PhaseFlop, 1000, 1000)
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionRaise, 500)
	require.NoError(t, err)
	assert.Equal(t, 20, gs.Seats[0].Bet, "fixed limit bet size is fixed")
}

func TestFixedLimitAllInIsClampedToFixedBet(t *testing.T) {
	gs, pot := testState(FixedLimit, PhaseFlop, 1000, 1000)
	br := NewBettingRound(gs, pot, 0)

	res, err := br.Apply(gs.Seats[0], ActionAllIn, 0)
	require.NoError(t, err)
	assert.Equal(t, Continue, res)
	assert.Equal(t, 20, gs.Seats[0].Bet, "deep stack wagers one fixed bet, not the stack")
	assert.Equal(t, 20, br.CurrentBet())
	assert.False(t, gs.Seats[0].AllIn)
}

func TestFixedLimitAllInShortStack(t *testing.T) {
	gs, pot := testState(FixedLimit, PhaseFlop, 1000, 15)
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionRaise, 0)
	require.NoError(t, err)

	// A stack below the fixed bet still goes all-in for what it has.
	res, err := br.Apply(gs.Seats[1], ActionAllIn, 0)
	require.NoError(t, err)
	assert.Equal(t, RoundComplete, res)
	assert.Equal(t, 15, gs.Seats[1].Bet)
	assert.True(t, gs.Seats[1].AllIn)
	assert.Equal(t, 20, br.CurrentBet(), "short all-in below the bet does not lower it")
}

func TestLedgerMatchesTotalBet(t *testing.T) {
	gs, pot := testState(NoLimit, PhasePreflop, 1000, 1000, 1000)
	postTestBlinds(gs, pot)
	br := NewBettingRound(gs, pot, 0)

	_, err := br.Apply(gs.Seats[0], ActionRaise, 100)
	require.NoError(t, err)
	_, err = br.Apply(gs.Seats[1], ActionCall, 0)
	require.NoError(t, err)
	_, err = br.Apply(gs.Seats[2], ActionFold, 0)
	require.NoError(t, err)

	for _, s := range gs.Seats {
		assert.Equal(t, s.TotalBet, pot.Contribution(s.ID), "ledger must mirror seat totals for %s", s.ID)
	}
	assert.Equal(t, gs.Pot, pot.Total())
}
