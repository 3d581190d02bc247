package game

import "fmt"

// Action is a betting action token as it appears on the wire.
type Action string

const (
	ActionFold  Action = "fold"
	ActionCheck Action = "check"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
	ActionAllIn Action = "all_in"
)

// ParseAction validates an action token.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionFold, ActionCheck, ActionCall, ActionRaise, ActionAllIn:
		return Action(s), nil
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// Result is the round status after applying an action.
type Result int

const (
	Continue Result = iota
	RoundComplete
	AllFolded
)

// ValidActions describes what the acting seat may legally do. For
// raise, MinRaise and MaxRaise are total bet targets for the street,
// not deltas.
type ValidActions struct {
	CanCheck   bool `json:"can_check"`
	CallAmount int  `json:"call_amount"`
	MinRaise   int  `json:"min_raise"`
	MaxRaise   int  `json:"max_raise"`
	CanRaise   bool `json:"can_raise"`
}

// fixedLimitRaiseCap is the classic per-street raise limit.
const fixedLimitRaiseCap = 4

// BettingRound runs one street. It mutates the shared GameState and
// records every chip movement in the pot ledger.
type BettingRound struct {
	state *GameState
	pot   *PotManager

	currentBet    int
	lastRaiseSize int
	raises        int
	acted         map[string]bool
	fixedBet      int // per-raise size in fixed limit, 0 in no limit
}

// NewBettingRound starts a street with the given first actor. The
// current bet level is taken from the seats' street bets, which carries
// the blinds into the preflop round.
func NewBettingRound(state *GameState, pot *PotManager, firstToAct int) *BettingRound {
	br := &BettingRound{
		state: state,
		pot:   pot,
		acted: make(map[string]bool),
	}
	for _, s := range state.Seats {
		if s.Bet > br.currentBet {
			br.currentBet = s.Bet
		}
	}
	if state.Variant == FixedLimit {
		switch state.Phase {
		case PhaseTurn, PhaseRiver:
			br.fixedBet = 2 * state.BigBlind
		default:
			br.fixedBet = state.BigBlind
		}
	}
	state.CurrentIndex = -1
	if firstToAct >= 0 && firstToAct < len(state.Seats) && state.Seats[firstToAct].CanAct() {
		state.CurrentIndex = firstToAct
	} else if firstToAct >= 0 {
		state.CurrentIndex = state.NextSeat(firstToAct, (*Seat).CanAct)
	}
	return br
}

// CurrentBet returns the street's high bet.
func (br *BettingRound) CurrentBet() int {
	return br.currentBet
}

// ValidActions computes the legal actions for the given seat.
func (br *BettingRound) ValidActions(seat *Seat) ValidActions {
	callAmount := min(br.currentBet-seat.Bet, seat.Chips)
	va := ValidActions{
		CanCheck:   callAmount == 0,
		CallAmount: callAmount,
	}
	switch br.state.Variant {
	case FixedLimit:
		va.MinRaise = br.currentBet + br.fixedBet
		va.MaxRaise = va.MinRaise
		va.CanRaise = br.raises < fixedLimitRaiseCap && seat.Chips > callAmount
	default:
		va.MinRaise = br.currentBet + max(br.lastRaiseSize, br.state.BigBlind)
		va.MaxRaise = seat.Chips + seat.Bet
		va.CanRaise = seat.Chips > callAmount
	}
	return va
}

// Apply mutates state for one action by the given seat and reports the
// round status. amount is the total street bet target for raises and is
// ignored otherwise. An illegal action returns an error and leaves the
// state untouched.
func (br *BettingRound) Apply(seat *Seat, action Action, amount int) (Result, error) {
	if !seat.CanAct() {
		// A seat folded externally (its player left mid-hand) may still
		// be the one the round is waiting on; a fold for it advances
		// the round instead of stalling it.
		if action == ActionFold && seat.Folded {
			br.acted[seat.ID] = true
			br.advance(seat)
			return br.status(), nil
		}
		return Continue, fmt.Errorf("seat %s cannot act", seat.ID)
	}
	va := br.ValidActions(seat)

	switch action {
	case ActionFold:
		seat.Folded = true
		br.acted[seat.ID] = true

	case ActionCheck:
		if !va.CanCheck {
			return Continue, fmt.Errorf("cannot check facing a bet of %d", br.currentBet)
		}
		br.acted[seat.ID] = true

	case ActionCall:
		br.commit(seat, va.CallAmount)
		br.acted[seat.ID] = true

	case ActionRaise:
		if !va.CanRaise {
			return Continue, fmt.Errorf("raise not available")
		}
		br.raiseTo(seat, br.raiseTarget(seat, va, amount), va)

	case ActionAllIn:
		target := br.raiseTarget(seat, va, seat.Chips+seat.Bet)
		if target > br.currentBet && va.CanRaise {
			br.raiseTo(seat, target, va)
		} else {
			br.commit(seat, va.CallAmount)
			br.acted[seat.ID] = true
		}

	default:
		return Continue, fmt.Errorf("unknown action %q", action)
	}

	br.advance(seat)
	return br.status(), nil
}

// raiseTarget resolves the requested total bet. No limit clamps into
// [minRaise, stack]; a stack below min-raise becomes an all-in. Fixed
// limit ignores the request entirely.
func (br *BettingRound) raiseTarget(seat *Seat, va ValidActions, requested int) int {
	stack := seat.Chips + seat.Bet
	if br.state.Variant == FixedLimit {
		return min(va.MinRaise, stack)
	}
	return min(max(requested, va.MinRaise), stack)
}

// raiseTo commits chips up to the target total bet. A full raise (at or
// above min-raise) reopens the betting: everyone else owes a response
// and the raise increment updates. A short all-in raises the bet level
// without reopening, so prior actors keep their acted status.
func (br *BettingRound) raiseTo(seat *Seat, target int, va ValidActions) {
	prior := br.currentBet
	br.commit(seat, target-seat.Bet)
	if seat.Bet <= prior {
		// All-in that failed to top the bet, a plain call.
		br.acted[seat.ID] = true
		return
	}
	br.currentBet = seat.Bet
	if seat.Bet >= va.MinRaise {
		br.lastRaiseSize = seat.Bet - prior
		br.raises++
		br.acted = map[string]bool{seat.ID: true}
	} else {
		br.acted[seat.ID] = true
	}
}

// commit moves delta chips from the seat into the pot and flags the
// seat all-in when its stack empties.
func (br *BettingRound) commit(seat *Seat, delta int) {
	if delta > seat.Chips {
		delta = seat.Chips
	}
	seat.Chips -= delta
	seat.Bet += delta
	seat.TotalBet += delta
	br.state.Pot += delta
	if seat.Chips == 0 {
		seat.AllIn = true
	}
	br.pot.AddContribution(seat.ID, delta, seat.AllIn)
}

// advance moves the turn to the next seat able to act.
func (br *BettingRound) advance(last *Seat) {
	br.state.CurrentIndex = br.state.NextSeat(last.Index, (*Seat).CanAct)
}

func (br *BettingRound) status() Result {
	if br.state.CountWhere((*Seat).InHand) <= 1 {
		br.state.CurrentIndex = -1
		return AllFolded
	}

	settled := true
	anyCanAct := false
	for _, s := range br.state.Seats {
		if !s.CanAct() {
			continue
		}
		anyCanAct = true
		if !br.acted[s.ID] || s.Bet != br.currentBet {
			settled = false
			break
		}
	}
	if !anyCanAct || settled {
		br.state.CurrentIndex = -1
		return RoundComplete
	}
	return Continue
}
