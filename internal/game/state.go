// Package game implements the Texas Hold'em engine: per-hand state, the
// street-level betting machine, side-pot decomposition, and the driver
// that runs a game from first deal to last chip.
package game

import "cardroom/internal/deck"

// Phase is a stage of the game lifecycle.
type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseStarting Phase = "starting"
	PhasePreflop  Phase = "preflop"
	PhaseFlop     Phase = "flop"
	PhaseTurn     Phase = "turn"
	PhaseRiver    Phase = "river"
	PhaseShowdown Phase = "showdown"
	PhaseHandOver Phase = "hand_over"
	PhaseGameOver Phase = "game_over"
)

// Variant selects the betting structure.
type Variant string

const (
	NoLimit    Variant = "no_limit"
	FixedLimit Variant = "fixed_limit"
)

// Seat is one player's per-hand state at the table.
type Seat struct {
	ID         string
	Name       string
	Chips      int
	Hole       []deck.Card
	Bet        int // committed this street
	TotalBet   int // committed this hand
	Folded     bool
	AllIn      bool
	SittingOut bool
	IsBot      bool
	Index      int
}

// InHand reports whether the seat is still contesting the current hand.
func (s *Seat) InHand() bool {
	return !s.SittingOut && !s.Folded
}

// CanAct reports whether the seat can still take a betting action.
func (s *Seat) CanAct() bool {
	return s.InHand() && !s.AllIn
}

// GameState is the aggregate state of one table. All mutation happens
// on the game's driver goroutine; see Game.
type GameState struct {
	ID           string
	Variant      Variant
	SmallBlind   int
	BigBlind     int
	Seats        []*Seat
	Community    []deck.Card
	Pot          int
	DealerIndex  int
	CurrentIndex int // actor to move, -1 when none
	HandNumber   int
	Phase        Phase
}

// Seat returns the seat occupied by the given player id.
func (gs *GameState) Seat(playerID string) (*Seat, bool) {
	for _, s := range gs.Seats {
		if s.ID == playerID {
			return s, true
		}
	}
	return nil, false
}

// NextSeat returns the index of the first seat after from (wrapping)
// that satisfies pred, or -1 if none does. from itself is checked last.
func (gs *GameState) NextSeat(from int, pred func(*Seat) bool) int {
	n := len(gs.Seats)
	if n == 0 {
		return -1
	}
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if pred(gs.Seats[idx]) {
			return idx
		}
	}
	return -1
}

// CountWhere returns how many seats satisfy pred.
func (gs *GameState) CountWhere(pred func(*Seat) bool) int {
	count := 0
	for _, s := range gs.Seats {
		if pred(s) {
			count++
		}
	}
	return count
}

// CurrentSeat returns the seat whose turn it is, or nil.
func (gs *GameState) CurrentSeat() *Seat {
	if gs.CurrentIndex < 0 || gs.CurrentIndex >= len(gs.Seats) {
		return nil
	}
	return gs.Seats[gs.CurrentIndex]
}

// Clone returns a deep copy of the state. Used to hand bot deciders and
// payload factories a stable snapshot while the driver keeps mutating.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.Seats = make([]*Seat, len(gs.Seats))
	for i, s := range gs.Seats {
		sc := *s
		sc.Hole = append([]deck.Card(nil), s.Hole...)
		cp.Seats[i] = &sc
	}
	cp.Community = append([]deck.Card(nil), gs.Community...)
	return &cp
}
