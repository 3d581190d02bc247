package game

// Seat predicates used for rotation. A seat takes part in the next hand
// if it has chips and is not sitting out.
func canDeal(s *Seat) bool {
	return !s.SittingOut && s.Chips > 0
}

func dealtIn(s *Seat) bool {
	return !s.SittingOut
}

// AdvanceDealer moves the button to the next seat that can be dealt in.
func AdvanceDealer(gs *GameState) {
	if next := gs.NextSeat(gs.DealerIndex, canDeal); next >= 0 {
		gs.DealerIndex = next
	}
}

// BlindPositions returns the small and big blind seat indices for the
// current dealer. Heads-up the dealer posts the small blind; with three
// or more the blinds are the two seats after the button.
func BlindPositions(gs *GameState) (sb, bb int) {
	if gs.CountWhere(dealtIn) == 2 {
		sb = gs.DealerIndex
		bb = gs.NextSeat(sb, dealtIn)
		return sb, bb
	}
	sb = gs.NextSeat(gs.DealerIndex, dealtIn)
	bb = gs.NextSeat(sb, dealtIn)
	return sb, bb
}

// PostBlind commits a forced bet. A stack at or below the blind posts
// everything it has and goes all-in.
func PostBlind(gs *GameState, pot *PotManager, seatIndex, amount int) {
	seat := gs.Seats[seatIndex]
	post := min(amount, seat.Chips)
	seat.Chips -= post
	seat.Bet += post
	seat.TotalBet += post
	gs.Pot += post
	if seat.Chips == 0 {
		seat.AllIn = true
	}
	pot.AddContribution(seat.ID, post, seat.AllIn)
}

// FirstToActPreflop returns the seat that opens the preflop betting,
// the first able seat after the big blind.
func FirstToActPreflop(gs *GameState, bbIndex int) int {
	return gs.NextSeat(bbIndex, (*Seat).CanAct)
}

// FirstToActPostflop returns the seat that opens a postflop street, the
// first able seat after the button.
func FirstToActPostflop(gs *GameState) int {
	return gs.NextSeat(gs.DealerIndex, (*Seat).CanAct)
}
