package game

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"cardroom/internal/deck"
	"cardroom/internal/evaluator"
)

// Decider picks an action for a bot seat. It must be stateless with
// respect to the game: it sees a snapshot and the legal actions and
// returns a choice. The engine clamps the result before applying it.
type Decider interface {
	Decide(gs *GameState, seat *Seat, va ValidActions) (Action, int)
}

// Config holds the per-game settings fixed at creation.
type Config struct {
	Variant    Variant
	SmallBlind int
	BigBlind   int
	MaxPlayers int
	MinBuyIn   int
	MaxBuyIn   int

	// StreetPause is the delay between streets so clients can animate
	// card reveals. Think times bound the simulated bot deliberation.
	// ActionTimeout folds a human seat that fails to act in time; zero
	// disables the clock.
	StreetPause   time.Duration
	MinThinkTime  time.Duration
	MaxThinkTime  time.Duration
	ActionTimeout time.Duration
}

// ApplyDefaults fills unset fields with the standard table settings.
func (c *Config) ApplyDefaults() {
	if c.Variant == "" {
		c.Variant = NoLimit
	}
	if c.SmallBlind == 0 {
		c.SmallBlind = 10
	}
	if c.BigBlind == 0 {
		c.BigBlind = 2 * c.SmallBlind
	}
	if c.MaxPlayers == 0 {
		c.MaxPlayers = 9
	}
	if c.MinBuyIn == 0 {
		c.MinBuyIn = 20 * c.BigBlind
	}
	if c.MaxBuyIn == 0 {
		c.MaxBuyIn = 200 * c.BigBlind
	}
	if c.StreetPause == 0 {
		c.StreetPause = 1500 * time.Millisecond
	}
	if c.MinThinkTime == 0 {
		c.MinThinkTime = 500 * time.Millisecond
	}
	if c.MaxThinkTime == 0 {
		c.MaxThinkTime = 2 * time.Second
	}
}

// Validate checks the config against the allowed ranges.
func (c Config) Validate() error {
	switch c.Variant {
	case NoLimit, FixedLimit:
	default:
		return fmt.Errorf("unknown variant %q", c.Variant)
	}
	if c.SmallBlind < 1 {
		return fmt.Errorf("small blind must be at least 1, got %d", c.SmallBlind)
	}
	if c.BigBlind < 2*c.SmallBlind {
		return fmt.Errorf("big blind must be at least twice the small blind (%d), got %d", 2*c.SmallBlind, c.BigBlind)
	}
	if c.MaxPlayers < 2 || c.MaxPlayers > 9 {
		return fmt.Errorf("max players must be between 2 and 9, got %d", c.MaxPlayers)
	}
	if c.MinBuyIn > c.MaxBuyIn {
		return fmt.Errorf("min buy-in %d exceeds max buy-in %d", c.MinBuyIn, c.MaxBuyIn)
	}
	if c.MaxThinkTime < c.MinThinkTime {
		return fmt.Errorf("max think time %s below min %s", c.MaxThinkTime, c.MinThinkTime)
	}
	return nil
}

type submission struct {
	playerID string
	action   Action
	amount   int
}

// Game owns one table. All state mutation happens on the driver
// goroutine inside Run; other goroutines interact through SubmitAction,
// AddPlayer/RemovePlayer (legal only between hands), and read-only
// snapshots.
type Game struct {
	mu    sync.Mutex
	cfg   Config
	state *GameState
	deck  *deck.Deck
	rng   *rand.Rand
	pot   *PotManager

	sink   Sink
	clock  quartz.Clock
	logger *log.Logger

	// Single-slot pending action: a fresh submission from the expected
	// actor overwrites an unclaimed earlier one.
	actions chan submission

	playersChanged chan struct{}
	deciders       map[string]Decider

	// stacked, when non-empty, replaces the shuffle each hand so tests
	// can script exact deals.
	stacked []deck.Card
}

// New creates a game. The RNG is owned by the driver and seeds every
// shuffle; pass a deterministic one to reproduce deals.
func New(id string, cfg Config, sink Sink, rng *rand.Rand, clock quartz.Clock, logger *log.Logger) *Game {
	cfg.ApplyDefaults()
	return &Game{
		cfg: cfg,
		state: &GameState{
			ID:           id,
			Variant:      cfg.Variant,
			SmallBlind:   cfg.SmallBlind,
			BigBlind:     cfg.BigBlind,
			DealerIndex:  -1,
			CurrentIndex: -1,
			Phase:        PhaseWaiting,
		},
		deck:           deck.New(rng),
		rng:            rng,
		pot:            NewPotManager(),
		sink:           sink,
		clock:          clock,
		logger:         logger.With("game_id", id),
		actions:        make(chan submission, 1),
		playersChanged: make(chan struct{}, 1),
		deciders:       make(map[string]Decider),
	}
}

// ID returns the game id.
func (g *Game) ID() string {
	return g.state.ID
}

// Config returns the game's settings.
func (g *Game) Config() Config {
	return g.cfg
}

// AddPlayer seats a player. A non-nil decider makes the seat a bot.
// Seats can only be added while no hand is in progress.
func (g *Game) AddPlayer(playerID, name string, chips int, decider Decider) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.Phase != PhaseWaiting && g.state.Phase != PhaseHandOver {
		return fmt.Errorf("cannot join during %s", g.state.Phase)
	}
	if len(g.state.Seats) >= g.cfg.MaxPlayers {
		return fmt.Errorf("game is full (%d seats)", g.cfg.MaxPlayers)
	}
	if _, taken := g.state.Seat(playerID); taken {
		return fmt.Errorf("player %s already seated", playerID)
	}
	if chips < g.cfg.MinBuyIn || chips > g.cfg.MaxBuyIn {
		return fmt.Errorf("buy-in %d outside [%d, %d]", chips, g.cfg.MinBuyIn, g.cfg.MaxBuyIn)
	}

	seat := &Seat{
		ID:    playerID,
		Name:  name,
		Chips: chips,
		IsBot: decider != nil,
		Index: len(g.state.Seats),
	}
	g.state.Seats = append(g.state.Seats, seat)
	if decider != nil {
		g.deciders[playerID] = decider
	}
	g.logger.Info("player seated", "player", playerID, "name", name, "chips", chips, "bot", seat.IsBot)

	select {
	case g.playersChanged <- struct{}{}:
	default:
	}
	return nil
}

// RemovePlayer takes a player out of the game. Between hands the seat
// is removed outright; mid-hand it folds and sits out, leaving its
// contributions in the pot.
func (g *Game) RemovePlayer(playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat, ok := g.state.Seat(playerID)
	if !ok {
		return
	}
	if g.state.Phase == PhaseWaiting || g.state.Phase == PhaseHandOver {
		seats := g.state.Seats[:0]
		for _, s := range g.state.Seats {
			if s.ID != playerID {
				s.Index = len(seats)
				seats = append(seats, s)
			}
		}
		g.state.Seats = seats
	} else {
		seat.Folded = true
		seat.SittingOut = true
		// The driver may be blocked waiting on this very seat; a fold
		// submission lets the round move past it.
		defer g.SubmitAction(playerID, ActionFold, 0)
	}
	delete(g.deciders, playerID)
	g.logger.Info("player left", "player", playerID)
}

// SubmitAction drops an action from an external caller into the
// pending slot. Wrong-actor submissions are filtered by the driver; a
// newer submission replaces an unclaimed older one.
func (g *Game) SubmitAction(playerID string, action Action, amount int) {
	sub := submission{playerID: playerID, action: action, amount: amount}
	for {
		select {
		case g.actions <- sub:
			return
		default:
			select {
			case <-g.actions:
			default:
			}
		}
	}
}

// Snapshot builds the game_state payload as seen by recipientID. Used
// to greet subscribers that connect mid-hand.
func (g *Game) Snapshot(recipientID string) GameStatePayload {
	g.mu.Lock()
	snap := g.state.Clone()
	g.mu.Unlock()
	return snapshotFactory(snap)(recipientID).(GameStatePayload)
}

// Chat relays a table chat line from a seated player.
func (g *Game) Chat(playerID, message string) {
	g.mu.Lock()
	seat, ok := g.state.Seat(playerID)
	name := ""
	if ok {
		name = seat.Name
	}
	g.mu.Unlock()
	if !ok {
		return
	}
	g.sink.Publish(Event{
		Type:    EventChat,
		Payload: StaticPayload(ChatPayload{PlayerID: playerID, Name: name, Message: message}),
	})
}

// Run drives the game: wait for players, then loop hands until one
// seat holds all the chips or the context is cancelled.
func (g *Game) Run(ctx context.Context) {
	if err := g.waitForPlayers(ctx); err != nil {
		return
	}
	g.logger.Info("game starting", "players", g.playerCount())

	for {
		if ctx.Err() != nil {
			return
		}
		if g.fundedSeats() < 2 {
			break
		}
		if err := g.runHand(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			g.logger.Error("hand aborted", "err", err)
			break
		}
		if err := g.pause(ctx, g.cfg.StreetPause); err != nil {
			return
		}
	}
	g.finish()
}

func (g *Game) waitForPlayers(ctx context.Context) error {
	for {
		if g.fundedSeats() >= 2 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-g.playersChanged:
		}
	}
}

func (g *Game) playerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.state.Seats)
}

func (g *Game) fundedSeats() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.CountWhere(func(s *Seat) bool { return s.Chips > 0 })
}

// runHand plays one complete hand.
func (g *Game) runHand(ctx context.Context) error {
	g.mu.Lock()
	gs := g.state
	gs.HandNumber++
	gs.Phase = PhaseStarting
	gs.Community = gs.Community[:0]
	gs.Pot = 0
	g.pot.Reset()
	for _, s := range gs.Seats {
		s.Hole = nil
		s.Bet = 0
		s.TotalBet = 0
		s.Folded = false
		s.AllIn = false
		if s.Chips == 0 {
			s.SittingOut = true
		}
		if s.SittingOut {
			s.Folded = true
		}
	}

	AdvanceDealer(gs)
	sbIdx, bbIdx := BlindPositions(gs)
	PostBlind(gs, g.pot, sbIdx, gs.SmallBlind)
	PostBlind(gs, g.pot, bbIdx, gs.BigBlind)

	g.deck.Reset()
	if len(g.stacked) > 0 {
		g.deck.Stack(g.stacked)
	}
	if err := g.dealHoleCards(); err != nil {
		g.mu.Unlock()
		return err
	}

	gs.Phase = PhasePreflop
	firstToAct := FirstToActPreflop(gs, bbIdx)
	handNumber := gs.HandNumber
	snap := gs.Clone()
	g.mu.Unlock()

	g.logger.Info("hand starting", "hand", handNumber, "dealer", snap.DealerIndex)
	g.publish(EventHandStarting, func(recipientID string) any {
		return HandStartingPayload{
			HandNumber:  snap.HandNumber,
			DealerIndex: snap.DealerIndex,
			Players:     playerViews(snap.Seats, recipientID),
			SmallBlind:  snap.SmallBlind,
			BigBlind:    snap.BigBlind,
			Pot:         snap.Pot,
		}
	})
	g.publishState(snap)

	streets := []struct {
		phase Phase
		cards int
	}{
		{PhaseFlop, 3},
		{PhaseTurn, 1},
		{PhaseRiver, 1},
	}

	result, err := g.runStreet(ctx, firstToAct)
	if err != nil {
		return err
	}
	if result == AllFolded {
		g.awardToSurvivor()
		return g.endHand(ctx)
	}

	for _, street := range streets {
		if err := g.pause(ctx, g.cfg.StreetPause); err != nil {
			return err
		}
		first, err := g.advanceStreet(street.phase, street.cards)
		if err != nil {
			return err
		}
		result, err = g.runStreet(ctx, first)
		if err != nil {
			return err
		}
		if result == AllFolded {
			g.awardToSurvivor()
			return g.endHand(ctx)
		}
	}

	g.showdown()
	return g.endHand(ctx)
}

// dealHoleCards deals two passes of one card each, starting left of the
// dealer, to every seat in the hand. Caller holds the lock.
func (g *Game) dealHoleCards() error {
	gs := g.state
	n := len(gs.Seats)
	for pass := 0; pass < 2; pass++ {
		for i := 1; i <= n; i++ {
			seat := gs.Seats[(gs.DealerIndex+i)%n]
			if seat.SittingOut {
				continue
			}
			card, err := g.deck.DealOne()
			if err != nil {
				return err
			}
			seat.Hole = append(seat.Hole, card)
		}
	}
	return nil
}

// advanceStreet resets street bets, deals the board cards for the
// phase, and returns the first seat to act.
func (g *Game) advanceStreet(phase Phase, cards int) (int, error) {
	g.mu.Lock()
	gs := g.state
	for _, s := range gs.Seats {
		s.Bet = 0
	}
	dealt, err := g.deck.Deal(cards)
	if err != nil {
		g.mu.Unlock()
		return -1, err
	}
	gs.Community = append(gs.Community, dealt...)
	gs.Phase = phase
	first := FirstToActPostflop(gs)
	snap := gs.Clone()
	g.mu.Unlock()

	g.publish(EventCommunityCard, StaticPayload(CommunityCardPayload{
		Phase:          phase,
		Cards:          cardStrings(dealt),
		CommunityCards: cardStrings(snap.Community),
		Pot:            snap.Pot,
	}))
	g.publishState(snap)
	return first, nil
}

// runStreet runs one betting round to completion.
func (g *Game) runStreet(ctx context.Context, firstToAct int) (Result, error) {
	g.mu.Lock()
	br := NewBettingRound(g.state, g.pot, firstToAct)
	result := br.status()
	g.mu.Unlock()

	for result == Continue {
		g.mu.Lock()
		seat := g.state.CurrentSeat()
		if seat == nil {
			result = br.status()
			g.mu.Unlock()
			break
		}
		if !seat.CanAct() {
			// The actor left mid-hand before being prompted; fold on
			// the seat's behalf so the round moves past it.
			seatID := seat.ID
			res, foldErr := br.Apply(seat, ActionFold, 0)
			phase, pot := g.state.Phase, g.state.Pot
			g.mu.Unlock()
			if foldErr != nil {
				return res, foldErr
			}
			g.publish(EventActionTaken, StaticPayload(ActionTakenPayload{
				PlayerID: seatID,
				Action:   ActionFold,
				Pot:      pot,
				Phase:    phase,
			}))
			result = res
			continue
		}
		va := br.ValidActions(seat)
		snap := g.state.Clone()
		seatID, isBot := seat.ID, seat.IsBot
		decider := g.deciders[seatID]
		g.mu.Unlock()

		g.publish(EventYourTurn, turnPayload(seatID, va))

		action, amount, err := g.awaitAction(ctx, seatID, isBot, decider, va, snap)
		if err != nil {
			return result, err
		}

		g.mu.Lock()
		actor, _ := g.state.Seat(seatID)
		res, applyErr := br.Apply(actor, action, amount)
		if applyErr != nil && isBot {
			// A bot that produced an illegal action folds rather than
			// stalling the table. The broadcast reports the fold that
			// was applied, not the action that was rejected.
			action, amount = ActionFold, 0
			res, applyErr = br.Apply(actor, action, amount)
		}
		phase := g.state.Phase
		pot := g.state.Pot
		g.mu.Unlock()

		if applyErr != nil {
			g.logger.Warn("rejected action", "player", seatID, "action", action, "err", applyErr)
			continue
		}

		g.logger.Debug("action taken", "player", seatID, "action", action, "amount", amount, "pot", pot)
		g.publish(EventActionTaken, StaticPayload(ActionTakenPayload{
			PlayerID: seatID,
			Action:   action,
			Amount:   amount,
			Pot:      pot,
			Phase:    phase,
		}))
		result = res
	}
	return result, nil
}

// turnPayload delivers the valid actions to the actor alone; every
// other subscriber is skipped.
func turnPayload(playerID string, va ValidActions) PayloadFactory {
	payload := YourTurnPayload{PlayerID: playerID, ValidActions: va}
	return func(recipientID string) any {
		if recipientID != playerID {
			return nil
		}
		return payload
	}
}

// awaitAction blocks until the expected actor submits, a scheduled bot
// decides, or the action timeout fires (folding the seat).
func (g *Game) awaitAction(ctx context.Context, expectedID string, isBot bool, decider Decider, va ValidActions, snap *GameState) (Action, int, error) {
	var timedOut chan struct{}
	if isBot {
		g.scheduleBotDecision(ctx, expectedID, decider, va, snap)
	} else if g.cfg.ActionTimeout > 0 {
		timedOut = make(chan struct{})
		timer := g.clock.AfterFunc(g.cfg.ActionTimeout, func() { close(timedOut) })
		defer timer.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return "", 0, ctx.Err()
		case <-timedOut:
			g.logger.Info("action timeout, folding", "player", expectedID)
			return ActionFold, 0, nil
		case sub := <-g.actions:
			if sub.playerID != expectedID {
				continue
			}
			return sub.action, sub.amount, nil
		}
	}
}

// scheduleBotDecision spawns a task that waits out the think time, asks
// the decider, clamps the result, and submits it. Any panic folds. The
// decider comes in from the caller's locked section: the deciders map
// must not be read here, where RemovePlayer can delete from it
// concurrently.
func (g *Game) scheduleBotDecision(ctx context.Context, playerID string, decider Decider, va ValidActions, snap *GameState) {
	think := g.cfg.MinThinkTime
	if spread := g.cfg.MaxThinkTime - g.cfg.MinThinkTime; spread > 0 {
		think += time.Duration(g.rng.Int64N(int64(spread)))
	}
	var seat *Seat
	for _, s := range snap.Seats {
		if s.ID == playerID {
			seat = s
			break
		}
	}

	go func() {
		timer := g.clock.NewTimer(think)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		action, amount := ActionFold, 0
		func() {
			defer func() {
				if r := recover(); r != nil {
					g.logger.Error("bot decision panicked, folding", "player", playerID, "err", r)
					action, amount = ActionFold, 0
				}
			}()
			if decider != nil && seat != nil {
				action, amount = decider.Decide(snap, seat, va)
				action, amount = clampDecision(seat, va, action, amount)
			}
		}()
		g.SubmitAction(playerID, action, amount)
	}()
}

// clampDecision applies the engine-side safety clamps to a decider's
// output: the amount never exceeds the stack, and a raise that does not
// beat the call amount becomes a call.
func clampDecision(seat *Seat, va ValidActions, action Action, amount int) (Action, int) {
	if maxTotal := seat.Chips + seat.Bet; amount > maxTotal {
		amount = maxTotal
	}
	if action == ActionRaise && (!va.CanRaise || amount <= va.CallAmount) {
		return ActionCall, va.CallAmount
	}
	return action, amount
}

// awardToSurvivor pays the whole pot to the last seat in the hand. The
// pot is cleared before the broadcast so observers never see the chips
// counted twice.
func (g *Game) awardToSurvivor() {
	g.mu.Lock()
	gs := g.state
	var survivor *Seat
	for _, s := range gs.Seats {
		if s.InHand() {
			survivor = s
			break
		}
	}
	amount := gs.Pot
	gs.Pot = 0
	gs.Phase = PhaseHandOver
	if survivor != nil {
		survivor.Chips += amount
	}
	var payload WinnerPayload
	if survivor != nil {
		payload = WinnerPayload{
			Winners: []WinnerShare{{
				PlayerID: survivor.ID,
				Name:     survivor.Name,
				Amount:   amount,
			}},
			Pot:            amount,
			CommunityCards: cardStrings(gs.Community),
			HandNumber:     gs.HandNumber,
		}
		g.logger.Info("hand won uncontested", "player", survivor.ID, "amount", amount)
	}
	g.mu.Unlock()

	if survivor != nil {
		g.publish(EventWinner, StaticPayload(payload))
	}
}

// showdown scores every hand still in, decomposes the pot, and pays
// each side pot to its best eligible seats. Hole cards of showdown
// participants are revealed in the winner payload and nowhere else.
func (g *Game) showdown() {
	g.mu.Lock()
	gs := g.state
	gs.Phase = PhaseShowdown
	snap := gs.Clone()
	g.mu.Unlock()

	// Masked snapshot first: a late subscriber during showdown must not
	// see opponent cards in a state payload.
	g.publishState(snap)

	g.mu.Lock()
	active := make(map[string]bool)
	scores := make(map[string]int)
	for _, s := range gs.Seats {
		if s.InHand() && len(s.Hole) == 2 {
			active[s.ID] = true
			scores[s.ID] = evaluator.Score(append(append([]deck.Card{}, s.Hole...), gs.Community...))
		}
	}

	pots := g.pot.SidePots(active)
	awarded := make(map[string]int)
	total := 0
	for _, pot := range pots {
		winners := bestEligible(gs, pot.Eligible, scores)
		if len(winners) == 0 {
			continue
		}
		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, seat := range winners {
			amount := share
			if i == 0 {
				amount += remainder
			}
			seat.Chips += amount
			awarded[seat.ID] += amount
		}
		total += pot.Amount
	}
	gs.Pot = 0
	gs.Phase = PhaseHandOver

	payload := WinnerPayload{
		Pot:            total,
		CommunityCards: cardStrings(gs.Community),
		HandNumber:     gs.HandNumber,
	}
	for _, s := range gs.Seats {
		if !active[s.ID] {
			continue
		}
		share := WinnerShare{
			PlayerID:  s.ID,
			Name:      s.Name,
			Amount:    awarded[s.ID],
			HandClass: evaluator.ClassName(scores[s.ID]),
			HoleCards: cardStrings(s.Hole),
		}
		payload.Winners = append(payload.Winners, share)
	}
	g.logger.Info("showdown complete", "pots", len(pots), "awarded", total)
	g.mu.Unlock()

	g.publish(EventWinner, StaticPayload(payload))
}

// bestEligible returns the eligible seats tied at the minimum score,
// ordered by seat index so the odd chip lands deterministically.
func bestEligible(gs *GameState, eligible []string, scores map[string]int) []*Seat {
	best := evaluator.WorstScore
	var winners []*Seat
	for _, pid := range eligible {
		seat, ok := gs.Seat(pid)
		if !ok {
			continue
		}
		score, scored := scores[pid]
		if !scored {
			continue
		}
		switch {
		case score < best:
			best = score
			winners = winners[:0]
			winners = append(winners, seat)
		case score == best:
			winners = append(winners, seat)
		}
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].Index < winners[j].Index })
	return winners
}

// endHand publishes the closing events and a fresh snapshot.
func (g *Game) endHand(ctx context.Context) error {
	g.mu.Lock()
	snap := g.state.Clone()
	g.mu.Unlock()

	g.publish(EventHandOver, StaticPayload(HandOverPayload{HandNumber: snap.HandNumber}))
	g.publishState(snap)
	return ctx.Err()
}

// finish declares the game over in favor of the biggest stack.
func (g *Game) finish() {
	g.mu.Lock()
	gs := g.state
	gs.Phase = PhaseGameOver
	gs.CurrentIndex = -1
	var winner *Seat
	for _, s := range gs.Seats {
		if winner == nil || s.Chips > winner.Chips {
			winner = s
		}
	}
	var payload GameOverPayload
	if winner != nil {
		payload = GameOverPayload{PlayerID: winner.ID, Name: winner.Name, Chips: winner.Chips}
		g.logger.Info("game over", "winner", winner.ID, "chips", winner.Chips)
	}
	snap := gs.Clone()
	g.mu.Unlock()

	g.publish(EventGameOver, StaticPayload(payload))
	g.publishState(snap)
}

func (g *Game) publish(eventType EventType, payload PayloadFactory) {
	g.sink.Publish(Event{Type: eventType, Payload: payload})
}

func (g *Game) publishState(snap *GameState) {
	g.publish(EventGameState, snapshotFactory(snap))
}

// pause sleeps on the game clock, returning early on cancellation.
func (g *Game) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := g.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
