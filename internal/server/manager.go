package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"cardroom/internal/bot"
	"cardroom/internal/game"
	"cardroom/internal/gameid"
	"cardroom/internal/randutil"
)

// subscriber is a destination for game events. Connections implement
// it; tests substitute fakes.
type subscriber interface {
	PlayerID() string
	Send(msg *Message) error
}

// gameEntry couples one game with its subscriber set and acts as the
// game's broadcast sink.
type gameEntry struct {
	game   *game.Game
	cancel context.CancelFunc
	logger *log.Logger

	mu   sync.RWMutex
	subs map[subscriber]bool
}

// Publish fans an event out to every subscriber in parallel. Payloads
// are built per recipient; a nil payload skips that recipient and a
// failed send drops the subscriber. Ordering per subscriber holds
// because Publish returns only after every send is queued.
func (e *gameEntry) Publish(ev game.Event) {
	e.mu.RLock()
	subs := make([]subscriber, 0, len(e.subs))
	for sub := range e.subs {
		subs = append(subs, sub)
	}
	e.mu.RUnlock()

	var g errgroup.Group
	for _, sub := range subs {
		g.Go(func() error {
			payload := ev.Payload(sub.PlayerID())
			if payload == nil {
				return nil
			}
			msg, err := NewMessage(string(ev.Type), payload)
			if err != nil {
				e.logger.Error("failed to encode event", "event", ev.Type, "err", err)
				return nil
			}
			if err := sub.Send(msg); err != nil {
				e.logger.Info("dropping unreachable subscriber", "player", sub.PlayerID())
				e.remove(sub)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (e *gameEntry) add(sub subscriber) {
	e.mu.Lock()
	e.subs[sub] = true
	e.mu.Unlock()
}

func (e *gameEntry) remove(sub subscriber) {
	e.mu.Lock()
	delete(e.subs, sub)
	e.mu.Unlock()
}

// GameManager owns every running game and its subscribers.
type GameManager struct {
	logger *log.Logger
	clock  quartz.Clock
	ctx    context.Context

	mu       sync.RWMutex
	games    map[string]*gameEntry
	nextSeed func() int64
}

// NewGameManager creates a manager. seed derives each game's RNG, so a
// fixed seed reproduces every shuffle in every game.
func NewGameManager(ctx context.Context, logger *log.Logger, clock quartz.Clock, seed int64) *GameManager {
	seedRNG := randutil.New(seed)
	var seedMu sync.Mutex
	return &GameManager{
		logger: logger.WithPrefix("games"),
		clock:  clock,
		ctx:    ctx,
		games:  make(map[string]*gameEntry),
		nextSeed: func() int64 {
			seedMu.Lock()
			defer seedMu.Unlock()
			return seedRNG.Int64()
		},
	}
}

// CreateGame starts a new game with the given settings and bot seats.
// The driver goroutine starts immediately and waits for players.
func (m *GameManager) CreateGame(cfg game.Config, bots int, difficulty bot.Difficulty) (*game.Game, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bots < 0 || bots > cfg.MaxPlayers {
		return nil, fmt.Errorf("bot count %d exceeds %d seats", bots, cfg.MaxPlayers)
	}

	id := gameid.Generate()
	entry := &gameEntry{
		logger: m.logger,
		subs:   make(map[subscriber]bool),
	}
	g := game.New(id, cfg, entry, randutil.New(m.nextSeed()), m.clock, m.logger)
	entry.game = g

	buyIn := botBuyIn(cfg)
	for i := 0; i < bots; i++ {
		botID := fmt.Sprintf("bot-%s-%d", id[:8], i+1)
		name := fmt.Sprintf("Bot %d", i+1)
		decider := bot.New(difficulty, randutil.New(m.nextSeed()))
		if err := g.AddPlayer(botID, name, buyIn, decider); err != nil {
			return nil, fmt.Errorf("seating bot: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(m.ctx)
	entry.cancel = cancel
	go g.Run(ctx)

	m.mu.Lock()
	m.games[id] = entry
	m.mu.Unlock()

	m.logger.Info("game created", "game_id", id, "variant", cfg.Variant, "bots", bots)
	return g, nil
}

// botBuyIn is the stack bots sit down with: a hundred big blinds,
// clamped into the table's buy-in range.
func botBuyIn(cfg game.Config) int {
	return min(max(100*cfg.BigBlind, cfg.MinBuyIn), cfg.MaxBuyIn)
}

func (m *GameManager) entry(gameID string) (*gameEntry, error) {
	m.mu.RLock()
	entry, ok := m.games[gameID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown game %s", gameID)
	}
	return entry, nil
}

// Join seats a human player and subscribes their connection. The
// subscriber immediately receives a game_state snapshot.
func (m *GameManager) Join(gameID string, sub subscriber, name string, buyIn int) error {
	entry, err := m.entry(gameID)
	if err != nil {
		return err
	}
	if buyIn == 0 {
		buyIn = entry.game.Config().MinBuyIn
	}
	if err := entry.game.AddPlayer(sub.PlayerID(), name, buyIn, nil); err != nil {
		return err
	}
	m.Subscribe(gameID, sub)
	return nil
}

// Subscribe attaches a connection to a game's event stream, greeting it
// with the current state.
func (m *GameManager) Subscribe(gameID string, sub subscriber) error {
	entry, err := m.entry(gameID)
	if err != nil {
		return err
	}
	entry.add(sub)
	snapshot := entry.game.Snapshot(sub.PlayerID())
	if msg, err := NewMessage(string(game.EventGameState), snapshot); err == nil {
		if err := sub.Send(msg); err != nil {
			entry.remove(sub)
		}
	}
	return nil
}

// Unsubscribe detaches a connection without touching its seat.
func (m *GameManager) Unsubscribe(gameID string, sub subscriber) {
	if entry, err := m.entry(gameID); err == nil {
		entry.remove(sub)
	}
}

// Leave removes the player's seat and subscription. Mid-hand the seat
// folds and sits out; between hands it is released.
func (m *GameManager) Leave(gameID string, sub subscriber) {
	entry, err := m.entry(gameID)
	if err != nil {
		return
	}
	entry.remove(sub)
	entry.game.RemovePlayer(sub.PlayerID())
}

// SubmitAction forwards an action to the game's pending slot.
func (m *GameManager) SubmitAction(gameID, playerID string, action game.Action, amount int) error {
	entry, err := m.entry(gameID)
	if err != nil {
		return err
	}
	entry.game.SubmitAction(playerID, action, amount)
	return nil
}

// Chat relays a chat line to the game's subscribers.
func (m *GameManager) Chat(gameID, playerID, message string) error {
	entry, err := m.entry(gameID)
	if err != nil {
		return err
	}
	entry.game.Chat(playerID, message)
	return nil
}

// List summarizes every game for the lobby.
func (m *GameManager) List() []GameSummary {
	m.mu.RLock()
	entries := make([]*gameEntry, 0, len(m.games))
	for _, e := range m.games {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	summaries := make([]GameSummary, 0, len(entries))
	for _, e := range entries {
		snap := e.game.Snapshot("")
		summaries = append(summaries, GameSummary{
			GameID:     snap.GameID,
			Variant:    string(snap.Variant),
			Phase:      string(snap.Phase),
			Players:    len(snap.Players),
			MaxPlayers: e.game.Config().MaxPlayers,
			SmallBlind: snap.SmallBlind,
			BigBlind:   snap.BigBlind,
			HandNumber: snap.HandNumber,
		})
	}
	return summaries
}

// Stop cancels every game driver.
func (m *GameManager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.games {
		if e.cancel != nil {
			e.cancel()
		}
	}
}
