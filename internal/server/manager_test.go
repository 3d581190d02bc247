package server

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cardroom/internal/bot"
	"cardroom/internal/game"
)

type fakeSub struct {
	id   string
	fail bool

	mu   sync.Mutex
	msgs []*Message
}

func (f *fakeSub) PlayerID() string { return f.id }

func (f *fakeSub) Send(msg *Message) error {
	if f.fail {
		return errors.New("connection gone")
	}
	f.mu.Lock()
	f.msgs = append(f.msgs, msg)
	f.mu.Unlock()
	return nil
}

func (f *fakeSub) received(messageType string) []*Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*Message
	for _, m := range f.msgs {
		if m.Type == messageType {
			out = append(out, m)
		}
	}
	return out
}

func newTestManager(t *testing.T) *GameManager {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewGameManager(ctx, log.New(io.Discard), quartz.NewReal(), 1)
}

func emptyGameConfig() game.Config {
	return game.Config{SmallBlind: 10, BigBlind: 20}
}

func TestCreateGameSeatsBots(t *testing.T) {
	m := newTestManager(t)
	g, err := m.CreateGame(emptyGameConfig(), 2, bot.Easy)
	require.NoError(t, err)
	require.NotNil(t, g)

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, g.ID(), list[0].GameID)
	assert.Equal(t, 2, list[0].Players)
	assert.Equal(t, "no_limit", list[0].Variant)
}

func TestCreateGameRejectsTooManyBots(t *testing.T) {
	m := newTestManager(t)
	cfg := emptyGameConfig()
	cfg.MaxPlayers = 3
	_, err := m.CreateGame(cfg, 4, bot.Easy)
	require.Error(t, err)
}

func TestJoinSendsSnapshot(t *testing.T) {
	m := newTestManager(t)
	g, err := m.CreateGame(emptyGameConfig(), 0, bot.Medium)
	require.NoError(t, err)

	sub := &fakeSub{id: "human-1"}
	require.NoError(t, m.Join(g.ID(), sub, "Alice", 0))

	states := sub.received(string(game.EventGameState))
	require.Len(t, states, 1, "subscriber greeted with a state snapshot")

	list := m.List()
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Players)
}

func TestJoinUnknownGame(t *testing.T) {
	m := newTestManager(t)
	err := m.Join("no-such-game", &fakeSub{id: "x"}, "Bob", 0)
	require.Error(t, err)
}

func TestPublishPerRecipientPayloads(t *testing.T) {
	m := newTestManager(t)
	g, err := m.CreateGame(emptyGameConfig(), 0, bot.Medium)
	require.NoError(t, err)

	alice := &fakeSub{id: "alice"}
	bob := &fakeSub{id: "bob"}
	require.NoError(t, m.Subscribe(g.ID(), alice))
	require.NoError(t, m.Subscribe(g.ID(), bob))

	entry, err := m.entry(g.ID())
	require.NoError(t, err)
	entry.Publish(game.Event{
		Type: game.EventYourTurn,
		Payload: func(recipientID string) any {
			if recipientID != "alice" {
				return nil
			}
			return game.YourTurnPayload{PlayerID: "alice"}
		},
	})

	assert.Len(t, alice.received(string(game.EventYourTurn)), 1)
	assert.Empty(t, bob.received(string(game.EventYourTurn)), "nil payloads skip the recipient")
}

func TestPublishDropsFailingSubscriber(t *testing.T) {
	m := newTestManager(t)
	g, err := m.CreateGame(emptyGameConfig(), 0, bot.Medium)
	require.NoError(t, err)

	dead := &fakeSub{id: "dead", fail: true}
	entry, err := m.entry(g.ID())
	require.NoError(t, err)
	entry.add(dead)

	entry.Publish(game.Event{
		Type:    game.EventChat,
		Payload: game.StaticPayload(game.ChatPayload{Message: "hi"}),
	})

	entry.mu.RLock()
	defer entry.mu.RUnlock()
	assert.NotContains(t, entry.subs, dead, "failed send drops the subscriber")
}

func TestUnsubscribeKeepsSeat(t *testing.T) {
	m := newTestManager(t)
	g, err := m.CreateGame(emptyGameConfig(), 0, bot.Medium)
	require.NoError(t, err)

	sub := &fakeSub{id: "human-1"}
	require.NoError(t, m.Join(g.ID(), sub, "Alice", 0))
	m.Unsubscribe(g.ID(), sub)

	assert.Equal(t, 1, m.List()[0].Players, "unsubscribe does not vacate the seat")
}
