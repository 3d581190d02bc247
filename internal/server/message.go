// Package server exposes the card room over WebSocket: a hub of
// connections, a manager that owns the running games, and the lobby
// message protocol (create, join, list, act, chat).
package server

import (
	"encoding/json"
	"time"
)

// Message is the wire envelope for both directions.
type Message struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage wraps a payload in an envelope with the current time.
func NewMessage(messageType string, data any) (*Message, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}
	return &Message{
		Type:      messageType,
		Data:      raw,
		Timestamp: time.Now(),
	}, nil
}

// Client to server message types. Server to client types are the game
// event names plus the lobby responses below.
const (
	MsgCreateGame = "create_game"
	MsgJoinGame   = "join_game"
	MsgListGames  = "list_games"
	MsgAction     = "action"
	MsgChat       = "chat"
	MsgPing       = "ping"

	MsgGameCreated = "game_created"
	MsgGameJoined  = "game_joined"
	MsgGameList    = "game_list"
	MsgError       = "error"
)

// CreateGameData configures a new game. A non-empty PlayerName seats
// the creator immediately with the given buy-in.
type CreateGameData struct {
	Variant       string `json:"variant,omitempty"`
	SmallBlind    int    `json:"small_blind,omitempty"`
	BigBlind      int    `json:"big_blind,omitempty"`
	MaxPlayers    int    `json:"max_players,omitempty"`
	MinBuyIn      int    `json:"min_buy_in,omitempty"`
	MaxBuyIn      int    `json:"max_buy_in,omitempty"`
	Bots          int    `json:"bots,omitempty"`
	BotDifficulty string `json:"bot_difficulty,omitempty"`
	PlayerName    string `json:"player_name,omitempty"`
	BuyIn         int    `json:"buy_in,omitempty"`
}

// JoinGameData seats a player at an existing game.
type JoinGameData struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
	BuyIn      int    `json:"buy_in,omitempty"`
}

// ActionData submits a betting action for the connection's seat.
type ActionData struct {
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// ChatData carries an outgoing chat line.
type ChatData struct {
	Message string `json:"message"`
}

// GameCreatedData acknowledges game creation.
type GameCreatedData struct {
	GameID string `json:"game_id"`
}

// GameJoinedData acknowledges a seat.
type GameJoinedData struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
}

// GameSummary is one row of the lobby listing.
type GameSummary struct {
	GameID     string `json:"game_id"`
	Variant    string `json:"variant"`
	Phase      string `json:"phase"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
	SmallBlind int    `json:"small_blind"`
	BigBlind   int    `json:"big_blind"`
	HandNumber int    `json:"hand_number"`
}

// GameListData is the lobby listing.
type GameListData struct {
	Games []GameSummary `json:"games"`
}

// ErrorData reports a rejected request.
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
