package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"cardroom/internal/bot"
	"cardroom/internal/game"
	"cardroom/internal/gameid"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from the peer.
	maxMessageSize = 8192

	// Chat lines longer than this are truncated.
	maxChatLength = 200
)

// ErrConnectionClosed reports a send on a closed connection.
var ErrConnectionClosed = websocket.ErrCloseSent

// Connection wraps one WebSocket client. The write pump serializes all
// frames to the peer; everything else queues onto the send channel.
type Connection struct {
	conn    *websocket.Conn
	send    chan *Message
	logger  *log.Logger
	manager *GameManager

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once

	mu       sync.RWMutex
	playerID string
	gameID   string
}

// NewConnection wraps an upgraded WebSocket. Every connection gets a
// generated player id for its lifetime.
func NewConnection(conn *websocket.Conn, logger *log.Logger, manager *GameManager) *Connection {
	ctx, cancel := context.WithCancel(context.Background())
	return &Connection{
		conn:     conn,
		send:     make(chan *Message, 256),
		logger:   logger.WithPrefix("conn"),
		manager:  manager,
		ctx:      ctx,
		cancel:   cancel,
		playerID: gameid.Generate(),
	}
}

// Start begins the read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close tears the connection down once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		if gameID := c.GameID(); gameID != "" {
			c.manager.Leave(gameID, c)
		}
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// Done is closed when the connection shuts down.
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// PlayerID implements subscriber.
func (c *Connection) PlayerID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// GameID returns the game this connection is attached to, if any.
func (c *Connection) GameID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gameID
}

func (c *Connection) setGame(gameID string) {
	c.mu.Lock()
	c.gameID = gameID
	c.mu.Unlock()
}

// Send implements subscriber. It never blocks the caller: a full
// buffer closes the connection instead.
func (c *Connection) Send(msg *Message) error {
	defer func() {
		// The send channel closes during shutdown; a racing Send is
		// harmless.
		if r := recover(); r != nil {
			c.logger.Debug("send on closed connection", "err", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("send buffer full, closing connection", "player", c.PlayerID())
		_ = c.Close()
		return ErrConnectionClosed
	}
}

func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("websocket error", "err", err)
			}
			return
		}
		c.handleMessage(&msg)
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				c.logger.Error("failed to write message", "err", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Connection) handleMessage(msg *Message) {
	switch msg.Type {
	case MsgPing:
		c.reply(string(game.EventPong), nil)

	case MsgCreateGame:
		c.handleCreateGame(msg.Data)

	case MsgJoinGame:
		c.handleJoinGame(msg.Data)

	case MsgListGames:
		c.reply(MsgGameList, GameListData{Games: c.manager.List()})

	case MsgAction:
		c.handleAction(msg.Data)

	case MsgChat:
		c.handleChat(msg.Data)

	default:
		c.sendError("unknown_message", "unknown message type: "+msg.Type)
	}
}

func (c *Connection) handleCreateGame(data json.RawMessage) {
	var req CreateGameData
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError("bad_request", "invalid create_game payload")
		return
	}

	block := GameBlock{
		Name:          "custom",
		Variant:       req.Variant,
		SmallBlind:    req.SmallBlind,
		BigBlind:      req.BigBlind,
		MaxPlayers:    req.MaxPlayers,
		MinBuyIn:      req.MinBuyIn,
		MaxBuyIn:      req.MaxBuyIn,
		BotDifficulty: req.BotDifficulty,
	}
	if block.SmallBlind == 0 {
		block.SmallBlind = 10
	}
	if block.BigBlind == 0 {
		block.BigBlind = 2 * block.SmallBlind
	}
	difficulty, err := bot.ParseDifficulty(req.BotDifficulty)
	if err != nil {
		c.sendError("bad_request", err.Error())
		return
	}

	g, err := c.manager.CreateGame(block.GameConfig(), req.Bots, difficulty)
	if err != nil {
		c.sendError("create_failed", err.Error())
		return
	}
	c.reply(MsgGameCreated, GameCreatedData{GameID: g.ID()})

	if req.PlayerName != "" {
		c.join(g.ID(), req.PlayerName, req.BuyIn)
	}
}

func (c *Connection) handleJoinGame(data json.RawMessage) {
	var req JoinGameData
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError("bad_request", "invalid join_game payload")
		return
	}
	if err := gameid.Validate(req.GameID); err != nil {
		c.sendError("bad_request", err.Error())
		return
	}
	c.join(req.GameID, req.PlayerName, req.BuyIn)
}

func (c *Connection) join(gameID, name string, buyIn int) {
	if c.GameID() != "" {
		c.sendError("already_joined", "connection already attached to a game")
		return
	}
	if name == "" {
		c.sendError("bad_request", "player_name is required")
		return
	}
	if err := c.manager.Join(gameID, c, name, buyIn); err != nil {
		c.sendError("join_failed", err.Error())
		return
	}
	c.setGame(gameID)
	c.reply(MsgGameJoined, GameJoinedData{GameID: gameID, PlayerID: c.PlayerID()})
	c.logger.Info("player joined", "game_id", gameID, "player", c.PlayerID(), "name", name)
}

func (c *Connection) handleAction(data json.RawMessage) {
	var req ActionData
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError("bad_request", "invalid action payload")
		return
	}
	gameID := c.GameID()
	if gameID == "" {
		c.sendError("not_joined", "join a game before acting")
		return
	}
	action, err := game.ParseAction(req.Action)
	if err != nil {
		c.sendError("bad_request", err.Error())
		return
	}
	if err := c.manager.SubmitAction(gameID, c.PlayerID(), action, req.Amount); err != nil {
		c.sendError("action_failed", err.Error())
	}
}

func (c *Connection) handleChat(data json.RawMessage) {
	var req ChatData
	if err := json.Unmarshal(data, &req); err != nil {
		c.sendError("bad_request", "invalid chat payload")
		return
	}
	gameID := c.GameID()
	if gameID == "" {
		c.sendError("not_joined", "join a game before chatting")
		return
	}
	text := req.Message
	if len(text) > maxChatLength {
		text = text[:maxChatLength]
	}
	if text == "" {
		return
	}
	_ = c.manager.Chat(gameID, c.PlayerID(), text)
}

func (c *Connection) reply(messageType string, data any) {
	msg, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("failed to encode reply", "type", messageType, "err", err)
		return
	}
	_ = c.Send(msg)
}

func (c *Connection) sendError(code, message string) {
	c.reply(MsgError, ErrorData{Code: code, Message: message})
}
