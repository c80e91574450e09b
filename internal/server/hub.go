package server

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"papertactics/internal/game"
	"papertactics/internal/game/core"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type inboundMessage struct {
	client *Client
	msg    ClientMessage
}

// Hub maintains the set of connected clients and routes their messages to
// the game manager. All client state lives on the hub goroutine, so no
// locks are needed around the maps.
type Hub struct {
	manager *Manager

	clients  map[*Client]bool
	byPlayer map[string]*Client

	register    chan *Client
	unregister  chan *Client
	inbound     chan inboundMessage
	setDefaults chan game.Preferences

	defaults game.Preferences
	logger   zerolog.Logger
}

// NewHub creates a hub serving games from the given manager. defaults are
// the preferences applied when a create request carries none.
func NewHub(manager *Manager, defaults game.Preferences, logger zerolog.Logger) *Hub {
	return &Hub{
		manager:    manager,
		clients:    make(map[*Client]bool),
		byPlayer:   make(map[string]*Client),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		inbound:     make(chan inboundMessage),
		setDefaults: make(chan game.Preferences),
		defaults:    defaults,
		logger:      logger.With().Str("component", "hub").Logger(),
	}
}

// Run processes connection and message events until the process exits.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.byPlayer[client.playerID] = client
			client.send <- ServerMessage{Type: "welcome", PlayerID: client.playerID}
			h.logger.Info().Str("player_id", client.playerID).Msg("Player connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				delete(h.byPlayer, client.playerID)
				close(client.send)
				h.logger.Info().Str("player_id", client.playerID).Msg("Player disconnected")
			}

		case in := <-h.inbound:
			h.handleMessage(in.client, in.msg)

		case prefs := <-h.setDefaults:
			h.defaults = prefs
			h.logger.Info().Int("board_size", prefs.Size).Msg("Default preferences updated")
		}
	}
}

// SetDefaults replaces the preferences applied to create requests that
// carry none. The update is handed to the hub goroutine, so it is safe to
// call while the hub is running.
func (h *Hub) SetDefaults(prefs game.Preferences) {
	h.setDefaults <- prefs
}

// ServeWS upgrades an HTTP request to a websocket connection and hands it
// to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("Websocket upgrade failed")
		return
	}

	client := &Client{
		hub:      h,
		conn:     conn,
		send:     make(chan ServerMessage, 16),
		playerID: uuid.New().String(),
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Hub) handleMessage(c *Client, msg ClientMessage) {
	switch msg.Type {
	case "create":
		h.handleCreate(c, msg)
	case "join":
		h.handleJoin(c, msg)
	case "move":
		h.handleMove(c, msg)
	case "view":
		h.pushView(c, msg.GameID)
	default:
		h.sendError(c, "unknown message type: "+msg.Type)
	}
}

func (h *Hub) handleCreate(c *Client, msg ClientMessage) {
	prefs := h.defaults
	if msg.Preferences != nil {
		prefs = msg.Preferences.Preferences()
	}

	gameID, err := h.manager.CreateGame(c.playerID, prefs)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	c.send <- ServerMessage{Type: "created", GameID: gameID}
	if prefs.IsAgainstBot {
		h.pushView(c, gameID)
	}
}

func (h *Hub) handleJoin(c *Client, msg ClientMessage) {
	if err := h.manager.JoinGame(msg.GameID, c.playerID); err != nil {
		h.sendError(c, err.Error())
		return
	}
	h.pushViews(msg.GameID)
}

func (h *Hub) handleMove(c *Client, msg ClientMessage) {
	if msg.Cell == nil {
		h.sendError(c, "move requires a cell")
		return
	}

	if err := h.manager.MakeTurn(msg.GameID, c.playerID, *msg.Cell); err != nil {
		var illegal *core.IllegalTurnError
		if !errors.As(err, &illegal) {
			h.logger.Error().Err(err).Str("game_id", msg.GameID).Msg("Turn failed")
		}
		h.sendError(c, err.Error())
		return
	}
	h.pushViews(msg.GameID)
}

// pushViews sends every connected participant their own projection of the game.
func (h *Hub) pushViews(gameID string) {
	players, err := h.manager.Players(gameID)
	if err != nil {
		h.logger.Warn().Err(err).Str("game_id", gameID).Msg("Cannot list game players")
		return
	}

	for _, playerID := range players {
		client, ok := h.byPlayer[playerID]
		if !ok {
			continue
		}
		h.pushView(client, gameID)
	}
}

func (h *Hub) pushView(c *Client, gameID string) {
	view, err := h.manager.View(gameID, c.playerID)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}
	c.send <- ServerMessage{Type: "view", GameID: gameID, View: &view}
}

func (h *Hub) sendError(c *Client, text string) {
	select {
	case c.send <- ServerMessage{Type: "error", Error: text}:
	default:
		// Slow client with a full queue; drop the error rather than block the hub.
	}
}
