package web

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Spectators are read-only; any origin may watch.
		return true
	},
}

// Hub fans live game updates out to WebSocket spectators. Clients subscribe
// to a single game ID, or to "*" for every game in the tournament.
type Hub struct {
	gameClients map[string]map[*client]bool

	broadcast  chan GameUpdate
	register   chan *client
	unregister chan *client

	mu sync.RWMutex
}

// client is one spectator connection.
type client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	gameID string
}

// GameUpdate is one event on a game's live feed.
type GameUpdate struct {
	GameID string      `json:"gameId"`
	Type   string      `json:"type"` // "move" or "game_end"
	Data   interface{} `json:"data"`
}

// NewHub creates a hub; call Run in its own goroutine before broadcasting.
func NewHub() *Hub {
	return &Hub{
		gameClients: make(map[string]map[*client]bool),
		broadcast:   make(chan GameUpdate, 64),
		register:    make(chan *client),
		unregister:  make(chan *client),
	}
}

// Run is the hub's event loop. It exits when the process does; spectator
// connections do not outlive the tournament.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.gameClients[c.gameID] == nil {
				h.gameClients[c.gameID] = make(map[*client]bool)
			}
			h.gameClients[c.gameID][c] = true
			h.mu.Unlock()

			log.Info().Str("gameID", c.gameID).Msg("Spectator connected")

		case c := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.gameClients[c.gameID]; ok {
				if _, ok := clients[c]; ok {
					delete(clients, c)
					close(c.send)
					if len(clients) == 0 {
						delete(h.gameClients, c.gameID)
					}
				}
			}
			h.mu.Unlock()

			log.Info().Str("gameID", c.gameID).Msg("Spectator disconnected")

		case update := <-h.broadcast:
			message, err := json.Marshal(update)
			if err != nil {
				log.Error().Err(err).Msg("Failed to marshal game update")
				continue
			}
			h.mu.RLock()
			targets := make([]*client, 0, 8)
			for c := range h.gameClients[update.GameID] {
				targets = append(targets, c)
			}
			for c := range h.gameClients["*"] {
				targets = append(targets, c)
			}
			h.mu.RUnlock()

			for _, c := range targets {
				select {
				case c.send <- message:
				default:
					// Slow spectator; drop the update rather than
					// stalling every other connection.
				}
			}
		}
	}
}

// Broadcast queues an update for delivery. It satisfies the tournament
// package's Broadcaster interface and never blocks the game runner.
func (h *Hub) Broadcast(gameID, event string, payload interface{}) {
	update := GameUpdate{GameID: gameID, Type: event, Data: payload}
	select {
	case h.broadcast <- update:
	default:
		log.Warn().Str("gameID", gameID).Msg("Broadcast channel full, dropping update")
	}
}

// WebSocketHandler upgrades spectator connections. The game to watch comes
// from the gameId query parameter; "*" subscribes to the whole tournament.
func (s *Service) WebSocketHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := r.URL.Query().Get("gameId")
		if gameID == "" {
			gameID = "*"
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
			return
		}

		c := &client{
			hub:    hub,
			conn:   conn,
			send:   make(chan []byte, 256),
			gameID: gameID,
		}
		c.hub.register <- c

		go c.writePump()
		go c.readPump()
	}
}

func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		// Spectators only listen; reads exist to notice disconnects.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Msg("WebSocket error")
			}
			break
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
