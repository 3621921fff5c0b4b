package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/domain"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second

	// messages queued per client before it is considered too slow and dropped
	sendBuffer = 256
)

// ServerMessage is the envelope for everything pushed to spectators.
type ServerMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

type PieceDroppedPayload struct {
	Move domain.Move `json:"move"`
	Row  int         `json:"row"`
}

type GameWonPayload struct {
	Winner domain.Player `json:"winner"`
	Name   string        `json:"name"`
}

// client owns its socket writes: only its writePump goroutine touches conn for writing,
// so messages leave in the order they were queued.
type client struct {
	conn *websocket.Conn
	send chan ServerMessage
}

// Hub tracks open sockets and pushes game events to all of them.
// It satisfies the game notifier contract and never blocks the caller.
type Hub struct {
	clients map[string]*client
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*client)}
}

// Add registers conn with first as its first outgoing message and returns the id used to remove it.
func (h *Hub) Add(conn *websocket.Conn, first ServerMessage) string {
	id := uuid.NewString()
	c := &client{conn: conn, send: make(chan ServerMessage, sendBuffer)}
	c.send <- first

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()

	go h.writePump(id, c)
	return id
}

// Remove forgets the client; its writer closes the socket once the queue is closed.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(c.send)
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send queues msg for one client. A client whose queue is full is dropped.
func (h *Hub) Send(id string, msg ServerMessage) {
	h.mu.RLock()
	c, ok := h.clients[id]
	queued := !ok || enqueue(c, msg)
	h.mu.RUnlock()

	if !queued {
		log.Debugf("[WS] Dropping slow client %s", id)
		h.Remove(id)
	}
}

// Broadcast queues msg for every client without waiting on any socket.
func (h *Hub) Broadcast(msg ServerMessage) {
	var slow []string

	h.mu.RLock()
	for id, c := range h.clients {
		if !enqueue(c, msg) {
			slow = append(slow, id)
		}
	}
	h.mu.RUnlock()

	for _, id := range slow {
		log.Debugf("[WS] Dropping slow client %s", id)
		h.Remove(id)
	}
}

// enqueue must be called with the hub lock held so send is not closed underneath it.
func enqueue(c *client, msg ServerMessage) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (h *Hub) writePump(id string, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Debugf("[WS] Write to %s failed: %v", id, err)
				h.Remove(id)
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				h.Remove(id)
				return
			}
		}
	}
}

func (h *Hub) PieceDropped(move domain.Move, row int) {
	h.Broadcast(ServerMessage{Type: "piece_dropped", Payload: PieceDroppedPayload{Move: move, Row: row}})
}

func (h *Hub) GameWon(winner domain.Player, name string) {
	h.Broadcast(ServerMessage{Type: "game_won", Payload: GameWonPayload{Winner: winner, Name: name}})
}

func (h *Hub) GameDrawn() {
	h.Broadcast(ServerMessage{Type: "game_drawn"})
}
