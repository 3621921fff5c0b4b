package websocket

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/taskmasters/connect4/internal/service/game"
)

const pongWait = 60 * time.Second

// SnapshotSource hands out the live game state while no move can be played,
// so a socket registered inside fn misses no event and sees none twice.
type SnapshotSource interface {
	WithSnapshot(fn func(game.Snapshot))
}

// Handler upgrades spectators to websockets. Clients only listen; anything they send is ignored.
type Handler struct {
	hub      *Hub
	source   SnapshotSource
	upgrader websocket.Upgrader
}

// NewHandler builds the /ws handler. An empty allowedOrigins accepts any origin.
func NewHandler(hub *Hub, source SnapshotSource, allowedOrigins []string) *Handler {
	return &Handler{
		hub:    hub,
		source: source,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *Handler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("[WS] Upgrade error: %v", err)
		return
	}
	h.handleConnection(conn)
}

func (h *Handler) handleConnection(conn *websocket.Conn) {
	var id string
	h.source.WithSnapshot(func(snap game.Snapshot) {
		id = h.hub.Add(conn, ServerMessage{Type: "snapshot", Payload: snap})
	})
	log.WithField("client", id).Info("[WS] Spectator connected")

	defer func() {
		h.hub.Remove(id)
		log.WithField("client", id).Info("[WS] Spectator disconnected")
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugf("[WS] Read error: %v", err)
			}
			return
		}
	}
}
