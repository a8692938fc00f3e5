package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	identitydomain "user-dashboard/backend/internal/identity/domain"
	"user-dashboard/backend/internal/platform/authz"
	"user-dashboard/backend/internal/presence"
)

const (
	// sendBuffer bounds the per-connection snapshot queue. SendSnapshot runs
	// under the tracker lock, so a slow connection drops frames instead of
	// stalling the broadcast; the next snapshot supersedes anything dropped.
	sendBuffer = 8
)

type wsMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type presenceUpdate struct {
	Event string           `json:"event"`
	Data  []presence.Entry `json:"data"`
}

// handleWS upgrades the connection and runs its read loop. Any client may
// connect and send presence pings; only connections whose bearer token
// carries the admin capability may register as observers.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{CheckOrigin: s.allowOrigin}
	sock, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	rc := RequestContextFrom(r.Context())
	conn := &wsConn{
		id:     uuid.New().String(),
		sock:   sock,
		send:   make(chan []presence.Entry, sendBuffer),
		logger: s.logger,
	}
	go conn.writeLoop()
	s.readLoop(conn, rc)
}

func (s *Server) readLoop(conn *wsConn, rc identitydomain.RequestContext) {
	defer func() {
		s.deps.Presence.Disconnect(conn.id)
		close(conn.send)
	}()
	for {
		var msg wsMessage
		if err := conn.sock.ReadJSON(&msg); err != nil {
			return
		}
		switch msg.Event {
		case "adminJoin":
			if _, err := authz.RequireAdmin(rc); err != nil {
				s.logger.Warn("non-admin adminJoin rejected", "conn_id", conn.id)
				continue
			}
			s.deps.Presence.AdminJoin(conn.id, conn)
		case "presence:ping":
			var ping struct {
				UserID   string `json:"userId"`
				Email    string `json:"email"`
				Username string `json:"username"`
				Path     string `json:"path"`
			}
			if len(msg.Data) > 0 {
				if err := json.Unmarshal(msg.Data, &ping); err != nil {
					continue
				}
			}
			s.deps.Presence.Ping(ping.UserID, ping.Email, ping.Username, ping.Path)
		default:
			// Unknown events are ignored; the protocol has no error channel.
		}
	}
}

// allowOrigin mirrors the CORS allow-list for the websocket handshake.
func (s *Server) allowOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.deps.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// wsConn adapts one websocket connection to the tracker's Observer contract.
// All writes to the socket happen on the writeLoop goroutine; SendSnapshot
// only enqueues.
type wsConn struct {
	id     string
	sock   *websocket.Conn
	send   chan []presence.Entry
	logger *slog.Logger
}

// SendSnapshot enqueues the snapshot for the writer. Called with the tracker
// lock held; never blocks.
func (c *wsConn) SendSnapshot(entries []presence.Entry) {
	select {
	case c.send <- entries:
	default:
		c.logger.Warn("presence snapshot dropped, slow websocket consumer", "conn_id", c.id)
	}
}

func (c *wsConn) writeLoop() {
	for entries := range c.send {
		if err := c.sock.WriteJSON(presenceUpdate{Event: "presence:update", Data: entries}); err != nil {
			c.logger.Warn("websocket write failed", "conn_id", c.id, "error", err)
		}
	}
	_ = c.sock.Close()
}
