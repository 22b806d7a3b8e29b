package ws

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"bimillog/internal/toast"
	"bimillog/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Toasts is the per-session toast state a socket reads and dismisses
type Toasts interface {
	List(sessionID string) []toast.Toast
	Remove(sessionID, id string) bool
}

// Handler upgrades browser sessions to a toast push channel
type Handler struct {
	hub      *Hub
	toasts   Toasts
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// NewHandler creates a new WebSocket handler. allowedOrigins is the
// comma-separated CORS origin list; "*" or empty accepts any origin.
func NewHandler(hub *Hub, toasts Toasts, allowedOrigins string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		hub:    hub,
		toasts: toasts,
		log:    logger.With("component", "ws"),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}
	return h
}

func originChecker(allowed string) func(r *http.Request) bool {
	origins := map[string]bool{}
	for _, o := range strings.Split(allowed, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = true
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || len(origins) == 0 || origins["*"] || origins[origin]
	}
}

// Serve handles GET /v1/ws. The session comes from the session cookie, so
// a socket only ever sees its own session's toasts.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	sid := middleware.GetSessionID(r.Context())
	if sid == "" {
		http.Error(w, "missing session", http.StatusUnauthorized)
		return
	}

	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	conn := &Connection{
		SessionID: sid,
		Send:      make(chan []byte, 256),
	}
	// The snapshot is taken after registration so no toast falls between
	// the two. A toast added meanwhile can show up in both; browsers key
	// toasts by id.
	h.hub.Register(conn)
	if snapshot, err := encode(MsgToastSnapshot, h.toasts.List(sid)); err == nil {
		h.hub.SendTo(conn, snapshot)
	}

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		h.hub.Unregister(conn)
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("websocket read failed", "session", conn.SessionID, "error", err)
			}
			break
		}
		h.handleMessage(conn, data)
	}
}

func (h *Handler) handleMessage(conn *Connection, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		h.reply(conn, MsgError, map[string]string{"error": "invalid message"})
		return
	}

	switch msg.Type {
	case MsgDismissToast:
		var body struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(msg.Payload, &body); err != nil || body.ID == "" {
			h.reply(conn, MsgError, map[string]string{"error": "dismiss_toast needs an id"})
			return
		}
		// removal is broadcast to every tab by the registry
		h.toasts.Remove(conn.SessionID, body.ID)
	default:
		h.reply(conn, MsgError, map[string]string{"error": "unknown message type " + string(msg.Type)})
	}
}

// reply answers on one connection only.
func (h *Handler) reply(conn *Connection, msgType MessageType, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		return
	}
	h.hub.SendTo(conn, data)
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
