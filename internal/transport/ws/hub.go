package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Server to browser
const (
	MsgToastAdded    MessageType = "toast_added"
	MsgToastRemoved  MessageType = "toast_removed"
	MsgToastSnapshot MessageType = "toast_snapshot"
	MsgSessionClosed MessageType = "session_closed"
	MsgError         MessageType = "error"
)

// Browser to server
const (
	MsgDismissToast MessageType = "dismiss_toast"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Connection is one websocket of a browser session. A session may have
// several, one per open tab.
type Connection struct {
	SessionID string
	Send      chan []byte
}

type registration struct {
	conn  *Connection
	added chan struct{}
}

type broadcastMessage struct {
	sessionID string
	data      []byte
}

// Hub fans session events out to websocket connections. All connection
// bookkeeping happens on the run goroutine.
type Hub struct {
	conns map[string]map[*Connection]struct{}
	mu    sync.RWMutex

	register   chan registration
	unregister chan *Connection
	broadcast  chan broadcastMessage
	disconnect chan string
	done       chan struct{}
	closeOnce  sync.Once

	log *slog.Logger
}

// NewHub creates a hub and starts its run loop.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan registration),
		unregister: make(chan *Connection),
		broadcast:  make(chan broadcastMessage, 256),
		disconnect: make(chan string),
		done:       make(chan struct{}),
		log:        logger.With("component", "ws_hub"),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case reg := <-h.register:
			conn := reg.conn
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			close(reg.added)
			h.log.Debug("connected", "session", conn.SessionID)

		case conn := <-h.unregister:
			h.mu.Lock()
			h.remove(conn)
			h.mu.Unlock()

		case sid := <-h.disconnect:
			data, _ := encode(MsgSessionClosed, nil)
			h.mu.Lock()
			for conn := range h.conns[sid] {
				select {
				case conn.Send <- data:
				default:
				}
				h.remove(conn)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.conns[msg.sessionID] {
				select {
				case conn.Send <- msg.data:
				default:
					// slow reader, drop
				}
			}
			h.mu.RUnlock()

		case <-h.done:
			h.mu.Lock()
			for _, set := range h.conns {
				for conn := range set {
					h.remove(conn)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// remove must be called with mu held.
func (h *Hub) remove(conn *Connection) {
	set, ok := h.conns[conn.SessionID]
	if !ok {
		return
	}
	if _, ok := set[conn]; !ok {
		return
	}
	delete(set, conn)
	close(conn.Send)
	if len(set) == 0 {
		delete(h.conns, conn.SessionID)
	}
	h.log.Debug("disconnected", "session", conn.SessionID)
}

// Register adds a connection. It returns once broadcasts for the session
// reach conn.
func (h *Hub) Register(conn *Connection) {
	reg := registration{conn: conn, added: make(chan struct{})}
	select {
	case h.register <- reg:
		<-reg.added
	case <-h.done:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.done:
	}
}

// Connections is the number of open connections of a session.
func (h *Hub) Connections(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[sessionID])
}

// SendTo queues data for one connection, dropping it if the connection is
// gone or its buffer is full.
func (h *Hub) SendTo(conn *Connection, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if _, ok := h.conns[conn.SessionID][conn]; !ok {
		return
	}
	select {
	case conn.Send <- data:
	default:
	}
}

// BroadcastToSession sends a message to every connection of a session
// (implements service.Broadcaster).
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, err := encode(MessageType(msgType), payload)
	if err != nil {
		h.log.Error("failed to encode message", "type", msgType, "error", err)
		return
	}
	select {
	case h.broadcast <- broadcastMessage{sessionID: sessionID, data: data}:
	case <-h.done:
	}
}

// DisconnectSession tells every connection of a session that it is over and
// closes them (implements service.Broadcaster).
func (h *Hub) DisconnectSession(sessionID string) {
	select {
	case h.disconnect <- sessionID:
	case <-h.done:
	}
}

// Close stops the hub and closes every connection.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

func encode(msgType MessageType, payload interface{}) ([]byte, error) {
	msg := Message{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		msg.Payload = data
	}
	return json.Marshal(&msg)
}
