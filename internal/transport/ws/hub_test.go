package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bimillog/internal/toast"
	"bimillog/internal/transport/rest/middleware"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case data, ok := <-ch:
		require.True(t, ok, "channel closed")
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return Message{}
	}
}

func register(t *testing.T, h *Hub, sid string) *Connection {
	t.Helper()
	conn := &Connection{SessionID: sid, Send: make(chan []byte, 8)}
	h.Register(conn)
	require.Eventually(t, func() bool { return h.Connections(sid) > 0 }, time.Second, time.Millisecond)
	return conn
}

func TestBroadcastReachesOnlyThatSession(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	a1 := register(t, h, "a")
	a2 := register(t, h, "a")
	b := register(t, h, "b")
	require.Equal(t, 2, h.Connections("a"))

	h.BroadcastToSession("a", string(MsgToastAdded), map[string]string{"id": "t1"})

	for _, c := range []*Connection{a1, a2} {
		msg := recv(t, c.Send)
		assert.Equal(t, MsgToastAdded, msg.Type)
		assert.JSONEq(t, `{"id":"t1"}`, string(msg.Payload))
	}
	select {
	case <-b.Send:
		t.Fatal("session b got a message for a")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestDisconnectSessionClosesConnections(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()

	c := register(t, h, "a")
	h.DisconnectSession("a")

	msg := recv(t, c.Send)
	assert.Equal(t, MsgSessionClosed, msg.Type)
	_, ok := <-c.Send
	assert.False(t, ok)
	assert.Equal(t, 0, h.Connections("a"))
}

func TestCloseStopsHub(t *testing.T) {
	h := NewHub(nil)
	c := register(t, h, "a")
	h.Close()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-c.Send:
			return !ok
		default:
			return false
		}
	}, time.Second, time.Millisecond)

	// late callers must not block
	h.BroadcastToSession("a", string(MsgToastAdded), nil)
	h.DisconnectSession("a")
	h.Unregister(c)
}

func TestSendToIgnoresUnknownConnection(t *testing.T) {
	h := NewHub(nil)
	defer h.Close()
	h.SendTo(&Connection{SessionID: "x", Send: make(chan []byte)}, []byte("{}"))
}

func withSession(sid string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), middleware.SessionIDKey, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHandlerSendsSnapshotThenEvents(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	toasts := toast.NewRegistry(hub)
	defer toasts.Close()

	existing := toasts.Push("sid-1", toast.Info, "hello", toast.WithDuration(0))

	srv := httptest.NewServer(withSession("sid-1", http.HandlerFunc(NewHandler(hub, toasts, "", nil).Serve)))
	defer srv.Close()
	conn := dial(t, srv)

	msg := readMessage(t, conn)
	require.Equal(t, MsgToastSnapshot, msg.Type)
	var snapshot []toast.Toast
	require.NoError(t, json.Unmarshal(msg.Payload, &snapshot))
	require.Len(t, snapshot, 1)
	assert.Equal(t, existing.ID, snapshot[0].ID)

	require.Eventually(t, func() bool { return hub.Connections("sid-1") == 1 }, time.Second, time.Millisecond)
	toasts.Push("sid-1", toast.Success, "saved")
	msg = readMessage(t, conn)
	assert.Equal(t, MsgToastAdded, msg.Type)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    MsgDismissToast,
		"payload": map[string]string{"id": existing.ID},
	}))
	msg = readMessage(t, conn)
	assert.Equal(t, MsgToastRemoved, msg.Type)
	require.Eventually(t, func() bool { return len(toasts.List("sid-1")) == 1 }, time.Second, time.Millisecond)
}

// landingToasts adds a toast for the session while the snapshot is being
// read, the way a concurrent request would.
type landingToasts struct {
	*toast.Registry
}

func (l landingToasts) List(sessionID string) []toast.Toast {
	l.Registry.Push(sessionID, toast.Success, "landed", toast.WithDuration(0))
	return []toast.Toast{}
}

func TestHandlerKeepsToastAddedDuringHandshake(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	toasts := toast.NewRegistry(hub)
	defer toasts.Close()

	srv := httptest.NewServer(withSession("sid-3", http.HandlerFunc(NewHandler(hub, landingToasts{toasts}, "", nil).Serve)))
	defer srv.Close()
	conn := dial(t, srv)

	seen := map[MessageType]bool{}
	for i := 0; i < 2; i++ {
		seen[readMessage(t, conn).Type] = true
	}
	assert.True(t, seen[MsgToastSnapshot])
	assert.True(t, seen[MsgToastAdded])
}

func TestHandlerAnswersUnknownMessages(t *testing.T) {
	hub := NewHub(nil)
	defer hub.Close()
	toasts := toast.NewRegistry(hub)
	defer toasts.Close()

	srv := httptest.NewServer(withSession("sid-2", http.HandlerFunc(NewHandler(hub, toasts, "", nil).Serve)))
	defer srv.Close()
	conn := dial(t, srv)
	require.Equal(t, MsgToastSnapshot, readMessage(t, conn).Type)
	require.Eventually(t, func() bool { return hub.Connections("sid-2") == 1 }, time.Second, time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"shout"}`)))
	assert.Equal(t, MsgError, readMessage(t, conn).Type)
}

func TestOriginChecker(t *testing.T) {
	check := originChecker("https://bimillog.site, http://localhost:3000")
	r := httptest.NewRequest(http.MethodGet, "/v1/ws", nil)
	assert.True(t, check(r))

	r.Header.Set("Origin", "https://bimillog.site")
	assert.True(t, check(r))
	r.Header.Set("Origin", "https://evil.example")
	assert.False(t, check(r))

	assert.True(t, originChecker("*")(r))
	assert.True(t, originChecker("")(r))
}
