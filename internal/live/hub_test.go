package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialRoom(t *testing.T, h *Hub, code string, initial interface{}) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Serve(w, r, code, initial)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHubInitialFrame(t *testing.T) {
	t.Parallel()
	h := NewHub()
	conn := dialRoom(t, h, "ROOM1", map[string]int{"score": 42})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var frame map[string]int
	require.NoError(t, json.Unmarshal(data, &frame))
	assert.Equal(t, 42, frame["score"])
}

func TestHubBroadcastReachesRoom(t *testing.T) {
	t.Parallel()
	h := NewHub()
	conn := dialRoom(t, h, "ROOM2", nil)

	// Wait until the connection is parked before broadcasting.
	require.Eventually(t, func() bool {
		return h.Spectators("ROOM2") == 1
	}, time.Second, 10*time.Millisecond)

	h.Broadcast("ROOM2", map[string]string{"event": "four"})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "four")
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	t.Parallel()
	h := NewHub()
	// Nothing listening; must not panic or block.
	h.Broadcast("NOBODY", map[string]string{"event": "six"})
	assert.Equal(t, 0, h.Spectators("NOBODY"))
}

func TestHubDropsClosedConnections(t *testing.T) {
	t.Parallel()
	h := NewHub()
	conn := dialRoom(t, h, "ROOM3", nil)

	require.Eventually(t, func() bool {
		return h.Spectators("ROOM3") == 1
	}, time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool {
		return h.Spectators("ROOM3") == 0
	}, time.Second, 10*time.Millisecond)
}
