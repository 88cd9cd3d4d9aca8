package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/mastermind-online/internal/config"
)

func newWSTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	cfg := config.Default()
	cfg.Server.MaxConnections = 2
	cfg.Game.Colors = []string{"B"}

	srv, err := NewServer(cfg)
	require.NoError(t, err)

	ts := httptest.NewServer(http.HandlerFunc(srv.handleWebSocket))
	t.Cleanup(ts.Close)
	t.Cleanup(srv.Shutdown)
	return srv, ts
}

func wsDial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		_ = resp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func wsExpect(t *testing.T, conn *websocket.Conn, prefix string) string {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err, "waiting for %q", prefix)
		if line := string(data); strings.HasPrefix(line, prefix) {
			return line
		}
	}
}

// WebSocket clients speak the exact same line protocol as TCP clients.
func TestWSGateway_SpeaksLineProtocol(t *testing.T) {
	_, ts := newWSTestServer(t)
	conn := wsDial(t, ts)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("HELLO:v1")))
	assert.Equal(t, "HELLO:v1", wsExpect(t, conn, "HELLO:"))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("CONNECT:Alice")))
	wsExpect(t, conn, "CONNECTED:")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("GET_GAMES")))
	assert.Equal(t, "GAME_LIST:[]", wsExpect(t, conn, "GAME_LIST:"))
}

func TestWSGateway_RejectsWhenFull(t *testing.T) {
	_, ts := newWSTestServer(t)

	// Fill both connection slots
	wsDial(t, ts)
	wsDial(t, ts)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
