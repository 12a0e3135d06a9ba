package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(hub)
	t.Cleanup(func() {
		server.Close()
		cancel()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestHub_Broadcast(t *testing.T) {
	t.Parallel()

	hub, url := startHub(t)
	first := dial(t, url)
	second := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, 2*time.Second, 10*time.Millisecond)

	msg, err := Marshal("state", map[string]int{"n": 1})
	require.NoError(t, err)
	hub.Broadcast(msg)

	for _, conn := range []*websocket.Conn{first, second} {
		got := readMessage(t, conn)
		assert.Equal(t, "state", got.Type)
		assert.Equal(t, map[string]any{"n": float64(1)}, got.Data)
	}
}

func TestHub_WelcomeMessages(t *testing.T) {
	t.Parallel()

	hub, url := startHub(t)
	hub.OnConnect(func() [][]byte {
		a, _ := Marshal("state", "initial")
		b, _ := Marshal("alerts", "none")
		return [][]byte{a, b}
	})

	conn := dial(t, url)
	assert.Equal(t, "state", readMessage(t, conn).Type)
	assert.Equal(t, "alerts", readMessage(t, conn).Type)
}

func TestHub_ClientDisconnect(t *testing.T) {
	t.Parallel()

	hub, url := startHub(t)
	conn := dial(t, url)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	server := httptest.NewServer(hub)
	t.Cleanup(server.Close)

	conn := dial(t, "ws"+strings.TrimPrefix(server.URL, "http"))
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err, "connection should be closed by the server")
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	for i := 0; i < 2000; i++ {
		hub.Broadcast([]byte("x"))
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}
