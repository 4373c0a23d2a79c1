package websocket

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dialStalledPeer returns a client whose remote end stays connected but
// never reads a single frame.
func dialStalledPeer(t *testing.T) *Client {
	t.Helper()

	upgrader := websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		<-done
	}))
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	client := NewClient("stalled", conn)
	client.writeTimeout = 200 * time.Millisecond

	return client
}

func TestClient_Send_StalledPeer(t *testing.T) {
	// Given: a peer that stops reading; broadcasts to it run inside the
	// room manager's critical section, so writes must stay bounded
	client := dialStalledPeer(t)

	payload := map[string]string{"data": strings.Repeat("x", 1<<20)}

	// When: frames are pushed until the transport buffers fill up
	started := time.Now()

	var sendErr error
	for i := 0; i < 32; i++ {
		if sendErr = client.Send("themeChanged", payload); sendErr != nil {
			break
		}
	}

	// Then: the write fails within the deadline instead of blocking
	// indefinitely, so other rooms are never wedged by this peer
	require.Error(t, sendErr)
	assert.Less(t, time.Since(started), 5*time.Second)
}

func TestPool_ToConnection_StalledPeerDoesNotBlock(t *testing.T) {
	// Given: a pool holding a connection whose peer never reads
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	pool := NewPool(logger)
	pool.Add(dialStalledPeer(t))

	payload := map[string]string{"data": strings.Repeat("x", 1<<20)}

	// When: the stalled connection is flooded with broadcasts
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		for i := 0; i < 32; i++ {
			pool.ToConnection("stalled", "themeChanged", payload)
		}
	}()

	// Then: delivery failures are swallowed by the pool and the caller
	// returns promptly
	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("broadcast to a stalled peer never returned")
	}
}
