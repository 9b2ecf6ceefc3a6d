package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// one subscriber, one hub, a real socket pair
func newTestStream(t *testing.T) (*StreamHub, *websocket.Conn) {
	t.Helper()
	hub := NewStreamHub()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(NewStreamClient(conn))
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if hub.ClientCount() == 0 {
		t.Fatal("client never registered")
	}
	return hub, conn
}

func TestBroadcastConcurrentWriters(t *testing.T) {
	hub, conn := newTestStream(t)

	// many submissions landing at once must serialize on the client's
	// write lock rather than corrupt the connection
	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(map[string]float64{"calories": 2100})
		}()
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if _, _, err := conn.ReadMessage(); err != nil {
			t.Fatalf("read %d of %d: %v", i+1, writers, err)
		}
	}
}

func TestUnregisterStopsDelivery(t *testing.T) {
	hub, conn := newTestStream(t)

	hub.mu.RLock()
	var cl *StreamClient
	for c := range hub.clients {
		cl = c
	}
	hub.mu.RUnlock()

	hub.Unregister(cl)
	if hub.ClientCount() != 0 {
		t.Fatalf("ClientCount = %d, want 0", hub.ClientCount())
	}
	hub.Broadcast(map[string]int{"n": 1})

	// the connection was closed server-side, so the read fails rather
	// than delivering the post-unregister broadcast
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("read succeeded after unregister")
	}
}
