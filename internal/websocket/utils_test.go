package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
)

// The enrollment forwarder and the pong replies share one connection,
// so writes from several goroutines must serialize cleanly.
func TestConnSerializesConcurrentWrites(t *testing.T) {
	const writers = 4
	const perWriter = 25

	received := make(chan struct{}, writers*perWriter)
	upgrader := gws.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverConn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer serverConn.Close()

		for i := 0; i < writers*perWriter; i++ {
			var msg PongResponse
			if err := serverConn.ReadJSON(&msg); err != nil {
				t.Errorf("read frame %d: %v", i, err)
				return
			}
			if msg.Event != EventPong {
				t.Errorf("frame %d corrupted: got event %q", i, msg.Event)
			}
			received <- struct{}{}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	raw, _, err := gws.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	conn := NewConn(raw)
	defer conn.Close()

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				if err := conn.WriteTyped(PongResponse{Event: EventPong}); err != nil {
					t.Errorf("write: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	timeout := time.After(5 * time.Second)
	for i := 0; i < writers*perWriter; i++ {
		select {
		case <-received:
		case <-timeout:
			t.Fatalf("timed out waiting for frames, got %d of %d", i, writers*perWriter)
		}
	}
}
