package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestHub_ConcurrentNotify(t *testing.T) {
	const (
		userID    = "user-1"
		writers   = 16
		perWriter = 25
	)

	hub := NewHub()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.add(userID, conn)
	}))
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if !assert.NoError(t, err) {
		return
	}
	defer conn.Close()

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				hub.Notify(userID, Event{
					Type:    "quest_completed",
					Payload: map[string]any{"gold_earned": 100},
				})
			}
		}()
	}

	assert.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for received := 0; received < writers*perWriter; received++ {
		_, payload, err := conn.ReadMessage()
		if !assert.NoError(t, err) {
			break
		}

		var event Event
		assert.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "quest_completed", event.Type)
	}

	wg.Wait()
}

func TestHub_RemoveDropsEmptyUserEntry(t *testing.T) {
	hub := NewHub()

	client := hub.add("user-1", nil)
	hub.remove("user-1", client)

	hub.mu.RLock()
	defer hub.mu.RUnlock()
	assert.Empty(t, hub.clients)
}
