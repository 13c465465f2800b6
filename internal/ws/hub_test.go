package ws

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string) *Client {
	return &Client{UserID: id, Send: make(chan []byte, 4)}
}

func TestBroadcastSkipsSender(t *testing.T) {
	room := NewRoom("rel-1")
	sender := newTestClient("u1")
	receiver := newTestClient("u2")
	room.Join(sender)
	room.Join(receiver)

	room.Broadcast(sender, map[string]string{"type": "message"})

	assert.Len(t, receiver.Send, 1)
	assert.Empty(t, sender.Send)
}

func TestBroadcastToClosedClient(t *testing.T) {
	room := NewRoom("rel-1")
	sender := newTestClient("u1")
	receiver := newTestClient("u2")
	stale := newTestClient("u3")
	room.Join(sender)
	room.Join(receiver)
	room.Join(stale)

	// A peer can close its channel while still in the room snapshot.
	stale.Close()

	require.NotPanics(t, func() {
		room.Broadcast(sender, map[string]string{"type": "message"})
	})
	assert.Len(t, receiver.Send, 1)
}

func TestBroadcastSkipsFullBuffer(t *testing.T) {
	room := NewRoom("rel-1")
	sender := newTestClient("u1")
	slow := &Client{UserID: "u2", Send: make(chan []byte)}
	room.Join(sender)
	room.Join(slow)

	require.NotPanics(t, func() {
		room.Broadcast(sender, map[string]string{"type": "message"})
	})
}

func TestBroadcastConcurrentWithDisconnect(t *testing.T) {
	room := NewRoom("rel-1")
	sender := newTestClient("u1")
	room.Join(sender)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		c := newTestClient(fmt.Sprintf("peer-%d", i))
		room.Join(c)

		wg.Add(2)
		go func() {
			defer wg.Done()
			room.Leave(c)
			c.Close()
		}()
		go func() {
			defer wg.Done()
			room.Broadcast(sender, map[string]string{"type": "message"})
		}()
	}
	wg.Wait()
}

func TestClientCloseIdempotent(t *testing.T) {
	c := newTestClient("u1")
	require.NotPanics(t, func() {
		c.Close()
		c.Close()
	})
	assert.False(t, c.trySend([]byte("x")))
}

func TestHubRoomLifecycle(t *testing.T) {
	hub := NewHub()

	room := hub.GetOrCreateRoom("rel-1")
	assert.Same(t, room, hub.GetOrCreateRoom("rel-1"))
	assert.Same(t, room, hub.GetRoom("rel-1"))

	c := newTestClient("u1")
	room.Join(c)
	hub.RemoveRoomIfEmpty("rel-1")
	assert.NotNil(t, hub.GetRoom("rel-1"))

	room.Leave(c)
	hub.RemoveRoomIfEmpty("rel-1")
	assert.Nil(t, hub.GetRoom("rel-1"))
}
