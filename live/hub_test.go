package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		EventID: "evt1",
	}

	hub.register <- client

	update := CounterUpdate{Action: "like", EventID: "evt1", LikesCount: 3}
	data, _ := json.Marshal(update)
	hub.broadcast <- broadcastMsg{EventID: "evt1", Data: data}

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestBroadcastScopedToEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	watching := &Client{Send: make(chan []byte, 10), EventID: "evt1"}
	other := &Client{Send: make(chan []byte, 10), EventID: "evt2"}

	hub.register <- watching
	hub.register <- other

	hub.BroadcastCounters(CounterUpdate{Action: "rsvp", EventID: "evt1", AttendeesCount: 1})

	select {
	case <-watching.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("client in another room received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestStoppedHubDoesNotBlockClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	client := &Client{Send: make(chan []byte, 1), EventID: "evt1"}

	released := make(chan struct{})
	go func() {
		hub.addClient(client)
		hub.removeClient(client)
		hub.BroadcastCounters(CounterUpdate{Action: "like", EventID: "evt1"})
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(1 * time.Second):
		t.Fatal("client goroutine blocked on a stopped hub")
	}
}
