package live

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is a single websocket subscriber watching one event.
type Client struct {
	Conn    *websocket.Conn
	Send    chan []byte
	EventID string
	UserID  string
}

type broadcastMsg struct {
	EventID string
	Data    []byte
}

// Hub fans counter updates out to every client watching an event.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.EventID] == nil {
				h.rooms[c.EventID] = make(map[*Client]bool)
			}
			h.rooms[c.EventID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.EventID]; conns != nil {
				if conns[c] {
					delete(conns, c)
					close(c.Send)
				}
				if len(conns) == 0 {
					delete(h.rooms, c.EventID)
				}
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.EventID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.EventID], c)
				}
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// addClient and removeClient guard the channel sends against a stopped
// hub so connection goroutines cannot block forever after Stop.
func (h *Hub) addClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) removeClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// CounterUpdate is the payload pushed to watchers whenever an
// event's engagement counters change.
type CounterUpdate struct {
	Action         string `json:"action"`
	EventID        string `json:"eventid"`
	LikesCount     int64  `json:"likesCount"`
	AttendeesCount int64  `json:"attendeesCount"`
	CommentsCount  int64  `json:"commentsCount"`
	SharesCount    int64  `json:"sharesCount"`
}

// BroadcastCounters publishes fresh counter values to every client
// subscribed to the event. Safe to call from any goroutine.
func (h *Hub) BroadcastCounters(u CounterUpdate) {
	data, err := json.Marshal(u)
	if err != nil {
		log.Println("counter marshal:", err)
		return
	}
	select {
	case h.broadcast <- broadcastMsg{EventID: u.EventID, Data: data}:
	case <-h.done:
	}
}
