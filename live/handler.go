package live

import (
	"log"
	"net/http"

	"fjwuems/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// defaultHub serves every connection; started from main.
var defaultHub = NewHub()

func DefaultHub() *Hub { return defaultHub }

// EventUpdates upgrades the connection and streams counter updates
// for one event. The token comes via query param because browser
// websocket clients cannot set headers.
func EventUpdates(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	userID := ""
	if token := r.URL.Query().Get("token"); token != "" {
		// ValidateJWT expects the Authorization header shape.
		claims, err := middleware.ValidateJWT("Bearer " + token)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}
		userID = claims.UserID
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}

	client := &Client{
		Conn:    conn,
		Send:    make(chan []byte, 256),
		EventID: eventID,
		UserID:  userID,
	}

	defaultHub.addClient(client)
	go writePump(client)
	go readPump(client, defaultHub)
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

// readPump drains the connection so pings and close frames are
// processed. Watchers never send application messages.
func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.removeClient(c)
		c.Conn.Close()
	}()
	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			break
		}
	}
}

// Broadcast pushes counter values through the default hub.
func Broadcast(u CounterUpdate) {
	defaultHub.BroadcastCounters(u)
}
