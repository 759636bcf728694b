package ws

import (
	"log"

	"github.com/gofiber/contrib/websocket"
)

// Subscription attaches a connection to one user's room. Each session's sync
// listener publishes into its own room, so a connection only ever receives
// its own user's snapshot updates.
type Subscription struct {
	Conn *websocket.Conn
	User string
}

type userMessage struct {
	user    string
	payload []byte
}

type Hub struct {
	Register   chan Subscription
	Unregister chan *websocket.Conn

	rooms   map[string]map[*websocket.Conn]bool
	users   map[*websocket.Conn]string
	publish chan userMessage
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan Subscription),
		Unregister: make(chan *websocket.Conn),
		rooms:      make(map[string]map[*websocket.Conn]bool),
		users:      make(map[*websocket.Conn]string),
		publish:    make(chan userMessage, 64),
	}
}

// Publish queues a message for every connection in the user's room.
func (h *Hub) Publish(user string, payload []byte) {
	h.publish <- userMessage{user: user, payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.Register:
			if h.rooms[sub.User] == nil {
				h.rooms[sub.User] = make(map[*websocket.Conn]bool)
			}
			h.rooms[sub.User][sub.Conn] = true
			h.users[sub.Conn] = sub.User
			log.Printf("ws: client connected for %s", sub.User)

		case conn := <-h.Unregister:
			h.drop(conn)

		case msg := <-h.publish:
			for conn := range h.rooms[msg.user] {
				if err := conn.WriteMessage(websocket.TextMessage, msg.payload); err != nil {
					h.drop(conn)
				}
			}
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	user, ok := h.users[conn]
	if !ok {
		return
	}
	delete(h.users, conn)
	delete(h.rooms[user], conn)
	if len(h.rooms[user]) == 0 {
		delete(h.rooms, user)
	}
	conn.Close()
}
