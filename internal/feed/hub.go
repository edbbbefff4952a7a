// Package feed pushes entity-change events to connected dashboard
// sessions so every open view can recompute from a fresh snapshot.
package feed

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 512
	sendBuffer = 256
)

// Event tells a dashboard session which entity changed. Payloads stay
// small: sessions re-fetch the data they care about.
type Event struct {
	Entity string    `json:"entity"`
	Action string    `json:"action"`
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
}

// session is one connected dashboard client. All frames go out through the
// send channel so a single goroutine owns the connection's write side.
type session struct {
	conn *websocket.Conn
	send chan Event
}

type Hub struct {
	mu       sync.RWMutex
	sessions map[*session]bool
}

func NewHub() *Hub {
	return &Hub{
		sessions: make(map[*session]bool),
	}
}

func (h *Hub) register(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sessions[s] = true
}

func (h *Hub) unregister(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.sessions[s]; exists {
		delete(h.sessions, s)
		close(s.send)
	}
}

// Publish satisfies the modules' Broadcaster interfaces.
func (h *Hub) Publish(entity, action, id string) {
	h.Broadcast(Event{Entity: entity, Action: action, ID: id, At: time.Now()})
}

// Broadcast queues the event for every session. A session whose buffer is
// full is too far behind and the event is skipped for it.
func (h *Hub) Broadcast(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.sessions {
		select {
		case s.send <- e:
		default:
		}
	}
}

// ServeSession registers the connection and blocks until the peer goes
// away. The read loop only consumes control frames; the feed is
// one-directional.
func (h *Hub) ServeSession(conn *websocket.Conn) {
	s := &session{
		conn: conn,
		send: make(chan Event, sendBuffer),
	}
	h.register(s)
	go s.writePump()

	defer h.unregister(s)

	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump is the session's only writer. It drains the send channel and
// keeps the connection alive with pings; on any error the connection is
// closed, which also ends the read loop.
func (s *session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case e, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteJSON(e); err != nil {
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.sessions {
		delete(h.sessions, s)
		close(s.send)
	}
}
