package transport

import (
	"encoding/json"
	"sync"

	"github.com/deepaksivamani/virtualgames/internal/logger"
)

// Envelope is the one wire frame shape for server-to-client traffic.
type Envelope struct {
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}

// Hub tracks live connections and their room subscriptions. It is the
// game layer's Broadcaster; the game layer only ever sees connection
// ids and room codes.
type Hub struct {
	mu     sync.RWMutex
	conns  map[string]*Conn
	rooms  map[string]map[string]struct{} // room code -> subscribed conn ids
	roomOf map[string]string              // conn id -> room code
}

func NewHub() *Hub {
	return &Hub{
		conns:  make(map[string]*Conn),
		rooms:  make(map[string]map[string]struct{}),
		roomOf: make(map[string]string),
	}
}

func (h *Hub) Register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c.id] = c
}

// Unregister forgets the connection and its subscription. It does not
// close the socket; callers own that.
func (h *Hub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(connID)
}

func (h *Hub) dropLocked(connID string) {
	if code, ok := h.roomOf[connID]; ok {
		if subs := h.rooms[code]; subs != nil {
			delete(subs, connID)
			if len(subs) == 0 {
				delete(h.rooms, code)
			}
		}
		delete(h.roomOf, connID)
	}
	delete(h.conns, connID)
}

// Subscribe points the connection at a room, replacing any previous
// subscription. A connection listens to at most one room.
func (h *Hub) Subscribe(connID, roomCode string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if prev, ok := h.roomOf[connID]; ok && prev != roomCode {
		if subs := h.rooms[prev]; subs != nil {
			delete(subs, connID)
			if len(subs) == 0 {
				delete(h.rooms, prev)
			}
		}
	}

	subs := h.rooms[roomCode]
	if subs == nil {
		subs = make(map[string]struct{})
		h.rooms[roomCode] = subs
	}
	subs[connID] = struct{}{}
	h.roomOf[connID] = roomCode
}

func (h *Hub) Unsubscribe(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if code, ok := h.roomOf[connID]; ok {
		if subs := h.rooms[code]; subs != nil {
			delete(subs, connID)
			if len(subs) == 0 {
				delete(h.rooms, code)
			}
		}
		delete(h.roomOf, connID)
	}
}

// Evict closes a connection and forgets it. Used when a reconnection
// supersedes an older socket for the same player.
func (h *Hub) Evict(connID, reason string) {
	h.mu.Lock()
	c := h.conns[connID]
	h.dropLocked(connID)
	h.mu.Unlock()

	if c != nil {
		c.Close(reason)
	}
}

func encode(event string, payload any) ([]byte, bool) {
	data, err := json.Marshal(Envelope{Event: event, Payload: payload})
	if err != nil {
		logger.Criticalf("[Hub] Failed to encode %s event: %v", event, err)
		return nil, false
	}
	return data, true
}

// ToRoom fans an event out to every subscriber of the room.
func (h *Hub) ToRoom(roomCode, event string, payload any) {
	data, ok := encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.rooms[roomCode]))
	for connID := range h.rooms[roomCode] {
		if c := h.conns[connID]; c != nil {
			targets = append(targets, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if !c.Send(data) {
			logger.Debugf("[Hub] Dropped %s event for slow connection %s", event, c.id)
		}
	}
}

// ToConn sends an event to a single connection, if it is still around.
func (h *Hub) ToConn(connID, event string, payload any) {
	data, ok := encode(event, payload)
	if !ok {
		return
	}

	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()

	if c != nil && !c.Send(data) {
		logger.Debugf("[Hub] Dropped %s event for slow connection %s", event, connID)
	}
}
