package transport

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	outboxSize    = 256
	pingInterval  = 30 * time.Second
	writeDeadline = 10 * time.Second
	readDeadline  = time.Minute
)

// Conn wraps one websocket with a buffered outbox. All writes go
// through the write pump; gorilla connections allow one writer only.
type Conn struct {
	id        string
	socket    *websocket.Conn
	outbox    chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func NewConn(id string, socket *websocket.Conn) *Conn {
	socket.SetReadDeadline(time.Now().Add(readDeadline))
	socket.SetPongHandler(func(string) error {
		socket.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})
	return &Conn{
		id:     id,
		socket: socket,
		outbox: make(chan []byte, outboxSize),
		closed: make(chan struct{}),
	}
}

func (c *Conn) ID() string {
	return c.id
}

// Send queues data for the write pump. A full outbox drops the message
// rather than blocking the sender.
func (c *Conn) Send(data []byte) bool {
	select {
	case c.outbox <- data:
		return true
	case <-c.closed:
		return false
	default:
		return false
	}
}

func (c *Conn) Read() ([]byte, error) {
	_, p, err := c.socket.ReadMessage()
	return p, err
}

// Close sends a normal-closure frame and tears the socket down.
func (c *Conn) Close(reason string) {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
		c.socket.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason))
		c.socket.Close()
	})
}

// WritePump drains the outbox and keeps the connection alive with
// pings. It exits when the outbox producer closes the connection or a
// write fails.
func (c *Conn) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.outbox:
			c.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.socket.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.socket.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.socket.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.closed:
			return
		}
	}
}
