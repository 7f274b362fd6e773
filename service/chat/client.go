package chat

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/gorilla/websocket"
)

const writeDeadline = 5 * time.Second

var (
	errClientClosed = errors.New("client closed")
	errSendFull     = errors.New("send queue full")
)

// Client represents one user session connected to this node. A single user
// may hold several clients (several tabs/devices), each maintained
// separately.
type Client struct {
	ConnID string          // unique per physical connection
	UserID string          // empty for anonymous (never-registered) sockets
	WS     *websocket.Conn // nil in tests

	mu     sync.Mutex
	closed bool
	send   chan []byte // drained by a single writer goroutine
}

func NewClient(connID, userID string, ws *websocket.Conn, sendQueueSize int) *Client {
	return &Client{
		ConnID: connID,
		UserID: userID,
		WS:     ws,
		send:   make(chan []byte, sendQueueSize),
	}
}

// Enqueue hands a payload to the writer goroutine. It never blocks: a full
// queue or a closed client is reported as an error for the caller to log
// and skip.
func (c *Client) Enqueue(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return errClientClosed
	}
	select {
	case c.send <- payload:
		return nil
	default:
		return errSendFull
	}
}

// Close shuts the send queue down. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	c.mu.Unlock()
}

// writePump drains the send queue onto the socket. Frames for one client
// go out in enqueue order. Runs until the queue is closed or a write fails.
func (c *Client) writePump() {
	defer func() {
		_ = c.WS.Close()
	}()
	for payload := range c.send {
		if err := c.WS.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
			return
		}
		if err := c.WS.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
	_ = c.WS.WriteMessage(websocket.CloseMessage, []byte{})
}
