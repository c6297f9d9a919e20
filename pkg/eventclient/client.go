// Package eventclient consumes a visage event feed over websocket,
// for host applications running in another process.
package eventclient

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/visagekit/visage/internal/log"
	"github.com/visagekit/visage/pkg/facestate"
)

// ErrAlreadyConnected is returned when Connect is called twice.
var ErrAlreadyConnected = errors.New("eventclient: already connected")

// frame mirrors the feed's wire format.
type frame struct {
	Event string `json:"event"`
	Time  string `json:"time"`
}

// Client subscribes to a running feed, for example
// ws://localhost:8080/ws/events.
type Client struct {
	url string

	mu      sync.Mutex
	conn    *websocket.Conn
	done    chan struct{}
	onEvent func(facestate.Event)
	onError func(error)
}

// New creates a client for the feed at url.
func New(url string) *Client {
	return &Client{url: url}
}

// OnEvent sets the callback for received events. Set before Connect.
// The callback runs on the client's read goroutine.
func (c *Client) OnEvent(fn func(facestate.Event)) {
	c.mu.Lock()
	c.onEvent = fn
	c.mu.Unlock()
}

// OnError sets the callback for read failures after a successful
// connect. The client stops reading after the first failure.
func (c *Client) OnError(fn func(error)) {
	c.mu.Lock()
	c.onError = fn
	c.mu.Unlock()
}

// Connect dials the feed and starts delivering events.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return ErrAlreadyConnected
	}

	conn, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		return err
	}
	c.conn = conn
	c.done = make(chan struct{})

	go c.readLoop(conn)
	return nil
}

// Close tears down the connection and waits for the read loop.
func (c *Client) Close() error {
	c.mu.Lock()
	conn, done := c.conn, c.done
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	<-done
	return err
}

func (c *Client) readLoop(conn *websocket.Conn) {
	defer close(c.done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			onError, closed := c.onError, c.conn == nil
			c.mu.Unlock()
			if !closed && onError != nil {
				onError(err)
			}
			return
		}

		var f frame
		if err := json.Unmarshal(payload, &f); err != nil {
			log.Warn("bad feed frame", "error", err)
			continue
		}

		c.mu.Lock()
		onEvent := c.onEvent
		c.mu.Unlock()
		if onEvent != nil {
			onEvent(facestate.Event(f.Event))
		}
	}
}
