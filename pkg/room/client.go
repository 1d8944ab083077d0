package room

import (
	"fmt"

	"github.com/gorilla/websocket"
)

// Client is a websocket subscriber to a room's snapshots
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	host *Host
}

// NewClient returns a new client for the connection
func NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Conn:  conn,
		send:  make(chan interface{}, 256),
		Close: make(chan string),
	}
}

// Send queues a message for delivery to the client. It returns false if
// the client's buffer is full.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel of queued messages
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// String returns a traceable identifier for the connection
func (c *Client) String() string {
	if c.Conn == nil {
		return "client"
	}

	return fmt.Sprintf("client:%s", c.Conn.RemoteAddr())
}
