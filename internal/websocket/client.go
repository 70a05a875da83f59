package websocket

import (
	"context"
	"time"

	ws "github.com/coder/websocket"
)

const (
	sendBufferSize = 16
	pingInterval   = 30 * time.Second
)

// Client is a single WebSocket connection, bound to one church. The hub only
// delivers messages for that church to this client.
type Client struct {
	hub      *Hub
	conn     *ws.Conn
	churchID int64
	send     chan []byte
}

func NewClient(hub *Hub, conn *ws.Conn, churchID int64) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		churchID: churchID,
		send:     make(chan []byte, sendBufferSize),
	}
}

// Run registers the client and pumps messages until the connection closes,
// then unregisters and tears the connection down.
func (c *Client) Run(ctx context.Context) {
	c.hub.Register(c)
	defer c.hub.Unregister(c)
	defer c.conn.CloseNow()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go c.writePump(ctx)

	// Browsers never send application data on this socket; reading here just
	// notices the close.
	for {
		if _, _, err := c.conn.Read(ctx); err != nil {
			return
		}
	}
}

// writePump drains the send channel onto the wire and pings periodically to
// detect stale connections.
func (c *Client) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				// Hub closed the channel — connection is done
				return
			}
			if err := c.conn.Write(ctx, ws.MessageText, msg); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.conn.Ping(ctx); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}
