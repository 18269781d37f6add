package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mcoot/wordduel-go/internal/model"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong from the peer
	pongWait = 60 * time.Second

	// Time between keepalive pings, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Largest message accepted from a peer
	maxMessageSize = 16 * 1024

	// Buffer size for outgoing messages
	sendBufferSize = 256
)

// Client is one WebSocket connection. Its id is also the player id it
// plays under.
type Client struct {
	id          model.PlayerID
	conn        *websocket.Conn
	send        chan []byte
	done        chan struct{}
	closeOnce   sync.Once
	connectedAt time.Time
	logger      *slog.Logger
}

// NewClient wraps an upgraded connection
func NewClient(id model.PlayerID, conn *websocket.Conn, connectedAt time.Time, logger *slog.Logger) *Client {
	return &Client{
		id:          id,
		conn:        conn,
		send:        make(chan []byte, sendBufferSize),
		done:        make(chan struct{}),
		connectedAt: connectedAt,
		logger:      logger.With(slog.String("player_id", string(id))),
	}
}

// ID returns the client's player id
func (c *Client) ID() model.PlayerID {
	return c.id
}

// Send queues a message without blocking. It reports false if the
// message was dropped. A client whose buffer is full has missed state it
// cannot recover, so it is closed.
func (c *Client) Send(msg ServerMessage) bool {
	data, err := encode(msg)
	if err != nil {
		c.logger.Error("failed to encode message",
			slog.String("type", string(msg.Type)),
			slog.String("error", err.Error()),
		)
		return false
	}
	return c.sendRaw(data)
}

func (c *Client) sendRaw(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		c.logger.Error("ws message dropped - client buffer full, closing client")
		c.Close()
		return false
	}
}

// Close stops the write pump. The send channel is never closed, so late
// sends are safe.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// writePump drains the send buffer to the connection and keeps it alive
// with pings. It owns all writes to conn.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			// Flush what is already queued, then say goodbye
			for {
				select {
				case message := <-c.send:
					_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
						return
					}
				default:
					_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
					return
				}
			}
		}
	}
}

// readPump delivers each text frame to handle until the peer goes away
func (c *Client) readPump(handle func(data []byte)) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("ws connection closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}
		handle(data)
	}
}
