/*
Package lobby bridges realtime connections to the room directory.

This file defines the Client struct, representing one active WebSocket
connection. It runs the read/write pumps, dispatches inbound announces to the
Coordinator, and reports the transport-level drop when the read side ends.
*/
package lobby

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"picnicbox/internal/pkg/logx"
)

const (
	// timeout for writing a message to the WebSocket connection.
	writeWait = 10 * time.Second

	// maximum time the server waits for a Pong from the client.
	pongWait = 60 * time.Second

	// frequency at which the server sends Ping messages.
	pingPeriod = (pongWait * 9) / 10

	// maximum allowed size in bytes of an inbound client message.
	maxMessageSize = 4096

	// sendQueueSize is the per-connection outbound message buffer.
	sendQueueSize = 64
)

// Client represents one active WebSocket connection. It implements Subscriber so
// the Hub can deliver roster broadcasts to it.
type Client struct {
	// id is the server-generated connection identifier.
	id string

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// coordinator receives this connection's announce and drop events.
	coordinator *Coordinator

	// send buffers messages waiting to be written to the connection.
	send chan []byte

	// mu guards closed; Enqueue and Close race with each other.
	mu     sync.Mutex
	closed bool

	logger zerolog.Logger
}

// NewClient constructs a Client for an upgraded WebSocket connection.
func NewClient(conn *websocket.Conn, connID string, coordinator *Coordinator) *Client {
	clientLogger := logx.Logger().With().
		Str("component", "Client").
		Str("conn_id", connID).
		Logger()

	return &Client{
		id:          connID,
		conn:        conn,
		coordinator: coordinator,
		send:        make(chan []byte, sendQueueSize),
		logger:      clientLogger,
	}
}

// ID returns the connection identifier.
func (c *Client) ID() string {
	return c.id
}

// Enqueue offers a marshaled message to the send queue. Returns false when the
// queue is full or the client is closed; the hub drops the subscriber then.
func (c *Client) Enqueue(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// Close shuts the send queue, which ends the write pump. Safe to call repeatedly.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true
	close(c.send)
}

// ReadPump reads messages from the WebSocket connection until it drops. It
// handles heartbeat Pongs and dispatches inbound messages, then reports the
// disconnect to the coordinator on exit.
func (c *Client) ReadPump() {
	defer c.cleanupOnDisconnect()

	c.conn.SetReadLimit(maxMessageSize)

	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.logger.Error().Err(err).Msg("Failed to set read deadline")
		return
	}

	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, messageBytes, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Info().Err(err).Msg("Error reading message (client close/going away)")
			}
			break
		}

		c.processInboundMessage(messageBytes)
	}
}

// cleanupOnDisconnect reports the drop to the coordinator and closes the
// connection when the read pump ends.
func (c *Client) cleanupOnDisconnect() {
	c.logger.Info().Msg("Client connection cleanup starting.")

	c.coordinator.HandleDisconnect(context.Background(), c.id)

	c.Close()

	if err := c.conn.Close(); err != nil {
		c.logger.Debug().Err(err).Msg("Client connection close error")
	}
}

// processInboundMessage validates and dispatches one raw client message.
// Within one connection, announce-then-drop ordering is preserved because both
// are handled on this read goroutine.
func (c *Client) processInboundMessage(messageBytes []byte) {
	var envelope Envelope
	if err := json.Unmarshal(messageBytes, &envelope); err != nil {
		c.logger.Warn().Err(err).Msg("Client sent invalid JSON")
		return
	}

	switch envelope.Type {
	case TypeAnnounce:
		var payload AnnouncePayload
		if err := json.Unmarshal(envelope.Payload, &payload); err != nil {
			c.logger.Warn().Err(err).Msg("Client sent invalid ANNOUNCE payload")
			return
		}

		c.coordinator.HandleAnnounce(context.Background(), c, payload.Code, payload.UserID)

	default:
		c.logger.Warn().Str("msg_type", string(envelope.Type)).Msg("Client sent unsupported message type")
	}
}

// WritePump writes queued messages and periodic Pings to the WebSocket
// connection. It exits when the send queue closes or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()

		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Client connection close error in WritePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.logger.Debug().Err(err).Msg("Error writing close message")
				}
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error().Err(err).Msg("Error writing message")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.Error().Err(err).Msg("Error writing ping")
				return
			}
		}
	}
}
