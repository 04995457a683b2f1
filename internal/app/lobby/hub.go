/*
Package lobby bridges realtime connections to the room directory.

This file defines the Hub, the single process-wide broadcaster that groups
subscribed connections by room code and fans messages out to them. It lives
behind the Broadcaster interface so a distributed pub/sub could replace it
without touching the Coordinator.
*/
package lobby

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"picnicbox/internal/pkg/logx"
)

// Subscriber is one realtime connection as seen by the Hub.
type Subscriber interface {
	// ID returns the connection identifier.
	ID() string

	// Enqueue offers a marshaled message to the connection's send queue,
	// returning false when the queue is full or the connection is closed.
	Enqueue(message []byte) bool

	// Close releases the connection's send queue. Safe to call more than once.
	Close()
}

// Broadcaster maintains per-room subscription groups over persistent connections.
type Broadcaster interface {
	// Subscribe attaches the connection to a room's broadcast group and returns
	// the room code it was previously subscribed to, or "".
	Subscribe(sub Subscriber, roomCode string) string

	// Publish delivers the message to every connection currently subscribed to
	// the room, at most once per connection.
	Publish(roomCode string, msg Message)

	// UnsubscribeAll removes the connection from any broadcast group.
	UnsubscribeAll(connID string)
}

// subscription pairs a subscriber with the room it is attached to.
type subscription struct {
	sub      Subscriber
	roomCode string
}

// Hub is the in-process Broadcaster. One instance exists per process, created at
// startup and shut down with the server.
type Hub struct {
	// mu protects conns and rooms.
	mu sync.RWMutex

	// conns maps connection id to its current subscription.
	conns map[string]*subscription

	// rooms maps room code to the set of subscribed connections.
	rooms map[string]map[string]Subscriber

	logger zerolog.Logger
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{
		conns:  make(map[string]*subscription),
		rooms:  make(map[string]map[string]Subscriber),
		logger: logx.Logger().With().Str("component", "Hub").Logger(),
	}
}

// Subscribe attaches sub to the room's broadcast group. A connection subscribes
// to at most one room; subscribing again moves it and returns the previous room.
func (h *Hub) Subscribe(sub Subscriber, roomCode string) string {
	h.mu.Lock()
	defer h.mu.Unlock()

	previous := ""
	if existing, ok := h.conns[sub.ID()]; ok {
		previous = existing.roomCode
		h.removeLocked(sub.ID(), previous)
	}

	h.conns[sub.ID()] = &subscription{sub: sub, roomCode: roomCode}

	group, ok := h.rooms[roomCode]
	if !ok {
		group = make(map[string]Subscriber)
		h.rooms[roomCode] = group
	}
	group[sub.ID()] = sub

	h.logger.Debug().
		Str("conn_id", sub.ID()).
		Str("room_code", roomCode).
		Int("group_size", len(group)).
		Msg("Connection subscribed.")

	return previous
}

// Publish marshals the message once and enqueues it to every subscriber of the
// room. Connections whose queue is full are dropped from the hub; delivery is
// at-most-once and best-effort.
func (h *Hub) Publish(roomCode string, msg Message) {
	messageBytes, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error().Err(err).
			Str("room_code", roomCode).
			Str("message_id", msg.ID).
			Msg("Error marshaling message for broadcast.")
		return
	}

	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.rooms[roomCode]))
	for _, sub := range h.rooms[roomCode] {
		targets = append(targets, sub)
	}
	h.mu.RUnlock()

	for _, sub := range targets {
		if !sub.Enqueue(messageBytes) {
			h.logger.Warn().
				Str("conn_id", sub.ID()).
				Str("room_code", roomCode).
				Msg("Subscriber queue full or closed, dropping from hub.")

			h.UnsubscribeAll(sub.ID())
			sub.Close()
		}
	}
}

// UnsubscribeAll removes the connection from its broadcast group, if any.
func (h *Hub) UnsubscribeAll(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	existing, ok := h.conns[connID]
	if !ok {
		return
	}

	h.removeLocked(connID, existing.roomCode)
	delete(h.conns, connID)

	h.logger.Debug().
		Str("conn_id", connID).
		Str("room_code", existing.roomCode).
		Msg("Connection unsubscribed.")
}

// removeLocked drops the connection from a room group. Caller holds mu.
func (h *Hub) removeLocked(connID, roomCode string) {
	group, ok := h.rooms[roomCode]
	if !ok {
		return
	}

	delete(group, connID)
	if len(group) == 0 {
		delete(h.rooms, roomCode)
	}
}

// Shutdown closes every subscribed connection and clears the hub.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Info().Int("connections", len(h.conns)).Msg("Shutting down hub.")

	for _, entry := range h.conns {
		entry.sub.Close()
	}

	h.conns = make(map[string]*subscription)
	h.rooms = make(map[string]map[string]Subscriber)
}
