/*
Package lobby bridges realtime connections to the room directory: it groups
connections into per-room broadcast groups, tracks announce/drop lifecycle, and
fans roster snapshots out to every connection in a room.

This file defines the tagged message schemas exchanged over the realtime channel.
Payload shapes are explicit structs validated at the boundary rather than free-form
objects.
*/
package lobby

import (
	"encoding/json"
	"time"

	"picnicbox/internal/app/room"
	"picnicbox/internal/pkg/randx"
)

// MessageType tags every realtime message with its schema.
type MessageType string

const (
	// TypeAnnounce is the client-to-server message binding an established
	// connection to a (room, user) pair.
	TypeAnnounce MessageType = "ANNOUNCE"

	// TypeRosterUpdate is the server-to-client roster snapshot pushed to every
	// connection subscribed to a room.
	TypeRosterUpdate MessageType = "ROSTER_UPDATE"
)

// Envelope is the outer shape of every inbound realtime message.
type Envelope struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// AnnouncePayload carries the identity a client announces after connecting.
// Both fields are required; an announce missing either is ignored, which
// suppresses premature announcements sent before the client loaded its identity.
type AnnouncePayload struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// RosterEntry is one user as shown to clients in a roster snapshot.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RosterUpdatePayload is the roster snapshot broadcast on every membership change.
// Leader is null when nobody in the room is connected.
type RosterUpdatePayload struct {
	Users  []RosterEntry `json:"users"`
	Leader *RosterEntry  `json:"leader"`
}

// Message is the outbound wire structure for server-to-client messages.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Room      string      `json:"room"`
	Timestamp int64       `json:"timestamp"`
	Payload   any         `json:"payload"`
}

// NewMessage builds an outbound message with a fresh id and timestamp.
func NewMessage(msgType MessageType, roomCode string, payload any) Message {
	return Message{
		ID:        randx.MessageID(),
		Type:      msgType,
		Room:      roomCode,
		Timestamp: time.Now().UnixMilli(),
		Payload:   payload,
	}
}

// NewRosterUpdate builds the roster snapshot message for a room from its active
// users and effective leader. Users is always a JSON array, never null.
func NewRosterUpdate(roomCode string, active []room.User, leader *room.User) Message {
	entries := make([]RosterEntry, 0, len(active))
	for _, u := range active {
		entries = append(entries, RosterEntry{ID: u.ID, Name: u.Name})
	}

	payload := RosterUpdatePayload{Users: entries}
	if leader != nil {
		payload.Leader = &RosterEntry{ID: leader.ID, Name: leader.Name}
	}

	return NewMessage(TypeRosterUpdate, roomCode, payload)
}
