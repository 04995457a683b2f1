/*
Package room contains the room directory: the document model for rooms and their
users, the collection-style store interface backing it, and the directory
operations that create, find, and mutate rooms.

This file defines the Room and User documents and the pure roster computations
derived from them.
*/
package room

// User represents one participant recorded inside a Room document.
type User struct {
	// ID is the opaque unique identifier generated server-side on first creation.
	// Clients persist it as a durable token and resubmit it on rejoin.
	ID string `json:"id"`

	// Name is the client-supplied display name, mutable by resubmission.
	Name string `json:"name"`

	// ConnectionID identifies the currently-attached realtime connection. Empty
	// means not connected; a user is active in the room iff this is non-empty.
	ConnectionID string `json:"connectionId,omitempty"`
}

// Room is the single shared mutable document of the system. One Room exists per
// active code, and every join/leave/identity event mutates it through
// single-document store updates.
type Room struct {
	// Code is the 4-letter uppercase room code. Immutable once assigned.
	Code string `json:"code"`

	// LeaderID references the originally assigned leader. It is never rewritten
	// on disconnect; the effective leader is recomputed from liveness instead.
	LeaderID string `json:"leaderId"`

	// Users holds the members in join order, unique by ID.
	Users []User `json:"users"`
}

// UserByID returns a pointer to the member with the given id, or nil.
func (r *Room) UserByID(id string) *User {
	for i := range r.Users {
		if r.Users[i].ID == id {
			return &r.Users[i]
		}
	}
	return nil
}

// ActiveUsers returns the members currently attached to a realtime connection,
// preserving the stored join order.
func (r *Room) ActiveUsers() []User {
	active := make([]User, 0, len(r.Users))

	for _, u := range r.Users {
		if u.ConnectionID != "" {
			active = append(active, u)
		}
	}

	return active
}

// EffectiveLeader returns the user currently treated as leader: the stored leader
// when it is active, otherwise the first active member in stored order. Returns
// nil when nobody is active. The stored LeaderID is left untouched, so the
// original leader regains leadership on reconnect.
func (r *Room) EffectiveLeader() *User {
	active := r.ActiveUsers()
	if len(active) == 0 {
		return nil
	}

	for i := range active {
		if active[i].ID == r.LeaderID {
			return &active[i]
		}
	}

	return &active[0]
}
