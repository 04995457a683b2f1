package room

import (
	"context"
	"errors"
)

// ErrCodeTaken is returned by Store.InsertRoom when the room code already exists.
// The directory treats it as the retry trigger during room creation.
var ErrCodeTaken = errors.New("room code already taken")

// Store is the collection-style interface over the external document store.
//
// Each method is a single-document operation: the store guarantees per-document
// atomicity for every call, and no method performs a read-modify-write across
// documents. Multi-step directory sequences built on top of these calls are
// intentionally not transactional (see Directory).
type Store interface {
	// FindRoomsByCode returns every room whose code matches exactly. The slice
	// form lets the caller distinguish "not found" from a uniqueness violation
	// instead of silently picking one document.
	FindRoomsByCode(ctx context.Context, code string) ([]Room, error)

	// InsertRoom persists a new room document. Returns ErrCodeTaken when a room
	// with the same code already exists (unique-constraint insert).
	InsertRoom(ctx context.Context, rm *Room) error

	// AppendUser appends a user to the room's member list, preserving join order.
	// No-op when the room does not exist.
	AppendUser(ctx context.Context, code string, u User) error

	// RenameUser updates the display name of the member with the given id.
	// No-op when the room or user does not exist.
	RenameUser(ctx context.Context, code, userID, name string) error

	// SetConnection records connID as the member's attached realtime connection.
	// No-op when the room or user does not exist.
	SetConnection(ctx context.Context, code, userID, connID string) error

	// ClearConnection detaches connID from whichever member holds it and returns
	// the owning room's code, or "" when no member holds the connection.
	ClearConnection(ctx context.Context, connID string) (string, error)
}
