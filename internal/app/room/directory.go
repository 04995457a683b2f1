/*
Package room contains the room directory.

This file defines the Directory struct, which owns all room and user record
operations: uniqueness-seeking room creation, exact-match lookup, join/rejoin,
and realtime connection attach/detach.
*/
package room

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"picnicbox/internal/pkg/errs"
	"picnicbox/internal/pkg/logx"
	"picnicbox/internal/pkg/randx"
)

// CreateAttempts bounds the generate-and-insert retry loop during room creation.
// The bound is on attempts, not time, so a crowded code space cannot loop forever.
const CreateAttempts = 100

// Directory owns Room and User records and exposes the create/find/update
// operations used by the request gateway and the membership coordinator.
type Directory struct {
	store Store

	// generate produces candidate room codes. Overridable in tests.
	generate func() (string, error)

	logger zerolog.Logger
}

// NewDirectory constructs a Directory backed by the given store.
func NewDirectory(store Store) *Directory {
	return &Directory{
		store:    store,
		generate: randx.RoomCode,
		logger:   logx.Logger().With().Str("component", "Directory").Logger(),
	}
}

// CreateRoom generates candidate codes until one inserts cleanly, then persists a
// new room with the creator as sole member and leader. It returns the new room
// code and the creator's user id.
//
// A unique-constraint violation from the store is the retry trigger: two
// concurrent creates drawing the same candidate cannot both insert, the loser
// simply draws again. Exhausting CreateAttempts yields ErrCodeSpaceExhausted.
func (d *Directory) CreateRoom(ctx context.Context, leaderName string) (string, string, *errs.CustomError) {
	for attempt := 1; attempt <= CreateAttempts; attempt++ {
		code, err := d.generate()
		if err != nil {
			d.logger.Error().Err(err).Msg("Room code generation failed.")
			return "", "", errs.NewError(errs.ErrUnknown, err)
		}

		creator := User{
			ID:   randx.UserID(),
			Name: leaderName,
		}

		rm := &Room{
			Code:     code,
			LeaderID: creator.ID,
			Users:    []User{creator},
		}

		err = d.store.InsertRoom(ctx, rm)
		if errors.Is(err, ErrCodeTaken) {
			d.logger.Debug().
				Str("room_code", code).
				Int("attempt", attempt).
				Msg("Room code collision, drawing another.")
			continue
		}
		if err != nil {
			d.logger.Error().Err(err).Str("room_code", code).Msg("Failed to insert new room.")
			return "", "", errs.NewError(errs.ErrUnknown, err)
		}

		d.logger.Info().
			Str("room_code", code).
			Str("leader_id", creator.ID).
			Int("attempts", attempt).
			Msg("Room created.")

		return code, creator.ID, nil
	}

	d.logger.Error().Int("attempts", CreateAttempts).Msg("Could not find a free room code.")
	return "", "", errs.NewError(errs.ErrCodeSpaceExhausted)
}

// FindRoom performs an exact-match lookup by room code. Zero matches is a normal
// not-found; more than one match violates the code uniqueness invariant and is
// surfaced as an integrity error, never resolved by picking one.
func (d *Directory) FindRoom(ctx context.Context, code string) (*Room, *errs.CustomError) {
	rooms, err := d.store.FindRoomsByCode(ctx, code)
	if err != nil {
		d.logger.Error().Err(err).Str("room_code", code).Msg("Room lookup failed.")
		return nil, errs.NewError(errs.ErrUnknown, err)
	}

	switch len(rooms) {
	case 0:
		return nil, errs.NewError(errs.ErrRoomNotFound, code)
	case 1:
		return &rooms[0], nil
	default:
		d.logger.Error().
			Str("room_code", code).
			Int("matches", len(rooms)).
			Msg("Multiple rooms share one code.")
		return nil, errs.NewError(errs.ErrRoomIntegrity)
	}
}

// JoinRoom adds the named user to the room, or treats the call as a rejoin when
// existingUserID identifies a current member: the stored name is updated if it
// changed and the existing id is returned, so repeated joins never duplicate a
// roster entry.
func (d *Directory) JoinRoom(ctx context.Context, code, name, existingUserID string) (string, string, *errs.CustomError) {
	rm, customErr := d.FindRoom(ctx, code)
	if customErr != nil {
		return "", "", customErr
	}

	if existingUserID != "" {
		if member := rm.UserByID(existingUserID); member != nil {
			if member.Name != name {
				if err := d.store.RenameUser(ctx, code, existingUserID, name); err != nil {
					d.logger.Error().Err(err).
						Str("room_code", code).
						Str("user_id", existingUserID).
						Msg("Failed to rename rejoining user.")
					return "", "", errs.NewError(errs.ErrUnknown, err)
				}
			}

			d.logger.Info().
				Str("room_code", code).
				Str("user_id", existingUserID).
				Msg("User rejoined room.")

			return code, existingUserID, nil
		}
	}

	newUser := User{
		ID:   randx.UserID(),
		Name: name,
	}

	if err := d.store.AppendUser(ctx, code, newUser); err != nil {
		d.logger.Error().Err(err).Str("room_code", code).Msg("Failed to append user to room.")
		return "", "", errs.NewError(errs.ErrUnknown, err)
	}

	d.logger.Info().
		Str("room_code", code).
		Str("user_id", newUser.ID).
		Msg("User joined room.")

	return code, newUser.ID, nil
}

// AttachConnection records connID as the user's live realtime connection.
// Missing rooms or users are silent no-ops so retried or stale announces stay
// idempotent and order-independent.
func (d *Directory) AttachConnection(ctx context.Context, code, userID, connID string) error {
	return d.store.SetConnection(ctx, code, userID, connID)
}

// DetachConnection clears connID from whichever user holds it and returns that
// user's room code. Returns "" when the connection was never attached or was
// already detached.
func (d *Directory) DetachConnection(ctx context.Context, connID string) (string, error) {
	return d.store.ClearConnection(ctx, connID)
}
