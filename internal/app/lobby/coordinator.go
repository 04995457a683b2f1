/*
Package lobby bridges realtime connections to the room directory.

This file defines the Coordinator, which translates connection lifecycle events
(announce, drop) into directory updates and roster broadcasts.
*/
package lobby

import (
	"context"

	"github.com/rs/zerolog"

	"picnicbox/internal/app/room"
	"picnicbox/internal/pkg/errs"
	"picnicbox/internal/pkg/logx"
)

// Directory is the subset of room directory operations the coordinator needs.
type Directory interface {
	FindRoom(ctx context.Context, code string) (*room.Room, *errs.CustomError)
	AttachConnection(ctx context.Context, code, userID, connID string) error
	DetachConnection(ctx context.Context, connID string) (string, error)
}

// Coordinator maps realtime connections to (room, user) pairs and recomputes the
// roster view broadcast to the room on every membership change.
//
// Its multi-step sequences (attach, re-read the room, publish) are deliberately
// not transactional: a concurrent join or leave between the read and the publish
// can produce a momentarily stale broadcast, and the next membership event
// re-synchronizes the roster.
type Coordinator struct {
	dir    Directory
	hub    Broadcaster
	logger zerolog.Logger
}

// NewCoordinator constructs a Coordinator over the given directory and broadcaster.
func NewCoordinator(dir Directory, hub Broadcaster) *Coordinator {
	return &Coordinator{
		dir:    dir,
		hub:    hub,
		logger: logx.Logger().With().Str("component", "Coordinator").Logger(),
	}
}

// HandleAnnounce processes a client's identity announcement on an established
// connection. Announces missing either field are ignored without any state
// change, since clients may announce before their stored identity has loaded.
//
// A connection already attached to a different room is detached from it first
// (detach-then-reattach), and the old room's roster is republished.
func (c *Coordinator) HandleAnnounce(ctx context.Context, sub Subscriber, code, userID string) {
	if code == "" || userID == "" {
		c.logger.Debug().
			Str("conn_id", sub.ID()).
			Str("room_code", code).
			Msg("Ignoring incomplete announce.")
		return
	}

	previous := c.hub.Subscribe(sub, code)
	if previous != "" && previous != code {
		owner, err := c.dir.DetachConnection(ctx, sub.ID())
		if err != nil {
			c.logger.Warn().Err(err).
				Str("conn_id", sub.ID()).
				Msg("Detach during room switch failed.")
		} else if owner != "" {
			c.publishRoster(ctx, owner)
		}
	}

	if err := c.dir.AttachConnection(ctx, code, userID, sub.ID()); err != nil {
		// transient store failure; the roster read below reflects whatever state
		// the store has, and a later event catches up
		c.logger.Warn().Err(err).
			Str("conn_id", sub.ID()).
			Str("room_code", code).
			Str("user_id", userID).
			Msg("Connection attach failed.")
	}

	c.publishRoster(ctx, code)
}

// HandleDisconnect processes a transport-level connection drop. If the connection
// belonged to no room, nothing happens; otherwise the room it belonged to gets a
// fresh roster broadcast with the effective leader recomputed.
func (c *Coordinator) HandleDisconnect(ctx context.Context, connID string) {
	c.hub.UnsubscribeAll(connID)

	owner, err := c.dir.DetachConnection(ctx, connID)
	if err != nil {
		c.logger.Warn().Err(err).
			Str("conn_id", connID).
			Msg("Connection detach failed.")
		return
	}

	if owner == "" {
		return
	}

	c.publishRoster(ctx, owner)
}

// publishRoster re-reads the room and broadcasts the active roster and effective
// leader to its subscription group. Lookup failures suppress the broadcast
// instead of propagating: these are transient views, and the next membership
// event heals the roster.
func (c *Coordinator) publishRoster(ctx context.Context, code string) {
	rm, customErr := c.dir.FindRoom(ctx, code)
	if customErr != nil {
		c.logger.Debug().
			Str("room_code", code).
			Int("error_code", customErr.Code).
			Msg("Roster recompute lookup failed, suppressing broadcast.")
		return
	}

	msg := NewRosterUpdate(code, rm.ActiveUsers(), rm.EffectiveLeader())
	c.hub.Publish(code, msg)
}
