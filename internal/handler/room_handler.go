/*
Package handler provides the HTTP handlers and routing setup for the picnicbox
lobby service.

This file contains the room handlers: create, existence check, and join.
*/
package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"picnicbox/internal/pkg/errs"
	"picnicbox/internal/pkg/randx"
	"picnicbox/internal/pkg/req"
	"picnicbox/internal/pkg/resp"
)

// CreateRoomInput is the request body for room creation.
type CreateRoomInput struct {
	// Name is the creator's display name; the creator becomes the room leader.
	Name string `json:"name"`
}

// JoinRoomInput is the request body for joining a room.
type JoinRoomInput struct {
	// Name is the joining user's display name.
	Name string `json:"name"`

	// UserID is the durable identity token from a previous visit, if any.
	// Supplying a current member's id makes the join an idempotent rejoin.
	UserID string `json:"userId,omitempty"`
}

// RoomMembershipOutput is the response body for create and join.
type RoomMembershipOutput struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

// HandleCreateRoom creates a new room with the caller as sole member and leader.
func HandleCreateRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input CreateRoomInput

		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		name := strings.TrimSpace(input.Name)
		if !randx.IsValidName(name) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		code, userID, customErr := deps.Directory.CreateRoom(r.Context(), name)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondCreated(w, r, RoomMembershipOutput{
			Code:   code,
			UserID: userID,
		})
	}
}

// HandleCheckRoom reports whether a room exists: 200 with an empty body when it
// does, 404 with an empty body when it does not.
func HandleCheckRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(chi.URLParam(r, "code"))

		if !randx.IsValidRoomCode(code) {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		_, customErr := deps.Directory.FindRoom(r.Context(), code)
		if customErr != nil {
			if customErr.Code == errs.ErrRoomNotFound {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			resp.RespondError(w, r, customErr)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// HandleJoinRoom adds the caller to an existing room, or rejoins an existing
// member when the supplied user id matches one.
func HandleJoinRoom(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := strings.ToUpper(chi.URLParam(r, "code"))

		if !randx.IsValidRoomCode(code) {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotFound, code))
			return
		}

		var input JoinRoomInput
		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		name := strings.TrimSpace(input.Name)
		if !randx.IsValidName(name) {
			resp.RespondError(w, r, errs.NewError(errs.ErrInvalidParams))
			return
		}

		joinedCode, userID, customErr := deps.Directory.JoinRoom(r.Context(), code, name, input.UserID)
		if customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondSuccess(w, r, RoomMembershipOutput{
			Code:   joinedCode,
			UserID: userID,
		})
	}
}
