/*
Package handler provides the HTTP handlers and routing setup for the picnicbox
lobby service.

This file contains the content pack handler.
*/
package handler

import (
	"net/http"

	"picnicbox/internal/pkg/resp"
)

// HandleListPacks returns the static catalog of game content packs.
func HandleListPacks(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, deps.Packs.List())
	}
}
