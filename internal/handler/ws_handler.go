/*
Package handler provides the HTTP handlers and routing setup for the picnicbox
lobby service.

This file contains the WebSocket handler: rate limiting, connection upgrading,
and starting the client read/write pumps. Room and identity binding happens
afterwards, over the socket, via the announce message.
*/
package handler

import (
	"net"
	"net/http"

	"github.com/gorilla/websocket"

	"picnicbox/internal/app/lobby"
	"picnicbox/internal/pkg/errs"
	"picnicbox/internal/pkg/limiter"
	"picnicbox/internal/pkg/logx"
	"picnicbox/internal/pkg/randx"
	"picnicbox/internal/pkg/resp"
)

// HandleWebSocket upgrades the request to a WebSocket connection and runs the
// client lifecycle. The connection starts unattached; it joins a room's
// broadcast group only after a valid announce arrives.
func HandleWebSocket(upgrader websocket.Upgrader, rateLimiter *limiter.IPRateLimiter, deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !rateLimiter.GetLimiter(ip).Allow() {
			logx.Warn("WebSocket connection rejected: Rate limit exceeded.", "ip", ip)
			resp.RespondError(w, r, errs.NewError(errs.ErrRateLimitExceeded))
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logx.Error(err, "Failed to upgrade connection to WebSocket")
			return
		}

		connID := randx.ConnectionID()
		client := lobby.NewClient(conn, connID, deps.Coordinator)

		go client.WritePump()

		logx.Info("WebSocket connection established", "conn_id", connID)

		client.ReadPump()
	}
}
