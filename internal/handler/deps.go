package handler

import (
	"context"

	"picnicbox/internal/app/lobby"
	"picnicbox/internal/app/pack"
	"picnicbox/internal/app/room"
	"picnicbox/internal/configs"
	"picnicbox/internal/pkg/errs"
)

// RoomDirectory is the subset of directory operations the HTTP handlers need.
type RoomDirectory interface {
	CreateRoom(ctx context.Context, leaderName string) (string, string, *errs.CustomError)
	FindRoom(ctx context.Context, code string) (*room.Room, *errs.CustomError)
	JoinRoom(ctx context.Context, code, name, existingUserID string) (string, string, *errs.CustomError)
}

// AppDeps bundles the shared dependencies handed to every handler.
type AppDeps struct {
	Config      *configs.AppConfig
	Directory   RoomDirectory
	Coordinator *lobby.Coordinator
	Packs       *pack.Catalog
}
