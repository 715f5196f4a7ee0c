package storage

import (
	"context"
	"errors"

	"github.com/mcoot/coup-go/internal/model"
)

// ErrConflict is returned when an optimistic update keeps losing to
// concurrent writers
var ErrConflict = errors.New("storage: too many concurrent updates")

// RoomUpdate mutates a room inside UpdateRoom. Returning an error aborts the
// update and leaves the stored room untouched.
type RoomUpdate func(room *model.Room) error

// GameUpdate mutates a game inside UpdateGame. Returning an error aborts the
// update and leaves the stored game untouched.
type GameUpdate func(game *model.Game) error

// Storage defines the interface for data persistence
type Storage interface {
	// Ping checks the backing store is reachable
	Ping(ctx context.Context) error

	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error

	// Room operations
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)
	// UpdateRoom applies fn to the latest copy of the room; updates to the
	// same room never interleave
	UpdateRoom(ctx context.Context, code model.RoomCode, fn RoomUpdate) (*model.Room, error)

	// Game operations. A room has at most one game, keyed by its code.
	// CreateGame fails with model.ErrGameInProgress if one exists.
	CreateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error)
	DeleteGame(ctx context.Context, code model.RoomCode) error
	// UpdateGame is the single writer for a room's game: fn sees the latest
	// snapshot and its result is stored only if nothing else wrote meanwhile
	UpdateGame(ctx context.Context, code model.RoomCode, fn GameUpdate) (*model.Game, error)
}
