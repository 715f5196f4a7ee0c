package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrSessionNotFound = errors.New("session not found")

	// Room errors
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomFull       = errors.New("room is full")
	ErrAlreadyInRoom  = errors.New("player is already in room")
	ErrNotInRoom      = errors.New("player is not in room")
	ErrNotOwner       = errors.New("player is not the room owner")
	ErrGameInProgress = errors.New("game is in progress")

	// Setup errors
	ErrInvalidPlayerCount = errors.New("invalid number of players")
	ErrDuplicatePlayer    = errors.New("duplicate player")

	// Game errors
	ErrGameNotFound        = errors.New("game not found")
	ErrNoGameInProgress    = errors.New("no game in progress")
	ErrMoveNotAuthorized   = errors.New("move is not for the authenticated player")
	ErrInvalidMoveForPhase = errors.New("move is not valid for the current phase")
	ErrStructuralMismatch  = errors.New("move does not match the pending state")
)

// Phase errors are all an ErrInvalidMoveForPhase
var (
	ErrUnknownPlayer  = fmt.Errorf("%w: unknown player", ErrInvalidMoveForPhase)
	ErrNotPlayersTurn = fmt.Errorf("%w: not this player's turn", ErrInvalidMoveForPhase)
	ErrGameComplete   = fmt.Errorf("%w: game is already complete", ErrInvalidMoveForPhase)
)

// ErrInsufficientCoins is a structural mismatch between a move and the actor's purse
var ErrInsufficientCoins = fmt.Errorf("%w: insufficient coins", ErrStructuralMismatch)
