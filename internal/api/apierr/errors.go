package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/services/auth"
	"github.com/mcoot/coup-go/internal/storage"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotOwner           = "NOT_OWNER"
	CodeNotYourTurn        = "NOT_YOUR_TURN"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeRoomNotFound       = "ROOM_NOT_FOUND"
	CodeRoomFull           = "ROOM_FULL"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodeAlreadyInRoom      = "ALREADY_IN_ROOM"
	CodeNotInRoom          = "NOT_IN_ROOM"
	CodeGameInProgress     = "GAME_IN_PROGRESS"
	CodeNoGameInProgress   = "NO_GAME_IN_PROGRESS"
	CodeGameComplete       = "GAME_COMPLETE"
	CodeInvalidPlayerCount = "INVALID_PLAYER_COUNT"
	CodeMoveNotAuthorized  = "MOVE_NOT_AUTHORIZED"
	CodeInvalidMove        = "INVALID_MOVE"
	CodeMoveMismatch       = "MOVE_MISMATCH"
	CodeInsufficientCoins  = "INSUFFICIENT_COINS"
	CodeConflict           = "CONFLICT"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError. Rejected moves keep the
// engine's message so players can see what was wrong.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Map model errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrAlreadyInRoom):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInRoom, "Already in this room"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusForbidden, APIError{CodeNotInRoom, "Not in this room"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the room owner can perform this action"}}
	case errors.Is(err, model.ErrGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeGameInProgress, "Game has already started"}}
	case errors.Is(err, model.ErrNoGameInProgress):
		return &httpError{http.StatusConflict, APIError{CodeNoGameInProgress, "No game in progress"}}
	case errors.Is(err, model.ErrInvalidPlayerCount):
		return &httpError{http.StatusConflict, APIError{CodeInvalidPlayerCount, "A game needs 2 to 6 players"}}
	case errors.Is(err, model.ErrMoveNotAuthorized):
		return &httpError{http.StatusForbidden, APIError{CodeMoveNotAuthorized, "Moves can only be made for your own seat"}}

	// Map engine errors, most specific first
	case errors.Is(err, model.ErrNotPlayersTurn):
		return &httpError{http.StatusConflict, APIError{CodeNotYourTurn, err.Error()}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrInvalidMoveForPhase):
		return &httpError{http.StatusConflict, APIError{CodeInvalidMove, err.Error()}}
	case errors.Is(err, model.ErrInsufficientCoins):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInsufficientCoins, err.Error()}}
	case errors.Is(err, model.ErrStructuralMismatch):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeMoveMismatch, err.Error()}}
	case errors.Is(err, storage.ErrConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Too many concurrent updates, try again"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
