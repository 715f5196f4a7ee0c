package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/coup-go/internal/api/middleware"
	"github.com/mcoot/coup-go/internal/api/request"
	"github.com/mcoot/coup-go/internal/api/response"
	"github.com/mcoot/coup-go/internal/services/game"
	"github.com/mcoot/coup-go/internal/services/room"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	roomController room.ControllerInterface
	gameController game.ControllerInterface
}

// NewGameHandler creates a new game handler
func NewGameHandler(roomController room.ControllerInterface, gameController game.ControllerInterface) *GameHandler {
	return &GameHandler{
		roomController: roomController,
		gameController: gameController,
	}
}

// Start handles POST /api/v1/rooms/{code}/game
func (h *GameHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := roomCode(r)

	if _, err := h.roomController.StartGame(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.gameController.View(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, view)
}

// Get handles GET /api/v1/rooms/{code}/game
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	view, err := h.gameController.View(r.Context(), roomCode(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Move handles POST /api/v1/rooms/{code}/game/moves
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var move request.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&move); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if err := request.ValidateMove(move); err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	g, err := h.gameController.SubmitMove(r.Context(), roomCode(r), player.ID, move)
	if err != nil {
		WriteError(w, err)
		return
	}

	// Authorization guarantees the move was made from the player's own seat
	response.JSON(w, http.StatusOK, game.NewView(g, &move.Player))
}
