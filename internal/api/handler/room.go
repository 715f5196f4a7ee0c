package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/coup-go/internal/api/middleware"
	"github.com/mcoot/coup-go/internal/api/response"
	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/services/room"
)

// RoomHandler handles room-related endpoints
type RoomHandler struct {
	roomController room.ControllerInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomController room.ControllerInterface) *RoomHandler {
	return &RoomHandler{
		roomController: roomController,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rm, err := h.roomController.CreateRoom(r.Context(), *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(rm))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	rm, err := h.roomController.GetRoom(r.Context(), roomCode(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	rm, err := h.roomController.JoinRoom(r.Context(), roomCode(r), *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}

// Leave handles POST /api/v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	if err := h.roomController.LeaveRoom(r.Context(), roomCode(r), player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// roomCode reads the room code path variable
func roomCode(r *http.Request) model.RoomCode {
	return model.RoomCode(mux.Vars(r)["code"])
}
