package handler

import (
	"net/http"

	"github.com/mcoot/coup-go/internal/api/middleware"
	"github.com/mcoot/coup-go/internal/services/room"
	"github.com/mcoot/coup-go/internal/sse"
)

// EventsHandler streams room events over SSE
type EventsHandler struct {
	roomController room.ControllerInterface
	hubs           *sse.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(roomController room.ControllerInterface, hubs *sse.HubManager) *EventsHandler {
	return &EventsHandler{
		roomController: roomController,
		hubs:           hubs,
	}
}

// Stream handles GET /api/v1/rooms/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := roomCode(r)

	if _, err := h.roomController.GetRoom(r.Context(), code); err != nil {
		WriteError(w, err)
		return
	}

	sse.ServeSSE(w, r, h.hubs.GetOrCreateHub(code), player.ID)
}
