package handler

import (
	"context"
	"net/http"

	"github.com/mcoot/coup-go/internal/api/response"
)

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports server health
type HealthHandler struct {
	storage    Pinger
	serverName string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(storage Pinger, serverName string) *HealthHandler {
	return &HealthHandler{
		storage:    storage,
		serverName: serverName,
	}
}

// Check handles GET /api/v1/health
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Ping(r.Context()); err != nil {
		response.JSON(w, http.StatusServiceUnavailable, response.Health{Status: "unavailable", Server: h.serverName})
		return
	}
	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Server: h.serverName})
}
