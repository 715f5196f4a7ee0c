package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/coup-go/internal/api/handler"
	"github.com/mcoot/coup-go/internal/api/middleware"
	"github.com/mcoot/coup-go/internal/services/auth"
	"github.com/mcoot/coup-go/internal/services/game"
	"github.com/mcoot/coup-go/internal/services/room"
	"github.com/mcoot/coup-go/internal/sse"
	"github.com/mcoot/coup-go/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	Storage        storage.Storage
	AuthService    *auth.Service
	RoomController *room.Controller
	GameController *game.Controller
	HubManager     *sse.HubManager
	ServerName     string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	roomHandler := handler.NewRoomHandler(cfg.RoomController)
	gameHandler := handler.NewGameHandler(cfg.RoomController, cfg.GameController)
	eventsHandler := handler.NewEventsHandler(cfg.RoomController, cfg.HubManager)
	healthHandler := handler.NewHealthHandler(cfg.Storage, cfg.ServerName)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.RequestID)
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)

	// Room routes (all require auth)
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(authMiddleware)
	rooms.HandleFunc("", roomHandler.Create).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}", roomHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/join", roomHandler.Join).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/leave", roomHandler.Leave).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/events", eventsHandler.Stream).Methods(http.MethodGet)

	// Game routes (all require auth)
	rooms.HandleFunc("/{code}/game", gameHandler.Start).Methods(http.MethodPost)
	rooms.HandleFunc("/{code}/game", gameHandler.Get).Methods(http.MethodGet)
	rooms.HandleFunc("/{code}/game/moves", gameHandler.Move).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler.Check).Methods(http.MethodGet)

	return r
}
