package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/coup-go/internal/api"
	"github.com/mcoot/coup-go/internal/config"
	"github.com/mcoot/coup-go/internal/factory"
)

// hubCleanupInterval is how often rooms without listeners drop their SSE hub
const hubCleanupInterval = 5 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(slog.String("server", cfg.ServerName))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(factory.FromServerConfig(cfg, logger))
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close application", slog.String("error", err.Error()))
		}
	}()

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		Storage:        app.Storage,
		AuthService:    app.AuthService,
		RoomController: app.RoomController,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		ServerName:     cfg.ServerName,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Relay events published by every server sharing the Redis instance
	if app.Relay != nil {
		ready := make(chan struct{})
		go func() {
			if err := app.Relay.Run(ctx, ready); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("event relay stopped", slog.String("error", err.Error()))
				cancel()
			}
		}()
		select {
		case <-ready:
		case <-ctx.Done():
		}
	}

	go func() {
		ticker := time.NewTicker(hubCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				app.HubManager.CleanupEmptyHubs()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started",
		slog.String("addr", server.Addr()),
		slog.String("storage", cfg.StorageType))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		// Open event streams never finish on their own
		app.HubManager.Close()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
