package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/coup-go/internal/dependencies/clock"
	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrUsernameExists     = errors.New("username already exists")
)

// Service handles authentication and session management
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration `env:"COUP_SESSION_DURATION" envDefault:"24h"`
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		storage:         storage,
		clock:           clock,
		logger:          logger.With(slog.String("component", "auth")),
		sessionDuration: cfg.SessionDuration,
	}
}

// CreateGuestPlayer creates an anonymous player and session
func (s *Service) CreateGuestPlayer(ctx context.Context, displayName string) (*model.Session, error) {
	player := &model.Player{
		ID:          newPlayerID(),
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	s.logger.Info("guest player created", slog.String("player_id", string(player.ID)))
	return s.createSession(ctx, player)
}

// RegisterPlayer creates a registered player account and session
func (s *Service) RegisterPlayer(ctx context.Context, username, password, displayName string) (*model.Session, error) {
	_, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:          newPlayerID(),
		DisplayName: displayName,
		IsGuest:     false,
		CreatedAt:   now,
	}

	registeredPlayer := &model.RegisteredPlayer{
		PlayerID:     player.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRegisteredPlayer(ctx, registeredPlayer); err != nil {
		return nil, err
	}

	s.logger.Info("player registered",
		slog.String("player_id", string(player.ID)),
		slog.String("username", username))
	return s.createSession(ctx, player)
}

// Login authenticates a registered player and creates a session
func (s *Service) Login(ctx context.Context, username, password string) (*model.Session, error) {
	rp, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rp.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.storage.GetPlayer(ctx, rp.PlayerID)
	if err != nil {
		return nil, err
	}

	return s.createSession(ctx, player)
}

// ValidateSession checks if a session token is valid and returns the session.
// Expired sessions are removed as they are found.
func (s *Service) ValidateSession(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.storage.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if s.clock.Now().After(session.ExpiresAt) {
		if err := s.storage.DeleteSession(ctx, token); err != nil {
			s.logger.Warn("failed to delete expired session", slog.Any("error", err))
		}
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(ctx context.Context, token string) error {
	return s.storage.DeleteSession(ctx, token)
}

// GetPlayer returns the player for a session token
func (s *Service) GetPlayer(ctx context.Context, token string) (*model.Player, error) {
	session, err := s.ValidateSession(ctx, token)
	if err != nil {
		return nil, err
	}
	return &session.Player, nil
}

func (s *Service) createSession(ctx context.Context, player *model.Player) (*model.Session, error) {
	now := s.clock.Now()

	session := &model.Session{
		Token:     newToken(),
		PlayerID:  player.ID,
		Player:    *player,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	if err := s.storage.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func newPlayerID() model.PlayerID {
	return model.PlayerID("p_" + uuid.NewString())
}

// newToken generates an unguessable session token
func newToken() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return "sess_" + base64.RawURLEncoding.EncodeToString(b)
}
