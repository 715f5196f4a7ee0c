package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mcoot/coup-go/internal/dependencies/clock"
	"github.com/mcoot/coup-go/internal/dependencies/random"
	"github.com/mcoot/coup-go/internal/engine"
	"github.com/mcoot/coup-go/internal/events"
	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/storage"
)

const (
	// RoomCodeAlphabet is the characters used in room codes
	RoomCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	maxCodeAttempts = 16
)

// ErrNoFreeCode is returned when no unused room code could be generated
var ErrNoFreeCode = errors.New("could not generate an unused room code")

// Controller manages room membership and starting games
type Controller struct {
	storage   storage.Storage
	engine    *engine.Engine
	publisher events.Publisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
}

// NewController creates a new room Controller
func NewController(
	storage storage.Storage,
	engine *engine.Engine,
	publisher events.Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		engine:    engine,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger.With(slog.String("component", "room")),
	}
}

// CreateRoom creates a new room with the given player as owner and first member
func (c *Controller) CreateRoom(ctx context.Context, owner model.Player) (*model.Room, error) {
	code, err := c.newCode(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	room := &model.Room{
		Code:    code,
		OwnerID: owner.ID,
		State:   model.RoomStateWaiting,
		Members: []model.RoomMember{
			{
				PlayerID: owner.ID,
				Name:     owner.DisplayName,
				Color:    model.PlayerColors[0],
				JoinedAt: now,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room", string(code)),
		slog.String("owner", string(owner.ID)))
	return room, nil
}

func (c *Controller) newCode(ctx context.Context) (model.RoomCode, error) {
	for range maxCodeAttempts {
		code := model.RoomCode(c.random.String(model.RoomCodeLength, RoomCodeAlphabet))
		if len(code) != model.RoomCodeLength {
			continue
		}
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrNoFreeCode
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// JoinRoom seats a player in a waiting room with the first free colour
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error) {
	var joined model.RoomMember
	room, err := c.storage.UpdateRoom(ctx, code, func(room *model.Room) error {
		if len(room.Members) == 0 {
			return model.ErrRoomNotFound
		}
		if room.GetMember(player.ID) != nil {
			return model.ErrAlreadyInRoom
		}
		if room.State != model.RoomStateWaiting {
			return model.ErrGameInProgress
		}
		color, ok := room.FreeColor()
		if !ok || room.IsFull() {
			return model.ErrRoomFull
		}
		joined = model.RoomMember{
			PlayerID: player.ID,
			Name:     player.DisplayName,
			Color:    color,
			JoinedAt: c.clock.Now(),
		}
		room.Members = append(room.Members, joined)
		room.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("player joined room",
		slog.String("room", string(code)),
		slog.String("player_id", string(player.ID)),
		slog.String("color", joined.Color))
	c.publish(ctx, code, model.EventMemberJoined, model.MemberJoinedPayload{
		PlayerID: player.ID,
		Player:   joined.Ref(),
	})
	return room, nil
}

// LeaveRoom removes a player from a room that is not mid-game. Ownership
// passes to the longest-standing member; the last member out closes the room.
func (c *Controller) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	var left model.RoomMember
	var wasOwner bool
	room, err := c.storage.UpdateRoom(ctx, code, func(room *model.Room) error {
		member := room.GetMember(playerID)
		if member == nil {
			return model.ErrNotInRoom
		}
		if room.State == model.RoomStateInGame {
			return model.ErrGameInProgress
		}
		left = *member
		wasOwner = room.OwnerID == playerID
		for i, m := range room.Members {
			if m.PlayerID == playerID {
				room.Members = append(room.Members[:i], room.Members[i+1:]...)
				break
			}
		}
		if wasOwner && len(room.Members) > 0 {
			room.OwnerID = room.Members[0].PlayerID
		}
		room.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return err
	}

	c.logger.Info("player left room",
		slog.String("room", string(code)),
		slog.String("player_id", string(playerID)))

	if len(room.Members) == 0 {
		return c.closeRoom(ctx, code, "all members left")
	}

	payload := model.MemberLeftPayload{PlayerID: playerID, Player: left.Ref()}
	if wasOwner {
		payload.NewOwner = room.OwnerID
	}
	c.publish(ctx, code, model.EventMemberLeft, payload)
	return nil
}

func (c *Controller) closeRoom(ctx context.Context, code model.RoomCode, reason string) error {
	if err := c.storage.DeleteGame(ctx, code); err != nil {
		return err
	}
	if err := c.storage.DeleteRoom(ctx, code); err != nil {
		return err
	}
	c.logger.Info("room closed", slog.String("room", string(code)), slog.String("reason", reason))
	c.publish(ctx, code, model.EventRoomClosed, model.RoomClosedPayload{Reason: reason})
	return nil
}

// StartGame deals a new game for the room's members. Only the owner may
// start, and only while the room is waiting with 2 to 6 members.
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.Game, error) {
	var participants []model.Participant
	_, err := c.storage.UpdateRoom(ctx, code, func(room *model.Room) error {
		if room.OwnerID != requester {
			return model.ErrNotOwner
		}
		if room.State != model.RoomStateWaiting {
			return model.ErrGameInProgress
		}
		if n := len(room.Members); n < model.MinPlayers || n > model.MaxPlayers {
			return fmt.Errorf("%w: %d", model.ErrInvalidPlayerCount, n)
		}
		participants = room.Participants()
		room.State = model.RoomStateInGame
		room.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	game, err := c.createGame(ctx, code, participants)
	if err != nil {
		c.logger.Error("failed to create game",
			slog.String("room", string(code)),
			slog.Any("error", err))
		if _, rerr := c.storage.UpdateRoom(ctx, code, func(room *model.Room) error {
			room.State = model.RoomStateWaiting
			return nil
		}); rerr != nil {
			c.logger.Error("failed to reopen room", slog.String("room", string(code)), slog.Any("error", rerr))
		}
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("room", string(code)),
		slog.Int("players", len(participants)))
	c.publish(ctx, code, model.EventGameStarted, model.GameStartedPayload{
		Players: game.State.Refs(),
		First:   game.State.Phase.Player,
	})
	return game, nil
}

func (c *Controller) createGame(ctx context.Context, code model.RoomCode, participants []model.Participant) (*model.Game, error) {
	state, err := c.engine.NewGame(participants)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()
	game := &model.Game{
		RoomCode:  code,
		State:     *state,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// FinishGame records the winner and closes the room to further play
func (c *Controller) FinishGame(ctx context.Context, code model.RoomCode, winner model.PlayerRef) error {
	_, err := c.storage.UpdateRoom(ctx, code, func(room *model.Room) error {
		if room.State != model.RoomStateInGame {
			return model.ErrNoGameInProgress
		}
		room.State = model.RoomStateFinished
		room.Winner = &winner
		room.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return err
	}
	c.logger.Info("game finished",
		slog.String("room", string(code)),
		slog.String("winner", winner.Name))
	return nil
}

func (c *Controller) publish(ctx context.Context, code model.RoomCode, eventType model.EventType, payload any) {
	event := model.Event{
		Type:      eventType,
		RoomCode:  code,
		Timestamp: c.clock.Now(),
		Payload:   payload,
	}
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("failed to publish event",
			slog.String("room", string(code)),
			slog.String("type", string(eventType)),
			slog.Any("error", err))
	}
}

// ControllerInterface is the room operation surface used by handlers
type ControllerInterface interface {
	CreateRoom(ctx context.Context, owner model.Player) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error)
	LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	StartGame(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.Game, error)
	FinishGame(ctx context.Context, code model.RoomCode, winner model.PlayerRef) error
}

var _ ControllerInterface = (*Controller)(nil)
