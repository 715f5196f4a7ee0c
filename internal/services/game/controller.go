package game

import (
	"context"
	"log/slog"

	"github.com/mcoot/coup-go/internal/dependencies/clock"
	"github.com/mcoot/coup-go/internal/engine"
	"github.com/mcoot/coup-go/internal/events"
	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/storage"
)

// RoomFinisher closes a room once its game has a winner
type RoomFinisher interface {
	FinishGame(ctx context.Context, code model.RoomCode, winner model.PlayerRef) error
}

// Controller accepts moves for running games. Every move goes through
// storage.UpdateGame so a room's game has a single writer.
type Controller struct {
	storage   storage.Storage
	engine    *engine.Engine
	rooms     RoomFinisher
	publisher events.Publisher
	clock     clock.Clock
	logger    *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	engine *engine.Engine,
	rooms RoomFinisher,
	publisher events.Publisher,
	clock clock.Clock,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:   storage,
		engine:    engine,
		rooms:     rooms,
		publisher: publisher,
		clock:     clock,
		logger:    logger.With(slog.String("component", "game")),
	}
}

// GetGame retrieves the full, unredacted game for a room
func (c *Controller) GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error) {
	return c.storage.GetGame(ctx, code)
}

// View returns the game as seen by viewer. Viewers outside the room see
// only public information.
func (c *Controller) View(ctx context.Context, code model.RoomCode, viewer model.PlayerID) (*View, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	game, err := c.storage.GetGame(ctx, code)
	if err != nil {
		return nil, err
	}

	var ref *model.PlayerRef
	if member := room.GetMember(viewer); member != nil {
		r := member.Ref()
		ref = &r
	}
	return NewView(game, ref), nil
}

// SubmitMove applies a move made by playerID. The move must be made in the
// name of the player's own seat.
func (c *Controller) SubmitMove(ctx context.Context, code model.RoomCode, playerID model.PlayerID, move model.Move) (*model.Game, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	member := room.GetMember(playerID)
	if member == nil {
		return nil, model.ErrNotInRoom
	}
	if member.Ref() != move.Player {
		c.logger.Warn("move rejected: not the player's seat",
			slog.String("room", string(code)),
			slog.String("player_id", string(playerID)),
			slog.String("claimed", move.Player.Name))
		return nil, model.ErrMoveNotAuthorized
	}

	game, err := c.storage.UpdateGame(ctx, code, func(game *model.Game) error {
		next, err := c.engine.Apply(&game.State, move)
		if err != nil {
			return err
		}
		game.State = *next
		game.Version++
		game.UpdatedAt = c.clock.Now()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("move applied",
		slog.String("room", string(code)),
		slog.String("kind", string(move.Kind)),
		slog.String("player", move.Player.Name),
		slog.Int64("version", game.Version))

	c.publish(ctx, code, model.EventMoveApplied, model.MoveAppliedPayload{
		Kind:        move.Kind,
		Player:      move.Player,
		Description: move.Description(),
		Phase:       game.State.Phase.Kind,
		Version:     game.Version,
	})

	if winner, over := game.State.Winner(); over {
		if err := c.rooms.FinishGame(ctx, code, winner); err != nil {
			c.logger.Error("failed to finish room",
				slog.String("room", string(code)),
				slog.Any("error", err))
		}
		c.publish(ctx, code, model.EventGameOver, model.GameOverPayload{Winner: winner})
	}

	return game, nil
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

// ControllerInterface is the game operation surface used by handlers
type ControllerInterface interface {
	GetGame(ctx context.Context, code model.RoomCode) (*model.Game, error)
	View(ctx context.Context, code model.RoomCode, viewer model.PlayerID) (*View, error)
	SubmitMove(ctx context.Context, code model.RoomCode, playerID model.PlayerID, move model.Move) (*model.Game, error)
}

var _ ControllerInterface = (*Controller)(nil)
