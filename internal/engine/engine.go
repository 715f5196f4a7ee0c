package engine

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/coup-go/internal/dependencies/random"
	"github.com/mcoot/coup-go/internal/model"
)

// Engine applies moves to game states. It holds no per-game state and is
// safe to share across rooms; callers serialize moves for a single room.
type Engine struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new Engine drawing all shuffles from random
func New(random random.Random, logger *slog.Logger) *Engine {
	return &Engine{
		random: random,
		logger: logger,
	}
}

// Apply validates move against the current phase of state and returns the
// resulting state. The input is never modified; on error it is returned as is.
func (e *Engine) Apply(state *model.GameState, move model.Move) (*model.GameState, error) {
	next := state.Clone()

	if err := e.dispatch(next, move); err != nil {
		e.logger.Warn("move rejected",
			slog.String("phase", string(state.Phase.Kind)),
			slog.String("move", string(move.Kind)),
			slog.String("player", move.Player.Name),
			slog.String("error", err.Error()),
		)
		return state, err
	}

	e.logger.Debug("move applied",
		slog.String("move", string(move.Kind)),
		slog.String("player", move.Player.Name),
		slog.String("phase", string(next.Phase.Kind)),
	)
	return next, nil
}

func (e *Engine) dispatch(g *model.GameState, move model.Move) error {
	if g.IsOver() {
		return model.ErrGameComplete
	}
	if g.PlayerIndex(move.Player) < 0 {
		return fmt.Errorf("%w: %s", model.ErrUnknownPlayer, move.Player.Name)
	}

	switch g.Phase.Kind {
	case model.PhaseTurn:
		return e.applyTurn(g, move)
	case model.PhaseWaitCounter:
		return e.applyWaitCounter(g, move)
	case model.PhaseWaitSurrender:
		return e.applyWaitSurrender(g, move)
	case model.PhaseShowInfluence:
		return e.applyShowInfluence(g, move)
	case model.PhaseExchangeInfluence:
		return e.applyExchangeInfluence(g, move)
	default:
		return fmt.Errorf("%w: unknown phase %q", model.ErrInvalidMoveForPhase, g.Phase.Kind)
	}
}

// wrongMove builds the error for a move kind the phase does not accept
func wrongMove(g *model.GameState, move model.Move) error {
	return fmt.Errorf("%w: %s during %s", model.ErrInvalidMoveForPhase, move.Kind, g.Phase.Kind)
}

// requireActor checks that the phase is waiting on the move's player
func requireActor(g *model.GameState, move model.Move) error {
	if move.Player != g.Phase.Player {
		return fmt.Errorf("%w: waiting on %s", model.ErrNotPlayersTurn, g.Phase.Player.Name)
	}
	return nil
}

// requireAction checks that move references the pending move of the phase
func requireAction(g *model.GameState, move model.Move) error {
	if move.Action == nil || g.Phase.Move == nil || !move.Action.Equal(*g.Phase.Move) {
		return fmt.Errorf("%w: %s does not reference the pending move", model.ErrStructuralMismatch, move.Kind)
	}
	return nil
}

// advanceTurn hands the turn to the next seat
func advanceTurn(g *model.GameState) {
	g.CurrentPlayer = (g.CurrentPlayer + 1) % len(g.Players)
	g.Phase = model.TurnPhase(g.Players[g.CurrentPlayer].Ref())
}

func (e *Engine) shuffleDeck(g *model.GameState) {
	random.Shuffle(e.random, g.Deck)
}

func attempt(g *model.GameState, move model.Move) {
	g.Log = append(g.Log, "Attempt: "+move.Description())
}

func record(g *model.GameState, line string) {
	g.Log = append(g.Log, line)
}
