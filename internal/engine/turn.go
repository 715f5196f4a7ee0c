package engine

import (
	"fmt"

	"github.com/mcoot/coup-go/internal/model"
)

const (
	CoupCost        = 7
	AssassinateCost = 3
)

func (e *Engine) applyTurn(g *model.GameState, move model.Move) error {
	switch move.Kind {
	case model.MoveIncome, model.MoveForeignAid, model.MoveTax, model.MoveExchange,
		model.MoveSteal, model.MoveAssassinate, model.MoveCoup:
	default:
		return wrongMove(g, move)
	}
	if err := requireActor(g, move); err != nil {
		return err
	}
	if err := validateTurnPayload(g, move); err != nil {
		return err
	}

	actor, _ := g.Player(move.Player)

	switch move.Kind {
	case model.MoveIncome:
		actor.Coins++
		record(g, move.Description())
		advanceTurn(g)

	case model.MoveCoup:
		if actor.Coins < CoupCost {
			return fmt.Errorf("%w: coup costs %d", model.ErrInsufficientCoins, CoupCost)
		}
		actor.Coins -= CoupCost
		record(g, move.Description())
		g.Phase = model.WaitSurrenderPhase(*move.Victim, move)

	case model.MoveAssassinate:
		if actor.Coins < AssassinateCost {
			return fmt.Errorf("%w: assassination costs %d", model.ErrInsufficientCoins, AssassinateCost)
		}
		actor.Coins -= AssassinateCost
		attempt(g, move)
		g.Phase = model.WaitCounterPhase(g.RefsExcept(move.Player), move)

	default:
		attempt(g, move)
		g.Phase = model.WaitCounterPhase(g.RefsExcept(move.Player), move)
	}
	return nil
}

// validateTurnPayload checks that a declared action carries exactly the
// payload its kind needs
func validateTurnPayload(g *model.GameState, move model.Move) error {
	if move.Action != nil || move.Role != "" || len(move.Changes) > 0 {
		return fmt.Errorf("%w: unexpected payload on %s", model.ErrStructuralMismatch, move.Kind)
	}

	switch move.Kind {
	case model.MoveSteal, model.MoveAssassinate, model.MoveCoup:
		if move.Victim == nil {
			return fmt.Errorf("%w: %s needs a victim", model.ErrStructuralMismatch, move.Kind)
		}
		if *move.Victim == move.Player {
			return fmt.Errorf("%w: cannot target yourself", model.ErrStructuralMismatch)
		}
		if g.PlayerIndex(*move.Victim) < 0 {
			return fmt.Errorf("%w: victim %s", model.ErrUnknownPlayer, move.Victim.Name)
		}
	default:
		if move.Victim != nil {
			return fmt.Errorf("%w: %s takes no victim", model.ErrStructuralMismatch, move.Kind)
		}
	}
	return nil
}
