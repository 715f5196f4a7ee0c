package engine

import (
	"fmt"

	"github.com/mcoot/coup-go/internal/model"
)

// StealAmount is the most coins a successful steal takes
const StealAmount = 2

func (e *Engine) applyWaitCounter(g *model.GameState, move model.Move) error {
	switch move.Kind {
	case model.MoveChallenge, model.MoveBlock, model.MovePass:
	default:
		return wrongMove(g, move)
	}
	if !g.Phase.IsPending(move.Player) {
		return fmt.Errorf("%w: %s is not pending", model.ErrNotPlayersTurn, move.Player.Name)
	}
	if err := requireAction(g, move); err != nil {
		return err
	}
	if move.Victim != nil || move.Role != "" || len(move.Changes) > 0 {
		return fmt.Errorf("%w: unexpected payload on %s", model.ErrStructuralMismatch, move.Kind)
	}

	source := *g.Phase.Move

	switch move.Kind {
	case model.MoveChallenge:
		if !source.IsChallengeable() {
			return fmt.Errorf("%w: %s cannot be challenged", model.ErrStructuralMismatch, source.Kind)
		}
		record(g, move.Description())
		proof := source.ProofList()
		actor, _ := g.Player(source.Player)
		if actor.HasAnyAlive(proof) {
			g.Phase = model.ShowInfluencePhase(source.Player, move, proof)
		} else {
			g.Phase = model.WaitSurrenderPhase(source.Player, move)
		}
		return nil

	case model.MoveBlock:
		if !source.IsBlockable() {
			return fmt.Errorf("%w: %s cannot be blocked", model.ErrStructuralMismatch, source.Kind)
		}
		attempt(g, move)
		g.Phase = model.WaitCounterPhase(g.RefsExcept(move.Player), move)
		return nil

	default:
		record(g, move.Description())
		pending := make([]model.PlayerRef, 0, len(g.Phase.Pending))
		for _, p := range g.Phase.Pending {
			if p != move.Player {
				pending = append(pending, p)
			}
		}
		if len(pending) > 0 {
			g.Phase.Pending = pending
			return nil
		}
		return e.resolve(g, source)
	}
}

// resolve applies an unopposed move once every pending player has passed
func (e *Engine) resolve(g *model.GameState, source model.Move) error {
	actor, ok := g.Player(source.Player)
	if !ok {
		return fmt.Errorf("%w: %s", model.ErrUnknownPlayer, source.Player.Name)
	}

	switch source.Kind {
	case model.MoveForeignAid:
		actor.Coins += 2
		record(g, source.Description())
		advanceTurn(g)

	case model.MoveTax:
		actor.Coins += 3
		record(g, source.Description())
		advanceTurn(g)

	case model.MoveSteal:
		victim, ok := g.Player(*source.Victim)
		if !ok {
			return fmt.Errorf("%w: victim %s", model.ErrUnknownPlayer, source.Victim.Name)
		}
		amount := min(StealAmount, victim.Coins)
		victim.Coins -= amount
		actor.Coins += amount
		record(g, source.Description())
		advanceTurn(g)

	case model.MoveBlock:
		record(g, source.Description())
		advanceTurn(g)

	case model.MoveAssassinate:
		record(g, source.Description())
		g.Phase = model.WaitSurrenderPhase(*source.Victim, source)

	case model.MoveExchange:
		n := min(2, len(g.Deck))
		choices := append([]model.Role(nil), g.Deck[:n]...)
		g.Deck = g.Deck[n:]
		g.Phase = model.ExchangeInfluencePhase(source.Player, choices, source)

	default:
		return fmt.Errorf("%w: %s has no unopposed effect", model.ErrStructuralMismatch, source.Kind)
	}
	return nil
}
