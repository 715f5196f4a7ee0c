package engine

import (
	"fmt"

	"github.com/mcoot/coup-go/internal/model"
)

func (e *Engine) applyShowInfluence(g *model.GameState, move model.Move) error {
	if move.Kind != model.MoveShow {
		return wrongMove(g, move)
	}
	if err := requireActor(g, move); err != nil {
		return err
	}
	if err := requireAction(g, move); err != nil {
		return err
	}
	if move.Victim != nil || len(move.Changes) > 0 {
		return fmt.Errorf("%w: unexpected payload on show", model.ErrStructuralMismatch)
	}
	if !model.ContainsRole(g.Phase.ProofList, move.Role) {
		return fmt.Errorf("%w: %s does not prove the challenged move", model.ErrStructuralMismatch, move.Role)
	}
	player, _ := g.Player(move.Player)
	if !player.HasAlive(move.Role) {
		return fmt.Errorf("%w: %s holds no live %s", model.ErrStructuralMismatch, move.Player.Name, move.Role)
	}

	record(g, move.Description())

	// The shown card goes back into the deck now and the slot is refilled
	// from the top once the player confirms the exchange.
	g.Deck = append(g.Deck, move.Role)
	e.shuffleDeck(g)
	choice := g.Deck[0]
	g.Deck = g.Deck[1:]

	g.Phase = model.ExchangeInfluencePhase(move.Player, []model.Role{choice}, move)
	return nil
}

func (e *Engine) applyExchangeInfluence(g *model.GameState, move model.Move) error {
	if move.Kind != model.MoveExchange {
		return wrongMove(g, move)
	}
	if err := requireActor(g, move); err != nil {
		return err
	}
	if move.Victim != nil || move.Action != nil || move.Role != "" {
		return fmt.Errorf("%w: unexpected payload on exchange", model.ErrStructuralMismatch)
	}

	source := *g.Phase.Move
	choices := g.Phase.Choices
	player, _ := g.Player(move.Player)

	switch source.Kind {
	case model.MoveShow:
		want := model.RoleChange{Old: source.Role, New: choices[0]}
		if len(move.Changes) != 1 || move.Changes[0] != want {
			return fmt.Errorf("%w: expected exactly %s for %s", model.ErrStructuralMismatch, want.Old, want.New)
		}
		if _, err := applyChanges(player, move.Changes, choices); err != nil {
			return err
		}
		e.shuffleDeck(g)
		record(g, move.Description())
		g.Phase = model.WaitSurrenderPhase(source.Action.Player, source)

	case model.MoveExchange:
		returned, err := applyChanges(player, move.Changes, choices)
		if err != nil {
			return err
		}
		g.Deck = append(g.Deck, returned...)
		e.shuffleDeck(g)
		record(g, move.Description())
		advanceTurn(g)

	default:
		return fmt.Errorf("%w: cannot exchange after %s", model.ErrStructuralMismatch, source.Kind)
	}
	return nil
}

// applyChanges swaps live roles of p for offered choices. Each change names
// a distinct live slot by its role and a distinct choice. It returns the
// replaced roles followed by the unused choices.
func applyChanges(p *model.GamePlayer, changes []model.RoleChange, choices []model.Role) ([]model.Role, error) {
	if len(changes) > min(p.AliveCount(), len(choices)) {
		return nil, fmt.Errorf("%w: too many role changes", model.ErrStructuralMismatch)
	}

	remaining := append([]model.Role(nil), choices...)
	var returned []model.Role
	var used [2]bool

	for _, c := range changes {
		slot := -1
		for i, inf := range p.Influences {
			if inf.Alive && !used[i] && inf.Role == c.Old {
				slot = i
				break
			}
		}
		if slot < 0 {
			return nil, fmt.Errorf("%w: no live %s to replace", model.ErrStructuralMismatch, c.Old)
		}

		var ok bool
		remaining, ok = model.RemoveRole(remaining, c.New)
		if !ok {
			return nil, fmt.Errorf("%w: %s was not offered", model.ErrStructuralMismatch, c.New)
		}

		used[slot] = true
		p.Influences[slot].Role = c.New
		returned = append(returned, c.Old)
	}

	return append(returned, remaining...), nil
}
