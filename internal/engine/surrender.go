package engine

import (
	"fmt"
	"slices"

	"github.com/mcoot/coup-go/internal/model"
)

func (e *Engine) applyWaitSurrender(g *model.GameState, move model.Move) error {
	if move.Kind != model.MoveSurrender {
		return wrongMove(g, move)
	}
	if err := requireActor(g, move); err != nil {
		return err
	}

	victim, _ := g.Player(move.Player)
	slot := -1
	for i, inf := range victim.Influences {
		if inf.Alive && inf.Role == move.Role {
			slot = i
			break
		}
	}
	if slot < 0 {
		return fmt.Errorf("%w: %s holds no live %s", model.ErrStructuralMismatch, move.Player.Name, move.Role)
	}

	victim.Influences[slot].Alive = false
	record(g, move.Description())

	n := len(g.Players)
	removed := -1
	if victim.Eliminated() {
		removed = g.PlayerIndex(move.Player)
		g.Eliminated = append(g.Eliminated, *victim)
		g.Players = slices.Delete(g.Players, removed, removed+1)
		record(g, move.Player.Name+" has been eliminated")
	}

	if len(g.Players) == 1 {
		winner := g.Players[0].Ref()
		g.CurrentPlayer = 0
		g.Phase = model.GameOverPhase(winner)
		record(g, winner.Name+" has won the game")
		return nil
	}

	g.CurrentPlayer = NextIndex(g.CurrentPlayer, n, removed)
	g.Phase = model.TurnPhase(g.Players[g.CurrentPlayer].Ref())
	return nil
}

// NextIndex returns the seat that takes the next turn in the player list
// after a surrender. current is the index of the player whose turn just
// ended and n the number of players before removal; removed is the index of
// an eliminated player, or -1.
//
// The result is always the next surviving seat after current. When the
// current player sits in the last slot the turn wraps to seat 0 whichever
// seat was removed.
func NextIndex(current, n, removed int) int {
	switch {
	case removed < 0:
		return (current + 1) % n
	case current == n-1:
		return 0
	case removed > current:
		return (current + 1) % (n - 1)
	default:
		return current
	}
}
