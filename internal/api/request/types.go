package request

import (
	"errors"
	"fmt"

	"github.com/mcoot/coup-go/internal/model"
)

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// MoveRequest is the request body for submitting a move. It is the move
// itself, in the same shape the game log and events use.
type MoveRequest = model.Move

// maxMoveDepth bounds Action nesting; a challenge of a block of a steal is
// the deepest a legal move gets
const maxMoveDepth = 4

// ValidateMove rejects moves that are malformed before they reach a game
func ValidateMove(m model.Move) error {
	return validateMove(m, 0)
}

func validateMove(m model.Move, depth int) error {
	if depth >= maxMoveDepth {
		return errors.New("move is nested too deeply")
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("unknown move kind %q", m.Kind)
	}
	if m.Player.Name == "" {
		return errors.New("player is required")
	}
	if m.Role != "" && !m.Role.Valid() {
		return fmt.Errorf("unknown role %q", m.Role)
	}
	for _, c := range m.Changes {
		if !c.Old.Valid() || !c.New.Valid() {
			return fmt.Errorf("unknown role in change %s:%s", c.Old, c.New)
		}
	}
	if m.Action != nil {
		return validateMove(*m.Action, depth+1)
	}
	return nil
}
