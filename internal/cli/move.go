package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mcoot/coup-go/internal/api/response"
	"github.com/mcoot/coup-go/internal/model"
)

// MoveOptions are the flag values of `game move`
type MoveOptions struct {
	Victim  string
	Role    string
	Changes []string
}

// BuildMove assembles a move for the viewing player from their game view.
// Counters and shows reference the move pending in the current phase.
func BuildMove(view response.GameView, kind string, opts MoveOptions) (model.Move, error) {
	if view.You == nil {
		return model.Move{}, errors.New("you are not playing in this game")
	}

	move := model.Move{
		Kind:   model.MoveKind(strings.ToLower(strings.ReplaceAll(kind, "-", "_"))),
		Player: *view.You,
	}
	if !move.Kind.Valid() {
		return model.Move{}, fmt.Errorf("unknown move %q", kind)
	}

	if opts.Victim != "" {
		victim, err := findPlayer(view, opts.Victim)
		if err != nil {
			return model.Move{}, err
		}
		move.Victim = &victim
	}

	if opts.Role != "" {
		role, err := parseRole(opts.Role)
		if err != nil {
			return model.Move{}, err
		}
		move.Role = role
	}

	for _, c := range opts.Changes {
		change, err := parseChange(c)
		if err != nil {
			return model.Move{}, err
		}
		move.Changes = append(move.Changes, change)
	}

	switch move.Kind {
	case model.MoveChallenge, model.MovePass, model.MoveBlock, model.MoveShow:
		if view.Phase.Move == nil {
			return model.Move{}, fmt.Errorf("nothing to %s during %s", move.Kind, view.Phase.Kind)
		}
		action := view.Phase.Move.Clone()
		move.Action = &action
	}

	return move, nil
}

// findPlayer resolves a seated player by case-insensitive name
func findPlayer(view response.GameView, name string) (model.PlayerRef, error) {
	for _, p := range view.Players {
		if strings.EqualFold(p.Name, name) {
			return p.PlayerRef, nil
		}
	}
	return model.PlayerRef{}, fmt.Errorf("no player named %q in the game", name)
}

func parseRole(s string) (model.Role, error) {
	role := model.Role(strings.ToUpper(s))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// parseChange reads an OLD:NEW role change
func parseChange(s string) (model.RoleChange, error) {
	oldRole, newRole, ok := strings.Cut(s, ":")
	if !ok {
		return model.RoleChange{}, fmt.Errorf("change %q must look like OLD:NEW", s)
	}
	o, err := parseRole(oldRole)
	if err != nil {
		return model.RoleChange{}, err
	}
	n, err := parseRole(newRole)
	if err != nil {
		return model.RoleChange{}, err
	}
	return model.RoleChange{Old: o, New: n}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(code)
}

func roomPath(code string) string {
	return "/api/v1/rooms/" + normalizeCode(code)
}
