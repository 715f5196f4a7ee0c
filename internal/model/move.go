package model

import "fmt"

// MoveKind identifies the variant of a Move
type MoveKind string

const (
	MoveIncome      MoveKind = "income"
	MoveForeignAid  MoveKind = "foreign_aid"
	MoveTax         MoveKind = "tax"
	MoveExchange    MoveKind = "exchange"
	MoveSteal       MoveKind = "steal"
	MoveAssassinate MoveKind = "assassinate"
	MoveCoup        MoveKind = "coup"
	MoveChallenge   MoveKind = "challenge"
	MovePass        MoveKind = "pass"
	MoveBlock       MoveKind = "block"
	MoveSurrender   MoveKind = "surrender"
	MoveShow        MoveKind = "show"
)

// Valid returns true if k is a known move kind
func (k MoveKind) Valid() bool {
	switch k {
	case MoveIncome, MoveForeignAid, MoveTax, MoveExchange, MoveSteal, MoveAssassinate,
		MoveCoup, MoveChallenge, MovePass, MoveBlock, MoveSurrender, MoveShow:
		return true
	}
	return false
}

// RoleChange replaces an influence holding Old with New
type RoleChange struct {
	Old Role `json:"old"`
	New Role `json:"new"`
}

// Move is a player-submitted action or reaction.
//
// Payload by kind:
//   - steal, assassinate, coup: Victim
//   - challenge, pass, block: Action is the move being countered
//   - surrender: Role is the influence given up
//   - show: Role is the revealed influence, Action is the challenge
//   - exchange: Changes (empty when declared on a turn)
type Move struct {
	Kind    MoveKind     `json:"kind"`
	Player  PlayerRef    `json:"player"`
	Victim  *PlayerRef   `json:"victim,omitempty"`
	Action  *Move        `json:"action,omitempty"`
	Role    Role         `json:"role,omitempty"`
	Changes []RoleChange `json:"changes,omitempty"`
}

func Income(p PlayerRef) Move     { return Move{Kind: MoveIncome, Player: p} }
func ForeignAid(p PlayerRef) Move { return Move{Kind: MoveForeignAid, Player: p} }
func Tax(p PlayerRef) Move        { return Move{Kind: MoveTax, Player: p} }

func Exchange(p PlayerRef, changes ...RoleChange) Move {
	return Move{Kind: MoveExchange, Player: p, Changes: changes}
}

func Steal(p, victim PlayerRef) Move {
	return Move{Kind: MoveSteal, Player: p, Victim: &victim}
}

func Assassinate(p, victim PlayerRef) Move {
	return Move{Kind: MoveAssassinate, Player: p, Victim: &victim}
}

func Coup(p, victim PlayerRef) Move {
	return Move{Kind: MoveCoup, Player: p, Victim: &victim}
}

func Challenge(p PlayerRef, action Move) Move {
	return Move{Kind: MoveChallenge, Player: p, Action: &action}
}

func Pass(p PlayerRef, action Move) Move {
	return Move{Kind: MovePass, Player: p, Action: &action}
}

func Block(p PlayerRef, action Move) Move {
	return Move{Kind: MoveBlock, Player: p, Action: &action}
}

func Surrender(p PlayerRef, role Role) Move {
	return Move{Kind: MoveSurrender, Player: p, Role: role}
}

func Show(p PlayerRef, role Role, challenge Move) Move {
	return Move{Kind: MoveShow, Player: p, Role: role, Action: &challenge}
}

// Description is the human readable log line for the move
func (m Move) Description() string {
	name := m.Player.Name
	switch m.Kind {
	case MoveIncome:
		return name + " collected income (1 coin)"
	case MoveForeignAid:
		return name + " collected foreign aid (2 coins)"
	case MoveTax:
		return name + " collected tax (3 coins)"
	case MoveExchange:
		return name + " exchanged their roles"
	case MoveSteal:
		return fmt.Sprintf("%s stole from %s (2 coins)", name, m.victimName())
	case MoveAssassinate:
		return fmt.Sprintf("%s shot %s", name, m.victimName())
	case MoveCoup:
		return fmt.Sprintf("%s overthrew %s", name, m.victimName())
	case MoveChallenge:
		return fmt.Sprintf("%s challenged %q", name, m.actionDescription())
	case MovePass:
		return fmt.Sprintf("%s passed %q", name, m.actionDescription())
	case MoveBlock:
		return fmt.Sprintf("%s blocked %q", name, m.actionDescription())
	case MoveSurrender:
		return fmt.Sprintf("%s surrendered their %s role", name, m.Role)
	case MoveShow:
		return fmt.Sprintf("%s showed their %s role", name, m.Role)
	default:
		return name + " made an unknown move"
	}
}

func (m Move) victimName() string {
	if m.Victim == nil {
		return "nobody"
	}
	return m.Victim.Name
}

func (m Move) actionDescription() string {
	if m.Action == nil {
		return "nothing"
	}
	return m.Action.Description()
}

// IsChallengeable returns true if the move claims a role that can be disputed
func (m Move) IsChallengeable() bool {
	switch m.Kind {
	case MoveTax, MoveExchange, MoveSteal, MoveAssassinate, MoveBlock:
		return true
	}
	return false
}

// IsBlockable returns true if another player can block the move
func (m Move) IsBlockable() bool {
	switch m.Kind {
	case MoveForeignAid, MoveSteal, MoveAssassinate:
		return true
	}
	return false
}

// ProofList returns the roles that entitle a player to make the move
func (m Move) ProofList() []Role {
	switch m.Kind {
	case MoveAssassinate:
		return []Role{RoleSniper}
	case MoveExchange:
		return []Role{RoleDiplomat}
	case MoveSteal:
		return []Role{RoleGeneral}
	case MoveTax:
		return []Role{RolePolitician}
	case MoveBlock:
		if m.Action == nil {
			return nil
		}
		switch m.Action.Kind {
		case MoveAssassinate:
			return []Role{RoleBodyguard}
		case MoveForeignAid:
			return []Role{RolePolitician}
		case MoveSteal:
			return []Role{RoleDiplomat, RoleGeneral}
		}
	}
	return nil
}

// Equal reports whether two moves are structurally identical
func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind || m.Player != o.Player || m.Role != o.Role {
		return false
	}
	if (m.Victim == nil) != (o.Victim == nil) || (m.Victim != nil && *m.Victim != *o.Victim) {
		return false
	}
	if len(m.Changes) != len(o.Changes) {
		return false
	}
	for i := range m.Changes {
		if m.Changes[i] != o.Changes[i] {
			return false
		}
	}
	if (m.Action == nil) != (o.Action == nil) {
		return false
	}
	return m.Action == nil || m.Action.Equal(*o.Action)
}

// Clone returns a deep copy of the move
func (m Move) Clone() Move {
	out := m
	if m.Victim != nil {
		v := *m.Victim
		out.Victim = &v
	}
	if m.Action != nil {
		a := m.Action.Clone()
		out.Action = &a
	}
	if m.Changes != nil {
		out.Changes = append([]RoleChange(nil), m.Changes...)
	}
	return out
}
