package model

import "time"

// PlayerID uniquely identifies a player account across the system
type PlayerID string

// Player represents an account that can join rooms
type Player struct {
	ID          PlayerID
	DisplayName string
	IsGuest     bool // true for unregistered players
	CreatedAt   time.Time
}

// RegisteredPlayer extends Player with authentication data
// Stored separately for security (password never in memory with session)
type RegisteredPlayer struct {
	PlayerID     PlayerID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is an authenticated session for a player
type Session struct {
	Token     string
	PlayerID  PlayerID
	Player    Player
	CreatedAt time.Time
	ExpiresAt time.Time
}

// PlayerRef identifies a seat in a game. Name and color together are the
// equality key; a seat is copied between states, never shared.
type PlayerRef struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Participant is a room member handed to the game initializer
type Participant = PlayerRef

// GamePlayer is a seated player with coins and two influence slots
type GamePlayer struct {
	PlayerRef
	Coins      int          `json:"coins"`
	Influences [2]Influence `json:"influences"`
}

// Ref returns the identity of the player
func (p GamePlayer) Ref() PlayerRef {
	return p.PlayerRef
}

// Is reports whether p is the seat identified by ref
func (p GamePlayer) Is(ref PlayerRef) bool {
	return p.PlayerRef == ref
}

// Eliminated returns true once both influences are dead
func (p GamePlayer) Eliminated() bool {
	return !p.Influences[0].Alive && !p.Influences[1].Alive
}

// AliveRoles returns the roles of the living influences in slot order
func (p GamePlayer) AliveRoles() []Role {
	var roles []Role
	for _, inf := range p.Influences {
		if inf.Alive {
			roles = append(roles, inf.Role)
		}
	}
	return roles
}

// AliveCount returns the number of living influences
func (p GamePlayer) AliveCount() int {
	return len(p.AliveRoles())
}

// HasAlive returns true if the player holds role face down
func (p GamePlayer) HasAlive(role Role) bool {
	return ContainsRole(p.AliveRoles(), role)
}

// HasAnyAlive returns true if the player holds any of roles face down
func (p GamePlayer) HasAnyAlive(roles []Role) bool {
	for _, r := range roles {
		if p.HasAlive(r) {
			return true
		}
	}
	return false
}
