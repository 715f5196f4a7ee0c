package model

// Role is one of the five character cards
type Role string

const (
	RolePolitician Role = "POLITICIAN"
	RoleSniper     Role = "SNIPER"
	RoleDiplomat   Role = "DIPLOMAT"
	RoleGeneral    Role = "GENERAL"
	RoleBodyguard  Role = "BODYGUARD"
)

// CopiesPerRole is the number of cards of each role in a deck
const CopiesPerRole = 3

// roleColors maps each role to its display color
var roleColors = map[Role]string{
	RoleBodyguard:  "#2E86AB",
	RoleSniper:     "#C0392B",
	RoleDiplomat:   "#27AE60",
	RolePolitician: "#8E44AD",
	RoleGeneral:    "#D68910",
}

// AllRoles returns every role in canonical order
func AllRoles() []Role {
	return []Role{RolePolitician, RoleSniper, RoleDiplomat, RoleGeneral, RoleBodyguard}
}

// FullDeck returns the complete unshuffled deck
func FullDeck() []Role {
	deck := make([]Role, 0, len(AllRoles())*CopiesPerRole)
	for _, r := range AllRoles() {
		for i := 0; i < CopiesPerRole; i++ {
			deck = append(deck, r)
		}
	}
	return deck
}

// Valid returns true if r is a known role
func (r Role) Valid() bool {
	_, ok := roleColors[r]
	return ok
}

// Color returns the display color of the role
func (r Role) Color() string {
	return roleColors[r]
}

// ContainsRole reports whether role is in roles
func ContainsRole(roles []Role, role Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// RemoveRole returns roles with the first occurrence of role removed
func RemoveRole(roles []Role, role Role) ([]Role, bool) {
	for i, r := range roles {
		if r == role {
			out := make([]Role, 0, len(roles)-1)
			out = append(out, roles[:i]...)
			return append(out, roles[i+1:]...), true
		}
	}
	return roles, false
}

// Influence is a role card held by a player, face down while alive
type Influence struct {
	Role  Role `json:"role"`
	Alive bool `json:"alive"`
}
