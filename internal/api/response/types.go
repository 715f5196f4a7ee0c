package response

import (
	"time"

	"github.com/mcoot/coup-go/internal/model"
	"github.com/mcoot/coup-go/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player    `json:"player"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *model.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// RoomMember represents a room member
type RoomMember struct {
	PlayerID string    `json:"player_id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	IsOwner  bool      `json:"is_owner"`
	JoinedAt time.Time `json:"joined_at"`
}

// Room represents a room in API responses
type Room struct {
	Code    string           `json:"code"`
	State   string           `json:"state"`
	OwnerID string           `json:"owner_id"`
	Members []RoomMember     `json:"members"`
	Winner  *model.PlayerRef `json:"winner,omitempty"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	members := make([]RoomMember, len(r.Members))
	for i, m := range r.Members {
		members[i] = RoomMember{
			PlayerID: string(m.PlayerID),
			Name:     m.Name,
			Color:    m.Color,
			IsOwner:  m.PlayerID == r.OwnerID,
			JoinedAt: m.JoinedAt,
		}
	}
	return Room{
		Code:    string(r.Code),
		State:   string(r.State),
		OwnerID: string(r.OwnerID),
		Members: members,
		Winner:  r.Winner,
	}
}

// GameView is a game redacted for the requesting player
type GameView = game.View

// PlayerView and InfluenceView are the per-seat parts of a GameView
type (
	PlayerView    = game.PlayerView
	InfluenceView = game.InfluenceView
)

// Health is the response for the health endpoint
type Health struct {
	Status string `json:"status"`
	Server string `json:"server,omitempty"`
}
