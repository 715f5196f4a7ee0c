package model

import "time"

// RoomCode is a human-readable identifier for joining rooms
type RoomCode string

// RoomCodeLength is the number of upper-case letters in a room code
const RoomCodeLength = 8

const (
	MinPlayers = 2
	MaxPlayers = 6
)

// PlayerColors is the palette handed out to room members in join order
var PlayerColors = []string{
	"#E74C3C",
	"#3498DB",
	"#2ECC71",
	"#F1C40F",
	"#9B59B6",
	"#E67E22",
}

// RoomState represents the current state of a room
type RoomState string

const (
	RoomStateWaiting  RoomState = "waiting"  // Gathering players
	RoomStateInGame   RoomState = "in_game"  // Game currently active
	RoomStateFinished RoomState = "finished" // Game over, winner recorded
)

// RoomMember represents a player's seat in a room
type RoomMember struct {
	PlayerID PlayerID
	Name     string
	Color    string
	JoinedAt time.Time
}

// Ref returns the in-game identity of the member
func (m RoomMember) Ref() PlayerRef {
	return PlayerRef{Name: m.Name, Color: m.Color}
}

// Room is a group of players that play one game together
type Room struct {
	Code      RoomCode
	OwnerID   PlayerID
	State     RoomState
	Members   []RoomMember // In join order
	Winner    *PlayerRef   // Set once State is finished
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetMember returns the member with the given player ID, or nil if not found
func (r *Room) GetMember(playerID PlayerID) *RoomMember {
	for i := range r.Members {
		if r.Members[i].PlayerID == playerID {
			return &r.Members[i]
		}
	}
	return nil
}

// IsFull returns true if no more players can join
func (r *Room) IsFull() bool {
	return len(r.Members) >= MaxPlayers
}

// Participants returns the members as game participants in join order
func (r *Room) Participants() []Participant {
	out := make([]Participant, len(r.Members))
	for i, m := range r.Members {
		out[i] = m.Ref()
	}
	return out
}

// FreeColor returns the first palette color not held by a member
func (r *Room) FreeColor() (string, bool) {
	for _, c := range PlayerColors {
		taken := false
		for _, m := range r.Members {
			if m.Color == c {
				taken = true
				break
			}
		}
		if !taken {
			return c, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the room
func (r *Room) Clone() *Room {
	out := *r
	out.Members = append([]RoomMember(nil), r.Members...)
	if r.Winner != nil {
		w := *r.Winner
		out.Winner = &w
	}
	return &out
}
