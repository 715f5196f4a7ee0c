package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Room events
	EventMemberJoined EventType = "member_joined"
	EventMemberLeft   EventType = "member_left"
	EventGameStarted  EventType = "game_started"
	EventRoomClosed   EventType = "room_closed"

	// Game events
	EventMoveApplied EventType = "move_applied"
	EventGameOver    EventType = "game_over"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType `json:"type"`
	RoomCode  RoomCode  `json:"room_code"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"` // Type-specific data
}

// MemberJoinedPayload contains data for member joined events
type MemberJoinedPayload struct {
	PlayerID PlayerID  `json:"player_id"`
	Player   PlayerRef `json:"player"`
}

// MemberLeftPayload contains data for member left events
type MemberLeftPayload struct {
	PlayerID PlayerID  `json:"player_id"`
	Player   PlayerRef `json:"player"`
	NewOwner PlayerID  `json:"new_owner,omitempty"`
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	Players []PlayerRef `json:"players"` // Seating order
	First   PlayerRef   `json:"first"`
}

// MoveAppliedPayload contains data for move applied events. Exchange
// payloads are never included since they reveal hidden roles.
type MoveAppliedPayload struct {
	Kind        MoveKind  `json:"kind"`
	Player      PlayerRef `json:"player"`
	Description string    `json:"description"`
	Phase       PhaseKind `json:"phase"`
	Version     int64     `json:"version"`
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Winner PlayerRef `json:"winner"`
}

// RoomClosedPayload contains data for room closed events
type RoomClosedPayload struct {
	Reason string `json:"reason"`
}
