package model

import "time"

// EventKind identifies the type of room event sent over the transport
type EventKind string

const (
	EventRoomCreated      EventKind = "room_created"
	EventPlayerJoined     EventKind = "player_joined"
	EventPlayerLeft       EventKind = "player_left"
	EventHostChanged      EventKind = "host_changed"
	EventPlayerReady      EventKind = "player_ready"
	EventMatchStarted     EventKind = "match_started"
	EventAnswerReceived   EventKind = "answer_received"
	EventPowerUpUsed      EventKind = "powerup_used"
	EventQuestionAdvanced EventKind = "question_advanced"
	EventMatchFinished    EventKind = "match_finished"
	EventRoomAbandoned    EventKind = "room_abandoned"
)

// RosterEntry is a member's public state carried on every event
type RosterEntry struct {
	PlayerID    PlayerID `json:"player_id"`
	DisplayName string   `json:"display_name"`
	IsHost      bool     `json:"is_host"`
	Ready       bool     `json:"ready"`
	Score       int      `json:"score"`
	Submitted   bool     `json:"submitted"` // for the current question
}

// RoomEvent is the transport payload. Every event carries the room status,
// the full roster and the question cursor, not a delta, so receivers can
// apply any event idempotently regardless of drops or reordering.
type RoomEvent struct {
	Kind          EventKind     `json:"kind"`
	RoomCode      RoomCode      `json:"room_code"`
	Status        RoomStatus    `json:"status"`
	Roster        []RosterEntry `json:"roster"`
	CurrentIndex  int           `json:"current_index"`
	QuestionCount int           `json:"question_count"`
	// RemainingMs is time left on the current question (-1 outside a match)
	RemainingMs int64 `json:"remaining_ms"`
	// ActorID is the player who triggered the event, if any
	ActorID   PlayerID  `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// RoomEventFrom builds the idempotent event payload from a room snapshot
func RoomEventFrom(kind EventKind, room *Room, actor PlayerID, now time.Time, deadline time.Time) RoomEvent {
	roster := make([]RosterEntry, len(room.Members))
	for i, m := range room.Members {
		roster[i] = RosterEntry{
			PlayerID:    m.PlayerID,
			DisplayName: m.DisplayName,
			IsHost:      m.IsHost,
			Ready:       m.Ready,
			Score:       m.Score,
			Submitted:   room.HasSubmitted(room.CurrentIndex, m.PlayerID),
		}
	}

	remaining := int64(-1)
	if room.Status == RoomStatusInProgress && !deadline.IsZero() {
		remaining = deadline.Sub(now).Milliseconds()
		if remaining < 0 {
			remaining = 0
		}
	}

	return RoomEvent{
		Kind:          kind,
		RoomCode:      room.Code,
		Status:        room.Status,
		Roster:        roster,
		CurrentIndex:  room.CurrentIndex,
		QuestionCount: len(room.Questions),
		RemainingMs:   remaining,
		ActorID:       actor,
		Timestamp:     now,
	}
}
