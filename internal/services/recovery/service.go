package recovery

import (
	"context"

	"github.com/quizdash/quizdash-go/internal/dependencies/clock"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/sequencer"
	"github.com/quizdash/quizdash-go/internal/storage"
)

// Service rebuilds a reconnecting player's view from persisted state. A
// snapshot is a single storage read and never mutates anything, so clients
// may request one any number of times.
type Service struct {
	storage   storage.Storage
	sequencer sequencer.ServiceInterface
	clock     clock.Clock
}

// New creates a new recovery Service
func New(storage storage.Storage, sequencer sequencer.ServiceInterface, clock clock.Clock) *Service {
	return &Service{
		storage:   storage,
		sequencer: sequencer,
		clock:     clock,
	}
}

// QuestionView is the caller's view of the current question. The correct
// answer is withheld; Eliminated lists the option indexes hidden by the
// caller's own fifty-fifty, so option indexing stays stable for submission.
type QuestionView struct {
	ID         model.QuestionID   `json:"id"`
	Type       model.QuestionType `json:"type"`
	Prompt     string             `json:"prompt"`
	Options    []string           `json:"options,omitempty"`
	Points     int                `json:"points"`
	MediaURL   string             `json:"media_url,omitempty"`
	Eliminated []int              `json:"eliminated,omitempty"`
}

// Snapshot is everything a reconnecting client needs to resume
type Snapshot struct {
	RoomCode      model.RoomCode      `json:"room_code"`
	Status        model.RoomStatus    `json:"status"`
	Roster        []model.RosterEntry `json:"roster"`
	CurrentIndex  int                 `json:"current_index"`
	QuestionCount int                 `json:"question_count"`

	// Question and RemainingMs are set only while a match is in progress
	Question    *QuestionView `json:"question,omitempty"`
	RemainingMs int64         `json:"remaining_ms"`

	// Caller-specific state
	Submitted bool                      `json:"submitted"`
	Modifiers []model.PowerUpKind       `json:"modifiers,omitempty"`
	Holdings  map[model.PowerUpKind]int `json:"holdings,omitempty"`
}

// Snapshot builds the caller's recovery view of the room. It fails with
// ErrNoActiveSession when the caller holds no membership in a non-terminal
// room.
func (s *Service) Snapshot(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*Snapshot, error) {
	room, err := s.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	member := room.Member(playerID)
	if member == nil || room.Status.IsTerminal() {
		return nil, model.ErrNoActiveSession
	}

	now := s.clock.Now()

	roster := make([]model.RosterEntry, len(room.Members))
	for i, m := range room.Members {
		roster[i] = model.RosterEntry{
			PlayerID:    m.PlayerID,
			DisplayName: m.DisplayName,
			IsHost:      m.IsHost,
			Ready:       m.Ready,
			Score:       m.Score,
			Submitted:   room.HasSubmitted(room.CurrentIndex, m.PlayerID),
		}
	}

	snapshot := &Snapshot{
		RoomCode:      room.Code,
		Status:        room.Status,
		Roster:        roster,
		CurrentIndex:  room.CurrentIndex,
		QuestionCount: len(room.Questions),
		RemainingMs:   -1,
		Submitted:     room.HasSubmitted(room.CurrentIndex, playerID),
	}

	for _, m := range member.Modifiers {
		snapshot.Modifiers = append(snapshot.Modifiers, m.Kind)
	}

	holdings, err := s.storage.GetHoldings(ctx, playerID)
	if err != nil {
		return nil, err
	}
	snapshot.Holdings = holdings

	if q := room.CurrentQuestion(); q != nil {
		snapshot.Question = &QuestionView{
			ID:         q.ID,
			Type:       q.Type,
			Prompt:     q.Prompt,
			Options:    q.Options,
			Points:     q.Points,
			MediaURL:   q.MediaURL,
			Eliminated: member.Eliminated[room.CurrentIndex],
		}

		remaining := s.sequencer.Deadline(room).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		snapshot.RemainingMs = remaining.Milliseconds()
	}

	return snapshot, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Snapshot(ctx context.Context, code model.RoomCode, playerID model.PlayerID) (*Snapshot, error)
}

var _ ServiceInterface = (*Service)(nil)
