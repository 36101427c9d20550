package sequencer

import (
	"time"

	"github.com/quizdash/quizdash-go/internal/model"
)

// Service owns the question cursor rules: deadlines, expiry, advancement
// and the one-extension cap. It mutates the room passed in; persistence is
// the caller's job.
type Service struct{}

// New creates a new sequencer Service
func New() *Service {
	return &Service{}
}

// Begin fixes the question sequence on the room and starts the first
// question's clock
func (s *Service) Begin(room *model.Room, questions []model.Question, now time.Time) {
	room.Questions = questions
	room.CurrentIndex = 0
	room.QuestionStartedAt = now
	room.DeadlineExtension = 0
	room.ExtendedIndex = -1
	room.StartedAt = now
}

// Limit returns the full answer window for the current question, including
// any granted extension
func (s *Service) Limit(room *model.Room) time.Duration {
	q := room.CurrentQuestion()
	if q == nil {
		return 0
	}
	base := time.Duration(q.EffectiveTimeLimit(room.Config.SecondsPerQuestion)) * time.Second
	return base + room.DeadlineExtension
}

// Deadline returns the instant the current question's window closes
func (s *Service) Deadline(room *model.Room) time.Time {
	return room.QuestionStartedAt.Add(s.Limit(room))
}

// IsExpired reports whether the current question's deadline has passed
func (s *Service) IsExpired(room *model.Room, now time.Time) bool {
	if room.CurrentQuestion() == nil {
		return false
	}
	return now.After(s.Deadline(room))
}

// AllSubmitted reports whether every current member has an accepted answer
// for the current question
func (s *Service) AllSubmitted(room *model.Room) bool {
	if room.CurrentQuestion() == nil {
		return false
	}
	for i := range room.Members {
		if !room.HasSubmitted(room.CurrentIndex, room.Members[i].PlayerID) {
			return false
		}
	}
	return len(room.Members) > 0
}

// Advance moves the cursor to the next question, or finishes the room when
// the sequence is exhausted. Returns true when the room transitioned to
// finished. A finished room's cursor rests one past the last question, so
// CurrentIndex < len(Questions) holds exactly while the match is running.
func (s *Service) Advance(room *model.Room, now time.Time) bool {
	if room.CurrentIndex+1 >= len(room.Questions) {
		room.CurrentIndex = len(room.Questions)
		room.Status = model.RoomStatusFinished
		return true
	}

	room.CurrentIndex++
	room.QuestionStartedAt = now
	room.DeadlineExtension = 0
	return false
}

// ExtendTime grants the current question's single deadline extension.
// A second attempt for the same question fails with ErrTooLate.
func (s *Service) ExtendTime(room *model.Room, d time.Duration) error {
	if room.CurrentQuestion() == nil {
		return model.ErrInvalidTransition
	}
	if room.ExtendedIndex == room.CurrentIndex {
		return model.ErrTooLate
	}
	room.DeadlineExtension += d
	room.ExtendedIndex = room.CurrentIndex
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Begin(room *model.Room, questions []model.Question, now time.Time)
	Limit(room *model.Room) time.Duration
	Deadline(room *model.Room) time.Time
	IsExpired(room *model.Room, now time.Time) bool
	AllSubmitted(room *model.Room) bool
	Advance(room *model.Room, now time.Time) bool
	ExtendTime(room *model.Room, d time.Duration) error
}

var _ ServiceInterface = (*Service)(nil)
