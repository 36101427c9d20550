package powerup

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quizdash/quizdash-go/internal/dependencies/random"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/sequencer"
	"github.com/quizdash/quizdash-go/internal/storage"
)

// Service is the power-up ledger. Activation validates first, then spends
// the holding exactly once, then applies the effect to the room the caller
// passed in. The caller holds the room lock, persists the room, and then
// either records the activation or refunds the spent holding.
type Service struct {
	storage   storage.Storage
	sequencer sequencer.ServiceInterface
	random    random.Random
}

// New creates a new power-up Service
func New(storage storage.Storage, sequencer sequencer.ServiceInterface, random random.Random) *Service {
	return &Service{
		storage:   storage,
		sequencer: sequencer,
		random:    random,
	}
}

// Activate spends one holding of the kind for the player and applies its
// effect to the room. The quantity check and decrement are a single atomic
// storage operation, so a holding is never spent twice. The effect only
// lives on the in-memory room: the caller persists the room, then calls
// Record, or calls Refund when the save fails.
func (s *Service) Activate(ctx context.Context, room *model.Room, playerID model.PlayerID, kind model.PowerUpKind, now time.Time) (*model.PowerUpActivation, error) {
	if !kind.Valid() {
		return nil, model.ErrUnknownPowerUp
	}

	member := room.Member(playerID)
	if member == nil {
		return nil, model.ErrNotInRoom
	}

	if room.Status != model.RoomStatusInProgress {
		return nil, model.ErrInvalidTransition
	}

	// No effect can land after the deadline or after the player's own
	// accepted answer for the current question
	if s.sequencer.IsExpired(room, now) {
		return nil, model.ErrTooLate
	}
	if room.HasSubmitted(room.CurrentIndex, playerID) {
		return nil, model.ErrTooLate
	}

	// Validate effect preconditions before spending the holding
	if kind == model.PowerUpTimeExtension && room.ExtendedIndex == room.CurrentIndex {
		return nil, model.ErrTooLate
	}

	if err := s.storage.DecrementHolding(ctx, playerID, kind); err != nil {
		return nil, err
	}

	activation := &model.PowerUpActivation{
		ID:            uuid.NewString(),
		RoomCode:      room.Code,
		PlayerID:      playerID,
		Kind:          kind,
		QuestionIndex: room.CurrentIndex,
		ActivatedAt:   now,
	}

	s.applyEffect(room, member, kind, now)

	return activation, nil
}

// Record persists the activation once its room-side effect is durable
func (s *Service) Record(ctx context.Context, activation *model.PowerUpActivation) error {
	return s.storage.AppendActivation(ctx, activation)
}

// Refund returns the spent holding when the activation's effect never made
// it to storage, so the consumable is not lost
func (s *Service) Refund(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error {
	return s.storage.IncrementHolding(ctx, playerID, kind)
}

// Holdings returns the player's current holdings
func (s *Service) Holdings(ctx context.Context, playerID model.PlayerID) (map[model.PowerUpKind]int, error) {
	return s.storage.GetHoldings(ctx, playerID)
}

func (s *Service) applyEffect(room *model.Room, member *model.Membership, kind model.PowerUpKind, now time.Time) {
	switch kind {
	case model.PowerUpTimeExtension:
		// Cap already checked; the shared deadline moves for everyone
		_ = s.sequencer.ExtendTime(room, model.TimeExtensionAmount)

	case model.PowerUpFiftyFifty:
		s.eliminateOptions(room, member)

	case model.PowerUpDoublePoints, model.PowerUpScoreFloor:
		s.setModifier(member, kind, now)
	}
}

// eliminateOptions hides half of the still-visible incorrect options,
// rounded up, from the activating player's view only
func (s *Service) eliminateOptions(room *model.Room, member *model.Membership) {
	q := room.CurrentQuestion()
	if q == nil {
		return
	}

	already := make(map[int]bool)
	for _, idx := range member.Eliminated[room.CurrentIndex] {
		already[idx] = true
	}

	var visible []int
	for _, idx := range q.IncorrectOptions() {
		if !already[idx] {
			visible = append(visible, idx)
		}
	}
	if len(visible) == 0 {
		return
	}

	toRemove := (len(visible) + 1) / 2
	s.random.Shuffle(len(visible), func(i, j int) {
		visible[i], visible[j] = visible[j], visible[i]
	})

	if member.Eliminated == nil {
		member.Eliminated = make(map[int][]int)
	}
	member.Eliminated[room.CurrentIndex] = append(member.Eliminated[room.CurrentIndex], visible[:toRemove]...)
}

// setModifier registers a pending modifier, replacing any existing one of
// the same category (last activation wins)
func (s *Service) setModifier(member *model.Membership, kind model.PowerUpKind, now time.Time) {
	category := kind.Category()

	kept := member.Modifiers[:0]
	for _, m := range member.Modifiers {
		if m.Kind.Category() != category {
			kept = append(kept, m)
		}
	}
	member.Modifiers = append(kept, model.ActiveModifier{Kind: kind, ActivatedAt: now})
}

// Interface for dependency injection
type ServiceInterface interface {
	Activate(ctx context.Context, room *model.Room, playerID model.PlayerID, kind model.PowerUpKind, now time.Time) (*model.PowerUpActivation, error)
	Record(ctx context.Context, activation *model.PowerUpActivation) error
	Refund(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error
	Holdings(ctx context.Context, playerID model.PlayerID) (map[model.PowerUpKind]int, error)
}

var _ ServiceInterface = (*Service)(nil)
