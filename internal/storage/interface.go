package storage

import (
	"context"

	"github.com/quizdash/quizdash-go/internal/model"
)

// Storage defines the interface for data persistence. It is the durability
// backstop, not the concurrency authority: the session controller's
// per-room critical section makes the decisions, and SaveRoom's version
// check only guards against writes that bypassed it.
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Room operations. SaveRoom enforces optimistic versioning: the
	// caller's Version must match the stored Version or the save fails
	// with ErrVersionConflict; on success the room's Version is bumped.
	// GetRoom returns a deep copy, never a live reference.
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	DeleteRoom(ctx context.Context, code model.RoomCode) error
	RoomExists(ctx context.Context, code model.RoomCode) (bool, error)

	// Question bank operations. GetQuestionCandidates returns every
	// question matching the filters, and fails with
	// ErrInsufficientQuestions when fewer than count match.
	SaveQuestions(ctx context.Context, questions []model.Question) error
	GetQuestionCandidates(ctx context.Context, filters model.QuestionFilters, count int) ([]model.Question, error)

	// Submitted answer operations (append-only)
	AppendAnswer(ctx context.Context, answer *model.SubmittedAnswer) error
	GetAnswersForRoom(ctx context.Context, code model.RoomCode) ([]*model.SubmittedAnswer, error)
	GetAnswersForPlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) ([]*model.SubmittedAnswer, error)

	// Power-up holdings. DecrementHolding is atomic and fails with
	// ErrInsufficientQuantity rather than ever going below zero.
	// IncrementHolding restores one unit when an activation's room-side
	// effect could not be persisted.
	SetHoldings(ctx context.Context, playerID model.PlayerID, holdings map[model.PowerUpKind]int) error
	GetHoldings(ctx context.Context, playerID model.PlayerID) (map[model.PowerUpKind]int, error)
	DecrementHolding(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error
	IncrementHolding(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error

	// Power-up activation records (append-only)
	AppendActivation(ctx context.Context, activation *model.PowerUpActivation) error
	GetActivationsForRoom(ctx context.Context, code model.RoomCode) ([]*model.PowerUpActivation, error)
}
