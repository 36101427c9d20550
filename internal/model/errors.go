package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Room errors
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is full")
	ErrRoomNotJoinable = errors.New("room is not accepting new players")
	ErrNotInRoom       = errors.New("player is not in room")
	ErrNotHost         = errors.New("player is not the host")
	ErrConfigInvalid   = errors.New("room configuration out of bounds")
	ErrCodeExhausted   = errors.New("could not generate a unique room code")
	ErrNotEnoughReady  = errors.New("not all players are ready")

	// Match errors
	ErrInvalidTransition     = errors.New("operation not legal in current room status")
	ErrNotCurrentQuestion    = errors.New("question is not the room's current question")
	ErrDuplicateSubmission   = errors.New("player already answered this question")
	ErrInsufficientQuestions = errors.New("not enough questions match the room filters")
	ErrRoomFinished          = errors.New("room has finished")
	ErrRoomAbandoned         = errors.New("room has been abandoned")

	// Power-up errors
	ErrUnknownPowerUp       = errors.New("unknown power-up kind")
	ErrInsufficientQuantity = errors.New("no holdings of this power-up remain")
	ErrTooLate              = errors.New("power-up activated after deadline or submission")

	// Storage errors
	ErrVersionConflict = errors.New("room was modified concurrently")

	// Recovery errors
	ErrNoActiveSession = errors.New("player has no membership in an active room")
)
