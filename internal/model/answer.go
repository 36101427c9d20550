package model

import "time"

// SubmittedAnswer records a player's accepted answer for one question.
// At most one exists per (room, player, question); PointsEarned is fixed at
// scoring time and never recomputed.
type SubmittedAnswer struct {
	ID            string // uuid
	RoomCode      RoomCode
	PlayerID      PlayerID
	QuestionID    QuestionID
	QuestionIndex int

	Value        string // raw submitted value
	Correct      bool
	PointsEarned int
	ElapsedMs    int64
	SubmittedAt  time.Time
}
