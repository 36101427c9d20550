package model

import "time"

// PowerUpKind names a consumable power-up. Effects are pre-defined rules;
// catalog metadata (names, art, pricing) is out of scope.
type PowerUpKind string

const (
	// PowerUpDoublePoints multiplies the next scored submission's points by 2
	PowerUpDoublePoints PowerUpKind = "double_points"
	// PowerUpScoreFloor guarantees a minimum for the next scored submission
	PowerUpScoreFloor PowerUpKind = "score_floor"
	// PowerUpTimeExtension adds time to the current question's deadline
	PowerUpTimeExtension PowerUpKind = "time_extension"
	// PowerUpFiftyFifty removes half of the incorrect options from the
	// activating player's view
	PowerUpFiftyFifty PowerUpKind = "fifty_fifty"
)

// ModifierCategory groups power-up kinds that conflict with each other;
// at most one modifier per category applies to a scored submission
type ModifierCategory string

const (
	ModifierCategoryMultiplier ModifierCategory = "multiplier"
	ModifierCategoryFloor      ModifierCategory = "floor"
)

// Category returns the modifier category for scoring-effect kinds, or ""
// for kinds that act on the sequencer or the player's view instead
func (k PowerUpKind) Category() ModifierCategory {
	switch k {
	case PowerUpDoublePoints:
		return ModifierCategoryMultiplier
	case PowerUpScoreFloor:
		return ModifierCategoryFloor
	default:
		return ""
	}
}

// Valid reports whether the kind is one of the defined power-ups
func (k PowerUpKind) Valid() bool {
	switch k {
	case PowerUpDoublePoints, PowerUpScoreFloor, PowerUpTimeExtension, PowerUpFiftyFifty:
		return true
	}
	return false
}

// Effect tuning constants
const (
	// TimeExtensionAmount is the additive deadline extension, capped at
	// one extension per question per room
	TimeExtensionAmount = 10 * time.Second
	// ScoreFloorPoints is the guaranteed minimum for a score_floor submission
	ScoreFloorPoints = 5
)

// PowerUpActivation records a consumed power-up against a room's question
type PowerUpActivation struct {
	ID            string // uuid
	RoomCode      RoomCode
	PlayerID      PlayerID
	Kind          PowerUpKind
	QuestionIndex int
	ActivatedAt   time.Time
}

// DefaultHoldings is the starter pack granted to new players
func DefaultHoldings() map[PowerUpKind]int {
	return map[PowerUpKind]int{
		PowerUpDoublePoints:  1,
		PowerUpScoreFloor:    1,
		PowerUpTimeExtension: 1,
		PowerUpFiftyFifty:    1,
	}
}
