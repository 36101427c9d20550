package scoring

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/quizdash/quizdash-go/internal/model"
)

// Service computes points for accepted submissions. It is pure computation;
// all state comes in through Input.
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// Input carries everything needed to score one submission
type Input struct {
	Question *model.Question
	RawValue string

	// Elapsed is time from question start to submission; Limit is the
	// effective deadline window including any extension
	Elapsed time.Duration
	Limit   time.Duration

	// TimeBonusFloor is the room's configured bonus floor in percent;
	// 0 disables the time bonus
	TimeBonusFloor int

	// Modifiers pending for the player, as stored on the membership
	Modifiers []model.ActiveModifier

	// Late marks a submission accepted after the deadline but before
	// advancement; it earns zero base points
	Late bool
}

// Result is the scoring outcome for one submission
type Result struct {
	Correct bool
	Points  int
}

// Score evaluates correctness and points for a submission. Modifier order
// is fixed: multiplier first, then floor.
func (s *Service) Score(in Input) Result {
	correct := MatchAnswer(in.Question, in.RawValue)

	points := 0
	if correct && !in.Late {
		points = s.basePoints(in)
	}

	// Multiplier before floor, regardless of activation order
	if hasModifier(in.Modifiers, model.ModifierCategoryMultiplier) {
		points *= 2
	}
	if hasModifier(in.Modifiers, model.ModifierCategoryFloor) && points < model.ScoreFloorPoints {
		points = model.ScoreFloorPoints
	}

	return Result{Correct: correct, Points: points}
}

// basePoints applies the linear time bonus when configured: full points at
// elapsed zero, decaying to points*floor% at the deadline
func (s *Service) basePoints(in Input) int {
	full := in.Question.Points
	if in.TimeBonusFloor <= 0 || in.Limit <= 0 {
		return full
	}

	elapsed := in.Elapsed
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > in.Limit {
		elapsed = in.Limit
	}

	floor := float64(full) * float64(in.TimeBonusFloor) / 100.0
	fraction := 1.0 - float64(elapsed)/float64(in.Limit)
	points := floor + (float64(full)-floor)*fraction

	// Round half up so a full-speed answer always earns full points
	return int(points + 0.5)
}

// MatchAnswer reports whether the raw submitted value is correct for the
// question. Choice answers are option indexes; multi-select is a
// comma-separated index set; free text matches case-insensitively after
// trimming.
func MatchAnswer(q *model.Question, raw string) bool {
	switch q.Type {
	case model.QuestionMultipleChoice, model.QuestionTrueFalse:
		idx, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return false
		}
		return len(q.CorrectOptions) == 1 && idx == q.CorrectOptions[0]

	case model.QuestionMultiSelect:
		submitted, err := parseIndexSet(raw)
		if err != nil {
			return false
		}
		if len(submitted) != len(q.CorrectOptions) {
			return false
		}
		correct := append([]int(nil), q.CorrectOptions...)
		sort.Ints(correct)
		for i := range submitted {
			if submitted[i] != correct[i] {
				return false
			}
		}
		return true

	case model.QuestionFreeText:
		return strings.EqualFold(strings.TrimSpace(raw), strings.TrimSpace(q.CorrectText))
	}
	return false
}

// parseIndexSet parses a comma-separated list of option indexes into a
// sorted, deduplicated slice
func parseIndexSet(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	seen := make(map[int]bool, len(parts))
	var indexes []int
	for _, p := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if !seen[idx] {
			seen[idx] = true
			indexes = append(indexes, idx)
		}
	}
	sort.Ints(indexes)
	return indexes, nil
}

func hasModifier(modifiers []model.ActiveModifier, category model.ModifierCategory) bool {
	for _, m := range modifiers {
		if m.Kind.Category() == category {
			return true
		}
	}
	return false
}

// Interface for dependency injection
type ServiceInterface interface {
	Score(in Input) Result
}

var _ ServiceInterface = (*Service)(nil)
