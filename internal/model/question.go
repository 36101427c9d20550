package model

// QuestionID uniquely identifies a question in the bank
type QuestionID string

// QuestionType distinguishes how answers are matched
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice" // one correct option index
	QuestionTrueFalse      QuestionType = "true_false"      // options are ["True", "False"]
	QuestionMultiSelect    QuestionType = "multi_select"    // set of correct option indexes
	QuestionFreeText       QuestionType = "free_text"       // case-insensitive text match
)

// Question is a single quiz question. Immutable once assigned to a room's
// sequence.
type Question struct {
	ID      QuestionID
	Type    QuestionType
	Prompt  string
	Options []string // candidate answers, ordered (empty for free text)

	// Correct answer reference: option indexes for choice types,
	// accepted text for free text
	CorrectOptions []int
	CorrectText    string

	Points     int
	TimeLimit  int // seconds; 0 means use the room's seconds-per-question
	Category   string
	Difficulty string
	MediaURL   string
}

// EffectiveTimeLimit returns the per-question limit, falling back to the
// room default
func (q *Question) EffectiveTimeLimit(roomDefault int) int {
	if q.TimeLimit > 0 {
		return q.TimeLimit
	}
	return roomDefault
}

// IncorrectOptions returns the option indexes that are not correct
func (q *Question) IncorrectOptions() []int {
	correct := make(map[int]bool, len(q.CorrectOptions))
	for _, i := range q.CorrectOptions {
		correct[i] = true
	}
	var wrong []int
	for i := range q.Options {
		if !correct[i] {
			wrong = append(wrong, i)
		}
	}
	return wrong
}

// QuestionFilters selects candidate questions for a room's sequence
type QuestionFilters struct {
	Category   string // empty matches any
	Difficulty string // empty matches any
}

// Matches reports whether a question satisfies the filters
func (f QuestionFilters) Matches(q *Question) bool {
	if f.Category != "" && f.Category != q.Category {
		return false
	}
	if f.Difficulty != "" && f.Difficulty != q.Difficulty {
		return false
	}
	return true
}
