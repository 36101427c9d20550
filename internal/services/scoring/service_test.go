package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quizdash/quizdash-go/internal/model"
)

func multipleChoiceQuestion() *model.Question {
	return &model.Question{
		ID:             "q1",
		Type:           model.QuestionMultipleChoice,
		Prompt:         "1+1?",
		Options:        []string{"1", "2", "3", "4"},
		CorrectOptions: []int{1},
		Points:         10,
	}
}

func TestMatchAnswer(t *testing.T) {
	tests := []struct {
		name     string
		question *model.Question
		raw      string
		want     bool
	}{
		{
			name:     "multiple choice correct",
			question: multipleChoiceQuestion(),
			raw:      "1",
			want:     true,
		},
		{
			name:     "multiple choice wrong option",
			question: multipleChoiceQuestion(),
			raw:      "2",
			want:     false,
		},
		{
			name:     "multiple choice garbage",
			question: multipleChoiceQuestion(),
			raw:      "banana",
			want:     false,
		},
		{
			name: "true false correct",
			question: &model.Question{
				Type:           model.QuestionTrueFalse,
				Options:        []string{"True", "False"},
				CorrectOptions: []int{0},
			},
			raw:  "0",
			want: true,
		},
		{
			name: "multi select exact set",
			question: &model.Question{
				Type:           model.QuestionMultiSelect,
				Options:        []string{"a", "b", "c", "d"},
				CorrectOptions: []int{0, 2},
			},
			raw:  "2,0",
			want: true,
		},
		{
			name: "multi select partial",
			question: &model.Question{
				Type:           model.QuestionMultiSelect,
				Options:        []string{"a", "b", "c", "d"},
				CorrectOptions: []int{0, 2},
			},
			raw:  "0",
			want: false,
		},
		{
			name: "multi select superset",
			question: &model.Question{
				Type:           model.QuestionMultiSelect,
				Options:        []string{"a", "b", "c", "d"},
				CorrectOptions: []int{0, 2},
			},
			raw:  "0,2,3",
			want: false,
		},
		{
			name: "multi select duplicate indexes collapse",
			question: &model.Question{
				Type:           model.QuestionMultiSelect,
				Options:        []string{"a", "b", "c", "d"},
				CorrectOptions: []int{0, 2},
			},
			raw:  "0,0,2",
			want: true,
		},
		{
			name: "free text case insensitive",
			question: &model.Question{
				Type:        model.QuestionFreeText,
				CorrectText: "Paris",
			},
			raw:  "  pArIs ",
			want: true,
		},
		{
			name: "free text wrong",
			question: &model.Question{
				Type:        model.QuestionFreeText,
				CorrectText: "Paris",
			},
			raw:  "London",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchAnswer(tt.question, tt.raw))
		})
	}
}

func TestScoreNoBonus(t *testing.T) {
	svc := New()

	result := svc.Score(Input{
		Question: multipleChoiceQuestion(),
		RawValue: "1",
		Elapsed:  25 * time.Second,
		Limit:    30 * time.Second,
	})

	assert.True(t, result.Correct)
	assert.Equal(t, 10, result.Points)
}

func TestScoreIncorrectEarnsZero(t *testing.T) {
	svc := New()

	result := svc.Score(Input{
		Question: multipleChoiceQuestion(),
		RawValue: "3",
	})

	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.Points)
}

func TestScoreTimeBonus(t *testing.T) {
	svc := New()
	q := multipleChoiceQuestion()

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"instant answer full points", 0, 10},
		{"halfway earns midpoint", 15 * time.Second, 8}, // floor 5 + half of remaining 5, rounded
		{"at deadline earns floor", 30 * time.Second, 5},
		{"past deadline clamps to floor", 40 * time.Second, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := svc.Score(Input{
				Question:       q,
				RawValue:       "1",
				Elapsed:        tt.elapsed,
				Limit:          30 * time.Second,
				TimeBonusFloor: 50,
			})
			assert.Equal(t, tt.want, result.Points)
		})
	}
}

func TestScoreLateSubmission(t *testing.T) {
	svc := New()

	result := svc.Score(Input{
		Question: multipleChoiceQuestion(),
		RawValue: "1",
		Late:     true,
	})

	// Correctness is still evaluated and recorded, but no points
	assert.True(t, result.Correct)
	assert.Equal(t, 0, result.Points)
}

func TestScoreDoublePoints(t *testing.T) {
	svc := New()

	result := svc.Score(Input{
		Question:  multipleChoiceQuestion(),
		RawValue:  "1",
		Modifiers: []model.ActiveModifier{{Kind: model.PowerUpDoublePoints}},
	})

	assert.Equal(t, 20, result.Points)
}

func TestScoreFloorOnIncorrect(t *testing.T) {
	svc := New()

	result := svc.Score(Input{
		Question:  multipleChoiceQuestion(),
		RawValue:  "3",
		Modifiers: []model.ActiveModifier{{Kind: model.PowerUpScoreFloor}},
	})

	assert.False(t, result.Correct)
	assert.Equal(t, model.ScoreFloorPoints, result.Points)
}

func TestScoreFloorDoesNotReduce(t *testing.T) {
	svc := New()

	result := svc.Score(Input{
		Question:  multipleChoiceQuestion(),
		RawValue:  "1",
		Modifiers: []model.ActiveModifier{{Kind: model.PowerUpScoreFloor}},
	})

	assert.Equal(t, 10, result.Points)
}

func TestScoreMultiplierThenFloor(t *testing.T) {
	svc := New()

	// Incorrect with both modifiers: 0 * 2 = 0, then floored to 5
	result := svc.Score(Input{
		Question: multipleChoiceQuestion(),
		RawValue: "3",
		Modifiers: []model.ActiveModifier{
			{Kind: model.PowerUpScoreFloor},
			{Kind: model.PowerUpDoublePoints},
		},
	})

	assert.Equal(t, model.ScoreFloorPoints, result.Points)

	// Correct with both: 10 * 2 = 20, floor is a no-op
	result = svc.Score(Input{
		Question: multipleChoiceQuestion(),
		RawValue: "1",
		Modifiers: []model.ActiveModifier{
			{Kind: model.PowerUpScoreFloor},
			{Kind: model.PowerUpDoublePoints},
		},
	})

	assert.Equal(t, 20, result.Points)
}
