package factory

import (
	"context"
	"time"

	"github.com/quizdash/quizdash-go/internal/dependencies/mocks"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/auth"
	"github.com/quizdash/quizdash-go/internal/storage/memory"
	"github.com/quizdash/quizdash-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	authCfg := auth.Config{
		SigningKey:    []byte("test-signing-key"),
		TokenDuration: 24 * time.Hour,
	}
	app := newWithDependencies(store, mockClock, mockRandom, authCfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestQuestions stores a small question bank covering every question type
func (t *TestApp) LoadTestQuestions() error {
	questions := []model.Question{
		{
			ID:             "geo-1",
			Type:           model.QuestionMultipleChoice,
			Prompt:         "What is the capital of France?",
			Options:        []string{"London", "Paris", "Berlin", "Madrid"},
			CorrectOptions: []int{1},
			Points:         10,
			Category:       "geography",
			Difficulty:     "easy",
		},
		{
			ID:             "geo-2",
			Type:           model.QuestionMultipleChoice,
			Prompt:         "Which is the longest river in the world?",
			Options:        []string{"Amazon", "Nile", "Yangtze", "Mississippi"},
			CorrectOptions: []int{1},
			Points:         10,
			Category:       "geography",
			Difficulty:     "medium",
		},
		{
			ID:             "sci-1",
			Type:           model.QuestionTrueFalse,
			Prompt:         "Sound travels faster in water than in air.",
			Options:        []string{"True", "False"},
			CorrectOptions: []int{0},
			Points:         5,
			Category:       "science",
			Difficulty:     "easy",
		},
		{
			ID:             "sci-2",
			Type:           model.QuestionMultiSelect,
			Prompt:         "Which of these are noble gases?",
			Options:        []string{"Helium", "Oxygen", "Neon", "Nitrogen"},
			CorrectOptions: []int{0, 2},
			Points:         15,
			Category:       "science",
			Difficulty:     "medium",
		},
		{
			ID:          "sci-3",
			Type:        model.QuestionFreeText,
			Prompt:      "What is the chemical symbol for gold?",
			CorrectText: "Au",
			Points:      10,
			Category:    "science",
			Difficulty:  "easy",
		},
		{
			ID:             "hist-1",
			Type:           model.QuestionMultipleChoice,
			Prompt:         "In which year did the Berlin Wall fall?",
			Options:        []string{"1987", "1989", "1991", "1993"},
			CorrectOptions: []int{1},
			Points:         10,
			Category:       "history",
			Difficulty:     "medium",
		},
	}
	return t.QuestionService.LoadQuestions(context.Background(), questions)
}
