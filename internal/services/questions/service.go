package questions

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/quizdash/quizdash-go/internal/dependencies/random"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/storage"
)

// Service provides the question bank and sequence selection
type Service struct {
	storage storage.Storage
	random  random.Random
}

// New creates a new question Service
func New(storage storage.Storage, random random.Random) *Service {
	return &Service{
		storage: storage,
		random:  random,
	}
}

// bankFile is the on-disk JSON shape of the question bank
type bankFile struct {
	Questions []bankQuestion `json:"questions"`
}

type bankQuestion struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Prompt         string   `json:"prompt"`
	Options        []string `json:"options,omitempty"`
	CorrectOptions []int    `json:"correct_options,omitempty"`
	CorrectText    string   `json:"correct_text,omitempty"`
	Points         int      `json:"points"`
	TimeLimit      int      `json:"time_limit,omitempty"`
	Category       string   `json:"category,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	MediaURL       string   `json:"media_url,omitempty"`
}

// LoadFromFile reads a JSON question bank and replaces the stored bank
func (s *Service) LoadFromFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var bank bankFile
	if err := json.Unmarshal(data, &bank); err != nil {
		return 0, fmt.Errorf("parsing question bank: %w", err)
	}

	questions := make([]model.Question, 0, len(bank.Questions))
	for i, bq := range bank.Questions {
		q := model.Question{
			ID:             model.QuestionID(bq.ID),
			Type:           model.QuestionType(bq.Type),
			Prompt:         bq.Prompt,
			Options:        bq.Options,
			CorrectOptions: bq.CorrectOptions,
			CorrectText:    bq.CorrectText,
			Points:         bq.Points,
			TimeLimit:      bq.TimeLimit,
			Category:       bq.Category,
			Difficulty:     bq.Difficulty,
			MediaURL:       bq.MediaURL,
		}
		if err := validateQuestion(&q); err != nil {
			return 0, fmt.Errorf("question %d (%s): %w", i, bq.ID, err)
		}
		questions = append(questions, q)
	}

	if err := s.storage.SaveQuestions(ctx, questions); err != nil {
		return 0, err
	}
	return len(questions), nil
}

// LoadQuestions directly stores a slice of questions (useful for testing)
func (s *Service) LoadQuestions(ctx context.Context, questions []model.Question) error {
	return s.storage.SaveQuestions(ctx, questions)
}

// SelectSequence picks count questions matching the filters, in shuffled
// order. Fails with ErrInsufficientQuestions when the bank cannot satisfy
// the request.
func (s *Service) SelectSequence(ctx context.Context, filters model.QuestionFilters, count int) ([]model.Question, error) {
	candidates, err := s.storage.GetQuestionCandidates(ctx, filters, count)
	if err != nil {
		return nil, err
	}

	s.random.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	return candidates[:count], nil
}

func validateQuestion(q *model.Question) error {
	if q.ID == "" {
		return fmt.Errorf("missing id")
	}
	if q.Prompt == "" {
		return fmt.Errorf("missing prompt")
	}
	if q.Points <= 0 {
		return fmt.Errorf("points must be positive")
	}

	switch q.Type {
	case model.QuestionMultipleChoice:
		if len(q.Options) < 2 {
			return fmt.Errorf("multiple choice needs at least 2 options")
		}
		if len(q.CorrectOptions) != 1 {
			return fmt.Errorf("multiple choice needs exactly 1 correct option")
		}
	case model.QuestionTrueFalse:
		if len(q.Options) != 2 {
			return fmt.Errorf("true/false needs exactly 2 options")
		}
		if len(q.CorrectOptions) != 1 {
			return fmt.Errorf("true/false needs exactly 1 correct option")
		}
	case model.QuestionMultiSelect:
		if len(q.Options) < 2 {
			return fmt.Errorf("multi select needs at least 2 options")
		}
		if len(q.CorrectOptions) == 0 {
			return fmt.Errorf("multi select needs at least 1 correct option")
		}
	case model.QuestionFreeText:
		if q.CorrectText == "" {
			return fmt.Errorf("free text needs a correct answer")
		}
	default:
		return fmt.Errorf("unknown type %q", q.Type)
	}

	for _, idx := range q.CorrectOptions {
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("correct option index %d out of range", idx)
		}
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	LoadFromFile(ctx context.Context, path string) (int, error)
	LoadQuestions(ctx context.Context, questions []model.Question) error
	SelectSequence(ctx context.Context, filters model.QuestionFilters, count int) ([]model.Question, error)
}

var _ ServiceInterface = (*Service)(nil)
