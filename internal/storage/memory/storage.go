package memory

import (
	"context"
	"sync"

	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	rooms             map[model.RoomCode]*model.Room
	questions         []model.Question
	answers           map[model.RoomCode][]*model.SubmittedAnswer
	holdings          map[model.PlayerID]map[model.PowerUpKind]int
	activations       map[model.RoomCode][]*model.PowerUpActivation
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		rooms:             make(map[model.RoomCode]*model.Room),
		answers:           make(map[model.RoomCode][]*model.SubmittedAnswer),
		holdings:          make(map[model.PlayerID]map[model.PowerUpKind]int),
		activations:       make(map[model.RoomCode][]*model.PowerUpActivation),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, exists := s.rooms[room.Code]
	if exists && stored.Version != room.Version {
		return model.ErrVersionConflict
	}
	if !exists && room.Version != 0 {
		return model.ErrVersionConflict
	}

	room.Version++
	s.rooms[room.Code] = room.Clone()
	return nil
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[code]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, code)
	return nil
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[code]
	return ok, nil
}

// Question bank operations

func (s *Storage) SaveQuestions(ctx context.Context, questions []model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = make([]model.Question, len(questions))
	copy(s.questions, questions)
	return nil
}

func (s *Storage) GetQuestionCandidates(ctx context.Context, filters model.QuestionFilters, count int) ([]model.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []model.Question
	for i := range s.questions {
		if filters.Matches(&s.questions[i]) {
			candidates = append(candidates, s.questions[i])
		}
	}
	if len(candidates) < count {
		return nil, model.ErrInsufficientQuestions
	}
	return candidates, nil
}

// Submitted answer operations

func (s *Storage) AppendAnswer(ctx context.Context, answer *model.SubmittedAnswer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[answer.RoomCode] = append(s.answers[answer.RoomCode], answer)
	return nil
}

func (s *Storage) GetAnswersForRoom(ctx context.Context, code model.RoomCode) ([]*model.SubmittedAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.SubmittedAnswer, len(s.answers[code]))
	copy(result, s.answers[code])
	return result, nil
}

func (s *Storage) GetAnswersForPlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) ([]*model.SubmittedAnswer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []*model.SubmittedAnswer
	for _, a := range s.answers[code] {
		if a.PlayerID == playerID {
			result = append(result, a)
		}
	}
	return result, nil
}

// Power-up holdings

func (s *Storage) SetHoldings(ctx context.Context, playerID model.PlayerID, holdings map[model.PowerUpKind]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[model.PowerUpKind]int, len(holdings))
	for k, v := range holdings {
		copied[k] = v
	}
	s.holdings[playerID] = copied
	return nil
}

func (s *Storage) GetHoldings(ctx context.Context, playerID model.PlayerID) (map[model.PowerUpKind]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make(map[model.PowerUpKind]int, len(s.holdings[playerID]))
	for k, v := range s.holdings[playerID] {
		result[k] = v
	}
	return result, nil
}

func (s *Storage) DecrementHolding(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holdings[playerID][kind] <= 0 {
		return model.ErrInsufficientQuantity
	}
	s.holdings[playerID][kind]--
	return nil
}

func (s *Storage) IncrementHolding(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.holdings[playerID] == nil {
		s.holdings[playerID] = make(map[model.PowerUpKind]int)
	}
	s.holdings[playerID][kind]++
	return nil
}

// Power-up activation records

func (s *Storage) AppendActivation(ctx context.Context, activation *model.PowerUpActivation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activations[activation.RoomCode] = append(s.activations[activation.RoomCode], activation)
	return nil
}

func (s *Storage) GetActivationsForRoom(ctx context.Context, code model.RoomCode) ([]*model.PowerUpActivation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]*model.PowerUpActivation, len(s.activations[code]))
	copy(result, s.activations[code])
	return result, nil
}
