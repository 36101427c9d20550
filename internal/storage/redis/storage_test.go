package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/quizdash/quizdash-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.RoomTTL = time.Hour
	cfg.AnswerTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.storage.SavePlayer(s.ctx, guestPlayer)
	_ = s.storage.SavePlayer(s.ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Room tests

func (s *StorageSuite) newRoom(code model.RoomCode) *model.Room {
	return &model.Room{
		Code:          code,
		Status:        model.RoomStatusWaiting,
		HostID:        "player-1",
		Config:        model.DefaultRoomConfig(),
		ExtendedIndex: -1,
		Members: []model.Membership{
			{PlayerID: "player-1", DisplayName: "Alice", IsHost: true, JoinedAt: time.Now()},
		},
		CreatedAt: time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetRoom() {
	room := s.newRoom("ABC123")

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(room.Code, retrieved.Code)
	s.Equal(room.Status, retrieved.Status)
	s.Len(retrieved.Members, 1)
}

func (s *StorageSuite) TestGetRoomNotFound() {
	_, err := s.storage.GetRoom(s.ctx, "NONEXISTENT")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestSaveRoomBumpsVersion() {
	room := s.newRoom("ABC123")

	err := s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)
	s.Equal(int64(1), room.Version)

	err = s.storage.SaveRoom(s.ctx, room)
	s.Require().NoError(err)
	s.Equal(int64(2), room.Version)
}

func (s *StorageSuite) TestSaveRoomVersionConflict() {
	room := s.newRoom("ABC123")
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	// A second loader with the same version wins the race
	stale, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))

	err = s.storage.SaveRoom(s.ctx, stale)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StorageSuite) TestSaveRoomNewMustBeVersionZero() {
	room := s.newRoom("ABC123")
	room.Version = 5

	err := s.storage.SaveRoom(s.ctx, room)
	s.ErrorIs(err, model.ErrVersionConflict)
}

func (s *StorageSuite) TestRoomExists() {
	room := s.newRoom("ABC123")
	_ = s.storage.SaveRoom(s.ctx, room)

	exists, err := s.storage.RoomExists(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.storage.RoomExists(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StorageSuite) TestDeleteRoom() {
	room := s.newRoom("ABC123")
	_ = s.storage.SaveRoom(s.ctx, room)

	err := s.storage.DeleteRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	_, err = s.storage.GetRoom(s.ctx, "ABC123")
	s.ErrorIs(err, model.ErrRoomNotFound)
}

func (s *StorageSuite) TestRoomTTL() {
	room := s.newRoom("ABC123")
	_ = s.storage.SaveRoom(s.ctx, room)

	ttl := s.mini.TTL(roomKey(room.Code))
	s.True(ttl > 0, "Room should have TTL")
}

// Question bank tests

func (s *StorageSuite) sampleQuestions() []model.Question {
	return []model.Question{
		{ID: "q1", Type: model.QuestionMultipleChoice, Prompt: "1+1?", Options: []string{"1", "2", "3", "4"}, CorrectOptions: []int{1}, Points: 10, Category: "math", Difficulty: "easy"},
		{ID: "q2", Type: model.QuestionTrueFalse, Prompt: "The sky is blue", Options: []string{"True", "False"}, CorrectOptions: []int{0}, Points: 10, Category: "science", Difficulty: "easy"},
		{ID: "q3", Type: model.QuestionMultipleChoice, Prompt: "2*3?", Options: []string{"5", "6", "7", "8"}, CorrectOptions: []int{1}, Points: 10, Category: "math", Difficulty: "hard"},
	}
}

func (s *StorageSuite) TestSaveAndGetQuestionCandidates() {
	s.Require().NoError(s.storage.SaveQuestions(s.ctx, s.sampleQuestions()))

	candidates, err := s.storage.GetQuestionCandidates(s.ctx, model.QuestionFilters{}, 3)
	s.Require().NoError(err)
	s.Len(candidates, 3)
}

func (s *StorageSuite) TestGetQuestionCandidatesFiltered() {
	s.Require().NoError(s.storage.SaveQuestions(s.ctx, s.sampleQuestions()))

	candidates, err := s.storage.GetQuestionCandidates(s.ctx, model.QuestionFilters{Category: "math"}, 2)
	s.Require().NoError(err)
	s.Len(candidates, 2)

	candidates, err = s.storage.GetQuestionCandidates(s.ctx, model.QuestionFilters{Category: "math", Difficulty: "easy"}, 1)
	s.Require().NoError(err)
	s.Len(candidates, 1)
	s.Equal("q1", string(candidates[0].ID))
}

func (s *StorageSuite) TestGetQuestionCandidatesInsufficient() {
	s.Require().NoError(s.storage.SaveQuestions(s.ctx, s.sampleQuestions()))

	_, err := s.storage.GetQuestionCandidates(s.ctx, model.QuestionFilters{Category: "history"}, 1)
	s.ErrorIs(err, model.ErrInsufficientQuestions)
}

func (s *StorageSuite) TestGetQuestionCandidatesBankNotLoaded() {
	_, err := s.storage.GetQuestionCandidates(s.ctx, model.QuestionFilters{}, 1)
	s.ErrorIs(err, model.ErrInsufficientQuestions)
}

// Answer tests

func (s *StorageSuite) TestAppendAndGetAnswers() {
	a1 := &model.SubmittedAnswer{ID: "a1", RoomCode: "ABC123", PlayerID: "p1", QuestionIndex: 0, Correct: true, PointsEarned: 10}
	a2 := &model.SubmittedAnswer{ID: "a2", RoomCode: "ABC123", PlayerID: "p2", QuestionIndex: 0, Correct: false}
	a3 := &model.SubmittedAnswer{ID: "a3", RoomCode: "XYZ789", PlayerID: "p1", QuestionIndex: 0}

	s.Require().NoError(s.storage.AppendAnswer(s.ctx, a1))
	s.Require().NoError(s.storage.AppendAnswer(s.ctx, a2))
	s.Require().NoError(s.storage.AppendAnswer(s.ctx, a3))

	answers, err := s.storage.GetAnswersForRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(answers, 2)
	s.Equal("a1", answers[0].ID)
	s.Equal("a2", answers[1].ID)
}

func (s *StorageSuite) TestGetAnswersForPlayer() {
	a1 := &model.SubmittedAnswer{ID: "a1", RoomCode: "ABC123", PlayerID: "p1", QuestionIndex: 0}
	a2 := &model.SubmittedAnswer{ID: "a2", RoomCode: "ABC123", PlayerID: "p2", QuestionIndex: 0}
	a3 := &model.SubmittedAnswer{ID: "a3", RoomCode: "ABC123", PlayerID: "p1", QuestionIndex: 1}

	_ = s.storage.AppendAnswer(s.ctx, a1)
	_ = s.storage.AppendAnswer(s.ctx, a2)
	_ = s.storage.AppendAnswer(s.ctx, a3)

	answers, err := s.storage.GetAnswersForPlayer(s.ctx, "ABC123", "p1")
	s.Require().NoError(err)
	s.Len(answers, 2)
}

func (s *StorageSuite) TestGetAnswersEmpty() {
	answers, err := s.storage.GetAnswersForRoom(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.Empty(answers)
}

// Holdings tests

func (s *StorageSuite) TestSetAndGetHoldings() {
	holdings := model.DefaultHoldings()

	err := s.storage.SetHoldings(s.ctx, "p1", holdings)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetHoldings(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(holdings, retrieved)
}

func (s *StorageSuite) TestGetHoldingsEmpty() {
	retrieved, err := s.storage.GetHoldings(s.ctx, "nonexistent")
	s.Require().NoError(err)
	s.Empty(retrieved)
}

func (s *StorageSuite) TestDecrementHolding() {
	_ = s.storage.SetHoldings(s.ctx, "p1", map[model.PowerUpKind]int{
		model.PowerUpDoublePoints: 2,
	})

	err := s.storage.DecrementHolding(s.ctx, "p1", model.PowerUpDoublePoints)
	s.Require().NoError(err)

	holdings, err := s.storage.GetHoldings(s.ctx, "p1")
	s.Require().NoError(err)
	s.Equal(1, holdings[model.PowerUpDoublePoints])
}

func (s *StorageSuite) TestDecrementHoldingAtZero() {
	_ = s.storage.SetHoldings(s.ctx, "p1", map[model.PowerUpKind]int{
		model.PowerUpFiftyFifty: 1,
	})

	s.Require().NoError(s.storage.DecrementHolding(s.ctx, "p1", model.PowerUpFiftyFifty))

	err := s.storage.DecrementHolding(s.ctx, "p1", model.PowerUpFiftyFifty)
	s.ErrorIs(err, model.ErrInsufficientQuantity)
}

func (s *StorageSuite) TestDecrementHoldingUnknownKind() {
	err := s.storage.DecrementHolding(s.ctx, "p1", model.PowerUpScoreFloor)
	s.ErrorIs(err, model.ErrInsufficientQuantity)
}

// Activation tests

func (s *StorageSuite) TestAppendAndGetActivations() {
	act := &model.PowerUpActivation{
		ID:            "act-1",
		RoomCode:      "ABC123",
		PlayerID:      "p1",
		Kind:          model.PowerUpDoublePoints,
		QuestionIndex: 2,
		ActivatedAt:   time.Now(),
	}

	s.Require().NoError(s.storage.AppendActivation(s.ctx, act))

	activations, err := s.storage.GetActivationsForRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Len(activations, 1)
	s.Equal(model.PowerUpDoublePoints, activations[0].Kind)
	s.Equal(2, activations[0].QuestionIndex)
}

func (s *StorageSuite) TestGetActivationsEmpty() {
	activations, err := s.storage.GetActivationsForRoom(s.ctx, "NONEXISTENT")
	s.Require().NoError(err)
	s.Empty(activations)
}
