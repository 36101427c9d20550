package recovery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizdash/quizdash-go/internal/dependencies/mocks"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/sequencer"
	"github.com/quizdash/quizdash-go/internal/storage/memory"
)

type RecoverySuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
	t0      time.Time
}

func TestRecoverySuite(t *testing.T) {
	suite.Run(t, new(RecoverySuite))
}

func (s *RecoverySuite) SetupTest() {
	s.t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(s.t0)
	s.service = New(s.storage, sequencer.New(), s.clock)
	s.ctx = context.Background()
}

func (s *RecoverySuite) saveRoom(room *model.Room) {
	s.Require().NoError(s.storage.SaveRoom(s.ctx, room))
}

func (s *RecoverySuite) inProgressRoom() *model.Room {
	return &model.Room{
		Code:   "ABC123",
		Status: model.RoomStatusInProgress,
		HostID: "p1",
		Config: model.DefaultRoomConfig(),
		Members: []model.Membership{
			{PlayerID: "p1", DisplayName: "Alice", IsHost: true, Score: 20},
			{PlayerID: "p2", DisplayName: "Bob", Score: 10,
				Eliminated: map[int][]int{0: {0, 3}},
				Modifiers:  []model.ActiveModifier{{Kind: model.PowerUpDoublePoints}}},
		},
		Questions: []model.Question{
			{ID: "q1", Type: model.QuestionMultipleChoice, Prompt: "1+1?", Options: []string{"1", "2", "3", "4"}, CorrectOptions: []int{1}, Points: 10},
			{ID: "q2", Type: model.QuestionFreeText, Prompt: "?", CorrectText: "x", Points: 10},
		},
		CurrentIndex:      0,
		QuestionStartedAt: s.t0,
		ExtendedIndex:     -1,
	}
}

func (s *RecoverySuite) TestSnapshotInProgress() {
	s.saveRoom(s.inProgressRoom())
	s.clock.Advance(10 * time.Second)

	snapshot, err := s.service.Snapshot(s.ctx, "ABC123", "p2")
	s.Require().NoError(err)

	s.Equal(model.RoomStatusInProgress, snapshot.Status)
	s.Equal(0, snapshot.CurrentIndex)
	s.Equal(2, snapshot.QuestionCount)
	s.Len(snapshot.Roster, 2)

	s.Require().NotNil(snapshot.Question)
	s.Equal(model.QuestionID("q1"), snapshot.Question.ID)
	s.Equal([]string{"1", "2", "3", "4"}, snapshot.Question.Options)
	s.Equal([]int{0, 3}, snapshot.Question.Eliminated)

	// 30s window, 10s elapsed
	s.Equal(int64(20000), snapshot.RemainingMs)

	s.Equal([]model.PowerUpKind{model.PowerUpDoublePoints}, snapshot.Modifiers)
}

func (s *RecoverySuite) TestSnapshotEliminationsAreCallerScoped() {
	s.saveRoom(s.inProgressRoom())

	snapshot, err := s.service.Snapshot(s.ctx, "ABC123", "p1")
	s.Require().NoError(err)

	s.Empty(snapshot.Question.Eliminated)
	s.Empty(snapshot.Modifiers)
}

func (s *RecoverySuite) TestSnapshotWaitingRoomHasNoQuestion() {
	room := s.inProgressRoom()
	room.Status = model.RoomStatusWaiting
	room.Questions = nil
	s.saveRoom(room)

	snapshot, err := s.service.Snapshot(s.ctx, "ABC123", "p1")
	s.Require().NoError(err)

	s.Nil(snapshot.Question)
	s.Equal(int64(-1), snapshot.RemainingMs)
}

func (s *RecoverySuite) TestSnapshotRemainingClampsToZero() {
	s.saveRoom(s.inProgressRoom())
	s.clock.Advance(45 * time.Second)

	snapshot, err := s.service.Snapshot(s.ctx, "ABC123", "p1")
	s.Require().NoError(err)
	s.Equal(int64(0), snapshot.RemainingMs)
}

func (s *RecoverySuite) TestSnapshotIsReadOnly() {
	s.saveRoom(s.inProgressRoom())

	before, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		_, err := s.service.Snapshot(s.ctx, "ABC123", "p2")
		s.Require().NoError(err)
	}

	after, err := s.storage.GetRoom(s.ctx, "ABC123")
	s.Require().NoError(err)
	s.Equal(before, after)
}

func (s *RecoverySuite) TestSnapshotNotAMember() {
	s.saveRoom(s.inProgressRoom())

	_, err := s.service.Snapshot(s.ctx, "ABC123", "p9")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *RecoverySuite) TestSnapshotTerminalRoom() {
	room := s.inProgressRoom()
	room.Status = model.RoomStatusFinished
	s.saveRoom(room)

	_, err := s.service.Snapshot(s.ctx, "ABC123", "p1")
	s.ErrorIs(err, model.ErrNoActiveSession)
}

func (s *RecoverySuite) TestSnapshotRoomNotFound() {
	_, err := s.service.Snapshot(s.ctx, "NOPE", "p1")
	s.ErrorIs(err, model.ErrRoomNotFound)
}
