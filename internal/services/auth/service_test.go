package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/quizdash/quizdash-go/internal/dependencies/mocks"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/storage/memory"
)

type AuthServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{
		SigningKey:    []byte("test-signing-key"),
		TokenDuration: time.Hour,
	})
	s.ctx = context.Background()
}

func (s *AuthServiceSuite) TestCreateGuestPlayer() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("Alice", session.Player.DisplayName)
	s.True(session.Player.IsGuest)

	// Player persisted
	player, err := s.storage.GetPlayer(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal("Alice", player.DisplayName)

	// Starter pack granted
	holdings, err := s.storage.GetHoldings(s.ctx, session.PlayerID)
	s.Require().NoError(err)
	s.Equal(model.DefaultHoldings(), holdings)
}

func (s *AuthServiceSuite) TestRegisterAndLogin() {
	session, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2", "Alice")
	s.Require().NoError(err)
	s.False(session.Player.IsGuest)

	loginSession, err := s.service.Login(s.ctx, "alice", "hunter2")
	s.Require().NoError(err)
	s.Equal(session.PlayerID, loginSession.PlayerID)
}

func (s *AuthServiceSuite) TestRegisterDuplicateUsername() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.RegisterPlayer(s.ctx, "alice", "other", "Alice2")
	s.ErrorIs(err, ErrUsernameExists)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.service.RegisterPlayer(s.ctx, "alice", "hunter2", "Alice")
	s.Require().NoError(err)

	_, err = s.service.Login(s.ctx, "alice", "wrong")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestLoginUnknownUsername() {
	_, err := s.service.Login(s.ctx, "nobody", "whatever")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceSuite) TestValidateToken() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	player, err := s.service.ValidateToken(session.Token)
	s.Require().NoError(err)
	s.Equal(session.PlayerID, player.ID)
	s.Equal("Alice", player.DisplayName)
	s.True(player.IsGuest)
}

func (s *AuthServiceSuite) TestValidateTokenExpired() {
	session, err := s.service.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)

	_, err = s.service.ValidateToken(session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AuthServiceSuite) TestValidateTokenGarbage() {
	_, err := s.service.ValidateToken("not-a-jwt")
	s.ErrorIs(err, ErrInvalidToken)
}

func (s *AuthServiceSuite) TestValidateTokenWrongKey() {
	other := New(s.storage, s.clock, Config{
		SigningKey:    []byte("different-key"),
		TokenDuration: time.Hour,
	})

	session, err := other.CreateGuestPlayer(s.ctx, "Alice")
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(session.Token)
	s.ErrorIs(err, ErrInvalidToken)
}
