package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/quizdash/quizdash-go/internal/dependencies/clock"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/storage"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameExists     = errors.New("username already exists")
)

// Session is the result of a successful guest creation, registration or login
type Session struct {
	Token     string
	PlayerID  model.PlayerID
	Player    model.Player
	ExpiresAt time.Time
}

// Claims is the JWT payload carried by every issued token
type Claims struct {
	DisplayName string `json:"display_name"`
	Guest       bool   `json:"guest"`
	jwt.RegisteredClaims
}

// Config holds configuration for the auth service
type Config struct {
	SigningKey    []byte
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// Service handles player identity and stateless JWT session tokens.
// Tokens are self-contained, so validation needs no storage round trip.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
}

// New creates a new auth Service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
	}
}

// CreateGuestPlayer creates an anonymous player and issues a token
func (s *Service) CreateGuestPlayer(ctx context.Context, displayName string) (*Session, error) {
	now := s.clock.Now()

	player := &model.Player{
		ID:          model.PlayerID("p_" + uuid.NewString()),
		DisplayName: displayName,
		IsGuest:     true,
		CreatedAt:   now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	// Guests get the starter power-up pack too
	if err := s.storage.SetHoldings(ctx, player.ID, model.DefaultHoldings()); err != nil {
		return nil, err
	}

	return s.issueToken(player)
}

// RegisterPlayer creates a registered player account and issues a token
func (s *Service) RegisterPlayer(ctx context.Context, username, password, displayName string) (*Session, error) {
	// Check if username exists
	_, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err == nil {
		return nil, ErrUsernameExists
	}
	if !errors.Is(err, model.ErrPlayerNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	player := &model.Player{
		ID:          model.PlayerID("p_" + uuid.NewString()),
		DisplayName: displayName,
		IsGuest:     false,
		CreatedAt:   now,
	}

	registeredPlayer := &model.RegisteredPlayer{
		PlayerID:     player.ID,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.storage.SavePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err := s.storage.SaveRegisteredPlayer(ctx, registeredPlayer); err != nil {
		return nil, err
	}

	if err := s.storage.SetHoldings(ctx, player.ID, model.DefaultHoldings()); err != nil {
		return nil, err
	}

	return s.issueToken(player)
}

// Login authenticates a registered player and issues a token
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	rp, err := s.storage.GetRegisteredPlayerByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(rp.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	player, err := s.storage.GetPlayer(ctx, rp.PlayerID)
	if err != nil {
		return nil, err
	}

	return s.issueToken(player)
}

// ValidateToken parses and verifies a token, returning the player identity
// embedded in it
func (s *Service) ValidateToken(token string) (*model.Player, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.cfg.SigningKey, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return &model.Player{
		ID:          model.PlayerID(claims.Subject),
		DisplayName: claims.DisplayName,
		IsGuest:     claims.Guest,
	}, nil
}

// issueToken signs a JWT for the player
func (s *Service) issueToken(player *model.Player) (*Session, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.cfg.TokenDuration)

	claims := &Claims{
		DisplayName: player.DisplayName,
		Guest:       player.IsGuest,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(player.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.SigningKey)
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     token,
		PlayerID:  player.ID,
		Player:    *player,
		ExpiresAt: expiresAt,
	}, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	CreateGuestPlayer(ctx context.Context, displayName string) (*Session, error)
	RegisterPlayer(ctx context.Context, username, password, displayName string) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	ValidateToken(token string) (*model.Player, error)
}

var _ ServiceInterface = (*Service)(nil)
