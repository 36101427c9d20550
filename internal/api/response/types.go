package response

import (
	"time"

	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player    Player    `json:"player"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:    PlayerFromModel(&s.Player),
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

// RoomConfig represents room configuration
type RoomConfig struct {
	MaxPlayers         int    `json:"max_players"`
	MinPlayersToStart  int    `json:"min_players_to_start"`
	SecondsPerQuestion int    `json:"seconds_per_question"`
	QuestionCount      int    `json:"question_count"`
	Category           string `json:"category,omitempty"`
	Difficulty         string `json:"difficulty,omitempty"`
	TimeBonusFloor     int    `json:"time_bonus_floor,omitempty"`
	IdleTimeoutSec     int    `json:"idle_timeout_sec,omitempty"`
}

// RoomConfigFromModel converts model.RoomConfig
func RoomConfigFromModel(c model.RoomConfig) RoomConfig {
	return RoomConfig{
		MaxPlayers:         c.MaxPlayers,
		MinPlayersToStart:  c.MinPlayersToStart,
		SecondsPerQuestion: c.SecondsPerQuestion,
		QuestionCount:      c.QuestionCount,
		Category:           c.Category,
		Difficulty:         c.Difficulty,
		TimeBonusFloor:     c.TimeBonusFloor,
		IdleTimeoutSec:     int(c.IdleTimeout / time.Second),
	}
}

// RoomMember represents a room member
type RoomMember struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	IsHost      bool   `json:"is_host"`
	Ready       bool   `json:"ready"`
	Score       int    `json:"score"`
}

// RoomMemberFromModel converts model.Membership
func RoomMemberFromModel(m *model.Membership) RoomMember {
	return RoomMember{
		PlayerID:    string(m.PlayerID),
		DisplayName: m.DisplayName,
		IsHost:      m.IsHost,
		Ready:       m.Ready,
		Score:       m.Score,
	}
}

// Room represents a room in API responses. The question sequence is never
// exposed here; clients see one question at a time through the snapshot.
type Room struct {
	Code          string       `json:"code"`
	Status        string       `json:"status"`
	HostID        string       `json:"host_id"`
	Config        RoomConfig   `json:"config"`
	Members       []RoomMember `json:"members"`
	CurrentIndex  int          `json:"current_index"`
	QuestionCount int          `json:"question_count"`
	CreatedAt     time.Time    `json:"created_at"`
}

// RoomFromModel converts model.Room
func RoomFromModel(r *model.Room) Room {
	members := make([]RoomMember, len(r.Members))
	for i := range r.Members {
		members[i] = RoomMemberFromModel(&r.Members[i])
	}

	return Room{
		Code:          string(r.Code),
		Status:        string(r.Status),
		HostID:        string(r.HostID),
		Config:        RoomConfigFromModel(r.Config),
		Members:       members,
		CurrentIndex:  r.CurrentIndex,
		QuestionCount: len(r.Questions),
		CreatedAt:     r.CreatedAt,
	}
}

// Answer is the response after a submission is accepted
type Answer struct {
	QuestionID   string    `json:"question_id"`
	Correct      bool      `json:"correct"`
	PointsEarned int       `json:"points_earned"`
	ElapsedMs    int64     `json:"elapsed_ms"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// AnswerFromModel converts model.SubmittedAnswer
func AnswerFromModel(a *model.SubmittedAnswer) Answer {
	return Answer{
		QuestionID:   string(a.QuestionID),
		Correct:      a.Correct,
		PointsEarned: a.PointsEarned,
		ElapsedMs:    a.ElapsedMs,
		SubmittedAt:  a.SubmittedAt,
	}
}

// PowerUpActivation is the response after a power-up is consumed
type PowerUpActivation struct {
	Kind          string    `json:"kind"`
	QuestionIndex int       `json:"question_index"`
	ActivatedAt   time.Time `json:"activated_at"`
}

// PowerUpActivationFromModel converts model.PowerUpActivation
func PowerUpActivationFromModel(a *model.PowerUpActivation) PowerUpActivation {
	return PowerUpActivation{
		Kind:          string(a.Kind),
		QuestionIndex: a.QuestionIndex,
		ActivatedAt:   a.ActivatedAt,
	}
}
