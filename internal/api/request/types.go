package request

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateRoomRequest is the request body for creating a room. Zero-valued
// fields fall back to the server defaults.
type CreateRoomRequest struct {
	MaxPlayers         int    `json:"max_players,omitempty"`
	MinPlayersToStart  int    `json:"min_players_to_start,omitempty"`
	SecondsPerQuestion int    `json:"seconds_per_question,omitempty"`
	QuestionCount      int    `json:"question_count,omitempty"`
	Category           string `json:"category,omitempty"`
	Difficulty         string `json:"difficulty,omitempty"`
	TimeBonusFloor     int    `json:"time_bonus_floor,omitempty"`
	IdleTimeoutSec     int    `json:"idle_timeout_sec,omitempty"`
}

// SubmitAnswerRequest is the request body for answering the current question
type SubmitAnswerRequest struct {
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
	// ElapsedMs is the client's own measurement; the server only ever
	// trusts it downwards
	ElapsedMs int64 `json:"elapsed_ms,omitempty"`
}

// UsePowerUpRequest is the request body for activating a power-up
type UsePowerUpRequest struct {
	Kind string `json:"kind"`
}
