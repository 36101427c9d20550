package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeUsernameExists        = "USERNAME_EXISTS"
	CodePlayerNotFound        = "PLAYER_NOT_FOUND"
	CodeRoomNotFound          = "ROOM_NOT_FOUND"
	CodeRoomFull              = "ROOM_FULL"
	CodeRoomNotJoinable       = "ROOM_NOT_JOINABLE"
	CodeNotInRoom             = "NOT_IN_ROOM"
	CodeNotHost               = "NOT_HOST"
	CodeConfigInvalid         = "CONFIG_INVALID"
	CodeCodeExhausted         = "CODE_EXHAUSTED"
	CodeInvalidTransition     = "INVALID_TRANSITION"
	CodeNotCurrentQuestion    = "NOT_CURRENT_QUESTION"
	CodeDuplicateSubmission   = "DUPLICATE_SUBMISSION"
	CodeInsufficientQuestions = "INSUFFICIENT_QUESTIONS"
	CodeUnknownPowerUp        = "UNKNOWN_POWERUP"
	CodeInsufficientQuantity  = "INSUFFICIENT_QUANTITY"
	CodeTooLate               = "TOO_LATE"
	CodeNoActiveSession       = "NO_ACTIVE_SESSION"
	CodeConflict              = "CONFLICT"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrRoomNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeRoomNotFound, "Room not found"}}
	case errors.Is(err, model.ErrRoomFull):
		return &httpError{http.StatusConflict, APIError{CodeRoomFull, "Room is full"}}
	case errors.Is(err, model.ErrRoomNotJoinable):
		return &httpError{http.StatusConflict, APIError{CodeRoomNotJoinable, "Room is not accepting new players"}}
	case errors.Is(err, model.ErrNotInRoom):
		return &httpError{http.StatusNotFound, APIError{CodeNotInRoom, "Not a member of this room"}}
	case errors.Is(err, model.ErrNotHost):
		return &httpError{http.StatusForbidden, APIError{CodeNotHost, "Only the host can perform this action"}}
	case errors.Is(err, model.ErrConfigInvalid):
		return &httpError{http.StatusBadRequest, APIError{CodeConfigInvalid, "Room configuration out of bounds"}}
	case errors.Is(err, model.ErrCodeExhausted):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeCodeExhausted, "Could not allocate a room code"}}
	case errors.Is(err, model.ErrInvalidTransition):
		return &httpError{http.StatusConflict, APIError{CodeInvalidTransition, "Operation not legal in current room state"}}
	case errors.Is(err, model.ErrNotCurrentQuestion):
		return &httpError{http.StatusConflict, APIError{CodeNotCurrentQuestion, "Question is not the room's current question"}}
	case errors.Is(err, model.ErrDuplicateSubmission):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateSubmission, "Already answered this question"}}
	case errors.Is(err, model.ErrInsufficientQuestions):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientQuestions, "Not enough questions match the room filters"}}
	case errors.Is(err, model.ErrUnknownPowerUp):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownPowerUp, "Unknown power-up kind"}}
	case errors.Is(err, model.ErrInsufficientQuantity):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientQuantity, "No holdings of this power-up remain"}}
	case errors.Is(err, model.ErrTooLate):
		return &httpError{http.StatusGone, APIError{CodeTooLate, "Too late for this question"}}
	case errors.Is(err, model.ErrNoActiveSession):
		return &httpError{http.StatusNotFound, APIError{CodeNoActiveSession, "No active session in this room"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeConflict, "Room was modified concurrently, retry"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired token"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
