package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizdash/quizdash-go/internal/api/middleware"
	"github.com/quizdash/quizdash-go/internal/api/request"
	"github.com/quizdash/quizdash-go/internal/api/response"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/recovery"
	"github.com/quizdash/quizdash-go/internal/services/session"
)

// MatchHandler handles in-match endpoints: answers, power-ups, recovery
// snapshots and results
type MatchHandler struct {
	sessions session.ControllerInterface
	recovery recovery.ServiceInterface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(sessions session.ControllerInterface, recovery recovery.ServiceInterface) *MatchHandler {
	return &MatchHandler{
		sessions: sessions,
		recovery: recovery,
	}
}

// SubmitAnswer handles POST /api/v1/rooms/{code}/answer
func (h *MatchHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.QuestionID == "" {
		WriteError(w, NewInvalidRequestError("question_id is required"))
		return
	}

	answer, err := h.sessions.SubmitAnswer(r.Context(), code, player.ID,
		model.QuestionID(req.QuestionID), req.Value, req.ElapsedMs)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AnswerFromModel(answer))
}

// UsePowerUp handles POST /api/v1/rooms/{code}/powerup
func (h *MatchHandler) UsePowerUp(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	var req request.UsePowerUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Kind == "" {
		WriteError(w, NewInvalidRequestError("kind is required"))
		return
	}

	activation, err := h.sessions.UsePowerUp(r.Context(), code, player.ID, model.PowerUpKind(req.Kind))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PowerUpActivationFromModel(activation))
}

// Snapshot handles GET /api/v1/rooms/{code}/snapshot
func (h *MatchHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	snapshot, err := h.recovery.Snapshot(r.Context(), code, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, snapshot)
}

// Results handles GET /api/v1/rooms/{code}/results
func (h *MatchHandler) Results(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	results, err := h.sessions.Results(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, results)
}
