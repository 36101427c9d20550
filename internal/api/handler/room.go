package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/quizdash/quizdash-go/internal/api/middleware"
	"github.com/quizdash/quizdash-go/internal/api/request"
	"github.com/quizdash/quizdash-go/internal/api/response"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/session"
)

// RoomHandler handles room lifecycle endpoints
type RoomHandler struct {
	sessions session.ControllerInterface
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(sessions session.ControllerInterface) *RoomHandler {
	return &RoomHandler{
		sessions: sessions,
	}
}

// Create handles POST /api/v1/rooms
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body for default config
		req = request.CreateRoomRequest{}
	}

	config := configFromRequest(req)
	room, err := h.sessions.CreateRoom(r.Context(), *player, config)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.RoomFromModel(room))
}

// Get handles GET /api/v1/rooms/{code}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	room, err := h.sessions.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// Join handles POST /api/v1/rooms/{code}/join
func (h *RoomHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	room, err := h.sessions.JoinRoom(r.Context(), code, *player)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// Leave handles POST /api/v1/rooms/{code}/leave
func (h *RoomHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.sessions.LeaveRoom(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Ready handles POST /api/v1/rooms/{code}/ready
func (h *RoomHandler) Ready(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.sessions.SetReady(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	room, err := h.sessions.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(room))
}

// Heartbeat handles POST /api/v1/rooms/{code}/heartbeat
func (h *RoomHandler) Heartbeat(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	if err := h.sessions.TouchPresence(r.Context(), code, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// configFromRequest builds a room config, filling unset fields from defaults
func configFromRequest(req request.CreateRoomRequest) model.RoomConfig {
	config := model.DefaultRoomConfig()
	if req.MaxPlayers > 0 {
		config.MaxPlayers = req.MaxPlayers
	}
	if req.MinPlayersToStart > 0 {
		config.MinPlayersToStart = req.MinPlayersToStart
	}
	if req.SecondsPerQuestion > 0 {
		config.SecondsPerQuestion = req.SecondsPerQuestion
	}
	if req.QuestionCount > 0 {
		config.QuestionCount = req.QuestionCount
	}
	config.Category = req.Category
	config.Difficulty = req.Difficulty
	config.TimeBonusFloor = req.TimeBonusFloor
	if req.IdleTimeoutSec > 0 {
		config.IdleTimeout = time.Duration(req.IdleTimeoutSec) * time.Second
	}
	return config
}
