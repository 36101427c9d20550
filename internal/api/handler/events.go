package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/quizdash/quizdash-go/internal/api/middleware"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/session"
	"github.com/quizdash/quizdash-go/internal/web/sse"
)

// EventsHandler handles the per-room SSE stream
type EventsHandler struct {
	sessions    session.ControllerInterface
	broadcaster sse.BroadcasterInterface
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(sessions session.ControllerInterface, broadcaster sse.BroadcasterInterface) *EventsHandler {
	return &EventsHandler{
		sessions:    sessions,
		broadcaster: broadcaster,
	}
}

// Stream handles GET /api/v1/rooms/{code}/events
// Only room members may subscribe; the connection stays open until the
// client disconnects or the room's hub is torn down.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	code := model.RoomCode(mux.Vars(r)["code"])

	room, err := h.sessions.GetRoom(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	if room.Member(player.ID) == nil {
		WriteError(w, model.ErrNotInRoom)
		return
	}

	hub := h.broadcaster.EnsureHub(code)
	sse.ServeSSE(w, r, hub, player.ID)
}
