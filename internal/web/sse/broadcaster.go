package sse

import (
	"encoding/json"
	"log/slog"

	"github.com/quizdash/quizdash-go/internal/model"
)

// Broadcaster publishes room events to SSE clients as JSON payloads.
// Delivery is fire-and-forget; every event carries the full roster and
// cursor so a dropped message never leaves clients unrecoverable.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// RoomEvent broadcasts an event to every client subscribed to the room
func (b *Broadcaster) RoomEvent(event model.RoomEvent) {
	hub := b.hubManager.GetHub(event.RoomCode)
	if hub == nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("sse failed to marshal room event",
			slog.String("room", string(event.RoomCode)),
			slog.String("kind", string(event.Kind)),
			slog.Any("error", err))
		return
	}

	hub.BroadcastEvent(string(event.Kind), string(data))
}

// EnsureHub creates the room's hub so subscribers can attach before the
// first event fires
func (b *Broadcaster) EnsureHub(code model.RoomCode) *Hub {
	return b.hubManager.GetOrCreateHub(code)
}

// RemoveRoom tears down the room's hub, disconnecting any clients
func (b *Broadcaster) RemoveRoom(code model.RoomCode) {
	b.hubManager.RemoveHub(code)
}

// Interface for dependency injection
type BroadcasterInterface interface {
	RoomEvent(event model.RoomEvent)
	EnsureHub(code model.RoomCode) *Hub
	RemoveRoom(code model.RoomCode)
}

var _ BroadcasterInterface = (*Broadcaster)(nil)
