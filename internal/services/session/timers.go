package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/quizdash/quizdash-go/internal/dependencies/clock"
	"github.com/quizdash/quizdash-go/internal/model"
)

// timerRegistry tracks the single pending deadline timer per room.
// Replacing a timer stops the old one, but a stopped timer may already be
// mid-fire; the expected-index guard in the advance path absorbs that.
type timerRegistry struct {
	mu     sync.Mutex
	timers map[model.RoomCode]clock.Timer
}

func newTimerRegistry() *timerRegistry {
	return &timerRegistry{
		timers: make(map[model.RoomCode]clock.Timer),
	}
}

func (r *timerRegistry) set(code model.RoomCode, t clock.Timer) {
	r.mu.Lock()
	if old, ok := r.timers[code]; ok {
		old.Stop()
	}
	r.timers[code] = t
	r.mu.Unlock()
}

func (r *timerRegistry) stop(code model.RoomCode) {
	r.mu.Lock()
	if t, ok := r.timers[code]; ok {
		t.Stop()
		delete(r.timers, code)
	}
	r.mu.Unlock()
}

// scheduleDeadline arms the advance timer for the room's current question.
// Called with the room lock held, on a freshly saved room state.
func (c *Controller) scheduleDeadline(room *model.Room) {
	code := room.Code
	index := room.CurrentIndex

	delay := c.sequencer.Deadline(room).Sub(c.clock.Now())
	if delay < 0 {
		delay = 0
	}

	c.timers.set(code, c.clock.AfterFunc(delay, func() {
		if err := c.advanceFromTimer(context.Background(), code, index); err != nil {
			c.logger.Error("deadline advance failed",
				slog.String("room", string(code)),
				slog.Int("question_index", index),
				slog.Any("error", err))
		}
	}))
}
