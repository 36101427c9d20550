package session

import (
	"sync"

	"github.com/quizdash/quizdash-go/internal/model"
)

// lockRegistry hands out one mutex per room code. Operations on the same
// room serialize; operations on different rooms run fully in parallel.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[model.RoomCode]*sync.Mutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{
		locks: make(map[model.RoomCode]*sync.Mutex),
	}
}

// lock acquires the room's mutex and returns its unlock function
func (r *lockRegistry) lock(code model.RoomCode) func() {
	r.mu.Lock()
	m, ok := r.locks[code]
	if !ok {
		m = &sync.Mutex{}
		r.locks[code] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// remove drops the room's mutex once the room is destroyed. The caller must
// not hold the mutex it is removing.
func (r *lockRegistry) remove(code model.RoomCode) {
	r.mu.Lock()
	delete(r.locks, code)
	r.mu.Unlock()
}

// codes lists every room this registry has seen and not removed
func (r *lockRegistry) codes() []model.RoomCode {
	r.mu.Lock()
	defer r.mu.Unlock()
	codes := make([]model.RoomCode, 0, len(r.locks))
	for code := range r.locks {
		codes = append(codes, code)
	}
	return codes
}
