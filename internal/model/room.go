package model

import "time"

// RoomCode is the short human-readable identifier for joining rooms
type RoomCode string

// RoomStatus represents the lifecycle state of a room. Transitions are
// monotonic in the order waiting → starting → in_progress → finished;
// abandoned is reachable from any non-terminal state.
type RoomStatus string

const (
	RoomStatusWaiting    RoomStatus = "waiting"     // Gathering players, ready-check open
	RoomStatusStarting   RoomStatus = "starting"    // All ready, sequence being assigned
	RoomStatusInProgress RoomStatus = "in_progress" // Match running
	RoomStatusFinished   RoomStatus = "finished"    // Terminal, scores frozen
	RoomStatusAbandoned  RoomStatus = "abandoned"   // Terminal, membership dropped to zero
)

// IsTerminal reports whether the status admits no further transitions
func (s RoomStatus) IsTerminal() bool {
	return s == RoomStatusFinished || s == RoomStatusAbandoned
}

// RoomConfig holds the host-chosen settings for a room
type RoomConfig struct {
	MaxPlayers         int
	MinPlayersToStart  int
	SecondsPerQuestion int
	QuestionCount      int
	Category           string // empty means any
	Difficulty         string // empty means any

	// TimeBonusFloor enables the linear time bonus when > 0: a correct
	// answer at elapsed=0 earns full points, decaying to
	// points*TimeBonusFloor at the deadline. Expressed in percent (0-100).
	TimeBonusFloor int

	// IdleTimeout is how long a member may go unseen before an idle sweep
	// may remove them. Zero disables inferred eviction; leaving is then
	// always explicit.
	IdleTimeout time.Duration
}

// Config bounds enforced by CreateRoom
const (
	MinRoomPlayers        = 2
	MaxRoomPlayers        = 16
	MinSecondsPerQuestion = 5
	MaxSecondsPerQuestion = 120
	MinQuestionCount      = 1
	MaxQuestionCount      = 50
)

// DefaultRoomConfig returns the default room configuration
func DefaultRoomConfig() RoomConfig {
	return RoomConfig{
		MaxPlayers:         8,
		MinPlayersToStart:  2,
		SecondsPerQuestion: 30,
		QuestionCount:      10,
	}
}

// Validate checks the config against the allowed bounds
func (c RoomConfig) Validate() error {
	if c.MaxPlayers < MinRoomPlayers || c.MaxPlayers > MaxRoomPlayers {
		return ErrConfigInvalid
	}
	if c.MinPlayersToStart < MinRoomPlayers || c.MinPlayersToStart > c.MaxPlayers {
		return ErrConfigInvalid
	}
	if c.SecondsPerQuestion < MinSecondsPerQuestion || c.SecondsPerQuestion > MaxSecondsPerQuestion {
		return ErrConfigInvalid
	}
	if c.QuestionCount < MinQuestionCount || c.QuestionCount > MaxQuestionCount {
		return ErrConfigInvalid
	}
	if c.TimeBonusFloor < 0 || c.TimeBonusFloor > 100 {
		return ErrConfigInvalid
	}
	return nil
}

// ActiveModifier is a pending scoring effect registered by a power-up,
// consumed by the player's next scored submission in the room
type ActiveModifier struct {
	Kind        PowerUpKind
	ActivatedAt time.Time
}

// Membership is a player's participation record within a room. Ready state,
// pending modifiers and per-player option eliminations are first-class
// fields here, never an untyped settings document.
type Membership struct {
	PlayerID    PlayerID
	DisplayName string
	IsHost      bool
	Ready       bool // meaningful only in waiting/starting
	Score       int
	JoinedAt    time.Time
	LastSeenAt  time.Time

	// Modifiers pending for this player's next scored submission,
	// at most one per category (last activation wins)
	Modifiers []ActiveModifier

	// Eliminated maps question index to option indexes hidden from this
	// player's view only; the shared Question is never mutated
	Eliminated map[int][]int
}

// Room is one match instance, identified by its code. It is the unit of
// mutual exclusion: all mutation happens under the session controller's
// per-room lock, and SaveRoom enforces the Version for writes from outside
// that discipline.
type Room struct {
	Code    RoomCode
	Version int64 // optimistic concurrency counter, bumped on every save
	Status  RoomStatus
	HostID  PlayerID
	Config  RoomConfig
	Members []Membership

	// Question sequence, fixed at the starting→in_progress transition
	Questions    []Question
	CurrentIndex int

	// Deadline state for the current question
	QuestionStartedAt time.Time
	// DeadlineExtension is additive time granted by a time-extension
	// power-up for the current question only
	DeadlineExtension time.Duration
	// ExtendedIndex is the last question index that received an extension
	// (-1 if none); at most one extension per question per room
	ExtendedIndex int

	// Submissions tracks which players have an accepted answer per
	// question index; the full answer records live in storage
	Submissions map[int]map[PlayerID]bool

	CreatedAt time.Time
	StartedAt time.Time
	UpdatedAt time.Time
}

// Member returns the membership for the given player, or nil
func (r *Room) Member(id PlayerID) *Membership {
	for i := range r.Members {
		if r.Members[i].PlayerID == id {
			return &r.Members[i]
		}
	}
	return nil
}

// HostMember returns the host's membership, or nil
func (r *Room) HostMember() *Membership {
	for i := range r.Members {
		if r.Members[i].IsHost {
			return &r.Members[i]
		}
	}
	return nil
}

// EarliestJoined returns the member with the oldest JoinedAt, or nil.
// Used for deterministic host transfer.
func (r *Room) EarliestJoined() *Membership {
	var earliest *Membership
	for i := range r.Members {
		if earliest == nil || r.Members[i].JoinedAt.Before(earliest.JoinedAt) {
			earliest = &r.Members[i]
		}
	}
	return earliest
}

// AllReady reports whether every current member has set ready
func (r *Room) AllReady() bool {
	for i := range r.Members {
		if !r.Members[i].Ready {
			return false
		}
	}
	return len(r.Members) > 0
}

// ReadyCount returns how many members have set ready
func (r *Room) ReadyCount() int {
	n := 0
	for i := range r.Members {
		if r.Members[i].Ready {
			n++
		}
	}
	return n
}

// CurrentQuestion returns the question at the cursor, or nil when the room
// is not mid-sequence
func (r *Room) CurrentQuestion() *Question {
	if r.Status != RoomStatusInProgress {
		return nil
	}
	if r.CurrentIndex < 0 || r.CurrentIndex >= len(r.Questions) {
		return nil
	}
	return &r.Questions[r.CurrentIndex]
}

// HasSubmitted reports whether the player has an accepted answer for the
// given question index
func (r *Room) HasSubmitted(index int, id PlayerID) bool {
	return r.Submissions[index][id]
}

// MarkSubmitted records an accepted answer for the player at the index
func (r *Room) MarkSubmitted(index int, id PlayerID) {
	if r.Submissions == nil {
		r.Submissions = make(map[int]map[PlayerID]bool)
	}
	if r.Submissions[index] == nil {
		r.Submissions[index] = make(map[PlayerID]bool)
	}
	r.Submissions[index][id] = true
}

// SubmittedCount returns how many members have submitted for the index
func (r *Room) SubmittedCount(index int) int {
	return len(r.Submissions[index])
}

// Clone returns a deep copy of the room. Storage hands out clones so a
// snapshot read never aliases state an in-flight mutation is touching.
func (r *Room) Clone() *Room {
	c := *r

	c.Members = make([]Membership, len(r.Members))
	for i, m := range r.Members {
		cm := m
		if m.Modifiers != nil {
			cm.Modifiers = append([]ActiveModifier(nil), m.Modifiers...)
		}
		if m.Eliminated != nil {
			cm.Eliminated = make(map[int][]int, len(m.Eliminated))
			for k, v := range m.Eliminated {
				cm.Eliminated[k] = append([]int(nil), v...)
			}
		}
		c.Members[i] = cm
	}

	if r.Questions != nil {
		c.Questions = make([]Question, len(r.Questions))
		for i, q := range r.Questions {
			cq := q
			cq.Options = append([]string(nil), q.Options...)
			cq.CorrectOptions = append([]int(nil), q.CorrectOptions...)
			c.Questions[i] = cq
		}
	}

	if r.Submissions != nil {
		c.Submissions = make(map[int]map[PlayerID]bool, len(r.Submissions))
		for idx, byPlayer := range r.Submissions {
			inner := make(map[PlayerID]bool, len(byPlayer))
			for pid, v := range byPlayer {
				inner[pid] = v
			}
			c.Submissions[idx] = inner
		}
	}

	return &c
}
