package session

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/quizdash/quizdash-go/internal/dependencies/clock"
	"github.com/quizdash/quizdash-go/internal/dependencies/random"
	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/services/powerup"
	"github.com/quizdash/quizdash-go/internal/services/questions"
	"github.com/quizdash/quizdash-go/internal/services/scoring"
	"github.com/quizdash/quizdash-go/internal/services/sequencer"
	"github.com/quizdash/quizdash-go/internal/storage"
	"github.com/quizdash/quizdash-go/internal/web/sse"
)

const (
	// RoomCodeLength is the length of generated room codes
	RoomCodeLength = 6
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// codeAttempts bounds collision retries during code generation
	codeAttempts = 8
	// saveAttempts bounds retries of a failed room save
	saveAttempts = 3
)

// Controller is the room state machine. Every mutating operation runs
// inside the room's critical section: acquire the room lock, load, mutate,
// save, release, then broadcast. Different rooms never contend.
type Controller struct {
	storage     storage.Storage
	questions   questions.ServiceInterface
	scoring     scoring.ServiceInterface
	sequencer   sequencer.ServiceInterface
	powerups    powerup.ServiceInterface
	broadcaster sse.BroadcasterInterface
	clock       clock.Clock
	random      random.Random
	logger      *slog.Logger

	locks  *lockRegistry
	timers *timerRegistry
}

// NewController creates a new session Controller
func NewController(
	storage storage.Storage,
	questions questions.ServiceInterface,
	scoring scoring.ServiceInterface,
	sequencer sequencer.ServiceInterface,
	powerups powerup.ServiceInterface,
	broadcaster sse.BroadcasterInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:     storage,
		questions:   questions,
		scoring:     scoring,
		sequencer:   sequencer,
		powerups:    powerups,
		broadcaster: broadcaster,
		clock:       clock,
		random:      random,
		logger:      logger.With(slog.String("component", "session")),
		locks:       newLockRegistry(),
		timers:      newTimerRegistry(),
	}
}

// CreateRoom creates a new waiting room with the host as its only member
func (c *Controller) CreateRoom(ctx context.Context, host model.Player, config model.RoomConfig) (*model.Room, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	code, err := c.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	room := &model.Room{
		Code:   code,
		Status: model.RoomStatusWaiting,
		HostID: host.ID,
		Config: config,
		Members: []model.Membership{
			{
				PlayerID:    host.ID,
				DisplayName: host.DisplayName,
				IsHost:      true,
				JoinedAt:    now,
				LastSeenAt:  now,
			},
		},
		ExtendedIndex: -1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.broadcaster.EnsureHub(code)
	c.broadcaster.RoomEvent(c.event(model.EventRoomCreated, room, host.ID))

	c.logger.Info("room created",
		slog.String("room", string(code)),
		slog.String("host", string(host.ID)))

	return room, nil
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// JoinRoom adds a player to a waiting room. A player who is already a
// member may rejoin in any non-terminal state; rejoining never duplicates
// the membership or resets score and ready state.
func (c *Controller) JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error) {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		return nil, err
	}

	now := c.clock.Now()

	if member := room.Member(player.ID); member != nil {
		if room.Status.IsTerminal() {
			unlock()
			return nil, model.ErrRoomNotJoinable
		}
		// Rejoin: refresh presence only
		member.LastSeenAt = now
		room.UpdatedAt = now
		err := c.saveRoom(ctx, room)
		unlock()
		if err != nil {
			return nil, err
		}
		return room, nil
	}

	if room.Status != model.RoomStatusWaiting {
		unlock()
		return nil, model.ErrRoomNotJoinable
	}
	if len(room.Members) >= room.Config.MaxPlayers {
		unlock()
		return nil, model.ErrRoomFull
	}

	room.Members = append(room.Members, model.Membership{
		PlayerID:    player.ID,
		DisplayName: player.DisplayName,
		JoinedAt:    now,
		LastSeenAt:  now,
	})
	room.UpdatedAt = now

	if err := c.saveRoom(ctx, room); err != nil {
		unlock()
		return nil, err
	}

	event := c.event(model.EventPlayerJoined, room, player.ID)
	unlock()

	c.broadcaster.RoomEvent(event)
	return room, nil
}

// SetReady marks a player ready. Idempotent; legal only before the match
// runs. When every member is ready and the room has enough players, the
// single start transition fires: WAITING to STARTING to IN_PROGRESS with
// the question sequence fixed and the first deadline armed.
func (c *Controller) SetReady(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		return err
	}

	if room.Status != model.RoomStatusWaiting && room.Status != model.RoomStatusStarting {
		unlock()
		return model.ErrInvalidTransition
	}

	member := room.Member(playerID)
	if member == nil {
		unlock()
		return model.ErrNotInRoom
	}

	now := c.clock.Now()
	member.Ready = true
	member.LastSeenAt = now
	room.UpdatedAt = now

	var events []model.RoomEvent

	// The start transition fires exactly once: this call holds the room
	// lock, and any concurrent ready call will reload a room that has
	// already left WAITING
	if room.Status == model.RoomStatusWaiting &&
		room.AllReady() &&
		len(room.Members) >= room.Config.MinPlayersToStart {

		room.Status = model.RoomStatusStarting

		selected, err := c.questions.SelectSequence(ctx, model.QuestionFilters{
			Category:   room.Config.Category,
			Difficulty: room.Config.Difficulty,
		}, room.Config.QuestionCount)
		if err != nil {
			// Roll back to WAITING with every ready flag intact
			room.Status = model.RoomStatusWaiting
			if saveErr := c.saveRoom(ctx, room); saveErr != nil {
				unlock()
				return saveErr
			}
			unlock()
			return err
		}

		c.sequencer.Begin(room, selected, now)
		room.Status = model.RoomStatusInProgress

		if err := c.saveRoom(ctx, room); err != nil {
			unlock()
			return err
		}

		c.broadcaster.EnsureHub(code)
		c.scheduleDeadline(room)
		events = append(events, c.event(model.EventMatchStarted, room, playerID))

		c.logger.Info("match started",
			slog.String("room", string(code)),
			slog.Int("players", len(room.Members)),
			slog.Int("questions", len(room.Questions)))
	} else {
		if err := c.saveRoom(ctx, room); err != nil {
			unlock()
			return err
		}
		events = append(events, c.event(model.EventPlayerReady, room, playerID))
	}

	unlock()
	c.emit(events)
	return nil
}

// LeaveRoom removes a player. The host role transfers to the
// earliest-joined remaining member; the last member leaving destroys the
// room, abandoning any live match.
func (c *Controller) LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		return err
	}

	if room.Member(playerID) == nil {
		unlock()
		return model.ErrNotInRoom
	}

	events, destroyed, err := c.removeMemberLocked(ctx, room, playerID)
	if err != nil {
		unlock()
		return err
	}

	if !destroyed {
		if err := c.saveRoom(ctx, room); err != nil {
			unlock()
			return err
		}

		// A departure can complete the current question
		if room.Status == model.RoomStatusInProgress && c.sequencer.AllSubmitted(room) {
			advanceEvents, err := c.advanceLocked(ctx, room)
			if err != nil {
				unlock()
				return err
			}
			events = append(events, advanceEvents...)
		}
	}

	unlock()
	c.emit(events)

	if destroyed {
		c.broadcaster.RemoveRoom(code)
		c.locks.remove(code)
	}
	return nil
}

// SubmitAnswer accepts a player's answer for the current question, scores
// it, and advances the match when every member has answered. A submission
// after the deadline but before advancement is accepted at zero points.
func (c *Controller) SubmitAnswer(ctx context.Context, code model.RoomCode, playerID model.PlayerID, questionID model.QuestionID, value string, elapsedMs int64) (*model.SubmittedAnswer, error) {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		return nil, err
	}

	if room.Status != model.RoomStatusInProgress {
		unlock()
		return nil, model.ErrInvalidTransition
	}

	member := room.Member(playerID)
	if member == nil {
		unlock()
		return nil, model.ErrNotInRoom
	}

	question := room.CurrentQuestion()
	if question == nil || question.ID != questionID {
		unlock()
		return nil, model.ErrNotCurrentQuestion
	}

	if room.HasSubmitted(room.CurrentIndex, playerID) {
		unlock()
		return nil, model.ErrDuplicateSubmission
	}

	now := c.clock.Now()
	late := c.sequencer.IsExpired(room, now)

	// The server's measurement is authoritative; the client's figure is
	// accepted only when it is tighter
	elapsed := now.Sub(room.QuestionStartedAt)
	if reported := time.Duration(elapsedMs) * time.Millisecond; elapsedMs > 0 && reported < elapsed {
		elapsed = reported
	}

	result := c.scoring.Score(scoring.Input{
		Question:       question,
		RawValue:       value,
		Elapsed:        elapsed,
		Limit:          c.sequencer.Limit(room),
		TimeBonusFloor: room.Config.TimeBonusFloor,
		Modifiers:      member.Modifiers,
		Late:           late,
	})

	answer := &model.SubmittedAnswer{
		ID:            uuid.NewString(),
		RoomCode:      code,
		PlayerID:      playerID,
		QuestionID:    question.ID,
		QuestionIndex: room.CurrentIndex,
		Value:         value,
		Correct:       result.Correct,
		PointsEarned:  result.Points,
		ElapsedMs:     elapsed.Milliseconds(),
		SubmittedAt:   now,
	}

	// Pending modifiers are consumed by this scored submission
	member.Modifiers = nil
	member.Score += result.Points
	member.LastSeenAt = now
	room.MarkSubmitted(room.CurrentIndex, playerID)
	room.UpdatedAt = now

	// The room carries the submission marker, so it must be durable before
	// the answer row exists; a failed save leaves no trace and the client
	// can retry without being double-counted
	if err := c.saveRoom(ctx, room); err != nil {
		unlock()
		return nil, err
	}

	if err := c.storage.AppendAnswer(ctx, answer); err != nil {
		unlock()
		return nil, err
	}

	events := []model.RoomEvent{c.event(model.EventAnswerReceived, room, playerID)}

	if c.sequencer.AllSubmitted(room) {
		advanceEvents, err := c.advanceLocked(ctx, room)
		if err != nil {
			unlock()
			return nil, err
		}
		events = append(events, advanceEvents...)
	}

	unlock()
	c.emit(events)
	return answer, nil
}

// AdvanceQuestion moves the match to the next question when the current
// one is expired or fully answered. Safe to call any number of times; a
// finished or already-advanced room is a no-op.
func (c *Controller) AdvanceQuestion(ctx context.Context, code model.RoomCode) error {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		return err
	}

	if room.Status != model.RoomStatusInProgress {
		unlock()
		return nil
	}

	if !c.sequencer.IsExpired(room, c.clock.Now()) && !c.sequencer.AllSubmitted(room) {
		unlock()
		return nil
	}

	events, err := c.advanceLocked(ctx, room)
	unlock()
	if err != nil {
		return err
	}
	c.emit(events)
	return nil
}

// UsePowerUp activates a power-up for the player in the room
func (c *Controller) UsePowerUp(ctx context.Context, code model.RoomCode, playerID model.PlayerID, kind model.PowerUpKind) (*model.PowerUpActivation, error) {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		return nil, err
	}

	now := c.clock.Now()
	activation, err := c.powerups.Activate(ctx, room, playerID, kind, now)
	if err != nil {
		unlock()
		return nil, err
	}

	room.UpdatedAt = now
	if err := c.saveRoom(ctx, room); err != nil {
		// The effect never became durable; give the consumable back
		if rerr := c.powerups.Refund(ctx, playerID, kind); rerr != nil {
			c.logger.Error("holding refund failed",
				slog.String("room", string(code)),
				slog.String("player", string(playerID)),
				slog.String("kind", string(kind)),
				slog.Any("error", rerr))
		}
		unlock()
		return nil, err
	}

	if err := c.powerups.Record(ctx, activation); err != nil {
		unlock()
		return nil, err
	}

	// A time extension moves the shared deadline; re-arm the timer
	if kind == model.PowerUpTimeExtension {
		c.scheduleDeadline(room)
	}

	event := c.event(model.EventPowerUpUsed, room, playerID)
	unlock()

	c.broadcaster.RoomEvent(event)
	return activation, nil
}

// TouchPresence refreshes the player's liveness marker
func (c *Controller) TouchPresence(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error {
	unlock := c.locks.lock(code)
	defer unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return err
	}

	member := room.Member(playerID)
	if member == nil {
		return model.ErrNotInRoom
	}

	member.LastSeenAt = c.clock.Now()
	return c.saveRoom(ctx, room)
}

// SweepIdle removes members unseen for longer than the room's idle
// timeout. A zero timeout disables eviction entirely. Returns the number
// of members removed.
func (c *Controller) SweepIdle(ctx context.Context, code model.RoomCode) (int, error) {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		if errors.Is(err, model.ErrRoomNotFound) {
			return 0, nil
		}
		return 0, err
	}

	if room.Config.IdleTimeout == 0 || room.Status.IsTerminal() {
		unlock()
		return 0, nil
	}

	now := c.clock.Now()
	var idle []model.PlayerID
	for i := range room.Members {
		if now.Sub(room.Members[i].LastSeenAt) > room.Config.IdleTimeout {
			idle = append(idle, room.Members[i].PlayerID)
		}
	}
	if len(idle) == 0 {
		unlock()
		return 0, nil
	}

	var events []model.RoomEvent
	destroyed := false
	for _, playerID := range idle {
		removeEvents, d, err := c.removeMemberLocked(ctx, room, playerID)
		if err != nil {
			unlock()
			return 0, err
		}
		events = append(events, removeEvents...)
		if d {
			destroyed = true
			break
		}
	}

	if !destroyed {
		if err := c.saveRoom(ctx, room); err != nil {
			unlock()
			return 0, err
		}
		if room.Status == model.RoomStatusInProgress && c.sequencer.AllSubmitted(room) {
			advanceEvents, err := c.advanceLocked(ctx, room)
			if err != nil {
				unlock()
				return 0, err
			}
			events = append(events, advanceEvents...)
		}
	}

	unlock()
	c.emit(events)

	if destroyed {
		c.broadcaster.RemoveRoom(code)
		c.locks.remove(code)
	}

	c.logger.Info("idle members swept",
		slog.String("room", string(code)),
		slog.Int("removed", len(idle)))
	return len(idle), nil
}

// SweepAllIdle runs SweepIdle over every room this process has touched
func (c *Controller) SweepAllIdle(ctx context.Context) {
	for _, code := range c.locks.codes() {
		if _, err := c.SweepIdle(ctx, code); err != nil {
			c.logger.Error("idle sweep failed",
				slog.String("room", string(code)),
				slog.Any("error", err))
		}
	}
}

// ResultEntry is one row of a finished room's leaderboard
type ResultEntry struct {
	Placement    int            `json:"placement"`
	PlayerID     model.PlayerID `json:"player_id"`
	DisplayName  string         `json:"display_name"`
	Score        int            `json:"score"`
	CorrectCount int            `json:"correct_count"`
	Answered     int            `json:"answered"`
}

// Results computes the final leaderboard for a finished room. Scores are
// recomputed from the accepted answer records rather than read from the
// frozen cumulative scores, so a mismatch would surface as a test failure.
func (c *Controller) Results(ctx context.Context, code model.RoomCode) ([]ResultEntry, error) {
	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusFinished {
		return nil, model.ErrInvalidTransition
	}

	answers, err := c.storage.GetAnswersForRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	type tally struct {
		score    int
		correct  int
		answered int
	}
	tallies := make(map[model.PlayerID]*tally, len(room.Members))
	for i := range room.Members {
		tallies[room.Members[i].PlayerID] = &tally{}
	}
	for _, a := range answers {
		t, ok := tallies[a.PlayerID]
		if !ok {
			continue // player left before the finish
		}
		t.score += a.PointsEarned
		t.answered++
		if a.Correct {
			t.correct++
		}
	}

	entries := make([]ResultEntry, 0, len(room.Members))
	for i := range room.Members {
		m := &room.Members[i]
		t := tallies[m.PlayerID]
		entries = append(entries, ResultEntry{
			PlayerID:     m.PlayerID,
			DisplayName:  m.DisplayName,
			Score:        t.score,
			CorrectCount: t.correct,
			Answered:     t.answered,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Placement = entries[i-1].Placement
		} else {
			entries[i].Placement = i + 1
		}
	}

	return entries, nil
}

// removeMemberLocked drops the member, transfers the host role if needed,
// and destroys the room when it empties. The caller holds the room lock
// and saves the room afterwards unless the room was destroyed.
func (c *Controller) removeMemberLocked(ctx context.Context, room *model.Room, playerID model.PlayerID) ([]model.RoomEvent, bool, error) {
	member := room.Member(playerID)
	if member == nil {
		return nil, false, model.ErrNotInRoom
	}
	wasHost := member.IsHost

	for i := range room.Members {
		if room.Members[i].PlayerID == playerID {
			room.Members = append(room.Members[:i], room.Members[i+1:]...)
			break
		}
	}
	now := c.clock.Now()
	room.UpdatedAt = now

	if len(room.Members) == 0 {
		var events []model.RoomEvent
		if room.Status == model.RoomStatusStarting || room.Status == model.RoomStatusInProgress {
			room.Status = model.RoomStatusAbandoned
			events = append(events, c.event(model.EventRoomAbandoned, room, playerID))
		}

		c.timers.stop(room.Code)
		if err := c.storage.DeleteRoom(ctx, room.Code); err != nil {
			return nil, false, err
		}

		c.logger.Info("room destroyed",
			slog.String("room", string(room.Code)),
			slog.String("status", string(room.Status)))
		return events, true, nil
	}

	events := []model.RoomEvent{c.event(model.EventPlayerLeft, room, playerID)}

	if wasHost {
		next := room.EarliestJoined()
		next.IsHost = true
		room.HostID = next.PlayerID
		events = append(events, c.event(model.EventHostChanged, room, next.PlayerID))
	}

	return events, false, nil
}

// advanceLocked moves the cursor and persists the result. The caller holds
// the room lock.
func (c *Controller) advanceLocked(ctx context.Context, room *model.Room) ([]model.RoomEvent, error) {
	finished := c.sequencer.Advance(room, c.clock.Now())
	room.UpdatedAt = c.clock.Now()

	if err := c.saveRoom(ctx, room); err != nil {
		return nil, err
	}

	if finished {
		c.timers.stop(room.Code)
		c.logger.Info("match finished", slog.String("room", string(room.Code)))
		return []model.RoomEvent{c.event(model.EventMatchFinished, room, "")}, nil
	}

	c.scheduleDeadline(room)
	return []model.RoomEvent{c.event(model.EventQuestionAdvanced, room, "")}, nil
}

// advanceFromTimer is the deadline timer's entry point. The expected index
// makes duplicate or stale firings harmless.
func (c *Controller) advanceFromTimer(ctx context.Context, code model.RoomCode, expectedIndex int) error {
	unlock := c.locks.lock(code)

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		unlock()
		if errors.Is(err, model.ErrRoomNotFound) {
			return nil
		}
		return err
	}

	if room.Status != model.RoomStatusInProgress || room.CurrentIndex != expectedIndex {
		unlock()
		return nil
	}

	// An extension may have pushed the deadline past this firing
	if !c.sequencer.IsExpired(room, c.clock.Now()) && !c.sequencer.AllSubmitted(room) {
		c.scheduleDeadline(room)
		unlock()
		return nil
	}

	events, err := c.advanceLocked(ctx, room)
	unlock()
	if err != nil {
		return err
	}
	c.emit(events)
	return nil
}

// generateCode draws random codes until one is free, within a bounded
// number of attempts
func (c *Controller) generateCode(ctx context.Context) (model.RoomCode, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code := model.RoomCode(c.random.String(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", model.ErrCodeExhausted
}

// saveRoom persists the room, retrying transient dependency failures.
// Version conflicts are not retried: they mean another writer bypassed the
// room lock and the caller's state is stale.
func (c *Controller) saveRoom(ctx context.Context, room *model.Room) error {
	var err error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		err = c.storage.SaveRoom(ctx, room)
		if err == nil || errors.Is(err, model.ErrVersionConflict) {
			return err
		}
		c.logger.Warn("room save failed",
			slog.String("room", string(room.Code)),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))
	}
	return err
}

// event builds the broadcast payload from the room's current state
func (c *Controller) event(kind model.EventKind, room *model.Room, actor model.PlayerID) model.RoomEvent {
	return model.RoomEventFrom(kind, room, actor, c.clock.Now(), c.sequencer.Deadline(room))
}

func (c *Controller) emit(events []model.RoomEvent) {
	for _, e := range events {
		c.broadcaster.RoomEvent(e)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateRoom(ctx context.Context, host model.Player, config model.RoomConfig) (*model.Room, error)
	GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error)
	JoinRoom(ctx context.Context, code model.RoomCode, player model.Player) (*model.Room, error)
	SetReady(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	LeaveRoom(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	SubmitAnswer(ctx context.Context, code model.RoomCode, playerID model.PlayerID, questionID model.QuestionID, value string, elapsedMs int64) (*model.SubmittedAnswer, error)
	AdvanceQuestion(ctx context.Context, code model.RoomCode) error
	UsePowerUp(ctx context.Context, code model.RoomCode, playerID model.PlayerID, kind model.PowerUpKind) (*model.PowerUpActivation, error)
	TouchPresence(ctx context.Context, code model.RoomCode, playerID model.PlayerID) error
	SweepIdle(ctx context.Context, code model.RoomCode) (int, error)
	Results(ctx context.Context, code model.RoomCode) ([]ResultEntry, error)
}

var _ ControllerInterface = (*Controller)(nil)
