package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quizdash/quizdash-go/internal/model"
	"github.com/quizdash/quizdash-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Room operations

func (s *Storage) SaveRoom(ctx context.Context, room *model.Room) error {
	key := roomKey(room.Code)

	// WATCH the room key so the version check and write are atomic with
	// respect to other writers
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if room.Version != 0 {
				return model.ErrVersionConflict
			}
		case err != nil:
			return err
		default:
			var stored model.Room
			if err := json.Unmarshal(data, &stored); err != nil {
				return err
			}
			if stored.Version != room.Version {
				return model.ErrVersionConflict
			}
		}

		room.Version++
		payload, err := json.Marshal(room)
		if err != nil {
			room.Version--
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.cfg.RoomTTL)
			return nil
		})
		if err != nil {
			room.Version--
		}
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		// Another writer got in between GET and EXEC
		return model.ErrVersionConflict
	}
	return err
}

func (s *Storage) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	data, err := s.client.Get(ctx, roomKey(code)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrRoomNotFound
		}
		return nil, err
	}

	var room model.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Storage) DeleteRoom(ctx context.Context, code model.RoomCode) error {
	return s.client.Del(ctx, roomKey(code)).Err()
}

func (s *Storage) RoomExists(ctx context.Context, code model.RoomCode) (bool, error) {
	exists, err := s.client.Exists(ctx, roomKey(code)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

// Question bank operations

func (s *Storage) SaveQuestions(ctx context.Context, questions []model.Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}

	// The bank is replaced wholesale on load; no TTL
	return s.client.Set(ctx, questionBankKey(), data, 0).Err()
}

func (s *Storage) GetQuestionCandidates(ctx context.Context, filters model.QuestionFilters, count int) ([]model.Question, error) {
	data, err := s.client.Get(ctx, questionBankKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrInsufficientQuestions
		}
		return nil, err
	}

	var questions []model.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, err
	}

	var candidates []model.Question
	for i := range questions {
		if filters.Matches(&questions[i]) {
			candidates = append(candidates, questions[i])
		}
	}
	if len(candidates) < count {
		return nil, model.ErrInsufficientQuestions
	}
	return candidates, nil
}

// Submitted answer operations

func (s *Storage) AppendAnswer(ctx context.Context, answer *model.SubmittedAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}

	key := answersKey(answer.RoomCode)

	// Append + keep the list TTL in sync in one pipeline
	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.cfg.AnswerTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetAnswersForRoom(ctx context.Context, code model.RoomCode) ([]*model.SubmittedAnswer, error) {
	values, err := s.client.LRange(ctx, answersKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	answers := make([]*model.SubmittedAnswer, 0, len(values))
	for _, val := range values {
		var answer model.SubmittedAnswer
		if err := json.Unmarshal([]byte(val), &answer); err != nil {
			continue // Skip invalid data
		}
		answers = append(answers, &answer)
	}
	return answers, nil
}

func (s *Storage) GetAnswersForPlayer(ctx context.Context, code model.RoomCode, playerID model.PlayerID) ([]*model.SubmittedAnswer, error) {
	all, err := s.GetAnswersForRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	var answers []*model.SubmittedAnswer
	for _, a := range all {
		if a.PlayerID == playerID {
			answers = append(answers, a)
		}
	}
	return answers, nil
}

// Power-up holdings

func (s *Storage) SetHoldings(ctx context.Context, playerID model.PlayerID, holdings map[model.PowerUpKind]int) error {
	key := holdingsKey(playerID)

	fields := make(map[string]interface{}, len(holdings))
	for kind, qty := range holdings {
		fields[string(kind)] = qty
	}

	// Replace the hash wholesale
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	if len(fields) > 0 {
		pipe.HSet(ctx, key, fields)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetHoldings(ctx context.Context, playerID model.PlayerID) (map[model.PowerUpKind]int, error) {
	fields, err := s.client.HGetAll(ctx, holdingsKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	holdings := make(map[model.PowerUpKind]int, len(fields))
	for kind, qtyStr := range fields {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			continue // Skip invalid data
		}
		holdings[model.PowerUpKind(kind)] = qty
	}
	return holdings, nil
}

func (s *Storage) DecrementHolding(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error {
	key := holdingsKey(playerID)

	// WATCH so the quantity check and decrement are atomic; the holding
	// never goes below zero
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		qtyStr, err := tx.HGet(ctx, key, string(kind)).Result()
		if errors.Is(err, redis.Nil) {
			return model.ErrInsufficientQuantity
		}
		if err != nil {
			return err
		}

		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return err
		}
		if qty <= 0 {
			return model.ErrInsufficientQuantity
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HIncrBy(ctx, key, string(kind), -1)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrInsufficientQuantity
	}
	return err
}

func (s *Storage) IncrementHolding(ctx context.Context, playerID model.PlayerID, kind model.PowerUpKind) error {
	return s.client.HIncrBy(ctx, holdingsKey(playerID), string(kind), 1).Err()
}

// Power-up activation records

func (s *Storage) AppendActivation(ctx context.Context, activation *model.PowerUpActivation) error {
	data, err := json.Marshal(activation)
	if err != nil {
		return err
	}

	key := activationsKey(activation.RoomCode)

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, s.cfg.AnswerTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetActivationsForRoom(ctx context.Context, code model.RoomCode) ([]*model.PowerUpActivation, error) {
	values, err := s.client.LRange(ctx, activationsKey(code), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	activations := make([]*model.PowerUpActivation, 0, len(values))
	for _, val := range values {
		var activation model.PowerUpActivation
		if err := json.Unmarshal([]byte(val), &activation); err != nil {
			continue // Skip invalid data
		}
		activations = append(activations, &activation)
	}
	return activations, nil
}
