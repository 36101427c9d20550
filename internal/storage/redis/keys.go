package redis

import (
	"fmt"

	"github.com/quizdash/quizdash-go/internal/model"
)

// Key prefix for all quiz data
const keyPrefix = "quizdash"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// questionBankKey returns the Redis key for the question bank
func questionBankKey() string {
	return fmt.Sprintf("%s:questions", keyPrefix)
}

// answersKey returns the Redis key for a room's submitted answer list
func answersKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:answers:%s", keyPrefix, code)
}

// holdingsKey returns the Redis key for a player's power-up holdings hash
func holdingsKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:holdings:%s", keyPrefix, playerID)
}

// activationsKey returns the Redis key for a room's activation list
func activationsKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:activations:%s", keyPrefix, code)
}
