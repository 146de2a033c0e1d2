package redis

import (
	"fmt"

	"github.com/statline-game/statline/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "statline"

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}
