package redis

import (
	"fmt"

	"github.com/mcoot/octiline/internal/model"
)

// Key prefix for all octiline data
const keyPrefix = "octiline"

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// summariesKey returns the Redis key for the LIST of game summaries, newest first
func summariesKey() string {
	return fmt.Sprintf("%s:summaries", keyPrefix)
}
