package storage

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:embed ratelimit.lua
var callWindowLua string

var callWindowScript = redis.NewScript(callWindowLua)

const callKeyPrefix = "sleepdoc:ratelimit:calls:"

// callKey scopes a client's window to channel calls.
func callKey(client string) string {
	return callKeyPrefix + client
}

// callWindow bounds how many channel calls one client makes per window.
type callWindow struct {
	size  time.Duration
	calls int
}

// ttl keeps an idle client's log around one second past its last window.
func (w callWindow) ttl() time.Duration {
	return w.size + time.Second
}

func (w callWindow) args() []any {
	return []any{
		w.size.Milliseconds(),
		w.calls,
		int(w.ttl().Seconds()),
	}
}

// admit records a call for client when the window has room. A refused call
// carries the time until the oldest call leaves the window.
func (w callWindow) admit(ctx context.Context, rdb *redis.Client, client string) (RateLimitResult, error) {
	reply, err := callWindowScript.Run(ctx, rdb, []string{callKey(client)}, w.args()...).Int64Slice()
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("failed to run call window script: %w", err)
	}
	if len(reply) != 2 {
		return RateLimitResult{}, fmt.Errorf("call window script returned %d values", len(reply))
	}

	if reply[0] == 1 {
		return RateLimitResult{Allowed: true}, nil
	}
	return RateLimitResult{RetryAfter: time.Duration(reply[1]) * time.Millisecond}, nil
}
