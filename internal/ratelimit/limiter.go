package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SendLimiter bounds how often codes can be requested per email using a
// Redis fixed window. It holds only send counters, never account or code
// state. A nil client or non-positive max disables limiting.
type SendLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
	prefix string
}

// NewSendLimiter constructs a limiter.
func NewSendLimiter(rdb *redis.Client, max int, window time.Duration) *SendLimiter {
	return &SendLimiter{rdb: rdb, max: max, window: window, prefix: "leafscan:otp-send"}
}

// Allow reports whether another send for the key fits in the current window.
func (l *SendLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l == nil || l.rdb == nil || l.max <= 0 {
		return true, nil
	}

	redisKey := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.max), nil
}
