// internal/pkg/session/rate_limiter.go
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// slidingWindow trims entries older than the window, then records the attempt
// only if the window still has room. It returns {allowed, retryAfterMillis}.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local retry = window
	if oldest[2] then
		retry = tonumber(oldest[2]) + window - now
	end
	return {0, retry}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, 0}
`)

type RateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

func NewRateLimiter(client *redis.Client, limit int64, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		limit:  limit,
		window: window,
	}
}

// Allow records an attempt for scope and ip. When the window is full it
// reports false and how long until the oldest attempt ages out.
func (r *RateLimiter) Allow(ctx context.Context, scope, ip string) (bool, time.Duration, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", scope, ip)
	now := time.Now().UnixMilli()

	res, err := slidingWindow.Run(ctx, r.client, []string{key},
		now, r.window.Milliseconds(), r.limit, ulid.Make().String()).Int64Slice()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit: %w", err)
	}
	if len(res) != 2 {
		return false, 0, fmt.Errorf("unexpected rate limit reply: %v", res)
	}

	if res[0] == 1 {
		return true, 0, nil
	}
	retry := time.Duration(res[1]) * time.Millisecond
	if retry <= 0 {
		retry = time.Second
	}
	return false, retry, nil
}

// Reset clears recorded attempts for scope and ip.
func (r *RateLimiter) Reset(ctx context.Context, scope, ip string) error {
	return r.client.Del(ctx, fmt.Sprintf("ratelimit:%s:%s", scope, ip)).Err()
}
