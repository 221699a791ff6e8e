package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "roster:ratelimit:"

// incrementScript bumps the counter and arms its expiry on the first hit.
// A key left without a TTL is re-armed so it can never stick forever.
var incrementScript = redis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {count, ttl}
`)

// RedisStore shares windows across instances.
type RedisStore struct {
	client redis.Scripter
	now    func() time.Time
}

func NewRedisStore(client redis.Scripter) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func (s *RedisStore) Increment(ctx context.Context, key string, window time.Duration) (Result, error) {
	ms := window.Milliseconds()
	if ms < 1 {
		ms = 1
	}

	vals, err := incrementScript.Run(ctx, s.client, []string{redisKeyPrefix + key}, ms).Int64Slice()
	if err != nil {
		return Result{}, fmt.Errorf("incrementing rate limit counter: %w", err)
	}
	if len(vals) != 2 {
		return Result{}, fmt.Errorf("unexpected rate limit reply: %v", vals)
	}

	return Result{
		Count:   vals[0],
		ResetAt: s.now().Add(time.Duration(vals[1]) * time.Millisecond),
	}, nil
}
