package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore implements Store using Redis INCR/PEXPIRE and PTTL.
type redisStore struct{ rc redis.Scripter }

// NewRedisStore creates a Store backed by the given Redis client.
func NewRedisStore(rc redis.Scripter) Store {
	return &redisStore{rc: rc}
}

var luaFixedWindow = redis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then redis.call('PEXPIRE', KEYS[1], ARGV[1]) end
local ttl = redis.call('PTTL', KEYS[1])
return {current, ttl}
`)

func (s *redisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, int, error) {
	// namespace keys for safety
	k := "rl:" + key
	ms := window.Milliseconds()
	res, err := luaFixedWindow.Run(ctx, s.rc, []string{k}, ms).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(res) != 2 {
		return false, 0, nil
	}
	current, ttlms := res[0], res[1]
	if current <= int64(limit) {
		return true, 0, nil
	}
	// compute retry-after seconds (ceil(ttl/1000))
	if ttlms <= 0 {
		return false, 0, nil
	}
	secs := int((ttlms + 999) / 1000)
	return false, secs, nil
}
