package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the quota counters in Redis.
const KeyPrefix = "campaignlens:quota:"

// consumeScript increments the counter, sets its expiry on the first hit and
// rolls the increment back when the limit is exceeded.
var consumeScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
if n > tonumber(ARGV[1]) then
  redis.call('DECR', KEYS[1])
  return 0
end
return 1
`)

// RedisGate is a [Gate] shared by every process pointed at the same Redis.
type RedisGate struct {
	rdb   redis.Scripter
	limit int
}

// NewRedisGate returns a gate allowing limit requests per user per day.
// rdb is usually a *redis.Client. A limit of zero or less allows everything.
func NewRedisGate(rdb redis.Scripter, limit int) *RedisGate {
	return &RedisGate{rdb: rdb, limit: limit}
}

// Consume implements [Gate].
func (g *RedisGate) Consume(ctx context.Context, user string, now time.Time) (bool, error) {
	if g.limit <= 0 {
		return true, nil
	}

	key := Key(user, now)
	ttl := untilWindowEnd(now).Milliseconds()

	allowed, err := consumeScript.Run(ctx, g.rdb, []string{key}, g.limit, ttl).Int64()
	if err != nil {
		return false, fmt.Errorf("quota: consume %s: %w", key, err)
	}
	return allowed == 1, nil
}

// Key returns the Redis key counting user's requests on the day of now.
func Key(user string, now time.Time) string {
	return KeyPrefix + userKey(user) + ":" + Day(now)
}
