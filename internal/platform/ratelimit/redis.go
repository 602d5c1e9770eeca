package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/mindwell-backend/internal/platform/logger"
)

// Increments the window counter and starts its expiry on first hit.
var incrScript = goredis.NewScript(`
local current = redis.call('INCR', KEYS[1])
if current == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('PTTL', KEYS[1])
return {current, ttl}
`)

type Redis struct {
	log    *logger.Logger
	rdb    *goredis.Client
	limit  int
	period time.Duration
	prefix string
}

func NewRedis(log *logger.Logger, addr string, limit int, period time.Duration) (*Redis, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{
		log:    log.With("service", "RedisRateLimiter"),
		rdb:    rdb,
		limit:  limit,
		period: period,
		prefix: "mindwell:ratelimit:",
	}, nil
}

func (r *Redis) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := incrScript.Run(ctx, r.rdb, []string{r.prefix + key}, r.period.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(res) != 2 {
		return Decision{}, fmt.Errorf("rate limit script: unexpected reply %v", res)
	}
	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = r.period
	}
	return decide(r.limit, res[0], ttl), nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
