package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/itihas/internal/logger"
)

const redisKeyPrefix = "itihas:"

// Redis is a Cache backed by a Redis server, shared across processes.
// Server errors degrade to cache misses.
type Redis struct {
	rdb *goredis.Client
	log *logger.Logger
}

// NewRedis connects to addr and verifies the connection with a ping.
func NewRedis(addr string, log *logger.Logger) (*Redis, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	if log == nil {
		log = logger.Nop()
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

	return newRedis(rdb, log), nil
}

func newRedis(rdb *goredis.Client, log *logger.Logger) *Redis {
	return &Redis{rdb: rdb, log: log.With("service", "RedisCache")}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := r.rdb.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			r.log.Warn("cache get failed", "key", key, "err", err)
		}
		return nil, false
	}
	return b, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if err := r.rdb.Set(ctx, redisKeyPrefix+key, value, ttl).Err(); err != nil {
		r.log.Warn("cache set failed", "key", key, "err", err)
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.rdb.Close()
}
