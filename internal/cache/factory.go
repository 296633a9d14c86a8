package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Backend  string // "memory" or "redis"
	Capacity int    // 0 = unbounded (memory backend only)
	TTL      time.Duration
	Prefix   string
}

// NewStore builds a cache tier for the given prefix. The redisClient is
// only consulted for the redis backend and may be nil otherwise.
func NewStore(cfg Config, redisClient *redis.Client, prefix string) Store {
	switch cfg.Backend {
	case "redis":
		return NewRedisStore(redisClient, cfg.Prefix+":"+prefix, cfg.TTL)
	default:
		return NewMemoryStore(cfg.Capacity, cfg.TTL)
	}
}
