package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Zartof23/mytops-sub000/internal/platform/logger"
)

// DailyCounter is a per-key counter with an expiry, used for daily request
// quotas. Keys are expected to embed the day so counters reset naturally.
type DailyCounter interface {
	// Incr bumps the key and returns the new value. The expiry is applied on
	// first increment only.
	Incr(ctx context.Context, key string, expiry time.Duration) (int64, error)
	Get(ctx context.Context, key string) (int64, error)
	Close() error
}

type dailyCounter struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewDailyCounter connects to REDIS_ADDR. Returns (nil, nil) when the env
// var is unset so callers can run with the database fallback only.
func NewDailyCounter(log *logger.Logger) (DailyCounter, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, nil
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

	return &dailyCounter{
		log: log.With("client", "RedisDailyCounter"),
		rdb: rdb,
	}, nil
}

func (c *dailyCounter) Incr(ctx context.Context, key string, expiry time.Duration) (int64, error) {
	if c == nil || c.rdb == nil {
		return 0, fmt.Errorf("redis counter not initialized")
	}
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 && expiry > 0 {
		if err := c.rdb.Expire(ctx, key, expiry).Err(); err != nil {
			c.log.Warn("failed to set counter expiry", "key", key, "error", err)
		}
	}
	return n, nil
}

func (c *dailyCounter) Get(ctx context.Context, key string) (int64, error) {
	if c == nil || c.rdb == nil {
		return 0, fmt.Errorf("redis counter not initialized")
	}
	n, err := c.rdb.Get(ctx, key).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (c *dailyCounter) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
