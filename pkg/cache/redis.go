package cache

import (
	"context"
	"time"

	"screenbook/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis for rate limiting. Returns nil when no
// address is configured or the server is unreachable; callers degrade by
// disabling rate limiting.
func NewRedisClient(config utils.RedisConfig, log *zap.Logger) *redis.Client {
	if config.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unreachable, rate limiting disabled",
			zap.Error(err),
			zap.String("addr", config.Addr),
		)
		return nil
	}

	return client
}
