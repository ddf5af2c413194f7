package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
)

const (
	connectAttempts = 5
	pingTimeout     = 5 * time.Second
)

type RedisClient struct {
	Client *redis.Client
	logger *zap.Logger
}

// NewRedisClient returns nil when redis is disabled.
func NewRedisClient(cfg *config.Config, logger *zap.Logger) (*RedisClient, error) {
	if !cfg.Redis.Enabled {
		logger.Info("Redis disabled")
		return nil, nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), connectAttempts-1)
	err := backoff.RetryNotify(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}, policy, func(err error, wait time.Duration) {
		logger.Warn("Redis not ready, retrying",
			zap.String("addr", addr),
			zap.Error(err),
			zap.Duration("wait", wait),
		)
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis connected successfully",
		zap.String("addr", addr),
		zap.Int("db", cfg.Redis.DB),
	)

	return &RedisClient{
		Client: client,
		logger: logger,
	}, nil
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

// Close is a no-op on a disabled (nil) client.
func (r *RedisClient) Close() error {
	if r == nil {
		return nil
	}
	r.logger.Info("Closing redis connection")
	return r.Client.Close()
}

var Module = fx.Module("redis",
	fx.Provide(NewRedisClient),
)
