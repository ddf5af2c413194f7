// Package filecache remembers the documents uploaded through the gateway so
// that operations can refer to them by id.
package filecache

import (
	"errors"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	redisclient "forsign-esign/internal/infrastructure/redis"
)

var (
	_ repository.FileReferenceCache = (*Memory)(nil)
	_ repository.FileReferenceCache = (*Redis)(nil)
)

// NewCache selects the cache configured under file_cache.driver.
func NewCache(cfg *config.Config, rc *redisclient.RedisClient, logger *zap.Logger) (repository.FileReferenceCache, error) {
	switch cfg.FileCache.Driver {
	case config.FileCacheRedis:
		if rc == nil {
			return nil, errors.New("file_cache.driver is redis but redis is disabled")
		}
		logger.Info("File cache initialized",
			zap.String("driver", config.FileCacheRedis),
			zap.String("key", cfg.FileCache.KeyPrefix+"files"),
			zap.Duration("ttl", cfg.FileCache.TTL),
		)
		return NewRedis(rc.Client, cfg.FileCache.KeyPrefix, cfg.FileCache.TTL, logger), nil
	default:
		logger.Info("File cache initialized",
			zap.String("driver", config.FileCacheMemory),
			zap.Duration("ttl", cfg.FileCache.TTL),
		)
		return NewMemory(cfg.FileCache.TTL), nil
	}
}

func validateRef(ref entity.FileReference) error {
	if strings.TrimSpace(ref.ID) == "" {
		return apierror.Argumentf("file_id", "document ID cannot be empty")
	}
	return nil
}

var Module = fx.Module("filecache",
	fx.Provide(NewCache),
)
