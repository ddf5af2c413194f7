package filecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"forsign-esign/internal/domain/entity"
)

// Redis stores every reference as a field of one hash, {prefix}files.
// The TTL applies to the whole hash and is refreshed on each Set.
type Redis struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedis(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *Redis {
	return &Redis{
		client: client,
		key:    prefix + "files",
		ttl:    ttl,
		logger: logger,
	}
}

func (r *Redis) Set(ctx context.Context, ref entity.FileReference) error {
	if err := validateRef(ref); err != nil {
		return err
	}

	data, err := json.Marshal(ref)
	if err != nil {
		return fmt.Errorf("failed to encode file reference: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.key, ref.ID, data)
	if r.ttl > 0 {
		pipe.Expire(ctx, r.key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache file reference %s: %w", ref.ID, err)
	}
	return nil
}

func (r *Redis) Get(ctx context.Context, id string) (entity.FileReference, bool, error) {
	data, err := r.client.HGet(ctx, r.key, id).Bytes()
	if errors.Is(err, redis.Nil) {
		return entity.FileReference{}, false, nil
	}
	if err != nil {
		return entity.FileReference{}, false, fmt.Errorf("failed to read file reference %s: %w", id, err)
	}

	var ref entity.FileReference
	if err := json.Unmarshal(data, &ref); err != nil {
		return entity.FileReference{}, false, fmt.Errorf("failed to decode file reference %s: %w", id, err)
	}
	return ref, true, nil
}

// All skips entries that cannot be decoded and returns the rest sorted by id.
func (r *Redis) All(ctx context.Context) ([]entity.FileReference, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list file references: %w", err)
	}

	refs := make([]entity.FileReference, 0, len(values))
	for id, data := range values {
		var ref entity.FileReference
		if err := json.Unmarshal([]byte(data), &ref); err != nil {
			r.logger.Warn("Skipping unreadable cached file reference",
				zap.String("file_id", id),
				zap.Error(err),
			)
			continue
		}
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear file references: %w", err)
	}
	return nil
}
