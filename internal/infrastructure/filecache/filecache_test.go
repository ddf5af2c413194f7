package filecache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"forsign-esign/internal/config"
	"forsign-esign/internal/domain/apierror"
	"forsign-esign/internal/domain/entity"
	"forsign-esign/internal/domain/repository"
	redisclient "forsign-esign/internal/infrastructure/redis"
)

var (
	contract = entity.FileReference{ID: "doc-b", Name: "contract.pdf"}
	annex    = entity.FileReference{ID: "doc-a", Name: "annex.pdf"}
)

func newRedisCache(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedis(client, "forsign:", ttl, zap.NewNop()), mr
}

// exerciseCache runs the behaviour shared by every implementation.
func exerciseCache(t *testing.T, cache repository.FileReferenceCache) {
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, contract.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, contract))
	require.NoError(t, cache.Set(ctx, annex))

	got, ok, err := cache.Get(ctx, contract.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, contract, got)

	renamed := entity.FileReference{ID: contract.ID, Name: "contract-v2.pdf"}
	require.NoError(t, cache.Set(ctx, renamed))

	all, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.FileReference{annex, renamed}, all)

	err = cache.Set(ctx, entity.FileReference{Name: "no-id.pdf"})
	assert.ErrorIs(t, err, apierror.ErrInvalidArgument)

	require.NoError(t, cache.Clear(ctx))
	all, err = cache.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemory(t *testing.T) {
	exerciseCache(t, NewMemory(0))
}

func TestRedis(t *testing.T) {
	cache, _ := newRedisCache(t, 0)
	exerciseCache(t, cache)
}

func TestMemory_TTL(t *testing.T) {
	ctx := context.Background()
	cache := NewMemory(time.Minute)
	now := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, contract))
	_, ok, _ := cache.Get(ctx, contract.ID)
	assert.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok, _ = cache.Get(ctx, contract.ID)
	assert.False(t, ok)

	all, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRedis_TTLAndLayout(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, time.Hour)

	require.NoError(t, cache.Set(ctx, contract))
	assert.True(t, mr.Exists("forsign:files"))
	assert.Equal(t, time.Hour, mr.TTL("forsign:files"))
	assert.JSONEq(t, `{"fileId":"doc-b","fileName":"contract.pdf"}`, mr.HGet("forsign:files", "doc-b"))

	mr.FastForward(2 * time.Hour)
	_, ok, err := cache.Get(ctx, contract.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_SkipsUnreadableEntries(t *testing.T) {
	ctx := context.Background()
	cache, mr := newRedisCache(t, 0)

	require.NoError(t, cache.Set(ctx, annex))
	mr.HSet("forsign:files", "broken", "{not json")

	all, err := cache.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.FileReference{annex}, all)

	_, _, err = cache.Get(ctx, "broken")
	assert.Error(t, err)
}

func TestRedis_ConnectionFailure(t *testing.T) {
	cache, mr := newRedisCache(t, 0)
	mr.Close()

	err := cache.Set(context.Background(), contract)
	assert.Error(t, err)
}

func TestNewCache(t *testing.T) {
	logger := zap.NewNop()

	cfg := &config.Config{FileCache: config.FileCacheConfig{Driver: config.FileCacheMemory}}
	cache, err := NewCache(cfg, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, cache)

	cfg.FileCache.Driver = config.FileCacheRedis
	_, err = NewCache(cfg, nil, logger)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	rc := &redisclient.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { rc.Client.Close() })

	cfg.FileCache.KeyPrefix = "test:"
	cache, err = NewCache(cfg, rc, logger)
	require.NoError(t, err)
	require.IsType(t, &Redis{}, cache)
	assert.Equal(t, "test:files", cache.(*Redis).key)
}
