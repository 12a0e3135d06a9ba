package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Addr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cache:6379", Config{Host: "cache"}.Addr())
	assert.Equal(t, "cache:6380", Config{Host: "cache", Port: "6380"}.Addr())
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Host: "cache"}.Enabled())
}

func TestNewRedisClient(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(context.Background(), Config{Host: mr.Host(), Port: mr.Port()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	cfg := Config{Host: mr.Host(), Port: mr.Port()}
	mr.Close()

	_, err := NewRedisClient(context.Background(), cfg)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("REDIS_HOST", "redis.local")
	t.Setenv("REDIS_PORT", "6390")
	t.Setenv("REDIS_PASSWORD", "pw")

	assert.Equal(t, Config{Host: "redis.local", Port: "6390", Password: "pw"}, LoadConfig())
}
