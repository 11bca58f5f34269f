package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/splitledger/internal/config"
)

type balance struct {
	Amount float64
	IDs    []string
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "balance:pair:a:b", PairKey("a", "b"))
	assert.NotEqual(t, PairKey("a", "b"), PairKey("b", "a"))
	assert.Equal(t, "balance:group:g1", GroupKey("g1"))
}

func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	var got balance
	ok, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	want := balance{Amount: 12.5, IDs: []string{"e1", "e2"}}
	set(t, c, "k1", want)
	set(t, c, "k2", want)

	ok, err = c.Get(ctx, "k1", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, got)

	require.NoError(t, c.Invalidate(ctx, "k1", "k2", "never-set"))
	ok, err = c.Get(ctx, "k2", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Invalidate(ctx))

	// A result read before an invalidation must not be stored after it.
	v, err := c.Version(ctx, "k3")
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "k3"))
	stored, err := c.SetIfVersion(ctx, "k3", v, want)
	require.NoError(t, err)
	assert.False(t, stored)
	ok, err = c.Get(ctx, "k3", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	set(t, c, "k3", want)
	ok, err = c.Get(ctx, "k3", &got)
	require.NoError(t, err)
	assert.True(t, ok)
}

// set stores v at the current generation of key.
func set(t *testing.T, c Cache, key string, v any) {
	t.Helper()
	ctx := context.Background()
	version, err := c.Version(ctx, key)
	require.NoError(t, err)
	stored, err := c.SetIfVersion(ctx, key, version, v)
	require.NoError(t, err)
	require.True(t, stored)
}

func TestInMemoryCache(t *testing.T) {
	exerciseCache(t, NewInMemoryCache(time.Minute))
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	set(t, c, "k", balance{Amount: 1})

	var got balance
	ok, _ := c.Get(ctx, "k", &got)
	assert.True(t, ok)

	now = now.Add(time.Minute)
	ok, _ = c.Get(ctx, "k", &got)
	assert.False(t, ok)
	assert.Empty(t, c.entries)
}

func TestInMemoryCache_ValuesAreCopied(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	ctx := context.Background()

	v := balance{IDs: []string{"e1"}}
	set(t, c, "k", v)
	v.IDs[0] = "changed"

	var got balance
	_, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, got.IDs)
}

func TestNop(t *testing.T) {
	var c Cache = Nop{}
	ctx := context.Background()
	stored, err := c.SetIfVersion(ctx, "k", 0, 1)
	require.NoError(t, err)
	assert.False(t, stored)
	var got int
	ok, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	c, err := NewRedisCache(context.Background(), config.RedisConfig{Addr: addr}, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	exerciseCache(t, c)
}
