package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type program struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	c, err := NewRedisCache(context.Background(), Options{Addr: mr.Addr(), Prefix: "hti"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got []program
	hit, err := c.GetJSON(ctx, "programs", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := []program{{Code: "NUR", Name: "Nursing"}}
	require.NoError(t, c.SetJSON(ctx, "programs", want, time.Minute))
	assert.True(t, mr.Exists("hti:programs"))

	hit, err = c.GetJSON(ctx, "programs", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)

	mr.FastForward(2 * time.Minute)
	hit, err = c.GetJSON(ctx, "programs", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("hti:sessions", "not-json"))

	var got []program
	hit, err := c.GetJSON(context.Background(), "sessions", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestNewRedisCache_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), Options{Addr: addr})
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	hit, err := c.GetJSON(context.Background(), "x", &[]program{})
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.SetJSON(context.Background(), "x", 1, time.Second))
}
