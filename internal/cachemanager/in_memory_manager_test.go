package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type engineResult struct {
	EngineID string
	Score    float64
}

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue_StructType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, engineResult]("engine-results", DefaultExpiration, DefaultCleanupInterval)
	result := engineResult{EngineID: "momentum", Score: 0.42}
	cache.Set(context.Background(), "momentum", result, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "momentum")
	require.True(t, ok)
	require.Equal(t, result, got)
}

func TestInMemoryCacheManager_GetWithNoExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("engine-results", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "momentum")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithExistingInvalidValueType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("engine-results", DefaultExpiration, DefaultCleanupInterval)

	cache.cache.Set("momentum", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "momentum")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiration(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("engine-results", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "momentum", "stale-soon", 10*time.Millisecond)

	_, ok := cache.Get(context.Background(), "momentum")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = cache.Get(context.Background(), "momentum")
	require.False(t, ok)
}

func TestInMemoryCacheManager_GetMultiple(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("engine-results", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "momentum", "a", DefaultExpiration)
	cache.Set(context.Background(), "breadth", "b", DefaultExpiration)

	got, ok := cache.GetMultiple(context.Background(), []string{"momentum", "breadth", "missing"})
	require.True(t, ok)
	require.Equal(t, map[string]string{"momentum": "a", "breadth": "b"}, got)

	_, ok = cache.GetMultiple(context.Background(), []string{"nope"})
	require.False(t, ok)

	_, ok = cache.GetMultiple(context.Background(), nil)
	require.False(t, ok)
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("engine-results", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "a", "1", DefaultExpiration)
	cache.Set(context.Background(), "b", "2", DefaultExpiration)

	require.NoError(t, cache.Delete(context.Background(), "a"))
	_, ok := cache.Get(context.Background(), "a")
	require.False(t, ok)

	require.NoError(t, cache.Flush(context.Background()))
	_, ok = cache.Get(context.Background(), "b")
	require.False(t, ok)
}
