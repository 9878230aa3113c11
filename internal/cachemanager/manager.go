// Package cachemanager provides a typed cache layer over go-cache. The
// coordinator uses it to hold engine results for the span of their refresh
// interval, so a still-fresh result short-circuits recomputation.
package cachemanager

import (
	"context"
	"time"
)

type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	GetMultiple(ctx context.Context, keys []K) (map[K]V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
