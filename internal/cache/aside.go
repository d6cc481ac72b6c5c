package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"inkwell/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Aside implements the cache-aside pattern with JSON encoding. On a hit
// the cached value is decoded and returned; on a miss or any Redis
// failure the fetch function runs against the source of truth and the
// result is stored best-effort. A nil client disables caching entirely.
func Aside[T any](ctx context.Context, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	prefix := keyPrefix(key)

	if client == nil {
		return fetch()
	}

	ctx, span := observability.GetTraceLayer().TraceRedisOperation(ctx, "cache_aside")
	defer span.End()

	raw, err := client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr == nil {
			observability.RecordCacheLookup(prefix, observability.CacheOutcomeHit)
			return cached, nil
		}
		// Corrupt entry, fall through to refetch.
		observability.RecordCacheLookup(prefix, observability.CacheOutcomeError)
	case errors.Is(err, redis.Nil):
		observability.RecordCacheLookup(prefix, observability.CacheOutcomeMiss)
	default:
		observability.RecordCacheLookup(prefix, observability.CacheOutcomeError)
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}

	if encoded, marshalErr := json.Marshal(value); marshalErr == nil {
		client.Set(ctx, key, encoded, ttl)
	}

	return value, nil
}

func keyPrefix(key string) string {
	if idx := strings.IndexByte(key, ':'); idx > 0 {
		return key[:idx]
	}
	return key
}
