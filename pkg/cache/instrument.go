package cache

import (
	"context"
	"strings"
	"time"

	"github.com/scaduxx/folio/pkg/observability"
)

// Instrument wraps c so that every Get and Set is reported to the
// registered observability cache hooks. The reported key type is the first
// colon-separated key segment naming a kind ("query", "layout" or
// "artifact"), so scoped keys report the same type as unscoped ones.
func Instrument(c Cache) Cache {
	if _, ok := c.(NullCache); ok {
		return c
	}
	return &instrumented{Cache: c}
}

type instrumented struct {
	Cache
}

func (c *instrumented) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, hit, err := c.Cache.Get(ctx, key)
	if err == nil {
		if hit {
			observability.Cache().OnCacheHit(ctx, keyType(key))
		} else {
			observability.Cache().OnCacheMiss(ctx, keyType(key))
		}
	}
	return data, hit, err
}

func (c *instrumented) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := c.Cache.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return err
}

func keyType(key string) string {
	parts := strings.Split(key, ":")
	for _, p := range parts {
		switch p {
		case "query", "layout", "artifact":
			return p
		}
	}
	if len(parts) > 0 {
		return parts[0]
	}
	return key
}
