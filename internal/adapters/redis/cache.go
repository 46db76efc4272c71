package redisad

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"hbnb_web/internal/adapters/observability"
)

// Cache stores JSON values under a "hbnb:" key prefix. It backs the
// layout fragment only; API responses are never cached.
type Cache struct{ c *redis.Client }

func New(addr, pass string, db int) *Cache {
	return &Cache{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (r *Cache) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }

func (r *Cache) Close() error { return r.c.Close() }

func key(k string) string { return "hbnb:" + k }

func (r *Cache) Get(ctx context.Context, k string, dst any) (bool, error) {
	v, err := r.c.Get(ctx, key(k)).Bytes()
	if err == redis.Nil {
		observability.ObserveCache("redis", "miss")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	observability.ObserveCache("redis", "hit")
	return true, json.Unmarshal(v, dst)
}

func (r *Cache) Set(ctx context.Context, k string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", k, err)
	}
	observability.ObserveCache("redis", "set")
	return r.c.Set(ctx, key(k), b, time.Duration(ttlSec)*time.Second).Err()
}

func (r *Cache) Del(ctx context.Context, k string) error {
	observability.ObserveCache("redis", "del")
	return r.c.Del(ctx, key(k)).Err()
}
