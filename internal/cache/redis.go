package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on Redis so every replica shares one cache.
// Values live under "<prefix><key>"; each tag is a set "<prefix>tag:<tag>"
// holding the keys it covers.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed cache. Prefix may be empty.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "content:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) tagKey(tag string) string { return r.prefix + "tag:" + tag }

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, val []byte, ttl time.Duration, tags []string) error {
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, r.prefix+key, val, ttl)
		for _, t := range tags {
			p.SAdd(ctx, r.tagKey(t), key)
			// the index outlives its newest entry so invalidation still finds it
			if ttl > 0 {
				p.Expire(ctx, r.tagKey(t), ttl+time.Minute)
			}
		}
		return nil
	})
	return err
}

func (r *RedisStore) InvalidateTag(ctx context.Context, tag string) error {
	keys, err := r.client.SMembers(ctx, r.tagKey(tag)).Result()
	if err != nil {
		return err
	}
	full := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		full = append(full, r.prefix+k)
	}
	full = append(full, r.tagKey(tag))
	return r.client.Del(ctx, full...).Err()
}
