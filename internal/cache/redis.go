package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	scanBatchSize = 100

	keyMissing time.Duration = -2
	noExpiry   time.Duration = -1
)

// RedisTier stores cache entries as plain string keys under a fixed prefix.
type RedisTier struct {
	client    *redis.Client
	keyPrefix string
}

func NewRedisTier(client *redis.Client, keyPrefix string) *RedisTier {
	return &RedisTier{client: client, keyPrefix: keyPrefix}
}

// Ping checks connectivity for the health endpoint.
func (t *RedisTier) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

func (t *RedisTier) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return t.client.Set(ctx, t.keyPrefix+key, value, ttl).Err()
}

func (t *RedisTier) Delete(ctx context.Context, key string) error {
	return t.client.Del(ctx, t.keyPrefix+key).Err()
}

// Get returns the value and its remaining TTL. A missing key is not an error.
func (t *RedisTier) Get(ctx context.Context, key string) ([]byte, time.Duration, bool, error) {
	full := t.keyPrefix + key

	raw, err := t.client.Get(ctx, full).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("get %s: %w", full, err)
	}

	ttl, err := t.client.PTTL(ctx, full).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("pttl %s: %w", full, err)
	}
	// go-redis reports -2 when the key expired between GET and PTTL and -1
	// when it has no expiry.
	switch ttl {
	case keyMissing:
		return nil, 0, false, nil
	case noExpiry:
		ttl = OneHour
	}
	return raw, ttl, true, nil
}

// Clear deletes every key under the tier's prefix.
func (t *RedisTier) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := t.client.Scan(ctx, cursor, t.keyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("scan %s*: %w", t.keyPrefix, err)
		}
		if len(keys) > 0 {
			if err = t.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
