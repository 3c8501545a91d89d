package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a [Store] backed by a shared Redis instance, for deployments
// where the session must follow the user across hosts (kiosks, render farms).
// Slot names are namespaced under a key prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an existing client. The caller owns the client's
// lifecycle up to [RedisStore.Close].
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "rgbim"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(slot string) string {
	return s.prefix + ":" + slot
}

func (s *RedisStore) Read(ctx context.Context, slot string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(slot)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis store: read %s: %w", slot, err)
	}
	return data, nil
}

func (s *RedisStore) Write(ctx context.Context, slot string, data []byte) error {
	return s.WriteAll(ctx, map[string][]byte{slot: data})
}

func (s *RedisStore) WriteAll(ctx context.Context, values map[string][]byte) error {
	// MULTI/EXEC so the user slot and token slot move together.
	pipe := s.client.TxPipeline()
	for slot, data := range values {
		if data == nil {
			pipe.Del(ctx, s.key(slot))
			continue
		}
		pipe.Set(ctx, s.key(slot), data, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis store: write: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
