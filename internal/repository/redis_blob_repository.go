package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobRepository keeps blobs as plain Redis string keys without expiry.
type RedisBlobRepository struct {
	client redis.Cmdable
	prefix string
}

// NewRedisBlobRepository constructs the repository. prefix namespaces keys.
func NewRedisBlobRepository(client redis.Cmdable, prefix string) *RedisBlobRepository {
	return &RedisBlobRepository{client: client, prefix: prefix}
}

func (r *RedisBlobRepository) key(key string) string {
	return r.prefix + key
}

// Get returns the blob stored under key.
func (r *RedisBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Put replaces the blob stored under key.
func (r *RedisBlobRepository) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *RedisBlobRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}
