package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/noah-isme/academy-crm/pkg/storage"
)

const redisKeyPrefix = "academy-crm:"

// fileStore is the subset of storage.LocalStorage used for tokens.
type fileStore interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Delete(filename string) error
}

// FileTokenRepository persists the session token as a single file named after the key.
type FileTokenRepository struct {
	store fileStore
	key   string
}

// NewFileTokenRepository constructs a file-backed token store.
func NewFileTokenRepository(store fileStore, key string) *FileTokenRepository {
	return &FileTokenRepository{store: store, key: key}
}

// Load returns the persisted token, or "" when none is stored.
func (r *FileTokenRepository) Load(context.Context) (string, error) {
	data, err := r.store.Read(r.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("load token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token.
func (r *FileTokenRepository) Save(_ context.Context, token string) error {
	if _, err := r.store.Save(r.key, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Delete removes the token if present.
func (r *FileTokenRepository) Delete(context.Context) error {
	if err := r.store.Delete(r.key); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// RedisTokenRepository persists the session token under a fixed Redis key without expiry.
type RedisTokenRepository struct {
	client redis.Cmdable
	key    string
}

// NewRedisTokenRepository constructs a Redis-backed token store.
func NewRedisTokenRepository(client redis.Cmdable, key string) *RedisTokenRepository {
	return &RedisTokenRepository{client: client, key: redisKeyPrefix + key}
}

// Load returns the persisted token, or "" when none is stored.
func (r *RedisTokenRepository) Load(ctx context.Context) (string, error) {
	token, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return token, nil
}

// Save writes the token.
func (r *RedisTokenRepository) Save(ctx context.Context, token string) error {
	if err := r.client.Set(ctx, r.key, token, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

// Delete removes the token if present.
func (r *RedisTokenRepository) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", r.key, err)
	}
	return nil
}
