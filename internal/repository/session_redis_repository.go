package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/adminui-api/internal/table"
	appErrors "github.com/noah-isme/adminui-api/pkg/errors"
)

// RedisSessionRepository stores table session snapshots as JSON values with a
// sliding TTL, so sessions can be served by any replica.
type RedisSessionRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionRepository constructs a Redis-backed session store.
func NewRedisSessionRepository(client *redis.Client, prefix string, ttl time.Duration, logger *zap.Logger) *RedisSessionRepository {
	if prefix == "" {
		prefix = "adminui:session:"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisSessionRepository{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

func (r *RedisSessionRepository) key(id string) string {
	return r.prefix + id
}

// Get loads and decodes a snapshot, extending its TTL.
func (r *RedisSessionRepository) Get(ctx context.Context, id string) (table.Snapshot, error) {
	key := r.key(id)
	var raw []byte
	var err error
	if r.ttl > 0 {
		raw, err = r.client.GetEx(ctx, key, r.ttl).Bytes()
	} else {
		raw, err = r.client.Get(ctx, key).Bytes()
	}
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return table.Snapshot{}, appErrors.ErrSessionNotFound
		}
		return table.Snapshot{}, fmt.Errorf("redis get %s: %w", key, err)
	}

	var snap table.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return table.Snapshot{}, fmt.Errorf("unmarshal session %s: %w", key, err)
	}
	return snap, nil
}

// Save encodes and stores a snapshot.
func (r *RedisSessionRepository) Save(ctx context.Context, id string, snap table.Snapshot) error {
	key := r.key(id)
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", key, err)
	}
	if err := r.client.Set(ctx, key, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes a snapshot.
func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", key, err)
	}
	return nil
}

// IDs scans for every live session key.
func (r *RedisSessionRepository) IDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), r.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan %s*: %w", r.prefix, err)
	}
	return ids, nil
}

// Close releases the underlying Redis connection.
func (r *RedisSessionRepository) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Warn("close redis session store", zap.Error(err))
		return err
	}
	return nil
}
