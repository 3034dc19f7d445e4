package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MorningZephyr/zhen-bot/internal/models"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists profiles as JSON blobs in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore on an already-connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func profileKey(appName, ownerID string) string {
	return fmt.Sprintf("profile:%s:%s", appName, ownerID)
}

// Get implements SessionStore.
func (s *RedisStore) Get(ctx context.Context, appName, ownerID string) (*models.Profile, bool, error) {
	data, err := s.client.Get(ctx, profileKey(appName, ownerID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, false, fmt.Errorf("decode profile: %w", err)
	}
	return &profile, true, nil
}

// Put implements SessionStore. The whole blob is replaced atomically.
func (s *RedisStore) Put(ctx context.Context, appName, ownerID string, profile *models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := s.client.Set(ctx, profileKey(appName, ownerID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// ListSessions implements SessionStore by scanning for the owner's keys.
func (s *RedisStore) ListSessions(ctx context.Context, ownerID string) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, fmt.Sprintf("profile:*:%s", ownerID), 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}
