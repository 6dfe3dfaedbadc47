package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/finseva/finseva/internal/domain"
	"github.com/redis/go-redis/v9"
)

const profileKeyPrefix = "finseva:profile:"

// ProfileStoreRedis keeps each profile as a JSON string.
type ProfileStoreRedis struct {
	client redis.UniversalClient
}

// NewProfileStoreRedis connects to the Redis server at addr.
func NewProfileStoreRedis(addr, password string, db int) *ProfileStoreRedis {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewProfileStoreRedisWithClient(rdb)
}

// NewProfileStoreRedisWithClient wraps an existing client.
func NewProfileStoreRedisWithClient(client redis.UniversalClient) *ProfileStoreRedis {
	return &ProfileStoreRedis{client: client}
}

// ProfileKey is the Redis key holding a user's profile
func ProfileKey(userID string) string {
	return profileKeyPrefix + userID
}

// Ping checks the connection.
func (r *ProfileStoreRedis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Get loads the user's profile.
func (r *ProfileStoreRedis) Get(ctx context.Context, userID string) (domain.Profile, error) {
	val, err := r.client.Get(ctx, ProfileKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Profile{}, ErrNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile %s: %w", userID, err)
	}

	var profile domain.Profile
	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return domain.Profile{}, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return profile, nil
}

// Upsert stores the user's profile without expiry.
func (r *ProfileStoreRedis) Upsert(ctx context.Context, userID string, profile domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile %s: %w", userID, err)
	}
	if err := r.client.Set(ctx, ProfileKey(userID), data, 0).Err(); err != nil {
		return fmt.Errorf("set profile %s: %w", userID, err)
	}
	return nil
}

// Close releases the connection pool.
func (r *ProfileStoreRedis) Close() error {
	return r.client.Close()
}
