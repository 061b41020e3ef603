// Package counter shares the maze count between service replicas through Redis.
package counter

import (
	"context"
	"errors"

	"github.com/beka-birhanu/vinom-labyrinth/game"
	"github.com/redis/go-redis/v9"
)

const defaultKey = "labyrinth:maze_count"

// RedisCounter is a game.Counter backed by a single Redis integer.
type RedisCounter struct {
	client *redis.Client
	key    string
}

var _ game.Counter = &RedisCounter{}

// NewRedisCounter creates a counter stored under key (a default key when empty).
func NewRedisCounter(client *redis.Client, key string) *RedisCounter {
	if key == "" {
		key = defaultKey
	}
	return &RedisCounter{client: client, key: key}
}

// Increment implements game.Counter.
func (rc *RedisCounter) Increment(ctx context.Context) (int64, error) {
	return rc.client.Incr(ctx, rc.key).Result()
}

// Current implements game.Counter.
func (rc *RedisCounter) Current(ctx context.Context) (int64, error) {
	n, err := rc.client.Get(ctx, rc.key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

// Reset implements game.Counter.
func (rc *RedisCounter) Reset(ctx context.Context) error {
	return rc.client.Set(ctx, rc.key, 0, 0).Err()
}
