package leaderboard

import (
	"context"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/logger"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultKey = "labyrinth:leaderboard"

// RedisLeaderboard keeps each player's depth, the number of levels they
// ended, in a Redis sorted set. The runs already counted for a player are
// kept in a set next to it.
type RedisLeaderboard struct {
	client *redis.Client
	locker *redsync.Redsync
	key    string
	logger logger.Logger
}

var _ i.Leaderboard = &RedisLeaderboard{}

// NewRedisLeaderboard creates a leaderboard stored under key (a default key when empty).
func NewRedisLeaderboard(client *redis.Client, key string, l logger.Logger) *RedisLeaderboard {
	if key == "" {
		key = defaultKey
	}
	if l == nil {
		l = logger.Nop{}
	}
	pool := goredis.NewPool(client)
	return &RedisLeaderboard{
		client: client,
		locker: redsync.New(pool),
		key:    key,
		logger: l,
	}
}

func (rl *RedisLeaderboard) runsKey(member string) string {
	return rl.key + ":" + member + ":runs"
}

// Record adds one to the player's depth unless runID was already counted.
// The check and the write happen under a per-player lock so a retried
// finish cannot count a run twice.
func (rl *RedisLeaderboard) Record(ctx context.Context, playerID, runID uuid.UUID) error {
	member := playerID.String()
	mutex := rl.locker.NewMutex(rl.key + ":" + member + ":lock")
	if err := mutex.LockContext(ctx); err != nil {
		return fmt.Errorf("locking score of %s: %w", member, err)
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	counted, err := rl.client.SIsMember(ctx, rl.runsKey(member), runID.String()).Result()
	if err != nil {
		return err
	}
	if counted {
		rl.logger.Warning(fmt.Sprintf("run %s of player %s already counted", runID, member))
		return nil
	}

	_, err = rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, rl.runsKey(member), runID.String())
		pipe.ZIncrBy(ctx, rl.key, 1, member)
		return nil
	})
	return err
}

// Top returns up to n entries, deepest first.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]dmn.Score, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]dmn.Score, 0, len(entries))
	for _, e := range entries {
		raw, _ := e.Member.(string)
		id, err := uuid.Parse(raw)
		if err != nil {
			rl.logger.Warning(fmt.Sprintf("Non-UUID value in leaderboard: %v", e.Member))
			continue
		}
		scores = append(scores, dmn.Score{PlayerID: id, Depth: int64(e.Score)})
	}
	return scores, nil
}
