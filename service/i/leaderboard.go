package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/google/uuid"
)

// Leaderboard ranks players by how many mazes they have been through.
type Leaderboard interface {
	// Record counts the ended run for the player. Recording the same run
	// again leaves the score unchanged.
	Record(ctx context.Context, playerID, runID uuid.UUID) error

	// Top returns up to n entries, deepest first.
	Top(ctx context.Context, n int64) ([]dmn.Score, error)
}
