package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/game"
	"github.com/google/uuid"
)

var (
	ErrLevelNotFound = errors.New("level not found")
	ErrNotLevelOwner = errors.New("level belongs to another player")
	ErrMazeTooLarge  = errors.New("maze size exceeds the allowed maximum")
)

// LevelOptions overrides the configured level defaults. Nil fields keep the default.
type LevelOptions struct {
	Size          *int
	TilesToRemove *int
	GenerateRoof  *bool
	Seed          *int64
}

// LevelState is a snapshot of a level session.
type LevelState struct {
	ID            uuid.UUID
	PlayerID      uuid.UUID
	MazeNumber    int64
	Seed          int64
	Size          int
	TilesToRemove int
	GenerateRoof  bool
	Grid          []string
	PlayerSpawn   *game.Vector3
	Pickup        game.Placement
	Placements    []game.Placement
	Frame         uint64
	Ended         bool
	Reason        game.Reason
	Scenes        []string
	Text          string // last text shown on the level's display, e.g. "Maze: 3"
}

// LevelManager runs level sessions on behalf of players.
type LevelManager interface {
	Create(ctx context.Context, playerID uuid.UUID, opts LevelOptions) (*LevelState, error)
	Get(ctx context.Context, id uuid.UUID) (*LevelState, error)
	Owns(id, playerID uuid.UUID) error
	Tick(ctx context.Context, id uuid.UUID, playerY float32) (*LevelState, error)
	Contact(ctx context.Context, id uuid.UUID, other game.Collider) (*LevelState, error)
	Trigger(ctx context.Context, id uuid.UUID, other game.Collider) (*LevelState, error)
	History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.LevelRun, error)
	MazeCount(ctx context.Context) (int64, error)
	ResetMazeCount(ctx context.Context) error
	Leaderboard(ctx context.Context, n int64) ([]dmn.Score, error)
}
