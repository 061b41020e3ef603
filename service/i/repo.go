package i

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/google/uuid"
)

var (
	ErrPlayerNotFound   = errors.New("player not found")
	ErrUsernameConflict = errors.New("username conflict")
	ErrLevelRunNotFound = errors.New("level run not found")
)

// PlayerRepo defines the interface for player persistence operations.
type PlayerRepo interface {
	// Save inserts or updates a player in the repository.
	// If the player already exists, it updates the record. Otherwise, it creates a new one.
	Save(player *dmn.Player) error

	// ByID retrieves a player by their unique ID.
	// Returns ErrPlayerNotFound if there is no such player.
	ByID(id uuid.UUID) (*dmn.Player, error)

	// ByUsername retrieves a player by their username.
	// Returns ErrPlayerNotFound if there is no such player.
	ByUsername(username string) (*dmn.Player, error)
}

// LevelRunRepo persists the history of generated levels.
type LevelRunRepo interface {
	// Save inserts or replaces a run.
	Save(run *dmn.LevelRun) error

	// Finish records the outcome of a run.
	// Returns ErrLevelRunNotFound if the run was never saved.
	Finish(id uuid.UUID, outcome dmn.Outcome, endedAt time.Time) error

	// ByID retrieves a run by its ID.
	ByID(id uuid.UUID) (*dmn.LevelRun, error)

	// ByPlayer lists a player's most recent runs, newest first.
	ByPlayer(playerID uuid.UUID, limit int64) ([]*dmn.LevelRun, error)
}
