package domain

import (
	"time"

	"github.com/google/uuid"
)

// Outcome is how a level run finished.
type Outcome string

const (
	OutcomeActive   Outcome = "active"
	OutcomeFell     Outcome = "fell"
	OutcomePlatform Outcome = "platform"
	OutcomeTrigger  Outcome = "trigger"
)

// LevelRun records one generated level. The layout itself is never stored;
// Seed and the maze parameters are enough to regenerate it.
type LevelRun struct {
	ID            uuid.UUID  `bson:"_id"`
	PlayerID      uuid.UUID  `bson:"playerId"`
	MazeNumber    int64      `bson:"mazeNumber"`
	Seed          int64      `bson:"seed"`
	Size          int        `bson:"size"`
	TilesToRemove int        `bson:"tilesToRemove"`
	GenerateRoof  bool       `bson:"generateRoof"`
	Outcome       Outcome    `bson:"outcome"`
	CreatedAt     time.Time  `bson:"createdAt"`
	EndedAt       *time.Time `bson:"endedAt,omitempty"`
}

// Score is a leaderboard entry. Depth is the number of levels the player
// has ended; the global maze count plays no part in it.
type Score struct {
	PlayerID uuid.UUID `json:"player_id"`
	Depth    int64     `json:"depth"`
}
