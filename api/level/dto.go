package levelapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/game"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
)

// CreateLevelRequest overrides the server's level defaults. Every field is optional.
type CreateLevelRequest struct {
	Size          *int   `json:"size"`
	TilesToRemove *int   `json:"tiles_to_remove"`
	GenerateRoof  *bool  `json:"generate_roof"`
	Seed          *int64 `json:"seed"`
}

// TickRequest advances a level one frame.
type TickRequest struct {
	PlayerY *float32 `json:"player_y" binding:"required"`
}

// ContactRequest reports the player touching a collider.
type ContactRequest struct {
	ColliderID  string `json:"collider_id" binding:"required"`
	ColliderTag string `json:"collider_tag"`
}

// TriggerRequest reports a collider entering the game-over trigger.
type TriggerRequest struct {
	ColliderID string `json:"collider_id"`
	Tag        string `json:"tag" binding:"required"`
}

// LevelResponse is a level snapshot. Layout fields are only filled when the
// full level is requested.
type LevelResponse struct {
	ID            string           `json:"id"`
	MazeNumber    int64            `json:"maze_number"`
	Seed          int64            `json:"seed"`
	Size          int              `json:"size"`
	TilesToRemove int              `json:"tiles_to_remove"`
	GenerateRoof  bool             `json:"generate_roof"`
	Grid          []string         `json:"grid,omitempty"`
	PlayerSpawn   *game.Vector3    `json:"player_spawn,omitempty"`
	Pickup        *game.Placement  `json:"pickup,omitempty"`
	Placements    []game.Placement `json:"placements,omitempty"`
	Frame         uint64           `json:"frame"`
	Ended         bool             `json:"ended"`
	Reason        string           `json:"reason,omitempty"`
	Scenes        []string         `json:"scenes"`
	Text          string           `json:"text"`
}

// RunResponse is one entry of a player's level history.
type RunResponse struct {
	ID         string     `json:"id"`
	MazeNumber int64      `json:"maze_number"`
	Seed       int64      `json:"seed"`
	Size       int        `json:"size"`
	Outcome    string     `json:"outcome"`
	CreatedAt  time.Time  `json:"created_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"`
}

func toLevelResponse(s *i.LevelState) *LevelResponse {
	res := &LevelResponse{
		ID:            s.ID.String(),
		MazeNumber:    s.MazeNumber,
		Seed:          s.Seed,
		Size:          s.Size,
		TilesToRemove: s.TilesToRemove,
		GenerateRoof:  s.GenerateRoof,
		Grid:          s.Grid,
		Placements:    s.Placements,
		Frame:         s.Frame,
		Ended:         s.Ended,
		Scenes:        s.Scenes,
		Text:          s.Text,
	}
	if s.Scenes == nil {
		res.Scenes = []string{}
	}
	if s.Reason != game.ReasonNone {
		res.Reason = string(s.Reason)
	}
	if s.Grid != nil {
		pickup := s.Pickup
		res.PlayerSpawn = s.PlayerSpawn
		res.Pickup = &pickup
	}
	return res
}

func toRunResponse(r *dmn.LevelRun) RunResponse {
	return RunResponse{
		ID:         r.ID.String(),
		MazeNumber: r.MazeNumber,
		Seed:       r.Seed,
		Size:       r.Size,
		Outcome:    string(r.Outcome),
		CreatedAt:  r.CreatedAt,
		EndedAt:    r.EndedAt,
	}
}
