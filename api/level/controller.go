// Package levelapi exposes level sessions, the maze count and the leaderboard over HTTP.
package levelapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-labyrinth/api/identity"
	"github.com/beka-birhanu/vinom-labyrinth/game"
	"github.com/beka-birhanu/vinom-labyrinth/maze"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
	defaultHistorySize     = 20
)

// LevelController manages level sessions.
type LevelController struct {
	levels i.LevelManager
	admins map[string]bool // usernames allowed to reset the maze count
}

// NewLevelController initializes a LevelController. Only the players named
// in admins may reset the shared maze count.
func NewLevelController(lm i.LevelManager, admins []string) (*LevelController, error) {
	if lm == nil {
		return nil, errors.New("level controller needs a level manager")
	}
	lc := &LevelController{levels: lm, admins: make(map[string]bool, len(admins))}
	for _, a := range admins {
		if a != "" {
			lc.admins[a] = true
		}
	}
	return lc, nil
}

// RegisterPublic registers public routes.
func (lc *LevelController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", lc.leaderboard)
	route.GET("/maze-count", lc.mazeCount)
}

// RegisterProtected registers protected routes.
func (lc *LevelController) RegisterProtected(route *gin.RouterGroup) {
	levels := route.Group("/levels")
	{
		levels.POST("", lc.create)
		levels.GET("", lc.history)
		levels.GET("/:ID", lc.get)
		levels.POST("/:ID/tick", lc.tick)
		levels.POST("/:ID/contact", lc.contact)
		levels.POST("/:ID/trigger", lc.trigger)
	}
	route.DELETE("/maze-count", lc.resetMazeCount)
}

// create starts a new level for the authenticated player.
func (lc *LevelController) create(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request CreateLevelRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	state, err := lc.levels.Create(ctx.Request.Context(), playerID, i.LevelOptions{
		Size:          request.Size,
		TilesToRemove: request.TilesToRemove,
		GenerateRoof:  request.GenerateRoof,
		Seed:          request.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toLevelResponse(state))
}

// history lists the authenticated player's recent levels.
func (lc *LevelController) history(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	limit, err := queryLimit(ctx, defaultHistorySize, maxLeaderboardSize)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, err := lc.levels.History(ctx.Request.Context(), playerID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}

	res := make([]RunResponse, 0, len(runs))
	for _, r := range runs {
		res = append(res, toRunResponse(r))
	}
	ctx.JSON(http.StatusOK, res)
}

// get returns the full level, layout included.
func (lc *LevelController) get(ctx *gin.Context) {
	id, ok := lc.ownedLevel(ctx)
	if !ok {
		return
	}

	state, err := lc.levels.Get(ctx.Request.Context(), id)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toLevelResponse(state))
}

// tick advances the level one frame.
func (lc *LevelController) tick(ctx *gin.Context) {
	id, ok := lc.ownedLevel(ctx)
	if !ok {
		return
	}

	var request TickRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := lc.levels.Tick(ctx.Request.Context(), id, *request.PlayerY)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toLevelResponse(state))
}

// contact reports the player touching a collider.
func (lc *LevelController) contact(ctx *gin.Context) {
	id, ok := lc.ownedLevel(ctx)
	if !ok {
		return
	}

	var request ContactRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := lc.levels.Contact(ctx.Request.Context(), id, game.Collider{ID: request.ColliderID, Tag: request.ColliderTag})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toLevelResponse(state))
}

// trigger reports a collider entering the game-over trigger volume.
func (lc *LevelController) trigger(ctx *gin.Context) {
	id, ok := lc.ownedLevel(ctx)
	if !ok {
		return
	}

	var request TriggerRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state, err := lc.levels.Trigger(ctx.Request.Context(), id, game.Collider{ID: request.ColliderID, Tag: request.Tag})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, toLevelResponse(state))
}

// mazeCount returns the number of mazes generated since the last reset.
func (lc *LevelController) mazeCount(ctx *gin.Context) {
	count, err := lc.levels.MazeCount(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

// resetMazeCount starts the maze count over. The count is shared by every
// player, so only admins may reset it.
func (lc *LevelController) resetMazeCount(ctx *gin.Context) {
	username, ok := identity.Username(ctx)
	if !ok || !lc.admins[username] {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "only admins may reset the maze count"})
		return
	}

	if err := lc.levels.ResetMazeCount(ctx.Request.Context()); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// leaderboard returns the players who have ended the most levels.
func (lc *LevelController) leaderboard(ctx *gin.Context) {
	limit, err := queryLimit(ctx, defaultLeaderboardSize, maxLeaderboardSize)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scores, err := lc.levels.Leaderboard(ctx.Request.Context(), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, scores)
}

// ownedLevel parses the level ID and checks it belongs to the caller.
// It writes the error response and returns false on failure.
func (lc *LevelController) ownedLevel(ctx *gin.Context) (uuid.UUID, bool) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return uuid.Nil, false
	}

	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return uuid.Nil, false
	}

	if err := lc.levels.Owns(id, playerID); err != nil {
		writeError(ctx, err)
		return uuid.Nil, false
	}
	return id, true
}

func queryLimit(ctx *gin.Context, def, ceiling int64) (int64, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("limit must be a positive integer")
	}
	if n > ceiling {
		n = ceiling
	}
	return n, nil
}

func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrLevelNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrNotLevelOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrMazeTooLarge),
		errors.Is(err, maze.ErrInvalidSize),
		errors.Is(err, maze.ErrInvalidTileTarget),
		errors.Is(err, maze.ErrTileTargetUnreachable):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
