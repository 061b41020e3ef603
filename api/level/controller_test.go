package levelapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/beka-birhanu/vinom-labyrinth/api"
	api_i "github.com/beka-birhanu/vinom-labyrinth/api/i"
	"github.com/beka-birhanu/vinom-labyrinth/api/identity"
	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/game"
	"github.com/beka-birhanu/vinom-labyrinth/maze"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tokenOwner struct {
	id       uuid.UUID
	username string
}

// tokenTable maps bearer tokens to players.
type tokenTable map[string]tokenOwner

func (t tokenTable) Generate(map[string]interface{}, time.Duration) (string, error) {
	return "", errors.New("not supported")
}

func (t tokenTable) Decode(token string) (map[string]interface{}, error) {
	owner, ok := t[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return map[string]interface{}{
		i.ClaimPlayerID: owner.id.String(),
		i.ClaimUsername: owner.username,
	}, nil
}

type fakeLevels struct {
	owner     uuid.UUID
	level     uuid.UUID
	createErr error
	opts      i.LevelOptions
	playerY   float32
	contact   game.Collider
	trigger   game.Collider
	count     int64
	resets    int
	topN      int64
	history   []*dmn.LevelRun
}

func (f *fakeLevels) state(withLayout bool) *i.LevelState {
	st := &i.LevelState{ID: f.level, PlayerID: f.owner, MazeNumber: 3, Size: 5, TilesToRemove: 3, Text: "Maze: 3"}
	if withLayout {
		st.Grid = []string{"#####", "#.P.#", "#####"}
		st.PlayerSpawn = &game.Vector3{X: 1, Y: 1, Z: 1}
		st.Pickup = game.Placement{Kind: game.KindPickup}
	}
	return st
}

func (f *fakeLevels) Create(_ context.Context, playerID uuid.UUID, opts i.LevelOptions) (*i.LevelState, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.opts = opts
	f.owner = playerID
	return f.state(true), nil
}

func (f *fakeLevels) Get(_ context.Context, id uuid.UUID) (*i.LevelState, error) {
	return f.state(true), nil
}

func (f *fakeLevels) Owns(id, playerID uuid.UUID) error {
	if id != f.level {
		return i.ErrLevelNotFound
	}
	if playerID != f.owner {
		return i.ErrNotLevelOwner
	}
	return nil
}

func (f *fakeLevels) Tick(_ context.Context, _ uuid.UUID, playerY float32) (*i.LevelState, error) {
	f.playerY = playerY
	st := f.state(false)
	if playerY < -10 {
		st.Ended = true
		st.Reason = game.ReasonFell
		st.Scenes = []string{game.DefaultGameOverScene}
	}
	return st, nil
}

func (f *fakeLevels) Contact(_ context.Context, _ uuid.UUID, other game.Collider) (*i.LevelState, error) {
	f.contact = other
	return f.state(false), nil
}

func (f *fakeLevels) Trigger(_ context.Context, _ uuid.UUID, other game.Collider) (*i.LevelState, error) {
	f.trigger = other
	return f.state(false), nil
}

func (f *fakeLevels) History(_ context.Context, _ uuid.UUID, _ int64) ([]*dmn.LevelRun, error) {
	return f.history, nil
}

func (f *fakeLevels) MazeCount(context.Context) (int64, error) {
	return f.count, nil
}

func (f *fakeLevels) ResetMazeCount(context.Context) error {
	f.resets++
	f.count = 0
	return nil
}

func (f *fakeLevels) Leaderboard(_ context.Context, n int64) ([]dmn.Score, error) {
	f.topN = n
	return []dmn.Score{{PlayerID: f.owner, Depth: 7}}, nil
}

type harness struct {
	engine *gin.Engine
	levels *fakeLevels
	owner  uuid.UUID
	other  uuid.UUID
	admin  uuid.UUID
}

func newHarness(t *testing.T) *harness {
	gin.SetMode(gin.TestMode)

	h := &harness{
		owner: uuid.New(),
		other: uuid.New(),
		admin: uuid.New(),
	}
	h.levels = &fakeLevels{owner: h.owner, level: uuid.New(), count: 4}

	controller, err := NewLevelController(h.levels, []string{"keeper"})
	require.NoError(t, err)

	h.engine = api.NewRouter(api.Config{
		BaseURL:     "/api",
		Controllers: []api_i.Controller{controller},
		AuthorizationMiddleware: identity.Authoriz(tokenTable{
			"owner": {id: h.owner, username: "walker"},
			"other": {id: h.other, username: "stranger"},
			"admin": {id: h.admin, username: "keeper"},
		}),
	}).Engine()
	return h
}

func (h *harness) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.engine.ServeHTTP(w, req)
	return w
}

func (h *harness) levelPath(suffix string) string {
	return "/api/v1/levels/" + h.levels.level.String() + suffix
}

func decode(t *testing.T, w *httptest.ResponseRecorder) LevelResponse {
	t.Helper()
	var res LevelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestCreateLevel(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		h := newHarness(t)
		w := h.do(http.MethodPost, "/api/v1/levels", "owner", nil)

		require.Equal(t, http.StatusCreated, w.Code)
		res := decode(t, w)
		assert.Equal(t, h.levels.level.String(), res.ID)
		assert.Equal(t, int64(3), res.MazeNumber)
		assert.Len(t, res.Grid, 3)
		assert.NotNil(t, res.PlayerSpawn)
		assert.NotNil(t, res.Pickup)
		assert.Nil(t, h.levels.opts.Size)
		assert.Equal(t, "Maze: 3", res.Text)
	})

	t.Run("overrides", func(t *testing.T) {
		h := newHarness(t)
		w := h.do(http.MethodPost, "/api/v1/levels", "owner", map[string]interface{}{
			"size":            9,
			"tiles_to_remove": 12,
			"generate_roof":   false,
			"seed":            42,
		})

		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, h.levels.opts.Size)
		assert.Equal(t, 9, *h.levels.opts.Size)
		assert.Equal(t, 12, *h.levels.opts.TilesToRemove)
		assert.False(t, *h.levels.opts.GenerateRoof)
		assert.Equal(t, int64(42), *h.levels.opts.Seed)
	})

	t.Run("invalid maze", func(t *testing.T) {
		h := newHarness(t)
		h.levels.createErr = maze.ErrTileTargetUnreachable
		w := h.do(http.MethodPost, "/api/v1/levels", "owner", map[string]interface{}{"size": 4, "tiles_to_remove": 9})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("oversize maze", func(t *testing.T) {
		h := newHarness(t)
		h.levels.createErr = fmt.Errorf("%w: 1500 > 100", i.ErrMazeTooLarge)
		w := h.do(http.MethodPost, "/api/v1/levels", "owner", map[string]interface{}{"size": 1500, "tiles_to_remove": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "maze size exceeds")
	})

	t.Run("storage failure", func(t *testing.T) {
		h := newHarness(t)
		h.levels.createErr = errors.New("mongo down")
		w := h.do(http.MethodPost, "/api/v1/levels", "owner", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "mongo")
	})

	t.Run("unauthenticated", func(t *testing.T) {
		h := newHarness(t)
		assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/api/v1/levels", "", nil).Code)
		assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodPost, "/api/v1/levels", "forged", nil).Code)
	})
}

func TestLevelOwnership(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(http.MethodGet, h.levelPath(""), "owner", nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodGet, h.levelPath(""), "other", nil).Code)
	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/v1/levels/"+uuid.NewString(), "owner", nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/levels/not-a-uuid", "owner", nil).Code)
}

func TestTick(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, h.levelPath("/tick"), "owner", map[string]interface{}{"player_y": 0.5})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.False(t, res.Ended)
	assert.Empty(t, res.Reason)
	assert.Empty(t, res.Grid)
	assert.Equal(t, float32(0.5), h.levels.playerY)

	w = h.do(http.MethodPost, h.levelPath("/tick"), "owner", map[string]interface{}{"player_y": -11})
	require.Equal(t, http.StatusOK, w.Code)
	res = decode(t, w)
	assert.True(t, res.Ended)
	assert.Equal(t, "fell", res.Reason)
	assert.Equal(t, []string{game.DefaultGameOverScene}, res.Scenes)

	// player_y is required; zero is a valid height.
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, h.levelPath("/tick"), "owner", map[string]interface{}{}).Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, h.levelPath("/tick"), "owner", map[string]interface{}{"player_y": 0}).Code)

	assert.Equal(t, http.StatusForbidden, h.do(http.MethodPost, h.levelPath("/tick"), "other", map[string]interface{}{"player_y": 0}).Code)
}

func TestContactAndTrigger(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, h.levelPath("/contact"), "owner", map[string]interface{}{"collider_id": "game-over-platform"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.Collider{ID: "game-over-platform"}, h.levels.contact)

	w = h.do(http.MethodPost, h.levelPath("/trigger"), "owner", map[string]interface{}{"tag": game.PlayerTag})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, game.Collider{Tag: game.PlayerTag}, h.levels.trigger)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, h.levelPath("/contact"), "owner", map[string]interface{}{}).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, h.levelPath("/trigger"), "owner", map[string]interface{}{}).Code)
}

func TestMazeCount(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/v1/maze-count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":4}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, h.do(http.MethodDelete, "/api/v1/maze-count", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, h.do(http.MethodDelete, "/api/v1/maze-count", "owner", nil).Code)
	assert.Zero(t, h.levels.resets)
	assert.Equal(t, http.StatusNoContent, h.do(http.MethodDelete, "/api/v1/maze-count", "admin", nil).Code)
	assert.Equal(t, 1, h.levels.resets)

	w = h.do(http.MethodGet, "/api/v1/maze-count", "", nil)
	assert.JSONEq(t, `{"count":0}`, w.Body.String())
}

func TestLeaderboard(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodGet, "/api/v1/leaderboard", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(defaultLeaderboardSize), h.levels.topN)

	var scores []dmn.Score
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scores))
	assert.Equal(t, []dmn.Score{{PlayerID: h.owner, Depth: 7}}, scores)

	h.do(http.MethodGet, "/api/v1/leaderboard?limit=1000", "", nil)
	assert.Equal(t, int64(maxLeaderboardSize), h.levels.topN)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/leaderboard?limit=0", "", nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/v1/leaderboard?limit=x", "", nil).Code)
}

func TestHistory(t *testing.T) {
	h := newHarness(t)
	ended := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	h.levels.history = []*dmn.LevelRun{{
		ID:         uuid.New(),
		PlayerID:   h.owner,
		MazeNumber: 2,
		Outcome:    dmn.OutcomeFell,
		CreatedAt:  ended.Add(-time.Minute),
		EndedAt:    &ended,
	}}

	w := h.do(http.MethodGet, "/api/v1/levels", "owner", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var runs []RunResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "fell", runs[0].Outcome)
	assert.Equal(t, int64(2), runs[0].MazeNumber)
}
