package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-labyrinth/domain"
	"github.com/beka-birhanu/vinom-labyrinth/game"
	"github.com/beka-birhanu/vinom-labyrinth/logger"
	"github.com/beka-birhanu/vinom-labyrinth/maze"
	"github.com/beka-birhanu/vinom-labyrinth/service/i"
	"github.com/google/uuid"
)

const (
	defaultMaxSessions = 1000
	defaultMaxMazeSize = 100
)

// LevelDefaults are the level parameters used when a request does not override them.
type LevelDefaults struct {
	MazeSize       int
	TilesToRemove  int
	GenerateRoof   bool
	GameOverHeight float32
	GameOverScene  string
	PlatformID     string
	Seed           int64
}

// LevelServiceConfig wires a LevelService.
type LevelServiceConfig struct {
	Defaults    LevelDefaults
	Counter     game.Counter
	Runs        i.LevelRunRepo
	Leaderboard i.Leaderboard
	Logger      logger.Logger
	MaxSessions int
	MaxMazeSize int // largest size a request may ask for
}

// levelSession is one running level. The level and its loop are not safe
// for concurrent use, so every event goes through mu.
type levelSession struct {
	id       uuid.UUID
	playerID uuid.UUID
	level    *game.Level
	loop     *game.Loop
	world    *game.Recorder
	finished bool // outcome persisted
	mu       sync.Mutex
}

// LevelService runs headless level sessions: the level's collaborators are
// recorded and handed back to the client, which drives the session with
// ticks and collisions.
type LevelService struct {
	defaults    LevelDefaults
	counter     game.Counter
	runs        i.LevelRunRepo
	board       i.Leaderboard
	logger      logger.Logger
	maxSessions int
	maxMazeSize int
	sessions    map[uuid.UUID]*levelSession
	order       []uuid.UUID // creation order, oldest first
	sync.RWMutex
}

var _ i.LevelManager = &LevelService{}

// NewLevelService creates a LevelService from cfg.
func NewLevelService(cfg LevelServiceConfig) (*LevelService, error) {
	if cfg.Counter == nil || cfg.Runs == nil || cfg.Leaderboard == nil {
		return nil, errors.New("level service needs a counter, a run repo and a leaderboard")
	}
	defaults := maze.Config{Size: cfg.Defaults.MazeSize, TilesToRemove: cfg.Defaults.TilesToRemove}
	if err := defaults.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level defaults: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop{}
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}
	if cfg.MaxMazeSize <= 0 {
		cfg.MaxMazeSize = defaultMaxMazeSize
	}
	if cfg.Defaults.MazeSize > cfg.MaxMazeSize {
		return nil, fmt.Errorf("invalid level defaults: %w", i.ErrMazeTooLarge)
	}

	return &LevelService{
		defaults:    cfg.Defaults,
		counter:     cfg.Counter,
		runs:        cfg.Runs,
		board:       cfg.Leaderboard,
		logger:      cfg.Logger,
		maxSessions: cfg.MaxSessions,
		maxMazeSize: cfg.MaxMazeSize,
		sessions:    make(map[uuid.UUID]*levelSession),
	}, nil
}

// Create generates a new level for playerID.
func (s *LevelService) Create(ctx context.Context, playerID uuid.UUID, opts i.LevelOptions) (*i.LevelState, error) {
	cfg := s.levelConfig(opts)
	if cfg.Maze.Size > s.maxMazeSize {
		return nil, fmt.Errorf("%w: %d > %d", i.ErrMazeTooLarge, cfg.Maze.Size, s.maxMazeSize)
	}

	world := &game.Recorder{}
	loop := game.NewLoop()
	level, err := game.NewLevel(cfg, game.Collaborators{
		Spawner: world,
		Player:  world,
		Scenes:  world,
		Text:    world,
		Counter: s.counter,
		Loop:    loop,
		Logger:  s.logger,
	})
	if err != nil {
		return nil, err
	}

	if err := level.Start(ctx); err != nil {
		s.logger.Error(fmt.Sprintf("starting level for player %s: %s", playerID, err))
		return nil, err
	}

	session := &levelSession{
		id:       uuid.New(),
		playerID: playerID,
		level:    level,
		loop:     loop,
		world:    world,
	}

	run := &dmn.LevelRun{
		ID:            session.id,
		PlayerID:      playerID,
		MazeNumber:    level.Number(),
		Seed:          level.Seed(),
		Size:          cfg.Maze.Size,
		TilesToRemove: cfg.Maze.TilesToRemove,
		GenerateRoof:  cfg.GenerateRoof,
		Outcome:       dmn.OutcomeActive,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.runs.Save(run); err != nil {
		s.logger.Error(fmt.Sprintf("saving level run %s: %s", run.ID, err))
		s.logger.Warning(fmt.Sprintf("maze %d was counted but has no level run", run.MazeNumber))
		return nil, err
	}

	s.store(session)
	s.logger.Info(fmt.Sprintf("level %s created for player %s (maze %d)", session.id, playerID, level.Number()))

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state(true), nil
}

func (s *LevelService) levelConfig(opts i.LevelOptions) game.LevelConfig {
	cfg := game.LevelConfig{
		Maze: maze.Config{
			Size:          s.defaults.MazeSize,
			TilesToRemove: s.defaults.TilesToRemove,
		},
		GenerateRoof:   s.defaults.GenerateRoof,
		GameOverHeight: s.defaults.GameOverHeight,
		GameOverScene:  s.defaults.GameOverScene,
		PlatformID:     s.defaults.PlatformID,
		Seed:           s.defaults.Seed,
	}
	if opts.Size != nil {
		cfg.Maze.Size = *opts.Size
	}
	if opts.TilesToRemove != nil {
		cfg.Maze.TilesToRemove = *opts.TilesToRemove
	}
	if opts.GenerateRoof != nil {
		cfg.GenerateRoof = *opts.GenerateRoof
	}
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	}
	return cfg
}

// store keeps the session, dropping the oldest ones beyond maxSessions.
func (s *LevelService) store(session *levelSession) {
	s.Lock()
	defer s.Unlock()

	s.sessions[session.id] = session
	s.order = append(s.order, session.id)
	for len(s.order) > s.maxSessions {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, oldest)
		s.logger.Warning(fmt.Sprintf("evicted level session %s", oldest))
	}
}

func (s *LevelService) session(id uuid.UUID) (*levelSession, error) {
	s.RLock()
	defer s.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, i.ErrLevelNotFound
	}
	return session, nil
}

// Get returns the full state of a level, layout included.
func (s *LevelService) Get(_ context.Context, id uuid.UUID) (*i.LevelState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state(true), nil
}

// Tick advances the level one frame with the player at playerY.
func (s *LevelService) Tick(ctx context.Context, id uuid.UUID, playerY float32) (*i.LevelState, error) {
	return s.dispatch(ctx, id, func(loop *game.Loop) error {
		return loop.Step(playerY)
	})
}

// Contact reports that the player's collision volume touched other.
func (s *LevelService) Contact(ctx context.Context, id uuid.UUID, other game.Collider) (*i.LevelState, error) {
	return s.dispatch(ctx, id, func(loop *game.Loop) error {
		return loop.Trigger(game.VolumePlayer, other)
	})
}

// Trigger reports that other entered the level's game-over trigger volume.
func (s *LevelService) Trigger(ctx context.Context, id uuid.UUID, other game.Collider) (*i.LevelState, error) {
	return s.dispatch(ctx, id, func(loop *game.Loop) error {
		return loop.Trigger(game.VolumeGameOverTrigger, other)
	})
}

func (s *LevelService) dispatch(ctx context.Context, id uuid.UUID, event func(*game.Loop) error) (*i.LevelState, error) {
	session, err := s.session(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if err := event(session.loop); err != nil {
		s.logger.Error(fmt.Sprintf("level %s event: %s", id, err))
		return nil, err
	}

	if session.level.Ended() && !session.finished {
		s.finish(ctx, session)
	}
	return session.state(false), nil
}

// finish persists the outcome of an ended level. Failures are logged and
// retried on the next event.
func (s *LevelService) finish(ctx context.Context, session *levelSession) {
	outcome := outcomeOf(session.level.Reason())
	if err := s.runs.Finish(session.id, outcome, time.Now().UTC()); err != nil {
		s.logger.Error(fmt.Sprintf("finishing level run %s: %s", session.id, err))
		return
	}
	if err := s.board.Record(ctx, session.playerID, session.id); err != nil {
		s.logger.Error(fmt.Sprintf("recording score for player %s: %s", session.playerID, err))
		return
	}
	session.finished = true
	s.logger.Info(fmt.Sprintf("level %s ended: %s", session.id, outcome))
}

func outcomeOf(r game.Reason) dmn.Outcome {
	switch r {
	case game.ReasonFell:
		return dmn.OutcomeFell
	case game.ReasonPlatform:
		return dmn.OutcomePlatform
	case game.ReasonTrigger:
		return dmn.OutcomeTrigger
	default:
		return dmn.OutcomeActive
	}
}

// History lists a player's recent level runs.
func (s *LevelService) History(_ context.Context, playerID uuid.UUID, limit int64) ([]*dmn.LevelRun, error) {
	return s.runs.ByPlayer(playerID, limit)
}

// MazeCount returns how many mazes have been generated since the last reset.
func (s *LevelService) MazeCount(ctx context.Context) (int64, error) {
	return s.counter.Current(ctx)
}

// ResetMazeCount starts the maze count over, as on a full game restart.
func (s *LevelService) ResetMazeCount(ctx context.Context) error {
	if err := s.counter.Reset(ctx); err != nil {
		return err
	}
	s.logger.Info("maze count reset")
	return nil
}

// Leaderboard returns the top n players by number of levels ended.
func (s *LevelService) Leaderboard(ctx context.Context, n int64) ([]dmn.Score, error) {
	return s.board.Top(ctx, n)
}

// state snapshots the session. The caller holds session.mu.
func (ls *levelSession) state(withLayout bool) *i.LevelState {
	cfg := ls.level.Config()
	layout := ls.level.Layout()
	st := &i.LevelState{
		ID:            ls.id,
		PlayerID:      ls.playerID,
		MazeNumber:    ls.level.Number(),
		Seed:          ls.level.Seed(),
		Size:          cfg.Maze.Size,
		TilesToRemove: cfg.Maze.TilesToRemove,
		GenerateRoof:  cfg.GenerateRoof,
		PlayerSpawn:   layout.PlayerSpawn,
		Pickup:        layout.Pickup,
		Frame:         ls.loop.Frame(),
		Ended:         ls.level.Ended(),
		Reason:        ls.level.Reason(),
		Scenes:        append([]string(nil), ls.world.Scenes...),
		Text:          ls.world.Text,
	}
	if withLayout {
		st.Grid = ls.level.Maze().Lines()
		st.Placements = layout.Placements
	}
	return st
}

// Owns reports whether id belongs to playerID.
func (s *LevelService) Owns(id, playerID uuid.UUID) error {
	session, err := s.session(id)
	if err != nil {
		return err
	}
	if session.playerID != playerID {
		return i.ErrNotLevelOwner
	}
	return nil
}
