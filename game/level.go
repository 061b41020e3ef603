package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-labyrinth/logger"
	"github.com/beka-birhanu/vinom-labyrinth/maze"
)

var (
	ErrLevelStarted        = errors.New("level already started")
	ErrMissingCollaborator = errors.New("level collaborator is missing")
)

// LevelConfig holds everything a level needs before it is generated.
type LevelConfig struct {
	Maze           maze.Config
	GenerateRoof   bool
	GameOverHeight float32
	GameOverScene  string
	PlatformID     string    // collider ID of the game-over platform
	Seed           int64     // 0 picks a time based seed
	Rand           maze.Rand // overrides Seed when set
}

// Collaborators are the world services a level calls into.
type Collaborators struct {
	Spawner Spawner
	Player  Positioner
	Scenes  SceneLoader
	Text    TextDisplay
	Counter Counter
	Loop    *Loop
	Logger  logger.Logger
}

// Level is one maze instance: it is generated and laid out once on Start,
// then watches the loop for game-over conditions. A new level starts with
// fresh flags.
type Level struct {
	cfg      LevelConfig
	deps     Collaborators
	seed     int64
	number   int64
	maze     *maze.Maze
	layout   Layout
	gameOver *GameOver
	trigger  *TagTrigger
	started  bool
}

// NewLevel validates cfg and deps and returns an unstarted level.
func NewLevel(cfg LevelConfig, deps Collaborators) (*Level, error) {
	if err := cfg.Maze.Validate(); err != nil {
		return nil, err
	}
	if deps.Spawner == nil || deps.Player == nil || deps.Scenes == nil || deps.Text == nil || deps.Counter == nil || deps.Loop == nil {
		return nil, ErrMissingCollaborator
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop{}
	}

	l := &Level{cfg: cfg, deps: deps}
	l.gameOver = NewGameOver(GameOverConfig{
		FallHeight: cfg.GameOverHeight,
		Scene:      cfg.GameOverScene,
		IsPlatform: PlatformMatcher(cfg.PlatformID),
	}, deps.Scenes, deps.Logger)
	l.trigger = NewTagTrigger(cfg.GameOverScene, deps.Scenes, func(Collider) {
		l.gameOver.MarkEnded(ReasonTrigger)
	})
	return l, nil
}

// Start counts the level, generates and lays out its maze and hooks the
// game-over checks into the loop.
func (l *Level) Start(ctx context.Context) error {
	if l.started {
		return ErrLevelStarted
	}

	number, err := l.deps.Counter.Increment(ctx)
	if err != nil {
		return fmt.Errorf("counting maze: %w", err)
	}
	l.number = number
	l.deps.Text.SetText(fmt.Sprintf("Maze: %d", number))

	rng := l.cfg.Rand
	l.seed = l.cfg.Seed
	if rng == nil {
		rng, l.seed = maze.NewRand(l.cfg.Seed)
	}

	m, err := maze.Generate(l.cfg.Maze, rng)
	if err != nil {
		return fmt.Errorf("generating maze: %w", err)
	}
	l.maze = m
	l.layout = Materialize(m, MaterializeOptions{GenerateRoof: l.cfg.GenerateRoof})

	if err := l.layout.Apply(l.deps.Spawner, l.deps.Player); err != nil {
		return err
	}

	l.deps.Loop.OnTick(func(f Frame) error {
		_, err := l.gameOver.Tick(f.PlayerY)
		return err
	})
	l.deps.Loop.OnTrigger(VolumePlayer, func(other Collider) error {
		_, err := l.gameOver.OnTriggerEnter(other)
		return err
	})
	l.deps.Loop.OnTrigger(VolumeGameOverTrigger, func(other Collider) error {
		_, err := l.trigger.OnTriggerEnter(other)
		return err
	})

	l.started = true
	l.deps.Logger.Info(fmt.Sprintf("maze %d generated: size=%d removed=%d seed=%d", number, m.Size(), m.Removed(), l.seed))
	return nil
}

// Number is the maze count assigned on Start.
func (l *Level) Number() int64 {
	return l.number
}

// Seed is the seed the maze was generated from. It is meaningless when
// LevelConfig.Rand was supplied.
func (l *Level) Seed() int64 {
	return l.seed
}

// Maze returns the generated maze, nil before Start.
func (l *Level) Maze() *maze.Maze {
	return l.maze
}

// Layout returns the placements decided on Start.
func (l *Level) Layout() Layout {
	return l.layout
}

// Ended reports whether the level is over.
func (l *Level) Ended() bool {
	return l.gameOver.Ended()
}

// Reason returns what ended the level.
func (l *Level) Reason() Reason {
	return l.gameOver.Reason()
}

// Config returns the level's configuration.
func (l *Level) Config() LevelConfig {
	return l.cfg
}
