package game

import (
	"fmt"

	"github.com/beka-birhanu/vinom-labyrinth/logger"
)

// DefaultGameOverScene is the scene loaded when a level ends.
const DefaultGameOverScene = "GameOverScene"

// Reason records what ended a level.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonFell     Reason = "fell"
	ReasonPlatform Reason = "platform"
	ReasonTrigger  Reason = "trigger"
)

// GameOverConfig configures a GameOver watcher.
type GameOverConfig struct {
	FallHeight float32             // player Y below this ends the level
	Scene      string              // scene to load on game over
	IsPlatform func(Collider) bool // matches the game-over platform
}

// GameOver watches one level for the fall-through and platform-contact
// conditions. It moves from active to ended once and never back, so each
// level requests at most one transition through it.
type GameOver struct {
	cfg    GameOverConfig
	scenes SceneLoader
	logger logger.Logger
	ended  bool
	reason Reason
}

// NewGameOver creates an active watcher.
func NewGameOver(cfg GameOverConfig, scenes SceneLoader, l logger.Logger) *GameOver {
	if cfg.Scene == "" {
		cfg.Scene = DefaultGameOverScene
	}
	if cfg.IsPlatform == nil {
		cfg.IsPlatform = func(Collider) bool { return false }
	}
	if l == nil {
		l = logger.Nop{}
	}
	return &GameOver{cfg: cfg, scenes: scenes, logger: l}
}

// Tick checks the fall-through condition for one frame. It reports whether
// this call ended the level.
func (g *GameOver) Tick(playerY float32) (bool, error) {
	if g.ended || playerY >= g.cfg.FallHeight {
		return false, nil
	}
	return true, g.end(ReasonFell)
}

// OnTriggerEnter checks whether the player touched the game-over platform.
// It reports whether this call ended the level.
func (g *GameOver) OnTriggerEnter(other Collider) (bool, error) {
	if g.ended || !g.cfg.IsPlatform(other) {
		return false, nil
	}
	return true, g.end(ReasonPlatform)
}

// MarkEnded records an ending decided elsewhere without requesting a scene.
// It is a no-op once the level has ended.
func (g *GameOver) MarkEnded(reason Reason) {
	if g.ended {
		return
	}
	g.ended = true
	g.reason = reason
	g.logger.Info(fmt.Sprintf("level ended: %s", reason))
}

func (g *GameOver) end(reason Reason) error {
	g.MarkEnded(reason)
	if err := g.scenes.LoadScene(g.cfg.Scene); err != nil {
		g.logger.Error(fmt.Sprintf("loading scene %q: %s", g.cfg.Scene, err))
		return fmt.Errorf("loading scene %q: %w", g.cfg.Scene, err)
	}
	return nil
}

// Ended reports whether the level is over.
func (g *GameOver) Ended() bool {
	return g.ended
}

// Reason returns what ended the level, or ReasonNone while it is active.
func (g *GameOver) Reason() Reason {
	return g.reason
}

// TagTrigger is a volume that sends any player entering it to the
// game-over scene. Unlike GameOver it keeps no ended state and fires on
// every entry.
type TagTrigger struct {
	scene  string
	scenes SceneLoader
	fired  func(Collider)
}

// NewTagTrigger creates a trigger loading scene. fired, when set, is called
// after each transition request.
func NewTagTrigger(scene string, scenes SceneLoader, fired func(Collider)) *TagTrigger {
	if scene == "" {
		scene = DefaultGameOverScene
	}
	return &TagTrigger{scene: scene, scenes: scenes, fired: fired}
}

// OnTriggerEnter requests the transition when other is the player.
// It reports whether a transition was requested.
func (t *TagTrigger) OnTriggerEnter(other Collider) (bool, error) {
	if !IsPlayer(other) {
		return false, nil
	}
	if err := t.scenes.LoadScene(t.scene); err != nil {
		return false, fmt.Errorf("loading scene %q: %w", t.scene, err)
	}
	if t.fired != nil {
		t.fired(other)
	}
	return true, nil
}
