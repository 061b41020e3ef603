package game

import "errors"

// Volume names a trigger volume events are delivered for.
type Volume string

const (
	// VolumePlayer is the player's own collision volume.
	VolumePlayer Volume = "player"
	// VolumeGameOverTrigger is a standalone volume that ends the game for
	// any player entering it.
	VolumeGameOverTrigger Volume = "game-over-trigger"
)

// Frame is what a tick handler sees for one simulation step.
type Frame struct {
	Number  uint64
	PlayerY float32
}

// TickHandler runs once per frame.
type TickHandler func(Frame) error

// TriggerHandler runs when a collider enters the volume it was registered for.
type TriggerHandler func(Collider) error

// Loop dispatches frame and trigger events to registered handlers.
// Dispatch is synchronous, on the caller's goroutine, in registration order.
// Loop is not safe for concurrent use.
type Loop struct {
	frame    uint64
	ticks    []TickHandler
	triggers map[Volume][]TriggerHandler
}

// NewLoop creates a loop with no handlers.
func NewLoop() *Loop {
	return &Loop{triggers: make(map[Volume][]TriggerHandler)}
}

// OnTick registers h for every frame.
func (l *Loop) OnTick(h TickHandler) {
	l.ticks = append(l.ticks, h)
}

// OnTrigger registers h for colliders entering v.
func (l *Loop) OnTrigger(v Volume, h TriggerHandler) {
	l.triggers[v] = append(l.triggers[v], h)
}

// Step advances one frame with the player at height playerY. Every handler
// runs even if an earlier one fails; the errors are joined.
func (l *Loop) Step(playerY float32) error {
	l.frame++
	frame := Frame{Number: l.frame, PlayerY: playerY}

	var errs []error
	for _, h := range l.ticks {
		if err := h(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Trigger delivers other entering v.
func (l *Loop) Trigger(v Volume, other Collider) error {
	var errs []error
	for _, h := range l.triggers[v] {
		if err := h(other); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Frame returns the number of frames stepped so far.
func (l *Loop) Frame() uint64 {
	return l.frame
}
