package game

import (
	"context"
	"sync"
)

// Counter tracks how many mazes have been generated since the last reset.
type Counter interface {
	// Increment bumps the count and returns the new value.
	Increment(ctx context.Context) (int64, error)
	// Current returns the count without changing it.
	Current(ctx context.Context) (int64, error)
	// Reset sets the count back to zero, e.g. on a full game restart.
	Reset(ctx context.Context) error
}

// MemoryCounter is a process-local Counter.
type MemoryCounter struct {
	mu    sync.Mutex
	count int64
}

var _ Counter = &MemoryCounter{}

// NewMemoryCounter returns a counter starting at zero.
func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{}
}

// Increment implements Counter.
func (c *MemoryCounter) Increment(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return c.count, nil
}

// Current implements Counter.
func (c *MemoryCounter) Current(context.Context) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count, nil
}

// Reset implements Counter.
func (c *MemoryCounter) Reset(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count = 0
	return nil
}
