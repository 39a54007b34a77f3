package testutil

import (
	"fmt"
	"sync"
	"time"
)

// StepClock starts at a fixed time and moves forward by step on every Now call,
// so a run that reads the clock twice has a known duration.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

// NewStepClock creates a StepClock whose first reading is start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.step)
	return now
}

// RunIDs hands out "run-1", "run-2", and so on.
type RunIDs struct {
	mu sync.Mutex
	n  int
}

func (g *RunIDs) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("run-%d", g.n)
}
