package emulator

import "time"

// WallClock is a monotonic microsecond tick source. Every read returns a
// value larger than the previous one, also when the host clock did not
// advance in between.
type WallClock struct {
	start time.Time
	last  uint64
}

// NewWallClock returns a clock counting from now.
func NewWallClock() *WallClock {
	return &WallClock{
		start: time.Now(),
	}
}

// Ticks returns the number of microseconds since the clock was created.
func (c *WallClock) Ticks() uint64 {
	now := uint64(time.Since(c.start).Microseconds())
	if now <= c.last {
		now = c.last + 1
	}
	c.last = now
	return now
}

// StepClock is a deterministic tick source that advances by a fixed step on
// every read.
type StepClock struct {
	now  uint64
	step uint64
}

// NewStepClock returns a clock advancing by step ticks per read.
// A step of 0 is treated as 1.
func NewStepClock(step uint64) *StepClock {
	return &StepClock{
		step: max(step, 1),
	}
}

// Ticks advances the clock and returns the new value.
func (c *StepClock) Ticks() uint64 {
	c.now += c.step
	return c.now
}
