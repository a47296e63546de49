package vm

import "testing"

// recordingSink remembers every pixel write and clear.
type recordingSink struct {
	pixels map[[2]int]bool
	writes int
	clears int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		pixels: make(map[[2]int]bool),
	}
}

func (s *recordingSink) DrawPixel(x, y int, on bool) {
	s.pixels[[2]int{x, y}] = on
	s.writes++
}

func (s *recordingSink) Clear() {
	s.pixels = make(map[[2]int]bool)
	s.clears++
}

// stepClock advances by a fixed step on every read.
type stepClock struct {
	now  uint64
	step uint64
}

func (c *stepClock) Ticks() uint64 {
	c.now += c.step
	return c.now
}

// sequenceClock returns the given ticks in order, repeating the last one
// increased by one when exhausted.
type sequenceClock struct {
	ticks []uint64
	pos   int
	last  uint64
}

func (c *sequenceClock) Ticks() uint64 {
	if c.pos < len(c.ticks) {
		c.last = c.ticks[c.pos]
		c.pos++
		return c.last
	}
	c.last++
	return c.last
}

func newTestMachine(t *testing.T, quirks Quirks, program ...byte) (*Machine, *recordingSink) {
	t.Helper()
	sink := newRecordingSink()
	m := New(Config{Quirks: quirks}, Dependencies{
		Sink:  sink,
		Clock: &stepClock{step: DefaultTimerPeriod},
	})
	if err := m.Load(program); err != nil {
		t.Fatal(err)
	}
	return m, sink
}

func runSteps(t *testing.T, m *Machine, steps int) {
	t.Helper()
	for range steps {
		if err := m.Step(); err != nil {
			t.Fatal(err)
		}
	}
}
