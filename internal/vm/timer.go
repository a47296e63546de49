package vm

// countdown is an 8-bit timer register decremented by the 60 Hz gate.
type countdown struct {
	value byte
	last  uint64 // tick of the last decrement
}

func (c *countdown) set(value byte) {
	c.value = value
}

// update decrements the value if it is nonzero and at least period ticks
// passed since the last decrement. While the value is zero the reference
// point follows the clock, so a freshly set timer runs a full period first.
func (c *countdown) update(now, period uint64) {
	if c.value == 0 {
		c.last = now
		return
	}
	if now-c.last < period {
		return
	}
	c.value--
	c.last = now
}

// UpdateTimers runs the timer gate. It reads the clock once and decrements
// each nonzero timer whose period elapsed, independent of how many
// instructions were executed in between.
func (m *Machine) UpdateTimers() {
	now := m.clock.Ticks()
	m.delay.update(now, m.timerPeriod)
	m.sound.update(now, m.timerPeriod)
}
