package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawFontGlyph(t *testing.T) {
	m, sink := newTestMachine(t, ModernQuirks())
	m.v[0] = 0
	m.v[1] = 10
	m.v[2] = 4

	execute(t, m, 0xF029) // I = glyph 0
	execute(t, m, 0xD125) // draw 5 rows at (10, 4)

	expected := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0}
	bitmap := m.Display()
	for row, bits := range expected {
		for col := range 8 {
			on := bits&(0x80>>col) != 0
			assert.Equal(t, on, bitmap.Pixel(10+col, 4+row))
			if on {
				assert.True(t, sink.pixels[[2]int{10 + col, 4 + row}])
			}
		}
	}
	assert.Equal(t, byte(0), m.v[FlagRegister])
	assert.Equal(t, 14, bitmap.Count())
	assert.Equal(t, 14, sink.writes)
}

func TestDrawCollisionAndIdempotence(t *testing.T) {
	m, sink := newTestMachine(t, ModernQuirks())
	m.memory[0x300] = 0xFF
	m.memory[0x301] = 0x81
	m.i = 0x300
	m.v[3] = 20
	m.v[4] = 8

	execute(t, m, 0xD342)
	assert.Equal(t, byte(0), m.v[FlagRegister])
	drawn := m.Display()
	assert.Equal(t, 10, drawn.Count())

	// the second sprite row overlaps the two outer pixels of the first row
	m.i = 0x301
	execute(t, m, 0xD341)
	assert.Equal(t, byte(1), m.v[FlagRegister])
	assert.False(t, m.display.bitmap.Pixel(20, 8))
	assert.False(t, m.display.bitmap.Pixel(27, 8))
	assert.False(t, sink.pixels[[2]int{20, 8}])

	// drawing the same sprite again restores the previous bitmap
	execute(t, m, 0xD341)
	assert.Equal(t, byte(0), m.v[FlagRegister])
	assert.Equal(t, drawn, m.Display())
}

func TestDrawFlagNotClearedMidInstruction(t *testing.T) {
	m, _ := newTestMachine(t, ModernQuirks())
	m.display.bitmap[0][0] = true
	m.memory[0x300] = 0x80
	m.memory[0x301] = 0x40
	m.i = 0x300

	execute(t, m, 0xD012)

	assert.Equal(t, byte(1), m.v[FlagRegister])
	assert.False(t, m.display.bitmap[0][0])
	assert.True(t, m.display.bitmap[1][1])
}

func TestDrawClipsAtEdges(t *testing.T) {
	m, sink := newTestMachine(t, ModernQuirks())
	m.memory[0x300] = 0xFF
	m.memory[0x301] = 0xFF
	m.memory[0x302] = 0xFF
	m.i = 0x300
	m.v[1] = 60
	m.v[2] = 30

	execute(t, m, 0xD123)

	bitmap := m.Display()
	assert.Equal(t, 8, bitmap.Count()) // 4 columns x 2 rows stay visible
	assert.True(t, bitmap.Pixel(63, 31))
	assert.False(t, bitmap[0][0])
	assert.False(t, bitmap[31][0])
	assert.Equal(t, 8, sink.writes)
}

func TestDrawOriginWraps(t *testing.T) {
	m, _ := newTestMachine(t, ModernQuirks())
	m.memory[0x300] = 0x80
	m.i = 0x300
	m.v[1] = 64 + 5
	m.v[2] = 32 + 3

	execute(t, m, 0xD121)

	bitmap := m.Display()
	assert.True(t, bitmap.Pixel(5, 3))
	assert.Equal(t, 1, bitmap.Count())
}

func TestDrawZeroRows(t *testing.T) {
	m, sink := newTestMachine(t, ModernQuirks())
	m.v[FlagRegister] = 1

	execute(t, m, 0xD120)

	assert.Equal(t, byte(0), m.v[FlagRegister])
	assert.Equal(t, 0, sink.writes)
}

func TestClearScreen(t *testing.T) {
	m, sink := newTestMachine(t, ModernQuirks())
	m.display.bitmap[5][5] = true

	execute(t, m, 0x00E0)

	assert.Equal(t, 0, m.display.bitmap.Count())
	assert.Equal(t, 1, sink.clears)
}

func TestBitmapPixelOutOfRange(t *testing.T) {
	var bitmap Bitmap
	bitmap[0][0] = true

	assert.True(t, bitmap.Pixel(0, 0))
	assert.False(t, bitmap.Pixel(-1, 0))
	assert.False(t, bitmap.Pixel(Width, 0))
	assert.False(t, bitmap.Pixel(0, Height))
}
