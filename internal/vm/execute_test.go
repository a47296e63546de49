package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// execute runs a single instruction word on the machine.
func execute(t *testing.T, m *Machine, word uint16) {
	t.Helper()
	m.write(m.pc, byte(word>>8))
	m.write(m.pc+1, byte(word))
	if err := m.Step(); err != nil {
		t.Fatal(err)
	}
}

func TestAddRegisterCarry(t *testing.T) {
	m, _ := newTestMachine(t, ModernQuirks())

	for x := range 256 {
		for y := range 256 {
			m.v[1] = byte(x)
			m.v[2] = byte(y)
			m.pc = ProgramStart
			execute(t, m, 0x8124)

			assert.Equal(t, byte(x+y), m.v[1])
			assert.Equal(t, boolToByte(x+y > 255), m.v[FlagRegister])
		}
	}
}

func TestSubtractBorrow(t *testing.T) {
	m, _ := newTestMachine(t, ModernQuirks())

	for x := range 256 {
		for y := range 256 {
			m.v[1] = byte(x)
			m.v[2] = byte(y)
			m.pc = ProgramStart
			execute(t, m, 0x8125)
			assert.Equal(t, byte(x-y), m.v[1])
			assert.Equal(t, boolToByte(x >= y), m.v[FlagRegister])

			m.v[1] = byte(x)
			m.v[2] = byte(y)
			m.pc = ProgramStart
			execute(t, m, 0x8127)
			assert.Equal(t, byte(y-x), m.v[1])
			assert.Equal(t, boolToByte(y >= x), m.v[FlagRegister])
		}
	}
}

func TestFlagWrittenLast(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		vf       byte
		vy       byte
		expected byte
	}{
		{"add with carry into VF", 0x8FE4, 0xFF, 0x01, 1},
		{"add without carry into VF", 0x8FE4, 0x01, 0x01, 0},
		{"sub without borrow into VF", 0x8FE5, 0x05, 0x01, 1},
		{"sub with borrow into VF", 0x8FE5, 0x01, 0x05, 0},
		{"shift right into VF", 0x8FE6, 0x02, 0x00, 0},
		{"shift left into VF", 0x8FEE, 0x80, 0x00, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, ModernQuirks())
			m.v[FlagRegister] = tt.vf
			m.v[0xE] = tt.vy

			execute(t, m, tt.word)
			assert.Equal(t, tt.expected, m.v[FlagRegister])
		})
	}
}

func TestLogicAndLoad(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected byte
	}{
		{"assign", 0x8120, 0x0F},
		{"or", 0x8121, 0x3F},
		{"and", 0x8122, 0x00},
		{"xor", 0x8123, 0x3F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, ModernQuirks())
			m.v[1] = 0x30
			m.v[2] = 0x0F
			m.v[FlagRegister] = 0x42

			execute(t, m, tt.word)
			assert.Equal(t, tt.expected, m.v[1])
			assert.Equal(t, byte(0x42), m.v[FlagRegister])
		})
	}
}

func TestAddByteNoFlag(t *testing.T) {
	m, _ := newTestMachine(t, ModernQuirks())
	m.v[3] = 0xF0

	execute(t, m, 0x7320)

	assert.Equal(t, byte(0x10), m.v[3])
	assert.Equal(t, byte(0), m.v[FlagRegister])
}

func TestShift(t *testing.T) {
	tests := []struct {
		name     string
		quirks   Quirks
		word     uint16
		vx, vy   byte
		expected byte
		flag     byte
	}{
		{"right modern", ModernQuirks(), 0x8126, 0x05, 0x80, 0x02, 1},
		{"right legacy", LegacyQuirks(), 0x8126, 0x05, 0x80, 0x40, 0},
		{"left modern", ModernQuirks(), 0x812E, 0x81, 0x01, 0x02, 1},
		{"left legacy", LegacyQuirks(), 0x812E, 0x81, 0x01, 0x02, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, tt.quirks)
			m.v[1] = tt.vx
			m.v[2] = tt.vy

			execute(t, m, tt.word)
			assert.Equal(t, tt.expected, m.v[1])
			assert.Equal(t, tt.flag, m.v[FlagRegister])
			assert.Equal(t, tt.vy, m.v[2])
		})
	}
}

func TestJumpWithOffset(t *testing.T) {
	tests := []struct {
		name     string
		quirks   Quirks
		expected uint16
	}{
		{"modern uses VX", ModernQuirks(), 0x320},
		{"legacy uses V0", LegacyQuirks(), 0x301},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, tt.quirks)
			m.v[0] = 0x01
			m.v[3] = 0x20

			execute(t, m, 0xB300)
			assert.Equal(t, tt.expected, m.PC())
		})
	}
}

func TestSkips(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		skip bool
	}{
		{"3XNN equal", 0x3142, true},
		{"3XNN not equal", 0x3143, false},
		{"4XNN not equal", 0x4143, true},
		{"4XNN equal", 0x4142, false},
		{"5XY0 equal", 0x5120, true},
		{"5XY0 not equal", 0x5130, false},
		{"9XY0 not equal", 0x9130, true},
		{"9XY0 equal", 0x9120, false},
		{"EX9E pressed", 0xE49E, true},
		{"EX9E not pressed", 0xE59E, false},
		{"EXA1 not pressed", 0xE5A1, true},
		{"EXA1 pressed", 0xE4A1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, ModernQuirks())
			m.v[1] = 0x42
			m.v[2] = 0x42
			m.v[3] = 0x07
			m.v[4] = 0x0C
			m.v[5] = 0x0D
			var keys Keypad
			keys[0xC] = true
			m.SetKeypad(keys)

			execute(t, m, tt.word)

			expected := uint16(ProgramStart + 2)
			if tt.skip {
				expected += 2
			}
			assert.Equal(t, expected, m.PC())
		})
	}
}

func TestIndexInstructions(t *testing.T) {
	t.Run("ANNN", func(t *testing.T) {
		m, _ := newTestMachine(t, ModernQuirks())
		execute(t, m, 0xA123)
		assert.Equal(t, uint16(0x123), m.i)
	})

	t.Run("FX1E without overflow", func(t *testing.T) {
		m, _ := newTestMachine(t, ModernQuirks())
		m.i = 0xFFE
		m.v[3] = 1
		execute(t, m, 0xF31E)
		assert.Equal(t, uint16(0xFFF), m.i)
		assert.Equal(t, byte(0), m.v[FlagRegister])
	})

	t.Run("FX1E with overflow", func(t *testing.T) {
		m, _ := newTestMachine(t, ModernQuirks())
		m.i = 0xFFF
		m.v[3] = 2
		execute(t, m, 0xF31E)
		assert.Equal(t, uint16(0x1001), m.i)
		assert.Equal(t, byte(1), m.v[FlagRegister])
	})

	t.Run("FX29", func(t *testing.T) {
		m, _ := newTestMachine(t, ModernQuirks())
		m.v[4] = 0xA
		execute(t, m, 0xF429)
		assert.Equal(t, uint16(FontBase+0xA*GlyphSize), m.i)
	})
}

func TestBinaryCodedDecimal(t *testing.T) {
	tests := []struct {
		value    byte
		expected []byte
	}{
		{0, []byte{0, 0, 0}},
		{34, []byte{0, 3, 4}},
		{128, []byte{1, 2, 8}},
		{255, []byte{2, 5, 5}},
	}

	for _, tt := range tests {
		m, _ := newTestMachine(t, ModernQuirks())
		m.v[3] = tt.value
		m.i = 0x400

		execute(t, m, 0xF333)
		assert.Equal(t, tt.expected, m.memory[0x400:0x403])
		assert.Equal(t, uint16(0x400), m.i)
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		quirks    Quirks
		expectedI uint16
	}{
		{"modern keeps I", ModernQuirks(), 0x500},
		{"legacy advances I", LegacyQuirks(), 0x500 + 5 + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMachine(t, tt.quirks)
			for r := range 6 {
				m.v[r] = byte(0x10 + r)
			}
			m.v[6] = 0x99
			m.i = 0x500

			execute(t, m, 0xF555)
			assert.Equal(t, tt.expectedI, m.i)
			assert.Equal(t, []byte{0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x00}, m.memory[0x500:0x507])

			saved := m.v
			m.v = [RegisterCount]byte{}
			m.i = 0x500
			execute(t, m, 0xF565)
			assert.Equal(t, tt.expectedI, m.i)
			assert.Equal(t, saved[:6], m.v[:6])
			assert.Equal(t, byte(0), m.v[6])
		})
	}
}

func TestTimerRegisters(t *testing.T) {
	m, _ := newTestMachine(t, ModernQuirks())
	m.v[1] = 30
	m.v[2] = 40

	execute(t, m, 0xF115)
	execute(t, m, 0xF218)
	execute(t, m, 0xF307)

	state := m.State()
	assert.Equal(t, byte(30), state.DelayTimer)
	assert.Equal(t, byte(40), state.SoundTimer)
	assert.Equal(t, byte(30), state.V[3])
}

func TestRandomUsesClock(t *testing.T) {
	newMachine := func() *Machine {
		return New(Config{}, Dependencies{
			Clock: &sequenceClock{ticks: []uint64{0x1234, 0xFFAB, 0x10F0}},
		})
	}

	first := newMachine()
	second := newMachine()
	for _, m := range []*Machine{first, second} {
		execute(t, m, 0xC1FF)
		execute(t, m, 0xC20F)
		execute(t, m, 0xC3F0)
	}

	assert.Equal(t, byte(0x34), first.v[1])
	assert.Equal(t, byte(0x0B), first.v[2])
	assert.Equal(t, byte(0xF0), first.v[3])
	assert.Equal(t, first.v, second.v)
}
