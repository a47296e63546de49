package vm

import (
	"fmt"
)

// DefaultTimerPeriod is the number of microsecond clock ticks between two
// timer decrements, resulting in a 60 Hz cadence.
const DefaultTimerPeriod = 16666

// Sink receives every pixel change of the display. It is invoked synchronously
// and never read back.
type Sink interface {
	DrawPixel(x, y int, on bool)
	Clear()
}

// Clock is a cheap, strictly monotonic tick source.
type Clock interface {
	Ticks() uint64
}

// Keypad contains the pressed state of the 16 hex keys.
type Keypad [16]bool

// Config contains the construction time settings of a machine.
type Config struct {
	Quirks Quirks

	// TimerPeriod is the number of clock ticks between timer decrements,
	// DefaultTimerPeriod is used if it is 0.
	TimerPeriod uint64
}

// Dependencies contains the external collaborators of a machine.
// A nil Sink discards pixel changes, a nil Clock is replaced by a counter
// that advances by one on every read.
type Dependencies struct {
	Sink  Sink
	Clock Clock
}

// State is a copy of the register state of a machine.
type State struct {
	V           [RegisterCount]byte
	I           uint16
	PC          uint16
	SP          uint8
	Stack       [StackSize]uint16
	DelayTimer  byte
	SoundTimer  byte
	AwaitingKey bool
}

// Machine is a CHIP-8 virtual machine.
type Machine struct {
	quirks      Quirks
	timerPeriod uint64
	clock       Clock

	memory [MemorySize]byte
	v      [RegisterCount]byte
	i      uint16
	pc     uint16
	sp     uint8
	stack  [StackSize]uint16
	keypad Keypad

	display display
	delay   countdown
	sound   countdown

	awaitingKey bool
	keyRegister uint8

	halted error // fatal error that stopped the machine
}

// New returns a new machine in reset state.
func New(cfg Config, deps Dependencies) *Machine {
	m := &Machine{
		quirks:      cfg.Quirks,
		timerPeriod: cfg.TimerPeriod,
		clock:       deps.Clock,
	}
	if m.timerPeriod == 0 {
		m.timerPeriod = DefaultTimerPeriod
	}
	if m.clock == nil {
		m.clock = &counterClock{}
	}

	m.display.sink = deps.Sink
	if m.display.sink == nil {
		m.display.sink = nopSink{}
	}

	m.Reset()
	return m
}

// Reset zeroes memory, registers, stack, display, keypad and timers,
// installs the font and points the program counter to the program start.
func (m *Machine) Reset() {
	m.memory = [MemorySize]byte{}
	m.v = [RegisterCount]byte{}
	m.stack = [StackSize]uint16{}
	m.keypad = Keypad{}
	m.display.bitmap = Bitmap{}
	m.delay = countdown{}
	m.sound = countdown{}

	m.pc = ProgramStart
	m.i = 0
	m.sp = 0
	m.awaitingKey = false
	m.keyRegister = 0
	m.halted = nil

	copy(m.memory[FontBase:], font[:])
}

// Load copies the program into memory starting at ProgramStart.
// Memory is left untouched if the program does not fit.
func (m *Machine) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes exceed the maximum of %d bytes", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(m.memory[ProgramStart:], rom)
	return nil
}

// Step executes one fetch-decode-execute cycle. While the machine waits for
// a key press, Step scans the keypad once instead of fetching.
// A returned error is fatal, the machine does not execute any further
// instructions until it is reset.
func (m *Machine) Step() error {
	if m.halted != nil {
		return fmt.Errorf("%w: %w", ErrHalted, m.halted)
	}
	if m.awaitingKey {
		m.scanKeypad()
		return nil
	}

	pc := m.pc
	ins := Decode(m.Opcode())
	m.pc += 2

	handler := handlers[ins.Op]
	if handler == nil {
		return nil // unknown opcodes are ignored
	}
	if err := handler(m, ins); err != nil {
		m.pc = pc
		m.halted = fmt.Errorf("executing %04X at %03X: %w", ins.Word, pc, err)
		return m.halted
	}
	return nil
}

// Opcode returns the instruction word at the program counter.
func (m *Machine) Opcode() uint16 {
	return uint16(m.read(m.pc))<<8 | uint16(m.read(m.pc+1))
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// SetKeypad replaces the keypad state.
func (m *Machine) SetKeypad(keys Keypad) {
	m.keypad = keys
}

// Display returns a copy of the shadow bitmap.
func (m *Machine) Display() Bitmap {
	return m.display.bitmap
}

// Quirks returns the quirks the machine was created with.
func (m *Machine) Quirks() Quirks {
	return m.quirks
}

// AwaitingKey returns whether the machine waits for a key press.
func (m *Machine) AwaitingKey() bool {
	return m.awaitingKey
}

// Halted returns whether the machine stopped on a fatal error.
func (m *Machine) Halted() bool {
	return m.halted != nil
}

// State returns a copy of the register state.
func (m *Machine) State() State {
	return State{
		V:           m.v,
		I:           m.i,
		PC:          m.pc,
		SP:          m.sp,
		Stack:       m.stack,
		DelayTimer:  m.delay.value,
		SoundTimer:  m.sound.value,
		AwaitingKey: m.awaitingKey,
	}
}

// scanKeypad completes a pending key wait if any key is pressed,
// the lowest pressed key wins.
func (m *Machine) scanKeypad() {
	for key, pressed := range m.keypad {
		if pressed {
			m.v[m.keyRegister] = byte(key)
			m.awaitingKey = false
			return
		}
	}
}

type counterClock struct {
	ticks uint64
}

func (c *counterClock) Ticks() uint64 {
	c.ticks++
	return c.ticks
}

type nopSink struct{}

func (nopSink) DrawPixel(int, int, bool) {}
func (nopSink) Clear()                   {}
