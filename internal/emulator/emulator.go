// Package emulator implements the run loop that drives a virtual machine
// against its keypad source and tick source.
package emulator

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// DefaultCyclesPerFrame is the number of instructions executed per 60 Hz
// frame when no other value is configured.
const DefaultCyclesPerFrame = 11

// KeypadSource returns the current keypad state, it must not block.
type KeypadSource interface {
	PollKeypad() vm.Keypad
}

// Options controls the run loop.
type Options struct {
	CyclesPerFrame int  // instructions per frame, DefaultCyclesPerFrame if 0
	Trace          bool // log every executed instruction at debug level
}

// Emulator runs a machine cycle by cycle.
type Emulator struct {
	logger  *log.Logger
	machine *vm.Machine
	keypad  KeypadSource
	opts    Options

	cycles  uint64
	soundOn bool
}

// New returns a new emulator for the given machine.
func New(logger *log.Logger, machine *vm.Machine, keypad KeypadSource, opts Options) *Emulator {
	if opts.CyclesPerFrame <= 0 {
		opts.CyclesPerFrame = DefaultCyclesPerFrame
	}
	return &Emulator{
		logger:  logger,
		machine: machine,
		keypad:  keypad,
		opts:    opts,
	}
}

// Machine returns the emulated machine.
func (e *Emulator) Machine() *vm.Machine {
	return e.machine
}

// Cycles returns the number of executed cycles.
func (e *Emulator) Cycles() uint64 {
	return e.cycles
}

// SoundOn returns whether the sound timer was active at the end of the
// last cycle.
func (e *Emulator) SoundOn() bool {
	return e.soundOn
}

// Cycle runs one iteration of the run loop: one instruction, a keypad
// refresh and the timer gate.
func (e *Emulator) Cycle() error {
	if e.opts.Trace && !e.machine.AwaitingKey() {
		e.logger.Debug("Executing instruction",
			log.Hex("pc", e.machine.PC()),
			log.String("instruction", disasm.FormatQuirks(e.machine.Opcode(), e.machine.Quirks())))
	}

	if err := e.machine.Step(); err != nil {
		return fmt.Errorf("cycle %d: %w", e.cycles, err)
	}
	e.cycles++

	e.machine.SetKeypad(e.keypad.PollKeypad())
	e.machine.UpdateTimers()
	e.updateSound()
	return nil
}

// Frame runs the configured number of cycles for one 60 Hz frame.
func (e *Emulator) Frame() error {
	for range e.opts.CyclesPerFrame {
		if err := e.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// updateSound tracks the transitions of the sound timer between zero and
// nonzero. There is no audio output, the state is logged and exposed for
// frontends to indicate.
func (e *Emulator) updateSound() {
	on := e.machine.State().SoundTimer > 0
	if on == e.soundOn {
		return
	}
	e.soundOn = on
	if on {
		e.logger.Debug("Sound on", log.Int("cycle", int(e.cycles)))
	} else {
		e.logger.Debug("Sound off", log.Int("cycle", int(e.cycles)))
	}
}
