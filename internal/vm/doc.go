// Package vm implements the CHIP-8 virtual machine.
//
// # Machine Model
//
// A Machine owns all mutable state of one CHIP-8 system:
//   - 4096 bytes of memory, the font table at FontBase and programs at ProgramStart
//   - 16 8-bit registers V0-VF, VF doubling as carry, borrow and collision flag
//   - the 16-bit index register I and program counter PC
//   - a call stack of StackSize return addresses
//   - a 64x32 monochrome shadow bitmap
//   - the state of the 16-key hex keypad
//   - the delay and sound countdown timers
//
// Multiple machines can exist side by side, nothing is shared between them.
//
// # External Collaborators
//
// The machine never touches a physical device directly. Pixel changes are
// written through to a Sink, the keypad state is handed in with SetKeypad and
// time is read from a Clock, which feeds both the random number instruction
// and the 60 Hz timer gate.
//
// # Quirks
//
// Historical interpreters disagree on three instruction families. Quirks
// selects the behavior at construction time:
//   - ShiftUsesVY: 8XY6 and 8XYE shift VY into VX instead of shifting VX
//   - JumpUsesV0: BNNN jumps to NNN+V0 instead of NNN+VX
//   - LoadStoreIncrementsI: FX55 and FX65 advance I by X+1
//
// # Usage Example
//
//	m := vm.New(vm.Config{Quirks: vm.ModernQuirks()}, vm.Dependencies{
//		Sink:  screen,
//		Clock: clock,
//	})
//	if err := m.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		if err := m.Step(); err != nil {
//			return err
//		}
//		m.SetKeypad(keypad.PollKeypad())
//		m.UpdateTimers()
//	}
package vm
