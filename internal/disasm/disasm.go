// Package disasm formats CHIP-8 instruction words as assembly code.
// Mnemonics are taken from the retrogolib CHIP-8 opcode tables, operands are
// extracted by the virtual machine decoder.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the retrogolib opcode matching the instruction word.
func Lookup(word uint16) (chip8.Opcode, bool) {
	firstNibble := (word & 0xF000) >> 12
	opcodes := chip8.Opcodes[int(firstNibble)]
	for _, op := range opcodes {
		if op.Info.Mask&word == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}

// Format returns the assembly representation of an instruction word using
// the modern quirks. Words that are not a known instruction are formatted as
// data.
func Format(word uint16) string {
	return FormatQuirks(word, vm.ModernQuirks())
}

// FormatQuirks returns the assembly representation of an instruction word,
// naming the registers that the given quirks make the instruction use.
func FormatQuirks(word uint16, quirks vm.Quirks) string {
	op, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf(".word $%04X", word)
	}

	name := op.Instruction.Name
	if params := formatParams(vm.Decode(word), quirks); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// IsJump returns whether the instruction word is an unconditional jump to an
// absolute address.
func IsJump(word uint16) bool {
	op, ok := Lookup(word)
	return ok && op.Instruction == chip8.JpInst && word&0xF000 == 0x1000
}

// IsCall returns whether the instruction word is a subroutine call.
func IsCall(word uint16) bool {
	op, ok := Lookup(word)
	return ok && op.Instruction == chip8.CallInst
}

// IsSkip returns whether the instruction word conditionally skips the
// following instruction.
func IsSkip(word uint16) bool {
	op, ok := Lookup(word)
	return ok && chip8.SkipInstructions.Contains(op.Instruction.Name)
}

// formatParams formats the operands of a decoded instruction.
func formatParams(ins vm.Instruction, quirks vm.Quirks) string {
	switch ins.Op {
	case vm.OpCls, vm.OpRet:
		return "" // No parameters

	case vm.OpSys, vm.OpJp, vm.OpCall:
		return fmt.Sprintf("$%03X", ins.NNN)

	case vm.OpJpOffset:
		if quirks.JumpUsesV0 {
			return fmt.Sprintf("V0, $%03X", ins.NNN)
		}
		return fmt.Sprintf("V%X, $%03X", ins.X, ins.NNN)

	case vm.OpShr, vm.OpShl:
		if quirks.ShiftUsesVY {
			return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)
		}
		return fmt.Sprintf("V%X", ins.X)

	case vm.OpSeByte, vm.OpSneByte, vm.OpLdByte, vm.OpAddByte, vm.OpRnd:
		return fmt.Sprintf("V%X, $%02X", ins.X, ins.NN)

	case vm.OpSeReg, vm.OpSneReg, vm.OpLdReg, vm.OpOr, vm.OpAnd, vm.OpXor,
		vm.OpAddReg, vm.OpSub, vm.OpSubn:
		return fmt.Sprintf("V%X, V%X", ins.X, ins.Y)

	case vm.OpSkp, vm.OpSknp:
		return fmt.Sprintf("V%X", ins.X)

	case vm.OpLdI:
		return fmt.Sprintf("I, $%03X", ins.NNN)

	case vm.OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", ins.X, ins.Y, ins.N)
	}

	return formatMiscParams(ins)
}

// formatMiscParams formats the operands of the FXNN family.
func formatMiscParams(ins vm.Instruction) string {
	switch ins.Op {
	case vm.OpLdVxDT:
		return fmt.Sprintf("V%X, DT", ins.X)
	case vm.OpLdKey:
		return fmt.Sprintf("V%X, K", ins.X)
	case vm.OpLdDTVx:
		return fmt.Sprintf("DT, V%X", ins.X)
	case vm.OpLdSTVx:
		return fmt.Sprintf("ST, V%X", ins.X)
	case vm.OpAddI:
		return fmt.Sprintf("I, V%X", ins.X)
	case vm.OpLdFont:
		return fmt.Sprintf("F, V%X", ins.X)
	case vm.OpBcd:
		return fmt.Sprintf("B, V%X", ins.X)
	case vm.OpStore:
		return fmt.Sprintf("[I], V%X", ins.X)
	case vm.OpLoad:
		return fmt.Sprintf("V%X, [I]", ins.X)
	}
	return ""
}
