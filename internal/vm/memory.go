package vm

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: Interpreter area, font glyphs at FontBase
//	0x200-0xFFF: Program and RAM
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the address programs are loaded to and execution starts at.
	ProgramStart = 0x200

	// MaxROMSize is the largest program that fits into memory.
	MaxROMSize = MemorySize - ProgramStart

	// FontBase is the address of the first font glyph.
	FontBase = 0x50

	// GlyphSize is the number of bytes of one font glyph.
	GlyphSize = 5

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// StackSize is the capacity of the call stack.
	StackSize = 16

	// FlagRegister is the index of VF.
	FlagRegister = 0xF

	addressMask = MemorySize - 1
)

// font contains the glyphs for the hex digits 0-F, 4 pixels wide and 5 rows high.
var font = [16 * GlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// GlyphAddress returns the memory address of the font glyph for the given hex digit.
func GlyphAddress(digit byte) uint16 {
	return FontBase + uint16(digit)*GlyphSize
}

// read returns the byte at the given address, wrapping at the end of memory.
func (m *Machine) read(address uint16) byte {
	return m.memory[address&addressMask]
}

// write stores a byte at the given address, wrapping at the end of memory.
func (m *Machine) write(address uint16, value byte) {
	m.memory[address&addressMask] = value
}
