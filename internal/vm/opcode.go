package vm

// Op identifies one of the 35 CHIP-8 instructions.
type Op uint8

// Instruction identifiers, named after the opcode pattern they decode from.
const (
	OpUnknown   Op = iota
	OpSys          // 0NNN
	OpCls          // 00E0
	OpRet          // 00EE
	OpJp           // 1NNN
	OpCall         // 2NNN
	OpSeByte       // 3XNN
	OpSneByte      // 4XNN
	OpSeReg        // 5XY0
	OpLdByte       // 6XNN
	OpAddByte      // 7XNN
	OpLdReg        // 8XY0
	OpOr           // 8XY1
	OpAnd          // 8XY2
	OpXor          // 8XY3
	OpAddReg       // 8XY4
	OpSub          // 8XY5
	OpShr          // 8XY6
	OpSubn         // 8XY7
	OpShl          // 8XYE
	OpSneReg       // 9XY0
	OpLdI          // ANNN
	OpJpOffset     // BNNN
	OpRnd          // CXNN
	OpDrw          // DXYN
	OpSkp          // EX9E
	OpSknp         // EXA1
	OpLdVxDT       // FX07
	OpLdKey        // FX0A
	OpLdDTVx       // FX15
	OpLdSTVx       // FX18
	OpAddI         // FX1E
	OpLdFont       // FX29
	OpBcd          // FX33
	OpStore        // FX55
	OpLoad         // FX65

	opCount
)

var opNames = [opCount]string{
	OpUnknown:  "unknown",
	OpSys:      "0NNN",
	OpCls:      "00E0",
	OpRet:      "00EE",
	OpJp:       "1NNN",
	OpCall:     "2NNN",
	OpSeByte:   "3XNN",
	OpSneByte:  "4XNN",
	OpSeReg:    "5XY0",
	OpLdByte:   "6XNN",
	OpAddByte:  "7XNN",
	OpLdReg:    "8XY0",
	OpOr:       "8XY1",
	OpAnd:      "8XY2",
	OpXor:      "8XY3",
	OpAddReg:   "8XY4",
	OpSub:      "8XY5",
	OpShr:      "8XY6",
	OpSubn:     "8XY7",
	OpShl:      "8XYE",
	OpSneReg:   "9XY0",
	OpLdI:      "ANNN",
	OpJpOffset: "BNNN",
	OpRnd:      "CXNN",
	OpDrw:      "DXYN",
	OpSkp:      "EX9E",
	OpSknp:     "EXA1",
	OpLdVxDT:   "FX07",
	OpLdKey:    "FX0A",
	OpLdDTVx:   "FX15",
	OpLdSTVx:   "FX18",
	OpAddI:     "FX1E",
	OpLdFont:   "FX29",
	OpBcd:      "FX33",
	OpStore:    "FX55",
	OpLoad:     "FX65",
}

// String returns the opcode pattern of the instruction.
func (o Op) String() string {
	if o >= opCount {
		return opNames[OpUnknown]
	}
	return opNames[o]
}

// Instruction is a decoded instruction word with all operand fields extracted.
type Instruction struct {
	Op   Op
	Word uint16

	X   uint8  // bits 8-11
	Y   uint8  // bits 4-7
	N   uint8  // bits 0-3
	NN  uint8  // bits 0-7
	NNN uint16 // bits 0-11
}

// aluOps maps the low nibble of the 8XYN family.
var aluOps = [16]Op{
	0x0: OpLdReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpSubn,
	0xE: OpShl,
}

// miscOps maps the low byte of the FXNN family.
var miscOps = map[uint8]Op{
	0x07: OpLdVxDT,
	0x0A: OpLdKey,
	0x15: OpLdDTVx,
	0x18: OpLdSTVx,
	0x1E: OpAddI,
	0x29: OpLdFont,
	0x33: OpBcd,
	0x55: OpStore,
	0x65: OpLoad,
}

// Decode splits an instruction word into its operand fields and identifies
// the instruction. Words that do not match any instruction decode to OpUnknown.
func Decode(word uint16) Instruction {
	return Instruction{
		Op:   decodeOp(word),
		Word: word,
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}
}

func decodeOp(word uint16) Op {
	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRet
		}
		return OpSys
	case 0x1:
		return OpJp
	case 0x2:
		return OpCall
	case 0x3:
		return OpSeByte
	case 0x4:
		return OpSneByte
	case 0x5:
		if word&0xF == 0 {
			return OpSeReg
		}
	case 0x6:
		return OpLdByte
	case 0x7:
		return OpAddByte
	case 0x8:
		return aluOps[word&0xF]
	case 0x9:
		if word&0xF == 0 {
			return OpSneReg
		}
	case 0xA:
		return OpLdI
	case 0xB:
		return OpJpOffset
	case 0xC:
		return OpRnd
	case 0xD:
		return OpDrw
	case 0xE:
		switch word & 0xFF {
		case 0x9E:
			return OpSkp
		case 0xA1:
			return OpSknp
		}
	case 0xF:
		return miscOps[uint8(word)]
	}
	return OpUnknown
}
