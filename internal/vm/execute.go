package vm

// handler executes one decoded instruction. The program counter already
// points to the following instruction.
type handler func(m *Machine, ins Instruction) error

var handlers = [opCount]handler{
	OpSys:      nil, // machine code routines are not supported
	OpCls:      (*Machine).cls,
	OpRet:      (*Machine).ret,
	OpJp:       (*Machine).jp,
	OpCall:     (*Machine).call,
	OpSeByte:   (*Machine).seByte,
	OpSneByte:  (*Machine).sneByte,
	OpSeReg:    (*Machine).seReg,
	OpLdByte:   (*Machine).ldByte,
	OpAddByte:  (*Machine).addByte,
	OpLdReg:    (*Machine).ldReg,
	OpOr:       (*Machine).or,
	OpAnd:      (*Machine).and,
	OpXor:      (*Machine).xor,
	OpAddReg:   (*Machine).addReg,
	OpSub:      (*Machine).sub,
	OpShr:      (*Machine).shr,
	OpSubn:     (*Machine).subn,
	OpShl:      (*Machine).shl,
	OpSneReg:   (*Machine).sneReg,
	OpLdI:      (*Machine).ldI,
	OpJpOffset: (*Machine).jpOffset,
	OpRnd:      (*Machine).rnd,
	OpDrw:      (*Machine).drw,
	OpSkp:      (*Machine).skp,
	OpSknp:     (*Machine).sknp,
	OpLdVxDT:   (*Machine).ldVxDT,
	OpLdKey:    (*Machine).ldKey,
	OpLdDTVx:   (*Machine).ldDTVx,
	OpLdSTVx:   (*Machine).ldSTVx,
	OpAddI:     (*Machine).addI,
	OpLdFont:   (*Machine).ldFont,
	OpBcd:      (*Machine).bcd,
	OpStore:    (*Machine).store,
	OpLoad:     (*Machine).load,
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += 2
	}
}

// 00E0: clear the display.
func (m *Machine) cls(Instruction) error {
	m.display.clear()
	return nil
}

// 00EE: return from a subroutine.
func (m *Machine) ret(Instruction) error {
	if m.sp == 0 {
		return ErrStackUnderflow
	}
	m.sp--
	m.pc = m.stack[m.sp]
	return nil
}

// 1NNN: jump to NNN.
func (m *Machine) jp(ins Instruction) error {
	m.pc = ins.NNN
	return nil
}

// 2NNN: call the subroutine at NNN.
func (m *Machine) call(ins Instruction) error {
	if int(m.sp)+1 >= StackSize {
		return ErrStackOverflow
	}
	m.stack[m.sp] = m.pc
	m.sp++
	m.pc = ins.NNN
	return nil
}

// 3XNN: skip if VX == NN.
func (m *Machine) seByte(ins Instruction) error {
	m.skipIf(m.v[ins.X] == ins.NN)
	return nil
}

// 4XNN: skip if VX != NN.
func (m *Machine) sneByte(ins Instruction) error {
	m.skipIf(m.v[ins.X] != ins.NN)
	return nil
}

// 5XY0: skip if VX == VY.
func (m *Machine) seReg(ins Instruction) error {
	m.skipIf(m.v[ins.X] == m.v[ins.Y])
	return nil
}

// 9XY0: skip if VX != VY.
func (m *Machine) sneReg(ins Instruction) error {
	m.skipIf(m.v[ins.X] != m.v[ins.Y])
	return nil
}

// 6XNN: VX = NN.
func (m *Machine) ldByte(ins Instruction) error {
	m.v[ins.X] = ins.NN
	return nil
}

// 7XNN: VX += NN, the carry is discarded.
func (m *Machine) addByte(ins Instruction) error {
	m.v[ins.X] += ins.NN
	return nil
}

func (m *Machine) ldReg(ins Instruction) error {
	m.v[ins.X] = m.v[ins.Y]
	return nil
}

func (m *Machine) or(ins Instruction) error {
	m.v[ins.X] |= m.v[ins.Y]
	return nil
}

func (m *Machine) and(ins Instruction) error {
	m.v[ins.X] &= m.v[ins.Y]
	return nil
}

func (m *Machine) xor(ins Instruction) error {
	m.v[ins.X] ^= m.v[ins.Y]
	return nil
}

// 8XY4: VX += VY, VF is set on carry.
func (m *Machine) addReg(ins Instruction) error {
	sum := uint16(m.v[ins.X]) + uint16(m.v[ins.Y])
	m.v[ins.X] = byte(sum)
	m.v[FlagRegister] = boolToByte(sum > 0xFF)
	return nil
}

// 8XY5: VX -= VY, VF is set if no borrow occurs.
func (m *Machine) sub(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = x - y
	m.v[FlagRegister] = boolToByte(x >= y)
	return nil
}

// 8XY7: VX = VY - VX, VF is set if no borrow occurs.
func (m *Machine) subn(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[ins.X] = y - x
	m.v[FlagRegister] = boolToByte(y >= x)
	return nil
}

// shiftSource returns the register value a shift instruction operates on.
func (m *Machine) shiftSource(ins Instruction) byte {
	if m.quirks.ShiftUsesVY {
		return m.v[ins.Y]
	}
	return m.v[ins.X]
}

// 8XY6: shift right by one, VF receives the shifted out bit.
func (m *Machine) shr(ins Instruction) error {
	src := m.shiftSource(ins)
	m.v[ins.X] = src >> 1
	m.v[FlagRegister] = src & 1
	return nil
}

// 8XYE: shift left by one, VF receives the shifted out bit.
func (m *Machine) shl(ins Instruction) error {
	src := m.shiftSource(ins)
	m.v[ins.X] = src << 1
	m.v[FlagRegister] = src >> 7
	return nil
}

// ANNN: I = NNN.
func (m *Machine) ldI(ins Instruction) error {
	m.i = ins.NNN
	return nil
}

// BNNN: jump to NNN plus V0 or VX, depending on the quirk.
func (m *Machine) jpOffset(ins Instruction) error {
	base := m.v[ins.X]
	if m.quirks.JumpUsesV0 {
		base = m.v[0]
	}
	m.pc = ins.NNN + uint16(base)
	return nil
}

// CXNN: VX = random byte AND NN. The random byte is taken from the low
// bits of the clock, so a fixed tick sequence reproduces the same values.
func (m *Machine) rnd(ins Instruction) error {
	m.v[ins.X] = byte(m.clock.Ticks()) & ins.NN
	return nil
}

// DXYN: draw N sprite rows from I at (VX, VY), VF reports a collision.
func (m *Machine) drw(ins Instruction) error {
	x, y := m.v[ins.X], m.v[ins.Y]
	m.v[FlagRegister] = 0

	var rows [15]byte
	for row := range ins.N {
		rows[row] = m.read(m.i + uint16(row))
	}

	if m.display.blit(x, y, rows[:ins.N]) {
		m.v[FlagRegister] = 1
	}
	return nil
}

// EX9E: skip if the key VX is pressed.
func (m *Machine) skp(ins Instruction) error {
	m.skipIf(m.keypad[m.v[ins.X]&0xF])
	return nil
}

// EXA1: skip if the key VX is not pressed.
func (m *Machine) sknp(ins Instruction) error {
	m.skipIf(!m.keypad[m.v[ins.X]&0xF])
	return nil
}

func (m *Machine) ldVxDT(ins Instruction) error {
	m.v[ins.X] = m.delay.value
	return nil
}

// FX0A: wait for a key press and store it in VX. The keypad is scanned once
// now and once per following Step until a key is found.
func (m *Machine) ldKey(ins Instruction) error {
	m.awaitingKey = true
	m.keyRegister = ins.X
	m.scanKeypad()
	return nil
}

func (m *Machine) ldDTVx(ins Instruction) error {
	m.delay.set(m.v[ins.X])
	return nil
}

func (m *Machine) ldSTVx(ins Instruction) error {
	m.sound.set(m.v[ins.X])
	return nil
}

// FX1E: I += VX, VF is set if the result leaves the address space.
func (m *Machine) addI(ins Instruction) error {
	sum := uint32(m.i) + uint32(m.v[ins.X])
	m.i = uint16(sum)
	m.v[FlagRegister] = boolToByte(sum > addressMask)
	return nil
}

// FX29: point I to the font glyph of VX.
func (m *Machine) ldFont(ins Instruction) error {
	m.i = GlyphAddress(m.v[ins.X])
	return nil
}

// FX33: store the decimal digits of VX at I, I+1 and I+2.
func (m *Machine) bcd(ins Instruction) error {
	value := m.v[ins.X]
	m.write(m.i, value/100)
	m.write(m.i+1, value/10%10)
	m.write(m.i+2, value%10)
	return nil
}

// FX55: store V0 to VX at I.
func (m *Machine) store(ins Instruction) error {
	for r := uint16(0); r <= uint16(ins.X); r++ {
		m.write(m.i+r, m.v[r])
	}
	if m.quirks.LoadStoreIncrementsI {
		m.i += uint16(ins.X) + 1
	}
	return nil
}

// FX65: load V0 to VX from I.
func (m *Machine) load(ins Instruction) error {
	for r := uint16(0); r <= uint16(ins.X); r++ {
		m.v[r] = m.read(m.i + r)
	}
	if m.quirks.LoadStoreIncrementsI {
		m.i += uint16(ins.X) + 1
	}
	return nil
}
