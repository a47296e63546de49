package vm

// Quirks selects legacy or modern semantics for the instruction families
// that historical interpreters implement differently.
// The zero value selects the modern behavior for all of them.
type Quirks struct {
	// ShiftUsesVY makes 8XY6 and 8XYE shift VY and store the result in VX.
	// Otherwise VX is shifted in place.
	ShiftUsesVY bool

	// JumpUsesV0 makes BNNN jump to NNN+V0. Otherwise the jump goes to NNN+VX
	// with X taken from the second nibble of the opcode.
	JumpUsesV0 bool

	// LoadStoreIncrementsI makes FX55 and FX65 leave I pointing behind the last
	// transferred byte (I += X+1). Otherwise I is unchanged.
	LoadStoreIncrementsI bool
}

// ModernQuirks returns the behavior of most modern interpreters.
func ModernQuirks() Quirks {
	return Quirks{}
}

// LegacyQuirks returns the behavior of the original COSMAC VIP interpreter.
func LegacyQuirks() Quirks {
	return Quirks{
		ShiftUsesVY:          true,
		JumpUsesV0:           true,
		LoadStoreIncrementsI: true,
	}
}
