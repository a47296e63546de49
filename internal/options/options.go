// Package options contains the program options.
package options

// Quirk preset names.
const (
	PresetModern = "modern"
	PresetLegacy = "legacy"
)

// Parameters contains file path options.
type Parameters struct {
	Input      string // ROM file to run
	Screenshot string // PNG file to write the display to on exit
	KeyScript  string // scripted key presses for the headless frontend
}

// Flags contains behavior options.
type Flags struct {
	Frontend       string
	CyclesPerFrame int
	Frames         int // frames to run in headless mode, 0 runs until interrupted
	Scale          int
	Swap           bool
	Debug          bool
	Quiet          bool
	Trace          bool
}

// QuirkFlags contains the quirk preset and the per quirk overrides.
// The overrides are pointers to distinguish unset flags from disabled ones.
type QuirkFlags struct {
	Preset               string
	ShiftUsesVY          *bool
	JumpUsesV0           *bool
	LoadStoreIncrementsI *bool
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	QuirkFlags
}
