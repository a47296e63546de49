package vm

import "errors"

var (
	// ErrStackOverflow is returned when a subroutine call exceeds the stack capacity.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a return is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrHalted is returned by Step after the machine stopped on a fatal error.
	ErrHalted = errors.New("machine halted")
	// ErrROMTooLarge is returned when a program does not fit into memory.
	ErrROMTooLarge = errors.New("rom too large")
)
