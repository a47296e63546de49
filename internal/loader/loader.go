// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/vm"
)

var (
	// ErrEmptyROM is returned for ROM files without any content.
	ErrEmptyROM = errors.New("ROM file is empty")
	// ErrOddLength is returned when a ROM with an odd size is requested to be
	// byte swapped.
	ErrOddLength = errors.New("ROM size is not a multiple of 2")
)

// Load reads a ROM file and validates that it fits into the program area
// of the machine. If swap is set, the bytes of every 16 bit word are
// exchanged, which converts ROM dumps stored in little endian word order.
func Load(path string, swap bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Prepare(data, swap)
}

// Prepare validates ROM data and optionally byte swaps it.
func Prepare(data []byte, swap bool) ([]byte, error) {
	switch {
	case len(data) == 0:
		return nil, ErrEmptyROM
	case len(data) > vm.MaxROMSize:
		return nil, fmt.Errorf("%w: %d bytes, maximum is %d", vm.ErrROMTooLarge, len(data), vm.MaxROMSize)
	}

	if !swap {
		return data, nil
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrOddLength, len(data))
	}

	swapped := make([]byte, len(data))
	for i := 0; i < len(data); i += 2 {
		swapped[i], swapped[i+1] = data[i+1], data[i]
	}
	return swapped, nil
}
