// Package frontend provides the display sinks and keypad sources the
// virtual machine is run against.
package frontend

import (
	"context"
	"errors"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Supported frontend names.
const (
	Headless = "headless"
	Terminal = "terminal"
	Window   = "window"
)

// Names lists all supported frontend names.
var Names = []string{Window, Terminal, Headless}

// ErrUnavailable is returned when a frontend is not compiled into the binary.
var ErrUnavailable = errors.New("frontend not available")

// FrameFunc runs the emulation for one 60 Hz frame.
type FrameFunc func() error

// Frontend combines the external collaborators of a machine with the loop
// that paces the emulation.
type Frontend interface {
	vm.Sink

	// PollKeypad returns the current keypad state without blocking.
	PollKeypad() vm.Keypad

	// Run calls frame at the frontend's frame rate until the context is
	// canceled, the user quits or frame returns an error.
	Run(ctx context.Context, frame FrameFunc) error

	// Close releases the resources of the frontend.
	Close() error
}

// Indicator is implemented by frontends that can show the sound state.
type Indicator interface {
	SetSound(on bool)
}

// framebuffer is the physical surface shared by the frontends.
type framebuffer struct {
	pixels vm.Bitmap
	dirty  bool
}

func (f *framebuffer) DrawPixel(x, y int, on bool) {
	if x < 0 || x >= vm.Width || y < 0 || y >= vm.Height {
		return
	}
	f.pixels[y][x] = on
	f.dirty = true
}

func (f *framebuffer) Clear() {
	f.pixels = vm.Bitmap{}
	f.dirty = true
}
