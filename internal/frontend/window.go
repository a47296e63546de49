//go:build !headless

package frontend

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrochip8/internal/vm"
	"golang.org/x/image/font/basicfont"
)

const (
	statusBarHeight = 16
	windowFPS       = 60
)

// windowKeys maps the hex keypad to physical keys, matching keyLayout.
var windowKeys = [16]ebiten.Key{
	0x0: ebiten.KeyX,
	0x1: ebiten.KeyDigit1,
	0x2: ebiten.KeyDigit2,
	0x3: ebiten.KeyDigit3,
	0x4: ebiten.KeyQ,
	0x5: ebiten.KeyW,
	0x6: ebiten.KeyE,
	0x7: ebiten.KeyA,
	0x8: ebiten.KeyS,
	0x9: ebiten.KeyD,
	0xA: ebiten.KeyZ,
	0xB: ebiten.KeyC,
	0xC: ebiten.KeyDigit4,
	0xD: ebiten.KeyR,
	0xE: ebiten.KeyF,
	0xF: ebiten.KeyV,
}

var (
	pixelOn  = color.RGBA{0xE0, 0xE0, 0xE0, 0xFF}
	pixelOff = color.RGBA{0x10, 0x10, 0x18, 0xFF}
	statusFg = color.RGBA{0xA0, 0xA0, 0xA0, 0xFF}
	soundFg  = color.RGBA{0xFF, 0xC0, 0x40, 0xFF}
	pausedFg = color.RGBA{0x60, 0xC0, 0xFF, 0xFF}
)

// WindowFrontend shows the display in a desktop window. The emulation runs
// inside the game loop, so sink calls and drawing happen on one goroutine.
type WindowFrontend struct {
	framebuffer

	scale  int
	image  *ebiten.Image
	rgba   []byte
	ctx    context.Context
	frame  FrameFunc
	paused bool
	sound  bool
}

// NewWindow returns a window frontend that scales every pixel by scale.
func NewWindow(scale int) (Frontend, error) {
	w := &WindowFrontend{
		scale: max(scale, 1),
		rgba:  make([]byte, vm.Width*vm.Height*4),
	}
	w.Clear()
	return w, nil
}

// DrawPixel updates the pixel in the physical surface.
func (w *WindowFrontend) DrawPixel(x, y int, on bool) {
	w.framebuffer.DrawPixel(x, y, on)
	if x < 0 || x >= vm.Width || y < 0 || y >= vm.Height {
		return
	}
	w.setRGBA(x, y, on)
}

// Clear turns off all pixels of the physical surface.
func (w *WindowFrontend) Clear() {
	w.framebuffer.Clear()
	for y := range vm.Height {
		for x := range vm.Width {
			w.setRGBA(x, y, false)
		}
	}
}

func (w *WindowFrontend) setRGBA(x, y int, on bool) {
	c := pixelOff
	if on {
		c = pixelOn
	}
	offset := (y*vm.Width + x) * 4
	w.rgba[offset] = c.R
	w.rgba[offset+1] = c.G
	w.rgba[offset+2] = c.B
	w.rgba[offset+3] = c.A
}

// PollKeypad returns the state of the mapped keyboard keys.
func (w *WindowFrontend) PollKeypad() vm.Keypad {
	var keys vm.Keypad
	for key, physical := range windowKeys {
		keys[key] = ebiten.IsKeyPressed(physical)
	}
	return keys
}

// SetSound updates the sound indicator of the status bar.
func (w *WindowFrontend) SetSound(on bool) {
	w.sound = on
}

// Run opens the window and runs the game loop at 60 ticks per second until
// the window is closed, Escape is pressed or the context is canceled.
func (w *WindowFrontend) Run(ctx context.Context, frame FrameFunc) error {
	w.ctx = ctx
	w.frame = frame

	width, height := w.Layout(0, 0)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("retrochip8")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(windowFPS)

	if err := ebiten.RunGame(w); err != nil {
		return err
	}
	return ctx.Err()
}

// Close implements Frontend.
func (w *WindowFrontend) Close() error {
	return nil
}

// Update implements ebiten.Game.
func (w *WindowFrontend) Update() error {
	if w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.paused = !w.paused
	}
	if w.paused {
		return nil
	}
	return w.frame()
}

// Draw implements ebiten.Game.
func (w *WindowFrontend) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(vm.Width, vm.Height)
	}
	if w.dirty {
		w.image.WritePixels(w.rgba)
		w.dirty = false
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.image, op)

	w.drawStatusBar(screen)
}

func (w *WindowFrontend) drawStatusBar(screen *ebiten.Image) {
	face := basicfont.Face7x13
	baselineY := vm.Height*w.scale + statusBarHeight - 4

	text.Draw(screen, "ESC quit  P pause", face, 4, baselineY, statusFg)
	x := vm.Width*w.scale - 4
	if w.sound {
		x -= len("SOUND") * 7
		text.Draw(screen, "SOUND", face, x, baselineY, soundFg)
		x -= 8
	}
	if w.paused {
		x -= len("PAUSED") * 7
		text.Draw(screen, "PAUSED", face, x, baselineY, pausedFg)
	}
}

// Layout implements ebiten.Game.
func (w *WindowFrontend) Layout(_, _ int) (int, int) {
	return vm.Width * w.scale, vm.Height*w.scale + statusBarHeight
}
