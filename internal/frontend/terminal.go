package frontend

import (
	"context"
	"fmt"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/vm"
)

// holdFrames is the number of frames a key counts as pressed after its last
// key event. Terminals report key presses only, never releases.
const holdFrames = 6

// TerminalFrontend renders the display into the terminal using half block
// characters, two pixel rows per text row.
type TerminalFrontend struct {
	framebuffer

	events chan termbox.Event
	done   chan struct{}
	held   [16]int
	sound  bool
	quit   bool
}

// NewTerminal initializes the terminal and starts reading its events.
func NewTerminal() (*TerminalFrontend, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	termbox.HideCursor()

	t := &TerminalFrontend{
		events: make(chan termbox.Event, 16),
		done:   make(chan struct{}),
	}
	t.dirty = true

	go func() {
		for {
			ev := termbox.PollEvent()
			if ev.Type == termbox.EventInterrupt {
				return
			}
			// events after Close are dropped, the loop ends on the interrupt
			select {
			case t.events <- ev:
			case <-t.done:
			}
		}
	}()
	return t, nil
}

// PollKeypad returns the keys that received a key event recently.
func (t *TerminalFrontend) PollKeypad() vm.Keypad {
	var keys vm.Keypad
	for key, frames := range t.held {
		keys[key] = frames > 0
	}
	return keys
}

// Run calls frame 60 times per second until the context is canceled or
// Escape is pressed.
func (t *TerminalFrontend) Run(ctx context.Context, frame FrameFunc) error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for !t.quit {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		t.handleEvents()
		t.releaseKeys()

		if err := frame(); err != nil {
			return err
		}
		if err := t.render(); err != nil {
			return err
		}
	}
	return nil
}

// SetSound updates the sound indicator in the status line.
func (t *TerminalFrontend) SetSound(on bool) {
	if t.sound != on {
		t.sound = on
		t.dirty = true
	}
}

// Close restores the terminal.
func (t *TerminalFrontend) Close() error {
	close(t.done)
	termbox.Interrupt()
	termbox.Close()
	return nil
}

func (t *TerminalFrontend) handleEvents() {
	for {
		select {
		case ev := <-t.events:
			t.handleEvent(ev)
		default:
			return
		}
	}
}

func (t *TerminalFrontend) handleEvent(ev termbox.Event) {
	switch ev.Type {
	case termbox.EventKey:
		if ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC {
			t.quit = true
			return
		}
		if key, ok := KeyForRune(ev.Ch); ok {
			t.held[key] = holdFrames
		}
	case termbox.EventResize:
		t.dirty = true
	}
}

// releaseKeys counts down the hold time of the pressed keys by one frame.
func (t *TerminalFrontend) releaseKeys() {
	for key := range t.held {
		if t.held[key] > 0 {
			t.held[key]--
		}
	}
}

// render draws the framebuffer if it changed since the last call.
func (t *TerminalFrontend) render() error {
	if !t.dirty {
		return nil
	}
	t.dirty = false

	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	for row := 0; row < vm.Height; row += 2 {
		for x := range vm.Width {
			fg := pixelColor(t.pixels[row][x])
			bg := pixelColor(t.pixels[row+1][x])
			termbox.SetCell(x, row/2, '▀', fg, bg)
		}
	}

	status := "ESC quit"
	if t.sound {
		status += "  SOUND"
	}
	for i, r := range status {
		termbox.SetCell(i, vm.Height/2, r, termbox.ColorDefault, termbox.ColorDefault)
	}

	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

func pixelColor(on bool) termbox.Attribute {
	if on {
		return termbox.ColorWhite
	}
	return termbox.ColorBlack
}
