package frontend

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// HeadlessFrontend renders into memory and replays scripted key presses.
// It runs frames as fast as possible.
type HeadlessFrontend struct {
	framebuffer

	frames  int // number of frames to run, 0 runs until the context is canceled
	frame   int
	presses map[int]vm.Keypad
	sound   bool
}

// NewHeadless returns a headless frontend that runs the given number of frames.
func NewHeadless(frames int) *HeadlessFrontend {
	return &HeadlessFrontend{
		frames:  frames,
		presses: make(map[int]vm.Keypad),
	}
}

// Press holds the given keys during the frames from start to end inclusive.
func (h *HeadlessFrontend) Press(start, end int, keys ...byte) {
	for frame := start; frame <= end; frame++ {
		state := h.presses[frame]
		for _, key := range keys {
			state[key&0xF] = true
		}
		h.presses[frame] = state
	}
}

// ParseScript adds key presses from a script of comma separated entries in
// the format frame:key or start-end:key, keys given as hex digits.
func (h *HeadlessFrontend) ParseScript(script string) error {
	for _, entry := range strings.Split(script, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		frames, key, ok := strings.Cut(entry, ":")
		if !ok {
			return fmt.Errorf("invalid key script entry '%s': missing key", entry)
		}
		keyValue, err := strconv.ParseUint(key, 16, 4)
		if err != nil {
			return fmt.Errorf("invalid key '%s': %w", key, err)
		}

		startText, endText, isRange := strings.Cut(frames, "-")
		start, err := strconv.Atoi(startText)
		if err != nil {
			return fmt.Errorf("invalid frame '%s': %w", startText, err)
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(endText)
			if err != nil {
				return fmt.Errorf("invalid frame '%s': %w", endText, err)
			}
		}
		if start < 0 || end < start {
			return fmt.Errorf("invalid frame range '%s'", frames)
		}

		h.Press(start, end, byte(keyValue))
	}
	return nil
}

// PollKeypad returns the keys scripted for the current frame.
func (h *HeadlessFrontend) PollKeypad() vm.Keypad {
	return h.presses[h.frame]
}

// Run calls frame until the configured number of frames ran.
func (h *HeadlessFrontend) Run(ctx context.Context, frame FrameFunc) error {
	for h.frame = 0; h.frames == 0 || h.frame < h.frames; h.frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := frame(); err != nil {
			return err
		}
	}
	return nil
}

// Frames returns the number of frames that ran.
func (h *HeadlessFrontend) Frames() int {
	return h.frame
}

// Framebuffer returns the physical surface state built from the sink calls.
func (h *HeadlessFrontend) Framebuffer() vm.Bitmap {
	return h.pixels
}

// SetSound records the sound state.
func (h *HeadlessFrontend) SetSound(on bool) {
	h.sound = on
}

// Sound returns the last recorded sound state.
func (h *HeadlessFrontend) Sound() bool {
	return h.sound
}

// Close implements Frontend.
func (h *HeadlessFrontend) Close() error {
	return nil
}
