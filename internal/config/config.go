// Package config handles application configuration and setup
package config

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateQuirks returns the quirks of the selected preset with the
// explicitly set overrides applied.
func CreateQuirks(opts options.QuirkFlags) (vm.Quirks, error) {
	var quirks vm.Quirks
	switch opts.Preset {
	case "", options.PresetModern:
		quirks = vm.ModernQuirks()
	case options.PresetLegacy:
		quirks = vm.LegacyQuirks()
	default:
		return vm.Quirks{}, fmt.Errorf("unsupported quirks preset '%s'", opts.Preset)
	}

	if opts.ShiftUsesVY != nil {
		quirks.ShiftUsesVY = *opts.ShiftUsesVY
	}
	if opts.JumpUsesV0 != nil {
		quirks.JumpUsesV0 = *opts.JumpUsesV0
	}
	if opts.LoadStoreIncrementsI != nil {
		quirks.LoadStoreIncrementsI = *opts.LoadStoreIncrementsI
	}
	return quirks, nil
}

// CreateFrontend creates the frontend selected by name.
func CreateFrontend(opts options.Program) (frontend.Frontend, error) {
	switch opts.Frontend {
	case frontend.Headless:
		h := frontend.NewHeadless(opts.Frames)
		if err := h.ParseScript(opts.KeyScript); err != nil {
			return nil, fmt.Errorf("parsing key script: %w", err)
		}
		return h, nil

	case frontend.Terminal:
		t, err := frontend.NewTerminal()
		if err != nil {
			return nil, fmt.Errorf("initializing terminal: %w", err)
		}
		return t, nil

	case "", frontend.Window:
		w, err := frontend.NewWindow(opts.Scale)
		if err != nil {
			return nil, fmt.Errorf("initializing window: %w", err)
		}
		return w, nil

	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", opts.Frontend)
	}
}

// CreateClock returns the tick source for the selected frontend. Headless
// runs are not paced, they use a deterministic clock that advances about
// one timer period per frame. The step is odd so that the low byte of the
// ticks, which CXNN uses as random value, runs through all 256 values.
// CXNN reads advance the same clock, frames executing random instructions
// therefore move the timer phase slightly ahead.
func CreateClock(opts options.Program) vm.Clock {
	if opts.Frontend != frontend.Headless {
		return emulator.NewWallClock()
	}
	cycles := max(opts.CyclesPerFrame, 1)
	step := (vm.DefaultTimerPeriod/uint64(cycles) + 1) | 1
	return emulator.NewStepClock(step)
}
