// Package runner wires the ROM loader, the virtual machine and a frontend
// into a running program.
package runner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screenshot"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// Run loads the ROM of the options and runs it in the selected frontend
// until the user quits, the context is canceled or the machine halts.
func Run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	rom, err := loader.Load(opts.Input, opts.Swap)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	fe, err := config.CreateFrontend(opts)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}
	defer func() { _ = fe.Close() }()

	_, err = Execute(ctx, logger, opts, rom, fe)
	return err
}

// Execute runs the ROM data in the given frontend and returns the machine
// in its final state.
func Execute(ctx context.Context, logger *log.Logger, opts options.Program,
	rom []byte, fe frontend.Frontend) (*vm.Machine, error) {

	quirks, err := config.CreateQuirks(opts.QuirkFlags)
	if err != nil {
		return nil, fmt.Errorf("creating quirks: %w", err)
	}

	machine := vm.New(vm.Config{Quirks: quirks}, vm.Dependencies{
		Sink:  fe,
		Clock: config.CreateClock(opts),
	})
	if err := machine.Load(rom); err != nil {
		return nil, fmt.Errorf("loading ROM into memory: %w", err)
	}

	logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.Int("size", len(rom)),
		log.String("frontend", opts.Frontend),
		log.String("quirks", opts.Preset))
	logger.Debug("Entry point", log.String("instruction", disasm.FormatQuirks(machine.Opcode(), quirks)))

	emu := emulator.New(logger, machine, fe, emulator.Options{
		CyclesPerFrame: opts.CyclesPerFrame,
		Trace:          opts.Trace,
	})
	indicator, hasIndicator := fe.(frontend.Indicator)

	frame := func() error {
		if err := emu.Frame(); err != nil {
			return err
		}
		if hasIndicator {
			indicator.SetSound(emu.SoundOn())
		}
		return nil
	}

	runErr := fe.Run(ctx, frame)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		state := machine.State()
		logger.Error("Machine halted",
			log.Hex("pc", state.PC),
			log.Hex("i", state.I),
			log.Int("sp", int(state.SP)),
			log.Err(runErr))
	}
	logger.Debug("Run finished", log.Int("cycles", int(emu.Cycles())))

	if opts.Screenshot != "" {
		if err := screenshot.Save(opts.Screenshot, machine.Display(), opts.Scale); err != nil {
			return machine, errors.Join(runErr, fmt.Errorf("saving screenshot: %w", err))
		}
		logger.Info("Screenshot saved", log.String("file", opts.Screenshot))
	}

	return machine, runErr
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := buildinfo.Version(version, commit, date)
	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Debug("Build", log.String("date", date))
	}
}
