// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/options"
)

const defaultScale = 10

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(os.Stderr)
	flags.Usage = func() {}
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	if len(args) == 0 {
		return opts, &UsageError{flags: flags, msg: "no ROM file given"}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	opts.Input = args[0]
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("Only one ROM file can be run, found %d arguments", len(args)),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(frontend.Names, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontend.Names, ", "))
	}

	opts.Preset = strings.ToLower(opts.Preset)
	presets := []string{options.PresetModern, options.PresetLegacy}
	if !slices.Contains(presets, opts.Preset) {
		return fmt.Errorf("unsupported quirks preset: %s. Valid options: %s",
			opts.Preset, strings.Join(presets, ", "))
	}

	if opts.Trace {
		opts.Debug = true
	}

	switch {
	case opts.CyclesPerFrame <= 0:
		return fmt.Errorf("cycles per frame must be positive, got %d", opts.CyclesPerFrame)
	case opts.Frames < 0:
		return fmt.Errorf("frames can not be negative, got %d", opts.Frames)
	case opts.Scale <= 0:
		return fmt.Errorf("scale must be positive, got %d", opts.Scale)
	case opts.KeyScript != "" && opts.Frontend != frontend.Headless:
		return fmt.Errorf("key scripts are only supported by the %s frontend", frontend.Headless)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Frontend, "f", frontend.Window, "frontend to use ("+strings.Join(frontend.Names, "/")+")")
	flags.StringVar(&opts.Preset, "quirks", options.PresetModern, "quirks preset of the interpreter (modern/legacy)")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "name of a .png file to save the display to on exit")
	flags.StringVar(&opts.KeyScript, "keys", "", "scripted key presses for the headless frontend, for example 10-20:5,30:a")
	flags.IntVar(&opts.CyclesPerFrame, "cycles", emulator.DefaultCyclesPerFrame, "instructions to execute per 60 Hz frame")
	flags.IntVar(&opts.Frames, "frames", 0, "number of frames to run in headless mode, 0 runs until interrupted")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "pixel scale of the window and screenshot")
	flags.BoolVar(&opts.Swap, "swap", false, "swap the bytes of every instruction word of the ROM")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")

	flags.Var(&optionalBool{value: &opts.ShiftUsesVY}, "shift-vy", "8XY6/8XYE shift VY instead of VX (overrides preset)")
	flags.Var(&optionalBool{value: &opts.JumpUsesV0}, "jump-v0", "BNNN adds V0 instead of VX (overrides preset)")
	flags.Var(&optionalBool{value: &opts.LoadStoreIncrementsI}, "inc-i", "FX55/FX65 increment I (overrides preset)")
}

// optionalBool is a boolean flag that records whether it was set.
type optionalBool struct {
	value **bool
}

func (b *optionalBool) String() string {
	if b.value == nil || *b.value == nil {
		return ""
	}
	return strconv.FormatBool(**b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("parsing boolean: %w", err)
	}
	*b.value = &v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool {
	return true
}
