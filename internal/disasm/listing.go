package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/retrochip8/internal/vm"
)

// Options controls the listing output.
type Options struct {
	HexComments    bool // output opcode bytes as hex values in comments
	OffsetComments bool // output addresses in comments
}

// DefaultOptions returns the default listing options.
func DefaultOptions() Options {
	return Options{
		HexComments:    true,
		OffsetComments: true,
	}
}

// Listing writes a linear disassembly of the program as it is placed in
// memory starting at vm.ProgramStart. Targets of jumps and calls inside the
// program get labels, the entry point is labeled Start.
func Listing(w io.Writer, rom []byte, opts Options) error {
	labels := collectLabels(rom)

	for offset := 0; offset < len(rom); offset += 2 {
		address := uint16(vm.ProgramStart + offset)
		if label, ok := labels[address]; ok {
			if _, err := fmt.Fprintf(w, "\n%s:\n", label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		var code string
		data := rom[offset:min(offset+2, len(rom))]
		if len(data) == 2 {
			word := uint16(data[0])<<8 | uint16(data[1])
			code = formatWithLabel(word, labels)
		} else {
			code = fmt.Sprintf(".byte $%02X", data[0])
		}

		if _, err := fmt.Fprintln(w, formatLine(code, address, data, opts)); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// collectLabels returns the label names of all jump and call targets that
// are inside the program.
func collectLabels(rom []byte) map[uint16]string {
	labels := map[uint16]string{
		vm.ProgramStart: "Start",
	}
	end := uint16(vm.ProgramStart + len(rom))

	for offset := 0; offset+1 < len(rom); offset += 2 {
		word := uint16(rom[offset])<<8 | uint16(rom[offset+1])
		if !IsJump(word) && !IsCall(word) {
			continue
		}

		target := word & 0x0FFF
		if target < vm.ProgramStart || target >= end {
			continue
		}
		if _, ok := labels[target]; ok {
			continue
		}
		if IsCall(word) {
			labels[target] = fmt.Sprintf("_sub_%04x", target)
		} else {
			labels[target] = fmt.Sprintf("_label_%04x", target)
		}
	}
	return labels
}

// formatWithLabel formats the instruction and replaces an absolute target
// address by its label.
func formatWithLabel(word uint16, labels map[uint16]string) string {
	code := Format(word)
	if !IsJump(word) && !IsCall(word) {
		return code
	}
	label, ok := labels[word&0x0FFF]
	if !ok {
		return code
	}
	return strings.Replace(code, fmt.Sprintf("$%03X", word&0x0FFF), label, 1)
}

func formatLine(code string, address uint16, data []byte, opts Options) string {
	if !opts.HexComments && !opts.OffsetComments {
		return "  " + code
	}

	var comment strings.Builder
	if opts.OffsetComments {
		fmt.Fprintf(&comment, " $%04X", address)
	}
	if opts.HexComments {
		for _, b := range data {
			fmt.Fprintf(&comment, " %02X", b)
		}
	}
	return fmt.Sprintf("  %-24s ;%s", code, comment.String())
}
