package cpu

import (
	"iter"
)

// DEFAULT_ORIGIN is the conventional load address of a program.
const DEFAULT_ORIGIN = uint16(0x0600)

// Line represents a line of assembled code with its source location and generated bytes.
type Line struct {
	LineNo    int
	Address   uint16
	Words     []string
	Bytes     []uint8
	LinkLabel string
}

// Program is an assembled listing, contiguous from its origin.
type Program struct {
	Origin uint16
	Lines  []Line
}

type Debug struct {
	*Line
	Index int
}

// Debug finds the listing line that generated the byte at addr.
func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if int(addr) >= int(line.Address) && int(addr) < int(line.Address)+len(line.Bytes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(addr - line.Address),
			}
			break
		}
	}

	return
}

// Binary returns the program as the raw byte stream loaded at Origin.
func (prog *Program) Binary() (bin []uint8) {
	for _, b := range prog.Bytes() {
		bin = append(bin, b)
	}

	return
}

// Bytes iterates over every generated byte and its address.
func (prog *Program) Bytes() iter.Seq2[uint16, uint8] {
	return func(yield func(addr uint16, b uint8) bool) {
		for _, line := range prog.Lines {
			for n, b := range line.Bytes {
				if !yield(line.Address+uint16(n), b) {
					return
				}
			}
		}
	}
}
