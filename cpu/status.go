package cpu

import (
	"strings"
)

// Flag is a single bit of the status register.
type Flag uint8

// Status register flags.
const (
	FLAG_CARRY     = Flag(1 << 0) // Unsigned carry/borrow, or comparison >=.
	FLAG_ZERO      = Flag(1 << 1) // Result was zero.
	FLAG_INTERRUPT = Flag(1 << 2) // Interrupt disable (inert).
	FLAG_DECIMAL   = Flag(1 << 3) // Decimal mode (inert).
	FLAG_BREAK     = Flag(1 << 4) // Software interrupt marker.
	FLAG_UNUSED    = Flag(1 << 5) // Unused, never altered by execution.
	FLAG_OVERFLOW  = Flag(1 << 6) // Signed overflow.
	FLAG_NEGATIVE  = Flag(1 << 7) // Result bit 7 set.
)

// Status is the processor status register.
type Status uint8

// Has returns true if the flag is set.
func (st Status) Has(flag Flag) bool {
	return (uint8(st) & uint8(flag)) != 0
}

// Set sets or clears a single flag.
func (st *Status) Set(flag Flag, value bool) {
	if value {
		*st |= Status(flag)
	} else {
		*st &^= Status(flag)
	}
}

// Load replaces all flags from a byte, except for the unused bit.
func (st *Status) Load(value uint8) {
	*st = (Status(value) &^ Status(FLAG_UNUSED)) | (*st & Status(FLAG_UNUSED))
}

// setNZ sets the zero and negative flags from a result.
func (st *Status) setNZ(value uint8) {
	st.Set(FLAG_ZERO, value == 0)
	st.Set(FLAG_NEGATIVE, (value&0x80) != 0)
}

// String renders the flags as NV-BDIZC, with set flags in upper case.
func (st Status) String() string {
	s := strings.Builder{}

	for n, ch := range "NV-BDIZC" {
		flag := Flag(0x80 >> n)
		switch {
		case ch == '-':
			s.WriteRune('-')
		case st.Has(flag):
			s.WriteRune(ch)
		default:
			s.WriteRune(ch + ('a' - 'A'))
		}
	}

	return s.String()
}
