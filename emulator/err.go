package emulator

import (
	"errors"

	"github.com/ezrec/sixtyfive/translate"
)

var f = translate.From

var (
	ErrStepLimit = errors.New(f("step limit reached before BRK"))
)

// ErrProgramTooLarge indicates a load that would extend past the address space.
type ErrProgramTooLarge struct {
	Base   uint16
	Length int
}

func (err ErrProgramTooLarge) Error() string {
	return f("program of %d bytes at 0x%04x exceeds the address space", err.Length, err.Base)
}

func (err ErrProgramTooLarge) Is(target error) (ok bool) {
	_, ok = target.(ErrProgramTooLarge)
	return
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Pc     uint16
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo == 0 {
		return f("pc 0x%04x %v", err.Pc, err.Err)
	}
	return f("line %d (pc 0x%04x) %v", err.LineNo, err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
