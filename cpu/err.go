package cpu

import (
	"errors"

	"github.com/ezrec/sixtyfive/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax        = errors.New(f(".equ syntax"))
	ErrEquateDuplicate     = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate      = errors.New(f("label duplicated"))
	ErrLabelInvalid        = errors.New(f("label invalid"))
	ErrByteSyntax          = errors.New(f(".byte syntax"))
	ErrOpcodeExtraArgs     = errors.New(f("excessive arguments"))
	ErrOperandWidth        = errors.New(f("operand width mismatch"))
	ErrOperandUnsupported  = errors.New(f("operand format unsupported"))
	ErrInstructionInvalid  = errors.New(f("instruction invalid"))
	ErrMnemonicUnknown     = errors.New(f("mnemonic unknown"))
	ErrBranchRange         = errors.New(f("branch out of range"))
	ErrProgramAddressSpace = errors.New(f("program exceeds address space"))
)

// ErrInvalidOpcode is raised when the fetched opcode has no dispatch entry.
type ErrInvalidOpcode struct {
	Opcode uint8
	Pc     uint16
}

func (err ErrInvalidOpcode) Error() string {
	return f("invalid opcode 0x%02x at 0x%04x", err.Opcode, err.Pc)
}

func (err ErrInvalidOpcode) Is(target error) (ok bool) {
	_, ok = target.(ErrInvalidOpcode)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrAddressingMode indicates a mnemonic that has no encoding for a mode.
type ErrAddressingMode struct {
	Mnemonic Mnemonic
	Mode     Mode
}

func (err ErrAddressingMode) Error() string {
	return f("%v has no %v addressing mode", err.Mnemonic, err.Mode)
}

func (err ErrAddressingMode) Unwrap() error {
	return ErrInstructionInvalid
}
