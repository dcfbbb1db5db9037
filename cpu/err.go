// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/ics233/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrPcHalt          = errors.New(f("pc outside of program"))
	ErrRegisterIndex   = errors.New(f("register index invalid"))
	ErrLabelUnresolved = errors.New(f("label unresolved"))

	// Operand errors
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrImmediateRange  = errors.New(f("immediate out of range"))
	ErrMemorySyntax    = errors.New(f("expected imm($reg)"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrLabelForbidden  = errors.New(f("label not permitted"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroRecursion     = errors.New(f(".macro expansion too deep"))
)

// ErrSyntax is a malformed source line or hex token.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMacro is an error in the expansion of a macro body line.
type ErrMacro struct {
	Macro  string
	LineNo int // Line of the macro body.
	Err    error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %d %v", err.Macro, err.LineNo, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}

// ErrArity is a wrong number of operands for a mnemonic.
type ErrArity struct {
	Mnemonic Mnemonic
	LineNo   int
	Expected int
	Actual   int
}

func (err *ErrArity) Error() string {
	if err.Actual < err.Expected {
		return f("too few arguments to %v; %d expected, found %d", err.Mnemonic, err.Expected, err.Actual)
	}
	return f("too many arguments to %v; %d expected, found %d", err.Mnemonic, err.Expected, err.Actual)
}

// ErrOperand is an operand outside of its valid domain.
type ErrOperand struct {
	Token  string
	LineNo int
	Err    error
}

func (err *ErrOperand) Error() string {
	return f("invalid argument '%v': %v", err.Token, err.Err)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

// ErrParseNumber is an unparsable numeral.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression is a $(...) expression that does not evaluate to an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrInstructionKind is an opcode and function pair with no mnemonic.
type ErrInstructionKind struct {
	Word   uint16
	LineNo int
	Step   int
}

func (err *ErrInstructionKind) Error() string {
	return f("invalid instruction %04x on line %d", uint(err.Word), err.LineNo)
}

// ErrHexToken is a program word that is not exactly eight hex digits.
type ErrHexToken string

func (err ErrHexToken) Error() string {
	return f("'%v' is not an instruction word", string(err))
}

// ErrLabelMissing is a reference to an undefined label.
type ErrLabelMissing struct {
	Label  string
	LineNo int
}

func (err *ErrLabelMissing) Error() string {
	return f("label %v on line %d missing", err.Label, err.LineNo)
}

// ErrRange is a value that does not fit its instruction field.
type ErrRange struct {
	Field  string
	Value  int
	Min    int
	Max    int
	LineNo int
}

func (err *ErrRange) Error() string {
	return f("line %d: %v value %d outside of [%d, %d]", err.LineNo, err.Field, err.Value, err.Min, err.Max)
}

// ErrMemoryAddress is a memory access outside of the address space.
type ErrMemoryAddress int

func (err ErrMemoryAddress) Error() string {
	return f("memory address %d invalid", int(err))
}
