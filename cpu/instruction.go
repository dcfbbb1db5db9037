// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"strconv"
)

// Args are the format dependent operand fields of an instruction.
// The concrete type is one of RArgs, IArgs, BArgs or JArgs.
type Args interface {
	Format() Format
}

// RArgs are the register operands of an R format instruction.
type RArgs struct {
	Rd, Rs, Rt int
}

// IArgs are the operands of an I format instruction.
type IArgs struct {
	Rt, Rs int
	Imm    int // imm5
}

// BArgs are the operands of a B format instruction.
type BArgs struct {
	Rs     int
	Target Target // imm8
}

// JArgs are the operands of a J format instruction.
type JArgs struct {
	Target Target // imm11
}

func (RArgs) Format() Format { return FORMAT_R }
func (IArgs) Format() Format { return FORMAT_I }
func (BArgs) Format() Format { return FORMAT_B }
func (JArgs) Format() Format { return FORMAT_J }

// Target is a numeric immediate, or a label that has yet to be resolved
// into a step relative offset.
type Target struct {
	Imm   int
	Label string
}

// Resolved returns true if the target is a numeric immediate.
func (t Target) Resolved() bool {
	return len(t.Label) == 0
}

func (t Target) String() string {
	if !t.Resolved() {
		return t.Label
	}
	return strconv.Itoa(t.Imm)
}

// Instruction is one instruction record of a program.
type Instruction struct {
	Mnemonic Mnemonic
	LineNo   int // Source line number.
	Step     int // Address of the instruction within the program.
	Args     Args
}

// Decode splits an instruction word into an instruction record.
func Decode(word uint16, lineno, step int) (in Instruction, err error) {
	opcode := (word >> OPCODE_SHIFT) & OPCODE_MASK
	function := word & FUNC_MASK

	mnemonic, ok := LookupCode(opcode, function)
	if !ok {
		err = &ErrInstructionKind{Word: word, LineNo: lineno, Step: step}
		return
	}

	op := mnemonic.Op()
	rs := int((word >> RS_SHIFT) & REG_MASK)
	rt := int((word >> RT_SHIFT) & REG_MASK)
	rd := int((word >> RD_SHIFT) & REG_MASK)

	in = Instruction{Mnemonic: mnemonic, LineNo: lineno, Step: step}

	switch op.Format {
	case FORMAT_R:
		in.Args = RArgs{Rd: rd, Rs: rs, Rt: rt}
	case FORMAT_I:
		in.Args = IArgs{Rt: rt, Rs: rs, Imm: op.extend(word & IMM5_MASK)}
	case FORMAT_B:
		in.Args = BArgs{Rs: rs, Target: Target{Imm: op.extend(word & IMM8_MASK)}}
	case FORMAT_J:
		in.Args = JArgs{Target: Target{Imm: op.extend(word & IMM11_MASK)}}
	}

	return
}

// extend widens an immediate field to an int, by zero or sign extension.
func (op Op) extend(field uint16) int {
	width := op.Width()
	value := int(field)
	if !op.Unsigned && (field>>(width-1))&1 == 1 {
		value -= 1 << width
	}
	return value
}

// checkRange verifies that value fits in [min, max].
func (in Instruction) checkRange(field string, value, min, max int) error {
	if value < min || value > max {
		return &ErrRange{Field: field, Value: value, Min: min, Max: max, LineNo: in.LineNo}
	}
	return nil
}

// checkRegs verifies that every register index is valid.
func (in Instruction) checkRegs(regs ...int) (err error) {
	for _, reg := range regs {
		err = in.checkRange("register", reg, 0, REGISTER_COUNT-1)
		if err != nil {
			return
		}
	}
	return
}

// Encode packs a resolved instruction record into an instruction word.
func (in Instruction) Encode() (word uint16, err error) {
	op := in.Mnemonic.Op()

	if in.Args == nil || in.Args.Format() != op.Format {
		err = fmt.Errorf("%w: %v has %T operands", ErrInstructionInvalid, in.Mnemonic, in.Args)
		return
	}

	word = op.Opcode << OPCODE_SHIFT

	var imm Target
	switch args := in.Args.(type) {
	case RArgs:
		err = in.checkRegs(args.Rs, args.Rt, args.Rd)
		if err != nil {
			return
		}
		word |= uint16(args.Rs) << RS_SHIFT
		word |= uint16(args.Rt) << RT_SHIFT
		word |= uint16(args.Rd) << RD_SHIFT
		word |= op.Function
		return
	case IArgs:
		err = in.checkRegs(args.Rs, args.Rt)
		if err != nil {
			return
		}
		word |= uint16(args.Rs) << RS_SHIFT
		word |= uint16(args.Rt) << RT_SHIFT
		imm = Target{Imm: args.Imm}
	case BArgs:
		err = in.checkRegs(args.Rs)
		if err != nil {
			return
		}
		word |= uint16(args.Rs) << RS_SHIFT
		imm = args.Target
	case JArgs:
		imm = args.Target
	}

	if !imm.Resolved() {
		err = fmt.Errorf("%w: %v", ErrLabelUnresolved, imm.Label)
		return
	}

	err = in.checkRange("imm"+strconv.Itoa(int(op.Width())), imm.Imm, op.Min, op.Max)
	if err != nil {
		return
	}

	word |= uint16(imm.Imm) & ((1 << op.Width()) - 1)

	return
}

// Resolve replaces a label target with its step relative offset.
func (in Instruction) Resolve(labels map[string]int) (out Instruction, err error) {
	out = in

	var target *Target
	switch args := in.Args.(type) {
	case BArgs:
		target = &args.Target
		defer func() { out.Args = args }()
	case JArgs:
		target = &args.Target
		defer func() { out.Args = args }()
	default:
		return
	}

	if target.Resolved() {
		return
	}

	step, ok := labels[target.Label]
	if !ok {
		err = &ErrLabelMissing{Label: target.Label, LineNo: in.LineNo}
		return
	}

	op := in.Mnemonic.Op()
	offset := step - in.Step
	err = in.checkRange("imm"+strconv.Itoa(int(op.Width())), offset, op.Min, op.Max)
	if err != nil {
		return
	}

	*target = Target{Imm: offset}

	return
}

func reg(index int) string {
	return "$" + strconv.Itoa(index)
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() string {
	text := in.Mnemonic.String()

	switch args := in.Args.(type) {
	case RArgs:
		text += fmt.Sprintf(" %v, %v, %v", reg(args.Rd), reg(args.Rs), reg(args.Rt))
	case IArgs:
		if in.Mnemonic == LW || in.Mnemonic == SW {
			text += fmt.Sprintf(" %v, %d(%v)", reg(args.Rt), args.Imm, reg(args.Rs))
		} else {
			text += fmt.Sprintf(" %v, %v, %d", reg(args.Rt), reg(args.Rs), args.Imm)
		}
	case BArgs:
		text += fmt.Sprintf(" %v, %v", reg(args.Rs), args.Target)
	case JArgs:
		text += fmt.Sprintf(" %v", args.Target)
	}

	return text
}
