// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reRegister = regexp.MustCompile(`^\$([0-9]+)$`)
	reMemory   = regexp.MustCompile(`^(.+)\((.+)\)$`)
	reLabel    = regexp.MustCompile(`^[A-Za-z_.][A-Za-z0-9_.]*$`)
	reNumber   = regexp.MustCompile(`^[-+]?[0-9]`)
)

// IsNumber returns true if the word is written as a numeral, rather
// than as a label.
func IsNumber(word string) bool {
	return reNumber.MatchString(word)
}

// ParseNumber parses a signed decimal numeral, or a numeral with a
// 0x, 0o or 0b base prefix.
func ParseNumber(word string) (value int64, err error) {
	digits := strings.TrimLeft(word, "+-")
	base := 10
	if len(digits) > 1 && digits[0] == '0' && strings.ContainsRune("xXoObB", rune(digits[1])) {
		base = 0
	}
	value, err = strconv.ParseInt(word, base, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// operand parses the fields of a single instruction.
type operand struct {
	lineno int
	err    error
}

func (p *operand) fail(token string, err error) {
	if p.err == nil {
		p.err = &ErrOperand{Token: token, LineNo: p.lineno, Err: err}
	}
}

// register parses a $n register token.
func (p *operand) register(word string) (index int) {
	match := reRegister.FindStringSubmatch(word)
	if match == nil {
		p.fail(word, ErrRegisterInvalid)
		return
	}
	index, err := strconv.Atoi(match[1])
	if err != nil || index >= REGISTER_COUNT {
		p.fail(word, ErrRegisterInvalid)
		return
	}
	return
}

// number parses a numeral in [min, max].
func (p *operand) number(word string, min, max int) (value int) {
	v64, err := ParseNumber(word)
	if err != nil {
		p.fail(word, err)
		return
	}
	if v64 < int64(min) || v64 > int64(max) {
		p.fail(word, ErrImmediateRange)
		return
	}
	value = int(v64)
	return
}

// target parses a numeral or a label reference.
func (p *operand) target(op Op, word string) (target Target) {
	if IsNumber(word) {
		target.Imm = p.number(word, op.Min, op.Max)
		return
	}
	if !reLabel.MatchString(word) {
		p.fail(word, ErrLabelInvalid)
		return
	}
	if !op.Label {
		p.fail(word, ErrLabelForbidden)
		return
	}
	target.Label = word
	return
}

// memory parses imm($reg) syntax.
func (p *operand) memory(op Op, word string) (imm, rs int) {
	match := reMemory.FindStringSubmatch(word)
	if match == nil {
		p.fail(word, ErrMemorySyntax)
		return
	}
	imm = p.number(strings.TrimSpace(match[1]), op.Min, op.Max)
	rs = p.register(strings.TrimSpace(match[2]))
	return
}

// ParseInstruction parses the operand words of an instruction.
//
// Operand order is:
//
//	R format:         $rd, $rs, $rt
//	I format:         $rt, $rs, imm5
//	LW, SW:           $rt, imm5($rs)
//	B format:         $rs, imm8 | label
//	SET, SSET:        imm11
//	J, JAL:           imm11 | label
func ParseInstruction(name string, words []string, lineno, step int) (in Instruction, err error) {
	mnemonic, ok := LookupMnemonic(name)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	op := mnemonic.Op()
	if len(words) != op.Arity() {
		err = &ErrArity{Mnemonic: mnemonic, LineNo: lineno, Expected: op.Arity(), Actual: len(words)}
		return
	}

	p := &operand{lineno: lineno}
	in = Instruction{Mnemonic: mnemonic, LineNo: lineno, Step: step}

	switch {
	case op.Format == FORMAT_R:
		in.Args = RArgs{
			Rd: p.register(words[0]),
			Rs: p.register(words[1]),
			Rt: p.register(words[2]),
		}
	case mnemonic == LW || mnemonic == SW:
		rt := p.register(words[0])
		imm, rs := p.memory(op, words[1])
		in.Args = IArgs{Rt: rt, Rs: rs, Imm: imm}
	case op.Format == FORMAT_I:
		in.Args = IArgs{
			Rt:  p.register(words[0]),
			Rs:  p.register(words[1]),
			Imm: p.number(words[2], op.Min, op.Max),
		}
	case op.Format == FORMAT_B:
		in.Args = BArgs{
			Rs:     p.register(words[0]),
			Target: p.target(op, words[1]),
		}
	case op.Format == FORMAT_J:
		in.Args = JArgs{Target: p.target(op, words[0])}
	}

	if p.err != nil {
		err = p.err
		in = Instruction{}
	}

	return
}
