// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strings"
)

// Format is the field layout of an instruction word.
type Format int

//go:generate go tool stringer -linecomment -type=Format
const (
	FORMAT_R = Format(0) // R
	FORMAT_I = Format(1) // I
	FORMAT_B = Format(2) // B
	FORMAT_J = Format(3) // J
)

// Mnemonic identifies one instruction kind.
type Mnemonic int

//go:generate go tool stringer -linecomment -type=Mnemonic
const (
	AND   = Mnemonic(0)  // and
	CAND  = Mnemonic(1)  // cand
	OR    = Mnemonic(2)  // or
	XOR   = Mnemonic(3)  // xor
	ADD   = Mnemonic(4)  // add
	NADD  = Mnemonic(5)  // nadd
	SLT   = Mnemonic(6)  // slt
	SLTU  = Mnemonic(7)  // sltu
	ANDI  = Mnemonic(8)  // andi
	CANDI = Mnemonic(9)  // candi
	ORI   = Mnemonic(10) // ori
	XORI  = Mnemonic(11) // xori
	ADDI  = Mnemonic(12) // addi
	NADDI = Mnemonic(13) // naddi
	SLTI  = Mnemonic(14) // slti
	SLTUI = Mnemonic(15) // sltui
	SLL   = Mnemonic(16) // sll
	SRL   = Mnemonic(17) // srl
	SRA   = Mnemonic(18) // sra
	ROR   = Mnemonic(19) // ror
	LW    = Mnemonic(20) // lw
	SW    = Mnemonic(21) // sw
	BEQZ  = Mnemonic(22) // beqz
	BNEZ  = Mnemonic(23) // bnez
	BLTZ  = Mnemonic(24) // bltz
	BGEZ  = Mnemonic(25) // bgez
	BGTZ  = Mnemonic(26) // bgtz
	BLEZ  = Mnemonic(27) // blez
	JR    = Mnemonic(28) // jr
	JALR  = Mnemonic(29) // jalr
	SET   = Mnemonic(30) // set
	SSET  = Mnemonic(31) // sset
	J     = Mnemonic(32) // j
	JAL   = Mnemonic(33) // jal

	MNEMONIC_COUNT = 34
)

// Field bit positions and widths.
const (
	OPCODE_SHIFT = 11
	OPCODE_MASK  = 0x1f
	RS_SHIFT     = 8
	RT_SHIFT     = 5
	RD_SHIFT     = 2
	REG_MASK     = 0x7
	FUNC_MASK    = 0x3
	IMM5_MASK    = 0x1f
	IMM8_MASK    = 0xff
	IMM11_MASK   = 0x7ff
)

// Op is one row of the opcode table.
type Op struct {
	Mnemonic Mnemonic
	Opcode   uint16
	Function uint16 // R format only.
	Format   Format
	Min, Max int  // Immediate range, unused for R format.
	Unsigned bool // Immediate is zero extended on decode.
	Label    bool // Immediate may be given as a label.
}

// Width returns the immediate field width in bits.
func (op Op) Width() uint {
	switch op.Format {
	case FORMAT_I:
		return 5
	case FORMAT_B:
		return 8
	case FORMAT_J:
		return 11
	}
	return 0
}

// Arity returns the number of operands the assembly syntax takes.
func (op Op) Arity() int {
	switch {
	case op.Format == FORMAT_R:
		return 3
	case op.Mnemonic == LW || op.Mnemonic == SW:
		return 2
	case op.Format == FORMAT_I:
		return 3
	case op.Format == FORMAT_B:
		return 2
	default:
		return 1
	}
}

func opR(m Mnemonic, opcode, function uint16) Op {
	return Op{Mnemonic: m, Opcode: opcode, Function: function, Format: FORMAT_R}
}

func opI(m Mnemonic, opcode uint16) Op {
	return Op{Mnemonic: m, Opcode: opcode, Format: FORMAT_I, Min: -16, Max: 15}
}

func opShift(m Mnemonic, opcode uint16) Op {
	return Op{Mnemonic: m, Opcode: opcode, Format: FORMAT_I, Min: 0, Max: 31, Unsigned: true}
}

func opB(m Mnemonic, opcode uint16) Op {
	return Op{Mnemonic: m, Opcode: opcode, Format: FORMAT_B, Min: -128, Max: 127, Label: true}
}

// opTable is indexed by Mnemonic.
var opTable = [MNEMONIC_COUNT]Op{
	opR(AND, 0, 0),
	opR(CAND, 0, 1),
	opR(OR, 0, 2),
	opR(XOR, 0, 3),
	opR(ADD, 1, 0),
	opR(NADD, 1, 1),
	opR(SLT, 1, 2),
	opR(SLTU, 1, 3),
	opI(ANDI, 4),
	opI(CANDI, 5),
	opI(ORI, 6),
	opI(XORI, 7),
	opI(ADDI, 8),
	opI(NADDI, 9),
	opI(SLTI, 10),
	opI(SLTUI, 11),
	opShift(SLL, 12),
	opShift(SRL, 13),
	opShift(SRA, 14),
	opShift(ROR, 15),
	opI(LW, 16),
	opI(SW, 17),
	opB(BEQZ, 20),
	opB(BNEZ, 21),
	opB(BLTZ, 22),
	opB(BGEZ, 23),
	opB(BGTZ, 24),
	opB(BLEZ, 25),
	opB(JR, 26),
	opB(JALR, 27),
	{Mnemonic: SET, Opcode: 28, Format: FORMAT_J, Min: 0, Max: 2047, Unsigned: true},
	{Mnemonic: SSET, Opcode: 29, Format: FORMAT_J, Min: 0, Max: 2047, Unsigned: true},
	{Mnemonic: J, Opcode: 30, Format: FORMAT_J, Min: -1024, Max: 1023, Label: true},
	{Mnemonic: JAL, Opcode: 31, Format: FORMAT_J, Min: -1024, Max: 1023, Label: true},
}

// codeKey packs an opcode and function into a lookup key.
func codeKey(opcode, function uint16) uint16 {
	return (opcode << 2) | function
}

// Lookup tables, filled once by init() and read-only afterwards.
var (
	nameMap = make(map[string]Mnemonic, MNEMONIC_COUNT)
	codeMap = make(map[uint16]Mnemonic, MNEMONIC_COUNT)
)

func init() {
	for n, op := range opTable {
		if op.Mnemonic != Mnemonic(n) {
			panic("opTable out of order")
		}
		nameMap[op.Mnemonic.String()] = op.Mnemonic
		codeMap[codeKey(op.Opcode, op.Function)] = op.Mnemonic
	}
}

// Op returns the opcode table entry for the mnemonic.
func (m Mnemonic) Op() Op {
	return opTable[m]
}

// Format returns the instruction format of the mnemonic.
func (m Mnemonic) Format() Format {
	return opTable[m].Format
}

// LookupMnemonic finds a mnemonic by its (case insensitive) name.
func LookupMnemonic(name string) (m Mnemonic, ok bool) {
	m, ok = nameMap[strings.ToLower(name)]
	return
}

// LookupCode finds the mnemonic for an opcode and function pair.
// The function is ignored for non-R formats.
func LookupCode(opcode, function uint16) (m Mnemonic, ok bool) {
	if FormatOf(opcode) != FORMAT_R {
		function = 0
	}
	m, ok = codeMap[codeKey(opcode, function)]
	return
}

// FormatOf returns the format selected by an opcode, or -1 if the
// opcode is outside of every format range.
func FormatOf(opcode uint16) Format {
	switch {
	case opcode <= 1:
		return FORMAT_R
	case opcode >= 4 && opcode <= 17:
		return FORMAT_I
	case opcode >= 20 && opcode <= 27:
		return FORMAT_B
	case opcode >= 28 && opcode <= 31:
		return FORMAT_J
	}
	return Format(-1)
}

// Mnemonics returns every mnemonic in opcode table order.
func Mnemonics() []Mnemonic {
	list := make([]Mnemonic, MNEMONIC_COUNT)
	for n := range list {
		list[n] = Mnemonic(n)
	}
	return list
}
