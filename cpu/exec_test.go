package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecuteAlu(t *testing.T) {
	assert := assert.New(t)

	const a = int32(-6) // 0xfffffffa
	const b = int32(3)

	table := [](struct {
		mnemonic Mnemonic
		expected int32
	}){
		{AND, a & b},
		{CAND, ^a & b},
		{OR, a | b},
		{XOR, a ^ b},
		{ADD, a + b},
		{NADD, -a + b},
		{SLT, 1},
		{SLTU, 0},
	}

	for _, entry := range table {
		regs := &RegisterFile{}
		regs[2] = a
		regs[3] = b

		in := Instruction{Mnemonic: entry.mnemonic, Args: RArgs{Rd: 1, Rs: 2, Rt: 3}}
		next, err := in.Execute(10, regs, NewMemory(4))
		assert.NoError(err, entry.mnemonic.String())
		assert.Equal(11, next, entry.mnemonic.String())
		assert.Equal(entry.expected, regs[1], entry.mnemonic.String())
		assert.Equal(a, regs[2], entry.mnemonic.String())
	}
}

func TestExecuteImmediate(t *testing.T) {
	assert := assert.New(t)

	const a = int32(-0x7ffffff0) // 0x80000010

	table := [](struct {
		mnemonic Mnemonic
		imm      int
		expected int32
	}){
		{ANDI, -1, a},
		{CANDI, 0xf, ^a & 0xf},
		{ORI, 0xf, a | 0xf},
		{XORI, -1, ^a},
		{ADDI, -16, a - 16},
		{NADDI, 1, -a + 1},
		{SLTI, 0, 1},
		{SLTUI, 15, 0},
		{SLL, 1, 0x20},
		{SRL, 4, 0x08000001},
		{SRA, 4, -0x07ffffff},
		{ROR, 4, 0x08000001},
		{ROR, 8, 0x10800000},
		{ROR, 0, a},
	}

	for _, entry := range table {
		regs := &RegisterFile{}
		regs[2] = a

		in := Instruction{Mnemonic: entry.mnemonic, Args: IArgs{Rt: 1, Rs: 2, Imm: entry.imm}}
		next, err := in.Execute(0, regs, NewMemory(4))
		assert.NoError(err, in.String())
		assert.Equal(1, next, in.String())
		assert.Equal(entry.expected, regs[1], in.String())
	}
}

func TestExecuteMemory(t *testing.T) {
	assert := assert.New(t)

	regs := &RegisterFile{}
	mem := NewMemory(16)

	regs[1] = 1234
	regs[2] = 8

	sw := Instruction{Mnemonic: SW, Args: IArgs{Rt: 1, Rs: 2, Imm: -3}}
	next, err := sw.Execute(0, regs, mem)
	assert.NoError(err)
	assert.Equal(1, next)
	assert.Equal(int32(1234), mem.Data[5])

	lw := Instruction{Mnemonic: LW, Args: IArgs{Rt: 3, Rs: 2, Imm: -3}}
	next, err = lw.Execute(1, regs, mem)
	assert.NoError(err)
	assert.Equal(2, next)
	assert.Equal(int32(1234), regs[3])

	// Faults leave the program counter and registers unchanged.
	regs[2] = 15
	lw = Instruction{Mnemonic: LW, Args: IArgs{Rt: 3, Rs: 2, Imm: 1}}
	next, err = lw.Execute(2, regs, mem)
	assert.ErrorIs(err, ErrMemoryAddress(16))
	assert.Equal(2, next)
	assert.Equal(int32(1234), regs[3])

	regs[2] = 0
	sw = Instruction{Mnemonic: SW, Args: IArgs{Rt: 1, Rs: 2, Imm: -1}}
	_, err = sw.Execute(3, regs, mem)
	var err_addr ErrMemoryAddress
	assert.True(errors.As(err, &err_addr))
	assert.Equal(ErrMemoryAddress(-1), err_addr)
}

func TestExecuteBranch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		mnemonic Mnemonic
		value    int32
		taken    bool
	}){
		{BEQZ, 0, true},
		{BEQZ, 1, false},
		{BNEZ, -1, true},
		{BNEZ, 0, false},
		{BLTZ, -1, true},
		{BLTZ, 0, false},
		{BGEZ, 0, true},
		{BGEZ, -1, false},
		{BGTZ, 1, true},
		{BGTZ, 0, false},
		{BLEZ, 0, true},
		{BLEZ, 1, false},
	}

	for _, entry := range table {
		regs := &RegisterFile{}
		regs[4] = entry.value

		in := Instruction{Mnemonic: entry.mnemonic, Args: BArgs{Rs: 4, Target: Target{Imm: -2}}}
		next, err := in.Execute(20, regs, NewMemory(1))
		assert.NoError(err, in.String())
		if entry.taken {
			assert.Equal(18, next, in.String())
		} else {
			assert.Equal(21, next, in.String())
		}
	}
}

func TestExecuteJump(t *testing.T) {
	assert := assert.New(t)

	regs := &RegisterFile{}
	mem := NewMemory(1)
	regs[3] = 40

	jr := Instruction{Mnemonic: JR, Args: BArgs{Rs: 3, Target: Target{Imm: 2}}}
	next, err := jr.Execute(5, regs, mem)
	assert.NoError(err)
	assert.Equal(42, next)
	assert.Equal(int32(0), regs[REGISTER_LINK])

	jalr := Instruction{Mnemonic: JALR, Args: BArgs{Rs: 3, Target: Target{Imm: -1}}}
	next, err = jalr.Execute(5, regs, mem)
	assert.NoError(err)
	assert.Equal(39, next)
	assert.Equal(int32(6), regs[REGISTER_LINK])

	// JALR through the link register reads it before it is written.
	regs[REGISTER_LINK] = 100
	jalr = Instruction{Mnemonic: JALR, Args: BArgs{Rs: REGISTER_LINK}}
	next, err = jalr.Execute(9, regs, mem)
	assert.NoError(err)
	assert.Equal(100, next)
	assert.Equal(int32(10), regs[REGISTER_LINK])

	j := Instruction{Mnemonic: J, Args: JArgs{Target: Target{Imm: -5}}}
	next, err = j.Execute(5, regs, mem)
	assert.NoError(err)
	assert.Equal(0, next)

	jal := Instruction{Mnemonic: JAL, Args: JArgs{Target: Target{Imm: 3}}}
	next, err = jal.Execute(5, regs, mem)
	assert.NoError(err)
	assert.Equal(8, next)
	assert.Equal(int32(6), regs[REGISTER_LINK])

	// Self loop.
	j = Instruction{Mnemonic: J, Args: JArgs{Target: Target{Imm: 0}}}
	next, err = j.Execute(1, regs, mem)
	assert.NoError(err)
	assert.Equal(1, next)
}

func TestExecuteSet(t *testing.T) {
	assert := assert.New(t)

	regs := &RegisterFile{}
	mem := NewMemory(1)
	regs[REGISTER_ACC] = -1

	set := Instruction{Mnemonic: SET, Args: JArgs{Target: Target{Imm: 0x123}}}
	next, err := set.Execute(0, regs, mem)
	assert.NoError(err)
	assert.Equal(1, next)
	assert.Equal(int32(0x123), regs[REGISTER_ACC])

	sset := Instruction{Mnemonic: SSET, Args: JArgs{Target: Target{Imm: 0x456}}}
	next, err = sset.Execute(1, regs, mem)
	assert.NoError(err)
	assert.Equal(2, next)
	assert.Equal(int32(0x123<<11|0x456), regs[REGISTER_ACC])
}

func TestExecuteUnresolved(t *testing.T) {
	assert := assert.New(t)

	regs := &RegisterFile{}
	in := Instruction{Mnemonic: BEQZ, Args: BArgs{Target: Target{Label: "L"}}}
	next, err := in.Execute(3, regs, NewMemory(1))
	assert.ErrorIs(err, ErrLabelUnresolved)
	assert.Equal(3, next)

	in = Instruction{Mnemonic: ADD}
	_, err = in.Execute(3, regs, NewMemory(1))
	assert.ErrorIs(err, ErrInstructionInvalid)
}

func TestRegisterFile(t *testing.T) {
	assert := assert.New(t)

	regs := &RegisterFile{}
	assert.NoError(regs.Set(7, -5))
	value, err := regs.Get(7)
	assert.NoError(err)
	assert.Equal(int32(-5), value)

	assert.ErrorIs(regs.Set(8, 0), ErrRegisterIndex)
	_, err = regs.Get(-1)
	assert.ErrorIs(err, ErrRegisterIndex)

	regs.Reset()
	assert.Equal(RegisterFile{}, *regs)
}

func TestMemory(t *testing.T) {
	assert := assert.New(t)

	mem := NewMemory(8)
	assert.Len(mem.Data, 8)

	assert.NoError(mem.Write(7, 99))
	value, err := mem.Read(7)
	assert.NoError(err)
	assert.Equal(int32(99), value)

	assert.ErrorIs(mem.Write(8, 0), ErrMemoryAddress(8))
	_, err = mem.Read(-1)
	assert.ErrorIs(err, ErrMemoryAddress(-1))

	mem.Reset()
	assert.Equal(make([]int32, 8), mem.Data)
}
