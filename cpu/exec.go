// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// state latches the first register or memory fault of an instruction.
type state struct {
	regs Registers
	mem  Storage
	err  error
}

func (st *state) get(index int) (value int32) {
	if st.err != nil {
		return
	}
	value, st.err = st.regs.Get(index)
	return
}

func (st *state) set(index int, value int32) {
	if st.err != nil {
		return
	}
	st.err = st.regs.Set(index, value)
}

func (st *state) read(address int32) (value int32) {
	if st.err != nil {
		return
	}
	value, st.err = st.mem.Read(int(address))
	return
}

func (st *state) write(address int32, value int32) {
	if st.err != nil {
		return
	}
	st.err = st.mem.Write(int(address), value)
}

func bool32(cond bool) int32 {
	if cond {
		return 1
	}
	return 0
}

// ror rotates right by a logical right shift combined with a logical
// left shift of the wrapped bits.
func ror(value int32, count int) int32 {
	u := uint32(value)
	n := uint(count) & 0x1f
	return int32(u>>n | u<<((32-n)&0x1f))
}

// alu computes the R and I format operations.
func alu(m Mnemonic, a, b int32) int32 {
	switch m {
	case AND, ANDI:
		return a & b
	case CAND, CANDI:
		return ^a & b
	case OR, ORI:
		return a | b
	case XOR, XORI:
		return a ^ b
	case ADD, ADDI:
		return a + b
	case NADD, NADDI:
		return -a + b
	case SLT, SLTI:
		return bool32(a < b)
	case SLTU, SLTUI:
		return bool32(uint32(a) < uint32(b))
	case SLL:
		return int32(uint32(a) << (uint(b) & 0x1f))
	case SRL:
		return int32(uint32(a) >> (uint(b) & 0x1f))
	case SRA:
		return a >> (uint(b) & 0x1f)
	case ROR:
		return ror(a, int(b))
	}
	panic("alu: " + m.String())
}

// branch evaluates the B format comparison against zero.
func branch(m Mnemonic, value int32) bool {
	switch m {
	case BEQZ:
		return value == 0
	case BNEZ:
		return value != 0
	case BLTZ:
		return value < 0
	case BGEZ:
		return value >= 0
	case BGTZ:
		return value > 0
	case BLEZ:
		return value <= 0
	}
	return false
}

// Execute applies the instruction to the registers and memory, and
// returns the next program counter. A register or memory fault
// leaves the program counter unchanged.
func (in Instruction) Execute(pc int, regs Registers, mem Storage) (next int, err error) {
	st := &state{regs: regs, mem: mem}
	next = pc + 1

	switch args := in.Args.(type) {
	case RArgs:
		st.set(args.Rd, alu(in.Mnemonic, st.get(args.Rs), st.get(args.Rt)))
	case IArgs:
		switch in.Mnemonic {
		case LW:
			st.set(args.Rt, st.read(st.get(args.Rs)+int32(args.Imm)))
		case SW:
			st.write(st.get(args.Rs)+int32(args.Imm), st.get(args.Rt))
		default:
			st.set(args.Rt, alu(in.Mnemonic, st.get(args.Rs), int32(args.Imm)))
		}
	case BArgs:
		if !args.Target.Resolved() {
			err = ErrLabelUnresolved
			return pc, err
		}
		rs := st.get(args.Rs)
		switch in.Mnemonic {
		case JR:
			next = int(rs) + args.Target.Imm
		case JALR:
			next = int(rs) + args.Target.Imm
			st.set(REGISTER_LINK, int32(pc+1))
		default:
			if branch(in.Mnemonic, rs) {
				next = pc + args.Target.Imm
			}
		}
	case JArgs:
		if !args.Target.Resolved() {
			err = ErrLabelUnresolved
			return pc, err
		}
		imm := args.Target.Imm
		switch in.Mnemonic {
		case SET:
			st.set(REGISTER_ACC, int32(imm))
		case SSET:
			st.set(REGISTER_ACC, (st.get(REGISTER_ACC)<<11)|int32(imm))
		case J:
			next = pc + imm
		case JAL:
			st.set(REGISTER_LINK, int32(pc+1))
			next = pc + imm
		}
	default:
		err = ErrInstructionInvalid
		return pc, err
	}

	if st.err != nil {
		return pc, st.err
	}

	return
}
