// Package cpu implements the instruction set, processor state and
// assembler for the ICS233 teaching machine.
//
// Instructions are 16-bit words in one of four formats (R, I, B and J),
// selected by a 5-bit opcode and, for the two R format opcodes, by a
// 2-bit function field. The processor has eight signed 32-bit
// registers, a word addressed data memory, and a program counter that
// counts instructions (steps) rather than bytes. Register 0 doubles as
// the SET/SSET accumulator, and register 7 receives the return address
// of JAL and JALR.
//
// The assembler is two pass: Assembler.Parse builds the instruction
// list and label table, and Program.Assemble or Program.AssembleA
// resolve labels to step relative offsets while serializing to hex.
package cpu
