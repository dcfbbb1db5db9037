// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

const (
	REGISTER_COUNT = 8 // Size of the register file.
	REGISTER_ACC   = 0 // Accumulator for SET and SSET.
	REGISTER_LINK  = 7 // Return address for JAL and JALR.
)

// Registers is the register file interface used by Execute.
type Registers interface {
	Get(index int) (value int32, err error)
	Set(index int, value int32) (err error)
}

// RegisterFile is the fixed size set of signed general registers.
type RegisterFile [REGISTER_COUNT]int32

var _ Registers = (*RegisterFile)(nil)

// Get a register value.
func (rf *RegisterFile) Get(index int) (value int32, err error) {
	if index < 0 || index >= len(rf) {
		err = ErrRegisterIndex
		return
	}
	value = rf[index]
	return
}

// Set a register value.
func (rf *RegisterFile) Set(index int, value int32) (err error) {
	if index < 0 || index >= len(rf) {
		err = ErrRegisterIndex
		return
	}
	rf[index] = value
	return
}

// Reset zeros all registers.
func (rf *RegisterFile) Reset() {
	clear(rf[:])
}
