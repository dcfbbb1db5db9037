// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

const (
	MEMORY_SIZE = 1 << 16 // Default number of words of memory.
)

// Storage is the memory interface used by Execute.
type Storage interface {
	Read(address int) (value int32, err error)
	Write(address int, value int32) (err error)
}

// Memory is a word addressed, fixed size data memory.
type Memory struct {
	Data []int32
}

var _ Storage = (*Memory)(nil)

// NewMemory creates a zeroed memory of 'size' words.
func NewMemory(size int) *Memory {
	return &Memory{Data: make([]int32, size)}
}

// Read a word from memory.
func (mem *Memory) Read(address int) (value int32, err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrMemoryAddress(address)
		return
	}
	value = mem.Data[address]
	return
}

// Write a word to memory.
func (mem *Memory) Write(address int, value int32) (err error) {
	if address < 0 || address >= len(mem.Data) {
		err = ErrMemoryAddress(address)
		return
	}
	mem.Data[address] = value
	return
}

// Reset zeros all of memory.
func (mem *Memory) Reset() {
	clear(mem.Data)
}
