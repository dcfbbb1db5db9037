package cpu

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzDecode(f *testing.F) {
	for opcode := range uint16(32) {
		f.Add(opcode << OPCODE_SHIFT)
		f.Add((opcode << OPCODE_SHIFT) | 0x7ff)
	}

	f.Fuzz(func(t *testing.T, word uint16) {
		assert := assert.New(t)

		in, err := Decode(word, 1, 0)
		code_str := fmt.Sprintf("0x%04x (%v)", word, in)

		if FormatOf(word>>OPCODE_SHIFT) < 0 {
			var err_kind *ErrInstructionKind
			assert.True(errors.As(err, &err_kind), code_str)
			return
		}

		if !assert.NoError(err, code_str) {
			return
		}

		assert.Equal(FormatOf(word>>OPCODE_SHIFT), in.Mnemonic.Format(), code_str)

		out, err := in.Encode()
		assert.NoError(err, code_str)

		// Every format uses all 16 bits.
		assert.Equal(word, out, code_str)

		// Execution never panics on a decoded word.
		regs := &RegisterFile{1, -1, 2, -2, 0x7fffffff, -0x80000000, 16, 3}
		mem := NewMemory(32)
		_, _ = in.Execute(5, regs, mem)
	})
}
