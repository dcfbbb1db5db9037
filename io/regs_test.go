package io

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegsTable(t *testing.T) {
	assert := assert.New(t)

	table := &RegsTable{Register: []int32{7, -1, 0}, Pc: 2}

	var buf bytes.Buffer
	assert.NoError(table.Marshal(&buf))
	assert.Equal("Regfile[0] = 7\nRegfile[1] = -1\nRegfile[2] = 0\nProgram Counter [PC] = 2", buf.String())

	parsed := &RegsTable{}
	assert.NoError(parsed.Unmarshal(&buf))
	assert.Equal(table, parsed)
}

func TestRegsTableErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		input string
		err   error
	}){
		{"missing pc", "Regfile[0] = 1\n", ErrRegsTablePc},
		{"out of order", "Regfile[1] = 1\nProgram Counter [PC] = 0", ErrRegsTableIndex},
		{"garbage", "Regfile[0] = x\n", ErrRegsTableSyntax},
		{"after pc", "Program Counter [PC] = 0\nRegfile[0] = 1\n", ErrRegsTableSyntax},
	}

	for _, entry := range table {
		rt := &RegsTable{}
		err := rt.Unmarshal(strings.NewReader(entry.input))
		assert.ErrorIs(err, entry.err, entry.name)
	}
}
