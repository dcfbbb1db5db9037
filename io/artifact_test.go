package io

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifacts(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	art := &Artifacts{FS: DirFS(dir)}

	require.NoError(t, art.WriteHex("00000a64\n0000f000\n", "0a64\nf000\n"))
	require.NoError(t, art.WriteRegs(&RegsTable{Register: []int32{1, 2}, Pc: 1}))

	data, err := os.ReadFile(filepath.Join(dir, FILE_FULL))
	assert.NoError(err)
	assert.Equal("00000a64\n0000f000\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, FILE_COMPACT))
	assert.NoError(err)
	assert.Equal("0a64\nf000\n", string(data))

	data, err = os.ReadFile(filepath.Join(dir, FILE_REGS))
	assert.NoError(err)
	assert.Equal("Regfile[0] = 1\nRegfile[1] = 2\nProgram Counter [PC] = 1", string(data))
}

func TestDirFS(t *testing.T) {
	assert := assert.New(t)

	dir := DirFS(t.TempDir())

	assert.NoError(dir.Mkdir("out", 0o755))
	assert.NoError(dir.Mkdir("out", 0o755))

	sub, err := dir.Sub("out")
	assert.NoError(err)

	file, err := sub.Create("result.txt")
	if assert.NoError(err) {
		_, err = file.Write([]byte("ok"))
		assert.NoError(err)
		assert.NoError(file.Close())
	}

	data, err := os.ReadFile(filepath.Join(string(dir), "out", "result.txt"))
	assert.NoError(err)
	assert.Equal("ok", string(data))

	_, err = dir.Create("../escape")
	assert.ErrorIs(err, fs.ErrInvalid)
}
