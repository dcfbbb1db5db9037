// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// CreateFS defines a file system interface that supports creating files and directories.
// It is the sink for the assembler and simulator artifacts.
type CreateFS interface {
	// Sub returns a filesystem for a subdirectory.
	Sub(name string) (sub CreateFS, err error)
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS is a CreateFS rooted at a host directory.
type DirFS string

var _ CreateFS = DirFS(".")

func (dir DirFS) path(name string) (path string, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		return
	}
	path = filepath.Join(string(dir), filepath.FromSlash(name))
	return
}

// Sub returns the subdirectory 'name'.
func (dir DirFS) Sub(name string) (sub CreateFS, err error) {
	path, err := dir.path(name)
	if err != nil {
		return
	}
	sub = DirFS(path)
	return
}

// Create creates or truncates the file 'name'.
func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	path, err := dir.path(name)
	if err != nil {
		return
	}
	file, err = os.Create(path)
	return
}

// Mkdir creates the directory 'name'. An existing directory is not an error.
func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	path, err := dir.path(name)
	if err != nil {
		return
	}
	err = os.Mkdir(path, filemode)
	if errors.Is(err, fs.ErrExist) {
		err = nil
	}
	return
}
