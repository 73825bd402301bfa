// Package memory provides an in-memory storage.File for tests and examples.
package memory

import (
	"errors"
	"io"
	"sync"

	"github.com/davidvella/sales/storage"
)

var ErrClosed = errors.New("memory: file already closed")

// File is a fixed-size byte buffer that implements storage.File. Writes past
// the end fail with io.ErrShortWrite, like a disk that is full.
type File struct {
	mu     sync.RWMutex
	data   []byte
	closed bool
	syncs  int
}

// NewFile returns a zero-initialized ledger file of storage.FileSize bytes.
func NewFile() *File {
	return &File{data: make([]byte, storage.FileSize)}
}

// NewFileFromBytes returns a file backed by a copy of b.
func NewFileFromBytes(b []byte) *File {
	return &File{data: append([]byte(nil), b...)}
}

// NewStore returns a storage.Store over a fresh in-memory file.
func NewStore(opts ...storage.Option) (*storage.Store, *File) {
	f := NewFile()
	// New only fails for a nil file.
	s, _ := storage.New(f, opts...)
	return s, f
}

func (f *File) ReadAt(p []byte, off int64) (int, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, errors.New("memory: negative offset")
	}
	if off >= int64(len(f.data)) {
		return 0, io.EOF
	}
	n := copy(p, f.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (f *File) WriteAt(p []byte, off int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, errors.New("memory: negative offset")
	}
	if off >= int64(len(f.data)) {
		return 0, io.ErrShortWrite
	}
	n := copy(f.data[off:], p)
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (f *File) Sync() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	f.syncs++
	return nil
}

func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	f.closed = true
	return nil
}

// Bytes returns a copy of the file contents.
func (f *File) Bytes() []byte {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]byte(nil), f.data...)
}

// Closed reports whether Close has been called.
func (f *File) Closed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// Syncs returns the number of successful Sync calls.
func (f *File) Syncs() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.syncs
}
