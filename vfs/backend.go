package vfs

import (
	"bytes"
	"io"
	"os"

	"github.com/wippyai/tcc-runtime/errors"
)

// Backend is one open VFS session: the read/seek/close capability set a
// handle is bound to. Seek takes the io package whence values.
type Backend interface {
	Read(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}

// OSBackend passes through to a real file.
type OSBackend struct {
	f *os.File
}

// NewOSBackend opens path with the flags the compiler passed through.
func NewOSBackend(path string, flag int) (*OSBackend, error) {
	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, errors.IO(errors.PhaseVFS, path, err)
	}
	return &OSBackend{f: f}, nil
}

func (b *OSBackend) Read(p []byte) (int, error) {
	return b.f.Read(p)
}

func (b *OSBackend) Seek(offset int64, whence int) (int64, error) {
	return b.f.Seek(offset, whence)
}

func (b *OSBackend) Close() error {
	return b.f.Close()
}

// MemoryBackend is a read-only cursor over a byte slice.
type MemoryBackend struct {
	r *bytes.Reader
}

// NewStaticBackend aliases data, which must stay immutable for the backend's
// lifetime. Embedded assets qualify.
func NewStaticBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{r: bytes.NewReader(data)}
}

// NewMemoryBackend copies data so the caller may reuse its slice.
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{r: bytes.NewReader(append([]byte(nil), data...))}
}

func (b *MemoryBackend) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err == io.EOF {
		// POSIX read at end-of-file is a zero-count success.
		return n, nil
	}
	return n, err
}

func (b *MemoryBackend) Seek(offset int64, whence int) (int64, error) {
	return b.r.Seek(offset, whence)
}

func (b *MemoryBackend) Close() error {
	return nil
}
