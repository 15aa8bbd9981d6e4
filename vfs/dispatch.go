package vfs

import (
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/tcc-runtime/assets"
	"github.com/wippyai/tcc-runtime/internal/bindings"
)

// POSIX whence values as the compiler passes them.
const (
	seekSet = 0
	seekCur = 1
	seekEnd = 2
)

// Config selects the virtual path convention and table bounds.
// Zero fields take the documented defaults.
type Config struct {
	// HeaderPrefix and LibraryPrefix are the reserved virtual namespaces.
	// Paths under them resolve against the asset indexes first, with an
	// index miss falling through to the real filesystem.
	// Defaults: /vfs/headers/ and /vfs/libraries/.
	HeaderPrefix  string
	LibraryPrefix string

	// MaxHandles bounds concurrently open handles. Default DefaultMaxHandles.
	MaxHandles int

	// Headers and Libraries are the asset indexes to resolve against.
	// Defaults: the embedded assets.Headers() and assets.Libraries().
	Headers   *assets.Index
	Libraries *assets.Index
}

func (c Config) withDefaults() Config {
	if c.HeaderPrefix == "" {
		c.HeaderPrefix = "/vfs/headers/"
	}
	if c.LibraryPrefix == "" {
		c.LibraryPrefix = "/vfs/libraries/"
	}
	if c.MaxHandles <= 0 {
		c.MaxHandles = DefaultMaxHandles
	}
	if c.Headers == nil {
		c.Headers = assets.Headers()
	}
	if c.Libraries == nil {
		c.Libraries = assets.Libraries()
	}
	return c
}

// Dispatcher implements the four intercepted I/O primitives over a handle
// table. Its methods follow the POSIX convention the compiler checks:
// negative means failure.
type Dispatcher struct {
	cfg   Config
	table *Table
}

// NewDispatcher builds a dispatcher; it does not intercept anything until
// Install is called.
func NewDispatcher(cfg Config) *Dispatcher {
	cfg = cfg.withDefaults()
	return &Dispatcher{
		cfg:   cfg,
		table: NewTable(cfg.MaxHandles),
	}
}

// Install registers the dispatcher as the process's I/O interceptor set.
// The latest Install wins.
func (d *Dispatcher) Install() {
	bindings.RegisterVFS(bindings.Hooks{
		Open:  d.Open,
		Read:  d.Read,
		Seek:  d.Seek,
		Close: d.Close,
	})
}

// Table exposes the handle table, mainly for tests and teardown.
func (d *Dispatcher) Table() *Table {
	return d.table
}

// Open resolves path and returns a handle, or a negative code.
//
// Resolution order: header prefix against the header index, library prefix
// against the library index, then real-filesystem passthrough. An index miss
// falls through to the real filesystem like any other path, so a virtual
// prefix can shadow a real directory populated at install time.
func (d *Dispatcher) Open(path string, flags int) int {
	if rest, ok := strings.CutPrefix(path, d.cfg.HeaderPrefix); ok {
		if fd := d.openAsset(d.cfg.Headers, path, rest); fd >= 0 {
			return fd
		}
	}
	if rest, ok := strings.CutPrefix(path, d.cfg.LibraryPrefix); ok {
		if fd := d.openAsset(d.cfg.Libraries, path, rest); fd >= 0 {
			return fd
		}
	}

	b, err := NewOSBackend(path, flags)
	if err != nil {
		return -1
	}
	fd, err := d.table.Insert(b)
	if err != nil {
		b.Close()
		Logger().Warn("vfs open rejected", zap.String("path", path), zap.Error(err))
		return -1
	}
	Logger().Debug("vfs open", zap.String("path", path), zap.Int("fd", fd))
	return fd
}

func (d *Dispatcher) openAsset(ix *assets.Index, full, rel string) int {
	data, ok := ix.Lookup(rel)
	if !ok {
		Logger().Debug("vfs asset miss", zap.String("path", full))
		return -1
	}
	fd, err := d.table.Insert(NewStaticBackend(data))
	if err != nil {
		Logger().Warn("vfs open rejected", zap.String("path", full), zap.Error(err))
		return -1
	}
	Logger().Debug("vfs open asset", zap.String("path", full), zap.Int("fd", fd))
	return fd
}

// Read fills p from the backend bound to fd. Returns the byte count or -1.
func (d *Dispatcher) Read(fd int, p []byte) int {
	b, ok := d.table.Get(fd)
	if !ok {
		return -1
	}
	n, err := b.Read(p)
	if err != nil && err != io.EOF {
		return -1
	}
	return n
}

// Seek repositions fd and returns the new offset, or -1. whence takes the
// POSIX values; anything else fails.
func (d *Dispatcher) Seek(fd int, offset int64, whence int) int64 {
	b, ok := d.table.Get(fd)
	if !ok {
		return -1
	}

	var w int
	switch whence {
	case seekSet:
		w = io.SeekStart
	case seekCur:
		w = io.SeekCurrent
	case seekEnd:
		w = io.SeekEnd
	default:
		return -1
	}

	pos, err := b.Seek(offset, w)
	if err != nil {
		return -1
	}
	return pos
}

// Close releases fd. Closing an unknown or already-closed handle returns -1
// with no other effect.
func (d *Dispatcher) Close(fd int) int {
	b, ok := d.table.Remove(fd)
	if !ok {
		return -1
	}
	if err := b.Close(); err != nil {
		return -1
	}
	return 0
}

var (
	defaultOnce       sync.Once
	defaultDispatcher *Dispatcher
)

// EnsureDefault installs a dispatcher over the embedded asset indexes the
// first time a compiler session needs one, and returns it. Explicit Install
// calls made later still take precedence.
func EnsureDefault() *Dispatcher {
	defaultOnce.Do(func() {
		defaultDispatcher = NewDispatcher(Config{})
		defaultDispatcher.Install()
	})
	return defaultDispatcher
}
