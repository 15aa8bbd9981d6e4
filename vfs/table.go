package vfs

import (
	"sync"

	"github.com/wippyai/tcc-runtime/errors"
)

// DefaultMaxHandles bounds the table when Config leaves MaxHandles zero.
const DefaultMaxHandles = 1 << 15

// Table maps live integer handles to backends. Handle 0 is reserved and
// never issued; freed slots are reused densely, so a handle is unique among
// currently-open entries but may recur after its entry is closed.
type Table struct {
	mu      sync.Mutex
	entries []Backend
	free    []int
	max     int
	closed  bool
}

// NewTable creates a table bounded at max live handles.
func NewTable(max int) *Table {
	if max <= 0 {
		max = DefaultMaxHandles
	}
	return &Table{
		entries: make([]Backend, 0, 16),
		free:    make([]int, 0, 8),
		max:     max,
	}
}

// Insert binds b to a fresh handle.
func (t *Table) Insert(b Backend) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return 0, errors.Closed(errors.PhaseVFS, "handle table")
	}

	if n := len(t.free); n > 0 {
		fd := t.free[n-1]
		t.free = t.free[:n-1]
		t.entries[fd-1] = b
		return fd, nil
	}

	if len(t.entries) >= t.max {
		return 0, errors.HandleExhausted(t.max)
	}

	t.entries = append(t.entries, b)
	return len(t.entries), nil
}

// Get returns the backend bound to fd.
func (t *Table) Get(fd int) (Backend, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fd <= 0 || fd > len(t.entries) {
		return nil, false
	}
	b := t.entries[fd-1]
	return b, b != nil
}

// Remove unbinds fd and returns its backend. The caller closes the backend;
// a second Remove of the same fd misses.
func (t *Table) Remove(fd int) (Backend, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if fd <= 0 || fd > len(t.entries) {
		return nil, false
	}
	b := t.entries[fd-1]
	if b == nil {
		return nil, false
	}
	t.entries[fd-1] = nil
	t.free = append(t.free, fd)
	return b, true
}

// Len returns the number of live handles.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, b := range t.entries {
		if b != nil {
			n++
		}
	}
	return n
}

// Close closes every live backend and rejects further inserts.
func (t *Table) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return nil
	}
	t.closed = true

	var firstErr error
	for i, b := range t.entries {
		if b == nil {
			continue
		}
		if err := b.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		t.entries[i] = nil
	}
	t.entries = nil
	t.free = nil
	return firstErr
}
