package bindings

import "sync"

// Hooks is the set of I/O interceptors backing the compiler's internal
// open/read/lseek/close calls. All four return POSIX-style results: a
// negative value signals failure.
type Hooks struct {
	Open  func(path string, flags int) int
	Read  func(fd int, p []byte) int
	Seek  func(fd int, offset int64, whence int) int64
	Close func(fd int) int
}

var (
	hooksMu  sync.RWMutex
	vfsHooks Hooks
)

// RegisterVFS installs h as the interceptor set. Later registrations replace
// earlier ones; in-flight calls finish against the set they started with.
func RegisterVFS(h Hooks) {
	hooksMu.Lock()
	vfsHooks = h
	hooksMu.Unlock()
}

func hooks() Hooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return vfsHooks
}
