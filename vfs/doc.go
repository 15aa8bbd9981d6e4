// Package vfs implements the virtual file system layer the compiler's
// internal I/O is routed through.
//
// The compiler issues four POSIX-like primitives (open, read, lseek, close)
// for every path it touches. A Dispatcher intercepts them: paths under the
// configured virtual prefixes resolve against the embedded asset indexes and
// are served from memory; everything else passes through to the real
// filesystem. Open files are tracked in a handle Table keyed by small
// integers, mirroring file descriptors.
//
// All dispatcher entry points speak the native convention - a negative return
// is failure, errors never cross the boundary as Go values. The table is
// mutex-guarded so a compiler built with thread support stays safe; under the
// default single-session guard the lock is uncontended.
package vfs
