// Package assets holds the compiled-in header and library files the compiler
// resolves through the virtual file system.
//
// An Index is an immutable path-keyed table of byte blobs built once from an
// fs.FS and safe for unsynchronized concurrent reads. The process-wide
// Headers and Libraries indexes are built lazily over the embedded include/
// and lib/ trees; packaging replaces the contents of those directories before
// the final build, so what ships in the binary is a build-time decision.
package assets
