// Package tccruntime embeds a C compiler in Go processes.
//
// The library wraps the native libtcc compiler behind a safe lifecycle: a
// process-wide guard serializes compiler sessions, compilation contexts move
// through an explicit configure -> compile -> relocate/emit state machine,
// and relocated code buffers are owned values whose symbol addresses cannot
// outlive them by construction.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	tcc-runtime/
//	├── tcc/                High-level API: Guard, Scope, Context, Relocated
//	├── vfs/                Virtual file system dispatch for the compiler's I/O
//	├── assets/             Compiled-in header and library blobs
//	├── errors/             Structured error types
//	└── internal/bindings/  cgo boundary to libtcc
//
// # Quick Start
//
// Compile a function and call it:
//
//	err := tcc.Scoped(func(s *tcc.Scope) error {
//	    ctx, err := s.Spawn()
//	    if err != nil {
//	        return err
//	    }
//	    ctx.SetErrorFunc(func(msg string) { log.Println(msg) })
//	    if err := ctx.CompileString("int add(int a, int b) { return a + b; }"); err != nil {
//	        return err
//	    }
//	    img, err := ctx.Relocate()
//	    if err != nil {
//	        return err
//	    }
//	    defer img.Close()
//	    add, _ := img.Symbol("add")
//	    fmt.Println(tcc.CallInt2(add, 1, 1)) // 2
//	    return nil
//	})
//
// # Virtual File System
//
// The bundled compiler's internal open/read/lseek/close calls are routed
// through the vfs package. Paths under the reserved virtual prefixes
// (/vfs/headers/ and /vfs/libraries/ by default) resolve against the
// embedded asset tables in the assets package, so headers and runtime
// archives can ship inside the binary; all other paths pass through to the
// real filesystem.
//
// # Thread Safety
//
// Compilation is single-threaded per process: the Guard admits one live
// session at a time, and Context and Relocated are not safe for concurrent
// use. The VFS handle table is mutex-guarded so a compiler built with
// thread support cannot corrupt it.
package tccruntime
