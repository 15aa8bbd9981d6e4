package tcc

import (
	"unsafe"

	"github.com/wippyai/tcc-runtime/internal/bindings"
)

// Ptr is a raw code or data address inside a relocated image. It carries no
// type information; the caller matches calling convention and signature at
// every use. A Ptr is valid only while the Relocated it came from is alive.
type Ptr struct {
	addr unsafe.Pointer
}

// IsNil reports whether the address is unset.
func (p Ptr) IsNil() bool {
	return p.addr == nil
}

// Addr exposes the raw address, e.g. to inject into another context with
// AddSymbol. The lifetime obligation travels with it.
func (p Ptr) Addr() unsafe.Pointer {
	return p.addr
}

// Relocated is an executable in-memory image. It owns the backing code
// buffer and the native handle of the context it came from; Close frees
// both, after which every address resolved from the image is dangling.
type Relocated struct {
	h      bindings.Handle
	buf    unsafe.Pointer
	size   int
	guard  *Guard
	closed bool
}

// Size returns the byte count of the relocated image.
func (r *Relocated) Size() int {
	return r.size
}

// Symbol looks up an exported name. A miss (or a closed image) reports
// found=false; it is not an error.
func (r *Relocated) Symbol(name string) (p Ptr, found bool) {
	if r.closed {
		return Ptr{}, false
	}
	addr := r.h.GetSymbol(name)
	if addr == nil {
		return Ptr{}, false
	}
	return Ptr{addr: addr}, true
}

// Close frees the code buffer and the native handle. Idempotent.
func (r *Relocated) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.h.Delete()
	bindings.FreeBuffer(r.buf)
	r.buf = nil
	r.guard.unretain()
	r.guard = nil
	return nil
}

// CallVoid invokes p as void (*)(void).
func CallVoid(p Ptr) {
	bindings.CallVoid(p.addr)
}

// CallInt0 invokes p as int (*)(void).
func CallInt0(p Ptr) int32 {
	return bindings.CallInt0(p.addr)
}

// CallInt2 invokes p as int (*)(int, int).
func CallInt2(p Ptr, a, b int32) int32 {
	return bindings.CallInt2(p.addr, a, b)
}
