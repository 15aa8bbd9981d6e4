package bindings

/*
#cgo LDFLAGS: -ltcc

#include <stdlib.h>
#include <sys/types.h>

typedef struct TCCState TCCState;

extern TCCState *tcc_new(void);
extern void tcc_delete(TCCState *s);
extern void tcc_set_lib_path(TCCState *s, const char *path);
extern void tcc_set_error_func(TCCState *s, void *opaque, void (*f)(void *, const char *));
extern void tcc_set_options(TCCState *s, const char *str);
extern int tcc_add_include_path(TCCState *s, const char *path);
extern int tcc_add_sysinclude_path(TCCState *s, const char *path);
extern void tcc_define_symbol(TCCState *s, const char *sym, const char *value);
extern void tcc_undefine_symbol(TCCState *s, const char *sym);
extern int tcc_add_file(TCCState *s, const char *filename);
extern int tcc_compile_string(TCCState *s, const char *buf);
extern int tcc_set_output_type(TCCState *s, int output_type);
extern int tcc_add_library_path(TCCState *s, const char *pathname);
extern int tcc_add_library(TCCState *s, const char *libraryname);
extern int tcc_add_symbol(TCCState *s, const char *name, const void *val);
extern int tcc_output_file(TCCState *s, const char *filename);
extern int tcc_relocate(TCCState *s, void *ptr);
extern void *tcc_get_symbol(TCCState *s, const char *name);

extern void tccErrorTrampoline(void *opaque, char *msg);

static void tccrt_set_error_func(TCCState *s, void *opaque) {
	tcc_set_error_func(s, opaque, (void (*)(void *, const char *))tccErrorTrampoline);
}

static void tccrt_clear_error_func(TCCState *s) {
	tcc_set_error_func(s, 0, 0);
}

typedef void (*tccrt_fn_void)(void);
typedef int (*tccrt_fn_i)(void);
typedef int (*tccrt_fn_ii)(int, int);

static void tccrt_call_void(void *p) { ((tccrt_fn_void)p)(); }
static int tccrt_call_i(void *p) { return ((tccrt_fn_i)p)(); }
static int tccrt_call_ii(void *p, int a, int b) { return ((tccrt_fn_ii)p)(a, b); }
*/
import "C"

import (
	"sync"
	"unsafe"
)

// Handle wraps one native compiler state. The zero Handle is invalid.
type Handle struct {
	s *C.TCCState
}

// Valid reports whether the handle refers to a live native state.
func (h Handle) Valid() bool {
	return h.s != nil
}

// New allocates a native compiler state. ok is false when the native
// allocator returned no handle (out of memory).
func New() (h Handle, ok bool) {
	s := C.tcc_new()
	if s == nil {
		return Handle{}, false
	}
	return Handle{s: s}, true
}

// Delete releases the native state and any callback registration bound to it.
// Safe to call once per handle; the caller serializes against all other use.
func (h Handle) Delete() {
	if h.s == nil {
		return
	}
	clearCallback(h.s)
	C.tcc_delete(h.s)
}

func (h Handle) SetLibPath(path string) {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	C.tcc_set_lib_path(h.s, cs)
}

func (h Handle) SetOptions(opts string) {
	cs := C.CString(opts)
	defer C.free(unsafe.Pointer(cs))
	C.tcc_set_options(h.s, cs)
}

func (h Handle) SetOutputType(kind int) int {
	return int(C.tcc_set_output_type(h.s, C.int(kind)))
}

func (h Handle) AddIncludePath(path string) int {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_add_include_path(h.s, cs))
}

func (h Handle) AddSysIncludePath(path string) int {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_add_sysinclude_path(h.s, cs))
}

func (h Handle) AddLibraryPath(path string) int {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_add_library_path(h.s, cs))
}

func (h Handle) DefineSymbol(name, value string) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	C.tcc_define_symbol(h.s, cn, cv)
}

func (h Handle) UndefineSymbol(name string) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	C.tcc_undefine_symbol(h.s, cn)
}

func (h Handle) CompileString(src string) int {
	cs := C.CString(src)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_compile_string(h.s, cs))
}

func (h Handle) AddFile(path string) int {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_add_file(h.s, cs))
}

func (h Handle) AddLibrary(name string) int {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_add_library(h.s, cs))
}

func (h Handle) AddSymbol(name string, addr unsafe.Pointer) int {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_add_symbol(h.s, cs, addr))
}

func (h Handle) OutputFile(path string) int {
	cs := C.CString(path)
	defer C.free(unsafe.Pointer(cs))
	return int(C.tcc_output_file(h.s, cs))
}

// RelocateSize queries the byte count required for the relocated image.
// Negative on failure.
func (h Handle) RelocateSize() int {
	return int(C.tcc_relocate(h.s, nil))
}

// Relocate fills buf with the relocated image. buf must be C-allocated and
// at least RelocateSize bytes. Nonzero on failure.
func (h Handle) Relocate(buf unsafe.Pointer) int {
	return int(C.tcc_relocate(h.s, buf))
}

// GetSymbol returns the address of name in the relocated image, or nil.
func (h Handle) GetSymbol(name string) unsafe.Pointer {
	cs := C.CString(name)
	defer C.free(unsafe.Pointer(cs))
	return C.tcc_get_symbol(h.s, cs)
}

// AllocBuffer allocates n bytes of C memory for the relocated image, so the
// executable pages are never subject to Go heap movement.
func AllocBuffer(n int) unsafe.Pointer {
	return C.malloc(C.size_t(n))
}

// FreeBuffer releases a buffer obtained from AllocBuffer.
func FreeBuffer(p unsafe.Pointer) {
	C.free(p)
}

// CallVoid invokes addr as void (*)(void).
func CallVoid(addr unsafe.Pointer) {
	C.tccrt_call_void(addr)
}

// CallInt0 invokes addr as int (*)(void).
func CallInt0(addr unsafe.Pointer) int32 {
	return int32(C.tccrt_call_i(addr))
}

// CallInt2 invokes addr as int (*)(int, int).
func CallInt2(addr unsafe.Pointer, a, b int32) int32 {
	return int32(C.tccrt_call_ii(addr, C.int(a), C.int(b)))
}

// Error callback plumbing. Go closures cannot cross the C boundary, so each
// registration allocates a one-byte C token used as the opaque pointer; the
// exported trampoline maps the token back to the closure. Tokens live until
// the registration is replaced or the handle is deleted, which keeps the
// closure reachable for as long as the native side may call it.
var (
	cbMu      sync.Mutex
	callbacks = make(map[unsafe.Pointer]func(string))
	cbTokens  = make(map[*C.TCCState]unsafe.Pointer)
)

// SetErrorFunc routes the handle's diagnostics to fn. A second registration
// on the same handle replaces the first.
func (h Handle) SetErrorFunc(fn func(msg string)) {
	cbMu.Lock()
	defer cbMu.Unlock()

	tok, ok := cbTokens[h.s]
	if !ok {
		tok = C.malloc(1)
		cbTokens[h.s] = tok
		C.tccrt_set_error_func(h.s, tok)
	}
	callbacks[tok] = fn
}

// ClearErrorFunc removes any registered callback from the handle.
func (h Handle) ClearErrorFunc() {
	cbMu.Lock()
	defer cbMu.Unlock()
	clearCallbackLocked(h.s)
	C.tccrt_clear_error_func(h.s)
}

func clearCallback(s *C.TCCState) {
	cbMu.Lock()
	defer cbMu.Unlock()
	clearCallbackLocked(s)
}

func clearCallbackLocked(s *C.TCCState) {
	tok, ok := cbTokens[s]
	if !ok {
		return
	}
	delete(cbTokens, s)
	delete(callbacks, tok)
	C.free(tok)
}

func lookupCallback(tok unsafe.Pointer) func(string) {
	cbMu.Lock()
	defer cbMu.Unlock()
	return callbacks[tok]
}
