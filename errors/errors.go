package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of the compilation lifecycle the error occurred in
type Phase string

const (
	PhaseGuard     Phase = "guard"     // exclusivity acquisition
	PhaseCreate    Phase = "create"    // native handle allocation
	PhaseConfigure Phase = "configure" // paths, defines, options, output kind
	PhaseCompile   Phase = "compile"   // translation of source or files
	PhaseLink      Phase = "link"      // library and symbol resolution
	PhaseRelocate  Phase = "relocate"  // in-memory image production
	PhaseEmit      Phase = "emit"      // output file writing
	PhaseVFS       Phase = "vfs"       // virtual file system dispatch
	PhaseRun       Phase = "run"       // relocated symbol use
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfMemory      Kind = "out_of_memory"
	KindGuardUnavailable Kind = "guard_unavailable"
	KindMisuse           Kind = "misuse"
	KindCompileFailed    Kind = "compile_failed"
	KindLinkFailed       Kind = "link_failed"
	KindRelocateFailed   Kind = "relocate_failed"
	KindNotFound         Kind = "not_found"
	KindIO               Kind = "io"
	KindHandleExhausted  Kind = "handle_exhausted"
	KindInvalidInput     Kind = "invalid_input"
	KindClosed           Kind = "closed"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Path   string
	Symbol string
	Option string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Symbol != "" {
		b.WriteString(" symbol ")
		b.WriteString(e.Symbol)
	}
	if e.Option != "" {
		b.WriteString(" option ")
		b.WriteString(e.Option)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path records the file or search path involved
func (b *Builder) Path(p string) *Builder {
	b.err.Path = p
	return b
}

// Symbol records the symbol or library name involved
func (b *Builder) Symbol(s string) *Builder {
	b.err.Symbol = s
	return b
}

// Option records the option string involved
func (b *Builder) Option(o string) *Builder {
	b.err.Option = o
	return b
}

// Cause records the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail adds a formatted detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// OutOfMemory reports a failed native handle allocation.
func OutOfMemory() *Error {
	return New(PhaseCreate, KindOutOfMemory).
		Detail("native compiler allocation returned no handle").
		Build()
}

// GuardUnavailable reports that another compiler session holds the guard.
func GuardUnavailable() *Error {
	return New(PhaseGuard, KindGuardUnavailable).
		Detail("another compiler session is active").
		Build()
}

// Misuse reports an operation called in an invalid lifecycle state.
func Misuse(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindMisuse).Detail(detail, args...).Build()
}

// CompileFailed reports a failed translation. The diagnostic text has
// already been delivered through the registered error callback.
func CompileFailed() *Error {
	return New(PhaseCompile, KindCompileFailed).
		Detail("compilation failed; diagnostics were delivered to the error callback").
		Build()
}

// LinkFailed reports a library or symbol that could not be resolved.
func LinkFailed(name string) *Error {
	return New(PhaseLink, KindLinkFailed).Symbol(name).Build()
}

// RelocateFailed reports a failed size query or fill during relocation.
func RelocateFailed(detail string) *Error {
	return New(PhaseRelocate, KindRelocateFailed).Detail(detail).Build()
}

// NotFound reports a missing path or symbol.
func NotFound(phase Phase, what string) *Error {
	return New(phase, KindNotFound).Detail(what).Build()
}

// IO wraps a filesystem failure.
func IO(phase Phase, path string, cause error) *Error {
	return New(phase, KindIO).Path(path).Cause(cause).Build()
}

// HandleExhausted reports that the VFS table cannot allocate another handle.
func HandleExhausted(limit int) *Error {
	return New(PhaseVFS, KindHandleExhausted).
		Detail("handle table full (limit %d)", limit).
		Build()
}

// InvalidInput reports malformed caller input.
func InvalidInput(phase Phase, detail string, args ...any) *Error {
	return New(phase, KindInvalidInput).Detail(detail, args...).Build()
}

// Closed reports use of a value whose resources were already released.
func Closed(phase Phase, what string) *Error {
	return New(phase, KindClosed).Detail("%s is closed", what).Build()
}

// Wrap attaches phase and kind to an arbitrary cause.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return New(phase, kind).Cause(cause).Detail(detail).Build()
}
