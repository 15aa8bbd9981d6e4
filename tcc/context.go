package tcc

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/tcc-runtime/errors"
	"github.com/wippyai/tcc-runtime/internal/bindings"
	"github.com/wippyai/tcc-runtime/vfs"
)

type state int

const (
	// stateActive accepts configuration and compilation.
	stateActive state = iota
	// stateRelocated: the handle now belongs to the Relocated image.
	stateRelocated
	// stateEmitted: output was written to a file; only Close remains.
	stateEmitted
	stateClosed
)

type compileResult int

const (
	compileNone compileResult = iota
	compileOK
	compileErr
)

// Context is one compilation unit: a native compiler handle plus its
// accumulated configuration. It is not safe for concurrent use.
type Context struct {
	h       bindings.Handle
	guard   *Guard
	st      state
	last    compileResult
	kind    OutputKind
	kindSet bool
}

// NewContext allocates a compiler handle under g. The first context in the
// process also installs the default VFS dispatcher so the native layer can
// resolve embedded assets during compilation.
func NewContext(g *Guard) (*Context, error) {
	if err := g.retain(); err != nil {
		return nil, err
	}

	vfs.EnsureDefault()

	h, ok := bindings.New()
	if !ok {
		g.unretain()
		return nil, errors.OutOfMemory()
	}

	Logger().Debug("context created")
	return &Context{h: h, guard: g}, nil
}

func (c *Context) configurable() error {
	switch c.st {
	case stateActive:
		return nil
	case stateRelocated:
		return errors.Misuse(errors.PhaseConfigure, "context was relocated")
	case stateEmitted:
		return errors.Misuse(errors.PhaseConfigure, "context already emitted output")
	default:
		return errors.Closed(errors.PhaseConfigure, "context")
	}
}

// SetOutputKind selects what compilation produces. It may be called once,
// before the first compile; the native layer does not support re-setting the
// output type on a live handle.
func (c *Context) SetOutputKind(kind OutputKind) error {
	if err := c.configurable(); err != nil {
		return err
	}
	if c.kindSet {
		return errors.Misuse(errors.PhaseConfigure, "output kind already set to %s", c.kind)
	}
	if c.last != compileNone {
		return errors.Misuse(errors.PhaseConfigure, "output kind must be set before compiling")
	}
	if ret := c.h.SetOutputType(int(kind)); ret != 0 {
		return errors.Misuse(errors.PhaseConfigure, "native layer rejected output kind %s", kind)
	}
	c.kind = kind
	c.kindSet = true
	return nil
}

// SetErrorFunc registers fn to receive diagnostic lines, one call per
// message, during subsequent compilations. A second registration replaces
// the first; a nil fn removes it. The registration lives as long as the
// native handle.
func (c *Context) SetErrorFunc(fn func(msg string)) error {
	if err := c.configurable(); err != nil {
		return err
	}
	if fn == nil {
		c.h.ClearErrorFunc()
		return nil
	}
	c.h.SetErrorFunc(fn)
	return nil
}

// SetLibPath overrides the compiler's runtime library directory.
func (c *Context) SetLibPath(path string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	c.h.SetLibPath(path)
	return nil
}

// SetOptions applies a command-line-style option string. Cumulative across
// calls.
func (c *Context) SetOptions(opts string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	c.h.SetOptions(opts)
	return nil
}

// AddIncludePath appends to the include search path. Paths are searched in
// insertion order.
func (c *Context) AddIncludePath(path string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	// The native call cannot fail; a nonzero return would be a broken build.
	c.h.AddIncludePath(path)
	return nil
}

// AddSysIncludePath appends to the system include search path.
func (c *Context) AddSysIncludePath(path string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	c.h.AddSysIncludePath(path)
	return nil
}

// AddLibraryPath appends to the library search path (the -L option).
func (c *Context) AddLibraryPath(path string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	c.h.AddLibraryPath(path)
	return nil
}

// DefineSymbol defines a preprocessor symbol. A later definition of the same
// name overrides the earlier one.
func (c *Context) DefineSymbol(name, value string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	c.h.DefineSymbol(name, value)
	return nil
}

// UndefineSymbol removes a preprocessor symbol.
func (c *Context) UndefineSymbol(name string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	c.h.UndefineSymbol(name)
	return nil
}

// AddLibrary resolves and links a named library (the -l option) through the
// configured library search paths.
func (c *Context) AddLibrary(name string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	if ret := c.h.AddLibrary(name); ret != 0 {
		return errors.LinkFailed(name)
	}
	return nil
}

// AddSymbol injects a resolvable symbol at a fixed address, letting compiled
// code call back into host-provided functions. The caller guarantees the
// address stays valid for the lifetime of anything compiled against it and
// that signatures match at every use site.
func (c *Context) AddSymbol(name string, addr unsafe.Pointer) error {
	if err := c.configurable(); err != nil {
		return err
	}
	if ret := c.h.AddSymbol(name, addr); ret != 0 {
		return errors.LinkFailed(name)
	}
	return nil
}

// CompileString translates C source text. On failure every diagnostic has
// already been delivered to the registered callback; the returned error
// carries no message text. The context stays configurable, so symbols can be
// adjusted and compilation retried, until it is relocated or emitted.
func (c *Context) CompileString(src string) error {
	return c.compile(func() int { return c.h.CompileString(src) }, "<string>")
}

// AddFile compiles or links a file: C source, object, archive, shared
// library, or linker script.
func (c *Context) AddFile(path string) error {
	return c.compile(func() int { return c.h.AddFile(path) }, path)
}

func (c *Context) compile(run func() int, what string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	if !c.kindSet {
		// Native default: in-memory output.
		if err := c.SetOutputKind(Memory); err != nil {
			return err
		}
	}

	if ret := run(); ret != 0 {
		c.last = compileErr
		Logger().Debug("compile failed", zap.String("input", what))
		return errors.CompileFailed()
	}
	c.last = compileOK
	Logger().Debug("compile ok", zap.String("input", what))
	return nil
}

// OutputFile writes the compiled executable, shared library, or object file.
// Valid only after a successful compile with a file-producing output kind.
func (c *Context) OutputFile(path string) error {
	if err := c.configurable(); err != nil {
		return err
	}
	if c.last != compileOK {
		return errors.Misuse(errors.PhaseEmit, "no successful compilation to emit")
	}
	if !c.kind.emitsFile() {
		return errors.Misuse(errors.PhaseEmit, "output kind %s does not produce a file", c.kind)
	}

	if ret := c.h.OutputFile(path); ret != 0 {
		return errors.IO(errors.PhaseEmit, path, nil)
	}
	c.st = stateEmitted
	return nil
}

// Relocate turns the compiled in-memory output into an executable image and
// returns it. The image takes over the native handle: the context can no
// longer compile, and the image's Close releases both the handle and the
// code buffer. Valid only after a successful compile with the Memory kind.
func (c *Context) Relocate() (*Relocated, error) {
	if err := c.configurable(); err != nil {
		return nil, err
	}
	if c.last != compileOK {
		return nil, errors.Misuse(errors.PhaseRelocate, "no successful compilation to relocate")
	}
	if c.kind != Memory {
		return nil, errors.Misuse(errors.PhaseRelocate, "output kind %s is not relocatable", c.kind)
	}

	size := c.h.RelocateSize()
	if size < 0 {
		return nil, errors.RelocateFailed("size query failed")
	}
	if size == 0 {
		return nil, errors.RelocateFailed("relocated image is empty")
	}

	buf := bindings.AllocBuffer(size)
	if buf == nil {
		return nil, errors.New(errors.PhaseRelocate, errors.KindOutOfMemory).
			Detail("allocating %d byte image", size).
			Build()
	}
	if ret := c.h.Relocate(buf); ret != 0 {
		bindings.FreeBuffer(buf)
		return nil, errors.RelocateFailed("fill phase failed")
	}

	// Ownership of the handle and the guard reference moves to the image.
	r := &Relocated{h: c.h, buf: buf, size: size, guard: c.guard}
	c.st = stateRelocated
	c.guard = nil
	Logger().Debug("relocated", zap.Int("bytes", size))
	return r, nil
}

// Close releases the native handle. Idempotent. After Relocate the handle
// belongs to the image and Close only retires the context.
func (c *Context) Close() error {
	switch c.st {
	case stateClosed:
		return nil
	case stateRelocated:
		c.st = stateClosed
		return nil
	default:
		c.st = stateClosed
		c.h.Delete()
		c.guard.unretain()
		c.guard = nil
		return nil
	}
}
