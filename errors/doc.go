// Package errors provides structured error types for the tcc-runtime library.
//
// Errors are categorized by Phase (which stage of the compilation lifecycle
// failed) and Kind (error category). The Error type carries the context a
// caller needs to act on the failure: the path or symbol involved, an option
// string, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseLink, errors.KindLinkFailed).
//		Path("/usr/lib").
//		Symbol("m").
//		Detail("library not found").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.CompileFailed()
//	err := errors.GuardUnavailable()
//
// All errors implement the standard error interface and support errors.Is/As.
// errors.Is matches on the Phase and Kind pair, so sentinel comparisons like
//
//	errors.Is(err, errors.New(errors.PhaseRelocate, errors.KindRelocateFailed).Build())
//
// work without inspecting message text. Compiler diagnostics themselves are
// never embedded in errors; they are delivered through the error callback
// registered on the compilation context.
package errors
