package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestError_Rendering(t *testing.T) {
	err := New(PhaseLink, KindLinkFailed).
		Path("/usr/lib").
		Symbol("m").
		Detail("library not found").
		Build()

	msg := err.Error()
	for _, want := range []string{"[link]", "link_failed", "/usr/lib", "symbol m", "library not found"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("Error() = %q, missing %q", msg, want)
		}
	}
}

func TestError_CauseChain(t *testing.T) {
	cause := stderrors.New("disk full")
	err := IO(PhaseEmit, "/tmp/a.out", cause)

	if !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("cause not rendered: %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause through Unwrap")
	}
}

func TestError_IsMatchesPhaseAndKind(t *testing.T) {
	err := RelocateFailed("size query failed")

	if !stderrors.Is(err, New(PhaseRelocate, KindRelocateFailed).Build()) {
		t.Fatal("expected match on same phase+kind")
	}
	if stderrors.Is(err, New(PhaseCompile, KindRelocateFailed).Build()) {
		t.Fatal("unexpected match on different phase")
	}
	if stderrors.Is(err, New(PhaseRelocate, KindIO).Build()) {
		t.Fatal("unexpected match on different kind")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"OutOfMemory", OutOfMemory(), PhaseCreate, KindOutOfMemory},
		{"GuardUnavailable", GuardUnavailable(), PhaseGuard, KindGuardUnavailable},
		{"Misuse", Misuse(PhaseConfigure, "already compiled"), PhaseConfigure, KindMisuse},
		{"CompileFailed", CompileFailed(), PhaseCompile, KindCompileFailed},
		{"LinkFailed", LinkFailed("add"), PhaseLink, KindLinkFailed},
		{"HandleExhausted", HandleExhausted(1024), PhaseVFS, KindHandleExhausted},
		{"Closed", Closed(PhaseRun, "relocated image"), PhaseRun, KindClosed},
	}

	for _, tt := range tests {
		if tt.err.Phase != tt.phase || tt.err.Kind != tt.kind {
			t.Fatalf("%s: got phase=%s kind=%s, want phase=%s kind=%s",
				tt.name, tt.err.Phase, tt.err.Kind, tt.phase, tt.kind)
		}
	}
}

func TestHandleExhausted_Detail(t *testing.T) {
	err := HandleExhausted(64)
	if !strings.Contains(err.Error(), "64") {
		t.Fatalf("expected limit in message, got %q", err.Error())
	}
}
