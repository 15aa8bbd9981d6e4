package tcc

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/tcc-runtime/errors"
)

func TestGuard_Exclusivity(t *testing.T) {
	g, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if _, err := Acquire(); err == nil {
		t.Fatal("second Acquire should fail while the first guard is live")
	} else if !stderrors.Is(err, errors.GuardUnavailable()) {
		t.Fatalf("wrong error: %v", err)
	}

	if err := g.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	g2, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire after Release failed: %v", err)
	}
	g2.Release()
}

func TestGuard_ReleaseIdempotent(t *testing.T) {
	g, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if err := g.Release(); err != nil {
		t.Fatalf("second Release should be a no-op, got %v", err)
	}
}

func TestGuard_ReleasedGuardRejectsContexts(t *testing.T) {
	g, err := Acquire()
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	g.Release()

	if _, err := NewContext(g); err == nil {
		t.Fatal("NewContext under a released guard should fail")
	}
}

func TestScoped_ReleasesOnError(t *testing.T) {
	sentinel := stderrors.New("boom")
	if err := Scoped(func(s *Scope) error { return sentinel }); !stderrors.Is(err, sentinel) {
		t.Fatalf("Scoped returned %v, want sentinel", err)
	}

	// The guard must be free again after the failed scope.
	g, err := Acquire()
	if err != nil {
		t.Fatalf("guard still held after failed scope: %v", err)
	}
	g.Release()
}
