package vfs

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/tcc-runtime/errors"
)

type closeCounter struct {
	MemoryBackend
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}

func newCloseCounter() *closeCounter {
	return &closeCounter{MemoryBackend: *NewStaticBackend(nil)}
}

func TestTable_InsertGetRemove(t *testing.T) {
	tab := NewTable(0)

	b := NewStaticBackend([]byte("x"))
	fd, err := tab.Insert(b)
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if fd <= 0 {
		t.Fatalf("expected positive handle, got %d", fd)
	}

	got, ok := tab.Get(fd)
	if !ok || got != Backend(b) {
		t.Fatal("Get did not return the inserted backend")
	}

	if _, ok := tab.Remove(fd); !ok {
		t.Fatal("Remove failed")
	}
	if _, ok := tab.Get(fd); ok {
		t.Fatal("Get after Remove should miss")
	}
	if _, ok := tab.Remove(fd); ok {
		t.Fatal("second Remove should miss")
	}
}

func TestTable_HandlesUniqueWhileLive(t *testing.T) {
	tab := NewTable(0)

	seen := make(map[int]bool)
	for i := 0; i < 32; i++ {
		fd, err := tab.Insert(NewStaticBackend(nil))
		if err != nil {
			t.Fatalf("Insert %d failed: %v", i, err)
		}
		if seen[fd] {
			t.Fatalf("handle %d issued twice while live", fd)
		}
		seen[fd] = true
	}
	if tab.Len() != 32 {
		t.Fatalf("Len = %d, want 32", tab.Len())
	}
}

func TestTable_FreedSlotsReused(t *testing.T) {
	tab := NewTable(0)

	a, _ := tab.Insert(NewStaticBackend(nil))
	b, _ := tab.Insert(NewStaticBackend(nil))

	tab.Remove(b)
	c, err := tab.Insert(NewStaticBackend(nil))
	if err != nil {
		t.Fatalf("Insert failed: %v", err)
	}
	if c != b {
		t.Fatalf("expected freed handle %d to be reused, got %d", b, c)
	}
	if c == a {
		t.Fatal("reused handle collided with a live one")
	}
}

func TestTable_Exhaustion(t *testing.T) {
	tab := NewTable(2)

	first, _ := tab.Insert(NewStaticBackend(nil))
	tab.Insert(NewStaticBackend(nil))

	_, err := tab.Insert(NewStaticBackend(nil))
	if err == nil {
		t.Fatal("expected exhaustion error")
	}
	if !stderrors.Is(err, errors.New(errors.PhaseVFS, errors.KindHandleExhausted).Build()) {
		t.Fatalf("wrong error: %v", err)
	}

	// Freeing a slot makes room again.
	tab.Remove(first)
	if _, err := tab.Insert(NewStaticBackend(nil)); err != nil {
		t.Fatalf("Insert after Remove failed: %v", err)
	}
}

func TestTable_CloseClosesLiveBackends(t *testing.T) {
	tab := NewTable(0)

	a := newCloseCounter()
	b := newCloseCounter()
	fdA, _ := tab.Insert(a)
	tab.Insert(b)

	// Removed entries are the caller's to close, not the table's.
	tab.Remove(fdA)

	if err := tab.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if a.closes != 0 {
		t.Fatal("table closed a removed backend")
	}
	if b.closes != 1 {
		t.Fatalf("live backend closed %d times, want 1", b.closes)
	}

	if _, err := tab.Insert(NewStaticBackend(nil)); err == nil {
		t.Fatal("Insert after Close should fail")
	}
}
