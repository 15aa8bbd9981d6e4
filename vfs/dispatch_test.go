package vfs

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/wippyai/tcc-runtime/assets"
)

func testDispatcher(t *testing.T, max int) *Dispatcher {
	t.Helper()

	fsys := fstest.MapFS{
		"include/embedded.h":  {Data: []byte("#define EMBEDDED 1\n")},
		"include/sub/inner.h": {Data: []byte("#define INNER 1\n")},
		"lib/libtcc1.a":       {Data: []byte("!<arch>\n")},
	}
	headers, err := assets.NewIndex(fsys, "include")
	if err != nil {
		t.Fatal(err)
	}
	libs, err := assets.NewIndex(fsys, "lib")
	if err != nil {
		t.Fatal(err)
	}

	return NewDispatcher(Config{
		MaxHandles: max,
		Headers:    headers,
		Libraries:  libs,
	})
}

func TestDispatcher_OpenVirtualHeader(t *testing.T) {
	d := testDispatcher(t, 0)

	fd := d.Open("/vfs/headers/embedded.h", 0)
	if fd <= 0 {
		t.Fatalf("Open virtual header = %d, want positive handle", fd)
	}

	p := make([]byte, 64)
	n := d.Read(fd, p)
	if n <= 0 || string(p[:n]) != "#define EMBEDDED 1\n" {
		t.Fatalf("Read = (%d, %q)", n, p[:n])
	}

	if rc := d.Close(fd); rc != 0 {
		t.Fatalf("Close = %d, want 0", rc)
	}
	if rc := d.Close(fd); rc != -1 {
		t.Fatalf("double Close = %d, want -1", rc)
	}
}

func TestDispatcher_OpenVirtualNested(t *testing.T) {
	d := testDispatcher(t, 0)

	fd := d.Open("/vfs/headers/sub/inner.h", 0)
	if fd <= 0 {
		t.Fatalf("nested virtual open = %d", fd)
	}
	d.Close(fd)

	fd = d.Open("/vfs/libraries/libtcc1.a", 0)
	if fd <= 0 {
		t.Fatalf("virtual library open = %d", fd)
	}
	d.Close(fd)
}

func TestDispatcher_VirtualMissFallsThrough(t *testing.T) {
	d := testDispatcher(t, 0)

	// An index miss is retried against the real filesystem; with no real
	// /vfs tree present the open fails without leaking a handle.
	if fd := d.Open("/vfs/headers/definitely-absent.h", 0); fd != -1 {
		t.Fatalf("virtual miss = %d, want -1", fd)
	}
	if d.Table().Len() != 0 {
		t.Fatal("miss leaked a handle")
	}

	// The index takes precedence over the disk for the same virtual path.
	fd := d.Open("/vfs/headers/embedded.h", os.O_RDONLY)
	if fd <= 0 {
		t.Fatalf("embedded open = %d", fd)
	}
	p := make([]byte, 64)
	n := d.Read(fd, p)
	if string(p[:n]) != "#define EMBEDDED 1\n" {
		t.Fatalf("embedded content lost: %q", p[:n])
	}
	d.Close(fd)
}

func TestDispatcher_PassthroughToRealFilesystem(t *testing.T) {
	d := testDispatcher(t, 0)

	path := filepath.Join(t.TempDir(), "src.c")
	if err := os.WriteFile(path, []byte("int x;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fd := d.Open(path, os.O_RDONLY)
	if fd <= 0 {
		t.Fatalf("passthrough open = %d", fd)
	}

	if pos := d.Seek(fd, 4, seekSet); pos != 4 {
		t.Fatalf("Seek = %d, want 4", pos)
	}
	p := make([]byte, 2)
	if n := d.Read(fd, p); n != 2 || string(p) != "x;" {
		t.Fatalf("Read = (%d, %q)", n, p)
	}
	if rc := d.Close(fd); rc != 0 {
		t.Fatalf("Close = %d", rc)
	}

	if fd := d.Open(filepath.Join(t.TempDir(), "absent.c"), os.O_RDONLY); fd != -1 {
		t.Fatalf("open of missing file = %d, want -1", fd)
	}
}

func TestDispatcher_SeekWhenceTranslation(t *testing.T) {
	d := testDispatcher(t, 0)

	fd := d.Open("/vfs/headers/embedded.h", 0)
	if fd <= 0 {
		t.Fatal("open failed")
	}
	defer d.Close(fd)

	if pos := d.Seek(fd, 0, seekEnd); pos != int64(len("#define EMBEDDED 1\n")) {
		t.Fatalf("Seek end = %d", pos)
	}
	if pos := d.Seek(fd, -1, seekCur); pos != int64(len("#define EMBEDDED 1\n"))-1 {
		t.Fatalf("Seek cur = %d", pos)
	}
	if pos := d.Seek(fd, 0, 99); pos != -1 {
		t.Fatalf("bad whence = %d, want -1", pos)
	}
}

func TestDispatcher_UnknownHandle(t *testing.T) {
	d := testDispatcher(t, 0)

	if n := d.Read(41, make([]byte, 4)); n != -1 {
		t.Fatalf("Read unknown = %d", n)
	}
	if pos := d.Seek(41, 0, seekSet); pos != -1 {
		t.Fatalf("Seek unknown = %d", pos)
	}
	if rc := d.Close(41); rc != -1 {
		t.Fatalf("Close unknown = %d", rc)
	}
}

func TestDispatcher_HandleExhaustion(t *testing.T) {
	d := testDispatcher(t, 2)

	a := d.Open("/vfs/headers/embedded.h", 0)
	b := d.Open("/vfs/headers/embedded.h", 0)
	if a <= 0 || b <= 0 || a == b {
		t.Fatalf("setup opens = %d, %d", a, b)
	}

	if fd := d.Open("/vfs/headers/embedded.h", 0); fd != -1 {
		t.Fatalf("open past limit = %d, want -1", fd)
	}

	d.Close(a)
	if fd := d.Open("/vfs/headers/embedded.h", 0); fd <= 0 {
		t.Fatalf("open after close = %d", fd)
	}
}

func TestDispatcher_IndependentCursors(t *testing.T) {
	d := testDispatcher(t, 0)

	a := d.Open("/vfs/headers/embedded.h", 0)
	b := d.Open("/vfs/headers/embedded.h", 0)
	defer d.Close(a)
	defer d.Close(b)

	d.Seek(a, 8, seekSet)
	p := make([]byte, 7)
	if n := d.Read(b, p); n != 7 || string(p) != "#define" {
		t.Fatalf("second handle disturbed by first: (%d, %q)", n, p)
	}
}
