package bindings

/*
#include <sys/types.h>
*/
import "C"

import "unsafe"

// The four entry points below carry the exact POSIX signatures the patched
// compiler build links against. They must never panic into C, so a missing
// hook set degrades to the POSIX failure convention.

//export tcc_vfs_open
func tcc_vfs_open(path *C.char, oflag C.int) C.int {
	h := hooks()
	if h.Open == nil {
		return -1
	}
	return C.int(h.Open(C.GoString(path), int(oflag)))
}

//export tcc_vfs_read
func tcc_vfs_read(fd C.int, buf unsafe.Pointer, count C.size_t) C.ssize_t {
	h := hooks()
	if h.Read == nil || buf == nil {
		return -1
	}
	p := unsafe.Slice((*byte)(buf), int(count))
	return C.ssize_t(h.Read(int(fd), p))
}

//export tcc_vfs_lseek
func tcc_vfs_lseek(fd C.int, offset C.off_t, whence C.int) C.off_t {
	h := hooks()
	if h.Seek == nil {
		return -1
	}
	return C.off_t(h.Seek(int(fd), int64(offset), int(whence)))
}

//export tcc_vfs_close
func tcc_vfs_close(fd C.int) C.int {
	h := hooks()
	if h.Close == nil {
		return -1
	}
	return C.int(h.Close(int(fd)))
}
