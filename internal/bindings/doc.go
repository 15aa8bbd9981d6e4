// Package bindings is the cgo boundary to the embedded libtcc compiler.
//
// The C API is declared directly in the cgo preamble rather than through
// libtcc.h, so building the module needs only the library itself. The bundled
// libtcc is expected to be patched so its internal file I/O goes through the
// exported tcc_vfs_open/tcc_vfs_read/tcc_vfs_lseek/tcc_vfs_close entry points
// instead of the raw syscalls; those entry points forward to the hook set
// registered with RegisterVFS.
//
// Everything here is mechanical marshaling. Lifecycle rules, state checking,
// and error taxonomy live in the tcc package; this package only surfaces raw
// native status codes and addresses.
package bindings
