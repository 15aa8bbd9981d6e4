package bindings

import "C"

import "unsafe"

// tccErrorTrampoline is the non-capturing function pointer handed to
// tcc_set_error_func. opaque is the registration token; msg is the
// null-terminated diagnostic line.
//
//export tccErrorTrampoline
func tccErrorTrampoline(opaque unsafe.Pointer, msg *C.char) {
	fn := lookupCallback(opaque)
	if fn != nil {
		fn(C.GoString(msg))
	}
}
