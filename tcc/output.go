package tcc

import "github.com/wippyai/tcc-runtime/errors"

// OutputKind selects what a compilation produces. The values are the native
// compiler's output-type codes.
type OutputKind int

const (
	// Memory keeps the result in process for relocation and symbol lookup.
	Memory OutputKind = 1
	// Exe emits an executable file.
	Exe OutputKind = 2
	// DLL emits a shared library.
	DLL OutputKind = 3
	// Obj emits an object file.
	Obj OutputKind = 4
	// Preprocess runs the preprocessor only.
	Preprocess OutputKind = 5
)

func (k OutputKind) String() string {
	switch k {
	case Memory:
		return "memory"
	case Exe:
		return "exe"
	case DLL:
		return "dll"
	case Obj:
		return "obj"
	case Preprocess:
		return "preprocess"
	default:
		return "unknown"
	}
}

// emitsFile reports whether the kind produces an output file.
func (k OutputKind) emitsFile() bool {
	return k == Exe || k == DLL || k == Obj
}

// ParseOutputKind maps a kind name to its OutputKind.
func ParseOutputKind(s string) (OutputKind, error) {
	switch s {
	case "memory":
		return Memory, nil
	case "exe":
		return Exe, nil
	case "dll":
		return DLL, nil
	case "obj":
		return Obj, nil
	case "preprocess":
		return Preprocess, nil
	default:
		return 0, errors.InvalidInput(errors.PhaseConfigure, "unknown output kind %q", s)
	}
}
