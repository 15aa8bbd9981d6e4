package assets

import "embed"

// The include/ tree carries the freestanding headers the compiler itself
// provides; lib/ is populated by packaging with the runtime archives for the
// selected target.
//
//go:embed all:include all:lib
var embedded embed.FS
