package utils

import (
	"fmt"
	"runtime/debug"
)

// Recover turns a panic into an error tagged with component, the name of
// the call site that panicked, and writes it into *errp. It exists to
// guard caller-supplied callbacks — such as a goscp.Observer hook — that
// must never be allowed to unwind across the engine's state machines as a
// raw panic.
//
// Recover must be deferred directly (defer Recover("x", &err)), not
// wrapped in another closure: recover() only stops a panic when called
// from the function defer invoked, and wrapping it would put that call
// one frame too deep.
func Recover(component string, errp *error) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("%s: recovered from panic: %v\n%s", component, r, debug.Stack())
	}
}
