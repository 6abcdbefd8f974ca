package core

import "fmt"

// DebugChecks reports whether precondition checks are compiled in.
// Build with `-tags release` to strip them.
func DebugChecks() bool {
	return debugChecks
}

// Assert panics with an *AssertionError when cond is false. It is a no-op in
// release builds, where the caller is responsible for the precondition.
func Assert(cond bool, msg string, args ...interface{}) {
	if !debugChecks || cond {
		return
	}
	err := &AssertionError{Message: fmt.Sprintf(msg, args...)}
	LogError("%s", err.Error())
	panic(err)
}
