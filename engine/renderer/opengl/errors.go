package opengl

import (
	"fmt"

	"github.com/spaghettifunk/phoenix/engine/core"
)

func glErr(f Functions) error {
	if st := f.GetError(); st != NO_ERROR {
		return fmt.Errorf("glGetError: %#x", uint32(st))
	}
	return nil
}

// checkGLError asserts that the driver reported no error since the last check.
// Release builds skip the query entirely.
func checkGLError(f Functions, op string) {
	if !core.DebugChecks() {
		return
	}
	if err := glErr(f); err != nil {
		core.Assert(false, "%s: %s", op, err.Error())
	}
}
