package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrCapacityTooLarge  = errors.New("capacity exceeds the handle index range")
	ErrPlatformNotReady  = errors.New("platform window not created")
	ErrAssetNotFound     = errors.New("asset not found")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnknown           = errors.New("unknown")
)

// AssertionError is the panic value of a failed Assert.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("assertion failed: %s", e.Message)
}
