package driver

import (
	"errors"
	"fmt"
)

// Common driver errors.
var (
	// ErrDriverNotAvailable is returned when a requested driver is not
	// registered or cannot initialize on this system.
	ErrDriverNotAvailable = errors.New("driver: not available")

	// ErrNullHandle is returned when an operation receives a null handle.
	ErrNullHandle = errors.New("driver: null handle")

	// ErrUnknownHandle is returned when an operation receives a handle the
	// driver did not issue or has already destroyed.
	ErrUnknownHandle = errors.New("driver: unknown handle")
)

// Result is a native API status code surfaced as an error. Values mirror
// VkResult, so only failure codes (negative values) are ever returned as
// errors; success codes never reach callers.
type Result int32

// Native failure codes.
const (
	ResultOutOfHostMemory      Result = -1
	ResultOutOfDeviceMemory    Result = -2
	ResultInitializationFailed Result = -3
	ResultDeviceLost           Result = -4
	ResultMemoryMapFailed      Result = -5
	ResultInvalidShader        Result = -1000012000
)

// Error implements the error interface.
func (r Result) Error() string {
	switch r {
	case ResultOutOfHostMemory:
		return "driver: out of host memory"
	case ResultOutOfDeviceMemory:
		return "driver: out of device memory"
	case ResultInitializationFailed:
		return "driver: initialization failed"
	case ResultDeviceLost:
		return "driver: device lost"
	case ResultMemoryMapFailed:
		return "driver: memory map failed"
	case ResultInvalidShader:
		return "driver: invalid shader"
	default:
		return fmt.Sprintf("driver: native error %d", int32(r))
	}
}

// Convenience sentinels for errors.Is matching on the common failures.
var (
	ErrOutOfHostMemory   error = ResultOutOfHostMemory
	ErrOutOfDeviceMemory error = ResultOutOfDeviceMemory
	ErrDeviceLost        error = ResultDeviceLost
	ErrInvalidShader     error = ResultInvalidShader
)
