// Package driver defines the boundary between the vkguard object model and
// the native graphics API.
//
// # Overview
//
// The object model (vkguard, pipeline, command) never talks to the native
// API directly. It talks to a Driver, which exposes the small set of
// fallible create operations, matching destroy operations, and command
// recording calls the core needs. Two implementations ship with the module:
//
//   - driver/vulkan: the real backend over github.com/goki/vulkan
//   - driver/null: a pure-Go in-memory backend for tests and headless use
//
// Drivers register themselves via Register() from an init function and are
// selected by name with Get() or by priority with Default().
//
// # Handles
//
// All native resources are referred to by opaque uint64 handles. Each
// driver maintains its own mapping from handles to backend objects; the
// object model only stores and forwards them. The zero value of every
// handle type is null. A handle must be destroyed exactly once — the
// refcounted wrappers in the vkguard package enforce this.
//
// # Errors
//
// Fallible driver operations return a Result wrapped as an error. Result
// codes mirror the native API's status codes so callers can match on a
// specific failure with errors.Is (for example ErrOutOfDeviceMemory).
package driver
