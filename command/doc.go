// Package command manages command pools and command buffers and enforces
// the recording rules the native API only documents.
//
// Every command buffer moves through explicit phases: Initial, Recording,
// Executable, Pending and Invalid. Operations are rejected with an error
// when the buffer is in the wrong phase, instead of corrupting native state.
//
// Render pass scoping is encoded in the type system. Begin returns a
// *Recording, which only exposes the operations legal outside a render
// pass plus the operations legal in either scope. BeginRenderPass returns
// a *RenderPassRecording, which only exposes draw calls, subpass control
// and the either-scope operations. Misplaced calls therefore fail to
// compile; the few ways to defeat this statically (keeping a stale handle
// after End) are caught dynamically.
//
// All operations on buffers from the same pool serialize on the pool's
// lock, matching the native requirement that a pool is externally
// synchronized.
package command
