// Package pipeline builds and owns compiled graphics pipelines.
//
// # Overview
//
// A pipeline is assembled from three ingredient kinds:
//
//   - fixed-function state descriptors: small immutable value objects
//     (vertex input, input assembly, tessellation, viewport,
//     rasterization, multisample, depth/stencil, color blend), each with
//     a chained builder over defaulted fields
//   - a Layout combining descriptor set layouts and push constant ranges
//   - shader stages, at most one per stage type
//
// The Builder validates structural constraints before creation (duplicate
// stage types, missing vertex stage, subpass index out of range) and
// returns errors rather than aborting — programming mistakes are
// recoverable here.
//
// # Ownership
//
// A built Pipeline retains its layout, its render pass (if any), and every
// stage's shader module for its entire lifetime. The native API permits
// destroying shader modules right after pipeline creation; this package
// deliberately keeps the stricter invariant, trading a small memory cost
// for eliminating a class of dangling-reference bugs. On the last Release
// the native pipeline handle is destroyed first and the held references
// are dropped after it, so a dependency can never die before the pipeline
// that uses it.
//
// Pipeline derivatives (parent/child pipelines) are unsupported:
// cross-referencing pipelines under construction would need cycle-free
// graph machinery disproportionate to the optimization's benefit.
package pipeline
