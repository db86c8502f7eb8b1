package driver

// Opaque resource handles.
//
// These identify native objects owned by a driver. Each driver maintains
// the mapping between handles and actual backend objects. Handles are
// uint64 to accommodate both pointer-sized dispatchable objects and
// 64-bit non-dispatchable objects.

// Device is an opaque handle to a logical device.
type Device uint64

// ShaderModule is an opaque handle to a compiled shader module.
type ShaderModule uint64

// RenderPass is an opaque handle to a render pass.
type RenderPass uint64

// Framebuffer is an opaque handle to a framebuffer.
type Framebuffer uint64

// ImageView is an opaque handle to an image view, used as a framebuffer
// attachment. Image creation is outside this module's scope; callers
// obtain views from their own plumbing and register them with the driver.
type ImageView uint64

// DescriptorSetLayout is an opaque handle to a descriptor set layout.
type DescriptorSetLayout uint64

// DescriptorSet is an opaque handle to an allocated descriptor set.
type DescriptorSet uint64

// PipelineLayout is an opaque handle to a pipeline layout.
type PipelineLayout uint64

// Pipeline is an opaque handle to a compiled pipeline.
type Pipeline uint64

// PipelineCache is an opaque handle to a pipeline cache.
type PipelineCache uint64

// CommandPool is an opaque handle to a command pool.
type CommandPool uint64

// CommandBuffer is an opaque handle to a command buffer.
type CommandBuffer uint64

// Buffer is an opaque handle to a device buffer. Allocation and memory
// binding are outside this module's scope.
type Buffer uint64

// Fence is an opaque handle to a fence, carried as submission metadata.
type Fence uint64

// Null is the zero handle value, representing no resource.
const Null = 0

// DeviceSize is a device memory size or offset in bytes.
type DeviceSize = uint64
