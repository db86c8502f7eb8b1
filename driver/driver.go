package driver

// Driver is the interface every backend implements. It covers exactly the
// native surface the object model consumes: fallible create operations
// paired with destroy operations that must be called exactly once per live
// handle, command buffer lifecycle calls, and command recording calls.
//
// Recording calls (Cmd*) have no local error condition: the native API
// defers error detection to EndCommandBuffer or submission, and this
// module preserves that contract. Callers must hold the owning command
// pool's lock for the duration of every call that touches a command
// buffer; the command package does this.
type Driver interface {
	// Name returns the driver identifier (e.g. "vulkan", "null").
	Name() string

	// Resource factories.

	CreateShaderModule(dev Device, info ShaderModuleCreateInfo) (ShaderModule, error)
	DestroyShaderModule(dev Device, sm ShaderModule)

	CreateRenderPass(dev Device, info RenderPassCreateInfo) (RenderPass, error)
	DestroyRenderPass(dev Device, rp RenderPass)

	CreateFramebuffer(dev Device, info FramebufferCreateInfo) (Framebuffer, error)
	DestroyFramebuffer(dev Device, fb Framebuffer)

	CreateDescriptorSetLayout(dev Device, info DescriptorSetLayoutCreateInfo) (DescriptorSetLayout, error)
	DestroyDescriptorSetLayout(dev Device, dsl DescriptorSetLayout)

	CreatePipelineLayout(dev Device, info PipelineLayoutCreateInfo) (PipelineLayout, error)
	DestroyPipelineLayout(dev Device, pl PipelineLayout)

	CreateGraphicsPipeline(dev Device, cache PipelineCache, info GraphicsPipelineCreateInfo) (Pipeline, error)
	DestroyPipeline(dev Device, p Pipeline)

	CreatePipelineCache(dev Device, info PipelineCacheCreateInfo) (PipelineCache, error)
	DestroyPipelineCache(dev Device, pc PipelineCache)
	PipelineCacheData(dev Device, pc PipelineCache) ([]byte, error)
	MergePipelineCaches(dev Device, dst PipelineCache, srcs []PipelineCache) error

	// Command pool and buffer lifecycle.

	CreateCommandPool(dev Device, info CommandPoolCreateInfo) (CommandPool, error)
	DestroyCommandPool(dev Device, pool CommandPool)
	ResetCommandPool(dev Device, pool CommandPool) error
	AllocateCommandBuffers(dev Device, pool CommandPool, level CommandBufferLevel, count int) ([]CommandBuffer, error)
	FreeCommandBuffers(dev Device, pool CommandPool, bufs []CommandBuffer)

	BeginCommandBuffer(cb CommandBuffer, info CommandBufferBeginInfo) error
	EndCommandBuffer(cb CommandBuffer) error
	ResetCommandBuffer(cb CommandBuffer) error

	// Command recording.

	CmdBeginRenderPass(cb CommandBuffer, info RenderPassBeginInfo, contents SubpassContents)
	CmdNextSubpass(cb CommandBuffer, contents SubpassContents)
	CmdEndRenderPass(cb CommandBuffer)

	CmdBindPipeline(cb CommandBuffer, point PipelineBindPoint, p Pipeline)
	CmdBindDescriptorSets(cb CommandBuffer, point PipelineBindPoint, layout PipelineLayout, firstSet uint32, sets []DescriptorSet, dynamicOffsets []uint32)
	CmdPushConstants(cb CommandBuffer, layout PipelineLayout, stages ShaderStageFlags, offset uint32, data []byte)
	CmdSetViewport(cb CommandBuffer, first uint32, viewports []Viewport)
	CmdSetScissor(cb CommandBuffer, first uint32, scissors []Rect2D)
	CmdBindVertexBuffers(cb CommandBuffer, firstBinding uint32, buffers []Buffer, offsets []DeviceSize)
	CmdBindIndexBuffer(cb CommandBuffer, buf Buffer, offset DeviceSize, indexType IndexType)
	CmdDraw(cb CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32)
	CmdDrawIndexed(cb CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	CmdPipelineBarrier(cb CommandBuffer, src, dst PipelineStageFlags, barriers []MemoryBarrier)
	CmdCopyBuffer(cb CommandBuffer, src, dst Buffer, regions []BufferCopy)
}
