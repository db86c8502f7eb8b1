package driver

// Value structs exchanged with drivers. These are plain data mirroring the
// native API's structures; defaults are applied by the builders in the
// pipeline package, not here.

// Offset2D is a signed 2D offset in pixels.
type Offset2D struct {
	X, Y int32
}

// Extent2D is an unsigned 2D extent in pixels.
type Extent2D struct {
	Width, Height uint32
}

// Rect2D is a rectangle given by offset and extent.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// Viewport is a viewport transformation.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

// ClearValue is the clear value for one attachment. Color is used for
// color attachments, Depth/Stencil for depth/stencil attachments; the
// render pass's attachment formats decide which half applies.
type ClearValue struct {
	Color   [4]float32
	Depth   float32
	Stencil uint32
}

// ClearColor returns a ClearValue for a color attachment.
func ClearColor(r, g, b, a float32) ClearValue {
	return ClearValue{Color: [4]float32{r, g, b, a}}
}

// ClearDepthStencil returns a ClearValue for a depth/stencil attachment.
func ClearDepthStencil(depth float32, stencil uint32) ClearValue {
	return ClearValue{Depth: depth, Stencil: stencil}
}

// PushConstantRange describes a push constant range in a pipeline layout.
type PushConstantRange struct {
	StageFlags ShaderStageFlags
	Offset     uint32
	Size       uint32
}

// VertexInputBinding describes one vertex buffer binding slot.
type VertexInputBinding struct {
	Binding   uint32
	Stride    uint32
	InputRate VertexInputRate
}

// VertexInputAttribute describes one vertex attribute location.
type VertexInputAttribute struct {
	Location uint32
	Binding  uint32
	Format   Format
	Offset   uint32
}

// StencilOpState is the per-face stencil configuration.
type StencilOpState struct {
	FailOp      StencilOp
	PassOp      StencilOp
	DepthFailOp StencilOp
	CompareOp   CompareOp
	CompareMask uint32
	WriteMask   uint32
	Reference   uint32
}

// ColorBlendAttachment is the blend configuration for one color attachment.
type ColorBlendAttachment struct {
	BlendEnable         bool
	SrcColorBlendFactor BlendFactor
	DstColorBlendFactor BlendFactor
	ColorBlendOp        BlendOp
	SrcAlphaBlendFactor BlendFactor
	DstAlphaBlendFactor BlendFactor
	AlphaBlendOp        BlendOp
	ColorWriteMask      ColorComponentFlags
}

// MemoryBarrier is a global memory dependency recorded by CmdPipelineBarrier.
type MemoryBarrier struct {
	SrcAccess AccessFlags
	DstAccess AccessFlags
}

// BufferCopy is one region of a buffer-to-buffer copy.
type BufferCopy struct {
	SrcOffset DeviceSize
	DstOffset DeviceSize
	Size      DeviceSize
}

// AttachmentDescription describes one render pass attachment.
type AttachmentDescription struct {
	Format         Format
	Samples        SampleCountFlags
	LoadOp         AttachmentLoadOp
	StoreOp        AttachmentStoreOp
	StencilLoadOp  AttachmentLoadOp
	StencilStoreOp AttachmentStoreOp
	InitialLayout  ImageLayout
	FinalLayout    ImageLayout
}

// UnusedAttachment marks an attachment reference slot as unused.
const UnusedAttachment = ^uint32(0)

// AttachmentReference points a subpass at an attachment by index.
type AttachmentReference struct {
	Attachment uint32
	Layout     ImageLayout
}

// SubpassDescription describes one subpass of a render pass.
type SubpassDescription struct {
	BindPoint           PipelineBindPoint
	ColorAttachments    []AttachmentReference
	DepthStencil        *AttachmentReference
	InputAttachments    []AttachmentReference
	ResolveAttachments  []AttachmentReference
	PreserveAttachments []uint32
}

// SubpassExternal marks the implicit subpass outside the render pass in a
// dependency.
const SubpassExternal = ^uint32(0)

// SubpassDependency is an execution/memory dependency between subpasses.
type SubpassDependency struct {
	SrcSubpass uint32
	DstSubpass uint32
	SrcStage   PipelineStageFlags
	DstStage   PipelineStageFlags
	SrcAccess  AccessFlags
	DstAccess  AccessFlags
}

// DescriptorSetLayoutBinding describes one binding of a set layout.
type DescriptorSetLayoutBinding struct {
	Binding         uint32
	DescriptorType  DescriptorType
	DescriptorCount uint32
	StageFlags      ShaderStageFlags
}

// Pipeline state blocks. Each corresponds to one fixed-function stage of a
// graphics pipeline. The pipeline package wraps these in builders that
// apply the native API's documented defaults.

// VertexInputState describes vertex buffer bindings and attributes.
type VertexInputState struct {
	Bindings   []VertexInputBinding
	Attributes []VertexInputAttribute
}

// InputAssemblyState describes primitive assembly.
type InputAssemblyState struct {
	Topology               PrimitiveTopology
	PrimitiveRestartEnable bool
}

// TessellationState describes tessellation patch size.
type TessellationState struct {
	PatchControlPoints uint32
}

// ViewportState describes static viewports and scissors. Counts may exceed
// the slice lengths when the matching dynamic state is enabled.
type ViewportState struct {
	Viewports     []Viewport
	Scissors      []Rect2D
	ViewportCount uint32
	ScissorCount  uint32
}

// RasterizationState describes polygon rasterization.
type RasterizationState struct {
	DepthClampEnable        bool
	RasterizerDiscardEnable bool
	PolygonMode             PolygonMode
	CullMode                CullModeFlags
	FrontFace               FrontFace
	DepthBiasEnable         bool
	DepthBiasConstantFactor float32
	DepthBiasClamp          float32
	DepthBiasSlopeFactor    float32
	LineWidth               float32
}

// MultisampleState describes multisampling.
type MultisampleState struct {
	RasterizationSamples  SampleCountFlags
	SampleShadingEnable   bool
	MinSampleShading      float32
	SampleMask            []uint32
	AlphaToCoverageEnable bool
	AlphaToOneEnable      bool
}

// DepthStencilState describes depth and stencil testing.
type DepthStencilState struct {
	DepthTestEnable       bool
	DepthWriteEnable      bool
	DepthCompareOp        CompareOp
	DepthBoundsTestEnable bool
	StencilTestEnable     bool
	Front                 StencilOpState
	Back                  StencilOpState
	MinDepthBounds        float32
	MaxDepthBounds        float32
}

// ColorBlendState describes blending across all color attachments.
type ColorBlendState struct {
	LogicOpEnable  bool
	LogicOp        LogicOp
	Attachments    []ColorBlendAttachment
	BlendConstants [4]float32
}

// ShaderStageInfo is one shader stage entry of a pipeline creation request.
type ShaderStageInfo struct {
	Stage      ShaderStageFlags
	Module     ShaderModule
	EntryPoint string
}

// Create-info structs: one per fallible driver creation call.

// ShaderModuleCreateInfo carries SPIR-V code as 32-bit words.
type ShaderModuleCreateInfo struct {
	Code []uint32
}

// RenderPassCreateInfo describes a render pass.
type RenderPassCreateInfo struct {
	Attachments  []AttachmentDescription
	Subpasses    []SubpassDescription
	Dependencies []SubpassDependency
}

// FramebufferCreateInfo describes a framebuffer over a render pass.
type FramebufferCreateInfo struct {
	RenderPass  RenderPass
	Attachments []ImageView
	Width       uint32
	Height      uint32
	Layers      uint32
}

// DescriptorSetLayoutCreateInfo describes a descriptor set layout.
type DescriptorSetLayoutCreateInfo struct {
	Bindings []DescriptorSetLayoutBinding
}

// PipelineLayoutCreateInfo describes a pipeline layout.
type PipelineLayoutCreateInfo struct {
	SetLayouts         []DescriptorSetLayout
	PushConstantRanges []PushConstantRange
}

// PipelineCacheCreateInfo describes a pipeline cache; InitialData may be
// empty or a blob previously returned by Driver.PipelineCacheData.
type PipelineCacheCreateInfo struct {
	InitialData []byte
}

// GraphicsPipelineCreateInfo is the full creation request assembled by
// pipeline.Builder. Nil state pointers mean the state is absent (for
// example tessellation without patch stages).
type GraphicsPipelineCreateInfo struct {
	Flags         PipelineCreateFlags
	Stages        []ShaderStageInfo
	VertexInput   *VertexInputState
	InputAssembly *InputAssemblyState
	Tessellation  *TessellationState
	Viewport      *ViewportState
	Rasterization *RasterizationState
	Multisample   *MultisampleState
	DepthStencil  *DepthStencilState
	ColorBlend    *ColorBlendState
	DynamicStates []DynamicState
	Layout        PipelineLayout
	RenderPass    RenderPass
	Subpass       uint32
}

// CommandPoolCreateInfo describes a command pool.
type CommandPoolCreateInfo struct {
	QueueFamilyIndex uint32
	Flags            CommandPoolCreateFlags
}

// CommandBufferBeginInfo carries begin-recording options.
type CommandBufferBeginInfo struct {
	Flags CommandBufferUsageFlags
}

// RenderPassBeginInfo describes one render pass instance.
type RenderPassBeginInfo struct {
	RenderPass  RenderPass
	Framebuffer Framebuffer
	RenderArea  Rect2D
	ClearValues []ClearValue
}
