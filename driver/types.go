package driver

// Enumerations and flag types mirroring the native API vocabulary consumed
// by the object model. Values match the corresponding Vulkan constants so
// backends can convert by cast.

// ShaderStageFlags is a bitmask of pipeline shader stages.
type ShaderStageFlags uint32

// Shader stage flags.
const (
	StageVertex                 ShaderStageFlags = 1 << 0
	StageTessellationControl    ShaderStageFlags = 1 << 1
	StageTessellationEvaluation ShaderStageFlags = 1 << 2
	StageGeometry               ShaderStageFlags = 1 << 3
	StageFragment               ShaderStageFlags = 1 << 4
	StageCompute                ShaderStageFlags = 1 << 5

	// StageAllGraphics covers every graphics stage.
	StageAllGraphics ShaderStageFlags = 0x1F
)

// String returns a short name for a single-stage flag value.
func (s ShaderStageFlags) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageTessellationControl:
		return "tessellation-control"
	case StageTessellationEvaluation:
		return "tessellation-evaluation"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "stage-mask"
	}
}

// PipelineBindPoint selects which pipeline type a bind operation targets.
type PipelineBindPoint int32

// Pipeline bind points.
const (
	BindPointGraphics PipelineBindPoint = 0
	BindPointCompute  PipelineBindPoint = 1
)

// PrimitiveTopology describes how vertices are assembled into primitives.
type PrimitiveTopology int32

// Primitive topologies.
const (
	TopologyPointList     PrimitiveTopology = 0
	TopologyLineList      PrimitiveTopology = 1
	TopologyLineStrip     PrimitiveTopology = 2
	TopologyTriangleList  PrimitiveTopology = 3
	TopologyTriangleStrip PrimitiveTopology = 4
	TopologyTriangleFan   PrimitiveTopology = 5
	TopologyPatchList     PrimitiveTopology = 10
)

// PolygonMode controls how polygons are rasterized.
type PolygonMode int32

// Polygon modes.
const (
	PolygonFill  PolygonMode = 0
	PolygonLine  PolygonMode = 1
	PolygonPoint PolygonMode = 2
)

// CullModeFlags is a bitmask selecting which polygon faces are discarded.
type CullModeFlags uint32

// Cull modes.
const (
	CullNone         CullModeFlags = 0
	CullFront        CullModeFlags = 1
	CullBack         CullModeFlags = 2
	CullFrontAndBack CullModeFlags = 3
)

// FrontFace selects the winding order considered front-facing.
type FrontFace int32

// Front face winding orders.
const (
	FrontFaceCounterClockwise FrontFace = 0
	FrontFaceClockwise        FrontFace = 1
)

// CompareOp is a depth/stencil comparison operator.
type CompareOp int32

// Comparison operators.
const (
	CompareNever          CompareOp = 0
	CompareLess           CompareOp = 1
	CompareEqual          CompareOp = 2
	CompareLessOrEqual    CompareOp = 3
	CompareGreater        CompareOp = 4
	CompareNotEqual       CompareOp = 5
	CompareGreaterOrEqual CompareOp = 6
	CompareAlways         CompareOp = 7
)

// StencilOp is a stencil buffer update operator.
type StencilOp int32

// Stencil operators.
const (
	StencilKeep              StencilOp = 0
	StencilZero              StencilOp = 1
	StencilReplace           StencilOp = 2
	StencilIncrementAndClamp StencilOp = 3
	StencilDecrementAndClamp StencilOp = 4
	StencilInvert            StencilOp = 5
	StencilIncrementAndWrap  StencilOp = 6
	StencilDecrementAndWrap  StencilOp = 7
)

// BlendFactor is a color blend factor.
type BlendFactor int32

// Blend factors.
const (
	BlendZero             BlendFactor = 0
	BlendOne              BlendFactor = 1
	BlendSrcColor         BlendFactor = 2
	BlendOneMinusSrcColor BlendFactor = 3
	BlendDstColor         BlendFactor = 4
	BlendOneMinusDstColor BlendFactor = 5
	BlendSrcAlpha         BlendFactor = 6
	BlendOneMinusSrcAlpha BlendFactor = 7
	BlendDstAlpha         BlendFactor = 8
	BlendOneMinusDstAlpha BlendFactor = 9
	BlendConstantColor    BlendFactor = 10
	BlendConstantAlpha    BlendFactor = 12
	BlendSrcAlphaSaturate BlendFactor = 14
)

// BlendOp combines source and destination blend terms.
type BlendOp int32

// Blend operators.
const (
	BlendOpAdd             BlendOp = 0
	BlendOpSubtract        BlendOp = 1
	BlendOpReverseSubtract BlendOp = 2
	BlendOpMin             BlendOp = 3
	BlendOpMax             BlendOp = 4
)

// LogicOp is a framebuffer logical operator.
type LogicOp int32

// Logical operators.
const (
	LogicClear LogicOp = 0
	LogicCopy  LogicOp = 3
	LogicNoOp  LogicOp = 5
	LogicXor   LogicOp = 6
	LogicOr    LogicOp = 7
	LogicSet   LogicOp = 15
)

// ColorComponentFlags is a bitmask of writable color channels.
type ColorComponentFlags uint32

// Color component flags.
const (
	ColorComponentR ColorComponentFlags = 1 << 0
	ColorComponentG ColorComponentFlags = 1 << 1
	ColorComponentB ColorComponentFlags = 1 << 2
	ColorComponentA ColorComponentFlags = 1 << 3

	// ColorComponentAll enables writes to every channel.
	ColorComponentAll = ColorComponentR | ColorComponentG | ColorComponentB | ColorComponentA
)

// SampleCountFlags selects the number of rasterization samples.
type SampleCountFlags uint32

// Sample counts.
const (
	Samples1  SampleCountFlags = 1 << 0
	Samples2  SampleCountFlags = 1 << 1
	Samples4  SampleCountFlags = 1 << 2
	Samples8  SampleCountFlags = 1 << 3
	Samples16 SampleCountFlags = 1 << 4
	Samples32 SampleCountFlags = 1 << 5
	Samples64 SampleCountFlags = 1 << 6
)

// DynamicState identifies a pipeline state settable at recording time.
type DynamicState int32

// Dynamic states.
const (
	DynamicViewport           DynamicState = 0
	DynamicScissor            DynamicState = 1
	DynamicLineWidth          DynamicState = 2
	DynamicDepthBias          DynamicState = 3
	DynamicBlendConstants     DynamicState = 4
	DynamicDepthBounds        DynamicState = 5
	DynamicStencilCompareMask DynamicState = 6
	DynamicStencilWriteMask   DynamicState = 7
	DynamicStencilReference   DynamicState = 8
)

// IndexType is the element width of an index buffer.
type IndexType int32

// Index types.
const (
	IndexUint16 IndexType = 0
	IndexUint32 IndexType = 1
)

// SubpassContents selects how a subpass's commands are provided.
type SubpassContents int32

// Subpass contents.
const (
	ContentsInline                  SubpassContents = 0
	ContentsSecondaryCommandBuffers SubpassContents = 1
)

// AttachmentLoadOp controls attachment contents at render pass begin.
type AttachmentLoadOp int32

// Attachment load operations.
const (
	LoadOpLoad     AttachmentLoadOp = 0
	LoadOpClear    AttachmentLoadOp = 1
	LoadOpDontCare AttachmentLoadOp = 2
)

// AttachmentStoreOp controls attachment contents at render pass end.
type AttachmentStoreOp int32

// Attachment store operations.
const (
	StoreOpStore    AttachmentStoreOp = 0
	StoreOpDontCare AttachmentStoreOp = 1
)

// ImageLayout is the layout an image is in at a render pass boundary.
type ImageLayout int32

// Image layouts used at render pass boundaries.
const (
	LayoutUndefined                     ImageLayout = 0
	LayoutGeneral                       ImageLayout = 1
	LayoutColorAttachmentOptimal        ImageLayout = 2
	LayoutDepthStencilAttachmentOptimal ImageLayout = 3
	LayoutShaderReadOnlyOptimal         ImageLayout = 5
	LayoutTransferSrcOptimal            ImageLayout = 6
	LayoutTransferDstOptimal            ImageLayout = 7
	LayoutPresentSrc                    ImageLayout = 1000001002
)

// PipelineStageFlags is a bitmask of pipeline execution stages used in
// barriers and subpass dependencies.
type PipelineStageFlags uint32

// Pipeline stages (subset used by barriers and dependencies).
const (
	PipelineStageTopOfPipe             PipelineStageFlags = 1 << 0
	PipelineStageVertexInput           PipelineStageFlags = 1 << 2
	PipelineStageVertexShader          PipelineStageFlags = 1 << 3
	PipelineStageFragmentShader        PipelineStageFlags = 1 << 7
	PipelineStageEarlyFragmentTests    PipelineStageFlags = 1 << 8
	PipelineStageLateFragmentTests     PipelineStageFlags = 1 << 9
	PipelineStageColorAttachmentOutput PipelineStageFlags = 1 << 10
	PipelineStageComputeShader         PipelineStageFlags = 1 << 11
	PipelineStageTransfer              PipelineStageFlags = 1 << 12
	PipelineStageBottomOfPipe          PipelineStageFlags = 1 << 13
	PipelineStageAllCommands           PipelineStageFlags = 1 << 16
)

// AccessFlags is a bitmask of memory access types used in barriers.
type AccessFlags uint32

// Access types (subset used by barriers and dependencies).
const (
	AccessIndexRead              AccessFlags = 1 << 1
	AccessVertexAttributeRead    AccessFlags = 1 << 2
	AccessUniformRead            AccessFlags = 1 << 3
	AccessShaderRead             AccessFlags = 1 << 5
	AccessShaderWrite            AccessFlags = 1 << 6
	AccessColorAttachmentRead    AccessFlags = 1 << 7
	AccessColorAttachmentWrite   AccessFlags = 1 << 8
	AccessDepthStencilRead       AccessFlags = 1 << 9
	AccessDepthStencilWrite      AccessFlags = 1 << 10
	AccessTransferRead           AccessFlags = 1 << 11
	AccessTransferWrite          AccessFlags = 1 << 12
	AccessMemoryRead             AccessFlags = 1 << 15
	AccessMemoryWrite            AccessFlags = 1 << 16
)

// Format is a vertex attribute or attachment pixel format.
type Format int32

// Formats (subset used by vertex attributes and attachments).
const (
	FormatUndefined          Format = 0
	FormatR8G8B8A8Unorm      Format = 37
	FormatR8G8B8A8Srgb       Format = 43
	FormatB8G8R8A8Unorm      Format = 44
	FormatB8G8R8A8Srgb       Format = 50
	FormatR32Sfloat          Format = 100
	FormatR32G32Sfloat       Format = 103
	FormatR32G32B32Sfloat    Format = 106
	FormatR32G32B32A32Sfloat Format = 109
	FormatD32Sfloat          Format = 126
	FormatD24UnormS8Uint     Format = 129
)

// VertexInputRate selects per-vertex or per-instance attribute advance.
type VertexInputRate int32

// Vertex input rates.
const (
	InputRateVertex   VertexInputRate = 0
	InputRateInstance VertexInputRate = 1
)

// PipelineCreateFlags is a bitmask of pipeline creation options.
// Derivative-related flags are reserved: pipeline derivatives are
// deliberately unsupported by this module.
type PipelineCreateFlags uint32

// Pipeline creation flags.
const (
	PipelineCreateDisableOptimization PipelineCreateFlags = 1 << 0
)

// CommandPoolCreateFlags is a bitmask of command pool options.
type CommandPoolCreateFlags uint32

// Command pool creation flags.
const (
	PoolTransient            CommandPoolCreateFlags = 1 << 0
	PoolResetCommandBuffer   CommandPoolCreateFlags = 1 << 1
)

// CommandBufferUsageFlags is a bitmask of begin-recording options.
type CommandBufferUsageFlags uint32

// Command buffer usage flags.
const (
	UsageOneTimeSubmit      CommandBufferUsageFlags = 1 << 0
	UsageRenderPassContinue CommandBufferUsageFlags = 1 << 1
	UsageSimultaneousUse    CommandBufferUsageFlags = 1 << 2
)

// CommandBufferLevel selects primary or secondary command buffers.
type CommandBufferLevel int32

// Command buffer levels.
const (
	LevelPrimary   CommandBufferLevel = 0
	LevelSecondary CommandBufferLevel = 1
)

// DescriptorType identifies the kind of resource a descriptor binds.
type DescriptorType int32

// Descriptor types (subset used by set layout bindings).
const (
	DescriptorCombinedImageSampler DescriptorType = 1
	DescriptorSampledImage         DescriptorType = 2
	DescriptorStorageImage         DescriptorType = 3
	DescriptorUniformBuffer        DescriptorType = 6
	DescriptorStorageBuffer        DescriptorType = 7
)
