package pipeline

import (
	"errors"
	"fmt"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Pipeline build errors.
var (
	// ErrDuplicateStage is returned by Build when two stages with the same
	// stage bit were added to the builder.
	ErrDuplicateStage = errors.New("pipeline: duplicate shader stage")

	// ErrNilLayout is returned when building a pipeline without a layout.
	ErrNilLayout = errors.New("pipeline: layout is nil")

	// ErrNilModule is returned when a stage references a nil shader module.
	ErrNilModule = errors.New("pipeline: shader module is nil")

	// ErrNilRenderPass is returned when building a graphics pipeline without
	// a render pass.
	ErrNilRenderPass = errors.New("pipeline: render pass is nil")

	// ErrSubpassOutOfRange is returned when the target subpass index is not
	// a subpass of the render pass.
	ErrSubpassOutOfRange = errors.New("pipeline: subpass index out of range")

	// ErrNoStages is returned when building a pipeline with no shader stages.
	ErrNoStages = errors.New("pipeline: no shader stages")

	// ErrBuilderConsumed is returned by Build when the builder has already
	// produced a pipeline. Builders are single-use.
	ErrBuilderConsumed = errors.New("pipeline: builder already consumed")
)

// ShaderStage is one programmable stage of a pipeline. EntryPoint defaults
// to "main" when empty.
type ShaderStage struct {
	Stage      driver.ShaderStageFlags
	Module     *vkguard.ShaderModule
	EntryPoint string
}

// Pipeline wraps a compiled native graphics pipeline.
//
// A pipeline retains everything it was compiled from: its layout, its render
// pass and every shader module of its stages. Those references are held for
// the pipeline's whole lifetime and dropped only after the native pipeline
// has been destroyed, so the native objects outlive the native pipeline.
// Holding the modules is deliberately conservative: drivers are permitted to
// discard module contents after compilation, but keeping them alive keeps
// the pipeline valid under every driver.
type Pipeline struct {
	dev    *vkguard.Device
	handle driver.Pipeline
	layout *Layout

	life lifetime.Counter
}

// Builder assembles a graphics pipeline creation request. A zero amount of
// configuration is not useful; at minimum a layout, a render pass and one
// shader stage are required. Every state setter is last-write-wins. The
// builder is single-use: Build consumes it.
type Builder struct {
	dev    *vkguard.Device
	layout *Layout

	stages  []ShaderStage
	seen    driver.ShaderStageFlags
	rp      *vkguard.RenderPass
	subpass uint32
	cache   *Cache
	flags   driver.PipelineCreateFlags

	info driver.GraphicsPipelineCreateInfo

	err      error
	consumed bool
}

// NewGraphics creates a pipeline builder targeting the given layout. The
// layout fixes the resource interface; the device is taken from it.
func NewGraphics(layout *Layout) *Builder {
	b := &Builder{layout: layout}
	if layout == nil {
		b.err = ErrNilLayout
		return b
	}
	b.dev = layout.Device()
	return b
}

// AddStage appends a shader stage. Each stage bit may appear at most once;
// a repeated stage is recorded as an error that Build reports, and no native
// object is ever created from such a builder.
func (b *Builder) AddStage(s ShaderStage) *Builder {
	if b.err != nil {
		return b
	}
	if s.Module == nil {
		b.err = ErrNilModule
		return b
	}
	if b.seen&s.Stage != 0 {
		b.err = fmt.Errorf("%w: %v", ErrDuplicateStage, s.Stage)
		return b
	}
	b.seen |= s.Stage
	if s.EntryPoint == "" {
		s.EntryPoint = "main"
	}
	b.stages = append(b.stages, s)
	return b
}

// VertexInput sets the vertex input state.
func (b *Builder) VertexInput(s driver.VertexInputState) *Builder {
	b.info.VertexInput = &s
	return b
}

// InputAssembly sets the input assembly state.
func (b *Builder) InputAssembly(s driver.InputAssemblyState) *Builder {
	b.info.InputAssembly = &s
	return b
}

// Tessellation sets the tessellation state. Only meaningful when the
// pipeline has tessellation stages.
func (b *Builder) Tessellation(s driver.TessellationState) *Builder {
	b.info.Tessellation = &s
	return b
}

// Viewport sets the viewport state.
func (b *Builder) Viewport(s driver.ViewportState) *Builder {
	b.info.Viewport = &s
	return b
}

// Rasterization sets the rasterization state.
func (b *Builder) Rasterization(s driver.RasterizationState) *Builder {
	b.info.Rasterization = &s
	return b
}

// Multisample sets the multisample state.
func (b *Builder) Multisample(s driver.MultisampleState) *Builder {
	b.info.Multisample = &s
	return b
}

// DepthStencil sets the depth/stencil state.
func (b *Builder) DepthStencil(s driver.DepthStencilState) *Builder {
	b.info.DepthStencil = &s
	return b
}

// ColorBlend sets the color blend state.
func (b *Builder) ColorBlend(s driver.ColorBlendState) *Builder {
	b.info.ColorBlend = &s
	return b
}

// DynamicStates marks pieces of pipeline state as dynamic, to be supplied
// at recording time instead of baked into the pipeline.
func (b *Builder) DynamicStates(states ...driver.DynamicState) *Builder {
	b.info.DynamicStates = append(b.info.DynamicStates[:0], states...)
	return b
}

// Flags sets pipeline creation flags.
func (b *Builder) Flags(f driver.PipelineCreateFlags) *Builder {
	b.flags = f
	return b
}

// RenderPass sets the render pass and subpass index the pipeline will be
// used within. The index must name a subpass of rp.
func (b *Builder) RenderPass(rp *vkguard.RenderPass, subpass uint32) *Builder {
	if b.err != nil {
		return b
	}
	if rp == nil {
		b.err = ErrNilRenderPass
		return b
	}
	if int(subpass) >= rp.SubpassCount() {
		b.err = fmt.Errorf("%w: subpass %d of %d", ErrSubpassOutOfRange, subpass, rp.SubpassCount())
		return b
	}
	b.rp = rp
	b.subpass = subpass
	return b
}

// Cache sets the pipeline cache to compile through. nil means no cache.
func (b *Builder) Cache(c *Cache) *Builder {
	b.cache = c
	return b
}

// Build compiles the pipeline, issuing exactly one native creation call.
// Deferred builder errors (duplicate stage, nil module, bad subpass) are
// reported here and suppress the native call entirely. Build consumes the
// builder; calling it again returns ErrBuilderConsumed.
//
// The returned pipeline owns a reference to the layout, the render pass,
// every stage's shader module and the device.
func (b *Builder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if len(b.stages) == 0 {
		return nil, ErrNoStages
	}
	if b.rp == nil {
		return nil, ErrNilRenderPass
	}
	b.consumed = true

	info := b.info
	info.Flags = b.flags
	info.Layout = b.layout.Handle()
	info.RenderPass = b.rp.Handle()
	info.Subpass = b.subpass
	info.Stages = make([]driver.ShaderStageInfo, len(b.stages))
	for i, s := range b.stages {
		info.Stages[i] = driver.ShaderStageInfo{
			Stage:      s.Stage,
			Module:     s.Module.Handle(),
			EntryPoint: s.EntryPoint,
		}
	}

	var cache driver.PipelineCache
	if b.cache != nil {
		cache = b.cache.Handle()
	}

	dev := b.dev
	handle, err := dev.Driver().CreateGraphicsPipeline(dev.Handle(), cache, info)
	if err != nil {
		return nil, fmt.Errorf("pipeline: create graphics pipeline: %w", err)
	}

	dev.Retain()
	b.layout.Retain()
	b.rp.Retain()
	modules := make([]*vkguard.ShaderModule, len(b.stages))
	for i, s := range b.stages {
		s.Module.Retain()
		modules[i] = s.Module
	}

	layout, rp := b.layout, b.rp
	p := &Pipeline{dev: dev, handle: handle, layout: layout}
	p.life.Init(func() {
		// The native pipeline goes first; the objects it was compiled
		// from must still be alive at that point.
		dev.Driver().DestroyPipeline(dev.Handle(), handle)
		for _, m := range modules {
			m.Release()
		}
		rp.Release()
		layout.Release()
		vkguard.Logger().Debug("pipeline destroyed", "pipeline", uint64(handle))
		dev.Release()
	})
	vkguard.Logger().Debug("pipeline created",
		"pipeline", uint64(handle),
		"stages", len(b.stages),
		"subpass", b.subpass)
	return p, nil
}

// Handle returns the native pipeline handle.
func (p *Pipeline) Handle() driver.Pipeline { return p.handle }

// Layout returns the layout the pipeline was compiled against. The pipeline
// keeps it alive; callers binding descriptor sets against a bound pipeline
// can use it without retaining it separately.
func (p *Pipeline) Layout() *Layout { return p.layout }

// Device returns the owning device.
func (p *Pipeline) Device() *vkguard.Device { return p.dev }

// Retain adds an owner reference.
func (p *Pipeline) Retain() { p.life.Retain() }

// Release drops an owner reference. When the last one is gone the native
// pipeline is destroyed first and the held layout, render pass and shader
// module references are dropped afterward.
func (p *Pipeline) Release() { p.life.Release() }
