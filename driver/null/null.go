// Package null provides a pure-Go in-memory driver.
//
// The null driver fabricates handles, tracks object liveness, and records
// every creation request and recorded command so tests can inspect exactly
// what the object model asked for. It never touches a GPU, which makes it
// suitable for headless CI and for validating lifecycle logic.
//
// Misuse that a real driver would turn into undefined behavior — destroying
// an unknown or already-destroyed handle, recording on a buffer that is not
// begun — is counted as a violation instead of panicking, so tests can
// assert both that correct usage produces zero violations and that the
// object model prevents incorrect usage from reaching the driver at all.
package null

import (
	"sync"

	"github.com/gpukit/vkguard/driver"
)

func init() {
	driver.Register(driver.NameNull, func() driver.Driver { return New() })
}

// Op is one recorded command buffer operation. Concrete types are the
// Op* structs below; tests type-assert to inspect arguments.
type Op any

// Recorded command operations.
type (
	// OpBeginRenderPass records CmdBeginRenderPass.
	OpBeginRenderPass struct {
		Info     driver.RenderPassBeginInfo
		Contents driver.SubpassContents
	}
	// OpNextSubpass records CmdNextSubpass.
	OpNextSubpass struct {
		Contents driver.SubpassContents
	}
	// OpEndRenderPass records CmdEndRenderPass.
	OpEndRenderPass struct{}
	// OpBindPipeline records CmdBindPipeline.
	OpBindPipeline struct {
		Point    driver.PipelineBindPoint
		Pipeline driver.Pipeline
	}
	// OpBindDescriptorSets records CmdBindDescriptorSets.
	OpBindDescriptorSets struct {
		Point          driver.PipelineBindPoint
		Layout         driver.PipelineLayout
		FirstSet       uint32
		Sets           []driver.DescriptorSet
		DynamicOffsets []uint32
	}
	// OpPushConstants records CmdPushConstants.
	OpPushConstants struct {
		Layout driver.PipelineLayout
		Stages driver.ShaderStageFlags
		Offset uint32
		Data   []byte
	}
	// OpSetViewport records CmdSetViewport.
	OpSetViewport struct {
		First     uint32
		Viewports []driver.Viewport
	}
	// OpSetScissor records CmdSetScissor.
	OpSetScissor struct {
		First    uint32
		Scissors []driver.Rect2D
	}
	// OpBindVertexBuffers records CmdBindVertexBuffers.
	OpBindVertexBuffers struct {
		First   uint32
		Buffers []driver.Buffer
		Offsets []driver.DeviceSize
	}
	// OpBindIndexBuffer records CmdBindIndexBuffer.
	OpBindIndexBuffer struct {
		Buffer    driver.Buffer
		Offset    driver.DeviceSize
		IndexType driver.IndexType
	}
	// OpDraw records CmdDraw.
	OpDraw struct {
		VertexCount   uint32
		InstanceCount uint32
		FirstVertex   uint32
		FirstInstance uint32
	}
	// OpDrawIndexed records CmdDrawIndexed.
	OpDrawIndexed struct {
		IndexCount    uint32
		InstanceCount uint32
		FirstIndex    uint32
		VertexOffset  int32
		FirstInstance uint32
	}
	// OpPipelineBarrier records CmdPipelineBarrier.
	OpPipelineBarrier struct {
		Src      driver.PipelineStageFlags
		Dst      driver.PipelineStageFlags
		Barriers []driver.MemoryBarrier
	}
	// OpCopyBuffer records CmdCopyBuffer.
	OpCopyBuffer struct {
		Src     driver.Buffer
		Dst     driver.Buffer
		Regions []driver.BufferCopy
	}
)

// bufferState tracks the native-side recording state of one command buffer.
type bufferState struct {
	pool      driver.CommandPool
	begun     bool
	ended     bool
	beginInfo driver.CommandBufferBeginInfo
	passDepth int
	ops       []Op
}

// Driver is the in-memory driver. The zero value is not usable; call New.
// All methods are safe for concurrent use.
type Driver struct {
	mu   sync.Mutex
	next uint64

	devices         map[driver.Device]bool
	shaderModules   map[driver.ShaderModule]driver.ShaderModuleCreateInfo
	renderPasses    map[driver.RenderPass]driver.RenderPassCreateInfo
	framebuffers    map[driver.Framebuffer]driver.FramebufferCreateInfo
	setLayouts      map[driver.DescriptorSetLayout]driver.DescriptorSetLayoutCreateInfo
	pipelineLayouts map[driver.PipelineLayout]driver.PipelineLayoutCreateInfo
	pipelines       map[driver.Pipeline]PipelineRecord
	caches          map[driver.PipelineCache][]byte
	pools           map[driver.CommandPool]driver.CommandPoolCreateInfo
	buffers         map[driver.CommandBuffer]*bufferState

	failNext   map[string]driver.Result
	violations []string
}

// PipelineRecord is the creation request a pipeline was built from.
type PipelineRecord struct {
	Cache driver.PipelineCache
	Info  driver.GraphicsPipelineCreateInfo
}

// New creates an empty null driver.
func New() *Driver {
	return &Driver{
		devices:         make(map[driver.Device]bool),
		shaderModules:   make(map[driver.ShaderModule]driver.ShaderModuleCreateInfo),
		renderPasses:    make(map[driver.RenderPass]driver.RenderPassCreateInfo),
		framebuffers:    make(map[driver.Framebuffer]driver.FramebufferCreateInfo),
		setLayouts:      make(map[driver.DescriptorSetLayout]driver.DescriptorSetLayoutCreateInfo),
		pipelineLayouts: make(map[driver.PipelineLayout]driver.PipelineLayoutCreateInfo),
		pipelines:       make(map[driver.Pipeline]PipelineRecord),
		caches:          make(map[driver.PipelineCache][]byte),
		pools:           make(map[driver.CommandPool]driver.CommandPoolCreateInfo),
		buffers:         make(map[driver.CommandBuffer]*bufferState),
		failNext:        make(map[string]driver.Result),
	}
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return driver.NameNull }

// NewDevice fabricates a device handle. Device creation is out-of-scope
// plumbing on real backends; the null driver provides it so tests can
// stand up a full object model.
func (d *Driver) NewDevice() driver.Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := d.handle()
	d.devices[driver.Device(h)] = true
	return driver.Device(h)
}

// FailNext makes the next call of the named operation (e.g.
// "CreateGraphicsPipeline") fail with the given result.
func (d *Driver) FailNext(op string, r driver.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failNext[op] = r
}

// Violations returns descriptions of every misuse the driver observed.
// A correct run returns an empty slice.
func (d *Driver) Violations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.violations))
	copy(out, d.violations)
	return out
}

// LiveObjects returns the number of live objects excluding devices and
// command buffers (which are freed via their pool). Useful for leak tests.
func (d *Driver) LiveObjects() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.shaderModules) + len(d.renderPasses) + len(d.framebuffers) +
		len(d.setLayouts) + len(d.pipelineLayouts) + len(d.pipelines) +
		len(d.caches) + len(d.pools)
}

// Commands returns the operations recorded on a command buffer, in order.
func (d *Driver) Commands(cb driver.CommandBuffer) []Op {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.buffers[cb]
	if !ok {
		return nil
	}
	out := make([]Op, len(st.ops))
	copy(out, st.ops)
	return out
}

// PipelineLayoutInfo returns the creation request of a live pipeline layout.
func (d *Driver) PipelineLayoutInfo(pl driver.PipelineLayout) (driver.PipelineLayoutCreateInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, ok := d.pipelineLayouts[pl]
	return info, ok
}

// PipelineInfo returns the creation request of a live pipeline.
func (d *Driver) PipelineInfo(p driver.Pipeline) (PipelineRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.pipelines[p]
	return rec, ok
}

// ShaderModuleInfo returns the creation request of a live shader module.
func (d *Driver) ShaderModuleInfo(sm driver.ShaderModule) (driver.ShaderModuleCreateInfo, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	info, ok := d.shaderModules[sm]
	return info, ok
}

// handle fabricates the next handle value. Caller holds d.mu.
func (d *Driver) handle() uint64 {
	d.next++
	return d.next
}

// fail consumes a pending injected failure for op. Caller holds d.mu.
func (d *Driver) fail(op string) error {
	if r, ok := d.failNext[op]; ok {
		delete(d.failNext, op)
		return r
	}
	return nil
}

// violate records a misuse description. Caller holds d.mu.
func (d *Driver) violate(msg string) {
	d.violations = append(d.violations, msg)
}
