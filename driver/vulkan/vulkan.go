package vulkan

import (
	"sync"

	vk "github.com/goki/vulkan"

	"github.com/gpukit/vkguard/driver"
)

func init() {
	driver.Register(driver.NameVulkan, func() driver.Driver { return New() })
}

// Driver is the Vulkan implementation of driver.Driver. All handle tables
// are guarded by a single lock; Vulkan calls themselves run outside it
// where the API allows.
type Driver struct {
	mu   sync.Mutex
	next uint64

	devices      map[driver.Device]vk.Device
	shaders      map[driver.ShaderModule]vk.ShaderModule
	renderPasses map[driver.RenderPass]vk.RenderPass
	framebuffers map[driver.Framebuffer]vk.Framebuffer
	setLayouts   map[driver.DescriptorSetLayout]vk.DescriptorSetLayout
	layouts      map[driver.PipelineLayout]vk.PipelineLayout
	pipelines    map[driver.Pipeline]vk.Pipeline
	caches       map[driver.PipelineCache]vk.PipelineCache
	pools        map[driver.CommandPool]vk.CommandPool
	cmdBufs      map[driver.CommandBuffer]vk.CommandBuffer
	imageViews   map[driver.ImageView]vk.ImageView
	buffers      map[driver.Buffer]vk.Buffer
	descSets     map[driver.DescriptorSet]vk.DescriptorSet
}

// New returns an empty Vulkan driver. Devices must be registered with Wrap
// before any resource can be created.
func New() *Driver {
	return &Driver{
		devices:      make(map[driver.Device]vk.Device),
		shaders:      make(map[driver.ShaderModule]vk.ShaderModule),
		renderPasses: make(map[driver.RenderPass]vk.RenderPass),
		framebuffers: make(map[driver.Framebuffer]vk.Framebuffer),
		setLayouts:   make(map[driver.DescriptorSetLayout]vk.DescriptorSetLayout),
		layouts:      make(map[driver.PipelineLayout]vk.PipelineLayout),
		pipelines:    make(map[driver.Pipeline]vk.Pipeline),
		caches:       make(map[driver.PipelineCache]vk.PipelineCache),
		pools:        make(map[driver.CommandPool]vk.CommandPool),
		cmdBufs:      make(map[driver.CommandBuffer]vk.CommandBuffer),
		imageViews:   make(map[driver.ImageView]vk.ImageView),
		buffers:      make(map[driver.Buffer]vk.Buffer),
		descSets:     make(map[driver.DescriptorSet]vk.DescriptorSet),
	}
}

// Name returns driver.NameVulkan.
func (d *Driver) Name() string { return driver.NameVulkan }

// handle allocates the next opaque handle value. Caller holds d.mu.
func (d *Driver) handle() uint64 {
	d.next++
	return d.next
}

// Wrap registers an externally created Vulkan device and returns its
// handle. The caller keeps ownership of the device; the driver never
// destroys it.
func (d *Driver) Wrap(dev vk.Device) driver.Device {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.Device(d.handle())
	d.devices[h] = dev
	return h
}

// WrapImageView registers an externally created image view for use as a
// framebuffer attachment.
func (d *Driver) WrapImageView(view vk.ImageView) driver.ImageView {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.ImageView(d.handle())
	d.imageViews[h] = view
	return h
}

// WrapBuffer registers an externally created buffer for use in copy and
// bind operations.
func (d *Driver) WrapBuffer(buf vk.Buffer) driver.Buffer {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.Buffer(d.handle())
	d.buffers[h] = buf
	return h
}

// WrapDescriptorSet registers an externally allocated descriptor set.
func (d *Driver) WrapDescriptorSet(set vk.DescriptorSet) driver.DescriptorSet {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.DescriptorSet(d.handle())
	d.descSets[h] = set
	return h
}

// device resolves a device handle.
func (d *Driver) device(h driver.Device) (vk.Device, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dev, ok := d.devices[h]
	return dev, ok
}

// cmdBuf resolves a command buffer handle.
func (d *Driver) cmdBuf(h driver.CommandBuffer) (vk.CommandBuffer, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cb, ok := d.cmdBufs[h]
	return cb, ok
}
