package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/gpukit/vkguard/driver"
)

// result maps a VkResult to the driver error space. The numeric values
// coincide, so non-success results convert directly.
func result(res vk.Result) error {
	if res == vk.Success {
		return nil
	}
	return driver.Result(res)
}

// nullStr returns s with the NUL terminator cgo string passing requires.
func nullStr(s string) string { return s + "\x00" }

func (d *Driver) CreateShaderModule(dev driver.Device, info driver.ShaderModuleCreateInfo) (driver.ShaderModule, error) {
	vdev, ok := d.device(dev)
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	var sm vk.ShaderModule
	res := vk.CreateShaderModule(vdev, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint64(len(info.Code) * 4),
		PCode:    info.Code,
	}, nil, &sm)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.ShaderModule(d.handle())
	d.shaders[h] = sm
	return h, nil
}

func (d *Driver) DestroyShaderModule(dev driver.Device, sm driver.ShaderModule) {
	d.mu.Lock()
	vdev, vsm := d.devices[dev], d.shaders[sm]
	delete(d.shaders, sm)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyShaderModule(vdev, vsm, nil)
	}
}

func (d *Driver) CreateRenderPass(dev driver.Device, info driver.RenderPassCreateInfo) (driver.RenderPass, error) {
	vdev, ok := d.device(dev)
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	attachments := make([]vk.AttachmentDescription, len(info.Attachments))
	for i, a := range info.Attachments {
		attachments[i] = vk.AttachmentDescription{
			Format:         vk.Format(a.Format),
			Samples:        vk.SampleCountFlagBits(a.Samples),
			LoadOp:         vk.AttachmentLoadOp(a.LoadOp),
			StoreOp:        vk.AttachmentStoreOp(a.StoreOp),
			StencilLoadOp:  vk.AttachmentLoadOp(a.StencilLoadOp),
			StencilStoreOp: vk.AttachmentStoreOp(a.StencilStoreOp),
			InitialLayout:  vk.ImageLayout(a.InitialLayout),
			FinalLayout:    vk.ImageLayout(a.FinalLayout),
		}
	}
	subpasses := make([]vk.SubpassDescription, len(info.Subpasses))
	for i, s := range info.Subpasses {
		sp := vk.SubpassDescription{
			PipelineBindPoint:       vk.PipelineBindPoint(s.BindPoint),
			ColorAttachmentCount:    uint32(len(s.ColorAttachments)),
			PColorAttachments:       vkAttachmentRefs(s.ColorAttachments),
			InputAttachmentCount:    uint32(len(s.InputAttachments)),
			PInputAttachments:       vkAttachmentRefs(s.InputAttachments),
			PResolveAttachments:     vkAttachmentRefs(s.ResolveAttachments),
			PreserveAttachmentCount: uint32(len(s.PreserveAttachments)),
			PPreserveAttachments:    s.PreserveAttachments,
		}
		if s.DepthStencil != nil {
			ref := vkAttachmentRefs([]driver.AttachmentReference{*s.DepthStencil})
			sp.PDepthStencilAttachment = &ref[0]
		}
		subpasses[i] = sp
	}
	dependencies := make([]vk.SubpassDependency, len(info.Dependencies))
	for i, dep := range info.Dependencies {
		dependencies[i] = vk.SubpassDependency{
			SrcSubpass:    dep.SrcSubpass,
			DstSubpass:    dep.DstSubpass,
			SrcStageMask:  vk.PipelineStageFlags(dep.SrcStage),
			DstStageMask:  vk.PipelineStageFlags(dep.DstStage),
			SrcAccessMask: vk.AccessFlags(dep.SrcAccess),
			DstAccessMask: vk.AccessFlags(dep.DstAccess),
		}
	}
	var rp vk.RenderPass
	res := vk.CreateRenderPass(vdev, &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    uint32(len(subpasses)),
		PSubpasses:      subpasses,
		DependencyCount: uint32(len(dependencies)),
		PDependencies:   dependencies,
	}, nil, &rp)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.RenderPass(d.handle())
	d.renderPasses[h] = rp
	return h, nil
}

func (d *Driver) DestroyRenderPass(dev driver.Device, rp driver.RenderPass) {
	d.mu.Lock()
	vdev, vrp := d.devices[dev], d.renderPasses[rp]
	delete(d.renderPasses, rp)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyRenderPass(vdev, vrp, nil)
	}
}

func (d *Driver) CreateFramebuffer(dev driver.Device, info driver.FramebufferCreateInfo) (driver.Framebuffer, error) {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	vrp, rpOK := d.renderPasses[info.RenderPass]
	views := make([]vk.ImageView, len(info.Attachments))
	for i, a := range info.Attachments {
		views[i] = d.imageViews[a]
	}
	d.mu.Unlock()
	if !ok || !rpOK {
		return driver.Null, driver.ErrUnknownHandle
	}
	var fb vk.Framebuffer
	res := vk.CreateFramebuffer(vdev, &vk.FramebufferCreateInfo{
		SType:           vk.StructureTypeFramebufferCreateInfo,
		RenderPass:      vrp,
		AttachmentCount: uint32(len(views)),
		PAttachments:    views,
		Width:           info.Width,
		Height:          info.Height,
		Layers:          info.Layers,
	}, nil, &fb)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.Framebuffer(d.handle())
	d.framebuffers[h] = fb
	return h, nil
}

func (d *Driver) DestroyFramebuffer(dev driver.Device, fb driver.Framebuffer) {
	d.mu.Lock()
	vdev, vfb := d.devices[dev], d.framebuffers[fb]
	delete(d.framebuffers, fb)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyFramebuffer(vdev, vfb, nil)
	}
}

func (d *Driver) CreateDescriptorSetLayout(dev driver.Device, info driver.DescriptorSetLayoutCreateInfo) (driver.DescriptorSetLayout, error) {
	vdev, ok := d.device(dev)
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	bindings := make([]vk.DescriptorSetLayoutBinding, len(info.Bindings))
	for i, b := range info.Bindings {
		bindings[i] = vk.DescriptorSetLayoutBinding{
			Binding:         b.Binding,
			DescriptorType:  vk.DescriptorType(b.DescriptorType),
			DescriptorCount: b.DescriptorCount,
			StageFlags:      vk.ShaderStageFlags(b.StageFlags),
		}
	}
	var dsl vk.DescriptorSetLayout
	res := vk.CreateDescriptorSetLayout(vdev, &vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(bindings)),
		PBindings:    bindings,
	}, nil, &dsl)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.DescriptorSetLayout(d.handle())
	d.setLayouts[h] = dsl
	return h, nil
}

func (d *Driver) DestroyDescriptorSetLayout(dev driver.Device, dsl driver.DescriptorSetLayout) {
	d.mu.Lock()
	vdev, vdsl := d.devices[dev], d.setLayouts[dsl]
	delete(d.setLayouts, dsl)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyDescriptorSetLayout(vdev, vdsl, nil)
	}
}

func (d *Driver) CreatePipelineLayout(dev driver.Device, info driver.PipelineLayoutCreateInfo) (driver.PipelineLayout, error) {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	setLayouts := make([]vk.DescriptorSetLayout, len(info.SetLayouts))
	for i, sl := range info.SetLayouts {
		setLayouts[i] = d.setLayouts[sl]
	}
	d.mu.Unlock()
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	ranges := make([]vk.PushConstantRange, len(info.PushConstantRanges))
	for i, r := range info.PushConstantRanges {
		ranges[i] = vk.PushConstantRange{
			StageFlags: vk.ShaderStageFlags(r.StageFlags),
			Offset:     r.Offset,
			Size:       r.Size,
		}
	}
	var pl vk.PipelineLayout
	res := vk.CreatePipelineLayout(vdev, &vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(setLayouts)),
		PSetLayouts:            setLayouts,
		PushConstantRangeCount: uint32(len(ranges)),
		PPushConstantRanges:    ranges,
	}, nil, &pl)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.PipelineLayout(d.handle())
	d.layouts[h] = pl
	return h, nil
}

func (d *Driver) DestroyPipelineLayout(dev driver.Device, pl driver.PipelineLayout) {
	d.mu.Lock()
	vdev, vpl := d.devices[dev], d.layouts[pl]
	delete(d.layouts, pl)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyPipelineLayout(vdev, vpl, nil)
	}
}

func (d *Driver) CreateGraphicsPipeline(dev driver.Device, cache driver.PipelineCache, info driver.GraphicsPipelineCreateInfo) (driver.Pipeline, error) {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	vcache := d.caches[cache]
	vlayout := d.layouts[info.Layout]
	vrp := d.renderPasses[info.RenderPass]
	stages := make([]vk.PipelineShaderStageCreateInfo, len(info.Stages))
	for i, s := range info.Stages {
		stages[i] = vk.PipelineShaderStageCreateInfo{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFlagBits(s.Stage),
			Module: d.shaders[s.Module],
			PName:  nullStr(s.EntryPoint),
		}
	}
	d.mu.Unlock()
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	infos := []vk.GraphicsPipelineCreateInfo{{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		Flags:               vk.PipelineCreateFlags(info.Flags),
		StageCount:          uint32(len(stages)),
		PStages:             stages,
		PVertexInputState:   vkVertexInputState(info.VertexInput),
		PInputAssemblyState: vkInputAssemblyState(info.InputAssembly),
		PTessellationState:  vkTessellationState(info.Tessellation),
		PViewportState:      vkViewportState(info.Viewport),
		PRasterizationState: vkRasterizationState(info.Rasterization),
		PMultisampleState:   vkMultisampleState(info.Multisample),
		PDepthStencilState:  vkDepthStencilState(info.DepthStencil),
		PColorBlendState:    vkColorBlendState(info.ColorBlend),
		PDynamicState:       vkDynamicState(info.DynamicStates),
		Layout:              vlayout,
		RenderPass:          vrp,
		Subpass:             info.Subpass,
	}}
	pipelines := make([]vk.Pipeline, 1)
	res := vk.CreateGraphicsPipelines(vdev, vcache, 1, infos, nil, pipelines)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.Pipeline(d.handle())
	d.pipelines[h] = pipelines[0]
	return h, nil
}

func (d *Driver) DestroyPipeline(dev driver.Device, p driver.Pipeline) {
	d.mu.Lock()
	vdev, vp := d.devices[dev], d.pipelines[p]
	delete(d.pipelines, p)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyPipeline(vdev, vp, nil)
	}
}

func (d *Driver) CreatePipelineCache(dev driver.Device, info driver.PipelineCacheCreateInfo) (driver.PipelineCache, error) {
	vdev, ok := d.device(dev)
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	createInfo := vk.PipelineCacheCreateInfo{
		SType:           vk.StructureTypePipelineCacheCreateInfo,
		InitialDataSize: uint64(len(info.InitialData)),
	}
	if len(info.InitialData) > 0 {
		createInfo.PInitialData = unsafe.Pointer(&info.InitialData[0])
	}
	var pc vk.PipelineCache
	res := vk.CreatePipelineCache(vdev, &createInfo, nil, &pc)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.PipelineCache(d.handle())
	d.caches[h] = pc
	return h, nil
}

func (d *Driver) DestroyPipelineCache(dev driver.Device, pc driver.PipelineCache) {
	d.mu.Lock()
	vdev, vpc := d.devices[dev], d.caches[pc]
	delete(d.caches, pc)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyPipelineCache(vdev, vpc, nil)
	}
}

func (d *Driver) PipelineCacheData(dev driver.Device, pc driver.PipelineCache) ([]byte, error) {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	vpc, pcOK := d.caches[pc]
	d.mu.Unlock()
	if !ok || !pcOK {
		return nil, driver.ErrUnknownHandle
	}
	var size uint64
	if err := result(vk.GetPipelineCacheData(vdev, vpc, &size, nil)); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	data := make([]byte, size)
	if err := result(vk.GetPipelineCacheData(vdev, vpc, &size, unsafe.Pointer(&data[0]))); err != nil {
		return nil, err
	}
	return data[:size], nil
}

func (d *Driver) MergePipelineCaches(dev driver.Device, dst driver.PipelineCache, srcs []driver.PipelineCache) error {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	vdst, dstOK := d.caches[dst]
	vsrcs := make([]vk.PipelineCache, len(srcs))
	for i, s := range srcs {
		vsrcs[i] = d.caches[s]
	}
	d.mu.Unlock()
	if !ok || !dstOK {
		return driver.ErrUnknownHandle
	}
	return result(vk.MergePipelineCaches(vdev, vdst, uint32(len(vsrcs)), vsrcs))
}
