package null

import (
	"github.com/gpukit/vkguard/driver"
)

// Resource factory implementations. Each creation fabricates a handle and
// stores the request verbatim; each destroy checks liveness exactly once.

// CreateShaderModule implements driver.Driver.
func (d *Driver) CreateShaderModule(dev driver.Device, info driver.ShaderModuleCreateInfo) (driver.ShaderModule, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreateShaderModule"); err != nil {
		return driver.Null, err
	}
	h := driver.ShaderModule(d.handle())
	d.shaderModules[h] = info
	return h, nil
}

// DestroyShaderModule implements driver.Driver.
func (d *Driver) DestroyShaderModule(dev driver.Device, sm driver.ShaderModule) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.shaderModules[sm]; !ok {
		d.violate("DestroyShaderModule: unknown or already destroyed handle")
		return
	}
	delete(d.shaderModules, sm)
}

// CreateRenderPass implements driver.Driver.
func (d *Driver) CreateRenderPass(dev driver.Device, info driver.RenderPassCreateInfo) (driver.RenderPass, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreateRenderPass"); err != nil {
		return driver.Null, err
	}
	h := driver.RenderPass(d.handle())
	d.renderPasses[h] = info
	return h, nil
}

// DestroyRenderPass implements driver.Driver.
func (d *Driver) DestroyRenderPass(dev driver.Device, rp driver.RenderPass) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.renderPasses[rp]; !ok {
		d.violate("DestroyRenderPass: unknown or already destroyed handle")
		return
	}
	delete(d.renderPasses, rp)
}

// CreateFramebuffer implements driver.Driver.
func (d *Driver) CreateFramebuffer(dev driver.Device, info driver.FramebufferCreateInfo) (driver.Framebuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreateFramebuffer"); err != nil {
		return driver.Null, err
	}
	if _, ok := d.renderPasses[info.RenderPass]; !ok {
		d.violate("CreateFramebuffer: render pass is not live")
	}
	h := driver.Framebuffer(d.handle())
	d.framebuffers[h] = info
	return h, nil
}

// DestroyFramebuffer implements driver.Driver.
func (d *Driver) DestroyFramebuffer(dev driver.Device, fb driver.Framebuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.framebuffers[fb]; !ok {
		d.violate("DestroyFramebuffer: unknown or already destroyed handle")
		return
	}
	delete(d.framebuffers, fb)
}

// CreateDescriptorSetLayout implements driver.Driver.
func (d *Driver) CreateDescriptorSetLayout(dev driver.Device, info driver.DescriptorSetLayoutCreateInfo) (driver.DescriptorSetLayout, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreateDescriptorSetLayout"); err != nil {
		return driver.Null, err
	}
	h := driver.DescriptorSetLayout(d.handle())
	d.setLayouts[h] = info
	return h, nil
}

// DestroyDescriptorSetLayout implements driver.Driver.
func (d *Driver) DestroyDescriptorSetLayout(dev driver.Device, dsl driver.DescriptorSetLayout) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.setLayouts[dsl]; !ok {
		d.violate("DestroyDescriptorSetLayout: unknown or already destroyed handle")
		return
	}
	delete(d.setLayouts, dsl)
}

// CreatePipelineLayout implements driver.Driver.
func (d *Driver) CreatePipelineLayout(dev driver.Device, info driver.PipelineLayoutCreateInfo) (driver.PipelineLayout, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreatePipelineLayout"); err != nil {
		return driver.Null, err
	}
	for _, sl := range info.SetLayouts {
		if _, ok := d.setLayouts[sl]; !ok {
			d.violate("CreatePipelineLayout: set layout is not live")
		}
	}
	// Deep-copy the request so later inspection sees what was submitted,
	// not what the caller mutated afterwards.
	stored := driver.PipelineLayoutCreateInfo{
		SetLayouts:         append([]driver.DescriptorSetLayout(nil), info.SetLayouts...),
		PushConstantRanges: append([]driver.PushConstantRange(nil), info.PushConstantRanges...),
	}
	h := driver.PipelineLayout(d.handle())
	d.pipelineLayouts[h] = stored
	return h, nil
}

// DestroyPipelineLayout implements driver.Driver.
func (d *Driver) DestroyPipelineLayout(dev driver.Device, pl driver.PipelineLayout) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pipelineLayouts[pl]; !ok {
		d.violate("DestroyPipelineLayout: unknown or already destroyed handle")
		return
	}
	delete(d.pipelineLayouts, pl)
}

// CreateGraphicsPipeline implements driver.Driver.
func (d *Driver) CreateGraphicsPipeline(dev driver.Device, cache driver.PipelineCache, info driver.GraphicsPipelineCreateInfo) (driver.Pipeline, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreateGraphicsPipeline"); err != nil {
		return driver.Null, err
	}
	if _, ok := d.pipelineLayouts[info.Layout]; !ok {
		d.violate("CreateGraphicsPipeline: pipeline layout is not live")
	}
	if info.RenderPass != driver.Null {
		if _, ok := d.renderPasses[info.RenderPass]; !ok {
			d.violate("CreateGraphicsPipeline: render pass is not live")
		}
	}
	for _, s := range info.Stages {
		if _, ok := d.shaderModules[s.Module]; !ok {
			d.violate("CreateGraphicsPipeline: stage shader module is not live")
		}
	}
	h := driver.Pipeline(d.handle())
	d.pipelines[h] = PipelineRecord{Cache: cache, Info: info}
	return h, nil
}

// DestroyPipeline implements driver.Driver.
func (d *Driver) DestroyPipeline(dev driver.Device, p driver.Pipeline) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.pipelines[p]
	if !ok {
		d.violate("DestroyPipeline: unknown or already destroyed handle")
		return
	}
	// A live pipeline must be destroyed before its dependencies; if one of
	// them is already gone the object model broke the destruction order.
	if _, ok := d.pipelineLayouts[rec.Info.Layout]; !ok {
		d.violate("DestroyPipeline: layout destroyed before pipeline")
	}
	if rec.Info.RenderPass != driver.Null {
		if _, ok := d.renderPasses[rec.Info.RenderPass]; !ok {
			d.violate("DestroyPipeline: render pass destroyed before pipeline")
		}
	}
	for _, s := range rec.Info.Stages {
		if _, ok := d.shaderModules[s.Module]; !ok {
			d.violate("DestroyPipeline: shader module destroyed before pipeline")
		}
	}
	delete(d.pipelines, p)
}

// CreatePipelineCache implements driver.Driver.
func (d *Driver) CreatePipelineCache(dev driver.Device, info driver.PipelineCacheCreateInfo) (driver.PipelineCache, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreatePipelineCache"); err != nil {
		return driver.Null, err
	}
	h := driver.PipelineCache(d.handle())
	d.caches[h] = append([]byte(nil), info.InitialData...)
	return h, nil
}

// DestroyPipelineCache implements driver.Driver.
func (d *Driver) DestroyPipelineCache(dev driver.Device, pc driver.PipelineCache) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.caches[pc]; !ok {
		d.violate("DestroyPipelineCache: unknown or already destroyed handle")
		return
	}
	delete(d.caches, pc)
}

// PipelineCacheData implements driver.Driver.
func (d *Driver) PipelineCacheData(dev driver.Device, pc driver.PipelineCache) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("PipelineCacheData"); err != nil {
		return nil, err
	}
	data, ok := d.caches[pc]
	if !ok {
		d.violate("PipelineCacheData: unknown handle")
		return nil, driver.ErrUnknownHandle
	}
	return append([]byte(nil), data...), nil
}

// MergePipelineCaches implements driver.Driver.
func (d *Driver) MergePipelineCaches(dev driver.Device, dst driver.PipelineCache, srcs []driver.PipelineCache) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("MergePipelineCaches"); err != nil {
		return err
	}
	data, ok := d.caches[dst]
	if !ok {
		d.violate("MergePipelineCaches: unknown destination handle")
		return driver.ErrUnknownHandle
	}
	for _, src := range srcs {
		blob, ok := d.caches[src]
		if !ok {
			d.violate("MergePipelineCaches: unknown source handle")
			return driver.ErrUnknownHandle
		}
		data = append(data, blob...)
	}
	d.caches[dst] = data
	return nil
}
