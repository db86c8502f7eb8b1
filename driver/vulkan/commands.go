package vulkan

import (
	"unsafe"

	vk "github.com/goki/vulkan"

	"github.com/gpukit/vkguard/driver"
)

func (d *Driver) CreateCommandPool(dev driver.Device, info driver.CommandPoolCreateInfo) (driver.CommandPool, error) {
	vdev, ok := d.device(dev)
	if !ok {
		return driver.Null, driver.ErrUnknownHandle
	}
	var pool vk.CommandPool
	res := vk.CreateCommandPool(vdev, &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		Flags:            vk.CommandPoolCreateFlags(info.Flags),
		QueueFamilyIndex: info.QueueFamilyIndex,
	}, nil, &pool)
	if err := result(res); err != nil {
		return driver.Null, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	h := driver.CommandPool(d.handle())
	d.pools[h] = pool
	return h, nil
}

func (d *Driver) DestroyCommandPool(dev driver.Device, pool driver.CommandPool) {
	d.mu.Lock()
	vdev, vpool := d.devices[dev], d.pools[pool]
	delete(d.pools, pool)
	d.mu.Unlock()
	if vdev != nil {
		vk.DestroyCommandPool(vdev, vpool, nil)
	}
}

func (d *Driver) ResetCommandPool(dev driver.Device, pool driver.CommandPool) error {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	vpool, poolOK := d.pools[pool]
	d.mu.Unlock()
	if !ok || !poolOK {
		return driver.ErrUnknownHandle
	}
	return result(vk.ResetCommandPool(vdev, vpool, 0))
}

func (d *Driver) AllocateCommandBuffers(dev driver.Device, pool driver.CommandPool, level driver.CommandBufferLevel, count int) ([]driver.CommandBuffer, error) {
	d.mu.Lock()
	vdev, ok := d.devices[dev]
	vpool, poolOK := d.pools[pool]
	d.mu.Unlock()
	if !ok || !poolOK {
		return nil, driver.ErrUnknownHandle
	}
	bufs := make([]vk.CommandBuffer, count)
	res := vk.AllocateCommandBuffers(vdev, &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        vpool,
		Level:              vk.CommandBufferLevel(level),
		CommandBufferCount: uint32(count),
	}, bufs)
	if err := result(res); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	handles := make([]driver.CommandBuffer, count)
	for i, cb := range bufs {
		h := driver.CommandBuffer(d.handle())
		d.cmdBufs[h] = cb
		handles[i] = h
	}
	return handles, nil
}

func (d *Driver) FreeCommandBuffers(dev driver.Device, pool driver.CommandPool, bufs []driver.CommandBuffer) {
	d.mu.Lock()
	vdev, vpool := d.devices[dev], d.pools[pool]
	vbufs := make([]vk.CommandBuffer, 0, len(bufs))
	for _, b := range bufs {
		if cb, ok := d.cmdBufs[b]; ok {
			vbufs = append(vbufs, cb)
			delete(d.cmdBufs, b)
		}
	}
	d.mu.Unlock()
	if vdev != nil && len(vbufs) > 0 {
		vk.FreeCommandBuffers(vdev, vpool, uint32(len(vbufs)), vbufs)
	}
}

func (d *Driver) BeginCommandBuffer(cb driver.CommandBuffer, info driver.CommandBufferBeginInfo) error {
	vcb, ok := d.cmdBuf(cb)
	if !ok {
		return driver.ErrUnknownHandle
	}
	return result(vk.BeginCommandBuffer(vcb, &vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(info.Flags),
	}))
}

func (d *Driver) EndCommandBuffer(cb driver.CommandBuffer) error {
	vcb, ok := d.cmdBuf(cb)
	if !ok {
		return driver.ErrUnknownHandle
	}
	return result(vk.EndCommandBuffer(vcb))
}

func (d *Driver) ResetCommandBuffer(cb driver.CommandBuffer) error {
	vcb, ok := d.cmdBuf(cb)
	if !ok {
		return driver.ErrUnknownHandle
	}
	return result(vk.ResetCommandBuffer(vcb, 0))
}

func (d *Driver) CmdBeginRenderPass(cb driver.CommandBuffer, info driver.RenderPassBeginInfo, contents driver.SubpassContents) {
	d.mu.Lock()
	vcb := d.cmdBufs[cb]
	vrp := d.renderPasses[info.RenderPass]
	vfb := d.framebuffers[info.Framebuffer]
	d.mu.Unlock()
	if vcb == nil {
		return
	}
	clearValues := vkClearValues(info.ClearValues)
	vk.CmdBeginRenderPass(vcb, &vk.RenderPassBeginInfo{
		SType:           vk.StructureTypeRenderPassBeginInfo,
		RenderPass:      vrp,
		Framebuffer:     vfb,
		RenderArea:      vkRect2D(info.RenderArea),
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}, vk.SubpassContents(contents))
}

func (d *Driver) CmdNextSubpass(cb driver.CommandBuffer, contents driver.SubpassContents) {
	if vcb, ok := d.cmdBuf(cb); ok {
		vk.CmdNextSubpass(vcb, vk.SubpassContents(contents))
	}
}

func (d *Driver) CmdEndRenderPass(cb driver.CommandBuffer) {
	if vcb, ok := d.cmdBuf(cb); ok {
		vk.CmdEndRenderPass(vcb)
	}
}

func (d *Driver) CmdBindPipeline(cb driver.CommandBuffer, point driver.PipelineBindPoint, p driver.Pipeline) {
	d.mu.Lock()
	vcb, vp := d.cmdBufs[cb], d.pipelines[p]
	d.mu.Unlock()
	if vcb != nil {
		vk.CmdBindPipeline(vcb, vk.PipelineBindPoint(point), vp)
	}
}

func (d *Driver) CmdBindDescriptorSets(cb driver.CommandBuffer, point driver.PipelineBindPoint, layout driver.PipelineLayout, firstSet uint32, sets []driver.DescriptorSet, dynamicOffsets []uint32) {
	d.mu.Lock()
	vcb, vlayout := d.cmdBufs[cb], d.layouts[layout]
	vsets := make([]vk.DescriptorSet, len(sets))
	for i, s := range sets {
		vsets[i] = d.descSets[s]
	}
	d.mu.Unlock()
	if vcb != nil {
		vk.CmdBindDescriptorSets(vcb, vk.PipelineBindPoint(point), vlayout,
			firstSet, uint32(len(vsets)), vsets, uint32(len(dynamicOffsets)), dynamicOffsets)
	}
}

func (d *Driver) CmdPushConstants(cb driver.CommandBuffer, layout driver.PipelineLayout, stages driver.ShaderStageFlags, offset uint32, data []byte) {
	d.mu.Lock()
	vcb, vlayout := d.cmdBufs[cb], d.layouts[layout]
	d.mu.Unlock()
	if vcb == nil || len(data) == 0 {
		return
	}
	vk.CmdPushConstants(vcb, vlayout, vk.ShaderStageFlags(stages), offset, uint32(len(data)), unsafe.Pointer(&data[0]))
}

func (d *Driver) CmdSetViewport(cb driver.CommandBuffer, first uint32, viewports []driver.Viewport) {
	if vcb, ok := d.cmdBuf(cb); ok {
		vk.CmdSetViewport(vcb, first, uint32(len(viewports)), vkViewports(viewports))
	}
}

func (d *Driver) CmdSetScissor(cb driver.CommandBuffer, first uint32, scissors []driver.Rect2D) {
	if vcb, ok := d.cmdBuf(cb); ok {
		vk.CmdSetScissor(vcb, first, uint32(len(scissors)), vkRects(scissors))
	}
}

func (d *Driver) CmdBindVertexBuffers(cb driver.CommandBuffer, firstBinding uint32, buffers []driver.Buffer, offsets []driver.DeviceSize) {
	d.mu.Lock()
	vcb := d.cmdBufs[cb]
	vbufs := make([]vk.Buffer, len(buffers))
	for i, b := range buffers {
		vbufs[i] = d.buffers[b]
	}
	d.mu.Unlock()
	if vcb == nil {
		return
	}
	voffsets := make([]vk.DeviceSize, len(offsets))
	for i, o := range offsets {
		voffsets[i] = vk.DeviceSize(o)
	}
	vk.CmdBindVertexBuffers(vcb, firstBinding, uint32(len(vbufs)), vbufs, voffsets)
}

func (d *Driver) CmdBindIndexBuffer(cb driver.CommandBuffer, buf driver.Buffer, offset driver.DeviceSize, indexType driver.IndexType) {
	d.mu.Lock()
	vcb, vbuf := d.cmdBufs[cb], d.buffers[buf]
	d.mu.Unlock()
	if vcb != nil {
		vk.CmdBindIndexBuffer(vcb, vbuf, vk.DeviceSize(offset), vk.IndexType(indexType))
	}
}

func (d *Driver) CmdDraw(cb driver.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	if vcb, ok := d.cmdBuf(cb); ok {
		vk.CmdDraw(vcb, vertexCount, instanceCount, firstVertex, firstInstance)
	}
}

func (d *Driver) CmdDrawIndexed(cb driver.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	if vcb, ok := d.cmdBuf(cb); ok {
		vk.CmdDrawIndexed(vcb, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
	}
}

func (d *Driver) CmdPipelineBarrier(cb driver.CommandBuffer, src, dst driver.PipelineStageFlags, barriers []driver.MemoryBarrier) {
	vcb, ok := d.cmdBuf(cb)
	if !ok {
		return
	}
	vbarriers := make([]vk.MemoryBarrier, len(barriers))
	for i, b := range barriers {
		vbarriers[i] = vk.MemoryBarrier{
			SType:         vk.StructureTypeMemoryBarrier,
			SrcAccessMask: vk.AccessFlags(b.SrcAccess),
			DstAccessMask: vk.AccessFlags(b.DstAccess),
		}
	}
	vk.CmdPipelineBarrier(vcb, vk.PipelineStageFlags(src), vk.PipelineStageFlags(dst), 0,
		uint32(len(vbarriers)), vbarriers, 0, nil, 0, nil)
}

func (d *Driver) CmdCopyBuffer(cb driver.CommandBuffer, src, dst driver.Buffer, regions []driver.BufferCopy) {
	d.mu.Lock()
	vcb, vsrc, vdst := d.cmdBufs[cb], d.buffers[src], d.buffers[dst]
	d.mu.Unlock()
	if vcb == nil {
		return
	}
	vregions := make([]vk.BufferCopy, len(regions))
	for i, r := range regions {
		vregions[i] = vk.BufferCopy{
			SrcOffset: vk.DeviceSize(r.SrcOffset),
			DstOffset: vk.DeviceSize(r.DstOffset),
			Size:      vk.DeviceSize(r.Size),
		}
	}
	vk.CmdCopyBuffer(vcb, vsrc, vdst, uint32(len(vregions)), vregions)
}
