package null

import (
	"github.com/gpukit/vkguard/driver"
)

// Command pool, command buffer lifecycle, and command recording. The null
// driver mirrors the native API's deferral: recording calls never fail,
// but recording on a buffer that is not begun is counted as a violation
// exactly as a real driver would hit undefined behavior.

// CreateCommandPool implements driver.Driver.
func (d *Driver) CreateCommandPool(dev driver.Device, info driver.CommandPoolCreateInfo) (driver.CommandPool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("CreateCommandPool"); err != nil {
		return driver.Null, err
	}
	h := driver.CommandPool(d.handle())
	d.pools[h] = info
	return h, nil
}

// DestroyCommandPool implements driver.Driver. Destroying a pool frees all
// buffers allocated from it, as the native API does.
func (d *Driver) DestroyCommandPool(dev driver.Device, pool driver.CommandPool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pools[pool]; !ok {
		d.violate("DestroyCommandPool: unknown or already destroyed handle")
		return
	}
	for cb, st := range d.buffers {
		if st.pool == pool {
			delete(d.buffers, cb)
		}
	}
	delete(d.pools, pool)
}

// ResetCommandPool implements driver.Driver.
func (d *Driver) ResetCommandPool(dev driver.Device, pool driver.CommandPool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("ResetCommandPool"); err != nil {
		return err
	}
	if _, ok := d.pools[pool]; !ok {
		d.violate("ResetCommandPool: unknown handle")
		return driver.ErrUnknownHandle
	}
	for _, st := range d.buffers {
		if st.pool == pool {
			st.begun = false
			st.ended = false
			st.passDepth = 0
			st.ops = nil
		}
	}
	return nil
}

// AllocateCommandBuffers implements driver.Driver.
func (d *Driver) AllocateCommandBuffers(dev driver.Device, pool driver.CommandPool, level driver.CommandBufferLevel, count int) ([]driver.CommandBuffer, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("AllocateCommandBuffers"); err != nil {
		return nil, err
	}
	if _, ok := d.pools[pool]; !ok {
		d.violate("AllocateCommandBuffers: unknown pool handle")
		return nil, driver.ErrUnknownHandle
	}
	bufs := make([]driver.CommandBuffer, count)
	for i := range bufs {
		cb := driver.CommandBuffer(d.handle())
		d.buffers[cb] = &bufferState{pool: pool}
		bufs[i] = cb
	}
	return bufs, nil
}

// FreeCommandBuffers implements driver.Driver.
func (d *Driver) FreeCommandBuffers(dev driver.Device, pool driver.CommandPool, bufs []driver.CommandBuffer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, cb := range bufs {
		st, ok := d.buffers[cb]
		if !ok || st.pool != pool {
			d.violate("FreeCommandBuffers: buffer not allocated from pool")
			continue
		}
		delete(d.buffers, cb)
	}
}

// BeginCommandBuffer implements driver.Driver.
func (d *Driver) BeginCommandBuffer(cb driver.CommandBuffer, info driver.CommandBufferBeginInfo) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("BeginCommandBuffer"); err != nil {
		return err
	}
	st, ok := d.buffers[cb]
	if !ok {
		d.violate("BeginCommandBuffer: unknown handle")
		return driver.ErrUnknownHandle
	}
	if st.begun && !st.ended {
		d.violate("BeginCommandBuffer: buffer already recording")
	}
	st.begun = true
	st.ended = false
	st.beginInfo = info
	st.passDepth = 0
	st.ops = nil
	return nil
}

// EndCommandBuffer implements driver.Driver.
func (d *Driver) EndCommandBuffer(cb driver.CommandBuffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("EndCommandBuffer"); err != nil {
		return err
	}
	st, ok := d.buffers[cb]
	if !ok {
		d.violate("EndCommandBuffer: unknown handle")
		return driver.ErrUnknownHandle
	}
	if !st.begun || st.ended {
		d.violate("EndCommandBuffer: buffer not recording")
	}
	if st.passDepth != 0 {
		d.violate("EndCommandBuffer: render pass still open")
	}
	st.ended = true
	return nil
}

// ResetCommandBuffer implements driver.Driver.
func (d *Driver) ResetCommandBuffer(cb driver.CommandBuffer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.fail("ResetCommandBuffer"); err != nil {
		return err
	}
	st, ok := d.buffers[cb]
	if !ok {
		d.violate("ResetCommandBuffer: unknown handle")
		return driver.ErrUnknownHandle
	}
	st.begun = false
	st.ended = false
	st.passDepth = 0
	st.ops = nil
	return nil
}

// record appends an op to a buffer's command stream, checking that the
// buffer is in its native recording window.
func (d *Driver) record(cb driver.CommandBuffer, name string, op Op) {
	d.mu.Lock()
	defer d.mu.Unlock()
	st, ok := d.buffers[cb]
	if !ok {
		d.violate(name + ": unknown handle")
		return
	}
	if !st.begun || st.ended {
		d.violate(name + ": buffer not recording")
		return
	}
	st.ops = append(st.ops, op)
}

// CmdBeginRenderPass implements driver.Driver.
func (d *Driver) CmdBeginRenderPass(cb driver.CommandBuffer, info driver.RenderPassBeginInfo, contents driver.SubpassContents) {
	d.record(cb, "CmdBeginRenderPass", OpBeginRenderPass{Info: info, Contents: contents})
	d.mu.Lock()
	defer d.mu.Unlock()
	if st, ok := d.buffers[cb]; ok && st.begun && !st.ended {
		if st.passDepth != 0 {
			d.violate("CmdBeginRenderPass: render passes do not nest")
		}
		st.passDepth++
	}
}

// CmdNextSubpass implements driver.Driver.
func (d *Driver) CmdNextSubpass(cb driver.CommandBuffer, contents driver.SubpassContents) {
	d.record(cb, "CmdNextSubpass", OpNextSubpass{Contents: contents})
}

// CmdEndRenderPass implements driver.Driver.
func (d *Driver) CmdEndRenderPass(cb driver.CommandBuffer) {
	d.record(cb, "CmdEndRenderPass", OpEndRenderPass{})
	d.mu.Lock()
	defer d.mu.Unlock()
	if st, ok := d.buffers[cb]; ok && st.begun && !st.ended {
		if st.passDepth == 0 {
			d.violate("CmdEndRenderPass: no render pass open")
			return
		}
		st.passDepth--
	}
}

// CmdBindPipeline implements driver.Driver.
func (d *Driver) CmdBindPipeline(cb driver.CommandBuffer, point driver.PipelineBindPoint, p driver.Pipeline) {
	d.record(cb, "CmdBindPipeline", OpBindPipeline{Point: point, Pipeline: p})
}

// CmdBindDescriptorSets implements driver.Driver.
func (d *Driver) CmdBindDescriptorSets(cb driver.CommandBuffer, point driver.PipelineBindPoint, layout driver.PipelineLayout, firstSet uint32, sets []driver.DescriptorSet, dynamicOffsets []uint32) {
	d.record(cb, "CmdBindDescriptorSets", OpBindDescriptorSets{
		Point:          point,
		Layout:         layout,
		FirstSet:       firstSet,
		Sets:           append([]driver.DescriptorSet(nil), sets...),
		DynamicOffsets: append([]uint32(nil), dynamicOffsets...),
	})
}

// CmdPushConstants implements driver.Driver.
func (d *Driver) CmdPushConstants(cb driver.CommandBuffer, layout driver.PipelineLayout, stages driver.ShaderStageFlags, offset uint32, data []byte) {
	d.record(cb, "CmdPushConstants", OpPushConstants{
		Layout: layout,
		Stages: stages,
		Offset: offset,
		Data:   append([]byte(nil), data...),
	})
}

// CmdSetViewport implements driver.Driver.
func (d *Driver) CmdSetViewport(cb driver.CommandBuffer, first uint32, viewports []driver.Viewport) {
	d.record(cb, "CmdSetViewport", OpSetViewport{First: first, Viewports: append([]driver.Viewport(nil), viewports...)})
}

// CmdSetScissor implements driver.Driver.
func (d *Driver) CmdSetScissor(cb driver.CommandBuffer, first uint32, scissors []driver.Rect2D) {
	d.record(cb, "CmdSetScissor", OpSetScissor{First: first, Scissors: append([]driver.Rect2D(nil), scissors...)})
}

// CmdBindVertexBuffers implements driver.Driver.
func (d *Driver) CmdBindVertexBuffers(cb driver.CommandBuffer, firstBinding uint32, buffers []driver.Buffer, offsets []driver.DeviceSize) {
	d.record(cb, "CmdBindVertexBuffers", OpBindVertexBuffers{
		First:   firstBinding,
		Buffers: append([]driver.Buffer(nil), buffers...),
		Offsets: append([]driver.DeviceSize(nil), offsets...),
	})
}

// CmdBindIndexBuffer implements driver.Driver.
func (d *Driver) CmdBindIndexBuffer(cb driver.CommandBuffer, buf driver.Buffer, offset driver.DeviceSize, indexType driver.IndexType) {
	d.record(cb, "CmdBindIndexBuffer", OpBindIndexBuffer{Buffer: buf, Offset: offset, IndexType: indexType})
}

// CmdDraw implements driver.Driver.
func (d *Driver) CmdDraw(cb driver.CommandBuffer, vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	d.record(cb, "CmdDraw", OpDraw{
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		FirstVertex:   firstVertex,
		FirstInstance: firstInstance,
	})
}

// CmdDrawIndexed implements driver.Driver.
func (d *Driver) CmdDrawIndexed(cb driver.CommandBuffer, indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	d.record(cb, "CmdDrawIndexed", OpDrawIndexed{
		IndexCount:    indexCount,
		InstanceCount: instanceCount,
		FirstIndex:    firstIndex,
		VertexOffset:  vertexOffset,
		FirstInstance: firstInstance,
	})
}

// CmdPipelineBarrier implements driver.Driver.
func (d *Driver) CmdPipelineBarrier(cb driver.CommandBuffer, src, dst driver.PipelineStageFlags, barriers []driver.MemoryBarrier) {
	d.record(cb, "CmdPipelineBarrier", OpPipelineBarrier{Src: src, Dst: dst, Barriers: append([]driver.MemoryBarrier(nil), barriers...)})
}

// CmdCopyBuffer implements driver.Driver.
func (d *Driver) CmdCopyBuffer(cb driver.CommandBuffer, src, dst driver.Buffer, regions []driver.BufferCopy) {
	d.record(cb, "CmdCopyBuffer", OpCopyBuffer{Src: src, Dst: dst, Regions: append([]driver.BufferCopy(nil), regions...)})
}
