package command

import (
	"errors"
	"fmt"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/pipeline"
)

// Recording errors.
var (
	// ErrNotRecording is returned when the underlying buffer left the
	// Recording phase, for example through a pool reset.
	ErrNotRecording = errors.New("command: buffer not recording")

	// ErrRenderPassEnded is returned when an operation is issued through a
	// RenderPassRecording whose End has already run.
	ErrRenderPassEnded = errors.New("command: render pass already ended")

	// ErrNilPipeline is returned when binding a nil pipeline.
	ErrNilPipeline = errors.New("command: pipeline is nil")

	// ErrNilFramebuffer is returned when beginning a render pass without a
	// framebuffer.
	ErrNilFramebuffer = errors.New("command: framebuffer is nil")

	// ErrNoMoreSubpasses is returned by NextSubpass past the last subpass.
	ErrNoMoreSubpasses = errors.New("command: render pass has no further subpass")
)

// RenderPassBeginInfo describes a render pass instance to record.
type RenderPassBeginInfo struct {
	RenderPass  *vkguard.RenderPass
	Framebuffer *vkguard.Framebuffer
	RenderArea  driver.Rect2D
	ClearValues []driver.ClearValue
}

// Recording is the surface for commands legal outside a render pass. It is
// returned by Buffer.Begin and stays valid until End. While a render pass
// is open the outer Recording is inert: commands must go through the
// RenderPassRecording until its End runs.
type Recording struct {
	buf   *Buffer
	ended bool
	pass  *RenderPassRecording
}

// RenderPassRecording is the surface for commands legal inside a render
// pass. It is returned by Recording.BeginRenderPass and stays valid until
// its End runs.
type RenderPassRecording struct {
	rec          *Recording
	ended        bool
	subpass      int
	subpassCount int
}

// checkLocked validates the recording surface. Caller holds the pool lock.
func (r *Recording) checkLocked() error {
	if r.ended {
		return ErrRecordingEnded
	}
	if r.pass != nil {
		return ErrRenderPassActive
	}
	if r.buf.phase != PhaseRecording {
		return fmt.Errorf("%w: phase %v", ErrNotRecording, r.buf.phase)
	}
	return nil
}

func (rp *RenderPassRecording) checkLocked() error {
	if rp.ended {
		return ErrRenderPassEnded
	}
	if rp.rec.buf.phase != PhaseRecording {
		return fmt.Errorf("%w: phase %v", ErrNotRecording, rp.rec.buf.phase)
	}
	return nil
}

// Buffer returns the command buffer being recorded.
func (r *Recording) Buffer() *Buffer { return r.buf }

// End completes the recording and moves the buffer to Executable. Ending
// with an open render pass is rejected and the recording stays usable, so
// the caller can close the pass and try again. A native end failure leaves
// the buffer Invalid.
func (r *Recording) End() error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	return r.endLocked()
}

func (r *Recording) endLocked() error {
	b := r.buf
	if r.ended {
		return ErrRecordingEnded
	}
	if r.pass != nil {
		return ErrRenderPassActive
	}
	if b.phase != PhaseRecording {
		return fmt.Errorf("%w: phase %v", ErrNotRecording, b.phase)
	}
	if err := b.pool.dev.Driver().EndCommandBuffer(b.handle); err != nil {
		b.phase = PhaseInvalid
		r.ended = true
		return fmt.Errorf("command: end: %w", err)
	}
	b.phase = PhaseExecutable
	r.ended = true
	return nil
}

// finish ends the recording on behalf of Buffer.Record. A render pass the
// callback left open is force-closed first, so the scoped path can never
// hand back a buffer with an open recording stream.
func (r *Recording) finish() error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if pass := r.pass; pass != nil && !r.ended && b.phase == PhaseRecording {
		vkguard.Logger().Warn("render pass left open by recording callback",
			"buffer", uint64(b.handle))
		b.pool.dev.Driver().CmdEndRenderPass(b.handle)
		pass.ended = true
		r.pass = nil
	}
	return r.endLocked()
}

// BeginRenderPass opens a render pass instance. The render pass and
// framebuffer are retained by the buffer until the recording is discarded.
// Commands inside the pass go through the returned RenderPassRecording;
// the outer Recording rejects operations until the pass ends.
func (r *Recording) BeginRenderPass(info RenderPassBeginInfo, contents driver.SubpassContents) (*RenderPassRecording, error) {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return nil, err
	}
	if info.RenderPass == nil {
		return nil, vkguard.ErrNilRenderPass
	}
	if info.Framebuffer == nil {
		return nil, ErrNilFramebuffer
	}
	rp, fb := info.RenderPass, info.Framebuffer
	b.holdLocked(rp, rp.Retain)
	b.holdLocked(fb, fb.Retain)
	b.pool.dev.Driver().CmdBeginRenderPass(b.handle, driver.RenderPassBeginInfo{
		RenderPass:  rp.Handle(),
		Framebuffer: fb.Handle(),
		RenderArea:  info.RenderArea,
		ClearValues: info.ClearValues,
	}, contents)
	r.pass = &RenderPassRecording{rec: r, subpassCount: rp.SubpassCount()}
	return r.pass, nil
}

// RenderPass records a render pass instance scoped to fn: the pass is
// guaranteed to be ended on every path, including when fn returns an error.
func (r *Recording) RenderPass(info RenderPassBeginInfo, contents driver.SubpassContents, fn func(*RenderPassRecording) error) error {
	rp, err := r.BeginRenderPass(info, contents)
	if err != nil {
		return err
	}
	return errors.Join(fn(rp), rp.End())
}

// NextSubpass advances to the next subpass of the open render pass.
func (rp *RenderPassRecording) NextSubpass(contents driver.SubpassContents) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	if rp.subpass+1 >= rp.subpassCount {
		return fmt.Errorf("%w: at subpass %d of %d", ErrNoMoreSubpasses, rp.subpass, rp.subpassCount)
	}
	b.pool.dev.Driver().CmdNextSubpass(b.handle, contents)
	rp.subpass++
	return nil
}

// Subpass returns the index of the current subpass.
func (rp *RenderPassRecording) Subpass() int {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	return rp.subpass
}

// End closes the render pass and reactivates the outer Recording.
func (rp *RenderPassRecording) End() error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdEndRenderPass(b.handle)
	rp.ended = true
	rp.rec.pass = nil
	return nil
}

// Draw records a non-indexed draw.
func (rp *RenderPassRecording) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdDraw(b.handle, vertexCount, instanceCount, firstVertex, firstInstance)
	return nil
}

// DrawIndexed records an indexed draw.
func (rp *RenderPassRecording) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdDrawIndexed(b.handle, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
	return nil
}

// Commands legal outside a render pass only.

// PipelineBarrier records a memory barrier between pipeline stages.
func (r *Recording) PipelineBarrier(src, dst driver.PipelineStageFlags, barriers ...driver.MemoryBarrier) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdPipelineBarrier(b.handle, src, dst, barriers)
	return nil
}

// CopyBuffer records a buffer-to-buffer copy.
func (r *Recording) CopyBuffer(src, dst driver.Buffer, regions ...driver.BufferCopy) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdCopyBuffer(b.handle, src, dst, regions)
	return nil
}

// Commands legal in either scope. Each exists on both recording surfaces.

func (b *Buffer) bindPipelineLocked(p *pipeline.Pipeline) {
	b.pool.dev.Driver().CmdBindPipeline(b.handle, driver.BindPointGraphics, p.Handle())
	b.holdLocked(p, p.Retain)
}

// BindPipeline binds a graphics pipeline. The buffer retains the pipeline
// until the recording is discarded.
func (r *Recording) BindPipeline(p *pipeline.Pipeline) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	if p == nil {
		return ErrNilPipeline
	}
	b.bindPipelineLocked(p)
	return nil
}

// BindPipeline binds a graphics pipeline for subsequent draws in the pass.
func (rp *RenderPassRecording) BindPipeline(p *pipeline.Pipeline) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	if p == nil {
		return ErrNilPipeline
	}
	b.bindPipelineLocked(p)
	return nil
}

func (b *Buffer) bindDescriptorSetsLocked(layout *pipeline.Layout, firstSet uint32, sets []driver.DescriptorSet, dynamicOffsets []uint32) {
	b.pool.dev.Driver().CmdBindDescriptorSets(b.handle, driver.BindPointGraphics, layout.Handle(), firstSet, sets, dynamicOffsets)
	b.holdLocked(layout, layout.Retain)
}

// BindDescriptorSets binds descriptor sets against the given layout.
func (r *Recording) BindDescriptorSets(layout *pipeline.Layout, firstSet uint32, sets []driver.DescriptorSet, dynamicOffsets []uint32) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	if layout == nil {
		return pipeline.ErrNilLayout
	}
	b.bindDescriptorSetsLocked(layout, firstSet, sets, dynamicOffsets)
	return nil
}

// BindDescriptorSets binds descriptor sets against the given layout.
func (rp *RenderPassRecording) BindDescriptorSets(layout *pipeline.Layout, firstSet uint32, sets []driver.DescriptorSet, dynamicOffsets []uint32) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	if layout == nil {
		return pipeline.ErrNilLayout
	}
	b.bindDescriptorSetsLocked(layout, firstSet, sets, dynamicOffsets)
	return nil
}

func (b *Buffer) pushConstantsLocked(layout *pipeline.Layout, stages driver.ShaderStageFlags, offset uint32, data []byte) {
	b.pool.dev.Driver().CmdPushConstants(b.handle, layout.Handle(), stages, offset, data)
	b.holdLocked(layout, layout.Retain)
}

// PushConstants updates push constants through the given layout.
func (r *Recording) PushConstants(layout *pipeline.Layout, stages driver.ShaderStageFlags, offset uint32, data []byte) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	if layout == nil {
		return pipeline.ErrNilLayout
	}
	b.pushConstantsLocked(layout, stages, offset, data)
	return nil
}

// PushConstants updates push constants through the given layout.
func (rp *RenderPassRecording) PushConstants(layout *pipeline.Layout, stages driver.ShaderStageFlags, offset uint32, data []byte) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	if layout == nil {
		return pipeline.ErrNilLayout
	}
	b.pushConstantsLocked(layout, stages, offset, data)
	return nil
}

// SetViewport sets dynamic viewports starting at index first.
func (r *Recording) SetViewport(first uint32, viewports ...driver.Viewport) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdSetViewport(b.handle, first, viewports)
	return nil
}

// SetViewport sets dynamic viewports starting at index first.
func (rp *RenderPassRecording) SetViewport(first uint32, viewports ...driver.Viewport) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdSetViewport(b.handle, first, viewports)
	return nil
}

// SetScissor sets dynamic scissor rectangles starting at index first.
func (r *Recording) SetScissor(first uint32, scissors ...driver.Rect2D) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdSetScissor(b.handle, first, scissors)
	return nil
}

// SetScissor sets dynamic scissor rectangles starting at index first.
func (rp *RenderPassRecording) SetScissor(first uint32, scissors ...driver.Rect2D) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdSetScissor(b.handle, first, scissors)
	return nil
}

// BindVertexBuffers binds vertex buffers starting at the given binding.
func (r *Recording) BindVertexBuffers(firstBinding uint32, buffers []driver.Buffer, offsets []driver.DeviceSize) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdBindVertexBuffers(b.handle, firstBinding, buffers, offsets)
	return nil
}

// BindVertexBuffers binds vertex buffers starting at the given binding.
func (rp *RenderPassRecording) BindVertexBuffers(firstBinding uint32, buffers []driver.Buffer, offsets []driver.DeviceSize) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdBindVertexBuffers(b.handle, firstBinding, buffers, offsets)
	return nil
}

// BindIndexBuffer binds the index buffer for indexed draws.
func (r *Recording) BindIndexBuffer(buf driver.Buffer, offset driver.DeviceSize, indexType driver.IndexType) error {
	b := r.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := r.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdBindIndexBuffer(b.handle, buf, offset, indexType)
	return nil
}

// BindIndexBuffer binds the index buffer for indexed draws.
func (rp *RenderPassRecording) BindIndexBuffer(buf driver.Buffer, offset driver.DeviceSize, indexType driver.IndexType) error {
	b := rp.rec.buf
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if err := rp.checkLocked(); err != nil {
		return err
	}
	b.pool.dev.Driver().CmdBindIndexBuffer(b.handle, buf, offset, indexType)
	return nil
}
