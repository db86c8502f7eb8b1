package command

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/driver/null"
	"github.com/gpukit/vkguard/pipeline"
)

// renderFixture is a device with everything needed to record a render pass.
type renderFixture struct {
	drv  *null.Driver
	dev  *vkguard.Device
	rp   *vkguard.RenderPass
	fb   *vkguard.Framebuffer
	pipe *pipeline.Pipeline
	pool *Pool
}

func newRenderFixture(t *testing.T) *renderFixture {
	t.Helper()
	drv := null.New()
	dev, err := vkguard.NewDevice(drv, drv.NewDevice())
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	rp, err := vkguard.NewRenderPass(dev, driver.RenderPassCreateInfo{
		Subpasses: []driver.SubpassDescription{
			{BindPoint: driver.BindPointGraphics},
			{BindPoint: driver.BindPointGraphics},
		},
	})
	if err != nil {
		t.Fatalf("NewRenderPass: %v", err)
	}
	fb, err := vkguard.NewFramebuffer(dev, rp, nil, 640, 480, 1)
	if err != nil {
		t.Fatalf("NewFramebuffer: %v", err)
	}
	vs, err := vkguard.NewShaderModule(dev, []uint32{0x07230203})
	if err != nil {
		t.Fatalf("NewShaderModule: %v", err)
	}
	layout, err := pipeline.NewLayout(dev).Build()
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	pipe, err := pipeline.NewGraphics(layout).
		AddStage(pipeline.ShaderStage{Stage: driver.StageVertex, Module: vs}).
		RenderPass(rp, 0).
		Build()
	if err != nil {
		t.Fatalf("pipeline Build: %v", err)
	}
	layout.Release()
	vs.Release()
	pool, err := NewPool(dev, 0, driver.PoolResetCommandBuffer)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	return &renderFixture{drv: drv, dev: dev, rp: rp, fb: fb, pipe: pipe, pool: pool}
}

func (f *renderFixture) release() {
	f.pool.Release()
	f.pipe.Release()
	f.fb.Release()
	f.rp.Release()
	f.dev.Release()
}

func (f *renderFixture) beginInfo() RenderPassBeginInfo {
	return RenderPassBeginInfo{
		RenderPass:  f.rp,
		Framebuffer: f.fb,
		RenderArea:  driver.Rect2D{Extent: driver.Extent2D{Width: 640, Height: 480}},
		ClearValues: []driver.ClearValue{driver.ClearColor(0, 0, 0, 1)},
	}
}

func TestFullRecording(t *testing.T) {
	f := newRenderFixture(t)

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]
	err := b.Record(0, func(r *Recording) error {
		if err := r.PipelineBarrier(driver.PipelineStageTopOfPipe, driver.PipelineStageTransfer); err != nil {
			return err
		}
		return r.RenderPass(f.beginInfo(), driver.ContentsInline, func(rp *RenderPassRecording) error {
			if err := rp.BindPipeline(f.pipe); err != nil {
				return err
			}
			if err := rp.SetViewport(0, driver.Viewport{Width: 640, Height: 480, MaxDepth: 1}); err != nil {
				return err
			}
			if err := rp.Draw(3, 1, 0, 0); err != nil {
				return err
			}
			if err := rp.NextSubpass(driver.ContentsInline); err != nil {
				return err
			}
			return rp.DrawIndexed(6, 1, 0, 0, 0)
		})
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if b.Phase() != PhaseExecutable {
		t.Fatalf("phase = %v, want executable", b.Phase())
	}

	ops := f.drv.Commands(b.Handle())
	wantTypes := []string{
		"null.OpPipelineBarrier",
		"null.OpBeginRenderPass",
		"null.OpBindPipeline",
		"null.OpSetViewport",
		"null.OpDraw",
		"null.OpNextSubpass",
		"null.OpDrawIndexed",
		"null.OpEndRenderPass",
	}
	if len(ops) != len(wantTypes) {
		t.Fatalf("recorded %d ops, want %d", len(ops), len(wantTypes))
	}
	for i, op := range ops {
		if got := fmt.Sprintf("%T", op); got != wantTypes[i] {
			t.Errorf("ops[%d] = %s, want %s", i, got, wantTypes[i])
		}
	}
	if v := f.drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}

	f.release()
	if got := f.drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
}

func TestOuterRecordingInertDuringRenderPass(t *testing.T) {
	f := newRenderFixture(t)
	defer f.release()

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	r, err := bufs[0].Begin(0)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	rp, err := r.BeginRenderPass(f.beginInfo(), driver.ContentsInline)
	if err != nil {
		t.Fatalf("BeginRenderPass: %v", err)
	}

	// Outside-scope commands through the outer surface are rejected while
	// the pass is open.
	if err := r.PipelineBarrier(driver.PipelineStageTopOfPipe, driver.PipelineStageTransfer); !errors.Is(err, ErrRenderPassActive) {
		t.Errorf("PipelineBarrier error = %v, want %v", err, ErrRenderPassActive)
	}
	if err := r.CopyBuffer(1, 2); !errors.Is(err, ErrRenderPassActive) {
		t.Errorf("CopyBuffer error = %v, want %v", err, ErrRenderPassActive)
	}
	if _, err := r.BeginRenderPass(f.beginInfo(), driver.ContentsInline); !errors.Is(err, ErrRenderPassActive) {
		t.Errorf("nested BeginRenderPass error = %v, want %v", err, ErrRenderPassActive)
	}
	if err := r.End(); !errors.Is(err, ErrRenderPassActive) {
		t.Errorf("End error = %v, want %v", err, ErrRenderPassActive)
	}

	// Closing the pass reactivates the outer surface; the recording can
	// then complete.
	if err := rp.End(); err != nil {
		t.Fatalf("render pass End: %v", err)
	}
	if err := r.PipelineBarrier(driver.PipelineStageTransfer, driver.PipelineStageBottomOfPipe); err != nil {
		t.Fatalf("PipelineBarrier after pass: %v", err)
	}
	if err := r.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if v := f.drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestStaleHandlesRejected(t *testing.T) {
	f := newRenderFixture(t)
	defer f.release()

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	r, err := bufs[0].Begin(0)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	rp, err := r.BeginRenderPass(f.beginInfo(), driver.ContentsInline)
	if err != nil {
		t.Fatalf("BeginRenderPass: %v", err)
	}
	if err := rp.End(); err != nil {
		t.Fatalf("render pass End: %v", err)
	}

	// The pass surface is dead after its End.
	if err := rp.Draw(3, 1, 0, 0); !errors.Is(err, ErrRenderPassEnded) {
		t.Errorf("Draw error = %v, want %v", err, ErrRenderPassEnded)
	}
	if err := rp.End(); !errors.Is(err, ErrRenderPassEnded) {
		t.Errorf("double End error = %v, want %v", err, ErrRenderPassEnded)
	}

	if err := r.End(); err != nil {
		t.Fatalf("End: %v", err)
	}

	// The recording surface is dead after its End.
	if err := r.SetScissor(0, driver.Rect2D{}); !errors.Is(err, ErrRecordingEnded) {
		t.Errorf("SetScissor error = %v, want %v", err, ErrRecordingEnded)
	}
	if err := r.End(); !errors.Is(err, ErrRecordingEnded) {
		t.Errorf("double End error = %v, want %v", err, ErrRecordingEnded)
	}
}

func TestRecordClosesLeakedRenderPass(t *testing.T) {
	f := newRenderFixture(t)
	defer f.release()

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 2)

	// The callback opens a pass explicitly and returns without ending it.
	// Record must close the pass and end the recording anyway.
	var leaked *RenderPassRecording
	err := bufs[0].Record(0, func(r *Recording) error {
		rp, err := r.BeginRenderPass(f.beginInfo(), driver.ContentsInline)
		if err != nil {
			return err
		}
		leaked = rp
		return rp.Draw(3, 1, 0, 0)
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if got := bufs[0].Phase(); got != PhaseExecutable {
		t.Fatalf("phase after Record = %v, want executable", got)
	}
	ops := f.drv.Commands(bufs[0].Handle())
	if len(ops) == 0 {
		t.Fatal("no ops recorded")
	}
	if _, ok := ops[len(ops)-1].(null.OpEndRenderPass); !ok {
		t.Errorf("last op = %T, want null.OpEndRenderPass", ops[len(ops)-1])
	}
	if err := leaked.Draw(3, 1, 0, 0); !errors.Is(err, ErrRenderPassEnded) {
		t.Errorf("leaked surface Draw error = %v, want %v", err, ErrRenderPassEnded)
	}

	// Same leak on the error path: the callback error comes back and the
	// buffer still lands in a closed phase.
	boom := errors.New("callback failed")
	err = bufs[1].Record(0, func(r *Recording) error {
		if _, err := r.BeginRenderPass(f.beginInfo(), driver.ContentsInline); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Record error = %v, want %v", err, boom)
	}
	if got := bufs[1].Phase(); got != PhaseExecutable {
		t.Fatalf("phase after failed callback = %v, want executable", got)
	}
	if v := f.drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestScopedRenderPassEndsOnError(t *testing.T) {
	f := newRenderFixture(t)
	defer f.release()

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	boom := errors.New("draw failed")
	err := bufs[0].Record(0, func(r *Recording) error {
		if err := r.RenderPass(f.beginInfo(), driver.ContentsInline, func(*RenderPassRecording) error {
			return boom
		}); !errors.Is(err, boom) {
			t.Fatalf("RenderPass error = %v, want %v", err, boom)
		}
		// The pass was closed despite the callback error, so recording
		// can continue outside it.
		return r.PipelineBarrier(driver.PipelineStageTopOfPipe, driver.PipelineStageBottomOfPipe)
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if v := f.drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestNextSubpassRange(t *testing.T) {
	f := newRenderFixture(t)
	defer f.release()

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	err := bufs[0].Record(0, func(r *Recording) error {
		return r.RenderPass(f.beginInfo(), driver.ContentsInline, func(rp *RenderPassRecording) error {
			if err := rp.NextSubpass(driver.ContentsInline); err != nil {
				t.Fatalf("NextSubpass: %v", err)
			}
			if got := rp.Subpass(); got != 1 {
				t.Fatalf("Subpass = %d, want 1", got)
			}
			if err := rp.NextSubpass(driver.ContentsInline); !errors.Is(err, ErrNoMoreSubpasses) {
				t.Fatalf("NextSubpass error = %v, want %v", err, ErrNoMoreSubpasses)
			}
			return nil
		})
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	f := newRenderFixture(t)
	defer f.release()

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	r, err := bufs[0].Begin(0)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	defer r.End()

	if err := r.BindPipeline(nil); !errors.Is(err, ErrNilPipeline) {
		t.Errorf("BindPipeline(nil) error = %v, want %v", err, ErrNilPipeline)
	}
	if _, err := r.BeginRenderPass(RenderPassBeginInfo{Framebuffer: f.fb}, driver.ContentsInline); !errors.Is(err, vkguard.ErrNilRenderPass) {
		t.Errorf("missing render pass error = %v, want %v", err, vkguard.ErrNilRenderPass)
	}
	if _, err := r.BeginRenderPass(RenderPassBeginInfo{RenderPass: f.rp}, driver.ContentsInline); !errors.Is(err, ErrNilFramebuffer) {
		t.Errorf("missing framebuffer error = %v, want %v", err, ErrNilFramebuffer)
	}
}

func TestRecordingRetainsBoundObjects(t *testing.T) {
	f := newRenderFixture(t)

	bufs, _ := f.pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]
	err := b.Record(0, func(r *Recording) error {
		return r.RenderPass(f.beginInfo(), driver.ContentsInline, func(rp *RenderPassRecording) error {
			return rp.BindPipeline(f.pipe)
		})
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}

	// Dropping the caller's references must not destroy objects the
	// executable recording still points at.
	f.pipe.Release()
	f.fb.Release()
	f.rp.Release()
	if v := f.drv.Violations(); len(v) != 0 {
		t.Fatalf("violations after releasing caller refs: %v", v)
	}
	if got := f.drv.LiveObjects(); got == 0 {
		t.Fatal("recorded objects should still be live")
	}

	// Resetting the buffer discards the recording and the holds with it.
	if err := b.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	f.pool.Release()
	f.dev.Release()
	if v := f.drv.Violations(); len(v) != 0 {
		t.Fatalf("violations after teardown: %v", v)
	}
	if got := f.drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
}

func TestConcurrentRecordingSamePool(t *testing.T) {
	pool, drv := newTestPool(t, 0)
	defer pool.Release()

	bufs, err := pool.Allocate(driver.LevelPrimary, 8)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	// The pool lock serializes recording, so hammering its buffers from
	// goroutines must be race-free.
	var wg sync.WaitGroup
	errs := make([]error, len(bufs))
	for i, b := range bufs {
		wg.Add(1)
		go func(i int, b *Buffer) {
			defer wg.Done()
			errs[i] = b.Record(0, func(r *Recording) error {
				for j := 0; j < 16; j++ {
					if err := r.SetScissor(0, driver.Rect2D{}); err != nil {
						return err
					}
				}
				return nil
			})
		}(i, b)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("buffer %d: %v", i, err)
		}
	}
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestConcurrentPoolsRecordIndependently(t *testing.T) {
	drv := null.New()
	dev, err := vkguard.NewDevice(drv, drv.NewDevice())
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	defer dev.Release()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pool, err := NewPool(dev, uint32(i), 0)
			if err != nil {
				errs[i] = err
				return
			}
			defer pool.Release()
			bufs, err := pool.Allocate(driver.LevelPrimary, 4)
			if err != nil {
				errs[i] = err
				return
			}
			for _, b := range bufs {
				errs[i] = b.Record(0, func(r *Recording) error {
					return r.SetViewport(0, driver.Viewport{Width: 64, Height: 64, MaxDepth: 1})
				})
				if errs[i] != nil {
					return
				}
			}
		}(i)
	}
	wg.Wait()
	for i, err := range errs {
		if err != nil {
			t.Errorf("worker %d: %v", i, err)
		}
	}
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}
