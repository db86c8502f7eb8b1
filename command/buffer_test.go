package command

import (
	"errors"
	"testing"

	"github.com/gpukit/vkguard/driver"
)

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseInitial, "initial"},
		{PhaseRecording, "recording"},
		{PhaseExecutable, "executable"},
		{PhasePending, "pending"},
		{PhaseInvalid, "invalid"},
		{Phase(42), "phase(42)"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(tt.p), got, tt.want)
		}
	}
}

func TestPhaseMachine(t *testing.T) {
	pool, _ := newTestPool(t, driver.PoolResetCommandBuffer)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]

	r, err := b.Begin(0)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if b.Phase() != PhaseRecording {
		t.Fatalf("phase after Begin = %v, want recording", b.Phase())
	}

	// A second Begin while recording is rejected.
	if _, err := b.Begin(0); !errors.Is(err, ErrNotInitial) {
		t.Fatalf("second Begin error = %v, want %v", err, ErrNotInitial)
	}

	if err := r.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	if b.Phase() != PhaseExecutable {
		t.Fatalf("phase after End = %v, want executable", b.Phase())
	}

	// Executable buffers need a Reset before re-recording.
	if _, err := b.Begin(0); !errors.Is(err, ErrNotInitial) {
		t.Fatalf("Begin from executable error = %v, want %v", err, ErrNotInitial)
	}

	if err := b.MarkSubmitted(driver.Null); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if b.Phase() != PhasePending {
		t.Fatalf("phase after submit = %v, want pending", b.Phase())
	}
	if err := b.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if b.Phase() != PhaseExecutable {
		t.Fatalf("phase after completion = %v, want executable", b.Phase())
	}

	// Resubmission of a reusable recording is allowed.
	if err := b.MarkSubmitted(driver.Null); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if err := b.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	if err := b.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if b.Phase() != PhaseInitial {
		t.Fatalf("phase after Reset = %v, want initial", b.Phase())
	}
}

func TestSubmittedFenceTracksPendingBuffer(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]
	if err := b.Record(0, func(*Recording) error { return nil }); err != nil {
		t.Fatalf("Record: %v", err)
	}

	if got := b.SubmittedFence(); got != driver.Null {
		t.Fatalf("SubmittedFence before submit = %d, want null", got)
	}
	const fence = driver.Fence(7)
	if err := b.MarkSubmitted(fence); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if got := b.SubmittedFence(); got != fence {
		t.Fatalf("SubmittedFence = %d, want %d", got, fence)
	}
	if err := b.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if got := b.SubmittedFence(); got != driver.Null {
		t.Fatalf("SubmittedFence after completion = %d, want null", got)
	}
}

func TestOneTimeSubmitInvalidatesAfterCompletion(t *testing.T) {
	pool, _ := newTestPool(t, driver.PoolResetCommandBuffer)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]
	if err := b.Record(driver.UsageOneTimeSubmit, func(*Recording) error { return nil }); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := b.MarkSubmitted(driver.Null); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if err := b.MarkCompleted(); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if b.Phase() != PhaseInvalid {
		t.Fatalf("phase = %v, want invalid for one-time-submit", b.Phase())
	}

	// Resubmitting the invalid buffer is rejected; Reset recovers it.
	if err := b.MarkSubmitted(driver.Null); !errors.Is(err, ErrNotExecutable) {
		t.Fatalf("MarkSubmitted error = %v, want %v", err, ErrNotExecutable)
	}
	if err := b.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if b.Phase() != PhaseInitial {
		t.Fatalf("phase after Reset = %v, want initial", b.Phase())
	}
}

func TestMarkCompletedRequiresPending(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	if err := bufs[0].MarkCompleted(); !errors.Is(err, ErrNotPending) {
		t.Fatalf("MarkCompleted error = %v, want %v", err, ErrNotPending)
	}
}

func TestResetRequiresPoolFlag(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	if err := bufs[0].Reset(); !errors.Is(err, ErrPoolNotResettable) {
		t.Fatalf("Reset error = %v, want %v", err, ErrPoolNotResettable)
	}
}

func TestRecordEndsOnCallbackError(t *testing.T) {
	pool, drv := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]

	boom := errors.New("callback failed")
	err := b.Record(0, func(r *Recording) error {
		if err := r.SetViewport(0, driver.Viewport{Width: 64, Height: 64, MaxDepth: 1}); err != nil {
			t.Fatalf("SetViewport: %v", err)
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Record error = %v, want %v", err, boom)
	}
	// The recording was still ended: the buffer is executable and the
	// driver saw a balanced begin/end.
	if b.Phase() != PhaseExecutable {
		t.Fatalf("phase = %v, want executable", b.Phase())
	}
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestBeginFailurePropagates(t *testing.T) {
	pool, drv := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	drv.FailNext("BeginCommandBuffer", driver.ResultOutOfDeviceMemory)

	_, err := bufs[0].Begin(0)
	if !errors.Is(err, driver.ErrOutOfDeviceMemory) {
		t.Fatalf("Begin error = %v, want out-of-device-memory", err)
	}
	if bufs[0].Phase() != PhaseInitial {
		t.Fatalf("phase = %v, want initial after failed begin", bufs[0].Phase())
	}
}

func TestEndFailureInvalidates(t *testing.T) {
	pool, drv := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	r, err := bufs[0].Begin(0)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	drv.FailNext("EndCommandBuffer", driver.ResultOutOfHostMemory)
	if err := r.End(); !errors.Is(err, driver.ErrOutOfHostMemory) {
		t.Fatalf("End error = %v, want out-of-host-memory", err)
	}
	if bufs[0].Phase() != PhaseInvalid {
		t.Fatalf("phase = %v, want invalid after failed end", bufs[0].Phase())
	}
}
