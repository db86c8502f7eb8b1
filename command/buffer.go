package command

import (
	"errors"
	"fmt"

	"github.com/gpukit/vkguard/driver"
)

// Buffer phase errors.
var (
	// ErrNotInitial is returned by Begin when the buffer is not in the
	// Initial phase. Executable and Invalid buffers must be Reset first.
	ErrNotInitial = errors.New("command: buffer not in initial phase")

	// ErrNotExecutable is returned by MarkSubmitted when the buffer has no
	// complete recording.
	ErrNotExecutable = errors.New("command: buffer not executable")

	// ErrNotPending is returned by MarkCompleted when the buffer was never
	// marked submitted.
	ErrNotPending = errors.New("command: buffer not pending")

	// ErrRecordingEnded is returned when an operation is issued through a
	// Recording or RenderPassRecording whose End has already run.
	ErrRecordingEnded = errors.New("command: recording already ended")

	// ErrRenderPassActive is returned by Recording.End while a render pass
	// is still open.
	ErrRenderPassActive = errors.New("command: render pass still active")
)

// Phase is the lifecycle phase of a command buffer.
type Phase int

const (
	// PhaseInitial: freshly allocated or reset; ready for Begin.
	PhaseInitial Phase = iota

	// PhaseRecording: between Begin and End; accepts commands.
	PhaseRecording

	// PhaseExecutable: recording complete; ready for submission.
	PhaseExecutable

	// PhasePending: submitted; owned by the device until completion.
	PhasePending

	// PhaseInvalid: contents unusable; only Reset (or freeing) applies.
	PhaseInvalid
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInitial:
		return "initial"
	case PhaseRecording:
		return "recording"
	case PhaseExecutable:
		return "executable"
	case PhasePending:
		return "pending"
	case PhaseInvalid:
		return "invalid"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// releaser is the ownership surface of every refcounted wrapper.
type releaser interface {
	Release()
}

// Buffer is a command buffer with an enforced phase machine.
//
// Recorded commands reference pipelines, render passes and framebuffers;
// the buffer retains each such object when it is first recorded against and
// drops all of them when the recording is discarded by Reset, by a pool
// reset, or by freeing the buffer. A completed recording therefore cannot
// outlive the objects it references.
type Buffer struct {
	pool   *Pool
	handle driver.CommandBuffer
	level  driver.CommandBufferLevel

	phase   Phase
	oneTime bool
	fence   driver.Fence
	holds   []releaser
}

// Handle returns the native command buffer handle.
func (b *Buffer) Handle() driver.CommandBuffer { return b.handle }

// Level returns the buffer's allocation level.
func (b *Buffer) Level() driver.CommandBufferLevel { return b.level }

// Pool returns the owning pool.
func (b *Buffer) Pool() *Pool { return b.pool }

// Phase returns the buffer's current phase.
func (b *Buffer) Phase() Phase {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	return b.phase
}

// Begin moves the buffer from Initial to Recording and returns the
// recording surface. Buffers holding an earlier recording must be Reset
// before they can be recorded again.
func (b *Buffer) Begin(flags driver.CommandBufferUsageFlags) (*Recording, error) {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if b.phase != PhaseInitial {
		return nil, fmt.Errorf("%w: phase %v", ErrNotInitial, b.phase)
	}
	drv := b.pool.dev.Driver()
	if err := drv.BeginCommandBuffer(b.handle, driver.CommandBufferBeginInfo{Flags: flags}); err != nil {
		return nil, fmt.Errorf("command: begin: %w", err)
	}
	b.phase = PhaseRecording
	b.oneTime = flags&driver.UsageOneTimeSubmit != 0
	return &Recording{buf: b}, nil
}

// Record runs fn with a recording surface and guarantees the recording is
// ended on every path, including when fn returns an error. A render pass fn
// opened with BeginRenderPass and never ended is closed before the recording
// is ended, so the buffer never comes back in an open Recording phase. On
// success the buffer is Executable. If fn fails, its error is returned
// joined with any error from ending the recording.
func (b *Buffer) Record(flags driver.CommandBufferUsageFlags, fn func(*Recording) error) error {
	r, err := b.Begin(flags)
	if err != nil {
		return err
	}
	return errors.Join(fn(r), r.finish())
}

// Reset returns the buffer to the Initial phase, discarding its recording
// and releasing every object it referenced. The pool must have been created
// with PoolResetCommandBuffer. Pending buffers cannot be reset.
func (b *Buffer) Reset() error {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if b.pool.flags&driver.PoolResetCommandBuffer == 0 {
		return ErrPoolNotResettable
	}
	if b.phase == PhasePending {
		return fmt.Errorf("%w: buffer %d", ErrBufferPending, uint64(b.handle))
	}
	if err := b.pool.dev.Driver().ResetCommandBuffer(b.handle); err != nil {
		return fmt.Errorf("command: reset buffer: %w", err)
	}
	b.dropHoldsLocked()
	b.phase = PhaseInitial
	return nil
}

// MarkSubmitted moves an Executable buffer to Pending and records the
// fence the submission was issued with, so the submission layer can locate
// the completion proof for any pending buffer. The module does not submit
// itself. A Null fence is allowed when the caller tracks completion some
// other way.
func (b *Buffer) MarkSubmitted(fence driver.Fence) error {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if b.phase != PhaseExecutable {
		return fmt.Errorf("%w: phase %v", ErrNotExecutable, b.phase)
	}
	b.phase = PhasePending
	b.fence = fence
	return nil
}

// SubmittedFence returns the fence recorded by MarkSubmitted. It is Null
// whenever the buffer is not pending.
func (b *Buffer) SubmittedFence() driver.Fence {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if b.phase != PhasePending {
		return driver.Null
	}
	return b.fence
}

// MarkCompleted moves a Pending buffer back to Executable, or to Invalid
// when it was begun with UsageOneTimeSubmit. Callers invoke this once the
// device signals the submission finished.
func (b *Buffer) MarkCompleted() error {
	b.pool.mu.Lock()
	defer b.pool.mu.Unlock()
	if b.phase != PhasePending {
		return fmt.Errorf("%w: phase %v", ErrNotPending, b.phase)
	}
	b.fence = driver.Null
	if b.oneTime {
		b.phase = PhaseInvalid
	} else {
		b.phase = PhaseExecutable
	}
	return nil
}

// hold retains r on first use within the current recording.
// Caller holds the pool lock.
func (b *Buffer) holdLocked(r releaser, retain func()) {
	for _, h := range b.holds {
		if h == r {
			return
		}
	}
	retain()
	b.holds = append(b.holds, r)
}

// dropHoldsLocked releases every object the recording referenced.
// Caller holds the pool lock.
func (b *Buffer) dropHoldsLocked() {
	for _, h := range b.holds {
		h.Release()
	}
	b.holds = nil
}
