package command

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Pool errors.
var (
	// ErrBufferPending is returned when resetting or freeing a buffer that
	// may still be executing on the device.
	ErrBufferPending = errors.New("command: buffer is pending execution")

	// ErrForeignBuffer is returned when a buffer is passed to a pool it was
	// not allocated from.
	ErrForeignBuffer = errors.New("command: buffer belongs to a different pool")

	// ErrPoolNotResettable is returned when resetting an individual buffer
	// from a pool created without PoolResetCommandBuffer.
	ErrPoolNotResettable = errors.New("command: pool does not allow per-buffer reset")
)

// Pool wraps a native command pool and owns the buffers allocated from it.
//
// A pool serializes all access to its buffers: every lifecycle and recording
// operation on a buffer takes the pool's lock. The pool retains its device.
// Buffers do not retain the pool: destroying the pool frees every buffer
// still allocated from it.
type Pool struct {
	dev    *vkguard.Device
	handle driver.CommandPool
	flags  driver.CommandPoolCreateFlags

	mu   sync.Mutex
	bufs map[driver.CommandBuffer]*Buffer

	life lifetime.Counter
}

// NewPool creates a command pool for the given queue family.
func NewPool(dev *vkguard.Device, queueFamilyIndex uint32, flags driver.CommandPoolCreateFlags) (*Pool, error) {
	if dev == nil {
		return nil, vkguard.ErrNilDevice
	}
	handle, err := dev.Driver().CreateCommandPool(dev.Handle(), driver.CommandPoolCreateInfo{
		QueueFamilyIndex: queueFamilyIndex,
		Flags:            flags,
	})
	if err != nil {
		return nil, fmt.Errorf("command: create pool: %w", err)
	}
	dev.Retain()
	p := &Pool{
		dev:    dev,
		handle: handle,
		flags:  flags,
		bufs:   make(map[driver.CommandBuffer]*Buffer),
	}
	p.life.Init(func() {
		// Destroying the pool frees every remaining buffer with it.
		p.mu.Lock()
		for _, b := range p.bufs {
			if b.phase == PhasePending {
				vkguard.Logger().Warn("destroying pool with a pending buffer",
					"pool", uint64(handle), "buffer", uint64(b.handle))
			}
			b.dropHoldsLocked()
			b.phase = PhaseInvalid
		}
		p.bufs = nil
		p.mu.Unlock()
		dev.Driver().DestroyCommandPool(dev.Handle(), handle)
		vkguard.Logger().Debug("command pool destroyed", "pool", uint64(handle))
		dev.Release()
	})
	return p, nil
}

// Handle returns the native command pool handle.
func (p *Pool) Handle() driver.CommandPool { return p.handle }

// Device returns the owning device.
func (p *Pool) Device() *vkguard.Device { return p.dev }

// Allocate allocates count command buffers of the given level. Each buffer
// starts in the Initial phase. Buffers do not keep the pool alive:
// destroying the pool frees all of its buffers, which then report
// PhaseInvalid.
func (p *Pool) Allocate(level driver.CommandBufferLevel, count int) ([]*Buffer, error) {
	handles, err := p.dev.Driver().AllocateCommandBuffers(p.dev.Handle(), p.handle, level, count)
	if err != nil {
		return nil, fmt.Errorf("command: allocate buffers: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	bufs := make([]*Buffer, len(handles))
	for i, h := range handles {
		b := &Buffer{pool: p, handle: h, level: level, phase: PhaseInitial}
		p.bufs[h] = b
		bufs[i] = b
	}
	vkguard.Logger().Debug("command buffers allocated",
		"pool", uint64(p.handle), "count", count, "level", int(level))
	return bufs, nil
}

// Free returns buffers to the pool. A buffer in the Pending phase cannot be
// freed; no buffer is freed if any of them is pending or foreign.
func (p *Pool) Free(bufs ...*Buffer) error {
	p.mu.Lock()
	handles := make([]driver.CommandBuffer, len(bufs))
	for i, b := range bufs {
		if b.pool != p {
			p.mu.Unlock()
			return ErrForeignBuffer
		}
		if b.phase == PhasePending {
			p.mu.Unlock()
			return fmt.Errorf("%w: buffer %d", ErrBufferPending, uint64(b.handle))
		}
		handles[i] = b.handle
	}
	for _, b := range bufs {
		b.dropHoldsLocked()
		b.phase = PhaseInvalid
		delete(p.bufs, b.handle)
	}
	p.dev.Driver().FreeCommandBuffers(p.dev.Handle(), p.handle, handles)
	p.mu.Unlock()
	return nil
}

// Reset resets the pool and returns every allocated buffer to the Initial
// phase, dropping all references recorded buffers held. Fails if any buffer
// is pending.
func (p *Pool) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, b := range p.bufs {
		if b.phase == PhasePending {
			return fmt.Errorf("%w: buffer %d", ErrBufferPending, uint64(b.handle))
		}
	}
	if err := p.dev.Driver().ResetCommandPool(p.dev.Handle(), p.handle); err != nil {
		return fmt.Errorf("command: reset pool: %w", err)
	}
	for _, b := range p.bufs {
		b.dropHoldsLocked()
		b.phase = PhaseInitial
	}
	return nil
}

// Retain adds an owner reference.
func (p *Pool) Retain() { p.life.Retain() }

// Release drops an owner reference, destroying the native pool when the
// last one is gone.
func (p *Pool) Release() { p.life.Release() }
