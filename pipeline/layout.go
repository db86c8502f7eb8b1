package pipeline

import (
	"errors"
	"fmt"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Layout errors.
var (
	// ErrNilSetLayout is returned when AddSetLayout receives nil.
	ErrNilSetLayout = errors.New("pipeline: descriptor set layout is nil")
)

// Layout wraps an immutable native pipeline layout.
//
// The layout conceptually owns (by index) the descriptor set layouts and
// push constant ranges it was built from, but it only needs their native
// handles at build time and does not retain the set layout objects
// afterward. A Layout is typically owned by the Pipelines built against
// it and destroyed when the last of them releases it.
type Layout struct {
	dev    *vkguard.Device
	handle driver.PipelineLayout

	setLayoutCount         int
	pushConstantRangeCount int

	life lifetime.Counter
}

// LayoutBuilder assembles a pipeline layout creation request.
type LayoutBuilder struct {
	dev        *vkguard.Device
	setLayouts []driver.DescriptorSetLayout
	ranges     []driver.PushConstantRange
	err        error
}

// NewLayout creates a layout builder for the given device. An empty
// layout (zero set layouts, zero push constant ranges) is valid.
func NewLayout(dev *vkguard.Device) *LayoutBuilder {
	b := &LayoutBuilder{dev: dev}
	if dev == nil {
		b.err = vkguard.ErrNilDevice
	}
	return b
}

// AddSetLayout appends a descriptor set layout. Order is significant: the
// position in the sequence is the set number shaders bind against. No
// uniqueness constraint is enforced here.
func (b *LayoutBuilder) AddSetLayout(sl *vkguard.DescriptorSetLayout) *LayoutBuilder {
	if b.err != nil {
		return b
	}
	if sl == nil {
		b.err = ErrNilSetLayout
		return b
	}
	b.setLayouts = append(b.setLayouts, sl.Handle())
	return b
}

// AddPushConstantRange appends a push constant range, in order.
func (b *LayoutBuilder) AddPushConstantRange(r driver.PushConstantRange) *LayoutBuilder {
	if b.err != nil {
		return b
	}
	b.ranges = append(b.ranges, r)
	return b
}

// Build issues exactly one native creation call combining the collected
// set layout handles and push constant ranges. On failure no native
// object is allocated.
func (b *LayoutBuilder) Build() (*Layout, error) {
	if b.err != nil {
		return nil, b.err
	}
	dev := b.dev
	handle, err := dev.Driver().CreatePipelineLayout(dev.Handle(), driver.PipelineLayoutCreateInfo{
		SetLayouts:         b.setLayouts,
		PushConstantRanges: b.ranges,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create layout: %w", err)
	}
	dev.Retain()
	l := &Layout{
		dev:                    dev,
		handle:                 handle,
		setLayoutCount:         len(b.setLayouts),
		pushConstantRangeCount: len(b.ranges),
	}
	l.life.Init(func() {
		dev.Driver().DestroyPipelineLayout(dev.Handle(), handle)
		vkguard.Logger().Debug("pipeline layout destroyed", "layout", uint64(handle))
		dev.Release()
	})
	vkguard.Logger().Debug("pipeline layout created",
		"layout", uint64(handle),
		"setLayouts", len(b.setLayouts),
		"pushConstantRanges", len(b.ranges))
	return l, nil
}

// Handle returns the native pipeline layout handle.
func (l *Layout) Handle() driver.PipelineLayout { return l.handle }

// Device returns the owning device.
func (l *Layout) Device() *vkguard.Device { return l.dev }

// SetLayoutCount returns the number of descriptor set layouts the layout
// was built with.
func (l *Layout) SetLayoutCount() int { return l.setLayoutCount }

// PushConstantRangeCount returns the number of push constant ranges the
// layout was built with.
func (l *Layout) PushConstantRangeCount() int { return l.pushConstantRangeCount }

// Retain adds an owner reference.
func (l *Layout) Retain() { l.life.Retain() }

// Release drops an owner reference, destroying the native layout when the
// last one is gone.
func (l *Layout) Release() { l.life.Release() }
