package pipeline

import (
	"github.com/gpukit/vkguard/driver"
)

// DepthStencilStateBuilder assembles a DepthStencilState.
// Defaults: all tests disabled, depth bounds [0, 1].
type DepthStencilStateBuilder struct {
	inner driver.DepthStencilState
}

// NewDepthStencilState creates a builder with default values.
func NewDepthStencilState() *DepthStencilStateBuilder {
	return &DepthStencilStateBuilder{
		inner: driver.DepthStencilState{MaxDepthBounds: 1.0},
	}
}

// DepthTest enables depth testing with the given comparison, writing
// depth when write is true.
func (b *DepthStencilStateBuilder) DepthTest(op driver.CompareOp, write bool) *DepthStencilStateBuilder {
	b.inner.DepthTestEnable = true
	b.inner.DepthCompareOp = op
	b.inner.DepthWriteEnable = write
	return b
}

// DepthBounds enables the depth bounds test over [min, max].
func (b *DepthStencilStateBuilder) DepthBounds(min, max float32) *DepthStencilStateBuilder {
	b.inner.DepthBoundsTestEnable = true
	b.inner.MinDepthBounds = min
	b.inner.MaxDepthBounds = max
	return b
}

// StencilTest enables stencil testing with per-face configurations.
func (b *DepthStencilStateBuilder) StencilTest(front, back driver.StencilOpState) *DepthStencilStateBuilder {
	b.inner.StencilTestEnable = true
	b.inner.Front = front
	b.inner.Back = back
	return b
}

// Build returns the immutable state value.
func (b *DepthStencilStateBuilder) Build() driver.DepthStencilState {
	return b.inner
}

// ColorBlendStateBuilder assembles a ColorBlendState.
// Defaults: logic op disabled, no attachments, zero blend constants. The
// attachment count must match the target subpass's color attachment count;
// that rule belongs to the native driver and is not checked here.
type ColorBlendStateBuilder struct {
	inner driver.ColorBlendState
}

// NewColorBlendState creates a builder with default values.
func NewColorBlendState() *ColorBlendStateBuilder {
	return &ColorBlendStateBuilder{}
}

// AddAttachment appends a per-attachment blend configuration.
func (b *ColorBlendStateBuilder) AddAttachment(a driver.ColorBlendAttachment) *ColorBlendStateBuilder {
	b.inner.Attachments = append(b.inner.Attachments, a)
	return b
}

// LogicOp enables the framebuffer logical operation.
func (b *ColorBlendStateBuilder) LogicOp(op driver.LogicOp) *ColorBlendStateBuilder {
	b.inner.LogicOpEnable = true
	b.inner.LogicOp = op
	return b
}

// BlendConstants sets the constant blend color.
func (b *ColorBlendStateBuilder) BlendConstants(r, g, bl, a float32) *ColorBlendStateBuilder {
	b.inner.BlendConstants = [4]float32{r, g, bl, a}
	return b
}

// Build returns the immutable state value.
func (b *ColorBlendStateBuilder) Build() driver.ColorBlendState {
	out := b.inner
	out.Attachments = append([]driver.ColorBlendAttachment(nil), b.inner.Attachments...)
	return out
}

// DisabledBlendAttachment returns the common no-blend attachment state
// with all color channels writable.
func DisabledBlendAttachment() driver.ColorBlendAttachment {
	return driver.ColorBlendAttachment{
		ColorWriteMask: driver.ColorComponentAll,
	}
}

// AlphaBlendAttachment returns the common premultiplied-style alpha blend
// attachment state with all color channels writable.
func AlphaBlendAttachment() driver.ColorBlendAttachment {
	return driver.ColorBlendAttachment{
		BlendEnable:         true,
		SrcColorBlendFactor: driver.BlendSrcAlpha,
		DstColorBlendFactor: driver.BlendOneMinusSrcAlpha,
		ColorBlendOp:        driver.BlendOpAdd,
		SrcAlphaBlendFactor: driver.BlendOne,
		DstAlphaBlendFactor: driver.BlendOneMinusSrcAlpha,
		AlphaBlendOp:        driver.BlendOpAdd,
		ColorWriteMask:      driver.ColorComponentAll,
	}
}
