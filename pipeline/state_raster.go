package pipeline

import (
	"github.com/gpukit/vkguard/driver"
)

// RasterizationStateBuilder assembles a RasterizationState.
// Defaults: fill polygons, no culling, counter-clockwise front faces,
// line width 1.0, depth clamp/bias and rasterizer discard disabled.
type RasterizationStateBuilder struct {
	inner driver.RasterizationState
}

// NewRasterizationState creates a builder with default values.
func NewRasterizationState() *RasterizationStateBuilder {
	return &RasterizationStateBuilder{
		inner: driver.RasterizationState{
			PolygonMode: driver.PolygonFill,
			CullMode:    driver.CullNone,
			FrontFace:   driver.FrontFaceCounterClockwise,
			LineWidth:   1.0,
		},
	}
}

// PolygonMode sets how polygons are rasterized.
func (b *RasterizationStateBuilder) PolygonMode(m driver.PolygonMode) *RasterizationStateBuilder {
	b.inner.PolygonMode = m
	return b
}

// CullMode sets which faces are discarded.
func (b *RasterizationStateBuilder) CullMode(m driver.CullModeFlags) *RasterizationStateBuilder {
	b.inner.CullMode = m
	return b
}

// FrontFace sets the front-facing winding order.
func (b *RasterizationStateBuilder) FrontFace(f driver.FrontFace) *RasterizationStateBuilder {
	b.inner.FrontFace = f
	return b
}

// LineWidth sets the rasterized line width.
func (b *RasterizationStateBuilder) LineWidth(w float32) *RasterizationStateBuilder {
	b.inner.LineWidth = w
	return b
}

// DepthClamp enables or disables depth clamping.
func (b *RasterizationStateBuilder) DepthClamp(enable bool) *RasterizationStateBuilder {
	b.inner.DepthClampEnable = enable
	return b
}

// RasterizerDiscard enables or disables discarding primitives before
// rasterization.
func (b *RasterizationStateBuilder) RasterizerDiscard(enable bool) *RasterizationStateBuilder {
	b.inner.RasterizerDiscardEnable = enable
	return b
}

// DepthBias enables depth biasing with the given parameters.
func (b *RasterizationStateBuilder) DepthBias(constantFactor, clamp, slopeFactor float32) *RasterizationStateBuilder {
	b.inner.DepthBiasEnable = true
	b.inner.DepthBiasConstantFactor = constantFactor
	b.inner.DepthBiasClamp = clamp
	b.inner.DepthBiasSlopeFactor = slopeFactor
	return b
}

// Build returns the immutable state value.
func (b *RasterizationStateBuilder) Build() driver.RasterizationState {
	return b.inner
}

// MultisampleStateBuilder assembles a MultisampleState.
// Defaults: one sample per pixel, sample shading and alpha-to-coverage
// disabled.
type MultisampleStateBuilder struct {
	inner driver.MultisampleState
}

// NewMultisampleState creates a builder with default values.
func NewMultisampleState() *MultisampleStateBuilder {
	return &MultisampleStateBuilder{
		inner: driver.MultisampleState{RasterizationSamples: driver.Samples1},
	}
}

// Samples sets the rasterization sample count.
func (b *MultisampleStateBuilder) Samples(s driver.SampleCountFlags) *MultisampleStateBuilder {
	b.inner.RasterizationSamples = s
	return b
}

// SampleShading enables per-sample shading at the given minimum fraction.
func (b *MultisampleStateBuilder) SampleShading(minFraction float32) *MultisampleStateBuilder {
	b.inner.SampleShadingEnable = true
	b.inner.MinSampleShading = minFraction
	return b
}

// SampleMask sets the coverage mask.
func (b *MultisampleStateBuilder) SampleMask(mask []uint32) *MultisampleStateBuilder {
	b.inner.SampleMask = append([]uint32(nil), mask...)
	return b
}

// AlphaToCoverage enables or disables alpha-to-coverage.
func (b *MultisampleStateBuilder) AlphaToCoverage(enable bool) *MultisampleStateBuilder {
	b.inner.AlphaToCoverageEnable = enable
	return b
}

// AlphaToOne enables or disables forcing alpha to one.
func (b *MultisampleStateBuilder) AlphaToOne(enable bool) *MultisampleStateBuilder {
	b.inner.AlphaToOneEnable = enable
	return b
}

// Build returns the immutable state value.
func (b *MultisampleStateBuilder) Build() driver.MultisampleState {
	out := b.inner
	out.SampleMask = append([]uint32(nil), b.inner.SampleMask...)
	return out
}
