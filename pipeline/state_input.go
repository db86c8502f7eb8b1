package pipeline

import (
	"github.com/gpukit/vkguard/driver"
)

// Builders for the input side of the fixed-function state: vertex input,
// input assembly, tessellation, and viewport. Each produces an immutable
// driver state value; none performs cross-field validation (attachment
// counts and the like are the native driver's rules, checked downstream).

// VertexInputStateBuilder assembles a VertexInputState.
// The default state has no bindings and no attributes.
type VertexInputStateBuilder struct {
	inner driver.VertexInputState
}

// NewVertexInputState creates a builder with default values.
func NewVertexInputState() *VertexInputStateBuilder {
	return &VertexInputStateBuilder{}
}

// AddBinding appends a vertex buffer binding description.
func (b *VertexInputStateBuilder) AddBinding(binding driver.VertexInputBinding) *VertexInputStateBuilder {
	b.inner.Bindings = append(b.inner.Bindings, binding)
	return b
}

// AddAttribute appends a vertex attribute description.
func (b *VertexInputStateBuilder) AddAttribute(attr driver.VertexInputAttribute) *VertexInputStateBuilder {
	b.inner.Attributes = append(b.inner.Attributes, attr)
	return b
}

// Build returns the immutable state value.
func (b *VertexInputStateBuilder) Build() driver.VertexInputState {
	return driver.VertexInputState{
		Bindings:   append([]driver.VertexInputBinding(nil), b.inner.Bindings...),
		Attributes: append([]driver.VertexInputAttribute(nil), b.inner.Attributes...),
	}
}

// InputAssemblyStateBuilder assembles an InputAssemblyState.
// Defaults: triangle list topology, primitive restart disabled.
type InputAssemblyStateBuilder struct {
	inner driver.InputAssemblyState
}

// NewInputAssemblyState creates a builder with default values.
func NewInputAssemblyState() *InputAssemblyStateBuilder {
	return &InputAssemblyStateBuilder{
		inner: driver.InputAssemblyState{Topology: driver.TopologyTriangleList},
	}
}

// Topology sets the primitive topology.
func (b *InputAssemblyStateBuilder) Topology(t driver.PrimitiveTopology) *InputAssemblyStateBuilder {
	b.inner.Topology = t
	return b
}

// PrimitiveRestart enables or disables primitive restart.
func (b *InputAssemblyStateBuilder) PrimitiveRestart(enable bool) *InputAssemblyStateBuilder {
	b.inner.PrimitiveRestartEnable = enable
	return b
}

// Build returns the immutable state value.
func (b *InputAssemblyStateBuilder) Build() driver.InputAssemblyState {
	return b.inner
}

// TessellationStateBuilder assembles a TessellationState.
// The default state has zero patch control points, meaning tessellation is
// unused; the Builder omits the state from the creation request then.
type TessellationStateBuilder struct {
	inner driver.TessellationState
}

// NewTessellationState creates a builder with default values.
func NewTessellationState() *TessellationStateBuilder {
	return &TessellationStateBuilder{}
}

// PatchControlPoints sets the number of control points per patch.
func (b *TessellationStateBuilder) PatchControlPoints(n uint32) *TessellationStateBuilder {
	b.inner.PatchControlPoints = n
	return b
}

// Build returns the immutable state value.
func (b *TessellationStateBuilder) Build() driver.TessellationState {
	return b.inner
}

// ViewportStateBuilder assembles a ViewportState.
// The default state has one viewport slot and one scissor slot with no
// static rectangles, which is the correct shape when both are dynamic.
type ViewportStateBuilder struct {
	inner driver.ViewportState
}

// NewViewportState creates a builder with default values.
func NewViewportState() *ViewportStateBuilder {
	return &ViewportStateBuilder{
		inner: driver.ViewportState{ViewportCount: 1, ScissorCount: 1},
	}
}

// AddViewport appends a static viewport and bumps the count to match.
func (b *ViewportStateBuilder) AddViewport(v driver.Viewport) *ViewportStateBuilder {
	b.inner.Viewports = append(b.inner.Viewports, v)
	if n := uint32(len(b.inner.Viewports)); n > b.inner.ViewportCount {
		b.inner.ViewportCount = n
	}
	return b
}

// AddScissor appends a static scissor rectangle and bumps the count.
func (b *ViewportStateBuilder) AddScissor(r driver.Rect2D) *ViewportStateBuilder {
	b.inner.Scissors = append(b.inner.Scissors, r)
	if n := uint32(len(b.inner.Scissors)); n > b.inner.ScissorCount {
		b.inner.ScissorCount = n
	}
	return b
}

// Counts overrides the viewport and scissor slot counts, for pipelines
// that set both dynamically.
func (b *ViewportStateBuilder) Counts(viewports, scissors uint32) *ViewportStateBuilder {
	b.inner.ViewportCount = viewports
	b.inner.ScissorCount = scissors
	return b
}

// Build returns the immutable state value.
func (b *ViewportStateBuilder) Build() driver.ViewportState {
	return driver.ViewportState{
		Viewports:     append([]driver.Viewport(nil), b.inner.Viewports...),
		Scissors:      append([]driver.Rect2D(nil), b.inner.Scissors...),
		ViewportCount: b.inner.ViewportCount,
		ScissorCount:  b.inner.ScissorCount,
	}
}
