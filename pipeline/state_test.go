package pipeline

import (
	"testing"

	"github.com/gpukit/vkguard/driver"
)

func TestVertexInputStateBuilder(t *testing.T) {
	s := NewVertexInputState().
		AddBinding(driver.VertexInputBinding{Binding: 0, Stride: 32}).
		AddAttribute(driver.VertexInputAttribute{Location: 0, Format: driver.FormatR32G32B32Sfloat}).
		AddAttribute(driver.VertexInputAttribute{Location: 1, Format: driver.FormatR32G32Sfloat, Offset: 12}).
		Build()
	if len(s.Bindings) != 1 || len(s.Attributes) != 2 {
		t.Fatalf("bindings/attributes = %d/%d, want 1/2", len(s.Bindings), len(s.Attributes))
	}
	if s.Attributes[1].Offset != 12 {
		t.Errorf("attribute offset = %d, want 12", s.Attributes[1].Offset)
	}
}

func TestInputAssemblyDefaults(t *testing.T) {
	s := NewInputAssemblyState().Build()
	if s.Topology != driver.TopologyTriangleList {
		t.Errorf("default topology = %v, want triangle list", s.Topology)
	}
	if s.PrimitiveRestartEnable {
		t.Error("primitive restart should default off")
	}

	s = NewInputAssemblyState().Topology(driver.TopologyLineStrip).PrimitiveRestart(true).Build()
	if s.Topology != driver.TopologyLineStrip || !s.PrimitiveRestartEnable {
		t.Error("setters not applied")
	}
}

func TestViewportStateCounts(t *testing.T) {
	// Dynamic viewports: no rectangles, counts only.
	s := NewViewportState().Build()
	if s.ViewportCount != 1 || s.ScissorCount != 1 {
		t.Errorf("default counts = %d/%d, want 1/1", s.ViewportCount, s.ScissorCount)
	}

	// Static rectangles bump the counts.
	s = NewViewportState().
		AddViewport(driver.Viewport{Width: 640, Height: 480, MaxDepth: 1}).
		AddViewport(driver.Viewport{Width: 320, Height: 240, MaxDepth: 1}).
		AddScissor(driver.Rect2D{Extent: driver.Extent2D{Width: 640, Height: 480}}).
		Build()
	if s.ViewportCount != 2 || s.ScissorCount != 1 {
		t.Errorf("counts = %d/%d, want 2/1", s.ViewportCount, s.ScissorCount)
	}
}

func TestRasterizationDefaults(t *testing.T) {
	s := NewRasterizationState().Build()
	if s.PolygonMode != driver.PolygonFill {
		t.Errorf("polygon mode = %v, want fill", s.PolygonMode)
	}
	if s.CullMode != driver.CullNone {
		t.Errorf("cull mode = %v, want none", s.CullMode)
	}
	if s.LineWidth != 1.0 {
		t.Errorf("line width = %v, want 1.0", s.LineWidth)
	}

	s = NewRasterizationState().DepthBias(1.25, 0, 1.75).Build()
	if !s.DepthBiasEnable {
		t.Error("DepthBias should enable depth bias")
	}
	if s.DepthBiasConstantFactor != 1.25 || s.DepthBiasSlopeFactor != 1.75 {
		t.Error("depth bias factors not applied")
	}
}

func TestMultisampleDefaults(t *testing.T) {
	s := NewMultisampleState().Build()
	if s.RasterizationSamples != driver.Samples1 {
		t.Errorf("samples = %v, want 1", s.RasterizationSamples)
	}

	s = NewMultisampleState().SampleShading(0.5).Build()
	if !s.SampleShadingEnable || s.MinSampleShading != 0.5 {
		t.Error("sample shading not applied")
	}
}

func TestDepthStencilDefaults(t *testing.T) {
	s := NewDepthStencilState().Build()
	if s.DepthTestEnable {
		t.Error("depth test should default off")
	}
	if s.MaxDepthBounds != 1.0 {
		t.Errorf("max depth bounds = %v, want 1.0", s.MaxDepthBounds)
	}

	s = NewDepthStencilState().DepthTest(driver.CompareLessOrEqual, true).Build()
	if !s.DepthTestEnable || !s.DepthWriteEnable {
		t.Error("DepthTest should enable test and write")
	}
	if s.DepthCompareOp != driver.CompareLessOrEqual {
		t.Errorf("compare op = %v, want less-or-equal", s.DepthCompareOp)
	}
}

func TestColorBlendBuilder(t *testing.T) {
	s := NewColorBlendState().
		AddAttachment(AlphaBlendAttachment()).
		AddAttachment(DisabledBlendAttachment()).
		BlendConstants(0.1, 0.2, 0.3, 0.4).
		Build()
	if len(s.Attachments) != 2 {
		t.Fatalf("attachments = %d, want 2", len(s.Attachments))
	}
	if !s.Attachments[0].BlendEnable {
		t.Error("alpha blend attachment should enable blending")
	}
	if s.Attachments[1].BlendEnable {
		t.Error("disabled attachment should not enable blending")
	}
	if s.BlendConstants != [4]float32{0.1, 0.2, 0.3, 0.4} {
		t.Errorf("blend constants = %v", s.BlendConstants)
	}
}

func TestStateBuildersCopySlices(t *testing.T) {
	b := NewVertexInputState().AddBinding(driver.VertexInputBinding{Binding: 7})
	s1 := b.Build()
	b.AddBinding(driver.VertexInputBinding{Binding: 8})
	if len(s1.Bindings) != 1 {
		t.Fatal("Build result must not alias the builder's slice")
	}
}
