package vulkan

import (
	vk "github.com/goki/vulkan"

	"github.com/gpukit/vkguard/driver"
)

// The driver enums mirror the Vulkan numeric values, so most conversions
// are casts. Structs are rebuilt because Vulkan's carry SType/count fields.

func vkBool(b bool) vk.Bool32 {
	if b {
		return vk.True
	}
	return vk.False
}

func vkViewports(vs []driver.Viewport) []vk.Viewport {
	out := make([]vk.Viewport, len(vs))
	for i, v := range vs {
		out[i] = vk.Viewport{
			X: v.X, Y: v.Y,
			Width: v.Width, Height: v.Height,
			MinDepth: v.MinDepth, MaxDepth: v.MaxDepth,
		}
	}
	return out
}

func vkRect2D(r driver.Rect2D) vk.Rect2D {
	return vk.Rect2D{
		Offset: vk.Offset2D{X: r.Offset.X, Y: r.Offset.Y},
		Extent: vk.Extent2D{Width: r.Extent.Width, Height: r.Extent.Height},
	}
}

func vkRects(rs []driver.Rect2D) []vk.Rect2D {
	out := make([]vk.Rect2D, len(rs))
	for i, r := range rs {
		out[i] = vkRect2D(r)
	}
	return out
}

func vkClearValues(cvs []driver.ClearValue) []vk.ClearValue {
	out := make([]vk.ClearValue, len(cvs))
	for i, cv := range cvs {
		if cv.Depth != 0 || cv.Stencil != 0 {
			out[i].SetDepthStencil(cv.Depth, cv.Stencil)
		} else {
			out[i].SetColor(cv.Color[:])
		}
	}
	return out
}

func vkStencilOpState(s driver.StencilOpState) vk.StencilOpState {
	return vk.StencilOpState{
		FailOp:      vk.StencilOp(s.FailOp),
		PassOp:      vk.StencilOp(s.PassOp),
		DepthFailOp: vk.StencilOp(s.DepthFailOp),
		CompareOp:   vk.CompareOp(s.CompareOp),
		CompareMask: s.CompareMask,
		WriteMask:   s.WriteMask,
		Reference:   s.Reference,
	}
}

func vkAttachmentRefs(refs []driver.AttachmentReference) []vk.AttachmentReference {
	out := make([]vk.AttachmentReference, len(refs))
	for i, r := range refs {
		out[i] = vk.AttachmentReference{
			Attachment: r.Attachment,
			Layout:     vk.ImageLayout(r.Layout),
		}
	}
	return out
}

func vkVertexInputState(s *driver.VertexInputState) *vk.PipelineVertexInputStateCreateInfo {
	if s == nil {
		return nil
	}
	bindings := make([]vk.VertexInputBindingDescription, len(s.Bindings))
	for i, b := range s.Bindings {
		bindings[i] = vk.VertexInputBindingDescription{
			Binding:   b.Binding,
			Stride:    b.Stride,
			InputRate: vk.VertexInputRate(b.InputRate),
		}
	}
	attrs := make([]vk.VertexInputAttributeDescription, len(s.Attributes))
	for i, a := range s.Attributes {
		attrs[i] = vk.VertexInputAttributeDescription{
			Location: a.Location,
			Binding:  a.Binding,
			Format:   vk.Format(a.Format),
			Offset:   a.Offset,
		}
	}
	return &vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(bindings)),
		PVertexBindingDescriptions:      bindings,
		VertexAttributeDescriptionCount: uint32(len(attrs)),
		PVertexAttributeDescriptions:    attrs,
	}
}

func vkInputAssemblyState(s *driver.InputAssemblyState) *vk.PipelineInputAssemblyStateCreateInfo {
	if s == nil {
		return nil
	}
	return &vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopology(s.Topology),
		PrimitiveRestartEnable: vkBool(s.PrimitiveRestartEnable),
	}
}

func vkTessellationState(s *driver.TessellationState) *vk.PipelineTessellationStateCreateInfo {
	if s == nil {
		return nil
	}
	return &vk.PipelineTessellationStateCreateInfo{
		SType:              vk.StructureTypePipelineTessellationStateCreateInfo,
		PatchControlPoints: s.PatchControlPoints,
	}
}

func vkViewportState(s *driver.ViewportState) *vk.PipelineViewportStateCreateInfo {
	if s == nil {
		return nil
	}
	return &vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: s.ViewportCount,
		PViewports:    vkViewports(s.Viewports),
		ScissorCount:  s.ScissorCount,
		PScissors:     vkRects(s.Scissors),
	}
}

func vkRasterizationState(s *driver.RasterizationState) *vk.PipelineRasterizationStateCreateInfo {
	if s == nil {
		return nil
	}
	return &vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vkBool(s.DepthClampEnable),
		RasterizerDiscardEnable: vkBool(s.RasterizerDiscardEnable),
		PolygonMode:             vk.PolygonMode(s.PolygonMode),
		CullMode:                vk.CullModeFlags(s.CullMode),
		FrontFace:               vk.FrontFace(s.FrontFace),
		DepthBiasEnable:         vkBool(s.DepthBiasEnable),
		DepthBiasConstantFactor: s.DepthBiasConstantFactor,
		DepthBiasClamp:          s.DepthBiasClamp,
		DepthBiasSlopeFactor:    s.DepthBiasSlopeFactor,
		LineWidth:               s.LineWidth,
	}
}

func vkMultisampleState(s *driver.MultisampleState) *vk.PipelineMultisampleStateCreateInfo {
	if s == nil {
		return nil
	}
	var mask []vk.SampleMask
	if len(s.SampleMask) > 0 {
		mask = make([]vk.SampleMask, len(s.SampleMask))
		for i, m := range s.SampleMask {
			mask[i] = vk.SampleMask(m)
		}
	}
	return &vk.PipelineMultisampleStateCreateInfo{
		SType:                 vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples:  vk.SampleCountFlagBits(s.RasterizationSamples),
		SampleShadingEnable:   vkBool(s.SampleShadingEnable),
		MinSampleShading:      s.MinSampleShading,
		PSampleMask:           mask,
		AlphaToCoverageEnable: vkBool(s.AlphaToCoverageEnable),
		AlphaToOneEnable:      vkBool(s.AlphaToOneEnable),
	}
}

func vkDepthStencilState(s *driver.DepthStencilState) *vk.PipelineDepthStencilStateCreateInfo {
	if s == nil {
		return nil
	}
	return &vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       vkBool(s.DepthTestEnable),
		DepthWriteEnable:      vkBool(s.DepthWriteEnable),
		DepthCompareOp:        vk.CompareOp(s.DepthCompareOp),
		DepthBoundsTestEnable: vkBool(s.DepthBoundsTestEnable),
		StencilTestEnable:     vkBool(s.StencilTestEnable),
		Front:                 vkStencilOpState(s.Front),
		Back:                  vkStencilOpState(s.Back),
		MinDepthBounds:        s.MinDepthBounds,
		MaxDepthBounds:        s.MaxDepthBounds,
	}
}

func vkColorBlendState(s *driver.ColorBlendState) *vk.PipelineColorBlendStateCreateInfo {
	if s == nil {
		return nil
	}
	atts := make([]vk.PipelineColorBlendAttachmentState, len(s.Attachments))
	for i, a := range s.Attachments {
		atts[i] = vk.PipelineColorBlendAttachmentState{
			BlendEnable:         vkBool(a.BlendEnable),
			SrcColorBlendFactor: vk.BlendFactor(a.SrcColorBlendFactor),
			DstColorBlendFactor: vk.BlendFactor(a.DstColorBlendFactor),
			ColorBlendOp:        vk.BlendOp(a.ColorBlendOp),
			SrcAlphaBlendFactor: vk.BlendFactor(a.SrcAlphaBlendFactor),
			DstAlphaBlendFactor: vk.BlendFactor(a.DstAlphaBlendFactor),
			AlphaBlendOp:        vk.BlendOp(a.AlphaBlendOp),
			ColorWriteMask:      vk.ColorComponentFlags(a.ColorWriteMask),
		}
	}
	return &vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vkBool(s.LogicOpEnable),
		LogicOp:         vk.LogicOp(s.LogicOp),
		AttachmentCount: uint32(len(atts)),
		PAttachments:    atts,
		BlendConstants:  s.BlendConstants,
	}
}

func vkDynamicState(states []driver.DynamicState) *vk.PipelineDynamicStateCreateInfo {
	if len(states) == 0 {
		return nil
	}
	ds := make([]vk.DynamicState, len(states))
	for i, s := range states {
		ds[i] = vk.DynamicState(s)
	}
	return &vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(ds)),
		PDynamicStates:    ds,
	}
}
