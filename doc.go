// Package vkguard is a safety layer over a Vulkan-style explicit graphics
// API for Go.
//
// # Overview
//
// The raw API allows silent undefined behavior when its usage rules are
// violated: recording on a command buffer in the wrong state, issuing an
// operation outside its legal render-pass scope, or destroying an object
// another object still depends on. vkguard encodes those rules in the
// object model so they become compile-time method-set restrictions or
// recoverable runtime errors instead of corruption.
//
// Three pieces cooperate:
//
//   - reference-counted resource wrappers (Device, ShaderModule,
//     RenderPass, Framebuffer, DescriptorSetLayout) that destroy the
//     native object exactly once, when the last owner releases it
//   - the pipeline package: immutable fixed-function state descriptors,
//     pipeline layouts, and a pipeline builder that retains every
//     dependency the compiled pipeline needs to stay valid
//   - the command package: a command buffer phase machine with scoped
//     begin/end recording and render-pass scoping, so an open recording
//     stream can never leak
//
// # Quick Start
//
//	drv := driver.Get(driver.NameVulkan) // or driver.NameNull for headless
//	dev, _ := vkguard.NewDevice(drv, deviceHandle)
//	defer dev.Release()
//
//	vert, _ := vkguard.NewShaderModuleWGSL(dev, vertSrc)
//	defer vert.Release()
//
//	layout, _ := pipeline.NewLayout(dev).Build()
//	defer layout.Release()
//
//	rp, _ := vkguard.NewRenderPass(dev, rpInfo)
//	defer rp.Release()
//
//	pipe, _ := pipeline.NewGraphics(layout).
//		AddStage(pipeline.ShaderStage{Stage: driver.StageVertex, Module: vert}).
//		RenderPass(rp, 0).
//		Build()
//	defer pipe.Release()
//
// # Drivers
//
// All native calls go through the driver package. The vulkan driver backs
// the module with github.com/goki/vulkan; the null driver is a pure-Go
// in-memory backend for tests and headless use.
//
// # Ownership
//
// Every wrapper is created with one reference held by the caller. Retain
// adds an owner, Release drops one; the native destroy runs on the last
// Release, in reverse-dependency order, so a native handle is never
// destroyed while something built from it is still live.
package vkguard
