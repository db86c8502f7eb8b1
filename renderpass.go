package vkguard

import (
	"errors"
	"fmt"

	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Render pass and framebuffer errors.
var (
	// ErrNoSubpasses is returned when creating a render pass without any
	// subpass.
	ErrNoSubpasses = errors.New("vkguard: render pass needs at least one subpass")

	// ErrNilRenderPass is returned when a framebuffer is created without a
	// render pass.
	ErrNilRenderPass = errors.New("vkguard: render pass is nil")
)

// RenderPass wraps a native render pass.
//
// Pipelines built against a render pass and framebuffers created over it
// retain it, so it cannot be destroyed out from under them.
type RenderPass struct {
	life lifetime.Counter

	dev       *Device
	handle    driver.RenderPass
	subpasses int
}

// NewRenderPass creates a render pass from attachment, subpass, and
// dependency descriptions.
func NewRenderPass(dev *Device, info driver.RenderPassCreateInfo) (*RenderPass, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if len(info.Subpasses) == 0 {
		return nil, ErrNoSubpasses
	}
	handle, err := dev.drv.CreateRenderPass(dev.handle, info)
	if err != nil {
		return nil, fmt.Errorf("vkguard: create render pass: %w", err)
	}
	dev.Retain()
	rp := &RenderPass{dev: dev, handle: handle, subpasses: len(info.Subpasses)}
	rp.life.Init(func() {
		dev.drv.DestroyRenderPass(dev.handle, handle)
		Logger().Debug("render pass destroyed", "renderpass", uint64(handle))
		dev.Release()
	})
	Logger().Debug("render pass created",
		"renderpass", uint64(handle),
		"attachments", len(info.Attachments),
		"subpasses", len(info.Subpasses))
	return rp, nil
}

// Handle returns the native render pass handle.
func (rp *RenderPass) Handle() driver.RenderPass { return rp.handle }

// Device returns the owning device.
func (rp *RenderPass) Device() *Device { return rp.dev }

// SubpassCount returns the number of subpasses the pass was created with.
func (rp *RenderPass) SubpassCount() int { return rp.subpasses }

// Retain adds an owner reference.
func (rp *RenderPass) Retain() { rp.life.Retain() }

// Release drops an owner reference.
func (rp *RenderPass) Release() { rp.life.Release() }

// Framebuffer wraps a native framebuffer. It retains the render pass it
// was created over for its entire lifetime.
type Framebuffer struct {
	life lifetime.Counter

	dev        *Device
	renderPass *RenderPass
	handle     driver.Framebuffer
	extent     driver.Extent2D
}

// NewFramebuffer creates a framebuffer over a render pass. Attachment
// image views come from out-of-scope plumbing.
func NewFramebuffer(dev *Device, rp *RenderPass, attachments []driver.ImageView, width, height, layers uint32) (*Framebuffer, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	if rp == nil {
		return nil, ErrNilRenderPass
	}
	handle, err := dev.drv.CreateFramebuffer(dev.handle, driver.FramebufferCreateInfo{
		RenderPass:  rp.handle,
		Attachments: attachments,
		Width:       width,
		Height:      height,
		Layers:      layers,
	})
	if err != nil {
		return nil, fmt.Errorf("vkguard: create framebuffer: %w", err)
	}
	dev.Retain()
	rp.Retain()
	fb := &Framebuffer{
		dev:        dev,
		renderPass: rp,
		handle:     handle,
		extent:     driver.Extent2D{Width: width, Height: height},
	}
	fb.life.Init(func() {
		// Native framebuffer first, held references after.
		dev.drv.DestroyFramebuffer(dev.handle, handle)
		Logger().Debug("framebuffer destroyed", "framebuffer", uint64(handle))
		rp.Release()
		dev.Release()
	})
	return fb, nil
}

// Handle returns the native framebuffer handle.
func (fb *Framebuffer) Handle() driver.Framebuffer { return fb.handle }

// RenderPass returns the render pass the framebuffer was created over.
func (fb *Framebuffer) RenderPass() *RenderPass { return fb.renderPass }

// Extent returns the framebuffer dimensions.
func (fb *Framebuffer) Extent() driver.Extent2D { return fb.extent }

// Retain adds an owner reference.
func (fb *Framebuffer) Retain() { fb.life.Retain() }

// Release drops an owner reference.
func (fb *Framebuffer) Release() { fb.life.Release() }
