package vkguard

import (
	"errors"
	"testing"

	"github.com/gpukit/vkguard/driver"
)

func singleSubpassInfo() driver.RenderPassCreateInfo {
	return driver.RenderPassCreateInfo{
		Attachments: []driver.AttachmentDescription{{
			Format:      driver.FormatB8G8R8A8Unorm,
			Samples:     driver.Samples1,
			LoadOp:      driver.LoadOpClear,
			StoreOp:     driver.StoreOpStore,
			FinalLayout: driver.LayoutPresentSrc,
		}},
		Subpasses: []driver.SubpassDescription{{
			BindPoint: driver.BindPointGraphics,
			ColorAttachments: []driver.AttachmentReference{
				{Attachment: 0, Layout: driver.LayoutColorAttachmentOptimal},
			},
		}},
	}
}

func TestNewRenderPassValidation(t *testing.T) {
	dev, _ := newTestDevice(t)
	defer dev.Release()

	if _, err := NewRenderPass(nil, singleSubpassInfo()); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device error = %v, want %v", err, ErrNilDevice)
	}
	if _, err := NewRenderPass(dev, driver.RenderPassCreateInfo{}); !errors.Is(err, ErrNoSubpasses) {
		t.Errorf("no subpasses error = %v, want %v", err, ErrNoSubpasses)
	}
}

func TestRenderPassSubpassCount(t *testing.T) {
	dev, _ := newTestDevice(t)
	defer dev.Release()

	info := singleSubpassInfo()
	info.Subpasses = append(info.Subpasses, driver.SubpassDescription{BindPoint: driver.BindPointGraphics})
	rp, err := NewRenderPass(dev, info)
	if err != nil {
		t.Fatalf("NewRenderPass: %v", err)
	}
	defer rp.Release()

	if got := rp.SubpassCount(); got != 2 {
		t.Errorf("SubpassCount = %d, want 2", got)
	}
}

func TestFramebufferRetainsRenderPass(t *testing.T) {
	dev, drv := newTestDevice(t)
	defer dev.Release()

	rp, err := NewRenderPass(dev, singleSubpassInfo())
	if err != nil {
		t.Fatalf("NewRenderPass: %v", err)
	}
	fb, err := NewFramebuffer(dev, rp, nil, 640, 480, 1)
	if err != nil {
		t.Fatalf("NewFramebuffer: %v", err)
	}

	// Dropping the caller's pass reference must not destroy it while the
	// framebuffer lives.
	rp.Release()
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}

	fb.Release()
	if got := drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestNewDescriptorSetLayout(t *testing.T) {
	dev, drv := newTestDevice(t)
	defer dev.Release()

	dsl, err := NewDescriptorSetLayout(dev, []driver.DescriptorSetLayoutBinding{{
		Binding:         0,
		DescriptorType:  driver.DescriptorUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      driver.StageVertex,
	}})
	if err != nil {
		t.Fatalf("NewDescriptorSetLayout: %v", err)
	}

	dsl.Release()
	if got := drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
}
