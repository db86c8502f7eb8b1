package vkguard

import (
	"fmt"

	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// DescriptorSetLayout wraps a native descriptor set layout.
//
// Pipeline layouts read its handle at build time but do not retain the
// object afterwards; descriptor set allocation and updates are outside
// this module's scope.
type DescriptorSetLayout struct {
	life lifetime.Counter

	dev    *Device
	handle driver.DescriptorSetLayout
}

// NewDescriptorSetLayout creates a descriptor set layout from bindings.
// Binding-number uniqueness within the layout is the native API's rule and
// is validated by the driver, not here.
func NewDescriptorSetLayout(dev *Device, bindings []driver.DescriptorSetLayoutBinding) (*DescriptorSetLayout, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}
	handle, err := dev.drv.CreateDescriptorSetLayout(dev.handle, driver.DescriptorSetLayoutCreateInfo{Bindings: bindings})
	if err != nil {
		return nil, fmt.Errorf("vkguard: create descriptor set layout: %w", err)
	}
	dev.Retain()
	dsl := &DescriptorSetLayout{dev: dev, handle: handle}
	dsl.life.Init(func() {
		dev.drv.DestroyDescriptorSetLayout(dev.handle, handle)
		Logger().Debug("descriptor set layout destroyed", "layout", uint64(handle))
		dev.Release()
	})
	return dsl, nil
}

// Handle returns the native descriptor set layout handle.
func (l *DescriptorSetLayout) Handle() driver.DescriptorSetLayout { return l.handle }

// Device returns the owning device.
func (l *DescriptorSetLayout) Device() *Device { return l.dev }

// Retain adds an owner reference.
func (l *DescriptorSetLayout) Retain() { l.life.Retain() }

// Release drops an owner reference.
func (l *DescriptorSetLayout) Release() { l.life.Release() }
