package vkguard

import (
	"errors"

	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Device errors.
var (
	// ErrNilDriver is returned when constructing a device without a driver.
	ErrNilDriver = errors.New("vkguard: driver is nil")

	// ErrNilDevice is returned when a resource constructor receives a nil
	// device.
	ErrNilDevice = errors.New("vkguard: device is nil")

	// ErrNullHandle is returned when a constructor receives a null native
	// handle.
	ErrNullHandle = errors.New("vkguard: null native handle")
)

// Device wraps a logical device handle produced by out-of-scope plumbing
// (instance/queue-family enumeration, device creation).
//
// A Device is reference-counted like every other resource, and every
// resource created from it retains it, so the device is guaranteed to
// outlive everything it created. vkguard never destroys the native device
// itself — the code that created it owns that call — but the optional
// release callback fires when the last reference drops, which is the
// earliest point the native destroy is safe.
type Device struct {
	life lifetime.Counter

	drv    driver.Driver
	handle driver.Device
}

// NewDevice wraps a native device handle. The caller holds the initial
// reference and must Release it when done.
func NewDevice(drv driver.Driver, handle driver.Device) (*Device, error) {
	return NewDeviceWithRelease(drv, handle, nil)
}

// NewDeviceWithRelease is NewDevice with a callback invoked when the last
// reference drops. The callback runs on whichever goroutine performed the
// final Release.
func NewDeviceWithRelease(drv driver.Driver, handle driver.Device, onRelease func()) (*Device, error) {
	if drv == nil {
		return nil, ErrNilDriver
	}
	if handle == driver.Null {
		return nil, ErrNullHandle
	}
	d := &Device{drv: drv, handle: handle}
	d.life.Init(func() {
		Logger().Debug("device released", "driver", drv.Name(), "device", uint64(handle))
		if onRelease != nil {
			onRelease()
		}
	})
	return d, nil
}

// Driver returns the driver this device was wrapped with.
func (d *Device) Driver() driver.Driver { return d.drv }

// Handle returns the native device handle.
func (d *Device) Handle() driver.Device { return d.handle }

// Retain adds an owner reference.
func (d *Device) Retain() { d.life.Retain() }

// Release drops an owner reference, firing the release callback when the
// last one is gone.
func (d *Device) Release() { d.life.Release() }
