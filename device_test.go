package vkguard

import (
	"errors"
	"testing"

	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/driver/null"
)

func newTestDevice(t *testing.T) (*Device, *null.Driver) {
	t.Helper()
	drv := null.New()
	dev, err := NewDevice(drv, drv.NewDevice())
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	return dev, drv
}

func TestNewDeviceValidation(t *testing.T) {
	drv := null.New()
	tests := []struct {
		name    string
		drv     driver.Driver
		handle  driver.Device
		wantErr error
	}{
		{"nil driver", nil, driver.Device(1), ErrNilDriver},
		{"null handle", drv, driver.Null, ErrNullHandle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDevice(tt.drv, tt.handle)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewDevice error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeviceReleaseCallback(t *testing.T) {
	drv := null.New()
	released := false
	dev, err := NewDeviceWithRelease(drv, drv.NewDevice(), func() { released = true })
	if err != nil {
		t.Fatalf("NewDeviceWithRelease: %v", err)
	}

	dev.Retain()
	dev.Release()
	if released {
		t.Fatal("release callback fired while references remain")
	}
	dev.Release()
	if !released {
		t.Fatal("release callback did not fire on last release")
	}
}

func TestResourcesKeepDeviceAlive(t *testing.T) {
	drv := null.New()
	released := false
	dev, err := NewDeviceWithRelease(drv, drv.NewDevice(), func() { released = true })
	if err != nil {
		t.Fatalf("NewDeviceWithRelease: %v", err)
	}

	sm, err := NewShaderModule(dev, []uint32{0x07230203})
	if err != nil {
		t.Fatalf("NewShaderModule: %v", err)
	}

	dev.Release()
	if released {
		t.Fatal("device released while a shader module references it")
	}
	sm.Release()
	if !released {
		t.Fatal("device not released after its last resource")
	}
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}
