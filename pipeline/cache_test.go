package pipeline

import (
	"errors"
	"testing"

	"github.com/gpukit/vkguard"
)

func TestCacheDataRoundTrip(t *testing.T) {
	dev, drv := newTestDevice(t)
	defer dev.Release()

	seed := []byte{0xde, 0xad, 0xbe, 0xef}
	c, err := NewCache(dev, seed)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}

	data, err := c.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(data) != len(seed) {
		t.Fatalf("data length = %d, want %d", len(data), len(seed))
	}

	c.Release()
	if got := drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
}

func TestCacheMerge(t *testing.T) {
	dev, _ := newTestDevice(t)
	defer dev.Release()

	a, err := NewCache(dev, []byte{1, 2})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer a.Release()
	b, err := NewCache(dev, []byte{3, 4})
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer b.Release()
	dst, err := NewCache(dev, nil)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	defer dst.Release()

	if err := dst.Merge(a, b); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	data, err := dst.Data()
	if err != nil {
		t.Fatalf("Data: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("merged cache should carry data")
	}
}

func TestNewCacheNilDevice(t *testing.T) {
	if _, err := NewCache(nil, nil); !errors.Is(err, vkguard.ErrNilDevice) {
		t.Fatalf("error = %v, want %v", err, vkguard.ErrNilDevice)
	}
}
