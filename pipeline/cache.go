package pipeline

import (
	"fmt"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/internal/lifetime"
)

// Cache wraps a native pipeline cache. A cache is optional: passing nil to
// Builder.Cache (or never calling it) builds pipelines without one.
type Cache struct {
	dev    *vkguard.Device
	handle driver.PipelineCache

	life lifetime.Counter
}

// NewCache creates a pipeline cache, optionally seeded with data previously
// returned by Data. initialData may be nil for an empty cache.
func NewCache(dev *vkguard.Device, initialData []byte) (*Cache, error) {
	if dev == nil {
		return nil, vkguard.ErrNilDevice
	}
	handle, err := dev.Driver().CreatePipelineCache(dev.Handle(), driver.PipelineCacheCreateInfo{
		InitialData: initialData,
	})
	if err != nil {
		return nil, fmt.Errorf("pipeline: create cache: %w", err)
	}
	dev.Retain()
	c := &Cache{dev: dev, handle: handle}
	c.life.Init(func() {
		dev.Driver().DestroyPipelineCache(dev.Handle(), handle)
		dev.Release()
	})
	return c, nil
}

// Handle returns the native pipeline cache handle.
func (c *Cache) Handle() driver.PipelineCache { return c.handle }

// Data returns the cache contents in the driver's serialized form, suitable
// for persisting and feeding back to NewCache.
func (c *Cache) Data() ([]byte, error) {
	data, err := c.dev.Driver().PipelineCacheData(c.dev.Handle(), c.handle)
	if err != nil {
		return nil, fmt.Errorf("pipeline: cache data: %w", err)
	}
	return data, nil
}

// Merge folds the contents of srcs into this cache.
func (c *Cache) Merge(srcs ...*Cache) error {
	handles := make([]driver.PipelineCache, len(srcs))
	for i, s := range srcs {
		handles[i] = s.handle
	}
	if err := c.dev.Driver().MergePipelineCaches(c.dev.Handle(), c.handle, handles); err != nil {
		return fmt.Errorf("pipeline: merge caches: %w", err)
	}
	return nil
}

// Retain adds an owner reference.
func (c *Cache) Retain() { c.life.Retain() }

// Release drops an owner reference, destroying the native cache when the
// last one is gone.
func (c *Cache) Release() { c.life.Release() }
