// Package lifetime implements destroy-on-last-release shared ownership
// for native resource wrappers.
package lifetime

import (
	"sync/atomic"
)

// Counter is an atomic reference count paired with a destroy closure that
// runs exactly once, when the count reaches zero.
//
// The usual refcount invariant applies: a caller may only retain through a
// reference it already owns. Retain after the count has reached zero, or
// an unbalanced Release, indicates corruption and panics — by the time
// either fires, the native object may already be destroyed, so there is
// nothing recoverable left.
//
// Counter must not be copied after first use.
type Counter struct {
	refs    atomic.Int64
	destroy func()
}

// Init arms the counter with one reference held.
func (c *Counter) Init(destroy func()) {
	c.destroy = destroy
	c.refs.Store(1)
}

// Retain adds an owner.
func (c *Counter) Retain() {
	if c.refs.Add(1) <= 1 {
		panic("lifetime: Retain on a destroyed object")
	}
}

// Release drops an owner, destroying on last release.
func (c *Counter) Release() {
	n := c.refs.Add(-1)
	switch {
	case n == 0:
		if c.destroy != nil {
			c.destroy()
		}
	case n < 0:
		panic("lifetime: Release without matching reference")
	}
}

// Live reports whether at least one owner remains.
func (c *Counter) Live() bool {
	return c.refs.Load() > 0
}

// Count returns the current owner count. Intended for diagnostics and
// tests; the value is stale the moment it is read.
func (c *Counter) Count() int64 {
	return c.refs.Load()
}
