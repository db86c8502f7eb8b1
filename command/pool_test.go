package command

import (
	"errors"
	"testing"

	"github.com/gpukit/vkguard"
	"github.com/gpukit/vkguard/driver"
	"github.com/gpukit/vkguard/driver/null"
)

func newTestPool(t *testing.T, flags driver.CommandPoolCreateFlags) (*Pool, *null.Driver) {
	t.Helper()
	drv := null.New()
	dev, err := vkguard.NewDevice(drv, drv.NewDevice())
	if err != nil {
		t.Fatalf("NewDevice: %v", err)
	}
	pool, err := NewPool(dev, 0, flags)
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	dev.Release()
	return pool, drv
}

func TestNewPoolNilDevice(t *testing.T) {
	if _, err := NewPool(nil, 0, 0); !errors.Is(err, vkguard.ErrNilDevice) {
		t.Fatalf("error = %v, want %v", err, vkguard.ErrNilDevice)
	}
}

func TestAllocateAndFree(t *testing.T) {
	pool, drv := newTestPool(t, 0)

	bufs, err := pool.Allocate(driver.LevelPrimary, 3)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if len(bufs) != 3 {
		t.Fatalf("allocated %d buffers, want 3", len(bufs))
	}
	for i, b := range bufs {
		if b.Phase() != PhaseInitial {
			t.Errorf("buffer %d phase = %v, want initial", i, b.Phase())
		}
		if b.Level() != driver.LevelPrimary {
			t.Errorf("buffer %d level = %v, want primary", i, b.Level())
		}
	}

	// Free a subset; the rest stay usable.
	if err := pool.Free(bufs[0], bufs[1]); err != nil {
		t.Fatalf("Free: %v", err)
	}
	if bufs[0].Phase() != PhaseInvalid {
		t.Errorf("freed buffer phase = %v, want invalid", bufs[0].Phase())
	}
	if _, err := bufs[2].Begin(0); err != nil {
		t.Errorf("remaining buffer unusable: %v", err)
	}

	pool.Release()
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
	if got := drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
}

func TestFreeForeignBuffer(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()
	other, _ := newTestPool(t, 0)
	defer other.Release()

	bufs, err := other.Allocate(driver.LevelPrimary, 1)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if err := pool.Free(bufs[0]); !errors.Is(err, ErrForeignBuffer) {
		t.Fatalf("Free error = %v, want %v", err, ErrForeignBuffer)
	}
}

func TestFreePendingBufferRejected(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]
	if err := b.Record(0, func(*Recording) error { return nil }); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := b.MarkSubmitted(driver.Null); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if err := pool.Free(b); !errors.Is(err, ErrBufferPending) {
		t.Fatalf("Free error = %v, want %v", err, ErrBufferPending)
	}
}

func TestPoolResetRestoresInitial(t *testing.T) {
	pool, drv := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 2)
	for _, b := range bufs {
		if err := b.Record(0, func(*Recording) error { return nil }); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	if err := pool.Reset(); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	for i, b := range bufs {
		if b.Phase() != PhaseInitial {
			t.Errorf("buffer %d phase = %v, want initial", i, b.Phase())
		}
	}
	if v := drv.Violations(); len(v) != 0 {
		t.Fatalf("unexpected violations: %v", v)
	}
}

func TestPoolResetRejectsPending(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()

	bufs, _ := pool.Allocate(driver.LevelPrimary, 1)
	b := bufs[0]
	if err := b.Record(0, func(*Recording) error { return nil }); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := b.MarkSubmitted(driver.Null); err != nil {
		t.Fatalf("MarkSubmitted: %v", err)
	}
	if err := pool.Reset(); !errors.Is(err, ErrBufferPending) {
		t.Fatalf("Reset error = %v, want %v", err, ErrBufferPending)
	}
}

func TestPoolDestroySweepsBuffers(t *testing.T) {
	pool, drv := newTestPool(t, 0)

	bufs, _ := pool.Allocate(driver.LevelPrimary, 2)
	pool.Release()

	for i, b := range bufs {
		if b.Phase() != PhaseInvalid {
			t.Errorf("buffer %d phase = %v, want invalid after pool destroy", i, b.Phase())
		}
	}
	if got := drv.LiveObjects(); got != 0 {
		t.Fatalf("LiveObjects = %d, want 0", got)
	}
}

func TestSecondaryLevelForwarded(t *testing.T) {
	pool, _ := newTestPool(t, 0)
	defer pool.Release()

	bufs, err := pool.Allocate(driver.LevelSecondary, 1)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if bufs[0].Level() != driver.LevelSecondary {
		t.Errorf("level = %v, want secondary", bufs[0].Level())
	}
}
