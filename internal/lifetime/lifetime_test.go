package lifetime

import "testing"

func TestCounterDestroyOnLastRelease(t *testing.T) {
	var c Counter
	destroyed := 0
	c.Init(func() { destroyed++ })

	c.Retain()
	c.Retain()
	c.Release()
	c.Release()
	if destroyed != 0 {
		t.Fatalf("destroyed early: %d", destroyed)
	}
	if !c.Live() {
		t.Fatal("counter should still be live")
	}

	c.Release()
	if destroyed != 1 {
		t.Fatalf("destroyed = %d, want 1", destroyed)
	}
	if c.Live() {
		t.Fatal("counter should be dead")
	}
}

func TestCounterRetainAfterDestroyPanics(t *testing.T) {
	var c Counter
	c.Init(func() {})
	c.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on retain after destroy")
		}
	}()
	c.Retain()
}

func TestCounterReleaseUnderflowPanics(t *testing.T) {
	var c Counter
	c.Init(func() {})
	c.Release()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on release after destroy")
		}
	}()
	c.Release()
}

func TestCounterCount(t *testing.T) {
	var c Counter
	c.Init(func() {})
	if got := c.Count(); got != 1 {
		t.Fatalf("Count = %d, want 1", got)
	}
	c.Retain()
	if got := c.Count(); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
	c.Release()
	c.Release()
	if got := c.Count(); got != 0 {
		t.Fatalf("Count = %d, want 0", got)
	}
}
