package sim

import (
	"testing"
	"time"
)

func TestDeviceLatency(t *testing.T) {
	dev := NewDevice(1)

	q1, _ := dev.CreateQuery()
	dev.BeginQuery(q1)
	dev.Spend(3 * time.Millisecond)
	dev.EndQuery()

	if dev.ResultAvailable(q1) {
		t.Fatal("expected result to be pending until another query is submitted")
	}

	q2, _ := dev.CreateQuery()
	dev.BeginQuery(q2)
	dev.Spend(time.Millisecond)
	dev.EndQuery()

	if !dev.ResultAvailable(q1) {
		t.Fatal("expected result to be available")
	}
	if got := time.Duration(dev.Result(q1)); got != 3*time.Millisecond {
		t.Fatalf("expected 3ms; got %s", got)
	}
}

func TestDeviceDisjointIsClearedOnRead(t *testing.T) {
	dev := NewDevice(0)
	dev.InjectDisjoint()

	if !dev.Disjoint() {
		t.Fatal("expected disjoint flag to be set")
	}
	if dev.Disjoint() {
		t.Fatal("expected disjoint flag to be cleared after reading")
	}
}

func TestDeviceContextLoss(t *testing.T) {
	dev := NewDevice(0)
	q, _ := dev.CreateQuery()
	dev.LoseContext()

	if dev.ResultAvailable(q) || dev.Live() != 0 {
		t.Fatal("expected queries to be invalidated by context loss")
	}
	if _, ok := dev.CreateQuery(); ok {
		t.Fatal("expected query creation to fail while the context is lost")
	}

	dev.RestoreContext()
	if _, ok := dev.CreateQuery(); !ok {
		t.Fatal("expected query creation to succeed after restoration")
	}
}

func TestClockPresentAlignsToRefresh(t *testing.T) {
	clock := NewClock(10 * time.Millisecond)

	if got := clock.Present(3 * time.Millisecond); got != 10*time.Millisecond {
		t.Fatalf("expected frame to take 10ms; got %s", got)
	}
	if got := clock.Present(12 * time.Millisecond); got != 20*time.Millisecond {
		t.Fatalf("expected frame to take 20ms; got %s", got)
	}
}
