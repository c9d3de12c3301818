package input

import (
	"math"
	"testing"
)

type fakeLock struct {
	locked  bool
	enters  int
	exits   int
	refuses bool
}

func (l *fakeLock) IsPointerLocked() bool { return l.locked }

func (l *fakeLock) EnterPointerLock() {
	l.enters++
	if !l.refuses {
		l.locked = true
	}
}

func (l *fakeLock) ExitPointerLock() {
	l.exits++
	l.locked = false
}

type fakeTarget struct {
	yaw, pitch float64
	calls      int
}

func (f *fakeTarget) Rotate(yaw, pitch float64) {
	f.yaw += yaw
	f.pitch += pitch
	f.calls++
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestPointerNoRotationBeforeAttach(t *testing.T) {
	lock := &fakeLock{}
	c := NewController(lock)
	target := &fakeTarget{}

	c.Update([]Event{
		PointerDown(PointerSecondary, 100, 100),
		PointerMove(150, 120, 50, 20),
	})
	if target.calls != 0 || target.yaw != 0 || target.pitch != 0 {
		t.Fatalf("target rotated before attach: %+v", target)
	}
	if !c.Pointer().Tracking() {
		t.Fatalf("expected tracking after secondary press")
	}

	c.AttachControl(target)
	c.Update([]Event{PointerMove(0, 0, 80, -40)})
	if !near(target.yaw, 80.0/800) || !near(target.pitch, -40.0/800) {
		t.Fatalf("rotation = (%v, %v), want (0.1, -0.05)", target.yaw, target.pitch)
	}
}

func TestPointerLockedUsesMovement(t *testing.T) {
	lock := &fakeLock{}
	c := NewController(lock)
	target := &fakeTarget{}
	c.AttachControl(target)

	c.Update([]Event{PointerDown(PointerSecondary, 10, 10)})
	if !lock.locked || lock.enters != 1 {
		t.Fatalf("expected pointer lock entered once, got %+v", lock)
	}

	c.Update([]Event{
		PointerMove(500, 500, 8, 4),
		PointerMove(900, 900, 8, 4),
	})
	if !near(target.yaw, 16.0/800) || !near(target.pitch, 8.0/800) {
		t.Fatalf("rotation = (%v, %v), want (0.02, 0.01)", target.yaw, target.pitch)
	}

	c.Update([]Event{PointerUp(PointerSecondary, 0, 0)})
	if lock.locked || lock.exits != 1 {
		t.Fatalf("expected pointer lock released, got %+v", lock)
	}
	c.Update([]Event{PointerMove(0, 0, 100, 100)})
	if target.calls != 2 {
		t.Fatalf("moves after release must not rotate, calls=%d", target.calls)
	}
}

func TestPointerUnlockedUsesScreenDelta(t *testing.T) {
	lock := &fakeLock{refuses: true}
	c := NewController(lock)
	target := &fakeTarget{}
	c.AttachControl(target)

	c.Update([]Event{
		PointerDown(PointerSecondary, 100, 200),
		PointerMove(140, 180, 999, 999),
		PointerMove(180, 160, 999, 999),
	})
	if !near(target.yaw, 80.0/800) || !near(target.pitch, -40.0/800) {
		t.Fatalf("rotation = (%v, %v), want (0.1, -0.05)", target.yaw, target.pitch)
	}
	c.Update([]Event{PointerUp(PointerSecondary, 0, 0)})
	if lock.exits != 0 {
		t.Fatalf("unlocked pointer must not try to exit lock")
	}
}

func TestPointerIgnoresPrimaryButton(t *testing.T) {
	lock := &fakeLock{}
	c := NewController(lock)
	target := &fakeTarget{}
	c.AttachControl(target)

	c.Update([]Event{
		PointerDown(PointerPrimary, 0, 0),
		PointerMove(10, 10, 10, 10),
	})
	if lock.enters != 0 || target.calls != 0 || c.Pointer().Tracking() {
		t.Fatalf("primary button should not start a drag")
	}
}

func TestFocusLossReleasesLock(t *testing.T) {
	lock := &fakeLock{}
	c := NewController(lock)
	c.Update([]Event{PointerDown(PointerSecondary, 0, 0)})
	c.Update([]Event{{Kind: EventFocusLost}})
	if lock.locked || c.Pointer().Tracking() {
		t.Fatalf("focus loss should end the drag and release the lock")
	}
}
