package input

// MouseSensitivity divides pointer deltas before they are applied as radians.
const MouseSensitivity = 800.0

// PointerLock is the engine capability that hides the cursor and reports
// relative motion.
type PointerLock interface {
	IsPointerLocked() bool
	EnterPointerLock()
	ExitPointerLock()
}

// RotationTarget receives camera rotation deltas in radians.
type RotationTarget interface {
	Rotate(yaw, pitch float64)
}

type point struct {
	x, y float64
}

// Pointer tracks a secondary-button drag and turns it into yaw/pitch deltas.
type Pointer struct {
	lock        PointerLock
	sensitivity float64

	tracking bool
	ref      *point
	target   RotationTarget
}

func NewPointer(lock PointerLock) *Pointer {
	if lock == nil {
		lock = noPointerLock{}
	}
	return &Pointer{lock: lock, sensitivity: MouseSensitivity}
}

// Attach enables camera rotation. Drags before Attach rotate nothing.
func (p *Pointer) Attach(target RotationTarget) {
	p.target = target
}

func (p *Pointer) Attached() bool {
	return p.target != nil
}

func (p *Pointer) Tracking() bool {
	return p.tracking
}

func (p *Pointer) Down(evt Event) {
	if evt.Button != PointerSecondary {
		return
	}
	if !p.lock.IsPointerLocked() {
		p.lock.EnterPointerLock()
	}
	p.tracking = true
	p.ref = &point{x: evt.X, y: evt.Y}
}

func (p *Pointer) Move(evt Event) {
	if !p.tracking || p.ref == nil {
		return
	}

	var dx, dy float64
	if p.lock.IsPointerLocked() {
		dx, dy = evt.MovementX, evt.MovementY
	} else {
		dx = evt.X - p.ref.x
		dy = evt.Y - p.ref.y
		p.ref = &point{x: evt.X, y: evt.Y}
	}

	if p.target != nil {
		p.target.Rotate(dx/p.sensitivity, dy/p.sensitivity)
	}
}

// Up ends the drag and releases the pointer lock if it is held.
func (p *Pointer) Up() {
	p.tracking = false
	p.ref = nil
	if p.lock.IsPointerLocked() {
		p.lock.ExitPointerLock()
	}
}

type noPointerLock struct{}

func (noPointerLock) IsPointerLocked() bool { return false }
func (noPointerLock) EnterPointerLock()     {}
func (noPointerLock) ExitPointerLock()      {}
