package input

import "github.com/milk9111/nightwalk/common"

// Smoothing is the fraction of the remaining distance the movement scalars
// travel toward their target each frame. It is applied per frame, so the
// easing speed depends on the frame rate.
const Smoothing = 0.2

// State is the per-frame output read by the character controller.
type State struct {
	// Horizontal and Vertical are eased toward HorizontalAxis/VerticalAxis.
	Horizontal float64
	Vertical   float64
	// HorizontalAxis is -1 for left, +1 for right, 0 for none.
	HorizontalAxis int
	// VerticalAxis is +1 for forward, -1 for back, 0 for none.
	VerticalAxis int
	Dashing      bool
	JumpKeyDown  bool
}

// Controller turns queued keyboard, pointer and mobile button events into
// movement axes and action flags.
type Controller struct {
	keys   map[Key]bool
	mobile [mobileButtonCount]bool
	paused bool

	pointer *Pointer
	state   State
}

func NewController(lock PointerLock) *Controller {
	return &Controller{
		keys:    make(map[Key]bool),
		pointer: NewPointer(lock),
	}
}

// SetPaused toggles key capture. Entering the paused state releases every
// held key; key presses are not recorded until play resumes.
func (c *Controller) SetPaused(paused bool) {
	if paused && !c.paused {
		clear(c.keys)
	}
	c.paused = paused
}

func (c *Controller) Paused() bool {
	return c.paused
}

// AttachControl routes pointer drags to target as camera rotation.
func (c *Controller) AttachControl(target RotationTarget) {
	c.pointer.Attach(target)
}

func (c *Controller) Pointer() *Pointer {
	return c.pointer
}

func (c *Controller) Pressed(k Key) bool {
	return c.keys[k]
}

func (c *Controller) MobilePressed(b MobileButton) bool {
	if b < 0 || b >= mobileButtonCount {
		return false
	}
	return c.mobile[b]
}

// State returns the axes and flags computed by the last Update.
func (c *Controller) State() State {
	return c.state
}

// Update applies one frame of events in order and recomputes the state.
func (c *Controller) Update(events []Event) State {
	for _, evt := range events {
		c.Apply(evt)
	}
	c.derive()
	return c.state
}

// Apply records a single event without recomputing axes.
func (c *Controller) Apply(evt Event) {
	switch evt.Kind {
	case EventKeyDown, EventKeyUp:
		if c.paused {
			c.keys[evt.Key] = false
			return
		}
		c.keys[evt.Key] = evt.Kind == EventKeyDown
	case EventMobilePress, EventMobileRelease:
		if evt.Mobile >= 0 && evt.Mobile < mobileButtonCount {
			c.mobile[evt.Mobile] = evt.Kind == EventMobilePress
		}
	case EventPointerDown:
		c.pointer.Down(evt)
	case EventPointerMove:
		c.pointer.Move(evt)
	case EventPointerUp, EventFocusLost:
		c.pointer.Up()
	}
}

func (c *Controller) derive() {
	s := &c.state

	switch {
	case c.any(forwardKeys) || c.mobile[MobileUp]:
		s.VerticalAxis = 1
		s.Vertical = common.Lerp(s.Vertical, 1, Smoothing)
	case c.any(backKeys) || c.mobile[MobileDown]:
		s.VerticalAxis = -1
		s.Vertical = common.Lerp(s.Vertical, -1, Smoothing)
	default:
		s.VerticalAxis = 0
		s.Vertical = 0
	}

	switch {
	case c.any(leftKeys) || c.mobile[MobileLeft]:
		s.HorizontalAxis = -1
		s.Horizontal = common.Lerp(s.Horizontal, -1, Smoothing)
	case c.any(rightKeys) || c.mobile[MobileRight]:
		s.HorizontalAxis = 1
		s.Horizontal = common.Lerp(s.Horizontal, 1, Smoothing)
	default:
		s.HorizontalAxis = 0
		s.Horizontal = 0
	}

	s.Dashing = c.any(dashKeys) || c.mobile[MobileDash]
	s.JumpKeyDown = c.any(jumpKeys) || c.mobile[MobileJump]
}

func (c *Controller) any(keys []Key) bool {
	for _, k := range keys {
		if c.keys[k] {
			return true
		}
	}
	return false
}
