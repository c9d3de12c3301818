package hud

// DefaultFadeFrames is the length of the quit fade at 60 TPS.
const DefaultFadeFrames = 60

// Fade animates the fade level applied to the rendered frame: 1 shows the
// scene unchanged and 0 is black.
type Fade struct {
	level  float64
	step   float64
	active bool
}

func NewFade(frames int) *Fade {
	if frames <= 0 {
		frames = DefaultFadeFrames
	}
	return &Fade{level: 1, step: 1 / float64(frames)}
}

func (f *Fade) Start() {
	f.active = true
}

func (f *Fade) Active() bool {
	return f.active
}

func (f *Fade) Level() float64 {
	return f.level
}

// Update advances an active fade by one frame.
func (f *Fade) Update() {
	if !f.active || f.level <= 0 {
		return
	}
	f.level -= f.step
	if f.level < 0 {
		f.level = 0
	}
}

// Done reports whether a started fade has reached black.
func (f *Fade) Done() bool {
	return f.active && f.level <= 0
}
