package hud

import "github.com/milk9111/nightwalk/clock"

// State is the pause menu state.
type State int

const (
	StateRunning State = iota
	StatePaused
	// StateControls is the controls screen, reached from the pause menu.
	StateControls
	// StateQuitting is entered from the pause menu and never left.
	StateQuitting
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateControls:
		return "controls"
	case StateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}

// Menu owns the pause, resume and quit flow and the game clock that it
// freezes. Transition methods return false when they do not apply to the
// current state.
type Menu struct {
	state State
	clock *clock.Clock
	fade  *Fade

	transition bool
	onResume   []func()
	onChange   []func(from, to State)
}

func NewMenu(c *clock.Clock, fade *Fade) *Menu {
	if fade == nil {
		fade = NewFade(DefaultFadeFrames)
	}
	return &Menu{clock: c, fade: fade}
}

// OnResume registers a hook run after every resume, e.g. to restart music.
func (m *Menu) OnResume(fn func()) {
	if fn != nil {
		m.onResume = append(m.onResume, fn)
	}
}

// OnChange registers a hook run after every state change.
func (m *Menu) OnChange(fn func(from, to State)) {
	if fn != nil {
		m.onChange = append(m.onChange, fn)
	}
}

func (m *Menu) State() State {
	return m.state
}

// Paused reports whether gameplay input is suspended. Every state but
// running counts as paused.
func (m *Menu) Paused() bool {
	return m.state != StateRunning
}

// Transition reports whether the quit fade has been requested.
func (m *Menu) Transition() bool {
	return m.transition
}

func (m *Menu) Fade() *Fade {
	return m.fade
}

func (m *Menu) Clock() *clock.Clock {
	return m.clock
}

func (m *Menu) Pause() bool {
	if m.state != StateRunning {
		return false
	}
	if m.clock != nil {
		m.clock.Pause()
	}
	m.set(StatePaused)
	return true
}

func (m *Menu) Resume() bool {
	if m.state != StatePaused {
		return false
	}
	if m.clock != nil {
		m.clock.Resume()
	}
	m.set(StateRunning)
	for _, fn := range m.onResume {
		fn()
	}
	return true
}

func (m *Menu) OpenControls() bool {
	if m.state != StatePaused {
		return false
	}
	m.set(StateControls)
	return true
}

func (m *Menu) Back() bool {
	if m.state != StateControls {
		return false
	}
	m.set(StatePaused)
	return true
}

// Quit starts the fade-out. The caller watches Fade().Done() to shut down.
func (m *Menu) Quit() bool {
	if m.state != StatePaused {
		return false
	}
	m.transition = true
	m.fade.Start()
	m.set(StateQuitting)
	return true
}

func (m *Menu) set(to State) {
	from := m.state
	m.state = to
	for _, fn := range m.onChange {
		fn(from, to)
	}
}
