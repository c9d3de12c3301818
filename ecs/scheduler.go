package ecs

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order. A gated scheduler skips the
// whole frame while its gate reports false.
type Scheduler struct {
	systems []System
	gate    func() bool
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

// When gates s on fn and returns s for chaining.
func (s *Scheduler) When(fn func() bool) *Scheduler {
	s.gate = fn
	return s
}

func (s *Scheduler) Add(system System) {
	if system != nil {
		s.systems = append(s.systems, system)
	}
}

func (s *Scheduler) Len() int {
	return len(s.systems)
}

// Update runs every system once and reports whether the frame ran.
func (s *Scheduler) Update(w *World) bool {
	if s == nil || w == nil {
		return false
	}
	if s.gate != nil && !s.gate() {
		return false
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	return true
}
