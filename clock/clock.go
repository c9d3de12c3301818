// Package clock keeps the elapsed play time and renders it as the stylised
// in-game time of day.
package clock

import (
	"fmt"
	"time"
)

const (
	// SecondsPerGameMinute is how many real seconds advance the dial one minute.
	SecondsPerGameMinute = 4
	// SecondsPerGameHour is the length of one sub-cycle of the dial.
	SecondsPerGameHour = 240
	startHour          = 11
)

// Clock counts whole seconds of play. Time spent paused is not counted.
type Clock struct {
	now func() time.Time

	start   time.Time
	started bool
	stopped bool
	paused  bool

	// prev is the elapsed time accumulated before the last resume.
	prev    int
	elapsed int
}

// New returns a clock reading time from now. A nil now uses time.Now.
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start begins counting from the current instant on top of any time
// accumulated before a pause.
func (c *Clock) Start() {
	c.start = c.now()
	c.started = true
	c.stopped = false
	c.paused = false
}

// Stop freezes the clock for good, for example when the level ends.
func (c *Clock) Stop() {
	c.stopped = true
}

// Pause freezes the display and remembers the elapsed time so Resume can
// continue from the same point.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.Update()
	c.prev = c.elapsed
	c.paused = true
}

// Resume restarts the wall-clock reference at the current instant.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.start = c.now()
}

func (c *Clock) Running() bool {
	return c.started && !c.stopped && !c.paused
}

// Update recomputes the elapsed seconds. It is called once per frame.
func (c *Clock) Update() {
	if !c.Running() {
		return
	}
	c.elapsed = int(c.now().Sub(c.start)/time.Second) + c.prev
}

// Elapsed returns the whole seconds of play as of the last Update.
func (c *Clock) Elapsed() int {
	return c.elapsed
}

func (c *Clock) ElapsedDuration() time.Duration {
	return time.Duration(c.elapsed) * time.Second
}

func (c *Clock) String() string {
	return Format(c.elapsed)
}

// Format renders elapsed seconds as the in-game time. The dial starts at
// 11:00 PM, advances one minute every 4 seconds and one hour every 240
// seconds. Only the 11 o'clock hour is labelled PM; every other hour reads
// AM.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	sub := seconds % SecondsPerGameHour
	minute := sub / SecondsPerGameMinute
	hour := (startHour-1+seconds/SecondsPerGameHour)%12 + 1

	day := " AM"
	if hour == startHour {
		day = " PM"
	}
	return fmt.Sprintf("%d:%02d%s", hour, minute, day)
}
