package ui

import (
	"time"

	"github.com/hako/durafmt"
	"github.com/milk9111/nightwalk/hud"
)

// Panels says which parts of the overlay are shown for a menu state.
type Panels struct {
	PauseButton  bool
	PauseEnabled bool
	Menu         bool
	Controls     bool
	Clock        bool
	Tutorial     bool
	Mobile       bool
}

// PanelsFor maps the menu state to the visible overlay parts. The pause
// button stays on screen while paused but cannot be pressed again.
func PanelsFor(state hud.State, mobile, tutorialDone bool) Panels {
	return Panels{
		PauseButton:  state != hud.StateQuitting,
		PauseEnabled: state == hud.StateRunning,
		Menu:         state == hud.StatePaused,
		Controls:     state == hud.StateControls,
		Clock:        true,
		Tutorial:     state == hud.StateRunning && !tutorialDone,
		Mobile:       mobile && state != hud.StateQuitting,
	}
}

// ControlsText lists the bindings shown on the controls screen.
func ControlsText(mobile bool) []string {
	if mobile {
		return []string{
			"Arrow pad: move",
			"DASH: hold to run",
			"JUMP: jump",
		}
	}
	return []string{
		"Arrow keys / W: move",
		"Shift: dash",
		"Space: jump",
		"Right mouse drag: look around",
	}
}

// PlayedText formats the time spent playing for the pause menu.
func PlayedText(d time.Duration) string {
	if d < time.Second {
		return "Played: 0 seconds"
	}
	return "Played: " + durafmt.Parse(d.Truncate(time.Second)).LimitFirstN(2).String()
}
