package hud

import (
	"errors"
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/nightwalk/input"
)

// ErrNoHint is returned when a tutorial script does not leave a string hint
// and a bool done behind after running.
var ErrNoHint = errors.New("hud: tutorial script must define hint and done")

// Progress records which moves the player has tried at least once.
type Progress struct {
	Moved  bool
	Jumped bool
	Dashed bool
	Looked bool
}

// Tutorial runs a tengo script that maps Progress to the hint shown in the
// tutorial panel. The panel hides once the script reports done.
type Tutorial struct {
	compiled *tengo.Compiled
	progress Progress
	hint     string
	done     bool
}

func NewTutorial(src []byte, mobile bool) (*Tutorial, error) {
	script := tengo.NewScript(src)
	_ = script.Add("mobile", mobile)
	_ = script.Add("moved", false)
	_ = script.Add("jumped", false)
	_ = script.Add("dashed", false)
	_ = script.Add("looked", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("hud: compile tutorial script: %w", err)
	}
	t := &Tutorial{compiled: compiled}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t, nil
}

// Observe folds one frame of input into the progress and re-runs the script
// when something new was attempted.
func (t *Tutorial) Observe(s input.State, looking bool) error {
	next := t.progress
	next.Moved = next.Moved || s.HorizontalAxis != 0 || s.VerticalAxis != 0
	next.Jumped = next.Jumped || s.JumpKeyDown
	next.Dashed = next.Dashed || s.Dashing
	next.Looked = next.Looked || looking
	if next == t.progress {
		return nil
	}
	t.progress = next
	return t.run()
}

func (t *Tutorial) Progress() Progress {
	return t.progress
}

func (t *Tutorial) Hint() string {
	return t.hint
}

func (t *Tutorial) Done() bool {
	return t.done
}

func (t *Tutorial) run() error {
	vars := map[string]bool{
		"moved":  t.progress.Moved,
		"jumped": t.progress.Jumped,
		"dashed": t.progress.Dashed,
		"looked": t.progress.Looked,
	}
	for name, v := range vars {
		if err := t.compiled.Set(name, v); err != nil {
			return fmt.Errorf("hud: set tutorial var %s: %w", name, err)
		}
	}
	if err := t.compiled.Run(); err != nil {
		return fmt.Errorf("hud: run tutorial script: %w", err)
	}
	// Script globals only hold values after a run.
	hint, ok := t.compiled.Get("hint").Value().(string)
	if !ok {
		return ErrNoHint
	}
	done, ok := t.compiled.Get("done").Value().(bool)
	if !ok {
		return ErrNoHint
	}
	t.hint, t.done = hint, done
	return nil
}
