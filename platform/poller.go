// Package platform connects Ebitengine devices to the engine-free input
// package.
package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/nightwalk/input"
)

var keyNames = map[ebiten.Key]input.Key{
	ebiten.KeyArrowUp:    input.KeyArrowUp,
	ebiten.KeyArrowDown:  input.KeyArrowDown,
	ebiten.KeyArrowLeft:  input.KeyArrowLeft,
	ebiten.KeyArrowRight: input.KeyArrowRight,
	ebiten.KeyW:          input.KeyW,
	ebiten.KeyShiftLeft:  input.KeyShift,
	ebiten.KeyShiftRight: input.KeyShift,
	ebiten.KeySpace:      input.KeySpace,
}

var mouseButtons = []struct {
	button  ebiten.MouseButton
	pointer input.PointerButton
}{
	{ebiten.MouseButtonLeft, input.PointerPrimary},
	{ebiten.MouseButtonMiddle, input.PointerAuxiliary},
	{ebiten.MouseButtonRight, input.PointerSecondary},
}

// KeyName maps an Ebitengine key to the browser key name the input
// controller binds, reporting false for unbound keys.
func KeyName(k ebiten.Key) (input.Key, bool) {
	name, ok := keyNames[k]
	return name, ok
}

// Poller turns Ebitengine's per-tick device state into input events.
type Poller struct {
	keys    []ebiten.Key
	x, y    int
	tracked bool
	focused bool
}

func NewPoller() *Poller {
	return &Poller{focused: true}
}

func (p *Poller) Poll(q *input.Queue) {
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if name, ok := KeyName(k); ok {
			q.Push(input.KeyDown(name))
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if name, ok := KeyName(k); ok {
			q.Push(input.KeyUp(name))
		}
	}

	x, y := ebiten.CursorPosition()
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(mb.button) {
			q.Push(input.PointerDown(mb.pointer, float64(x), float64(y)))
		}
	}
	if p.tracked && (x != p.x || y != p.y) {
		dx, dy := float64(x-p.x), float64(y-p.y)
		q.Push(input.PointerMove(float64(x), float64(y), dx, dy))
	}
	p.x, p.y, p.tracked = x, y, true
	for _, mb := range mouseButtons {
		if inpututil.IsMouseButtonJustReleased(mb.button) {
			q.Push(input.PointerUp(mb.pointer, float64(x), float64(y)))
		}
	}

	focused := ebiten.IsFocused()
	if p.focused && !focused {
		q.Push(input.FocusLost())
	}
	p.focused = focused
}
