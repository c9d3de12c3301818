package platform

import "github.com/hajimehoshi/ebiten/v2"

// CursorLock implements input.PointerLock with Ebitengine's captured cursor
// mode, which requests pointer lock in browsers.
type CursorLock struct{}

func (CursorLock) IsPointerLocked() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}

func (CursorLock) EnterPointerLock() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (CursorLock) ExitPointerLock() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}
