package component

import "image"

// AnimationDef is one row of a sprite sheet played left to right.
type AnimationDef struct {
	Row    int
	Frames int
	Size   image.Point
	FPS    float64
	Loop   bool
}

// Rect is the sheet rectangle of frame, or the zero rectangle when the
// definition has no frame size.
func (d AnimationDef) Rect(frame int) image.Rectangle {
	if d.Size.X <= 0 || d.Size.Y <= 0 {
		return image.Rectangle{}
	}
	origin := image.Pt(frame*d.Size.X, d.Row*d.Size.Y)
	return image.Rectangle{Min: origin, Max: origin.Add(d.Size)}
}

// TicksPerFrame converts FPS to whole update ticks at tps.
func (d AnimationDef) TicksPerFrame(tps int) int {
	if d.FPS <= 0 {
		return 1
	}
	return max(1, int(float64(tps)/d.FPS))
}

// Animation tracks which sheet row the billboard shows and how far into it.
type Animation struct {
	Defs       map[string]AnimationDef
	Current    string
	Frame      int
	FrameTimer int
	Playing    bool
}

var AnimationComponent = NewComponent[Animation]()
