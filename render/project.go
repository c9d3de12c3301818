package render

import (
	"math"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/scene"
)

// Projection maps world points to the screen for one camera view. Ground
// depth is foreshortened by the pitch and heights by its cosine, which gives
// an oblique view that tilts from side-on (pitch 0) to top-down (pitch pi/2).
type Projection struct {
	view     scene.View
	cx, cy   float64
	sin, cos float64
	sinP     float64
	cosP     float64
}

func NewProjection(v scene.View, width, height int) Projection {
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	if v.Distance <= 0 {
		v.Distance = 1
	}
	sin, cos := math.Sincos(v.Yaw)
	sinP, cosP := math.Sincos(v.Pitch)
	return Projection{
		view: v,
		cx:   float64(width) / 2,
		cy:   float64(height) * 0.6,
		sin:  sin,
		cos:  cos,
		sinP: sinP,
		cosP: cosP,
	}
}

// cameraSpace rotates w around the target so right runs along the screen X
// axis and forward points into the screen.
func (p Projection) cameraSpace(w common.Vec3) (right, forward float64) {
	d := w.Sub(p.view.Target)
	return d.X*p.cos - d.Z*p.sin, d.X*p.sin + d.Z*p.cos
}

// Project returns the screen position of w, its depth (larger is farther)
// and the pixels per world unit at that depth.
func (p Projection) Project(w common.Vec3) (x, y, depth, scale float64) {
	right, forward := p.cameraSpace(w)
	depth = forward * p.cosP
	scale = p.view.Zoom * p.view.Distance / math.Max(p.view.Distance*0.25, p.view.Distance+depth)
	x = p.cx + right*scale
	y = p.cy - forward*p.sinP*scale - (w.Y-p.view.Target.Y)*p.cosP*scale
	return x, y, depth, scale
}

// Upright is the on-screen height factor for billboards. It never drops to
// zero so sprites stay visible from straight above.
func (p Projection) Upright() float64 {
	return math.Max(p.cosP, 0.35)
}

// FacesLeft reports whether a billboard with this yaw points toward the left
// of the screen. Sprites are drawn facing right and mirrored when it does.
func (p Projection) FacesLeft(yaw float64) bool {
	return math.Sin(yaw-p.view.Yaw) < 0
}
