// Package scene builds the explorable world on top of a rendering backend.
package scene

import (
	"image"
	"image/color"

	"github.com/milk9111/nightwalk/common"
)

type MeshID int

type InstanceID int

// Transform places an instance. Frame selects a sub-rectangle of the mesh
// image; the zero rectangle means the whole image.
type Transform struct {
	Position common.Vec3
	Yaw      float64
	Scale    float64
	Frame    image.Rectangle
}

type Sky struct {
	Top    color.Color
	Bottom color.Color
}

// Lights is one directional sun plus a hemispheric ambient term.
type Lights struct {
	SunDirection     common.Vec3
	SunColor         color.Color
	SunIntensity     float64
	AmbientSky       color.Color
	AmbientGround    color.Color
	AmbientIntensity float64
}

// MeshSpec describes a billboard mesh. Radius is the footprint used for
// shadows, Height the world-space height of the image.
type MeshSpec struct {
	Name   string
	Image  image.Image
	Radius float64
	Height float64
	Tint   color.Color
}

// View is the orbit camera the backend renders from.
type View struct {
	Target   common.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	Zoom     float64
}

// Backend is everything the game needs from a renderer.
type Backend interface {
	SetSky(sky Sky)
	SetLights(lights Lights)
	SetGround(t *Terrain) error
	CreateMesh(spec MeshSpec) (MeshID, error)
	CreateInstance(mesh MeshID, tr Transform) (InstanceID, error)
	SetTransform(id InstanceID, tr Transform)
	AttachShadowCaster(id InstanceID)
	SetCamera(v View)
}
