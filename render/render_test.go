package render

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/scene"
)

func TestProjection(t *testing.T) {
	view := scene.View{Distance: 10, Zoom: 8, Pitch: 0.6}
	p := NewProjection(view, 800, 600)

	cx, cy, depth, scale := p.Project(common.Vec3{})
	if cx != 400 || cy != 360 || depth != 0 || scale != 8 {
		t.Fatalf("target should sit at the anchor: %v %v %v %v", cx, cy, depth, scale)
	}

	rx, _, _, _ := p.Project(common.Vec3{X: 1})
	if rx <= cx {
		t.Fatalf("+X should be right of centre at yaw 0")
	}

	_, fy, fdepth, fscale := p.Project(common.Vec3{Z: 5})
	if fy >= cy || fdepth <= 0 || fscale >= scale {
		t.Fatalf("points ahead should be higher, deeper and smaller: y=%v depth=%v scale=%v", fy, fdepth, fscale)
	}

	_, uy, _, _ := p.Project(common.Vec3{Y: 2})
	if uy >= cy {
		t.Fatalf("raised points should move up the screen")
	}

	turned := NewProjection(scene.View{Distance: 10, Zoom: 8, Pitch: 0.6, Yaw: math.Pi / 2}, 800, 600)
	_, ty, tdepth, _ := turned.Project(common.Vec3{X: 5})
	if math.Abs(tdepth-fdepth) > 1e-9 || math.Abs(ty-fy) > 1e-9 {
		t.Fatalf("after a quarter turn +X should look like +Z did")
	}
}

func TestFacesLeft(t *testing.T) {
	p := NewProjection(scene.View{Distance: 1, Zoom: 1}, 10, 10)
	if p.FacesLeft(math.Pi/2) || !p.FacesLeft(-math.Pi/2) {
		t.Fatalf("facing +X is right, -X is left at yaw 0")
	}
}

func TestShading(t *testing.T) {
	lights := scene.Lights{
		SunDirection:     common.Vec3{Y: -1},
		SunColor:         color.White,
		SunIntensity:     0.5,
		AmbientSky:       color.White,
		AmbientGround:    color.Black,
		AmbientIntensity: 0.5,
	}
	flat := irradiance(lights, common.Vec3{Y: 1})
	if math.Abs(flat.r-1) > 1e-9 {
		t.Fatalf("flat ground under an overhead sun should be fully lit, got %v", flat.r)
	}
	tilted := irradiance(lights, common.Vec3{X: 1})
	if tilted.r >= flat.r {
		t.Fatalf("a vertical face should receive less light")
	}

	hm := image.NewGray(image.Rect(0, 0, 4, 4))
	terrain, err := scene.NewTerrain(hm, 10, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	terrain.Low = color.NRGBA{R: 200, G: 100, B: 50, A: 255}
	img := ShadeGround(terrain, lights)
	if img.Bounds().Dx() != 4 || img.NRGBAAt(1, 1) != (color.NRGBA{R: 200, G: 100, B: 50, A: 255}) {
		t.Fatalf("unexpected ground texel %v", img.NRGBAAt(1, 1))
	}
}

func TestSkyGradient(t *testing.T) {
	sky := scene.Sky{Top: color.Black, Bottom: color.White}
	img := SkyGradient(sky, 3)
	if img.NRGBAAt(0, 0).R != 0 || img.NRGBAAt(0, 1).R != 128 || img.NRGBAAt(0, 2).R != 255 {
		t.Fatalf("gradient wrong: %v %v %v", img.NRGBAAt(0, 0), img.NRGBAAt(0, 1), img.NRGBAAt(0, 2))
	}
}

func TestRendererBookkeeping(t *testing.T) {
	r := NewRenderer()
	if _, err := r.CreateMesh(scene.MeshSpec{Name: "flat"}); err == nil {
		t.Fatalf("zero height mesh should fail")
	}
	m, err := r.CreateMesh(scene.MeshSpec{Name: "block", Height: 2})
	if err != nil {
		t.Fatalf("CreateMesh: %v", err)
	}
	if _, err := r.CreateInstance(m+1, scene.Transform{}); !errors.Is(err, ErrUnknownMesh) {
		t.Fatalf("expected ErrUnknownMesh, got %v", err)
	}
	id, err := r.CreateInstance(m, scene.Transform{})
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	if r.instance(id).tr.Scale != 1 {
		t.Fatalf("scale should default to 1")
	}

	r.SetTransform(id, scene.Transform{Position: common.Vec3{X: 3}, Scale: 2})
	r.AttachShadowCaster(id)
	r.SetTransform(99, scene.Transform{})
	inst := r.instance(id)
	if inst.tr.Position.X != 3 || inst.tr.Scale != 2 || !inst.shadow {
		t.Fatalf("instance not updated: %+v", inst)
	}
	if err := r.SetGround(nil); !errors.Is(err, scene.ErrEmptyHeightmap) {
		t.Fatalf("nil ground should fail")
	}

	r.Reset()
	if r.InstanceCount() != 0 {
		t.Fatalf("Reset should drop instances")
	}
}
