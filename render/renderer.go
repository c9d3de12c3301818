// Package render draws the scene with Ebitengine: a lit heightmap mesh under a
// sky gradient, with depth sorted billboards and blob shadows.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/scene"
)

var ErrUnknownMesh = errors.New("render: unknown mesh")

// maxGridCells caps the terrain mesh resolution per side.
const maxGridCells = 64

const (
	shadowSize  = 64
	shadowAlpha = 0.45
	cullMargin  = 200
)

type mesh struct {
	spec scene.MeshSpec
	img  *ebiten.Image
}

type instance struct {
	mesh   scene.MeshID
	tr     scene.Transform
	shadow bool
}

// Renderer implements scene.Backend.
type Renderer struct {
	sky    scene.Sky
	skyImg *ebiten.Image

	lights  scene.Lights
	terrain *scene.Terrain
	ground  *ebiten.Image

	meshes    []mesh
	instances []instance
	view      scene.View

	shadow *ebiten.Image

	vertices []ebiten.Vertex
	indices  []uint16
	cells    []cell
	order    []drawItem
}

type cell struct {
	index int
	depth float64
}

type drawItem struct {
	inst  *instance
	x, y  float64
	depth float64
	scale float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		lights: scene.Lights{
			SunDirection:     common.Vec3{Y: -1},
			SunColor:         color.White,
			SunIntensity:     0.6,
			AmbientSky:       color.White,
			AmbientGround:    color.Black,
			AmbientIntensity: 0.5,
		},
		view: scene.View{Distance: 18, Zoom: 9, Pitch: 0.6},
	}
}

func (r *Renderer) SetSky(sky scene.Sky) {
	r.sky = sky
	r.skyImg = nil
}

func (r *Renderer) SetLights(lights scene.Lights) {
	r.lights = lights
	r.ground = nil
}

func (r *Renderer) SetGround(t *scene.Terrain) error {
	if t == nil {
		return scene.ErrEmptyHeightmap
	}
	r.terrain = t
	r.ground = nil
	return nil
}

func (r *Renderer) CreateMesh(spec scene.MeshSpec) (scene.MeshID, error) {
	if spec.Height <= 0 {
		return 0, fmt.Errorf("render: mesh %q needs a positive height", spec.Name)
	}
	m := mesh{spec: spec}
	if spec.Image != nil {
		m.img = ebiten.NewImageFromImage(spec.Image)
	}
	r.meshes = append(r.meshes, m)
	return scene.MeshID(len(r.meshes)), nil
}

func (r *Renderer) CreateInstance(id scene.MeshID, tr scene.Transform) (scene.InstanceID, error) {
	if id <= 0 || int(id) > len(r.meshes) {
		return 0, fmt.Errorf("%w: %d", ErrUnknownMesh, id)
	}
	if tr.Scale == 0 {
		tr.Scale = 1
	}
	r.instances = append(r.instances, instance{mesh: id, tr: tr})
	return scene.InstanceID(len(r.instances)), nil
}

func (r *Renderer) SetTransform(id scene.InstanceID, tr scene.Transform) {
	inst := r.instance(id)
	if inst == nil {
		return
	}
	if tr.Scale == 0 {
		tr.Scale = 1
	}
	inst.tr = tr
}

func (r *Renderer) AttachShadowCaster(id scene.InstanceID) {
	if inst := r.instance(id); inst != nil {
		inst.shadow = true
	}
}

func (r *Renderer) SetCamera(v scene.View) {
	r.view = v
}

// Reset forgets every mesh and instance, used before a scene reload.
func (r *Renderer) Reset() {
	r.meshes = nil
	r.instances = nil
	r.terrain = nil
	r.ground = nil
}

func (r *Renderer) instance(id scene.InstanceID) *instance {
	if id <= 0 || int(id) > len(r.instances) {
		return nil
	}
	return &r.instances[id-1]
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	proj := NewProjection(r.view, b.Dx(), b.Dy())

	r.drawSky(screen)
	r.drawGround(screen, proj)
	r.collect(proj, b.Dx())
	r.drawShadows(screen, proj)
	r.drawBillboards(screen, proj)
}

func (r *Renderer) drawSky(screen *ebiten.Image) {
	if r.skyImg == nil {
		r.skyImg = ebiten.NewImageFromImage(SkyGradient(r.sky, 256))
	}
	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	sb := r.skyImg.Bounds()
	op.GeoM.Scale(float64(b.Dx())/float64(sb.Dx()), float64(b.Dy())/float64(sb.Dy()))
	screen.DrawImage(r.skyImg, op)
}

func (r *Renderer) drawGround(screen *ebiten.Image, proj Projection) {
	t := r.terrain
	if t == nil {
		return
	}
	if r.ground == nil {
		r.ground = ebiten.NewImageFromImage(ShadeGround(t, r.lights))
	}

	n := min(maxGridCells, t.Cols()-1, t.Rows()-1)
	side := n + 1
	half := t.HalfSize()

	r.vertices = r.vertices[:0]
	for b := 0; b <= n; b++ {
		for a := 0; a <= n; a++ {
			fu, fv := float64(a)/float64(n), float64(b)/float64(n)
			x, z := fu*t.Size-half, fv*t.Size-half
			sx, sy, _, _ := proj.Project(common.Vec3{X: x, Y: t.HeightAt(x, z), Z: z})
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX:   float32(sx),
				DstY:   float32(sy),
				SrcX:   float32(fu*float64(t.Cols()-1) + 0.5),
				SrcY:   float32(fv*float64(t.Rows()-1) + 0.5),
				ColorR: 1,
				ColorG: 1,
				ColorB: 1,
				ColorA: 1,
			})
		}
	}

	// far cells first so nearer hills cover them
	r.cells = r.cells[:0]
	for b := 0; b < n; b++ {
		for a := 0; a < n; a++ {
			x := (float64(a)+0.5)/float64(n)*t.Size - half
			z := (float64(b)+0.5)/float64(n)*t.Size - half
			_, _, depth, _ := proj.Project(common.Vec3{X: x, Z: z})
			r.cells = append(r.cells, cell{index: b*n + a, depth: depth})
		}
	}
	sort.Slice(r.cells, func(i, j int) bool { return r.cells[i].depth > r.cells[j].depth })

	r.indices = r.indices[:0]
	for _, c := range r.cells {
		a, b := c.index%n, c.index/n
		i0 := uint16(b*side + a)
		i1 := i0 + 1
		i2 := i0 + uint16(side)
		i3 := i2 + 1
		r.indices = append(r.indices, i0, i1, i2, i1, i3, i2)
	}

	op := &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear}
	screen.DrawTriangles(r.vertices, r.indices, r.ground, op)
}

func (r *Renderer) collect(proj Projection, width int) {
	r.order = r.order[:0]
	for i := range r.instances {
		inst := &r.instances[i]
		x, y, depth, scale := proj.Project(inst.tr.Position)
		if x < -cullMargin || x > float64(width)+cullMargin {
			continue
		}
		r.order = append(r.order, drawItem{inst: inst, x: x, y: y, depth: depth, scale: scale})
	}
	sort.SliceStable(r.order, func(i, j int) bool { return r.order[i].depth > r.order[j].depth })
}

func (r *Renderer) drawShadows(screen *ebiten.Image, proj Projection) {
	if r.shadow == nil {
		r.shadow = ebiten.NewImage(shadowSize, shadowSize)
		vector.FillCircle(r.shadow, shadowSize/2, shadowSize/2, shadowSize/2-2, color.Black, true)
	}

	// blob shadows lean away from the sun
	lean := common.Vec3{X: -r.lights.SunDirection.X, Z: -r.lights.SunDirection.Z}
	if y := -r.lights.SunDirection.Y; y > 0.2 {
		lean = lean.Scale(1 / y)
	}

	for _, it := range r.order {
		if !it.inst.shadow {
			continue
		}
		m := r.meshes[it.inst.mesh-1]
		radius := m.spec.Radius
		if radius <= 0 {
			radius = m.spec.Height / 4
		}
		radius *= it.inst.tr.Scale

		foot := it.inst.tr.Position.Add(lean.Scale(-0.15 * m.spec.Height))
		if r.terrain != nil {
			foot.Y = r.terrain.HeightAt(foot.X, foot.Z)
		}
		x, y, _, scale := proj.Project(foot)

		w := 2 * radius * scale
		h := w * common.Clamp(proj.sinP, 0.3, 1)
		op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
		op.GeoM.Scale(w/shadowSize, h/shadowSize)
		op.GeoM.Translate(x-w/2, y-h/2)
		op.ColorScale.ScaleAlpha(shadowAlpha)
		screen.DrawImage(r.shadow, op)
	}
}

func (r *Renderer) drawBillboards(screen *ebiten.Image, proj Projection) {
	light := billboardLight(r.lights)
	for _, it := range r.order {
		m := r.meshes[it.inst.mesh-1]
		heightPx := m.spec.Height * it.inst.tr.Scale * it.scale * proj.Upright()
		if heightPx < 1 {
			continue
		}

		if m.img == nil {
			r.drawBlock(screen, m, it, heightPx, light)
			continue
		}

		src := m.img
		if f := it.inst.tr.Frame; !f.Empty() {
			src = m.img.SubImage(f).(*ebiten.Image)
		}
		sb := src.Bounds()
		s := heightPx / float64(sb.Dy())
		widthPx := float64(sb.Dx()) * s

		op := &ebiten.DrawImageOptions{}
		if proj.FacesLeft(it.inst.tr.Yaw) {
			op.GeoM.Scale(-1, 1)
			op.GeoM.Translate(float64(sb.Dx()), 0)
		}
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(it.x-widthPx/2, it.y-heightPx)
		op.ColorScale.Scale(float32(light.r), float32(light.g), float32(light.b), 1)
		screen.DrawImage(src, op)
	}
}

func (r *Renderer) drawBlock(screen *ebiten.Image, m mesh, it drawItem, heightPx float64, light rgb) {
	radius := m.spec.Radius
	if radius <= 0 {
		radius = m.spec.Height / 4
	}
	widthPx := 2 * radius * it.inst.tr.Scale * it.scale
	c := toRGB(m.spec.Tint).mul(light).nrgba()
	vector.FillRect(screen, float32(it.x-widthPx/2), float32(it.y-heightPx), float32(widthPx), float32(heightPx), c, false)
}

// InstanceCount is shown in the -debug readout.
func (r *Renderer) InstanceCount() int {
	return len(r.instances)
}

var _ scene.Backend = (*Renderer)(nil)
