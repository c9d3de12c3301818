package scene

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/prefabs"
)

// ImageLoader is satisfied by *assets.Loader.
type ImageLoader interface {
	Image(path string) (image.Image, error)
	LoadImage(ctx context.Context, path string, done func(image.Image, error))
}

// Character is handed to OnCharacter once the character mesh exists.
type Character struct {
	Mesh     MeshID
	Instance InstanceID
	Spawn    common.Vec3
	Image    image.Image
}

type Options struct {
	OnCharacter func(Character)
	OnError     func(error)
}

// Placement is where a tree stands and how it is turned and sized.
type Placement struct {
	Position common.Vec3
	Yaw      float64
	Scale    float64
}

// Tree is one placed tree instance.
type Tree struct {
	Instance InstanceID
	Placement
}

// Scene is what Bootstrap built.
type Scene struct {
	Terrain     *Terrain
	TreeMesh    MeshID
	Trees       []Tree
	TrunkRadius float64
	Spawn       common.Vec3
}

// scatterAttempts bounds the rejection sampling per requested tree.
const scatterAttempts = 20

// Scattered trees are scaled within [treeScaleMin, treeScaleMax).
const (
	treeScaleMin = 0.6
	treeScaleMax = 1.4
)

// Bootstrap builds the world on b. The heightmap and tree sprite load
// synchronously and fail the call; the character loads in the background and
// reports through opts once loader callbacks are dispatched.
func Bootstrap(ctx context.Context, b Backend, l ImageLoader, spec *prefabs.SceneSpec, opts Options) (*Scene, error) {
	if b == nil || l == nil {
		return nil, errors.New("scene: bootstrap needs a backend and a loader")
	}
	if spec == nil {
		return nil, errors.New("scene: nil scene spec")
	}

	hm, err := l.Image(spec.Ground.Heightmap)
	if err != nil {
		return nil, fmt.Errorf("scene: load heightmap %s: %w", spec.Ground.Heightmap, err)
	}
	terrain, err := NewTerrain(hm, spec.Ground.Size, spec.Ground.MinHeight, spec.Ground.MaxHeight)
	if err != nil {
		return nil, fmt.Errorf("scene: heightmap %s: %w", spec.Ground.Heightmap, err)
	}
	terrain.Low = spec.Ground.ColorLow.Or(terrain.Low)
	terrain.High = spec.Ground.ColorHigh.Or(terrain.High)

	b.SetSky(skyFromSpec(spec.Sky))
	b.SetLights(lightsFromSpec(spec.Lights))
	if err := b.SetGround(terrain); err != nil {
		return nil, fmt.Errorf("scene: set ground: %w", err)
	}

	s := &Scene{
		Terrain:     terrain,
		TrunkRadius: spec.Trees.Mesh.TrunkRadius,
		Spawn:       vec(spec.Player.Spawn),
	}
	s.Spawn.Y = terrain.HeightAt(s.Spawn.X, s.Spawn.Z)

	if err := s.plantTrees(b, l, spec.Trees); err != nil {
		return nil, err
	}

	loadCharacter(ctx, b, l, spec.Player, s.Spawn, opts)

	b.SetCamera(View{
		Target:   s.Spawn,
		Yaw:      spec.Camera.Yaw,
		Pitch:    spec.Camera.Pitch,
		Distance: spec.Camera.Distance,
		Zoom:     spec.Camera.Zoom,
	})

	return s, nil
}

func (s *Scene) plantTrees(b Backend, l ImageLoader, spec prefabs.TreesSpec) error {
	img, err := l.Image(spec.Mesh.Sprite)
	if err != nil {
		return fmt.Errorf("scene: load tree %s: %w", spec.Mesh.Sprite, err)
	}
	mesh, err := b.CreateMesh(meshFromSpec(spec.Mesh, img))
	if err != nil {
		return fmt.Errorf("scene: create tree mesh: %w", err)
	}
	s.TreeMesh = mesh

	for _, p := range TreePlacements(s.Terrain, spec, s.Spawn) {
		id, err := b.CreateInstance(mesh, Transform{Position: p.Position, Yaw: p.Yaw, Scale: p.Scale})
		if err != nil {
			return fmt.Errorf("scene: create tree instance: %w", err)
		}
		if spec.Mesh.Shadow {
			b.AttachShadowCaster(id)
		}
		s.Trees = append(s.Trees, Tree{Instance: id, Placement: p})
	}
	return nil
}

// TreePlacements returns the explicit positions followed by Count seeded
// random ones. Random trees keep ClearRadius away from spawn, stay inside
// the terrain and get a random yaw and scale from the same seed. Every tree
// sits on the ground.
func TreePlacements(t *Terrain, spec prefabs.TreesSpec, spawn common.Vec3) []Placement {
	out := make([]Placement, 0, len(spec.Positions)+spec.Count)
	for _, p := range spec.Positions {
		pos := vec(p)
		pos.Y = t.HeightAt(pos.X, pos.Z)
		out = append(out, Placement{Position: pos, Scale: 1})
	}
	if spec.Count <= 0 {
		return out
	}

	rng := rand.New(rand.NewSource(spec.Seed))
	extent := t.HalfSize() * 0.95
	placed := 0
	for attempt := 0; attempt < spec.Count*scatterAttempts && placed < spec.Count; attempt++ {
		x := (rng.Float64()*2 - 1) * extent
		z := (rng.Float64()*2 - 1) * extent
		if math.Hypot(x-spawn.X, z-spawn.Z) < spec.ClearRadius {
			continue
		}
		out = append(out, Placement{
			Position: common.Vec3{X: x, Y: t.HeightAt(x, z), Z: z},
			Yaw:      rng.Float64() * 2 * math.Pi,
			Scale:    treeScaleMin + rng.Float64()*(treeScaleMax-treeScaleMin),
		})
		placed++
	}
	return out
}

func loadCharacter(ctx context.Context, b Backend, l ImageLoader, spec prefabs.ActorSpec, spawn common.Vec3, opts Options) {
	l.LoadImage(ctx, spec.Mesh.Sprite, func(img image.Image, err error) {
		// The decode may have finished before the scene was replaced.
		if err == nil {
			err = ctx.Err()
		}
		if err != nil {
			report(opts, fmt.Errorf("scene: load character %s: %w", spec.Mesh.Sprite, err))
			return
		}
		mesh, err := b.CreateMesh(meshFromSpec(spec.Mesh, img))
		if err != nil {
			report(opts, fmt.Errorf("scene: create character mesh: %w", err))
			return
		}
		id, err := b.CreateInstance(mesh, Transform{Position: spawn, Scale: 1})
		if err != nil {
			report(opts, fmt.Errorf("scene: create character instance: %w", err))
			return
		}
		if spec.Mesh.Shadow {
			b.AttachShadowCaster(id)
		}
		if opts.OnCharacter != nil {
			opts.OnCharacter(Character{Mesh: mesh, Instance: id, Spawn: spawn, Image: img})
		}
	})
}

func report(opts Options, err error) {
	if opts.OnError != nil {
		opts.OnError(err)
	}
}

func meshFromSpec(spec prefabs.MeshSpec, img image.Image) MeshSpec {
	return MeshSpec{
		Name:   spec.Name,
		Image:  img,
		Radius: spec.Radius,
		Height: spec.Height,
		Tint:   spec.Color.Or(color.White),
	}
}

func skyFromSpec(spec prefabs.SkySpec) Sky {
	return Sky{
		Top:    spec.Top.Or(color.NRGBA{R: 0x0b, G: 0x10, B: 0x26, A: 0xff}),
		Bottom: spec.Bottom.Or(color.NRGBA{R: 0x46, G: 0x55, B: 0x7f, A: 0xff}),
	}
}

func lightsFromSpec(spec prefabs.LightsSpec) Lights {
	dir := vec(spec.Sun.Direction).Normalize()
	if dir == (common.Vec3{}) {
		dir = common.Vec3{Y: -1}
	}
	return Lights{
		SunDirection:     dir,
		SunColor:         spec.Sun.Color.Or(color.White),
		SunIntensity:     spec.Sun.Intensity,
		AmbientSky:       spec.Ambient.Sky.Or(color.White),
		AmbientGround:    spec.Ambient.Ground.Or(color.Black),
		AmbientIntensity: spec.Ambient.Intensity,
	}
}

func vec(v prefabs.Vec3Spec) common.Vec3 {
	return common.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}
