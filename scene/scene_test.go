package scene

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/prefabs"
)

type fakeBackend struct {
	sky       *Sky
	lights    *Lights
	ground    *Terrain
	meshes    []MeshSpec
	instances map[InstanceID]Transform
	owner     map[InstanceID]MeshID
	shadows   map[InstanceID]bool
	view      View
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		instances: make(map[InstanceID]Transform),
		owner:     make(map[InstanceID]MeshID),
		shadows:   make(map[InstanceID]bool),
	}
}

func (f *fakeBackend) SetSky(s Sky)       { f.sky = &s }
func (f *fakeBackend) SetLights(l Lights) { f.lights = &l }
func (f *fakeBackend) SetCamera(v View)   { f.view = v }

func (f *fakeBackend) SetGround(t *Terrain) error {
	f.ground = t
	return nil
}

func (f *fakeBackend) CreateMesh(spec MeshSpec) (MeshID, error) {
	f.meshes = append(f.meshes, spec)
	return MeshID(len(f.meshes)), nil
}

func (f *fakeBackend) CreateInstance(mesh MeshID, tr Transform) (InstanceID, error) {
	id := InstanceID(len(f.instances) + 1)
	f.instances[id] = tr
	f.owner[id] = mesh
	return id, nil
}

func (f *fakeBackend) SetTransform(id InstanceID, tr Transform) { f.instances[id] = tr }
func (f *fakeBackend) AttachShadowCaster(id InstanceID)         { f.shadows[id] = true }

type fakeLoader struct {
	images  map[string]image.Image
	pending []func()
}

var errMissing = errors.New("missing")

func (l *fakeLoader) Image(path string) (image.Image, error) {
	img, ok := l.images[path]
	if !ok {
		return nil, errMissing
	}
	return img, nil
}

func (l *fakeLoader) LoadImage(_ context.Context, path string, done func(image.Image, error)) {
	img, err := l.Image(path)
	l.pending = append(l.pending, func() { done(img, err) })
}

func (l *fakeLoader) dispatch() {
	for _, fn := range l.pending {
		fn()
	}
	l.pending = nil
}

func gradient(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(255 * x / (w - 1))})
		}
	}
	return img
}

func testSpec() *prefabs.SceneSpec {
	return &prefabs.SceneSpec{
		Ground: prefabs.GroundSpec{Heightmap: "hm.png", Size: 100, MinHeight: 0, MaxHeight: 10},
		Trees: prefabs.TreesSpec{
			Mesh:        prefabs.MeshSpec{Name: "tree", Sprite: "tree.png", Radius: 1, Height: 6, Shadow: true},
			Seed:        1,
			Count:       25,
			ClearRadius: 8,
			Positions:   []prefabs.Vec3Spec{{X: 20, Z: 20}},
		},
		Player: prefabs.ActorSpec{
			Mesh:  prefabs.MeshSpec{Name: "outer", Sprite: "player.png", Height: 2, Shadow: true},
			Spawn: prefabs.Vec3Spec{X: 0, Z: 0},
		},
		Camera: prefabs.CameraSpec{Distance: 15, Pitch: 0.5},
	}
}

func TestHeightAt(t *testing.T) {
	terrain, err := NewTerrain(gradient(3, 3), 20, 0, 10)
	if err != nil {
		t.Fatalf("NewTerrain: %v", err)
	}
	cases := []struct {
		name string
		x, z float64
		want float64
	}{
		{"west edge", -10, 0, 0},
		{"east edge", 10, 0, 10},
		{"centre", 0, 0, 10 * 127.0 / 255.0},
		{"between samples", -5, 3, 10 * 127.0 / 255.0 / 2},
		{"clamped west", -50, 0, 0},
		{"clamped east", 50, 99, 10},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := terrain.HeightAt(c.x, c.z); math.Abs(got-c.want) > 1e-3 {
				t.Fatalf("HeightAt(%v, %v) = %v, want %v", c.x, c.z, got, c.want)
			}
		})
	}

	n := terrain.Normal(1, 1)
	if n.X >= 0 || math.Abs(n.Len()-1) > 1e-9 {
		t.Fatalf("normal on an eastward slope should lean west: %+v", n)
	}
}

func TestNewTerrainRejectsEmpty(t *testing.T) {
	for _, img := range []image.Image{nil, image.NewGray(image.Rect(0, 0, 1, 1))} {
		if _, err := NewTerrain(img, 10, 0, 1); !errors.Is(err, ErrEmptyHeightmap) {
			t.Fatalf("expected ErrEmptyHeightmap, got %v", err)
		}
	}
}

func TestBootstrap(t *testing.T) {
	b := newFakeBackend()
	l := &fakeLoader{images: map[string]image.Image{
		"hm.png":     gradient(16, 16),
		"tree.png":   image.NewRGBA(image.Rect(0, 0, 8, 16)),
		"player.png": image.NewRGBA(image.Rect(0, 0, 8, 8)),
	}}
	spec := testSpec()

	var got *Character
	s, err := Bootstrap(context.Background(), b, l, spec, Options{
		OnCharacter: func(c Character) { got = &c },
		OnError:     func(err error) { t.Errorf("unexpected error: %v", err) },
	})
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if b.sky == nil || b.lights == nil || b.ground != s.Terrain {
		t.Fatalf("sky, lights and ground must be set")
	}
	if len(b.meshes) != 1 || b.meshes[0].Name != "tree" {
		t.Fatalf("expected one tree base mesh, got %d", len(b.meshes))
	}
	if want := 1 + spec.Trees.Count; len(s.Trees) != want || len(b.instances) != want {
		t.Fatalf("expected %d tree instances, got %d", want, len(s.Trees))
	}
	for _, tree := range s.Trees {
		if !b.shadows[tree.Instance] || b.owner[tree.Instance] != s.TreeMesh {
			t.Fatalf("tree %d not an instance of the base mesh with shadows", tree.Instance)
		}
		if math.Abs(tree.Position.Y-s.Terrain.HeightAt(tree.Position.X, tree.Position.Z)) > 1e-9 {
			t.Fatalf("tree %d floats above the ground", tree.Instance)
		}
	}
	for _, tree := range s.Trees[1:] {
		if math.Hypot(tree.Position.X, tree.Position.Z) < spec.Trees.ClearRadius {
			t.Fatalf("tree at %+v inside clear radius", tree.Position)
		}
	}

	if got != nil {
		t.Fatalf("character must not appear before dispatch")
	}
	l.dispatch()
	if got == nil {
		t.Fatalf("character not delivered")
	}
	if !b.shadows[got.Instance] || len(b.meshes) != 2 {
		t.Fatalf("character mesh must exist and cast shadows")
	}
	if b.view.Distance != 15 || b.view.Target != s.Spawn {
		t.Fatalf("camera not placed at spawn: %+v", b.view)
	}
}

func TestBootstrapErrors(t *testing.T) {
	t.Run("missing heightmap", func(t *testing.T) {
		_, err := Bootstrap(context.Background(), newFakeBackend(), &fakeLoader{}, testSpec(), Options{})
		if !errors.Is(err, errMissing) {
			t.Fatalf("expected wrapped load error, got %v", err)
		}
	})

	t.Run("character load reported", func(t *testing.T) {
		l := &fakeLoader{images: map[string]image.Image{
			"hm.png":   gradient(4, 4),
			"tree.png": image.NewRGBA(image.Rect(0, 0, 2, 2)),
		}}
		var reported error
		called := false
		_, err := Bootstrap(context.Background(), newFakeBackend(), l, testSpec(), Options{
			OnCharacter: func(Character) { called = true },
			OnError:     func(err error) { reported = err },
		})
		if err != nil {
			t.Fatalf("Bootstrap: %v", err)
		}
		l.dispatch()
		if called || !errors.Is(reported, errMissing) {
			t.Fatalf("expected character error, got called=%v err=%v", called, reported)
		}
	})
}

func TestTreePlacementsDeterministic(t *testing.T) {
	terrain, _ := NewTerrain(gradient(8, 8), 60, 0, 5)
	spec := testSpec().Trees
	a := TreePlacements(terrain, spec, common.Vec3{})
	b := TreePlacements(terrain, spec, common.Vec3{})
	if len(a) != len(b) {
		t.Fatalf("lengths differ")
	}
	if a[0].Scale != 1 || a[0].Yaw != 0 {
		t.Fatalf("explicit tree should be upright and unscaled: %+v", a[0])
	}
	scales := make(map[float64]bool)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement %d differs: %+v vs %+v", i, a[i], b[i])
		}
		if !terrain.Contains(a[i].Position.X, a[i].Position.Z) {
			t.Fatalf("placement %+v off the terrain", a[i])
		}
		if i == 0 {
			continue
		}
		if a[i].Scale < treeScaleMin || a[i].Scale >= treeScaleMax {
			t.Fatalf("scale %v outside [%v, %v)", a[i].Scale, treeScaleMin, treeScaleMax)
		}
		if a[i].Yaw < 0 || a[i].Yaw >= 2*math.Pi {
			t.Fatalf("yaw %v outside one turn", a[i].Yaw)
		}
		scales[a[i].Scale] = true
	}
	if len(scales) < 2 {
		t.Fatalf("scattered trees all share one scale")
	}
}

func TestBootstrapCancelledBeforeDispatch(t *testing.T) {
	b := newFakeBackend()
	l := &fakeLoader{images: map[string]image.Image{
		"hm.png":     gradient(4, 4),
		"tree.png":   image.NewRGBA(image.Rect(0, 0, 2, 2)),
		"player.png": image.NewRGBA(image.Rect(0, 0, 2, 2)),
	}}
	ctx, cancel := context.WithCancel(context.Background())
	var reported error
	called := false
	if _, err := Bootstrap(ctx, b, l, testSpec(), Options{
		OnCharacter: func(Character) { called = true },
		OnError:     func(err error) { reported = err },
	}); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	meshes, instances := len(b.meshes), len(b.instances)

	cancel()
	l.dispatch()
	if called {
		t.Fatalf("character delivered for a cancelled scene")
	}
	if len(b.meshes) != meshes || len(b.instances) != instances {
		t.Fatalf("cancelled load touched the backend: meshes %d->%d instances %d->%d",
			meshes, len(b.meshes), instances, len(b.instances))
	}
	if !errors.Is(reported, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", reported)
	}
}
