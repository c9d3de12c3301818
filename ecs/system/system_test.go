package system

import (
	"image"
	"math"
	"testing"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/input"
	"github.com/milk9111/nightwalk/scene"
)

type flatGround float64

func (g flatGround) HeightAt(x, z float64) float64 { return float64(g) }

type scriptedSource struct {
	frames [][]input.Event
}

func (s *scriptedSource) Poll(q *input.Queue) {
	if len(s.frames) == 0 {
		return
	}
	for _, evt := range s.frames[0] {
		q.Push(evt)
	}
	s.frames = s.frames[1:]
}

func newPlayerWorld(t *testing.T, in component.Input) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.MustAdd(w, e, component.PlayerTagComponent, component.PlayerTag{})
	ecs.MustAdd(w, e, component.InputComponent, in)
	ecs.MustAdd(w, e, component.TransformComponent, component.Transform{Scale: 1})
	ecs.MustAdd(w, e, component.PlayerComponent, component.Player{
		MoveSpeed:  6,
		DashFactor: 2,
		JumpSpeed:  9,
		Gravity:    30,
		Grounded:   true,
	})
	return w, e
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestInputSystemCopiesState(t *testing.T) {
	src := &scriptedSource{frames: [][]input.Event{
		{input.KeyDown(input.KeyW), input.KeyDown(input.KeySpace)},
		{},
		{input.KeyUp(input.KeySpace)},
	}}
	paused := false
	sys := NewInputSystem(src, nil, nil, func() bool { return paused })
	w, e := newPlayerWorld(t, component.Input{})

	sys.Update(w)
	in, _ := ecs.Get(w, e, component.InputComponent)
	if in.VerticalAxis != 1 || !near(in.Vertical, input.Smoothing) || !in.Jump || !in.JumpPressed {
		t.Fatalf("first frame: %+v", in)
	}

	sys.Update(w)
	in, _ = ecs.Get(w, e, component.InputComponent)
	if !in.Jump || in.JumpPressed {
		t.Fatalf("held jump should not re-trigger: %+v", in)
	}

	paused = true
	sys.Update(w)
	in, _ = ecs.Get(w, e, component.InputComponent)
	if in.VerticalAxis != 0 || in.Jump || !sys.Controller().Paused() {
		t.Fatalf("pause should clear keys: %+v", in)
	}
}

func TestMoveDirection(t *testing.T) {
	cases := []struct {
		name         string
		yaw, h, v    float64
		wantX, wantZ float64
	}{
		{"forward at yaw 0", 0, 0, 1, 0, 1},
		{"right at yaw 0", 0, 1, 0, 1, 0},
		{"forward at quarter turn", math.Pi / 2, 0, 1, 1, 0},
		{"diagonal is clamped", 0, 1, 1, math.Sqrt2 / 2, math.Sqrt2 / 2},
		{"partial input keeps length", 0, 0, -0.5, 0, -0.5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := MoveDirection(c.yaw, c.h, c.v)
			if !near(d.X, c.wantX) || !near(d.Z, c.wantZ) {
				t.Fatalf("got (%v, %v), want (%v, %v)", d.X, d.Z, c.wantX, c.wantZ)
			}
		})
	}
}

func TestPlayerControllerMovesAndDashes(t *testing.T) {
	tests := []struct {
		name  string
		in    component.Input
		wantZ float64
	}{
		{"walk", component.Input{Vertical: 1, VerticalAxis: 1}, 6 * Step},
		{"dash", component.Input{Vertical: 1, VerticalAxis: 1, Dash: true}, 12 * Step},
		{"dash without moving", component.Input{Dash: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, e := newPlayerWorld(t, tt.in)
			NewPlayerControllerSystem(flatGround(0)).Update(w)
			tr, _ := ecs.Get(w, e, component.TransformComponent)
			if !near(tr.Position.Z, tt.wantZ) {
				t.Fatalf("z = %v, want %v", tr.Position.Z, tt.wantZ)
			}
		})
	}
}

func TestPlayerControllerFollowsCameraYaw(t *testing.T) {
	w, e := newPlayerWorld(t, component.Input{Vertical: 1})
	cam := w.CreateEntity()
	ecs.MustAdd(w, cam, component.CameraRigComponent, component.CameraRig{Yaw: math.Pi / 2})

	NewPlayerControllerSystem(flatGround(0)).Update(w)
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if !near(tr.Position.X, 6*Step) || !near(tr.Position.Z, 0) || !near(tr.Yaw, math.Pi/2) {
		t.Fatalf("expected movement along +X facing it, got %+v", tr)
	}
}

func TestPlayerJumpsOnlyWhenGrounded(t *testing.T) {
	w, e := newPlayerWorld(t, component.Input{Jump: true, JumpPressed: true})
	sys := NewPlayerControllerSystem(flatGround(2))

	sys.Update(w)
	p, _ := ecs.Get(w, e, component.PlayerComponent)
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if p.Grounded || !near(p.VelocityY, 9-30*Step) || tr.Position.Y <= 2 {
		t.Fatalf("jump did not start: %+v %+v", p, tr)
	}
	if len(w.Events().Peek(ecs.EventPlayerJumped)) != 1 {
		t.Fatalf("expected a jump event")
	}

	// pressing again mid-air changes nothing but gravity
	sys.Update(w)
	p2, _ := ecs.Get(w, e, component.PlayerComponent)
	if !near(p2.VelocityY, p.VelocityY-30*Step) {
		t.Fatalf("air jump applied: %v", p2.VelocityY)
	}

	ecs.Update(w, e, component.InputComponent, func(in *component.Input) { *in = component.Input{} })
	for i := 0; i < 120; i++ {
		sys.Update(w)
	}
	p, _ = ecs.Get(w, e, component.PlayerComponent)
	tr, _ = ecs.Get(w, e, component.TransformComponent)
	if !p.Grounded || !near(tr.Position.Y, 2) {
		t.Fatalf("player did not land: %+v %+v", p, tr)
	}
	if len(w.Events().Peek(ecs.EventPlayerLanded)) != 1 {
		t.Fatalf("expected one landing event")
	}
}

func TestPhysicsBlocksAtTrunk(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.MustAdd(w, e, component.TransformComponent, component.Transform{Scale: 1})
	ecs.MustAdd(w, e, component.PhysicsBodyComponent, component.PhysicsBody{Radius: 0.5, Mass: 1})

	ps := NewPhysicsSystem()
	ps.AddStaticCircle(2, 0, 0.5)
	ps.SetBounds(50)
	ps.Update(w)

	for i := 0; i < 120; i++ {
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		pb.Body.SetVelocity(5, 0)
		ps.Update(w)
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent)
	if tr.Position.X < 0.5 || tr.Position.X > 1.2 {
		t.Fatalf("body should stop against the trunk, x = %v", tr.Position.X)
	}

	w.DestroyEntity(e)
	ps.Update(w)
	if len(ps.entities) != 0 {
		t.Fatalf("destroyed entity body not removed")
	}
}

func TestCameraFollowAndRotation(t *testing.T) {
	w, e := newPlayerWorld(t, component.Input{})
	ecs.Update(w, e, component.TransformComponent, func(tr *component.Transform) {
		tr.Position = common.Vec3{X: 10}
	})
	cam := w.CreateEntity()
	ecs.MustAdd(w, cam, component.CameraRigComponent, component.CameraRig{Pitch: 0.5, Follow: 0.4})

	NewCameraSystem().Update(w)
	rig, _ := ecs.Get(w, cam, component.CameraRigComponent)
	if !near(rig.Target.X, 4) {
		t.Fatalf("target x = %v, want 4", rig.Target.X)
	}

	rot := NewCameraRotation(w)
	rot.Rotate(0.25, 10)
	rig, _ = ecs.Get(w, cam, component.CameraRigComponent)
	if !near(rig.Yaw, 0.25) || rig.Pitch != MaxCameraPitch {
		t.Fatalf("rotation not applied/clamped: %+v", rig)
	}
}

func TestPlayerAnimation(t *testing.T) {
	cases := []struct {
		p    component.Player
		want string
	}{
		{component.Player{Grounded: true}, "idle"},
		{component.Player{Grounded: true, Moving: true}, "walk"},
		{component.Player{Grounded: true, Moving: true, Dashing: true}, "dash"},
		{component.Player{VelocityY: 3}, "jump"},
		{component.Player{VelocityY: -3}, "fall"},
	}
	for _, c := range cases {
		if got := PlayerAnimation(c.p); got != c.want {
			t.Errorf("PlayerAnimation(%+v) = %q, want %q", c.p, got, c.want)
		}
	}
}

func TestAnimationAdvances(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	ecs.MustAdd(w, e, component.AnimationComponent, component.Animation{
		Defs: map[string]component.AnimationDef{
			"jump": {Row: 3, Frames: 2, Size: image.Pt(10, 20), FPS: 60},
		},
		Current: "jump",
		Playing: true,
	})
	sys := NewAnimationSystem()
	for i := 0; i < 5; i++ {
		sys.Update(w)
	}
	anim, _ := ecs.Get(w, e, component.AnimationComponent)
	if anim.Frame != 1 || anim.Playing {
		t.Fatalf("non-looping animation should hold its last frame: %+v", anim)
	}
	if r := FrameRect(anim); r.Min.X != 10 || r.Min.Y != 60 || r.Dx() != 10 || r.Dy() != 20 {
		t.Fatalf("FrameRect = %v", r)
	}
}

type recordingBackend struct {
	scene.Backend
	transforms map[scene.InstanceID]scene.Transform
	view       scene.View
}

func (r *recordingBackend) SetTransform(id scene.InstanceID, tr scene.Transform) {
	r.transforms[id] = tr
}

func (r *recordingBackend) SetCamera(v scene.View) { r.view = v }

func TestMeshSync(t *testing.T) {
	w, e := newPlayerWorld(t, component.Input{})
	ecs.MustAdd(w, e, component.MeshComponent, component.Mesh{Instance: 7})
	cam := w.CreateEntity()
	ecs.MustAdd(w, cam, component.CameraRigComponent, component.CameraRig{Distance: 12})

	b := &recordingBackend{transforms: make(map[scene.InstanceID]scene.Transform)}
	NewMeshSyncSystem(b).Update(w)
	if _, ok := b.transforms[7]; !ok {
		t.Fatalf("instance transform not pushed")
	}
	if b.view.Distance != 12 {
		t.Fatalf("camera view not pushed")
	}
}

type fakeTrack struct {
	playing bool
	plays   int
	pauses  int
	rewinds int
	volume  float64
}

func (f *fakeTrack) Play() {
	f.playing = true
	f.plays++
}

func (f *fakeTrack) Pause() {
	f.playing = false
	f.pauses++
}

func (f *fakeTrack) Rewind() error {
	f.rewinds++
	return nil
}

func (f *fakeTrack) IsPlaying() bool     { return f.playing }
func (f *fakeTrack) SetVolume(v float64) { f.volume = v }

func TestMusicPauseResumeAndSwitch(t *testing.T) {
	tracks := map[string]*fakeTrack{"a": {}, "b": {}}
	sys := NewMusicSystem(func(name string) (component.Track, error) {
		return tracks[name], nil
	})
	w := ecs.NewWorld()
	mp := w.CreateEntity()
	ecs.MustAdd(w, mp, component.MusicPlayerComponent, component.MusicPlayer{})

	RequestMusic(w, "a")
	sys.Update(w)
	a := tracks["a"]
	if !a.playing || a.plays != 1 {
		t.Fatalf("track a should play: %+v", a)
	}
	if len(w.Query(component.MusicRequestComponent.ID())) != 0 {
		t.Fatalf("requests should be consumed")
	}

	PauseMusic(w)
	sys.Update(w)
	sys.Update(w)
	if a.playing || a.pauses != 1 {
		t.Fatalf("paused track restarted: %+v", a)
	}

	rewinds := a.rewinds
	RequestMusic(w, "a")
	sys.Update(w)
	if !a.playing || a.rewinds != rewinds {
		t.Fatalf("resume should continue without rewinding: %+v", a)
	}

	RequestMusic(w, "b")
	for i := 0; i < defaultMusicFadeFrames+2; i++ {
		sys.Update(w)
	}
	b := tracks["b"]
	if a.playing || !b.playing {
		t.Fatalf("expected fade to b: a=%+v b=%+v", a, b)
	}
	state, _ := ecs.Get(w, mp, component.MusicPlayerComponent)
	if state.CurrentTrack != "b" {
		t.Fatalf("current track = %q", state.CurrentTrack)
	}
}
