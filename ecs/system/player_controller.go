package system

import (
	"math"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

// Step is the fixed simulation timestep (Ebitengine runs Update at 60 TPS).
const Step = 1.0 / 60.0

const moveEpsilon = 0.05

// Ground reports terrain height at world XZ. *scene.Terrain satisfies it.
type Ground interface {
	HeightAt(x, z float64) float64
}

type PlayerControllerSystem struct {
	ground Ground
}

func NewPlayerControllerSystem(ground Ground) *PlayerControllerSystem {
	return &PlayerControllerSystem{ground: ground}
}

// SetGround swaps the terrain, used after a scene reload.
func (p *PlayerControllerSystem) SetGround(ground Ground) {
	p.ground = ground
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	yaw := 0.0
	if cam, ok := ecs.First(w, component.CameraRigComponent); ok {
		rig, _ := ecs.Get(w, cam, component.CameraRigComponent)
		yaw = rig.Yaw
	}

	entities := w.Query(
		component.PlayerTagComponent.ID(),
		component.InputComponent.ID(),
		component.PlayerComponent.ID(),
		component.TransformComponent.ID(),
	)
	for _, e := range entities {
		in, _ := ecs.Get(w, e, component.InputComponent)
		player, _ := ecs.Get(w, e, component.PlayerComponent)
		tr, _ := ecs.Get(w, e, component.TransformComponent)

		dir := MoveDirection(yaw, in.Horizontal, in.Vertical)
		player.Moving = dir.LenXZ() > moveEpsilon
		player.Dashing = in.Dash && player.Moving

		speed := player.MoveSpeed
		if player.Dashing {
			speed *= player.DashFactor
		}
		vel := dir.Scale(speed)
		if player.Moving {
			tr.Yaw = math.Atan2(dir.X, dir.Z)
		}

		if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && body.Body != nil {
			body.Body.SetVelocity(vel.X, vel.Z)
		} else {
			tr.Position.X += vel.X * Step
			tr.Position.Z += vel.Z * Step
		}

		p.integrateVertical(w, &player, &tr, in)

		_ = ecs.Add(w, e, component.PlayerComponent, player)
		_ = ecs.Add(w, e, component.TransformComponent, tr)
	}
}

func (p *PlayerControllerSystem) integrateVertical(w *ecs.World, player *component.Player, tr *component.Transform, in component.Input) {
	floor := 0.0
	if p.ground != nil {
		floor = p.ground.HeightAt(tr.Position.X, tr.Position.Z)
	}

	if player.Grounded {
		tr.Position.Y = floor
		if !in.JumpPressed {
			player.VelocityY = 0
			return
		}
		player.VelocityY = player.JumpSpeed
		player.Grounded = false
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerJumped})
	}

	player.VelocityY -= player.Gravity * Step
	tr.Position.Y += player.VelocityY * Step
	if tr.Position.Y <= floor {
		tr.Position.Y = floor
		player.VelocityY = 0
		player.Grounded = true
		w.Events().Push(ecs.Event{Type: ecs.EventPlayerLanded})
	}
}

// MoveDirection maps the input axes to a world XZ direction relative to the
// camera yaw. Yaw 0 looks down +Z with +X to the right. The result is at most
// unit length.
func MoveDirection(yaw, horizontal, vertical float64) common.Vec3 {
	sin, cos := math.Sincos(yaw)
	forward := common.Vec3{X: sin, Z: cos}
	right := common.Vec3{X: cos, Z: -sin}
	dir := forward.Scale(vertical).Add(right.Scale(horizontal))
	if l := dir.LenXZ(); l > 1 {
		dir = dir.Scale(1 / l)
	}
	return dir
}
