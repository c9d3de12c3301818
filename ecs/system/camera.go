package system

import (
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

// Pitch limits keep the orbit above the ground and short of straight down.
const (
	MinCameraPitch = 0.15
	MaxCameraPitch = 1.35
)

// CameraSystem eases the camera target toward the player. Yaw and pitch are
// only changed through CameraRotation.
type CameraSystem struct {
	camEntity    ecs.Entity
	targetEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	if !w.IsAlive(cs.camEntity) {
		cs.camEntity, _ = ecs.First(w, component.CameraRigComponent)
	}
	if !w.IsAlive(cs.targetEntity) {
		cs.targetEntity, _ = ecs.First(w, component.PlayerTagComponent)
	}

	target, ok := ecs.Get(w, cs.targetEntity, component.TransformComponent)
	if !ok {
		return
	}
	ecs.Update(w, cs.camEntity, component.CameraRigComponent, func(rig *component.CameraRig) {
		rig.Target = common.LerpVec3(rig.Target, target.Position, rig.Follow)
	})
}

// CameraRotation adapts the camera rig to input.RotationTarget.
type CameraRotation struct {
	w *ecs.World
}

func NewCameraRotation(w *ecs.World) *CameraRotation {
	return &CameraRotation{w: w}
}

func (c *CameraRotation) Rotate(yaw, pitch float64) {
	cam, ok := ecs.First(c.w, component.CameraRigComponent)
	if !ok {
		return
	}
	ecs.Update(c.w, cam, component.CameraRigComponent, func(rig *component.CameraRig) {
		rig.Yaw += yaw
		rig.Pitch = common.Clamp(rig.Pitch+pitch, MinCameraPitch, MaxCameraPitch)
	})
}
