package entity

import (
	"fmt"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/prefabs"
)

// DefaultFollow is how far the camera closes on its target each frame.
const DefaultFollow = 0.4

func NewCamera(w *ecs.World, spec prefabs.CameraSpec, target common.Vec3) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("camera: world is nil")
	}

	camera := w.CreateEntity()
	ecs.MustAdd(w, camera, component.CameraTagComponent, component.CameraTag{})
	ecs.MustAdd(w, camera, component.CameraRigComponent, component.CameraRig{
		Target:   target,
		Yaw:      spec.Yaw,
		Pitch:    spec.Pitch,
		Distance: orDefault(spec.Distance, 18),
		Zoom:     orDefault(spec.Zoom, 9),
		Follow:   orDefault(spec.Follow, DefaultFollow),
	})
	return camera, nil
}
