package system

import (
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/scene"
)

// MeshSyncSystem pushes transforms, animation frames and the camera view to
// the rendering backend.
type MeshSyncSystem struct {
	backend scene.Backend
}

func NewMeshSyncSystem(backend scene.Backend) *MeshSyncSystem {
	return &MeshSyncSystem{backend: backend}
}

func (m *MeshSyncSystem) Update(w *ecs.World) {
	if w == nil || m.backend == nil {
		return
	}

	for _, e := range w.Query(component.MeshComponent.ID(), component.TransformComponent.ID()) {
		mesh, _ := ecs.Get(w, e, component.MeshComponent)
		tr, _ := ecs.Get(w, e, component.TransformComponent)
		st := scene.Transform{Position: tr.Position, Yaw: tr.Yaw, Scale: tr.Scale}
		if anim, ok := ecs.Get(w, e, component.AnimationComponent); ok {
			st.Frame = FrameRect(anim)
		}
		m.backend.SetTransform(mesh.Instance, st)
	}

	if cam, ok := ecs.First(w, component.CameraRigComponent); ok {
		rig, _ := ecs.Get(w, cam, component.CameraRigComponent)
		m.backend.SetCamera(scene.View{
			Target:   rig.Target,
			Yaw:      rig.Yaw,
			Pitch:    rig.Pitch,
			Distance: rig.Distance,
			Zoom:     rig.Zoom,
		})
	}
}
