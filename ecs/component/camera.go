package component

import "github.com/milk9111/nightwalk/common"

// CameraRig orbits Target. Follow is the per-frame lerp factor toward the
// followed entity.
type CameraRig struct {
	Target   common.Vec3
	Yaw      float64
	Pitch    float64
	Distance float64
	Zoom     float64
	Follow   float64
}

var CameraRigComponent = NewComponent[CameraRig]()
