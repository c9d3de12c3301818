package component

import "github.com/milk9111/nightwalk/common"

type Transform struct {
	Position common.Vec3
	Yaw      float64
	Pitch    float64
	Scale    float64
}

var TransformComponent = NewComponent[Transform]()
