package component

import "github.com/milk9111/nightwalk/scene"

type Mesh struct {
	Mesh     scene.MeshID
	Instance scene.InstanceID
	Shadow   bool
}

var MeshComponent = NewComponent[Mesh]()
