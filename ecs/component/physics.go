package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data. The space is the XZ ground
// plane: body X is world X and body Y is world Z.
type PhysicsBody struct {
	Body     *cp.Body
	Shape    *cp.Shape
	Radius   float64
	Mass     float64
	Friction float64
	Static   bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
