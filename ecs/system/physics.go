package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

const (
	collisionTypePlayer cp.CollisionType = iota + 1
	collisionTypeSolid
)

const borderRadius = 0.5

// PhysicsSystem runs the ground plane collision: dynamic bodies for entities
// with a PhysicsBody, static circles for tree trunks and segments for the
// terrain border. Body (x, y) is world (x, z).
type PhysicsSystem struct {
	space    *cp.Space
	entities map[ecs.Entity]*bodyInfo
	statics  []*cp.Shape
}

type bodyInfo struct {
	body  *cp.Body
	shape *cp.Shape
}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{
		space:    newSpace(),
		entities: make(map[ecs.Entity]*bodyInfo),
	}
}

func newSpace() *cp.Space {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	return space
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// AddStaticCircle adds an immovable circle, such as a tree trunk.
func (ps *PhysicsSystem) AddStaticCircle(x, z, radius float64) {
	if radius <= 0 {
		return
	}
	shape := cp.NewCircle(ps.space.StaticBody, radius, cp.Vector{X: x, Y: z})
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFriction(0)
	ps.space.AddShape(shape)
	ps.statics = append(ps.statics, shape)
}

// SetBounds walls in the square [-half, half] on both axes.
func (ps *PhysicsSystem) SetBounds(half float64) {
	corners := []cp.Vector{{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		shape := cp.NewSegment(ps.space.StaticBody, a, b, borderRadius)
		shape.SetCollisionType(collisionTypeSolid)
		ps.space.AddShape(shape)
		ps.statics = append(ps.statics, shape)
	}
}

// ClearStatics drops every trunk and border shape.
func (ps *PhysicsSystem) ClearStatics() {
	for _, shape := range ps.statics {
		ps.space.RemoveShape(shape)
	}
	ps.statics = nil
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	ps.space.Step(Step)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for e, info := range ps.entities {
		if w.IsAlive(e) && ecs.Has(w, e, component.PhysicsBodyComponent) {
			continue
		}
		ps.space.RemoveShape(info.shape)
		ps.space.RemoveBody(info.body)
		delete(ps.entities, e)
	}

	for _, e := range w.Query(component.PhysicsBodyComponent.ID(), component.TransformComponent.ID()) {
		if _, ok := ps.entities[e]; ok {
			continue
		}
		pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		tr, _ := ecs.Get(w, e, component.TransformComponent)

		mass := pb.Mass
		if mass <= 0 {
			mass = 1
		}
		var body *cp.Body
		if pb.Static {
			body = cp.NewStaticBody()
		} else {
			body = cp.NewBody(mass, cp.INFINITY)
		}
		body.SetPosition(cp.Vector{X: tr.Position.X, Y: tr.Position.Z})
		ps.space.AddBody(body)

		shape := cp.NewCircle(body, pb.Radius, cp.Vector{})
		shape.SetFriction(pb.Friction)
		shape.SetElasticity(0)
		shape.SetCollisionType(collisionTypePlayer)
		ps.space.AddShape(shape)

		pb.Body = body
		pb.Shape = shape
		_ = ecs.Add(w, e, component.PhysicsBodyComponent, pb)
		ps.entities[e] = &bodyInfo{body: body, shape: shape}
	}
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for e, info := range ps.entities {
		ecs.Update(w, e, component.TransformComponent, func(tr *component.Transform) {
			pos := info.body.Position()
			tr.Position.X = pos.X
			tr.Position.Z = pos.Y
		})
	}
}
