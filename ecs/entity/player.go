package entity

import (
	"fmt"
	"image"

	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/prefabs"
	"github.com/milk9111/nightwalk/scene"
)

// Player sheet layout: one row per animation, playerSheetCols frames each.
const (
	playerSheetCols = 4
	playerSheetRows = 5
)

// NewPlayer creates the player entity for a loaded character mesh.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, ch scene.Character) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("player: world is nil")
	}
	if spec == nil {
		return 0, fmt.Errorf("player: nil spec")
	}

	var sheet image.Rectangle
	if ch.Image != nil {
		sheet = ch.Image.Bounds()
	}

	player := w.CreateEntity()
	ecs.MustAdd(w, player, component.PlayerTagComponent, component.PlayerTag{})
	ecs.MustAdd(w, player, component.TransformComponent, component.Transform{Position: ch.Spawn, Scale: 1})
	ecs.MustAdd(w, player, component.InputComponent, component.Input{})
	ecs.MustAdd(w, player, component.PlayerComponent, component.Player{
		MoveSpeed:  orDefault(spec.Speed, 8),
		DashFactor: orDefault(spec.DashFactor, 2),
		JumpSpeed:  orDefault(spec.JumpSpeed, 9),
		Gravity:    orDefault(spec.Gravity, 25),
		Grounded:   true,
	})
	ecs.MustAdd(w, player, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius: orDefault(spec.BodyRadius, 0.5),
		Mass:   orDefault(spec.Mass, 1),
	})
	ecs.MustAdd(w, player, component.MeshComponent, component.Mesh{Mesh: ch.Mesh, Instance: ch.Instance, Shadow: true})
	ecs.MustAdd(w, player, component.AnimationComponent, component.Animation{
		Defs:    PlayerAnimations(sheet),
		Current: "idle",
		Playing: true,
	})
	return player, nil
}

// PlayerAnimations slices the player sheet into its animation rows.
func PlayerAnimations(sheet image.Rectangle) map[string]component.AnimationDef {
	size := image.Pt(sheet.Dx()/playerSheetCols, sheet.Dy()/playerSheetRows)
	def := func(row int, fps float64, loop bool) component.AnimationDef {
		return component.AnimationDef{Row: row, Frames: playerSheetCols, Size: size, FPS: fps, Loop: loop}
	}
	return map[string]component.AnimationDef{
		"idle": def(0, 4, true),
		"walk": def(1, 8, true),
		"dash": def(2, 12, true),
		"jump": def(3, 8, false),
		"fall": def(4, 8, false),
	}
}

func orDefault(v, fallback float64) float64 {
	if v <= 0 {
		return fallback
	}
	return v
}
