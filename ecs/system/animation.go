package system

import (
	"image"

	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
)

// tps is the fixed update rate animations are timed against.
const tps = 60

type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.AnimationComponent, func(e ecs.Entity, anim *component.Animation) {
		if player, ok := ecs.Get(w, e, component.PlayerComponent); ok {
			play(anim, PlayerAnimation(player))
		}
		if !anim.Playing {
			return
		}

		def, ok := anim.Defs[anim.Current]
		if !ok || def.Frames <= 0 {
			return
		}

		anim.FrameTimer++
		if anim.FrameTimer < def.TicksPerFrame(tps) {
			return
		}
		anim.FrameTimer = 0
		anim.Frame++
		if anim.Frame < def.Frames {
			return
		}
		if def.Loop {
			anim.Frame = 0
		} else {
			anim.Frame = def.Frames - 1
			anim.Playing = false
		}
	})
}

// PlayerAnimation picks the animation for the player's movement state.
func PlayerAnimation(p component.Player) string {
	switch {
	case !p.Grounded && p.VelocityY > 0:
		return "jump"
	case !p.Grounded:
		return "fall"
	case p.Dashing:
		return "dash"
	case p.Moving:
		return "walk"
	default:
		return "idle"
	}
}

func play(anim *component.Animation, name string) {
	if anim.Current == name {
		return
	}
	anim.Current = name
	anim.Frame = 0
	anim.FrameTimer = 0
	anim.Playing = true
}

// FrameRect is the sheet rectangle of the current frame, or the zero
// rectangle when the animation has no definition.
func FrameRect(anim component.Animation) image.Rectangle {
	def, ok := anim.Defs[anim.Current]
	if !ok {
		return image.Rectangle{}
	}
	return def.Rect(anim.Frame)
}
