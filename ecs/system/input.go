package system

import (
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/input"
)

// InputSource pushes the frame's raw device events onto a queue.
type InputSource interface {
	Poll(q *input.Queue)
}

// InputSystem drains the input queue once per frame through the controller
// and copies the result onto every entity with an Input component.
type InputSystem struct {
	source     InputSource
	queue      *input.Queue
	controller *input.Controller
	paused     func() bool

	jumpHeld bool
}

func NewInputSystem(source InputSource, queue *input.Queue, controller *input.Controller, paused func() bool) *InputSystem {
	if queue == nil {
		queue = &input.Queue{}
	}
	if controller == nil {
		controller = input.NewController(nil)
	}
	return &InputSystem{source: source, queue: queue, controller: controller, paused: paused}
}

func (i *InputSystem) Queue() *input.Queue {
	return i.queue
}

func (i *InputSystem) Controller() *input.Controller {
	return i.controller
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	if i.source != nil {
		i.source.Poll(i.queue)
	}
	if i.paused != nil {
		i.controller.SetPaused(i.paused())
	}

	state := i.controller.Update(i.queue.Drain())
	jumpPressed := state.JumpKeyDown && !i.jumpHeld
	i.jumpHeld = state.JumpKeyDown

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, in *component.Input) {
		in.Horizontal = state.Horizontal
		in.Vertical = state.Vertical
		in.HorizontalAxis = state.HorizontalAxis
		in.VerticalAxis = state.VerticalAxis
		in.Dash = state.Dashing
		in.Jump = state.JumpKeyDown
		in.JumpPressed = jumpPressed
	})
}
