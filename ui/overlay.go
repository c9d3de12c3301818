// Package ui draws the HUD on top of the rendered scene with ebitenui: the
// pause button and menu, the controls screen, the game clock, the tutorial
// hint and the on-screen buttons used on mobile.
package ui

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/hud"
	"github.com/milk9111/nightwalk/input"
)

const mobileButtonSize = 64

var (
	white     = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	grey      = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
	panelTint = color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}
)

// Options configures an Overlay. Menu is required; Tutorial may be nil when
// no tutorial script is loaded.
type Options struct {
	Menu     *hud.Menu
	Queue    *input.Queue
	Tutorial *hud.Tutorial
	Mobile   bool
}

// Overlay owns the ebitenui tree and keeps it in step with the menu state.
type Overlay struct {
	ui       *ebitenui.UI
	root     *widget.Container
	menu     *hud.Menu
	queue    *input.Queue
	tutorial *hud.Tutorial
	mobile   bool

	pauseBtn   *widget.Button
	menuPanel  *widget.Container
	controls   *widget.Container
	tutorialUI *widget.Container
	moveGrid   *widget.Container
	actionGrid *widget.Container
	clockText  *widget.Text
	playedText *widget.Text
	hintText   *widget.Text

	face    ebtext.Face
	applied Panels
	built   bool
}

func NewOverlay(opts Options) *Overlay {
	o := &Overlay{
		menu:     opts.Menu,
		queue:    opts.Queue,
		tutorial: opts.Tutorial,
		mobile:   opts.Mobile,
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
	}

	o.root = widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	o.clockText = widget.NewText(
		widget.TextOpts.Text("", &o.face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	o.root.AddChild(o.clockText)

	o.pauseBtn = o.button("PAUSE", func() { o.menu.Pause() })
	o.pauseBtn.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
	}
	o.root.AddChild(o.pauseBtn)

	o.menuPanel = o.buildMenu()
	o.root.AddChild(o.menuPanel)

	o.controls = o.buildControls()
	o.root.AddChild(o.controls)

	o.tutorialUI = o.buildTutorial()
	o.root.AddChild(o.tutorialUI)

	if o.mobile {
		o.moveGrid, o.actionGrid = o.buildMobile()
		o.root.AddChild(o.moveGrid)
		o.root.AddChild(o.actionGrid)
	}

	o.ui = &ebitenui.UI{Container: o.root}
	o.refresh()
	return o
}

// Update refreshes the labels and visibility from the game state, then lets
// ebitenui handle input. Button handlers run inside this call.
func (o *Overlay) Update() {
	o.refresh()
	o.ui.Update()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}

// SetTutorial swaps the tutorial after its script is reloaded.
func (o *Overlay) SetTutorial(t *hud.Tutorial) {
	o.tutorial = t
}

// Panels returns the visibility applied by the last refresh.
func (o *Overlay) Panels() Panels {
	return o.applied
}

func (o *Overlay) refresh() {
	done := o.tutorial == nil || o.tutorial.Done()
	panels := PanelsFor(o.menu.State(), o.mobile, done)

	if c := o.menu.Clock(); c != nil {
		o.clockText.Label = c.String()
		if panels.Menu {
			o.playedText.Label = PlayedText(c.ElapsedDuration())
		}
	}
	if o.tutorial != nil {
		o.hintText.Label = o.tutorial.Hint()
	}

	if o.built && panels == o.applied {
		return
	}
	o.applied = panels
	o.built = true

	show(o.pauseBtn.GetWidget(), panels.PauseButton)
	o.pauseBtn.GetWidget().Disabled = !panels.PauseEnabled
	show(o.menuPanel.GetWidget(), panels.Menu)
	show(o.controls.GetWidget(), panels.Controls)
	show(o.clockText.GetWidget(), panels.Clock)
	show(o.tutorialUI.GetWidget(), panels.Tutorial)
	if o.moveGrid != nil {
		show(o.moveGrid.GetWidget(), panels.Mobile)
		show(o.actionGrid.GetWidget(), panels.Mobile)
	}
	o.root.RequestRelayout()
}

func show(w *widget.Widget, visible bool) {
	if visible {
		w.Visibility = widget.Visibility_Show
	} else {
		w.Visibility = widget.Visibility_Hide
	}
}

func (o *Overlay) panel(minW, minH int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelTint)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
}

func (o *Overlay) text(label string) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(label, &o.face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (o *Overlay) button(label string, clicked func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(label, &o.face, &widget.ButtonTextColor{Idle: white, Disabled: grey}),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(120, 32),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			clicked()
		}),
	)
}

func buttonImage() *widget.ButtonImage {
	idle := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	hover := imageui.NewNineSliceColor(color.NRGBA{R: 0x44, G: 0x44, B: 0x55, A: 255})
	pressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x22, G: 0x22, B: 0x2a, A: 255})
	disabled := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 120})
	return &widget.ButtonImage{Idle: idle, Hover: hover, Pressed: pressed, Disabled: disabled}
}

func (o *Overlay) buildMenu() *widget.Container {
	p := o.panel(common.BaseWidth/3, common.BaseHeight/3)
	p.AddChild(o.text("PAUSED"))
	o.playedText = o.text("")
	p.AddChild(o.playedText)
	p.AddChild(o.button("RESUME", func() { o.menu.Resume() }))
	p.AddChild(o.button("CONTROLS", func() { o.menu.OpenControls() }))
	p.AddChild(o.button("QUIT", func() { o.menu.Quit() }))
	return p
}

func (o *Overlay) buildControls() *widget.Container {
	p := o.panel(common.BaseWidth/3, common.BaseHeight/3)
	p.AddChild(o.text("CONTROLS"))
	for _, line := range ControlsText(o.mobile) {
		p.AddChild(o.text(line))
	}
	p.AddChild(o.button("BACK", func() { o.menu.Back() }))
	return p
}

func (o *Overlay) buildTutorial() *widget.Container {
	p := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelTint)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 8, Bottom: 8, Left: 16, Right: 16}),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionCenter,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	o.hintText = o.text("")
	p.AddChild(o.hintText)
	return p
}

// buildMobile lays out the movement pad bottom-left and the action buttons
// bottom-right. Each button holds its flag from press to release.
func (o *Overlay) buildMobile() (*widget.Container, *widget.Container) {
	grid := func(cols int, h widget.AnchorLayoutPosition) *widget.Container {
		return widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(cols),
				widget.GridLayoutOpts.Spacing(6, 6),
			)),
			widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: h,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			})),
		)
	}

	move := grid(3, widget.AnchorLayoutPositionStart)
	move.AddChild(spacer())
	move.AddChild(o.mobileButton("UP", input.MobileUp))
	move.AddChild(spacer())
	move.AddChild(o.mobileButton("LEFT", input.MobileLeft))
	move.AddChild(o.mobileButton("DOWN", input.MobileDown))
	move.AddChild(o.mobileButton("RIGHT", input.MobileRight))

	actions := grid(1, widget.AnchorLayoutPositionEnd)
	actions.AddChild(o.mobileButton("DASH", input.MobileDash))
	actions.AddChild(o.mobileButton("JUMP", input.MobileJump))
	return move, actions
}

func (o *Overlay) mobileButton(label string, b input.MobileButton) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(buttonImage()),
		widget.ButtonOpts.Text(label, &o.face, &widget.ButtonTextColor{Idle: white, Disabled: grey}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(mobileButtonSize, mobileButtonSize)),
		widget.ButtonOpts.PressedHandler(func(args *widget.ButtonPressedEventArgs) {
			o.queue.Push(input.MobilePress(b))
		}),
		widget.ButtonOpts.ReleasedHandler(func(args *widget.ButtonReleasedEventArgs) {
			o.queue.Push(input.MobileRelease(b))
		}),
	)
}

func spacer() *widget.Container {
	return widget.NewContainer(widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.MinSize(mobileButtonSize, mobileButtonSize)))
}
