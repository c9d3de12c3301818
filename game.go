package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"github.com/milk9111/nightwalk/assets"
	"github.com/milk9111/nightwalk/clock"
	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/ecs"
	"github.com/milk9111/nightwalk/ecs/component"
	"github.com/milk9111/nightwalk/ecs/entity"
	"github.com/milk9111/nightwalk/ecs/system"
	"github.com/milk9111/nightwalk/hud"
	"github.com/milk9111/nightwalk/input"
	"github.com/milk9111/nightwalk/platform"
	"github.com/milk9111/nightwalk/prefabs"
	"github.com/milk9111/nightwalk/render"
	"github.com/milk9111/nightwalk/scene"
	"github.com/milk9111/nightwalk/ui"
)

const tutorialScript = "tutorial.tengo"

type GameOptions struct {
	Mobile bool
	Watch  bool
	Debug  bool
}

type Game struct {
	ctx    context.Context
	cancel context.CancelFunc

	world    *ecs.World
	always   *ecs.Scheduler
	gameplay *ecs.Scheduler

	loader      *assets.Loader
	renderer    *render.Renderer
	scene       *scene.Scene
	sceneCancel context.CancelFunc
	sceneGen    int

	inputSys  *system.InputSystem
	physics   *system.PhysicsSystem
	controls  *system.PlayerControllerSystem
	playerEnt ecs.Entity

	playerSpec *prefabs.PlayerSpec
	music      prefabs.MusicSpec

	menu     *hud.Menu
	tutorial *hud.Tutorial
	overlay  *ui.Overlay
	fade     *ui.FadeShader
	frame    *ebiten.Image

	watcher *prefabs.Watcher
	mobile  bool
	debug   bool
}

func NewGame(opts GameOptions) (*Game, error) {
	sceneSpec, err := prefabs.LoadSceneSpec()
	if err != nil {
		return nil, err
	}
	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		ctx:        ctx,
		cancel:     cancel,
		world:      ecs.NewWorld(),
		loader:     assets.NewLoader(nil),
		renderer:   render.NewRenderer(),
		playerSpec: playerSpec,
		mobile:     opts.Mobile,
		debug:      opts.Debug,
	}

	c := clock.New(nil)
	g.menu = hud.NewMenu(c, nil)
	g.menu.OnResume(func() {
		if g.music.Track != "" {
			system.RequestMusic(g.world, g.music.Track)
		}
	})
	g.menu.OnChange(func(from, to hud.State) {
		zap.S().Debugw("menu state", "from", from, "to", to)
		switch to {
		case hud.StatePaused:
			if from == hud.StateRunning {
				system.PauseMusic(g.world)
			}
		case hud.StateQuitting:
			system.StopMusic(g.world)
		}
	})

	queue := &input.Queue{}
	controller := input.NewController(platform.CursorLock{})
	g.inputSys = system.NewInputSystem(platform.NewPoller(), queue, controller, g.menu.Paused)
	g.physics = system.NewPhysicsSystem()
	g.controls = system.NewPlayerControllerSystem(nil)

	g.always = ecs.NewScheduler(
		g.inputSys,
		system.NewMusicSystem(nil),
	)
	g.gameplay = ecs.NewScheduler(
		g.controls,
		g.physics,
		system.NewCameraSystem(),
		system.NewAnimationSystem(),
		system.NewMeshSyncSystem(g.renderer),
	).When(func() bool { return !g.menu.Paused() })

	if _, err := entity.NewMusicPlayer(g.world, nil, nil); err != nil {
		cancel()
		return nil, err
	}
	if err := g.loadScene(sceneSpec); err != nil {
		cancel()
		return nil, err
	}

	g.tutorial = g.loadTutorial()
	g.overlay = ui.NewOverlay(ui.Options{
		Menu:     g.menu,
		Queue:    queue,
		Tutorial: g.tutorial,
		Mobile:   opts.Mobile,
	})

	g.fade, err = ui.NewFadeShader()
	if err != nil {
		zap.S().Warnw("fade shader unavailable, quitting without fade", "error", err)
	}

	if opts.Watch && prefabs.DiskRoot() != "" {
		g.watcher, err = prefabs.NewWatcher(prefabs.DiskRoot(), prefabs.DiskRoot()+"/scripts")
		if err != nil {
			zap.S().Warnw("prefab watcher disabled", "error", err)
		}
	}

	c.Start()
	return g, nil
}

// loadScene builds spec on the renderer and physics space, replacing the
// scene loaded before. Character loads still in flight for the old scene are
// cancelled and ignored.
func (g *Game) loadScene(spec *prefabs.SceneSpec) error {
	if g.sceneCancel != nil {
		g.sceneCancel()
	}
	ctx, cancel := context.WithCancel(g.ctx)
	g.sceneCancel = cancel
	g.sceneGen++
	gen := g.sceneGen

	g.renderer.Reset()
	g.physics.ClearStatics()
	if g.world.IsAlive(g.playerEnt) {
		g.world.DestroyEntity(g.playerEnt)
	}
	g.playerEnt = ecs.Nil
	if cam, ok := ecs.First(g.world, component.CameraRigComponent); ok {
		g.world.DestroyEntity(cam)
	}

	s, err := scene.Bootstrap(ctx, g.renderer, g.loader, spec, scene.Options{
		OnCharacter: func(ch scene.Character) {
			if gen == g.sceneGen {
				g.attachCharacter(ch)
			}
		},
		OnError: func(err error) {
			if errors.Is(err, context.Canceled) {
				return
			}
			zap.S().Errorw("character load failed", "error", err)
		},
	})
	if err != nil {
		return err
	}
	g.scene = s

	g.controls.SetGround(s.Terrain)
	for _, tree := range s.Trees {
		g.physics.AddStaticCircle(tree.Position.X, tree.Position.Z, s.TrunkRadius*tree.Scale)
	}
	g.physics.SetBounds(s.Terrain.HalfSize())

	if _, err := entity.NewCamera(g.world, spec.Camera, s.Spawn); err != nil {
		return err
	}

	zap.S().Infow("scene loaded", "name", spec.Name, "trees", len(s.Trees))

	prev := g.music.Track
	g.music = spec.Music
	if g.music.Track == "" || g.music.Track == prev {
		return nil
	}
	if ent, ok := ecs.First(g.world, component.MusicPlayerComponent); ok {
		ecs.Update(g.world, ent, component.MusicPlayerComponent, func(p *component.MusicPlayer) {
			p.TrackVolumes[g.music.Track] = g.music.Volume
		})
	}
	system.RequestMusic(g.world, g.music.Track)
	return nil
}

// attachCharacter runs on the frame goroutine once the character sprite has
// loaded and its mesh exists.
func (g *Game) attachCharacter(ch scene.Character) {
	player, err := entity.NewPlayer(g.world, g.playerSpec, ch)
	if err != nil {
		zap.S().Errorw("create player", "error", err)
		return
	}
	g.playerEnt = player
	g.inputSys.Controller().AttachControl(system.NewCameraRotation(g.world))
	zap.S().Infow("character ready", "spawn", ch.Spawn)
}

func (g *Game) loadTutorial() *hud.Tutorial {
	src, err := prefabs.LoadScript(tutorialScript)
	if err != nil {
		zap.S().Warnw("tutorial script missing", "error", err)
		return nil
	}
	t, err := hud.NewTutorial(src, g.mobile)
	if err != nil {
		zap.S().Warnw("tutorial script rejected", "error", err)
		return nil
	}
	return t
}

func (g *Game) Update() error {
	g.loader.Dispatch()
	g.reload()

	g.overlay.Update()
	g.always.Update(g.world)
	g.gameplay.Update(g.world)

	g.menu.Clock().Update()
	if g.tutorial != nil && !g.menu.Paused() {
		ctrl := g.inputSys.Controller()
		if err := g.tutorial.Observe(ctrl.State(), ctrl.Pointer().Tracking()); err != nil {
			zap.S().Warnw("tutorial script failed", "error", err)
			g.tutorial = nil
			g.overlay.SetTutorial(nil)
		}
	}

	fade := g.menu.Fade()
	fade.Update()
	g.world.EndFrame()
	if fade.Done() {
		g.Close()
		return ebiten.Termination
	}
	return nil
}

// reload applies prefab edits picked up by the watcher.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		switch name {
		case "player.yaml":
			spec, err := prefabs.LoadPlayerSpec()
			if err != nil {
				zap.S().Warnw("reload player spec", "error", err)
				continue
			}
			g.playerSpec = spec
			g.applyPlayerSpec()
		case "scene.yaml":
			spec, err := prefabs.LoadSceneSpec()
			if err == nil {
				err = g.loadScene(spec)
			}
			if err != nil {
				zap.S().Warnw("reload scene", "error", err)
				continue
			}
		case "scripts/" + tutorialScript:
			if t := g.loadTutorial(); t != nil {
				g.tutorial = t
				g.overlay.SetTutorial(t)
			}
		default:
			continue
		}
		zap.S().Infow("prefab reloaded", "file", name)
	}
}

func (g *Game) applyPlayerSpec() {
	if !g.world.IsAlive(g.playerEnt) {
		return
	}
	spec := g.playerSpec
	ecs.Update(g.world, g.playerEnt, component.PlayerComponent, func(p *component.Player) {
		if spec.Speed > 0 {
			p.MoveSpeed = spec.Speed
		}
		if spec.DashFactor > 0 {
			p.DashFactor = spec.DashFactor
		}
		if spec.JumpSpeed > 0 {
			p.JumpSpeed = spec.JumpSpeed
		}
		if spec.Gravity > 0 {
			p.Gravity = spec.Gravity
		}
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	if g.frame == nil || !g.frame.Bounds().Eq(b) {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.Clear()
	g.renderer.Draw(g.frame)

	g.fade.Apply(screen, g.frame, g.menu.Fade().Level())
	g.overlay.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.2f  instances: %d  menu: %s",
			ebiten.ActualFPS(), g.renderer.InstanceCount(), g.menu.State()), 8, common.BaseHeight-20)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close cancels pending loads and stops the watcher.
func (g *Game) Close() {
	g.cancel()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			zap.S().Warnw("close prefab watcher", "error", err)
		}
		g.watcher = nil
	}
}

// run blocks until the window closes or the quit fade finishes. Returning
// ebiten.Termination from Update makes RunGame return nil.
func run(g *Game) error {
	defer g.Close()
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
