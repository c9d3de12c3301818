package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/nightwalk/common"
	"github.com/milk9111/nightwalk/logger"
	"github.com/milk9111/nightwalk/platform"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	mobile := flag.Bool("mobile", false, "show the on-screen mobile controls")
	watch := flag.Bool("watch", false, "hot-reload prefab specs and scripts from ./prefabs")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	undo, err := logger.Install(logger.ForFlags(*debug))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer undo()

	if *baseMonitor {
		if monitors := ebiten.AppendMonitors(nil); len(monitors) > 0 {
			ebiten.SetMonitor(monitors[0])
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("nightwalk")

	game, err := NewGame(GameOptions{
		Mobile: platform.IsMobile(*mobile),
		Watch:  *watch,
		Debug:  *debug,
	})
	if err != nil {
		zap.S().Errorw("start game", "error", err)
		undo()
		log.Fatal(err)
	}

	if err := run(game); err != nil {
		zap.S().Errorw("game exited", "error", err)
		undo()
		log.Fatal(err)
	}
}
