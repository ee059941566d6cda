package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/fpscontroller/logging"
	"github.com/milk9111/fpscontroller/prefabs"
	"github.com/milk9111/fpscontroller/settings"
	"github.com/rs/zerolog"
)

func main() {
	configDir := flag.String("config", ".", "directory holding fpsdemo.yaml")
	prefabDir := flag.String("prefabs", prefabs.Dir, "on-disk prefab directory that shadows the embedded prefabs")
	debug := flag.Bool("debug", false, "enable debug logging")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	cfg, err := settings.Load(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	prefabs.Dir = *prefabDir

	level := logging.ParseLevel(cfg.LogLevel)
	if *debug {
		level = zerolog.DebugLevel
	}
	logger := logging.New(level, logging.Format(cfg.LogFormat), nil)

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("fpscontroller")
	ebiten.SetTPS(cfg.TPS)

	game, err := NewGame(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	// Mouse look reads raw cursor deltas, so the cursor stays captured
	// until the game is paused.
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error().Err(err).Msg("game exited")
	}
}
